// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/inputlimit/internal/config"
)

// Run shows the form until the user quits or ctx is cancelled. When
// configPath names an existing file it is watched and changes are applied
// live.
//
// Log output is written to the file named by INPUTLIMIT_DEBUG, or
// discarded, so the terminal is never written to behind the renderer.
func Run(ctx context.Context, cfg *config.Config, configPath string) error {
	if debugPath := os.Getenv(config.EnvDebug); debugPath != "" {
		f, err := tea.LogToFile(debugPath, "inputlimit")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	opts := Options{Config: cfg, ConfigPath: configPath}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			w, err := config.NewWatcher(configPath, config.DefaultDebounce)
			if err != nil {
				return err
			}
			if err := w.Watch(); err != nil {
				w.Close()
				return err
			}
			defer w.Close()
			opts.Updates = w.Updates()
			log.Printf("CONFIG_WATCH | path=%s", w.Path())
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	m, err := New(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
