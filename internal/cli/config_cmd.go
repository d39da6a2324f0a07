// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The config and demo commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jeranaias/inputlimit/internal/config"
	"github.com/jeranaias/inputlimit/internal/ui/demo"
)

// HandleConfig handles "config init|show|validate".
func HandleConfig(args Args) error {
	switch sub := args.Flags.Subcommand(); sub {
	case "init":
		return handleConfigInit(args)
	case "show", "":
		return handleConfigShow(args)
	case "validate", "check":
		return handleConfigValidate(args)
	default:
		return &UsageError{
			Message: fmt.Sprintf("unknown config subcommand %q", sub),
			Example: "inputlimit config init|show|validate",
		}
	}
}

// handleConfigInit writes the default config. An existing file is only
// replaced with --force.
func handleConfigInit(args Args) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !args.Flags.BoolFlag("force") {
		return &UsageError{
			Message: fmt.Sprintf("%s already exists", path),
			Example: "inputlimit config init --force",
		}
	} else if err != nil && !isNotExist(err) {
		return &ConfigError{Path: path, Err: err}
	}

	if err := config.Save(config.Default(), path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return respond(args, CmdConfig, ConfigInitData{Path: path}, nil, func(w io.Writer) {
		fmt.Fprintf(w, "%s wrote %s\n", RenderStatus("ok"), path)
	})
}

// handleConfigShow prints the effective config: the file if present,
// otherwise the defaults.
func handleConfigShow(args Args) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	if args.JSON {
		return respond(args, CmdConfig, cfg, nil, nil)
	}
	data, err := config.EncodeTOML(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = args.Stdout.Write(data)
	return err
}

// handleConfigValidate loads the file strictly; a missing file fails.
func handleConfigValidate(args Args) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		cfgErr := &ConfigError{Path: path, Err: err}
		if args.JSON {
			return respond(args, CmdConfig, ConfigValidateData{Path: path}, cfgErr, nil)
		}
		return cfgErr
	}

	data := ConfigValidateData{Path: path, Fields: cfg.FieldNames()}
	return respond(args, CmdConfig, data, nil, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s: %d fields (%s)\n", RenderStatus("ok"), path,
			len(data.Fields), strings.Join(data.Fields, ", "))
	})
}

// HandleDemo handles "demo": the interactive form. It needs a terminal.
func HandleDemo(args Args) error {
	if args.JSON {
		return usageErrorf("demo does not support --json")
	}
	if err := RequiresStdoutTTY("run the demo"); err != nil {
		return err
	}
	cfg, path, err := loadConfig(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return demo.Run(ctx, cfg, path)
}
