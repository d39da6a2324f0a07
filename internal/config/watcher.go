// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reloaded.
const DefaultDebounce = 150 * time.Millisecond

// Update is delivered after the watched file changed. Exactly one of
// Config and Err is set.
type Update struct {
	Config *Config
	Err    error
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename keep being observed.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	updates  chan Update

	mu      sync.Mutex
	pending time.Time

	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup
}

// NewWatcher creates a watcher for path. A non-positive debounce selects
// DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: debounce,
		updates:  make(chan Update, 1),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Updates returns the channel reloads are delivered on. It is closed by
// Close.
func (w *Watcher) Updates() <-chan Update { return w.updates }

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Watch starts watching. It returns once the watch is registered.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.done.Add(2)
	go w.processEvents()
	go w.processPending()
	return nil
}

// Close stops watching and closes the updates channel.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.done.Wait()
	close(w.updates)
	return err
}

func (w *Watcher) processEvents() {
	defer w.done.Done()
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(Update{Err: err})
		}
	}
}

// processPending reloads the file once it has been quiet for the debounce
// window.
func (w *Watcher) processPending() {
	defer w.done.Done()
	ticker := time.NewTicker(max(w.debounce/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case now := <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && now.Sub(w.pending) >= w.debounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if due {
				cfg, err := Load(w.path)
				w.send(Update{Config: cfg, Err: err})
			}
		}
	}
}

// send delivers u, replacing an undelivered older update.
func (w *Watcher) send(u Update) {
	for {
		select {
		case <-w.ctx.Done():
			return
		case w.updates <- u:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
