// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitUpdate(t *testing.T, w *Watcher) Update {
	t.Helper()
	select {
	case u := <-w.Updates():
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("no update from watcher")
		return Update{}
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(Default(), path))

	w, err := NewWatcher(path, 30*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	cfg := Default()
	cfg.Fields = cfg.Fields[:1]
	cfg.Fields[0].MaxLength = 2
	require.NoError(t, Save(cfg, path))

	u := waitUpdate(t, w)
	require.NoError(t, u.Err)
	require.Len(t, u.Config.Fields, 1)
	assert.Equal(t, 2, u.Config.Fields[0].MaxLength)
}

func TestWatcher_ReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(Default(), path))

	w, err := NewWatcher(path, 30*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[[fields]]\nname = 1\n"), 0o644))

	u := waitUpdate(t, w)
	assert.Error(t, u.Err)
	assert.Nil(t, u.Config)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, Save(Default(), path))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))

	select {
	case u := <-w.Updates():
		t.Fatalf("unexpected update: %+v", u)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	_, open := <-w.Updates()
	assert.False(t, open, "updates closed")
}
