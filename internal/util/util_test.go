// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	data := []byte("hello, world!")

	require.NoError(t, AtomicWriteFile(path, data, 0o644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, content)
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "deep", "test.txt")
	require.NoError(t, AtomicWriteFile(path, []byte("test data"), 0o644))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("initial"), 0o644))
	require.NoError(t, AtomicWriteFile(path, []byte("updated"), 0o644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, AtomicWriteFile(path, nil, 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Zero(t, info.Size())
}

// =============================================================================
// DISPLAY TESTS
// =============================================================================

func TestEllipsize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "abc", 3, "abc"},
		{"ascii cut", "abcdef", 4, "abc…"},
		{"wide cut", "中文测试", 5, "中文…"},
		{"wide does not half fit", "中文测试", 4, "中…"},
		{"cluster kept whole", "e\u0301e\u0301e\u0301", 2, "e\u0301…"},
		{"one cell", "abc", 1, "…"},
		{"zero", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ellipsize(tt.input, tt.width))
		})
	}
}

func TestVisibleText(t *testing.T) {
	assert.Equal(t, "a\\nb\\tc", VisibleText("a\nb\tc"))
	assert.Equal(t, "\U0001F468<U+200D>\U0001F469", VisibleText("\U0001F468\u200d\U0001F469"))
	assert.Equal(t, "1<U+FE0F>\u20e3", VisibleText("1\ufe0f\u20e3"))
	assert.Equal(t, "<U+0007>", VisibleText("\a"))
	assert.Equal(t, "中文", VisibleText("中文"))
}
