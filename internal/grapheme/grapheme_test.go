// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grapheme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	flagCN  = "\U0001F1E8\U0001F1F3"
	family  = "\U0001F468\u200d\U0001F469\u200d\U0001F467"
	eAcute  = "e\u0301"
	thumbUp = "\U0001F44D\U0001F3FD"
)

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(""))
	assert.Equal(t, 5, Count("hello"))
	assert.Equal(t, 1, Count(family))
	assert.Equal(t, 3, Count("a"+eAcute+flagCN))
	assert.Equal(t, 4, Count("中文测试"))
}

func TestClusters(t *testing.T) {
	assert.Equal(t, []string{"a", flagCN, eAcute, thumbUp}, Clusters("a"+flagCN+eAcute+thumbUp))
	assert.Empty(t, Clusters(""))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "abc", 5, "abc"},
		{"exact", "abc", 3, "abc"},
		{"cut ascii", "abcdef", 3, "abc"},
		{"flag is third cluster", "ab" + flagCN + "c", 3, "ab" + flagCN},
		{"flag would be split", "ab" + flagCN, 2, "ab"},
		{"family kept whole", family + family, 1, family},
		{"combining mark stays", eAcute + eAcute, 1, eAcute},
		{"zero max", "abc", 0, ""},
		{"negative max", "abc", -2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, Count(got), max(tt.max, 0))
			assert.True(t, strings.HasPrefix(tt.in, got))
		})
	}
}

func TestTruncateCaret(t *testing.T) {
	out, caret := TruncateCaret("abcdef", 4, 6)
	assert.Equal(t, "abcd", out)
	assert.Equal(t, 4, caret)

	out, caret = TruncateCaret("abcdef", 4, 2)
	assert.Equal(t, "abcd", out)
	assert.Equal(t, 2, caret)

	_, caret = TruncateCaret("ab", 4, -1)
	assert.Equal(t, 0, caret)
}

func TestExtendCut(t *testing.T) {
	s := "a" + flagCN + "b"

	// Cutting after the first regional indicator lands inside the flag.
	naive := 1 + len("\U0001F1E8")
	assert.Equal(t, 1+len(flagCN), ExtendCut(s, naive))

	assert.Equal(t, 1, ExtendCut(s, 1), "boundary is unchanged")
	assert.Equal(t, 0, ExtendCut(s, -3))
	assert.Equal(t, len(s), ExtendCut(s, len(s)+10))
}

func TestEnclosingCluster(t *testing.T) {
	s := "x" + eAcute + "y"

	start, end := EnclosingCluster(s, 2) // the combining mark
	assert.Equal(t, 1, start)
	assert.Equal(t, 1+len(eAcute), end)

	start, end = EnclosingCluster(s, len(s))
	assert.Equal(t, len(s), start)
	assert.Equal(t, len(s), end)
}

func TestOffsets(t *testing.T) {
	s := "中" + flagCN + "a"

	assert.Equal(t, 0, ByteOffset(s, 0))
	assert.Equal(t, len("中"), ByteOffset(s, 1))
	assert.Equal(t, len("中")+len(flagCN), ByteOffset(s, 2))
	assert.Equal(t, len(s), ByteOffset(s, 99))

	assert.Equal(t, 0, Index(s, 0))
	assert.Equal(t, 1, Index(s, len("中")))
	assert.Equal(t, 2, Index(s, len("中")+1), "offset inside a cluster extends to its end")
	assert.Equal(t, 3, Index(s, len(s)))
}

func TestRuneConversion(t *testing.T) {
	s := "a" + flagCN + "b"

	assert.Equal(t, 0, RuneToGrapheme(s, 0))
	assert.Equal(t, 1, RuneToGrapheme(s, 1))
	assert.Equal(t, 2, RuneToGrapheme(s, 2), "half a flag rounds up")
	assert.Equal(t, 2, RuneToGrapheme(s, 3))
	assert.Equal(t, 3, RuneToGrapheme(s, 4))

	assert.Equal(t, 0, GraphemeToRune(s, 0))
	assert.Equal(t, 1, GraphemeToRune(s, 1))
	assert.Equal(t, 3, GraphemeToRune(s, 2))
	assert.Equal(t, 4, GraphemeToRune(s, 3))
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		start  int
		length int
		repl   string
		want   string
	}{
		{"insert middle", "ac", 1, 0, "b", "abc"},
		{"replace flag", "a" + flagCN + "c", 1, 1, "b", "abc"},
		{"delete", "abc", 1, 1, "", "ac"},
		{"start past end appends", "ab", 10, 0, "c", "abc"},
		{"length past end is cut", "abc", 1, 10, "x", "ax"},
		{"negative start", "bc", -1, 0, "a", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Splice(tt.in, tt.start, tt.length, tt.repl))
		})
	}
}

func TestSlice(t *testing.T) {
	s := "ab" + family + "cd"
	assert.Equal(t, family+"c", Slice(s, 2, 4))
	assert.Equal(t, "", Slice(s, 4, 2))
	assert.Equal(t, s, Slice(s, 0, 100))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 3, Width("abc"))
	assert.Equal(t, 4, Width("中文"))
}
