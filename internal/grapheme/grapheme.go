// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grapheme provides grapheme-cluster aware counting, slicing and
// truncation.
//
// UNICODE: every length and position in this package is measured in
// grapheme clusters, the units a user perceives as one character. A flag,
// a ZWJ family or a letter with combining marks is one cluster no matter
// how many bytes or code points it spans. Byte offsets only appear where
// the function name says so.
package grapheme

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// =============================================================================
// COUNTING
// =============================================================================

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Clusters splits s into its grapheme clusters.
func Clusters(s string) []string {
	clusters := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// =============================================================================
// OFFSET CONVERSION
// =============================================================================

// ByteOffset returns the byte offset at which the n-th cluster starts.
// n is clamped to [0, Count(s)], so ByteOffset(s, Count(s)) == len(s).
func ByteOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	offset := 0
	state := -1
	rest := s
	for len(rest) > 0 && n > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		offset += len(cluster)
		n--
	}
	return offset
}

// Index returns the number of clusters that start before byteOffset. A
// byte offset that falls inside a cluster counts that cluster, so the
// result is the index of the boundary the offset extends to.
func Index(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	idx := 0
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 && pos < byteOffset {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
		idx++
	}
	return idx
}

// RuneToGrapheme converts a rune index, as used by rune-based editors, to a
// grapheme index. A rune index inside a cluster maps to the end of it.
func RuneToGrapheme(s string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	offset := 0
	for i := 0; i < runeIdx && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return Index(s, offset)
}

// GraphemeToRune converts a grapheme index to the rune index at which that
// cluster starts.
func GraphemeToRune(s string, graphemeIdx int) int {
	return utf8.RuneCountInString(s[:ByteOffset(s, graphemeIdx)])
}

// =============================================================================
// BOUNDARIES
// =============================================================================

// EnclosingCluster returns the byte range [start, end) of the cluster that
// contains byteOffset. Offsets at or past the end of s yield (len(s), len(s)).
func EnclosingCluster(s string, byteOffset int) (start, end int) {
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteOffset >= len(s) {
		return len(s), len(s)
	}
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		end = start + len(cluster)
		if byteOffset < end {
			return start, end
		}
		start = end
	}
	return len(s), len(s)
}

// ExtendCut moves a naive byte cut point forward to the end of the cluster
// it falls in. A cut already on a boundary is returned unchanged.
func ExtendCut(s string, byteCut int) int {
	if byteCut <= 0 {
		return 0
	}
	if byteCut >= len(s) {
		return len(s)
	}
	start, end := EnclosingCluster(s, byteCut)
	if start == byteCut {
		return byteCut
	}
	return end
}

// =============================================================================
// TRUNCATION AND SPLICING
// =============================================================================

// Truncate returns s unchanged when it has at most max clusters, otherwise
// exactly its first max clusters. A non-positive max yields "".
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return s[:ByteOffset(s, max)]
}

// TruncateCaret truncates s like Truncate and clamps caret into the result.
func TruncateCaret(s string, max, caret int) (string, int) {
	out := Truncate(s, max)
	return out, Clamp(caret, 0, Count(out))
}

// Slice returns the clusters in [from, to), both clamped to s.
func Slice(s string, from, to int) string {
	start := ByteOffset(s, from)
	end := ByteOffset(s, to)
	if end < start {
		return ""
	}
	return s[start:end]
}

// ClampRange fits a cluster range onto s. A start past the end becomes an
// append position and a length running past the end is cut.
func ClampRange(s string, start, length int) (int, int) {
	n := Count(s)
	start = Clamp(start, 0, n)
	length = Clamp(length, 0, n-start)
	return start, length
}

// Splice replaces length clusters at start with replacement. The range is
// clamped with ClampRange first.
func Splice(s string, start, length int, replacement string) string {
	start, length = ClampRange(s, start, length)
	from := ByteOffset(s, start)
	to := from + ByteOffset(s[from:], length)
	return s[:from] + replacement + s[to:]
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
