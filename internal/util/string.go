// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/inputlimit/internal/grapheme"
)

// Ellipsis is appended by Ellipsize.
const Ellipsis = "…"

// Ellipsize truncates s to at most maxWidth terminal cells, appending an
// ellipsis when anything was cut. Clusters are never split.
func Ellipsize(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	budget := maxWidth - runewidth.StringWidth(Ellipsis)
	var b strings.Builder
	width := 0
	for _, c := range grapheme.Clusters(s) {
		w := runewidth.StringWidth(c)
		if width+w > budget {
			break
		}
		b.WriteString(c)
		width += w
	}
	if budget < 0 {
		return b.String()
	}
	return b.String() + Ellipsis
}

// VisibleText escapes control characters and marks format characters
// (joiners, variation selectors, bidi marks) as <U+XXXX> so a value can be
// shown on one terminal line.
func VisibleText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r), unicode.Is(unicode.Variation_Selector, r):
			b.WriteString(runeTag(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func runeTag(r rune) string {
	return fmt.Sprintf("<U+%04X>", r)
}
