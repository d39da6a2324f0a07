// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package charclass classifies grapheme clusters into the character
// categories an input field can allow.
package charclass

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownClass is returned when a class name cannot be parsed.
var ErrUnknownClass = errors.New("unknown character class")

// Class is a bit set of character categories.
type Class uint8

const (
	// Digit matches a single ASCII digit 0-9.
	Digit Class = 1 << iota
	// Lowercase matches a single ASCII letter a-z.
	Lowercase
	// Uppercase matches a single ASCII letter A-Z.
	Uppercase
	// Chinese matches clusters starting in the CJK Unified Ideographs block.
	Chinese
	// Emoji matches emoji clusters, including modifier and ZWJ sequences.
	Emoji
	// Unrestricted lets every cluster through and supersedes the other flags.
	Unrestricted
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

const (
	cjkFirst = 0x4E00
	cjkLast  = 0x9FA5

	// Single scalars at or below this value (digits, '#', '*', (c), (r), ...)
	// carry the Emoji property but are not treated as emoji on their own.
	emojiSingleFloor = 0x238C
)

// Classify returns every category the cluster belongs to. The checks are
// independent, so a cluster may match several flags or none.
func Classify(cluster string) Class {
	if cluster == "" {
		return 0
	}

	first, size := utf8.DecodeRuneInString(cluster)
	single := size == len(cluster)

	var c Class
	if single {
		switch {
		case first >= '0' && first <= '9':
			c |= Digit
		case first >= 'a' && first <= 'z':
			c |= Lowercase
		case first >= 'A' && first <= 'Z':
			c |= Uppercase
		}
	}

	if first >= cjkFirst && first <= cjkLast {
		c |= Chinese
	}

	// UNICODE: keycaps, flags and skin-tone sequences have more than one
	// scalar; any such cluster led by an Emoji scalar counts as emoji.
	if hasEmojiProperty(first) && (first > emojiSingleFloor || !single) {
		c |= Emoji
	}

	return c
}

// Has reports whether every flag in other is set in c.
func (c Class) Has(other Class) bool {
	return c&other == other
}

// IsUnrestricted reports whether c filters nothing. The zero set and any
// set containing Unrestricted both qualify.
func (c Class) IsUnrestricted() bool {
	return c == 0 || c&Unrestricted != 0
}

// Allows reports whether the cluster passes the class set.
func (c Class) Allows(cluster string) bool {
	if c.IsUnrestricted() {
		return true
	}
	return Classify(cluster)&c != 0
}

// =============================================================================
// NAMES
// =============================================================================

var classNames = []struct {
	class Class
	name  string
}{
	{Digit, "digit"},
	{Lowercase, "lower"},
	{Uppercase, "upper"},
	{Chinese, "chinese"},
	{Emoji, "emoji"},
	{Unrestricted, "all"},
}

var classAliases = map[string]Class{
	"digit":        Digit,
	"digits":       Digit,
	"number":       Digit,
	"lower":        Lowercase,
	"lowercase":    Lowercase,
	"upper":        Uppercase,
	"uppercase":    Uppercase,
	"chinese":      Chinese,
	"cjk":          Chinese,
	"emoji":        Emoji,
	"all":          Unrestricted,
	"unrestricted": Unrestricted,
}

// ParseClass parses a single class name. Names are case-insensitive.
func ParseClass(name string) (Class, error) {
	c, ok := classAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	return c, nil
}

// ParseClasses combines several class names into one set. Entries may
// themselves be comma separated.
func ParseClasses(names []string) (Class, error) {
	var c Class
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			parsed, err := ParseClass(name)
			if err != nil {
				return 0, err
			}
			c |= parsed
		}
	}
	return c, nil
}

// Names returns the canonical names of the flags set in c.
func (c Class) Names() []string {
	var names []string
	for _, cn := range classNames {
		if c&cn.class != 0 {
			names = append(names, cn.name)
		}
	}
	return names
}

// String returns the comma separated canonical names, or "all" for the
// zero set.
func (c Class) String() string {
	if c == 0 {
		return "all"
	}
	return strings.Join(c.Names(), ",")
}
