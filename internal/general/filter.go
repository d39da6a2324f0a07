// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package general implements the free-text field policy: a character class
// allowlist, an optional match pattern and a grapheme length limit.
package general

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/jeranaias/inputlimit/internal/charclass"
	"github.com/jeranaias/inputlimit/internal/grapheme"
)

// PatternTimeout bounds a single pattern evaluation.
const PatternTimeout = 100 * time.Millisecond

// Filter normalizes free text. The zero value passes everything through.
type Filter struct {
	// Classes is the allowlist. Zero or Unrestricted disables class filtering.
	Classes charclass.Class

	// MaxLength caps the result in grapheme clusters. Zero means no limit.
	MaxLength int

	pattern *regexp2.Regexp
}

// New builds a filter. An empty pattern disables pattern filtering; a
// non-empty one is compiled case-insensitively.
func New(classes charclass.Class, maxLength int, pattern string) (*Filter, error) {
	f := &Filter{Classes: classes, MaxLength: maxLength}
	if err := f.SetPattern(pattern); err != nil {
		return nil, err
	}
	return f, nil
}

// SetPattern replaces the match pattern.
func (f *Filter) SetPattern(pattern string) error {
	if pattern == "" {
		f.pattern = nil
		return nil
	}
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = PatternTimeout
	f.pattern = re
	return nil
}

// Pattern returns the configured pattern source, or "".
func (f *Filter) Pattern() string {
	if f.pattern == nil {
		return ""
	}
	return f.pattern.String()
}

// Apply drops disallowed clusters, keeps only pattern matches and finally
// truncates to MaxLength. Filtering always happens before truncation so
// dropped clusters never count against the limit.
func (f *Filter) Apply(text string) string {
	if f == nil {
		return text
	}
	out := f.filterClasses(text)
	if f.pattern != nil {
		out = f.keepMatches(out)
	}
	if f.MaxLength > 0 {
		out = grapheme.Truncate(out, f.MaxLength)
	}
	return out
}

// CheckReplacement reports whether every cluster of a typed or pasted
// replacement is allowed. The empty replacement (a deletion) always is.
func (f *Filter) CheckReplacement(replacement string) bool {
	if f == nil || f.Classes.IsUnrestricted() {
		return true
	}
	for _, cluster := range grapheme.Clusters(replacement) {
		if !f.Classes.Allows(cluster) {
			return false
		}
	}
	return true
}

func (f *Filter) filterClasses(text string) string {
	if f.Classes.IsUnrestricted() {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, cluster := range grapheme.Clusters(text) {
		if f.Classes.Allows(cluster) {
			b.WriteString(cluster)
		}
	}
	return b.String()
}

// keepMatches concatenates every non-overlapping match. A timeout keeps
// whatever was matched before it fired.
func (f *Filter) keepMatches(text string) string {
	var b strings.Builder
	m, err := f.pattern.FindStringMatch(text)
	for m != nil && err == nil {
		b.WriteString(m.String())
		m, err = f.pattern.FindNextMatch(m)
	}
	return b.String()
}
