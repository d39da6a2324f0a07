// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package edit

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/jeranaias/inputlimit/internal/charclass"
	"github.com/jeranaias/inputlimit/internal/decimal"
)

// Policy is the full constraint set of one field. When Decimal is set it
// supersedes Classes, MaxLength and Pattern.
type Policy struct {
	Classes   charclass.Class
	MaxLength int
	Pattern   string
	Decimal   decimal.Policy
	Normalize Normalization
}

// Normalization rewrites input before it is validated.
type Normalization struct {
	// NFC composes base letters with their combining marks.
	NFC bool
	// FoldWidth maps full-width forms such as "１２" to their ASCII
	// counterparts.
	FoldWidth bool
}

// Apply normalizes s.
func (n Normalization) Apply(s string) string {
	if n.NFC {
		s = norm.NFC.String(s)
	}
	if n.FoldWidth {
		s = width.Fold.String(s)
	}
	return s
}

// IsDecimal reports whether the decimal engine owns this field.
func (p Policy) IsDecimal() bool {
	return p.Decimal != nil
}

// Check reports configuration errors: negative counts, an uncompilable
// pattern or a decimal policy mixed with free-text settings.
func (p Policy) Check() error {
	if p.MaxLength < 0 {
		return fmt.Errorf("max length must be non-negative, got %d", p.MaxLength)
	}
	if p.Decimal != nil {
		if err := decimal.Check(p.Decimal); err != nil {
			return err
		}
		if p.Classes != 0 || p.MaxLength != 0 || p.Pattern != "" {
			return fmt.Errorf("decimal policy %s cannot be combined with classes, max length or pattern", p.Decimal)
		}
	}
	_, err := compile(p)
	return err
}

// String describes the policy in the flag syntax the CLI accepts.
func (p Policy) String() string {
	var parts []string
	if p.Decimal != nil {
		parts = append(parts, "decimal="+p.Decimal.String())
	} else {
		parts = append(parts, "classes="+p.Classes.String())
		if p.MaxLength > 0 {
			parts = append(parts, fmt.Sprintf("max=%d", p.MaxLength))
		}
		if p.Pattern != "" {
			parts = append(parts, fmt.Sprintf("pattern=%q", p.Pattern))
		}
	}
	if p.Normalize.NFC {
		parts = append(parts, "nfc")
	}
	if p.Normalize.FoldWidth {
		parts = append(parts, "fold-width")
	}
	return strings.Join(parts, " ")
}
