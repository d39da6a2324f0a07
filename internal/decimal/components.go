// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package decimal

import "strings"

// Components is a decimal string split into its parts. Integer and
// Fraction hold the raw text on either side of the first point; callers
// decide whether to reject or strip non-digits.
type Components struct {
	Sign     string // "", "+" or "-"
	Integer  string
	Fraction string
	HasPoint bool
}

// Split separates the sign prefix and splits the rest at the first '.'.
// A leading sign is always consumed but only kept when allowSign is set.
func Split(text string, allowSign bool) Components {
	var c Components
	if text != "" && isSign(text[0]) {
		if allowSign {
			c.Sign = text[:1]
		}
		text = text[1:]
	}
	c.Integer, c.Fraction, c.HasPoint = strings.Cut(text, ".")
	return c
}

// String reassembles the components.
func (c Components) String() string {
	s := c.Sign + c.Integer
	if c.HasPoint {
		s += "." + c.Fraction
	}
	return s
}

// isLonePoint reports whether nothing but a '.' follows the sign.
func (c Components) isLonePoint() bool {
	return c.HasPoint && c.Integer == "" && c.Fraction == ""
}

func isSign(b byte) bool {
	return b == '+' || b == '-'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func digitsOnly(s string) string {
	if isAllDigits(s) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// trimLeadingZeros collapses leading zeros, keeping a single "0" for an
// all-zero integer part. The empty string stays empty.
func trimLeadingZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" && s != "" {
		return "0"
	}
	return t
}

func countLeadingZeros(s string) int {
	return len(s) - len(strings.TrimLeft(s, "0"))
}

// cut keeps at most n bytes of an ASCII digit string.
func cut(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

func padZeros(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat("0", n-len(s))
}

// assemble renders a sign, integer and fraction. An empty integer leaves
// only the sign; an empty fraction keeps the point when hasPoint is set.
func assemble(sign, integer, fraction string, hasPoint bool) string {
	switch {
	case integer == "":
		return sign
	case fraction == "":
		if hasPoint {
			return sign + integer + "."
		}
		return sign + integer
	default:
		return sign + integer + "." + fraction
	}
}
