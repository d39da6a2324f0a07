// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display derives presentation values from a field's stored text.
// These are pull queries: nothing here mutates the buffer.
package display

import (
	"strings"

	"github.com/jeranaias/inputlimit/internal/decimal"
)

// RealText returns the minimal numeric form of text: leading integer zeros
// and trailing fractional zeros removed, and a bare trailing point dropped.
// Without a decimal policy the text is returned unchanged. ok is false when
// there is no integer part to show.
func RealText(p decimal.Policy, text string) (string, bool) {
	if p == nil {
		return text, true
	}
	sign, integer, fraction, ok := parts(p, text)
	if !ok {
		return "", false
	}
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		return sign + integer, true
	}
	return sign + integer + "." + fraction, true
}

// RealDecimalText returns text padded out to the policy's nominal shape,
// for example "1.2" as "1.200" under two integer and three decimal digits.
// ok is false when there is no integer part to show or the policy leaves
// no integer capacity.
func RealDecimalText(p decimal.Policy, text string) (string, bool) {
	if p == nil {
		return text, true
	}
	sign, integer, fraction, ok := parts(p, text)
	if !ok {
		return "", false
	}

	switch p := p.(type) {
	case decimal.FixedParts:
		if p.IntegerDigits <= 0 {
			return "", false
		}
		integer = truncate(integer, p.IntegerDigits)
		if p.DecimalDigits <= 0 {
			return sign + integer, true
		}
		fraction = pad(truncate(fraction, p.DecimalDigits), p.DecimalDigits)

	case decimal.FixedTotal:
		if p.TotalDigits <= 0 {
			return "", false
		}
		if len(integer) >= p.TotalDigits {
			return sign + truncate(integer, p.TotalDigits), true
		}
		budget := p.TotalDigits - len(integer)
		fraction = pad(truncate(fraction, budget), budget)

	case decimal.SignificantDigits:
		if p.IntegerDigits <= 0 {
			return "", false
		}
		integer = truncate(integer, p.IntegerDigits)
		if p.SignificantDigits <= 0 || p.MaxDecimalDigits <= 0 {
			return sign + integer, true
		}
		z := len(fraction) - len(strings.TrimLeft(fraction, "0"))
		significant := pad(truncate(fraction[z:], p.SignificantDigits), p.SignificantDigits)
		fraction = truncate(fraction[:z]+significant, p.MaxDecimalDigits)
	}

	return sign + integer + "." + fraction, true
}

// parts splits canonical text into digit-only pieces with leading integer
// zeros collapsed.
func parts(p decimal.Policy, text string) (sign, integer, fraction string, ok bool) {
	c := decimal.Split(text, p.SignAllowed())
	integer = strings.TrimLeft(c.Integer, "0")
	if integer == "" && c.Integer != "" {
		integer = "0"
	}
	if integer == "" {
		return "", "", "", false
	}
	return c.Sign, integer, c.Fraction, true
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func pad(s string, n int) string {
	if len(s) < n {
		return s + strings.Repeat("0", n-len(s))
	}
	return s
}
