// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package decimal

import (
	"strings"

	"github.com/jeranaias/inputlimit/internal/grapheme"
)

// Validate decides whether replacing length clusters at start of current
// with replacement is a legal keystroke. On acceptance it returns the
// corrected buffer. Ranges past the end of current are clamped.
//
// An edit is rejected when the replacement holds anything but digits, '.'
// or an allowed sign, when the result would carry a second point or sign,
// a sign anywhere but first, or when any digit cap would be exceeded.
// Deletions are always accepted.
func Validate(p Policy, current string, start, length int, replacement string) (string, bool) {
	if p == nil {
		return grapheme.Splice(current, start, length, replacement), true
	}
	if !validReplacement(replacement, p.SignAllowed()) {
		return current, false
	}

	spliced := grapheme.Splice(current, start, length, replacement)
	if replacement == "" {
		return Correct(p, spliced), true
	}

	if strings.Count(spliced, ".") > 1 {
		return current, false
	}
	if signs := strings.Count(spliced, "+") + strings.Count(spliced, "-"); signs > 1 ||
		(signs == 1 && !isSign(spliced[0])) {
		return current, false
	}

	c := Split(spliced, p.SignAllowed())
	if c.isLonePoint() {
		if !HasFractionCapacity(p) {
			return current, false
		}
		return Correct(p, spliced), true
	}

	// A point with no integer digits in front would be cleared by Correct.
	if c.HasPoint && c.Integer == "" {
		return current, false
	}

	if !withinCaps(p, trimLeadingZeros(c.Integer), c.Fraction, c.HasPoint) {
		return current, false
	}
	return Correct(p, spliced), true
}

func validReplacement(s string, allowSign bool) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case (r == '+' || r == '-') && allowSign:
		default:
			return false
		}
	}
	return true
}

func withinCaps(p Policy, integer, fraction string, hasPoint bool) bool {
	switch p := p.(type) {
	case FixedParts:
		d := nonNeg(p.DecimalDigits)
		if len(integer) > nonNeg(p.IntegerDigits) || len(fraction) > d {
			return false
		}
		return !hasPoint || d > 0

	case FixedTotal:
		t := nonNeg(p.TotalDigits)
		if len(integer)+len(fraction) > t {
			return false
		}
		return !hasPoint || len(integer) < t

	case SignificantDigits:
		s, m := nonNeg(p.SignificantDigits), nonNeg(p.MaxDecimalDigits)
		if len(integer) > nonNeg(p.IntegerDigits) {
			return false
		}
		if hasPoint && (s == 0 || m == 0) {
			return false
		}
		if len(fraction) > m {
			return false
		}
		return len(fraction)-countLeadingZeros(fraction) <= s
	}
	return false
}
