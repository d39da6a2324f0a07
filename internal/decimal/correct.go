// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package decimal

// Correct rewrites any text into the canonical form the policy allows.
// Non-digits are stripped, leading integer zeros collapse, and each part is
// cut to its cap. Correct is idempotent. A nil policy returns text as is.
//
// Digit strings are never converted to machine integers, so integer parts
// of any length are handled without overflow.
func Correct(p Policy, text string) string {
	if p == nil {
		return text
	}

	c := Split(text, p.SignAllowed())
	if c.isLonePoint() {
		if !HasFractionCapacity(p) {
			return c.Sign
		}
		c.Integer = "0"
	}

	integer := trimLeadingZeros(digitsOnly(c.Integer))
	fraction := digitsOnly(c.Fraction)
	hasPoint := c.HasPoint

	switch p := p.(type) {
	case FixedParts:
		integer = cut(integer, nonNeg(p.IntegerDigits))
		if d := nonNeg(p.DecimalDigits); d == 0 {
			fraction, hasPoint = "", false
		} else {
			fraction = cut(fraction, d)
		}

	case FixedTotal:
		t := nonNeg(p.TotalDigits)
		if len(integer) >= t {
			integer = cut(integer, t)
			fraction, hasPoint = "", false
		} else {
			fraction = cut(fraction, t-len(integer))
		}

	case SignificantDigits:
		integer = cut(integer, nonNeg(p.IntegerDigits))
		s, m := nonNeg(p.SignificantDigits), nonNeg(p.MaxDecimalDigits)
		if s == 0 || m == 0 {
			fraction, hasPoint = "", false
		} else {
			z := countLeadingZeros(fraction)
			fraction = cut(fraction[:z]+cut(fraction[z:], s), m)
		}
	}

	return assemble(c.Sign, integer, fraction, hasPoint)
}
