// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package decimal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSpec is returned when a textual policy cannot be parsed.
var ErrInvalidSpec = errors.New("invalid decimal policy")

// Policy is the closed set of decimal shapes. The only implementations are
// FixedParts, FixedTotal and SignificantDigits.
type Policy interface {
	// SignAllowed reports whether a leading '+' or '-' is accepted.
	SignAllowed() bool

	// String returns the textual form accepted by ParsePolicy.
	String() string

	isPolicy()
}

// FixedParts caps the integer and fractional digit counts independently.
type FixedParts struct {
	IntegerDigits int
	DecimalDigits int
	AllowSign     bool
}

// FixedTotal caps the combined integer and fractional digit count.
type FixedTotal struct {
	TotalDigits int
	AllowSign   bool
}

// SignificantDigits caps the integer digits, the significant fractional
// digits after any leading zeros, and the overall fractional length.
type SignificantDigits struct {
	IntegerDigits     int
	SignificantDigits int
	MaxDecimalDigits  int
	AllowSign         bool
}

func (FixedParts) isPolicy()        {}
func (FixedTotal) isPolicy()        {}
func (SignificantDigits) isPolicy() {}

func (p FixedParts) SignAllowed() bool        { return p.AllowSign }
func (p FixedTotal) SignAllowed() bool        { return p.AllowSign }
func (p SignificantDigits) SignAllowed() bool { return p.AllowSign }

func (p FixedParts) String() string {
	return withSign(fmt.Sprintf("parts:%d:%d", p.IntegerDigits, p.DecimalDigits), p.AllowSign)
}

func (p FixedTotal) String() string {
	return withSign(fmt.Sprintf("total:%d", p.TotalDigits), p.AllowSign)
}

func (p SignificantDigits) String() string {
	return withSign(fmt.Sprintf("sig:%d:%d:%d", p.IntegerDigits, p.SignificantDigits, p.MaxDecimalDigits), p.AllowSign)
}

func withSign(s string, allow bool) string {
	if allow {
		return s + ":signed"
	}
	return s
}

// =============================================================================
// PARSING
// =============================================================================

// ParsePolicy parses the textual policy form:
//
//	parts:I:D        FixedParts
//	total:T          FixedTotal
//	sig:I:S:M        SignificantDigits
//
// Any form may end in ":signed" to allow a leading sign. Counts must be
// non-negative integers.
func ParsePolicy(spec string) (Policy, error) {
	fields := strings.Split(strings.ToLower(strings.TrimSpace(spec)), ":")
	signed := false
	if n := len(fields); n > 1 && fields[n-1] == "signed" {
		signed = true
		fields = fields[:n-1]
	}

	kind, args := fields[0], fields[1:]
	counts := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q: count %q must be a non-negative integer", ErrInvalidSpec, spec, a)
		}
		counts[i] = n
	}

	want := map[string]int{"parts": 2, "total": 1, "sig": 3}
	n, ok := want[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q: unknown kind %q (want parts, total or sig)", ErrInvalidSpec, spec, kind)
	}
	if len(counts) != n {
		return nil, fmt.Errorf("%w: %q: %s takes %d counts, got %d", ErrInvalidSpec, spec, kind, n, len(counts))
	}

	switch kind {
	case "parts":
		return FixedParts{IntegerDigits: counts[0], DecimalDigits: counts[1], AllowSign: signed}, nil
	case "total":
		return FixedTotal{TotalDigits: counts[0], AllowSign: signed}, nil
	default:
		return SignificantDigits{IntegerDigits: counts[0], SignificantDigits: counts[1], MaxDecimalDigits: counts[2], AllowSign: signed}, nil
	}
}

// Check reports a negative count as an error. The engine itself treats
// negative counts as zero.
func Check(p Policy) error {
	var counts []int
	switch p := p.(type) {
	case FixedParts:
		counts = []int{p.IntegerDigits, p.DecimalDigits}
	case FixedTotal:
		counts = []int{p.TotalDigits}
	case SignificantDigits:
		counts = []int{p.IntegerDigits, p.SignificantDigits, p.MaxDecimalDigits}
	case nil:
		return nil
	}
	for _, c := range counts {
		if c < 0 {
			return fmt.Errorf("%w: %s: counts must be non-negative", ErrInvalidSpec, p)
		}
	}
	return nil
}

// HasFractionCapacity reports whether the policy admits any fractional
// digit at all.
func HasFractionCapacity(p Policy) bool {
	switch p := p.(type) {
	case FixedParts:
		return p.DecimalDigits > 0
	case FixedTotal:
		return p.TotalDigits >= 2
	case SignificantDigits:
		return p.SignificantDigits > 0 && p.MaxDecimalDigits > 0
	}
	return false
}

func nonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
