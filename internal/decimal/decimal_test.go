// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package decimal

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// PARSING
// =============================================================================

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		spec string
		want Policy
	}{
		{"parts:2:3", FixedParts{IntegerDigits: 2, DecimalDigits: 3}},
		{"total:5", FixedTotal{TotalDigits: 5}},
		{"sig:3:2:5", SignificantDigits{IntegerDigits: 3, SignificantDigits: 2, MaxDecimalDigits: 5}},
		{"SIG:3:2:5:signed", SignificantDigits{IntegerDigits: 3, SignificantDigits: 2, MaxDecimalDigits: 5, AllowSign: true}},
		{" parts:0:0:signed ", FixedParts{AllowSign: true}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParsePolicy(tt.spec)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePolicy(%q) mismatch (-want +got):\n%s", tt.spec, diff)
			}

			again, err := ParsePolicy(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParsePolicy_Errors(t *testing.T) {
	for _, spec := range []string{"", "parts:2", "total:5:1", "sig:1:2", "ratio:1", "parts:-1:2", "total:x", "signed"} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParsePolicy(spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSpec))
		})
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(nil))
	assert.NoError(t, Check(FixedTotal{TotalDigits: 3}))
	assert.Error(t, Check(FixedParts{IntegerDigits: -1}))
	assert.Error(t, Check(SignificantDigits{MaxDecimalDigits: -2}))
}

func TestHasFractionCapacity(t *testing.T) {
	assert.True(t, HasFractionCapacity(FixedParts{IntegerDigits: 1, DecimalDigits: 1}))
	assert.False(t, HasFractionCapacity(FixedParts{IntegerDigits: 3}))
	assert.True(t, HasFractionCapacity(FixedTotal{TotalDigits: 2}))
	assert.False(t, HasFractionCapacity(FixedTotal{TotalDigits: 1}))
	assert.False(t, HasFractionCapacity(SignificantDigits{IntegerDigits: 1, SignificantDigits: 2}))
	assert.True(t, HasFractionCapacity(SignificantDigits{IntegerDigits: 1, SignificantDigits: 2, MaxDecimalDigits: 1}))
}

// =============================================================================
// SPLITTING
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		text      string
		allowSign bool
		want      Components
	}{
		{"-12.5", true, Components{Sign: "-", Integer: "12", Fraction: "5", HasPoint: true}},
		{"-12.5", false, Components{Integer: "12", Fraction: "5", HasPoint: true}},
		{"+7", true, Components{Sign: "+", Integer: "7"}},
		{"1.2.3", false, Components{Integer: "1", Fraction: "2.3", HasPoint: true}},
		{".", false, Components{HasPoint: true}},
		{"", true, Components{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Split(tt.text, tt.allowSign)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}

	assert.Equal(t, "-12.5", Split("-12.5", true).String())
	assert.Equal(t, "12.", Components{Integer: "12", HasPoint: true}.String())
}

// =============================================================================
// CORRECTION
// =============================================================================

func TestCorrect(t *testing.T) {
	parts23 := FixedParts{IntegerDigits: 2, DecimalDigits: 3}
	parts23s := FixedParts{IntegerDigits: 2, DecimalDigits: 3, AllowSign: true}
	total5 := FixedTotal{TotalDigits: 5}

	tests := []struct {
		name   string
		policy Policy
		in     string
		want   string
	}{
		{"parts keeps valid", parts23, "1.200", "1.200"},
		{"parts caps both sides", parts23, "12345.67891", "12.678"},
		{"parts strips junk", parts23, "a1b.c2d", "1.2"},
		{"parts collapses zeros", parts23, "007.5", "7.5"},
		{"parts all zero integer", parts23, "000", "0"},
		{"parts keeps trailing point", parts23, "3.", "3."},
		{"parts no decimals drops point", FixedParts{IntegerDigits: 3}, "12.5", "12"},
		{"parts zero integer clears", FixedParts{DecimalDigits: 2}, "12.5", ""},
		{"parts lone point seeds zero", parts23, ".", "0."},
		{"parts lone point no capacity", FixedParts{IntegerDigits: 3}, ".", ""},
		{"parts sign kept", parts23s, "-1.5", "-1.5"},
		{"parts sign alone", parts23s, "-", "-"},
		{"parts signed lone point", parts23s, "-.", "-0."},
		{"parts sign dropped", parts23, "-1.5", "1.5"},
		{"parts empty integer clears", parts23, ".5", ""},
		{"parts second point ignored", parts23, "1.2.3", "1.23"},
		{"total fraction fills budget", total5, "123.456", "123.45"},
		{"total integer over budget", total5, "1234567.8", "12345"},
		{"total integer at budget drops point", total5, "12345.", "12345"},
		{"total zero clears", FixedTotal{}, "12", ""},
		{"total one digit lone point", FixedTotal{TotalDigits: 1}, ".", ""},
		{"sig documented example", SignificantDigits{3, 5, 2, false}, "10.00001245", "10.00"},
		{"sig leading zeros kept", SignificantDigits{3, 2, 5, false}, "10.00001245", "10.00001"},
		{"sig max caps digits", SignificantDigits{3, 5, 2, false}, "10.123456", "10.12"},
		{"sig wide max", SignificantDigits{3, 2, 6, false}, "10.00001245", "10.000012"},
		{"sig integer cap", SignificantDigits{2, 2, 2, false}, "1234.5", "12.5"},
		{"sig zero significant drops fraction", SignificantDigits{3, 0, 4, false}, "1.25", "1"},
		{"sig zero integer clears", SignificantDigits{0, 2, 2, false}, "1.25", ""},
		{"negative counts act as zero", FixedParts{IntegerDigits: 2, DecimalDigits: -1}, "1.5", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Correct(tt.policy, tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Correct(tt.policy, got), "correct must be idempotent")
		})
	}
}

func TestCorrect_NilPolicy(t *testing.T) {
	assert.Equal(t, "abc", Correct(nil, "abc"))
}

func TestCorrect_LongIntegers(t *testing.T) {
	long := strings.Repeat("9", 64)
	p := FixedParts{IntegerDigits: 70, DecimalDigits: 2}
	assert.Equal(t, long+".12", Correct(p, "000"+long+".123"))
}

func TestCorrect_Properties(t *testing.T) {
	policies := []Policy{
		FixedParts{IntegerDigits: 2, DecimalDigits: 3, AllowSign: true},
		FixedParts{IntegerDigits: 4},
		FixedTotal{TotalDigits: 5, AllowSign: true},
		FixedTotal{TotalDigits: 1},
		SignificantDigits{IntegerDigits: 3, SignificantDigits: 2, MaxDecimalDigits: 5, AllowSign: true},
		SignificantDigits{IntegerDigits: 1, SignificantDigits: 3, MaxDecimalDigits: 2},
	}
	inputs := []string{
		"", ".", "-", "+.", "0", "00.00", "-0012.3400", "1.2.3.4", "--5", "+-3",
		"9876543.210987", "x1y2.z3", "0.000000001", "12345678901234567890.5",
		"１２.３", "-.5", "5-", " 4 . 2 ",
	}

	for _, p := range policies {
		for _, in := range inputs {
			got := Correct(p, in)
			require.Equal(t, got, Correct(p, got), "%s idempotence on %q", p, in)

			c := Split(got, p.SignAllowed())
			assert.LessOrEqual(t, strings.Count(got, "."), 1, "%s on %q", p, in)
			assert.True(t, isAllDigits(c.Integer) && isAllDigits(c.Fraction), "%s on %q gave %q", p, in, got)
			if !p.SignAllowed() {
				assert.NotContains(t, got, "-", "%s on %q", p, in)
				assert.NotContains(t, got, "+", "%s on %q", p, in)
			}

			switch p := p.(type) {
			case FixedParts:
				assert.LessOrEqual(t, len(c.Integer), p.IntegerDigits)
				assert.LessOrEqual(t, len(c.Fraction), p.DecimalDigits)
			case FixedTotal:
				assert.LessOrEqual(t, len(c.Integer)+len(c.Fraction), p.TotalDigits)
			case SignificantDigits:
				assert.LessOrEqual(t, len(c.Integer), p.IntegerDigits)
				assert.LessOrEqual(t, len(c.Fraction), p.MaxDecimalDigits)
				assert.LessOrEqual(t, len(c.Fraction)-countLeadingZeros(c.Fraction), p.SignificantDigits)
			}
		}
	}
}

func FuzzCorrectIdempotent(f *testing.F) {
	for _, seed := range []string{"", ".", "-1.5", "10.00001245", "007", "1.2.3"} {
		f.Add(seed)
	}
	p := SignificantDigits{IntegerDigits: 3, SignificantDigits: 2, MaxDecimalDigits: 5, AllowSign: true}
	f.Fuzz(func(t *testing.T, in string) {
		once := Correct(p, in)
		if twice := Correct(p, once); twice != once {
			t.Fatalf("Correct not idempotent: %q -> %q -> %q", in, once, twice)
		}
	})
}

// =============================================================================
// KEYSTROKE VALIDATION
// =============================================================================

// typeText feeds s one character at a time at the end of the buffer and
// returns the final buffer and how many keystrokes were rejected.
func typeText(p Policy, s string) (string, int) {
	buf := ""
	rejected := 0
	for _, r := range s {
		next, ok := Validate(p, buf, len([]rune(buf)), 0, string(r))
		if !ok {
			rejected++
			continue
		}
		buf = next
	}
	return buf, rejected
}

func TestValidate_FixedParts(t *testing.T) {
	p := FixedParts{IntegerDigits: 2, DecimalDigits: 3}

	got, ok := Validate(p, "1.2", 3, 0, "00")
	require.True(t, ok)
	assert.Equal(t, "1.200", got)

	_, ok = Validate(p, "1.200", 5, 0, "1")
	assert.False(t, ok, "fourth decimal digit")

	_, ok = Validate(p, "12", 2, 0, "3")
	assert.False(t, ok, "third integer digit")

	_, ok = Validate(p, "1.2", 3, 0, ".")
	assert.False(t, ok, "second point")

	_, ok = Validate(p, "1", 1, 0, "a")
	assert.False(t, ok, "letter")

	_, ok = Validate(p, "1", 0, 0, "-")
	assert.False(t, ok, "sign not allowed")

	_, ok = Validate(FixedParts{IntegerDigits: 3}, "1", 1, 0, ".")
	assert.False(t, ok, "point without decimal capacity")
}

func TestValidate_FixedTotal(t *testing.T) {
	p := FixedTotal{TotalDigits: 5}

	buf, rejected := typeText(p, "123456")
	assert.Equal(t, "12345", buf)
	assert.Equal(t, 1, rejected)

	_, ok := Validate(p, "12345", 5, 0, ".")
	assert.False(t, ok, "point with a full integer part")

	got, ok := Validate(p, "123", 3, 0, ".")
	require.True(t, ok)
	assert.Equal(t, "123.", got)

	buf, rejected = typeText(p, "12.3456")
	assert.Equal(t, "12.345", buf)
	assert.Equal(t, 1, rejected)
}

func TestValidate_SignificantDigits(t *testing.T) {
	p := SignificantDigits{IntegerDigits: 3, SignificantDigits: 2, MaxDecimalDigits: 5}

	buf, rejected := typeText(p, "10.00001245")
	assert.Equal(t, "10.00001", buf)
	assert.Equal(t, 3, rejected)

	buf, _ = typeText(SignificantDigits{IntegerDigits: 3, SignificantDigits: 5, MaxDecimalDigits: 2}, "10.123456")
	assert.Equal(t, "10.12", buf)

	_, ok := Validate(SignificantDigits{IntegerDigits: 3, MaxDecimalDigits: 2}, "1", 1, 0, ".")
	assert.False(t, ok, "no significant capacity")
}

func TestValidate_Structure(t *testing.T) {
	p := FixedParts{IntegerDigits: 4, DecimalDigits: 2, AllowSign: true}

	tests := []struct {
		name    string
		current string
		start   int
		length  int
		repl    string
		want    string
		ok      bool
	}{
		{"lone point seeds zero", "", 0, 0, ".", "0.", true},
		{"signed lone point", "-", 1, 0, ".", "-0.", true},
		{"sign at start", "12", 0, 0, "-", "-12", true},
		{"sign not first", "12", 1, 0, "-", "12", false},
		{"second sign", "-12", 0, 0, "+", "-12", false},
		{"leading zero collapses", "0", 1, 0, "5", "5", true},
		{"point before digits rejected", "5", 0, 0, ".", "5", false},
		{"deletion always accepted", "1.25", 1, 1, "", "125", true},
		{"deletion over cap is corrected", "1234.5", 4, 1, "", "1234", true},
		{"replace selection", "12.34", 0, 2, "9", "9.34", true},
		{"range past end appends", "1", 10, 5, "2", "12", true},
		{"paste valid run", "", 0, 0, "-12.5", "-12.5", true},
		{"paste invalid run", "", 0, 0, "1,5", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Validate(p, tt.current, tt.start, tt.length, tt.repl)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_NilPolicy(t *testing.T) {
	got, ok := Validate(nil, "ab", 1, 0, "x")
	assert.True(t, ok)
	assert.Equal(t, "axb", got)
}
