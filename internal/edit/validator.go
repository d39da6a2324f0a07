// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package edit

import (
	"github.com/jeranaias/inputlimit/internal/decimal"
	"github.com/jeranaias/inputlimit/internal/display"
	"github.com/jeranaias/inputlimit/internal/general"
	"github.com/jeranaias/inputlimit/internal/grapheme"
)

// Request is a proposed edit: replace Length clusters at Start of Text
// with Replacement. Composing is set while an input method still has
// uncommitted marked text.
type Request struct {
	Text        string
	Start       int
	Length      int
	Replacement string
	Composing   bool
}

// Result is the verdict on an edit. A rejected result echoes the current
// text with the caret at the request start.
type Result struct {
	Accepted bool
	Text     string
	Caret    int
}

// Validator applies one field's policy. It holds no buffer; every call is
// a pure function of the configured policy and its arguments.
type Validator struct {
	policy Policy
	filter *general.Filter
}

// New returns a validator for p.
func New(p Policy) (*Validator, error) {
	v := &Validator{}
	if err := v.Configure(p); err != nil {
		return nil, err
	}
	return v, nil
}

// Configure replaces the policy. It has no other effect: callers that want
// the current buffer brought in line call Correct afterwards.
func (v *Validator) Configure(p Policy) error {
	f, err := compile(p)
	if err != nil {
		return err
	}
	v.policy = p
	v.filter = f
	return nil
}

// Policy returns the configured policy.
func (v *Validator) Policy() Policy {
	return v.policy
}

func compile(p Policy) (*general.Filter, error) {
	if p.Decimal != nil {
		return nil, nil
	}
	return general.New(p.Classes, p.MaxLength, p.Pattern)
}

// =============================================================================
// KEYSTROKE PATH
// =============================================================================

// Validate decides a single keystroke or paste.
func (v *Validator) Validate(req Request) Result {
	start, length := grapheme.ClampRange(req.Text, req.Start, req.Length)

	if req.Composing {
		// Marked text is provisional; it is corrected once committed.
		return Result{
			Accepted: true,
			Text:     grapheme.Splice(req.Text, start, length, req.Replacement),
			Caret:    start + grapheme.Count(req.Replacement),
		}
	}

	replacement := v.policy.Normalize.Apply(req.Replacement)
	if v.policy.Decimal != nil {
		return v.validateDecimal(req.Text, start, length, replacement)
	}
	return v.validateGeneral(req.Text, start, length, replacement)
}

func (v *Validator) validateDecimal(text string, start, length int, replacement string) Result {
	out, ok := decimal.Validate(v.policy.Decimal, text, start, length, replacement)
	if !ok {
		return reject(text, start)
	}

	spliced := grapheme.Splice(text, start, length, replacement)
	caret := start + grapheme.Count(replacement)
	caret += leadingShift(v.policy.Decimal, spliced, out, caret)
	return Result{Accepted: true, Text: out, Caret: grapheme.Clamp(caret, 0, grapheme.Count(out))}
}

// leadingShift is how far correction moved a caret at position caret of
// before: a seeded "0" in front of the point adds one, leading zeros
// collapsed ahead of the caret subtract. Digits cut after the caret do not
// move it.
func leadingShift(p decimal.Policy, before, after string, caret int) int {
	b := decimal.Split(before, p.SignAllowed())
	a := decimal.Split(after, p.SignAllowed())
	if b.Integer == "" && a.Integer == "0" {
		return 1
	}
	removed := leadingZeros(b.Integer) - leadingZeros(a.Integer)
	if removed <= 0 {
		return 0
	}
	signLen := len(before) - len(b.Integer) - len(b.Fraction)
	if b.HasPoint {
		signLen--
	}
	return -min(removed, max(caret-signLen, 0))
}

func leadingZeros(s string) int {
	n := 0
	for n < len(s) && s[n] == '0' {
		n++
	}
	return n
}

func (v *Validator) validateGeneral(text string, start, length int, replacement string) Result {
	if !v.filter.CheckReplacement(replacement) {
		return reject(text, start)
	}

	spliced := grapheme.Splice(text, start, length, replacement)
	out := v.filter.Apply(v.policy.Normalize.Apply(spliced))
	if replacement != "" && out == text {
		// Nothing the user typed survived, e.g. a keystroke past the limit.
		return reject(text, start)
	}

	prefix := grapheme.Slice(text, 0, start) + replacement
	caret := grapheme.Count(v.filter.Apply(v.policy.Normalize.Apply(prefix)))
	return Result{Accepted: true, Text: out, Caret: grapheme.Clamp(caret, 0, grapheme.Count(out))}
}

func reject(text string, start int) Result {
	return Result{Accepted: false, Text: text, Caret: start}
}

// =============================================================================
// CORRECTION PATH
// =============================================================================

// Correct brings a whole buffer in line with the policy. It serves setting
// text programmatically, pastes the keystroke path did not see, and
// revalidation after Configure. While composing the buffer is left alone.
func (v *Validator) Correct(text string, caret int, composing bool) Result {
	if composing {
		return Result{Accepted: true, Text: text, Caret: grapheme.Clamp(caret, 0, grapheme.Count(text))}
	}

	normalized := v.policy.Normalize.Apply(text)
	var out string
	if v.policy.Decimal != nil {
		out = decimal.Correct(v.policy.Decimal, normalized)
	} else {
		out = v.filter.Apply(normalized)
	}
	return Result{Accepted: true, Text: out, Caret: grapheme.Clamp(caret, 0, grapheme.Count(out))}
}

// =============================================================================
// DISPLAY
// =============================================================================

// RealText returns the trimmed display value of text.
func (v *Validator) RealText(text string) (string, bool) {
	return display.RealText(v.policy.Decimal, text)
}

// RealDecimalText returns the padded display value of text.
func (v *Validator) RealDecimalText(text string) (string, bool) {
	return display.RealDecimalText(v.policy.Decimal, text)
}

// =============================================================================
// STATELESS ENTRY POINTS
// =============================================================================

// ValidateEdit validates req against p without keeping a validator. An
// uncompilable pattern is ignored; use Policy.Check to surface it.
func ValidateEdit(p Policy, req Request) Result {
	return oneShot(p).Validate(req)
}

// CorrectBuffer corrects text against p without keeping a validator.
func CorrectBuffer(p Policy, text string, caret int) Result {
	return oneShot(p).Correct(text, caret, false)
}

func oneShot(p Policy) *Validator {
	v, err := New(p)
	if err != nil {
		p.Pattern = ""
		v, _ = New(p)
	}
	return v
}
