// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package edit

import (
	"github.com/google/uuid"

	"github.com/jeranaias/inputlimit/internal/grapheme"
)

// =============================================================================
// FIELD - HOST-SIDE BUFFER OWNER
// =============================================================================

// Field owns the buffer, caret and listeners of one text input and routes
// every mutation through its Validator. It is meant to be driven from a
// single UI loop and is not safe for concurrent use.
//
// Listeners run after a mutation has been applied. A listener may edit the
// field again; that edit is applied at once, but its notification is
// folded into the running round instead of re-entering the listeners.
type Field struct {
	id        uuid.UUID
	validator *Validator
	text      string
	caret     int
	composing bool

	onChange     []func(text string)
	onRealChange []func(value string, ok bool)

	dispatching bool
	notified    string
}

// NewField returns an empty field governed by p.
func NewField(p Policy) (*Field, error) {
	v, err := New(p)
	if err != nil {
		return nil, err
	}
	return &Field{id: uuid.New(), validator: v}, nil
}

// ID identifies the field in logs.
func (f *Field) ID() string { return f.id.String() }

// Text returns the stored text.
func (f *Field) Text() string { return f.text }

// Caret returns the caret as a grapheme index.
func (f *Field) Caret() int { return f.caret }

// Composing reports whether marked text is pending.
func (f *Field) Composing() bool { return f.composing }

// Policy returns the active policy.
func (f *Field) Policy() Policy { return f.validator.Policy() }

// Len returns the stored text length in grapheme clusters.
func (f *Field) Len() int { return grapheme.Count(f.text) }

// Configure swaps the policy without touching the buffer. Call Revalidate
// to correct the buffer under the new policy.
func (f *Field) Configure(p Policy) error {
	return f.validator.Configure(p)
}

// OnChange registers a listener for stored text changes.
func (f *Field) OnChange(fn func(text string)) {
	f.onChange = append(f.onChange, fn)
}

// OnRealChange registers a listener that receives RealText whenever the
// stored text changes.
func (f *Field) OnRealChange(fn func(value string, ok bool)) {
	f.onRealChange = append(f.onRealChange, fn)
}

// =============================================================================
// KEYSTROKE PATH
// =============================================================================

// Replace proposes replacing length clusters at start with s and reports
// whether the edit was accepted.
func (f *Field) Replace(start, length int, s string) bool {
	res := f.validator.Validate(Request{
		Text:        f.text,
		Start:       start,
		Length:      length,
		Replacement: s,
		Composing:   f.composing,
	})
	if !res.Accepted {
		return false
	}
	f.apply(res)
	return true
}

// Insert types s at the caret.
func (f *Field) Insert(s string) bool {
	return f.Replace(f.caret, 0, s)
}

// DeleteBackward removes the cluster before the caret.
func (f *Field) DeleteBackward() bool {
	if f.caret == 0 {
		return false
	}
	return f.Replace(f.caret-1, 1, "")
}

// DeleteForward removes the cluster after the caret.
func (f *Field) DeleteForward() bool {
	if f.caret >= f.Len() {
		return false
	}
	return f.Replace(f.caret, 1, "")
}

// =============================================================================
// CORRECTION PATH
// =============================================================================

// SetText replaces the whole buffer out of band and corrects it. The caret
// moves to the end.
func (f *Field) SetText(s string) {
	f.apply(f.validator.Correct(s, grapheme.Count(s), f.composing))
}

// Paste splices s in at the caret unconditionally and then corrects the
// buffer, the way a host that cannot veto a paste behaves.
func (f *Field) Paste(s string) {
	spliced := grapheme.Splice(f.text, f.caret, 0, s)
	f.apply(f.validator.Correct(spliced, f.caret+grapheme.Count(s), f.composing))
}

// Revalidate corrects the current buffer under the active policy.
func (f *Field) Revalidate() {
	f.apply(f.validator.Correct(f.text, f.caret, f.composing))
}

// SetComposing marks the start or end of an input method composition.
// Ending one commits the buffer through the correction path.
func (f *Field) SetComposing(composing bool) {
	was := f.composing
	f.composing = composing
	if was && !composing {
		f.Revalidate()
	}
}

// SetCaret moves the caret, clamped to the buffer.
func (f *Field) SetCaret(n int) {
	f.caret = grapheme.Clamp(n, 0, f.Len())
}

// =============================================================================
// DISPLAY
// =============================================================================

// RealText returns the trimmed display value of the buffer.
func (f *Field) RealText() (string, bool) {
	return f.validator.RealText(f.text)
}

// RealDecimalText returns the padded display value of the buffer.
func (f *Field) RealDecimalText() (string, bool) {
	return f.validator.RealDecimalText(f.text)
}

// =============================================================================
// NOTIFICATION
// =============================================================================

func (f *Field) apply(res Result) {
	f.text = res.Text
	f.caret = res.Caret
	f.notify()
}

// notify runs listeners until the text they observed is the stored text.
// Calls made from inside a listener return immediately; the outer loop
// picks up their changes.
func (f *Field) notify() {
	if f.dispatching {
		return
	}
	f.dispatching = true
	defer func() { f.dispatching = false }()

	for f.text != f.notified {
		text := f.text
		f.notified = text
		for _, fn := range f.onChange {
			fn(text)
		}
		if len(f.onRealChange) > 0 {
			value, ok := f.validator.RealText(text)
			for _, fn := range f.onRealChange {
				fn(value, ok)
			}
		}
	}
}
