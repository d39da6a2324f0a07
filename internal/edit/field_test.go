// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package edit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/inputlimit/internal/charclass"
	"github.com/jeranaias/inputlimit/internal/decimal"
)

func newField(t *testing.T, p Policy) *Field {
	t.Helper()
	f, err := NewField(p)
	require.NoError(t, err)
	return f
}

func TestField_Typing(t *testing.T) {
	f := newField(t, Policy{Decimal: decimal.FixedParts{IntegerDigits: 2, DecimalDigits: 3}})

	for _, k := range []string{"1", ".", "2", "0", "0"} {
		require.True(t, f.Insert(k), "key %q", k)
	}
	assert.Equal(t, "1.200", f.Text())
	assert.Equal(t, 5, f.Caret())

	assert.False(t, f.Insert("7"), "fourth decimal")

	trimmed, ok := f.RealText()
	assert.True(t, ok)
	assert.Equal(t, "1.2", trimmed)

	padded, ok := f.RealDecimalText()
	assert.True(t, ok)
	assert.Equal(t, "1.200", padded)
}

func TestField_Deletes(t *testing.T) {
	f := newField(t, Policy{MaxLength: 5})
	f.SetText("abc")
	require.Equal(t, 3, f.Caret())

	assert.True(t, f.DeleteBackward())
	assert.Equal(t, "ab", f.Text())
	assert.False(t, f.DeleteForward(), "caret at end")

	f.SetCaret(0)
	assert.False(t, f.DeleteBackward(), "caret at start")
	assert.True(t, f.DeleteForward())
	assert.Equal(t, "b", f.Text())
	assert.Equal(t, 0, f.Caret())

	f.SetCaret(42)
	assert.Equal(t, 1, f.Caret())
}

func TestField_ListenersRunAfterMutation(t *testing.T) {
	f := newField(t, Policy{Classes: charclass.Digit})

	var seen []string
	f.OnChange(func(text string) {
		assert.Equal(t, text, f.Text(), "listener sees the applied buffer")
		seen = append(seen, text)
	})

	f.Insert("1")
	f.Insert("x") // rejected, no notification
	f.Insert("2")
	f.Revalidate() // unchanged, no notification

	assert.Equal(t, []string{"1", "12"}, seen)
}

func TestField_ReentrantListener(t *testing.T) {
	f := newField(t, Policy{Classes: charclass.Digit, MaxLength: 4})

	depth, maxDepth := 0, 0
	var seen []string
	f.OnChange(func(text string) {
		depth++
		defer func() { depth-- }()
		if depth > maxDepth {
			maxDepth = depth
		}
		seen = append(seen, text)
		if text == "1" {
			f.Insert("0")
		}
	})

	f.Insert("1")

	assert.Equal(t, "10", f.Text())
	assert.Equal(t, []string{"1", "10"}, seen)
	assert.Equal(t, 1, maxDepth, "listeners are never re-entered")
}

func TestField_OnRealChange(t *testing.T) {
	f := newField(t, Policy{Decimal: decimal.FixedParts{IntegerDigits: 3, DecimalDigits: 2, AllowSign: true}})

	type update struct {
		value string
		ok    bool
	}
	var got []update
	f.OnRealChange(func(value string, ok bool) {
		got = append(got, update{value, ok})
	})

	f.Insert("-")
	f.Insert("5")
	f.Insert(".")
	f.Insert("5")
	f.Insert("0")

	assert.Equal(t, []update{
		{"", false},
		{"-5", true},
		{"-5", true},
		{"-5.5", true},
		{"-5.5", true},
	}, got)
}

func TestField_ConfigureThenRevalidate(t *testing.T) {
	f := newField(t, Policy{})
	f.SetText("abc123")

	require.NoError(t, f.Configure(Policy{Classes: charclass.Digit}))
	assert.Equal(t, "abc123", f.Text(), "configure has no side effects")

	f.Revalidate()
	assert.Equal(t, "123", f.Text())
	assert.Equal(t, 3, f.Caret())

	assert.Error(t, f.Configure(Policy{Pattern: "("}))
	assert.Equal(t, charclass.Digit, f.Policy().Classes)
}

func TestField_Composition(t *testing.T) {
	f := newField(t, Policy{Classes: charclass.Chinese, MaxLength: 5})

	f.SetComposing(true)
	require.True(t, f.Insert("zhong"))
	assert.Equal(t, "zhong", f.Text(), "marked text is not corrected")
	assert.True(t, f.Composing())

	require.True(t, f.Replace(0, 5, "中"))
	f.SetComposing(false)
	assert.Equal(t, "中", f.Text())

	f.SetComposing(true)
	f.Insert("abc")
	f.SetComposing(false)
	assert.Equal(t, "中", f.Text(), "uncommitted latin is dropped on commit")
}

func TestField_Paste(t *testing.T) {
	f := newField(t, Policy{Classes: charclass.Chinese, MaxLength: 5})
	f.Paste("a中b文c测d试")
	assert.Equal(t, "中文测试", f.Text())
	assert.Equal(t, 4, f.Caret())

	d := newField(t, Policy{Decimal: decimal.FixedTotal{TotalDigits: 5}})
	d.Paste("1234567")
	assert.Equal(t, "12345", d.Text())
	assert.Equal(t, 5, d.Caret())
}

func TestField_ID(t *testing.T) {
	a := newField(t, Policy{})
	b := newField(t, Policy{})

	_, err := uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewField_InvalidPattern(t *testing.T) {
	_, err := NewField(Policy{Pattern: "[a-"})
	assert.Error(t, err)
}
