// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/inputlimit/internal/edit"
	"github.com/jeranaias/inputlimit/internal/grapheme"
	"github.com/jeranaias/inputlimit/internal/ui/styles"
	"github.com/jeranaias/inputlimit/internal/util"
)

// Clipboard access, replaceable in tests.
var (
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
)

// =============================================================================
// MESSAGES
// =============================================================================

// FieldChangedMsg is emitted after the stored text of a field changed.
type FieldChangedMsg struct {
	ID     string
	Name   string
	Text   string
	Real   string
	RealOK bool
}

// FieldRejectedMsg is emitted when a keystroke or paste was refused.
type FieldRejectedMsg struct {
	ID          string
	Name        string
	Replacement string
}

// ClipboardErrorMsg reports a failed clipboard read or write.
type ClipboardErrorMsg struct {
	ID   string
	Name string
	Err  error
}

// =============================================================================
// KEY MAP
// =============================================================================

// InputKeyMap lists the editing keys LimitedInput handles itself. Keys not
// listed here are left to the parent model.
type InputKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	DeleteBack key.Binding
	DeleteFwd  key.Binding
	DeleteHead key.Binding
	DeleteTail key.Binding
	Paste      key.Binding
	CopyValue  key.Binding
}

// DefaultInputKeyMap returns the standard editing keys.
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Left:       key.NewBinding(key.WithKeys("left", "ctrl+b"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "ctrl+f"), key.WithHelp("→", "right")),
		Home:       key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "start")),
		End:        key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "end")),
		DeleteBack: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("bksp", "delete")),
		DeleteFwd:  key.NewBinding(key.WithKeys("delete", "ctrl+d"), key.WithHelp("del", "delete forward")),
		DeleteHead: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "clear to start")),
		DeleteTail: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("C-k", "clear to end")),
		Paste:      key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("C-v", "paste")),
		CopyValue:  key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("C-y", "copy value")),
	}
}

// =============================================================================
// LIMITED INPUT COMPONENT
// =============================================================================

// LimitedInputOptions configure a LimitedInput.
type LimitedInputOptions struct {
	Name        string
	Label       string
	Placeholder string
	Policy      edit.Policy
	Width       int
	ShowReal    bool
}

// LimitedInput is a single-line text input whose content is governed by an
// edit.Policy. Every keystroke is vetted by the field's validator before it
// reaches the buffer; the wrapped textinput only renders.
type LimitedInput struct {
	name     string
	label    string
	field    *edit.Field
	input    textinput.Model
	keys     InputKeyMap
	theme    *styles.Theme
	width    int
	focused  bool
	showReal bool
	rejected bool
	changed  bool
}

// NewLimitedInput creates the component. It fails if the policy does not
// compile.
func NewLimitedInput(theme *styles.Theme, opts LimitedInputOptions) (*LimitedInput, error) {
	field, err := edit.NewField(opts.Policy)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 0
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Cursor.Style = theme.Renderer().NewStyle().Foreground(styles.Cyan)

	l := &LimitedInput{
		name:     opts.Name,
		label:    opts.Label,
		field:    field,
		input:    ti,
		keys:     DefaultInputKeyMap(),
		theme:    theme,
		showReal: opts.ShowReal,
	}
	if l.label == "" {
		l.label = opts.Name
	}
	field.OnChange(func(string) { l.changed = true })

	width := opts.Width
	if width <= 0 {
		width = 40
	}
	l.SetWidth(width)
	return l, nil
}

// Name returns the field name.
func (l *LimitedInput) Name() string { return l.name }

// ID returns the field's log identifier.
func (l *LimitedInput) ID() string { return l.field.ID() }

// Field exposes the underlying field.
func (l *LimitedInput) Field() *edit.Field { return l.field }

// Value returns the stored text.
func (l *LimitedInput) Value() string { return l.field.Text() }

// Caret returns the caret as a grapheme index.
func (l *LimitedInput) Caret() int { return l.field.Caret() }

// Rejected reports whether the last edit was refused.
func (l *LimitedInput) Rejected() bool { return l.rejected }

// KeyMap returns the editing keys, for help rendering.
func (l *LimitedInput) KeyMap() InputKeyMap { return l.keys }

// Focus focuses the input.
func (l *LimitedInput) Focus() tea.Cmd {
	l.focused = true
	return l.input.Focus()
}

// Blur removes focus from the input.
func (l *LimitedInput) Blur() {
	l.focused = false
	l.input.Blur()
}

// Focused returns whether the input is focused.
func (l *LimitedInput) Focused() bool { return l.focused }

// SetWidth sets the total width of the component.
func (l *LimitedInput) SetWidth(width int) {
	l.width = width
	// Border, padding and prompt.
	l.input.Width = max(width-8, 8)
}

// SetShowReal toggles the display value lines.
func (l *LimitedInput) SetShowReal(show bool) { l.showReal = show }

// SetValue assigns text out of band. The text is corrected, not vetted.
func (l *LimitedInput) SetValue(s string) tea.Cmd {
	l.field.SetText(s)
	return l.finish(true)
}

// Configure swaps the policy and corrects the buffer under it.
func (l *LimitedInput) Configure(p edit.Policy) (tea.Cmd, error) {
	if err := l.field.Configure(p); err != nil {
		return nil, err
	}
	l.field.Revalidate()
	return l.finish(true), nil
}

// Update handles key messages while focused. Keys it does not handle are
// ignored so the parent can use them.
func (l *LimitedInput) Update(msg tea.Msg) (*LimitedInput, tea.Cmd) {
	if !l.focused {
		return l, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}

	switch {
	case km.Type == tea.KeyRunes && len(km.Runes) > 1:
		// Bracketed paste and fast typing arrive as one multi-rune message.
		l.field.Paste(string(km.Runes))
		return l, l.finish(true)

	case km.Type == tea.KeyRunes, km.Type == tea.KeySpace:
		typed := string(km.Runes)
		if km.Type == tea.KeySpace {
			typed = " "
		}
		if !l.field.Insert(typed) {
			return l, l.reject(typed)
		}
		return l, l.finish(true)

	case key.Matches(km, l.keys.DeleteBack):
		l.field.DeleteBackward()
	case key.Matches(km, l.keys.DeleteFwd):
		l.field.DeleteForward()
	case key.Matches(km, l.keys.DeleteHead):
		l.field.Replace(0, l.field.Caret(), "")
	case key.Matches(km, l.keys.DeleteTail):
		l.field.Replace(l.field.Caret(), l.field.Len()-l.field.Caret(), "")

	case key.Matches(km, l.keys.Paste):
		text, err := readClipboard()
		if err != nil {
			return l, l.clipboardError(err)
		}
		if text == "" {
			return l, nil
		}
		l.field.Paste(text)
	case key.Matches(km, l.keys.CopyValue):
		value, ok := l.field.RealText()
		if !ok {
			value = l.field.Text()
		}
		if err := writeClipboard(value); err != nil {
			return l, l.clipboardError(err)
		}
		return l, nil

	case key.Matches(km, l.keys.Left):
		l.field.SetCaret(l.field.Caret() - 1)
	case key.Matches(km, l.keys.Right):
		l.field.SetCaret(l.field.Caret() + 1)
	case key.Matches(km, l.keys.Home):
		l.field.SetCaret(0)
	case key.Matches(km, l.keys.End):
		l.field.SetCaret(l.field.Len())

	default:
		return l, nil
	}
	return l, l.finish(false)
}

// finish mirrors the field into the textinput and reports a change.
func (l *LimitedInput) finish(clearRejected bool) tea.Cmd {
	if clearRejected {
		l.rejected = false
	}
	text := l.field.Text()
	l.input.SetValue(text)
	l.input.SetCursor(grapheme.GraphemeToRune(text, l.field.Caret()))

	if !l.changed {
		return nil
	}
	l.changed = false
	value, ok := l.field.RealText()
	changed := FieldChangedMsg{ID: l.field.ID(), Name: l.name, Text: text, Real: value, RealOK: ok}
	return func() tea.Msg { return changed }
}

func (l *LimitedInput) reject(replacement string) tea.Cmd {
	l.rejected = true
	rejected := FieldRejectedMsg{ID: l.field.ID(), Name: l.name, Replacement: replacement}
	return func() tea.Msg { return rejected }
}

func (l *LimitedInput) clipboardError(err error) tea.Cmd {
	failed := ClipboardErrorMsg{ID: l.field.ID(), Name: l.name, Err: err}
	return func() tea.Msg { return failed }
}

// =============================================================================
// VIEW
// =============================================================================

// View renders label, input box, counter and, for decimal fields, the
// display values.
func (l *LimitedInput) View() string {
	labelStyle := l.theme.Label
	box := l.theme.InputBlurred
	if l.focused {
		labelStyle = l.theme.LabelFocused
		box = l.theme.InputFocused
	}
	if l.rejected {
		box = box.BorderForeground(styles.Rose)
	}

	inner := l.width - 4
	header := l.renderHeader(labelStyle.Render(l.label), inner)
	inputBox := box.Width(l.width - 2).Render(l.input.View())

	lines := []string{header, inputBox, l.renderFooter(inner)}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderHeader puts the label left and the policy hint right.
func (l *LimitedInput) renderHeader(label string, width int) string {
	hintWidth := width - lipgloss.Width(label) - 1
	hint := util.Ellipsize(l.field.Policy().String(), hintWidth)
	gap := strings.Repeat(" ", max(width-lipgloss.Width(label)-lipgloss.Width(hint), 1))
	return label + gap + l.theme.PolicyHint.Render(hint)
}

func (l *LimitedInput) renderFooter(width int) string {
	var left string
	switch {
	case l.rejected:
		left = l.theme.Rejected.Render(styles.StatusIndicators.Error + " rejected")
	case l.showReal && l.field.Policy().IsDecimal():
		left = l.renderReal()
	}

	counter := l.renderCounter()
	gap := strings.Repeat(" ", max(width-lipgloss.Width(left)-lipgloss.Width(counter), 1))
	return left + gap + counter
}

func (l *LimitedInput) renderReal() string {
	trimmed, ok := l.field.RealText()
	if !ok {
		return l.theme.RealMissing.Render("no value")
	}
	padded, _ := l.field.RealDecimalText()
	return l.theme.RealValue.Render(trimmed) + l.theme.Help.Render(" | ") + l.theme.RealValue.Render(padded)
}

// renderCounter renders "n / max" in clusters, colored by fill level.
func (l *LimitedInput) renderCounter() string {
	count := l.field.Len()
	limit := l.field.Policy().MaxLength
	if l.field.Policy().IsDecimal() {
		limit = 0
	}

	text := strconv.Itoa(count)
	if limit > 0 {
		text += " / " + strconv.Itoa(limit)
	}
	if styles.LevelFor(count, limit) == styles.CounterDanger {
		text += " " + styles.StatusIndicators.Warning
	}
	return l.theme.CounterStyle(count, limit).Render(text)
}
