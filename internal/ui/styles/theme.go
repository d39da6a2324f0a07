// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds the styles of the field form. Styles are bound to the
// theme's own renderer, so a forced light or dark mode does not leak into
// other renderers.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// Form chrome
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	HelpKey  lipgloss.Style

	// Field input
	Label            lipgloss.Style
	LabelFocused     lipgloss.Style
	InputFocused     lipgloss.Style
	InputBlurred     lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	PolicyHint       lipgloss.Style

	// Counters
	CharCount        lipgloss.Style
	CharCountNotice  lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style

	// Display values and feedback
	RealValue   lipgloss.Style
	RealMissing lipgloss.Style
	Rejected    lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
}

// NewTheme creates a theme for stdout. mode is "dark", "light" or "auto";
// anything else behaves as "auto".
func NewTheme(mode string) *Theme {
	return NewThemeFor(os.Stdout, mode)
}

// NewThemeFor creates a theme that renders for w.
func NewThemeFor(w io.Writer, mode string) *Theme {
	r := lipgloss.NewRenderer(w)
	switch strings.ToLower(mode) {
	case ModeDark:
		r.SetHasDarkBackground(true)
	case ModeLight:
		r.SetHasDarkBackground(false)
	}

	profile := r.ColorProfile()
	t := &Theme{
		IsDark:       r.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		renderer:     r,
	}
	t.initStyles()
	return t
}

// Renderer returns the renderer the styles are bound to.
func (t *Theme) Renderer() *lipgloss.Renderer { return t.renderer }

func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	t.Title = s().Bold(true).Foreground(Purple)
	t.Subtitle = s().Foreground(TextSecondary).Italic(true)
	t.Help = s().Foreground(TextMuted)
	t.HelpKey = s().Foreground(Cyan).Bold(true)

	t.Label = s().Foreground(TextSecondary)
	t.LabelFocused = s().Foreground(Purple).Bold(true)

	t.InputFocused = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(FocusRing).
		Padding(0, 1)
	t.InputBlurred = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = s().Foreground(Cyan).Bold(true)
	t.InputText = s().Foreground(TextPrimary)
	t.InputPlaceholder = s().Foreground(TextMuted).Italic(true)
	t.PolicyHint = s().Foreground(TextMuted)

	t.CharCount = s().Foreground(TextMuted)
	t.CharCountNotice = s().Foreground(TextSecondary)
	t.CharCountWarning = s().Foreground(Amber)
	t.CharCountDanger = s().Foreground(Rose).Bold(true)

	t.RealValue = s().Foreground(Emerald)
	t.RealMissing = s().Foreground(TextMuted).Italic(true)
	t.Rejected = s().Foreground(Rose)
	t.StatusBar = s().Background(SurfaceDim).Foreground(TextSecondary).Padding(0, 1)
	t.StatusError = s().Background(SurfaceDim).Foreground(Rose).Padding(0, 1)
}

// CounterLevel grades how full a field is.
type CounterLevel int

const (
	CounterIdle    CounterLevel = iota // < 50%
	CounterNotice                      // 50-74%
	CounterWarning                     // 75-89%
	CounterDanger                      // >= 90%
)

// LevelFor returns the level of count clusters out of max. An unlimited
// field (max <= 0) is always idle.
func LevelFor(count, max int) CounterLevel {
	if max <= 0 {
		return CounterIdle
	}
	percent := count * 100 / max
	switch {
	case percent >= 90:
		return CounterDanger
	case percent >= 75:
		return CounterWarning
	case percent >= 50:
		return CounterNotice
	default:
		return CounterIdle
	}
}

// CounterStyle returns the counter style for count out of max.
func (t *Theme) CounterStyle(count, max int) lipgloss.Style {
	switch LevelFor(count, max) {
	case CounterDanger:
		return t.CharCountDanger
	case CounterWarning:
		return t.CharCountWarning
	case CounterNotice:
		return t.CharCountNotice
	default:
		return t.CharCount
	}
}
