// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling of the inputlimit terminal form.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The detection can be overridden per theme with the "dark" and
"light" modes.

# Color System (colors.go)

  - Purple - Titles and focused labels
  - Cyan - Focus ring and key hints
  - Emerald - Valid display values
  - Amber - Counters close to the limit
  - Rose - Rejected edits and full fields

# Theme (theme.go)

Theme binds every style to its own lipgloss.Renderer:

	theme := styles.NewTheme(cfg.UI.Theme)
	label := theme.LabelFocused.Render("Price")

Counters change color as a field fills up; see LevelFor and CounterStyle.
*/
package styles
