// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable Bubble Tea components for inputlimit.

# Input Components

LimitedInput (limited_input.go) - Single-line input whose content is vetted
by an edit.Policy on every keystroke. It shows a cluster counter, the
active policy and, for decimal fields, the trimmed and padded values.

# Theme Integration

Components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme(cfg.UI.Theme)
	in, err := components.NewLimitedInput(theme, components.LimitedInputOptions{
	    Name:   "price",
	    Label:  "Price",
	    Policy: policy,
	})

# Messages

LimitedInput reports through commands rather than callbacks:
FieldChangedMsg after the stored text changed and FieldRejectedMsg when
an edit was refused.
*/
package components
