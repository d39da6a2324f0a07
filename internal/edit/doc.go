// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package edit is the entry point hosts call for every change to a limited
// text field.
//
// # Two Call Shapes
//
// Keystrokes and pastes the host can veto go through Validate (or the
// package-level ValidateEdit). The result says whether to accept the edit
// and, if so, the normalized text and where the caret belongs:
//
//	res := edit.ValidateEdit(policy, edit.Request{
//	    Text:        current,
//	    Start:       caret,
//	    Replacement: typed,
//	})
//	if res.Accepted {
//	    current, caret = res.Text, res.Caret
//	}
//
// Changes the host could not veto (programmatic assignment, an unvetted
// paste, a policy swap) go through Correct (or CorrectBuffer), which always
// produces text that satisfies the policy.
//
// # Routing
//
// A policy with a decimal shape is handled by package decimal; everything
// else by package general. Decimal policies supersede classes, max length
// and pattern.
//
// # Field
//
// Field is an optional host-side helper that owns the buffer, caret and
// change listeners for one input. It never notifies listeners from inside
// the validator and coalesces edits made by listeners themselves.
package edit
