// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the inputlimit front ends.
//
// # Key Functions
//
// Display Utilities:
//   - Ellipsize: cluster-safe truncation to a cell width with an ellipsis
//   - VisibleText: make control and invisible characters readable
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Fit a value into a status line
//	line := util.Ellipsize(util.VisibleText(value), 40)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
