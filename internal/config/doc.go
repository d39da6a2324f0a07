// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates and watches inputlimit field definitions.
//
// A config file declares a list of fields, each with the policy that
// governs what may be typed into it, plus a few terminal UI settings. TOML
// is the native format; YAML and JSON files are accepted by extension.
//
// # Key Types
//
//   - Config: root structure with UI settings and field declarations
//   - FieldConfig: one field; Policy converts it into an edit.Policy
//   - Watcher: reloads the file when it changes and delivers Updates
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (INPUTLIMIT_THEME, INPUTLIMIT_SHOW_REAL)
//   - The file named by INPUTLIMIT_CONFIG, or ~/.inputlimit/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.LoadDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fc, err := cfg.Field("price")
//	policy, err := fc.Policy()
package config
