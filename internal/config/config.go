// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates inputlimit field definitions.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/inputlimit/internal/charclass"
	"github.com/jeranaias/inputlimit/internal/decimal"
	"github.com/jeranaias/inputlimit/internal/edit"
)

// ErrFieldNotFound is returned by Config.Field for an unknown name.
var ErrFieldNotFound = errors.New("field not found")

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the root configuration.
type Config struct {
	Version string        `toml:"version" yaml:"version" json:"version"`
	UI      UIConfig      `toml:"ui" yaml:"ui" json:"ui"`
	Fields  []FieldConfig `toml:"fields" yaml:"fields" json:"fields"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" yaml:"theme" json:"theme"`
	// ShowReal shows the trimmed and padded values under decimal fields.
	ShowReal bool `toml:"show_real" yaml:"show_real" json:"show_real"`
	// Width is the input width in cells.
	Width int `toml:"width,omitempty" yaml:"width,omitempty" json:"width,omitempty"`
}

// FieldConfig declares one input field and its policy.
type FieldConfig struct {
	Name        string          `toml:"name" yaml:"name" json:"name"`
	Label       string          `toml:"label,omitempty" yaml:"label,omitempty" json:"label,omitempty"`
	Placeholder string          `toml:"placeholder,omitempty" yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Classes     []string        `toml:"classes,omitempty" yaml:"classes,omitempty" json:"classes,omitempty"`
	MaxLength   int             `toml:"max_length,omitempty" yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Pattern     string          `toml:"pattern,omitempty" yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Decimal     string          `toml:"decimal,omitempty" yaml:"decimal,omitempty" json:"decimal,omitempty"`
	Normalize   NormalizeConfig `toml:"normalize" yaml:"normalize" json:"normalize"`
}

// NormalizeConfig selects input normalization.
type NormalizeConfig struct {
	NFC       bool `toml:"nfc" yaml:"nfc" json:"nfc"`
	FoldWidth bool `toml:"fold_width" yaml:"fold_width" json:"fold_width"`
}

// Policy converts the declaration into an engine policy.
func (f FieldConfig) Policy() (edit.Policy, error) {
	classes, err := charclass.ParseClasses(f.Classes)
	if err != nil {
		return edit.Policy{}, err
	}
	p := edit.Policy{
		Classes:   classes,
		MaxLength: f.MaxLength,
		Pattern:   f.Pattern,
		Normalize: edit.Normalization{NFC: f.Normalize.NFC, FoldWidth: f.Normalize.FoldWidth},
	}
	if f.Decimal != "" {
		if p.Decimal, err = decimal.ParsePolicy(f.Decimal); err != nil {
			return edit.Policy{}, err
		}
	}
	return p, nil
}

// DisplayLabel returns Label, falling back to Name.
func (f FieldConfig) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration with one field per policy variant.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		UI: UIConfig{
			Theme:    "auto",
			ShowReal: true,
			Width:    40,
		},
		Fields: []FieldConfig{
			{
				Name:        "nickname",
				Label:       "Nickname",
				Placeholder: "up to 5 Chinese characters",
				Classes:     []string{"chinese"},
				MaxLength:   5,
				Normalize:   NormalizeConfig{NFC: true},
			},
			{
				Name:        "code",
				Label:       "Invite code",
				Placeholder: "8 letters or digits",
				Classes:     []string{"digit", "upper", "lower"},
				MaxLength:   8,
				Normalize:   NormalizeConfig{FoldWidth: true},
			},
			{
				Name:        "reaction",
				Label:       "Reaction",
				Placeholder: "3 emoji",
				Classes:     []string{"emoji"},
				MaxLength:   3,
			},
			{
				Name:        "price",
				Label:       "Price",
				Placeholder: "00.000",
				Decimal:     "parts:2:3",
				Normalize:   NormalizeConfig{FoldWidth: true},
			},
			{
				Name:        "quantity",
				Label:       "Quantity",
				Placeholder: "5 digits total",
				Decimal:     "total:5",
			},
			{
				Name:        "delta",
				Label:       "Delta",
				Placeholder: "signed, 2 significant",
				Decimal:     "sig:3:2:5:signed",
			},
		},
	}
}

// SetDefaults fills empty settings with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.Width <= 0 {
		c.UI.Width = defaults.UI.Width
	}
	for i := range c.Fields {
		c.Fields[i].Name = strings.TrimSpace(c.Fields[i].Name)
	}
}

// Field returns the named field declaration.
func (c *Config) Field(name string) (FieldConfig, error) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return FieldConfig{}, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// FieldNames lists the declared field names in order.
func (c *Config) FieldNames() []string {
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validThemes = map[string]bool{"dark": true, "light": true, "auto": true}

// Validate checks the whole configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Version != "" && c.Version != CurrentVersion {
		errs = append(errs, ValidationError{"version", fmt.Sprintf("unsupported version %q (want %q)", c.Version, CurrentVersion)})
	}
	if c.UI.Theme != "" && !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("must be dark, light or auto, got %q", c.UI.Theme)})
	}
	if c.UI.Width < 0 {
		errs = append(errs, ValidationError{"ui.width", "must be non-negative"})
	}

	seen := make(map[string]bool)
	for i, f := range c.Fields {
		key := fmt.Sprintf("fields[%d]", i)
		if f.Name == "" {
			errs = append(errs, ValidationError{key + ".name", "is required"})
		} else {
			key = fmt.Sprintf("fields.%s", f.Name)
			if seen[f.Name] {
				errs = append(errs, ValidationError{key, "duplicate field name"})
			}
			seen[f.Name] = true
		}

		p, err := f.Policy()
		if err != nil {
			errs = append(errs, ValidationError{key, err.Error()})
			continue
		}
		if err := p.Check(); err != nil {
			errs = append(errs, ValidationError{key, err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// Environment variables read by the config layer.
const (
	EnvConfigPath = "INPUTLIMIT_CONFIG"
	EnvTheme      = "INPUTLIMIT_THEME"
	EnvShowReal   = "INPUTLIMIT_SHOW_REAL"
	EnvDebug      = "INPUTLIMIT_DEBUG"
)

// ApplyEnvOverrides applies INPUTLIMIT_* overrides:
//   - INPUTLIMIT_THEME: overrides ui.theme
//   - INPUTLIMIT_SHOW_REAL: overrides ui.show_real (1/true/0/false)
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv(EnvTheme); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if show := os.Getenv(EnvShowReal); show != "" {
		c.UI.ShowReal = show == "1" || strings.ToLower(show) == "true"
	}
}
