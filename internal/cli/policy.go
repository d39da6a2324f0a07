// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// policy.go - Building an edit.Policy from policy flags or a config field.

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jeranaias/inputlimit/internal/charclass"
	"github.com/jeranaias/inputlimit/internal/config"
	"github.com/jeranaias/inputlimit/internal/decimal"
	"github.com/jeranaias/inputlimit/internal/edit"
)

// inlinePolicyFlags are the flags that describe a policy without a config.
var inlinePolicyFlags = []string{"classes", "max", "pattern", "decimal", "nfc", "fold-width"}

// resolvedPolicy is a policy plus the name it was declared under, if any.
type resolvedPolicy struct {
	Field  string
	Label  string
	Policy edit.Policy
}

// resolvePolicy returns the policy selected by --field or by the inline
// policy flags. With neither, the policy is unrestricted.
func resolvePolicy(args Args) (resolvedPolicy, error) {
	flags := args.Flags
	if !flags.HasFlag("field") {
		p, err := inlinePolicy(flags)
		if err != nil {
			return resolvedPolicy{}, err
		}
		return resolvedPolicy{Policy: p}, nil
	}

	for _, name := range inlinePolicyFlags {
		if flags.HasFlag(name) {
			return resolvedPolicy{}, usageErrorf("--field cannot be combined with --%s", name)
		}
	}
	name := strings.TrimSpace(flags.Flag("field"))
	if name == "" {
		return resolvedPolicy{}, ErrMissingArgument("--field NAME", "inputlimit real --field price --text 1.2")
	}

	cfg, path, err := loadConfig(args)
	if err != nil {
		return resolvedPolicy{}, err
	}
	fc, err := cfg.Field(name)
	if err != nil {
		return resolvedPolicy{}, &NotFoundError{Resource: "field", ID: fmt.Sprintf("%s (in %s)", name, path)}
	}
	p, err := fc.Policy()
	if err != nil {
		return resolvedPolicy{}, &ConfigError{Path: path, Err: fmt.Errorf("field %s: %w", name, err)}
	}
	return resolvedPolicy{Field: fc.Name, Label: fc.DisplayLabel(), Policy: p}, nil
}

// inlinePolicy builds a policy from --classes, --max, --pattern,
// --decimal, --nfc and --fold-width.
func inlinePolicy(flags *ArgParser) (edit.Policy, error) {
	var p edit.Policy

	if flags.HasFlag("classes") {
		var names []string
		for _, n := range strings.Split(flags.Flag("classes"), ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		classes, err := charclass.ParseClasses(names)
		if err != nil {
			return edit.Policy{}, &UsageError{Message: err.Error(), Example: "--classes chinese,digit"}
		}
		p.Classes = classes
	}

	maxLength, err := flags.FlagIntOrDefault("max", 0)
	if err != nil {
		return edit.Policy{}, usageErrorf("%v", err)
	}
	p.MaxLength = maxLength
	p.Pattern = flags.Flag("pattern")

	if flags.HasFlag("decimal") {
		d, err := decimal.ParsePolicy(flags.Flag("decimal"))
		if err != nil {
			return edit.Policy{}, &UsageError{Message: err.Error(), Example: "--decimal sig:3:2:5:signed"}
		}
		p.Decimal = d
	}

	p.Normalize = edit.Normalization{
		NFC:       flags.BoolFlag("nfc"),
		FoldWidth: flags.BoolFlag("fold-width"),
	}

	if err := p.Check(); err != nil {
		return edit.Policy{}, usageErrorf("invalid policy: %v", err)
	}
	return p, nil
}

// loadConfig loads --config, or the default config path. A missing file
// is an error only when --config named it explicitly.
func loadConfig(args Args) (*config.Config, string, error) {
	if args.ConfigPath != "" {
		cfg, err := config.Load(args.ConfigPath)
		if err != nil {
			return nil, args.ConfigPath, &ConfigError{Path: args.ConfigPath, Err: err}
		}
		return cfg, args.ConfigPath, nil
	}

	path, err := config.Path()
	if err != nil {
		return nil, "", &ConfigError{Err: err}
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, path, &ConfigError{Path: path, Err: err}
	}
	return cfg, path, nil
}

// configPath returns --config or the default config path.
func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	path, err := config.Path()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

// isNotExist reports whether err means the config file is missing.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
