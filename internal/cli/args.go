// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing shared by all inputlimit commands.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser parses the arguments that follow a command name.
//
// Supported forms:
//
//	--flag value     value flag; the next argument is always taken, so
//	                 "--insert -" and "--text -12" work
//	--flag=value     value flag with an inline value, possibly empty
//	--flag           boolean flag, when the name was declared boolean
//	--               ends flag parsing; the rest is positional
//
// The first positional argument is the subcommand.
type ArgParser struct {
	subcommand string
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser parses raw. Names listed in boolNames never consume the
// following argument.
//
// Example:
//
//	args := NewArgParser([]string{"init", "--text", "-5", "--force"}, "force")
//	args.Subcommand()       // "init"
//	args.Flag("text")       // "-5"
//	args.BoolFlag("force")  // true
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	isBool := make(map[string]bool, len(boolNames))
	for _, name := range boolNames {
		isBool[name] = true
	}

	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			parser.positional = append(parser.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			parser.positional = append(parser.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if before, after, found := strings.Cut(name, "="); found {
			if isBool[before] {
				parser.boolFlags[before] = after == "true" || after == "1"
			} else {
				parser.flags[before] = after
			}
			continue
		}

		switch {
		case isBool[name]:
			parser.boolFlags[name] = true
		case i+1 < len(raw):
			parser.flags[name] = raw[i+1]
			i++
		default:
			// A trailing value flag without a value.
			parser.boolFlags[name] = true
		}
	}

	if len(parser.positional) > 0 {
		parser.subcommand = parser.positional[0]
	}
	return parser
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns the value of a value flag, or "".
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value, or defaultValue when the flag was
// not given. An explicitly empty value is returned as is.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val, ok := p.flags[strings.TrimLeft(name, "-")]; ok {
		return val
	}
	return defaultValue
}

// FlagInt returns the flag value as an integer.
func (p *ArgParser) FlagInt(name string) (int, error) {
	val, ok := p.flags[strings.TrimLeft(name, "-")]
	if !ok {
		return 0, fmt.Errorf("flag %s not found", name)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("--%s must be an integer, got %q", name, val)
	}
	return n, nil
}

// FlagIntOrDefault returns the flag as a non-negative integer, defaultValue
// when it is absent, or an error when it is malformed.
func (p *ArgParser) FlagIntOrDefault(name string, defaultValue int) (int, error) {
	if !p.HasFlag(name) {
		return defaultValue, nil
	}
	n, err := p.FlagInt(name)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("--%s must be non-negative, got %d", name, n)
	}
	return n, nil
}

// BoolFlag returns the value of a boolean flag, false when absent.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// Positional returns the positional argument at index, or "". Index 0 is
// the subcommand.
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// HasFlag reports whether the flag was given in any form.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}
