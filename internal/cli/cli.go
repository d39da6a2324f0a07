// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and dispatch for inputlimit.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdCheck
	CmdCorrect
	CmdReal
	CmdExplain
	CmdRepl
	CmdDemo
	CmdConfig
	CmdVersion
)

var commandNames = map[Command]string{
	CmdHelp:    "help",
	CmdCheck:   "check",
	CmdCorrect: "correct",
	CmdReal:    "real",
	CmdExplain: "explain",
	CmdRepl:    "repl",
	CmdDemo:    "demo",
	CmdConfig:  "config",
	CmdVersion: "version",
}

// String returns the command name as typed on the command line.
func (c Command) String() string {
	return commandNames[c]
}

// boolFlagNames are the flags that never take a value.
var boolFlagNames = []string{"json", "nfc", "fold-width", "composing", "force"}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON       bool   // --json: write a JSONResponse instead of text
	ConfigPath string // --config PATH

	// Flags holds everything after the command name.
	Flags *ArgParser

	// Stdout and Stderr receive command output.
	Stdout io.Writer
	Stderr io.Writer
}

const usageText = `inputlimit - input constraints for live-edited text fields

Every edit to a field is vetted against a policy: allowed character
classes, a grapheme length limit and an optional pattern, or a decimal
shape. Pasted text is corrected rather than refused.

Usage:
  inputlimit check   [policy] --text T [--at N] [--len L] --insert S
                                 Vet one edit; exit code 9 when rejected
  inputlimit correct [policy] --text T [--caret N]
                                 Correct a whole buffer
  inputlimit real    [policy] --text T
                                 Show the display values of a buffer
  inputlimit explain [policy]    Describe a policy
  inputlimit repl    [policy]    Paste lines into a field interactively
  inputlimit demo                Interactive form of the configured fields
  inputlimit config init [--force] | show | validate
  inputlimit version
  inputlimit help

Policy flags:
  --field NAME          Use a field from the config file
  --classes a,b         Allowed classes: chinese, digit, lower, upper, emoji
  --max N               Maximum length in grapheme clusters
  --pattern P           Regular expression every edit must match
  --decimal SPEC        parts:I:D | total:T | sig:I:S:M, optional ":signed"
  --nfc                 Compose combining marks before validating
  --fold-width          Fold full-width forms to ASCII before validating

Global flags:
  --config PATH         Config file (default: $INPUTLIMIT_CONFIG or
                        ~/.inputlimit/config.toml)
  --json                Write a JSON envelope to stdout

Examples:
  inputlimit check --classes chinese --max 3 --text 中文 --insert 测
  inputlimit correct --decimal parts:2:3 --text 001.23456
  inputlimit real --field price --text 1.2

Version: %s
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "inputlimit version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse splits argv into a command and its arguments. Global flags may
// appear anywhere.
func Parse(argv []string) (Command, Args, error) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		args.Flags = NewArgParser(nil, boolFlagNames...)
		return CmdHelp, args, nil
	}

	name := strings.ToLower(remaining[0])
	args.Flags = NewArgParser(remaining[1:], boolFlagNames...)

	switch name {
	case "check":
		return CmdCheck, args, nil
	case "correct":
		return CmdCorrect, args, nil
	case "real":
		return CmdReal, args, nil
	case "explain":
		return CmdExplain, args, nil
	case "repl":
		return CmdRepl, args, nil
	case "demo", "tui":
		return CmdDemo, args, nil
	case "config":
		return CmdConfig, args, nil
	case "version", "-v", "--version":
		return CmdVersion, args, nil
	case "help", "-h", "--help":
		return CmdHelp, args, nil
	default:
		return CmdHelp, args, &UsageError{
			Message: fmt.Sprintf("unknown command %q", remaining[0]),
			Example: "inputlimit help",
		}
	}
}

// parseGlobalFlags extracts --json and --config and returns the rest.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			// Everything after belongs to the command.
			remaining = append(remaining, argv[i:]...)
			return remaining, args
		case arg == "--json":
			args.JSON = true
		case arg == "--config":
			if i+1 < len(argv) {
				i++
				args.ConfigPath = argv[i]
			}
		case strings.HasPrefix(arg, "--config="):
			args.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

// Run parses argv and executes the command, writing to stdout and stderr.
// In JSON mode a failed command still writes its envelope before the error
// is returned.
func Run(argv []string, stdout, stderr io.Writer) error {
	cmd, args, err := Parse(argv)
	args.Stdout = stdout
	args.Stderr = stderr
	if err != nil {
		if args.JSON {
			_ = NewJSONErrorResponse("", nil, err).Print(stdout)
		}
		return err
	}
	return Dispatch(cmd, args)
}

// Main runs the CLI against the process streams and returns the exit code.
func Main(argv []string) int {
	err := Run(argv, os.Stdout, os.Stderr)
	if err != nil {
		DisplayError(os.Stderr, err)
	}
	return ExitCodeFor(err)
}

// Dispatch executes a parsed command.
func Dispatch(cmd Command, args Args) error {
	switch cmd {
	case CmdCheck:
		return HandleCheck(args)
	case CmdCorrect:
		return HandleCorrect(args)
	case CmdReal:
		return HandleReal(args)
	case CmdExplain:
		return HandleExplain(args)
	case CmdRepl:
		return HandleRepl(args)
	case CmdDemo:
		return HandleDemo(args)
	case CmdConfig:
		return HandleConfig(args)
	case CmdVersion:
		return HandleVersion(args)
	default:
		return HandleHelp(args)
	}
}

// respond writes data in the selected mode. human renders text output and
// is skipped in JSON mode. A non-nil cmdErr is returned after writing.
func respond(args Args, cmd Command, data any, cmdErr error, human func(w io.Writer)) error {
	if args.JSON {
		resp := NewJSONResponse(cmd.String(), data)
		if cmdErr != nil {
			resp = NewJSONErrorResponse(cmd.String(), data, cmdErr)
		}
		if err := resp.Print(args.Stdout); err != nil {
			return err
		}
		return cmdErr
	}
	if human != nil {
		human(args.Stdout)
	}
	return cmdErr
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) error {
	data := VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	return respond(args, CmdVersion, data, nil, PrintVersion)
}

// HandleHelp handles the "help" command.
func HandleHelp(args Args) error {
	if args.JSON {
		return respond(args, CmdHelp, map[string]string{"usage": fmt.Sprintf(usageText, Version)}, nil, nil)
	}
	PrintUsage(args.Stdout)
	return nil
}
