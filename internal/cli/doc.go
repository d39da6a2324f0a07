// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for inputlimit.
//
// The commands drive the input-constraint engine from a shell: vet one
// edit, correct a buffer, show display values, describe a policy, paste
// lines into a field interactively, or run the terminal demo form.
//
// # Key Types
//
//   - Command: enumeration of the CLI commands
//   - Args: global flags plus an ArgParser over the command's arguments
//   - JSONResponse: the envelope written in --json mode
//   - UsageError, ConfigError, NotFoundError, RejectedError: typed errors
//     mapped to exit codes by ExitCodeFor
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Main(os.Args[1:]))
//	}
//
// # Commands Overview
//
//   - check: vet a single edit (exit code 9 when rejected)
//   - correct: correct a whole buffer
//   - real: trimmed and padded display values
//   - explain: markdown description of a policy
//   - repl: line-mode paste loop
//   - demo: interactive form of the configured fields
//   - config: init, show and validate the config file
//
// All commands except repl and demo support --json.
package cli
