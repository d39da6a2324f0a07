// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for all CLI commands.
//
// STANDARDIZED PATTERN:
//   - commands ALWAYS return errors, they never print and return nil
//   - the caller decides how to display them
//   - the error type decides the exit code

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/inputlimit/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates an unreadable or invalid config file
	ExitConfigError = 3
	// ExitNotFoundError indicates a named field was not found
	ExitNotFoundError = 7
	// ExitRejected indicates that "check" refused the edit
	ExitRejected = 9
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports invalid arguments.
type UsageError struct {
	Message string
	Example string // optional
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Message, e.Example)
	}
	return e.Message
}

// ConfigError reports a config file that could not be loaded or saved.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an unknown resource, such as a field name.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// RejectedError is returned by "check" when the edit was refused. The
// verdict has already been printed.
type RejectedError struct {
	Replacement string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("edit rejected: %q", e.Replacement)
}

// =============================================================================
// CONSTRUCTION HELPERS
// =============================================================================

// usageErrorf creates a UsageError.
func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ErrMissingArgument creates an error for a missing required argument.
func ErrMissingArgument(argName, example string) error {
	return &UsageError{Message: fmt.Sprintf("missing required argument: %s", argName), Example: example}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCodeFor returns the process exit code for err.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var configErr *ConfigError
	var notFoundErr *NotFoundError
	var rejectedErr *RejectedError

	switch {
	case errors.As(err, &rejectedErr):
		return ExitRejected
	case errors.As(err, &notFoundErr), errors.Is(err, config.ErrFieldNotFound):
		return ExitNotFoundError
	case errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &configErr):
		return ExitConfigError
	default:
		return ExitGeneralError
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err in the human-readable format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}
