// SPDX-License-Identifier: MPL-2.0

package issue

import "errors"

// Sentinel errors forming the cmdkeep error taxonomy. Subsystems wrap these
// with fmt.Errorf("...: %w", ...) or ActionableError so callers can classify
// failures with errors.Is without string matching.
var (
	// ErrInvalidInput marks malformed user input: a bad alias name, an empty
	// command, an invalid env var name, or a malformed @N reference.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a missing alias, short alias, or recent-log index.
	ErrNotFound = errors.New("not found")

	// ErrIOFailure marks a table file that could not be read or written.
	ErrIOFailure = errors.New("i/o failure")

	// ErrExecutionFailure marks a child process that exited non-zero.
	// This is a normal outcome, not a defect; it exists so the CLI can
	// distinguish "your command failed" from "cmdkeep failed".
	ErrExecutionFailure = errors.New("execution failure")

	// ErrPermissionDenied marks an unreadable/unwritable directory or file.
	ErrPermissionDenied = errors.New("permission denied")
)

// Process exit codes consumed by the CLI shell. When running a saved command,
// the child's own non-zero exit code is propagated verbatim in preference to
// ExitGeneralError.
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitInvalidInput     = 2
	ExitNotFound         = 3
	ExitPermissionDenied = 4
)

// ExitCodeFor maps an error to the cmdkeep process exit code. A nil error
// maps to ExitSuccess. Errors outside the taxonomy map to ExitGeneralError.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrPermissionDenied):
		return ExitPermissionDenied
	default:
		return ExitGeneralError
	}
}
