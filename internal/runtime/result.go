// SPDX-License-Identifier: MPL-2.0

package runtime

// Result contains the outcome of a command execution.
type Result struct {
	// ExitCode is the exit code of the command.
	ExitCode ExitCode
	// Error contains any infrastructure error; a non-zero child exit is
	// not an Error.
	Error error
	// Output contains captured stdout (if captured).
	Output string
	// ErrOutput contains captured stderr (if captured).
	ErrOutput string
}

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}
