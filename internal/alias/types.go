// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid alias name")
	// ErrInvalidEnvVarName is the sentinel error wrapped by InvalidEnvVarNameError.
	ErrInvalidEnvVarName = errors.New("invalid environment variable name")
	// ErrInvalidPathMode is the sentinel error wrapped by InvalidPathModeError.
	ErrInvalidPathMode = errors.New("invalid path mode")

	namePattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	envVarPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// Name addresses one saved command. Names are case-sensitive and must
	// match [A-Za-z0-9_-]+.
	Name string

	// InvalidNameError is returned when a Name does not match the allowed
	// pattern. It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Value Name
	}

	// EnvVarName is a captured environment variable key, restricted to
	// [A-Za-z_][A-Za-z0-9_]*.
	EnvVarName string

	// InvalidEnvVarNameError is returned when an EnvVarName does not match the
	// allowed pattern. It wraps ErrInvalidEnvVarName for errors.Is().
	InvalidEnvVarNameError struct {
		Value EnvVarName
	}

	// PathMode is the policy for choosing the working directory at run time.
	// The zero value means PathModeSaved: records written before the field
	// existed carry no mode and must keep resolving to their saved directory.
	PathMode string

	// InvalidPathModeError is returned when a PathMode value is not
	// recognized. It wraps ErrInvalidPathMode for errors.Is() compatibility.
	InvalidPathModeError struct {
		Value PathMode
	}

	// CommandAlias is one saved command: the shell text, the directory it was
	// saved from, the path mode, and an optional captured environment.
	CommandAlias struct {
		// Command is the shell command text, non-empty and trimmed on write.
		Command string `json:"command"`
		// Directory is the absolute, normalized working directory.
		Directory string `json:"directory"`
		// PathMode selects the working directory policy. Absent in files
		// written by older builds; absent means saved.
		PathMode PathMode `json:"pathMode,omitempty"`
		// Env holds captured environment variables, if any.
		Env map[string]string `json:"env,omitempty"`
		// CreatedAt is set on first write and preserved across updates.
		CreatedAt time.Time `json:"createdAt"`
		// UpdatedAt is refreshed on every write.
		UpdatedAt time.Time `json:"updatedAt"`
	}

	// Table is the full alias table keyed by name. It is loaded fresh on
	// every process invocation and persisted wholesale after every mutation.
	Table map[Name]CommandAlias
)

const (
	// PathModeSaved runs the command in the directory stored on the alias.
	PathModeSaved PathMode = "saved"
	// PathModeCurrent runs the command in the caller's current directory.
	PathModeCurrent PathMode = "current"
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid alias name %q (allowed: letters, digits, '_', '-')", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// IsValid returns whether the Name matches the allowed pattern.
func (n Name) IsValid() (bool, []error) {
	if !namePattern.MatchString(string(n)) {
		return false, []error{&InvalidNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidEnvVarNameError) Error() string {
	return fmt.Sprintf("invalid environment variable name %q", e.Value)
}

// Unwrap returns ErrInvalidEnvVarName for errors.Is() compatibility.
func (e *InvalidEnvVarNameError) Unwrap() error { return ErrInvalidEnvVarName }

// IsValid returns whether the EnvVarName matches the allowed pattern.
func (n EnvVarName) IsValid() (bool, []error) {
	if !envVarPattern.MatchString(string(n)) {
		return false, []error{&InvalidEnvVarNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidPathModeError) Error() string {
	return fmt.Sprintf("invalid path mode %q (allowed: saved, current)", e.Value)
}

// Unwrap returns ErrInvalidPathMode for errors.Is() compatibility.
func (e *InvalidPathModeError) Unwrap() error { return ErrInvalidPathMode }

// IsValid returns whether the PathMode is a recognized value. The empty
// string is valid: it is the back-compat spelling of PathModeSaved.
func (m PathMode) IsValid() (bool, []error) {
	switch m {
	case "", PathModeSaved, PathModeCurrent:
		return true, nil
	default:
		return false, []error{&InvalidPathModeError{Value: m}}
	}
}

// Effective normalizes the back-compat zero value to PathModeSaved.
func (m PathMode) Effective() PathMode {
	if m == "" {
		return PathModeSaved
	}
	return m
}

// ParsePathMode validates a user-supplied mode string at the CLI boundary.
func ParsePathMode(s string) (PathMode, error) {
	m := PathMode(s)
	if isValid, errs := m.IsValid(); !isValid {
		return "", errs[0]
	}
	return m, nil
}
