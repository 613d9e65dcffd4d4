// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines the error taxonomy shared by all cmdkeep subsystems (invalid
// input, not found, I/O failure, execution failure, permission denied), the
// mapping from errors to process exit codes, and an ActionableError type that
// carries remediation steps for CLI display.
package issue
