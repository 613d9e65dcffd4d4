// SPDX-License-Identifier: MPL-2.0

// Package execute composes the run pipeline: a user-supplied reference
// (name, short alias, or @N recent index) is resolved to a saved command,
// working directory, and effective environment, then previewed or
// executed, and the launch recorded.
package execute
