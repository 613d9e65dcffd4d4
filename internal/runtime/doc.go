// SPDX-License-Identifier: MPL-2.0

// Package runtime resolves what a saved command runs with and runs it:
// the effective environment (live values win over saved snapshots), the
// effective working directory (path mode plus optional override), and the
// shell execution itself. The environment a command runs with is always
// passed in explicitly as a value, never read ambiently, so tests can
// inject arbitrary environments.
package runtime
