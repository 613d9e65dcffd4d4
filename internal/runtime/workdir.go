// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"path/filepath"

	"github.com/cmdkeep/cmdkeep/internal/alias"
)

// ResolvePath turns a user-supplied path into an absolute one relative
// to cwd. Empty and "." resolve to cwd itself, ".." to its parent;
// absolute paths pass through cleaned.
func ResolvePath(path, cwd string) string {
	switch path {
	case "", ".":
		return filepath.Clean(cwd)
	case "..":
		return filepath.Dir(filepath.Clean(cwd))
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}

// ResolveWorkDir picks the working directory for running a. An explicit
// override always wins over the stored path mode; an empty override
// means none was given. Otherwise path mode "current" uses cwd and
// "saved" (the default) uses the stored directory verbatim.
func ResolveWorkDir(a alias.CommandAlias, override, cwd string) string {
	if override != "" {
		return ResolvePath(override, cwd)
	}
	if a.PathMode.Effective() == alias.PathModeCurrent {
		return filepath.Clean(cwd)
	}
	return a.Directory
}
