// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"regexp"
	"strings"
)

// Static heuristics over the raw command text. They exist so a dry-run
// preview loudly flags commands a user may have saved long ago and
// forgotten the teeth of; matches never block execution.
var (
	rmCommandRe    = regexp.MustCompile(`(^|[\s;&|(])rm\s+(-\S+\s+)*-\S*`)
	ddBlockDevRe   = regexp.MustCompile(`(^|[\s;&|(])dd\s[^;|&]*of=/dev/`)
	mkfsRe         = regexp.MustCompile(`(^|[\s;&|(])mkfs(\.[a-z0-9]+)?\b`)
	forkBombRe     = regexp.MustCompile(`:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`)
	chmodOpenRe    = regexp.MustCompile(`(^|[\s;&|(])chmod\s+[^;|&]*0?777\b`)
	chmodRecFlagRe = regexp.MustCompile(`chmod\s+[^;|&]*(-[a-zA-Z]*R|--recursive)`)
)

// DestructiveWarnings returns a human-readable warning for every
// destructive pattern the command text matches.
func DestructiveWarnings(command string) []string {
	var warnings []string
	cmd := strings.TrimSpace(command)

	if m := rmCommandRe.FindString(cmd); m != "" && hasRecursiveForceFlags(m) {
		warnings = append(warnings, "recursive force-remove (rm -rf)")
	}
	if ddBlockDevRe.MatchString(cmd) {
		warnings = append(warnings, "raw write to a block device (dd of=/dev/...)")
	}
	if mkfsRe.MatchString(cmd) {
		warnings = append(warnings, "filesystem creation (mkfs) destroys existing data")
	}
	if forkBombRe.MatchString(cmd) {
		warnings = append(warnings, "fork bomb")
	}
	if chmodOpenRe.MatchString(cmd) && chmodRecFlagRe.MatchString(cmd) {
		warnings = append(warnings, "recursive world-writable chmod (chmod -R 777)")
	}
	return warnings
}

// hasRecursiveForceFlags reports whether an rm invocation carries both
// the recursive and force flags, combined or separate.
func hasRecursiveForceFlags(rmInvocation string) bool {
	var recursive, force bool
	for _, tok := range strings.Fields(rmInvocation) {
		if !strings.HasPrefix(tok, "-") {
			continue
		}
		switch {
		case tok == "--recursive":
			recursive = true
		case tok == "--force":
			force = true
		case !strings.HasPrefix(tok, "--"):
			if strings.ContainsAny(tok, "rR") {
				recursive = true
			}
			if strings.Contains(tok, "f") {
				force = true
			}
		}
	}
	return recursive && force
}
