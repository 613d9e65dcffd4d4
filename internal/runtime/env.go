// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"sort"
	"strings"
)

type (
	// Environment is a set of environment variables as a plain value, so
	// callers decide whether it comes from os.Environ, a saved snapshot,
	// or a test fixture.
	Environment map[string]string

	// Override reports one variable present in both the saved snapshot
	// and the live environment with differing values. The live value is
	// the one that takes effect.
	Override struct {
		Name       string
		SavedValue string
		LiveValue  string
	}
)

// FromEnviron parses "KEY=value" pairs as returned by os.Environ.
// Malformed entries without a separator are skipped.
func FromEnviron(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Slice converts the environment back to "KEY=value" form for exec.Cmd,
// sorted for deterministic output.
func (e Environment) Slice() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy that can be mutated without affecting the
// original.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ResolveEnv merges a saved environment snapshot into the live
// environment. On key collision the live value always wins: the invoking
// shell's session state must never be shadowed by a stale snapshot.
func ResolveEnv(saved, live Environment) Environment {
	effective := make(Environment, len(saved)+len(live))
	for k, v := range saved {
		effective[k] = v
	}
	for k, v := range live {
		effective[k] = v
	}
	return effective
}

// Overrides lists every variable present in both saved and live with
// differing values, sorted by name, for user-facing warnings.
func Overrides(saved, live Environment) []Override {
	var out []Override
	for k, sv := range saved {
		if lv, ok := live[k]; ok && lv != sv {
			out = append(out, Override{Name: k, SavedValue: sv, LiveValue: lv})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// sensitiveMarkers are matched as case-insensitive substrings of a
// variable name to decide whether its value gets masked for display.
var sensitiveMarkers = []string{
	"key", "secret", "token", "password", "auth", "credential", "cert", "jwt", "oauth",
}

// IsSensitive reports whether a variable name looks like it holds a
// credential.
func IsSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range sensitiveMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// MaskValue redacts value for display when name is sensitive. Values
// longer than 8 characters keep their first 3 and last 2 characters;
// shorter values are masked entirely. The masked form always has the
// same length as the original. This is a display transform only and is
// never applied to the value handed to execution.
func MaskValue(name, value string) string {
	if !IsSensitive(name) {
		return value
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:3] + strings.Repeat("*", len(value)-5) + value[len(value)-2:]
}

// Masked returns a copy of the environment with every sensitive value
// redacted, for verbose previews.
func (e Environment) Masked() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = MaskValue(k, v)
	}
	return out
}
