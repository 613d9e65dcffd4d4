// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveEnv_LiveWins(t *testing.T) {
	saved := Environment{"API_URL": "https://old.example", "EDITOR": "vim"}
	live := Environment{"API_URL": "https://new.example", "HOME": "/home/u"}

	got := ResolveEnv(saved, live)
	want := Environment{
		"API_URL": "https://new.example",
		"EDITOR":  "vim",
		"HOME":    "/home/u",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEnv_DoesNotMutateInputs(t *testing.T) {
	saved := Environment{"A": "saved"}
	live := Environment{"A": "live"}
	ResolveEnv(saved, live)

	if saved["A"] != "saved" || live["A"] != "live" {
		t.Errorf("inputs mutated: saved=%q live=%q", saved["A"], live["A"])
	}
}

func TestOverrides(t *testing.T) {
	saved := Environment{"B": "1", "A": "x", "C": "same", "ONLY_SAVED": "v"}
	live := Environment{"B": "2", "A": "y", "C": "same", "ONLY_LIVE": "v"}

	got := Overrides(saved, live)
	want := []Override{
		{Name: "A", SavedValue: "x", LiveValue: "y"},
		{Name: "B", SavedValue: "1", LiveValue: "2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Overrides() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnviron(t *testing.T) {
	got := FromEnviron([]string{"A=1", "B=x=y", "malformed", "=noname"})
	want := Environment{"A": "1", "B": "x=y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromEnviron() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironment_Slice_Sorted(t *testing.T) {
	env := Environment{"B": "2", "A": "1"}
	got := env.Slice()
	want := []string{"A=1", "B=2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Slice() mismatch (-want +got):\n%s", diff)
	}
}

func TestIsSensitive(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"AWS_SECRET_ACCESS_KEY", true},
		{"GITHUB_TOKEN", true},
		{"DB_PASSWORD", true},
		{"OAUTH_CLIENT", true},
		{"ApiKey", true},
		{"HOME", false},
		{"PATH", false},
		{"EDITOR", false},
	}
	for _, tt := range tests {
		if got := IsSensitive(tt.name); got != tt.want {
			t.Errorf("IsSensitive(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		desc  string
		name  string
		value string
		want  string
	}{
		{"long sensitive keeps edges", "API_TOKEN", "abcdefghij", "abc*****ij"},
		{"short sensitive fully masked", "API_TOKEN", "abcdefgh", "********"},
		{"empty sensitive stays empty", "API_TOKEN", "", ""},
		{"non-sensitive untouched", "HOME", "/home/u", "/home/u"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := MaskValue(tt.name, tt.value)
			if got != tt.want {
				t.Errorf("MaskValue(%q, %q) = %q, want %q", tt.name, tt.value, got, tt.want)
			}
			if len(got) != len(tt.value) {
				t.Errorf("MaskValue changed length: %d -> %d", len(tt.value), len(got))
			}
			// Masking must be idempotent so re-rendering a masked view is safe.
			if again := MaskValue(tt.name, got); again != got {
				t.Errorf("MaskValue not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestEnvironment_Masked_LeavesOriginal(t *testing.T) {
	env := Environment{"API_TOKEN": "abcdefghij", "HOME": "/home/u"}
	masked := env.Masked()

	if masked["API_TOKEN"] != "abc*****ij" {
		t.Errorf("Masked()[API_TOKEN] = %q", masked["API_TOKEN"])
	}
	if env["API_TOKEN"] != "abcdefghij" {
		t.Errorf("Masked() altered the original value: %q", env["API_TOKEN"])
	}
}
