// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"testing"

	"github.com/cmdkeep/cmdkeep/internal/alias"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		desc string
		path string
		cwd  string
		want string
	}{
		{"empty resolves to cwd", "", "/home/u/proj", "/home/u/proj"},
		{"dot resolves to cwd", ".", "/home/u/proj", "/home/u/proj"},
		{"dotdot resolves to parent", "..", "/home/u/proj", "/home/u"},
		{"relative joined to cwd", "sub/dir", "/home/u/proj", "/home/u/proj/sub/dir"},
		{"absolute passes through", "/opt/data", "/home/u/proj", "/opt/data"},
		{"absolute cleaned", "/opt//data/.", "/home/u/proj", "/opt/data"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := ResolvePath(tt.path, tt.cwd); got != tt.want {
				t.Errorf("ResolvePath(%q, %q) = %q, want %q", tt.path, tt.cwd, got, tt.want)
			}
		})
	}
}

func TestResolveWorkDir(t *testing.T) {
	saved := alias.CommandAlias{Directory: "/proj", PathMode: alias.PathModeSaved}
	current := alias.CommandAlias{Directory: "/proj", PathMode: alias.PathModeCurrent}
	legacy := alias.CommandAlias{Directory: "/proj"} // pathMode absent

	tests := []struct {
		desc     string
		a        alias.CommandAlias
		override string
		cwd      string
		want     string
	}{
		{"saved mode uses stored directory", saved, "", "/elsewhere", "/proj"},
		{"current mode uses cwd", current, "", "/elsewhere", "/elsewhere"},
		{"absent mode defaults to saved", legacy, "", "/elsewhere", "/proj"},
		{"override beats saved mode", saved, "/override", "/elsewhere", "/override"},
		{"override beats current mode", current, "/override", "/elsewhere", "/override"},
		{"relative override resolved against cwd", saved, "sub", "/elsewhere", "/elsewhere/sub"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := ResolveWorkDir(tt.a, tt.override, tt.cwd)
			if got != tt.want {
				t.Errorf("ResolveWorkDir(%+v, %q, %q) = %q, want %q", tt.a, tt.override, tt.cwd, got, tt.want)
			}
		})
	}
}
