// SPDX-License-Identifier: MPL-2.0

package histfile

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/cmdkeep/cmdkeep/internal/issue"
)

func newTestReader(t *testing.T, path, content string) *Reader {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return NewReader(fs)
}

func TestLastCommand(t *testing.T) {
	tests := []struct {
		desc    string
		content string
		want    string
		wantErr error
	}{
		{
			"plain bash history",
			"ls\ngit status\nmake build\n",
			"make build",
			nil,
		},
		{
			"zsh extended history stripped",
			": 1617295617:0;ls\n: 1617295620:5;npm run build\n",
			"npm run build",
			nil,
		},
		{
			"own invocations skipped",
			"make build\ncmdkeep save build\ncmdkeep list\n",
			"make build",
			nil,
		},
		{
			"bare cmdkeep skipped",
			"git pull\ncmdkeep\n",
			"git pull",
			nil,
		},
		{
			"command starting with cmdkeeper kept",
			"cmdkeeper-tool --run\n",
			"cmdkeeper-tool --run",
			nil,
		},
		{
			"trailing blank lines ignored",
			"echo hi\n\n\n",
			"echo hi",
			nil,
		},
		{
			"only own invocations",
			"cmdkeep list\ncmdkeep recent\n",
			"",
			issue.ErrNotFound,
		},
		{
			"empty file",
			"",
			"",
			issue.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			r := newTestReader(t, "/home/u/.bash_history", tt.content)
			got, err := r.LastCommand("/home/u/.bash_history")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LastCommand() = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LastCommand() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LastCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastCommand_MissingFile(t *testing.T) {
	r := NewReader(afero.NewMemMapFs())
	if _, err := r.LastCommand("/nope"); !errors.Is(err, issue.ErrNotFound) {
		t.Errorf("LastCommand() = %v, want ErrNotFound", err)
	}
}

func TestDefaultPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/home/u/.zsh_history", []byte("ls\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	r := NewReader(fs)

	if got := r.DefaultPath("/custom/hist", "/home/u"); got != "/custom/hist" {
		t.Errorf("DefaultPath() = %q, want HISTFILE value", got)
	}
	if got := r.DefaultPath("", "/home/u"); got != "/home/u/.zsh_history" {
		t.Errorf("DefaultPath() = %q, want existing .zsh_history", got)
	}
	if got := NewReader(afero.NewMemMapFs()).DefaultPath("", "/home/u"); got != "/home/u/.bash_history" {
		t.Errorf("DefaultPath() with no files = %q, want .bash_history fallback", got)
	}
}
