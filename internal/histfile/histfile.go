// SPDX-License-Identifier: MPL-2.0

// Package histfile scrapes the invoking shell's history file so the most
// recent command can be saved without retyping it.
package histfile

import (
	"bufio"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/cmdkeep/cmdkeep/internal/issue"
)

// zsh extended history lines look like ": 1617295617:0;the command".
var zshExtendedRe = regexp.MustCompile(`^: \d+:\d+;`)

// Reader reads shell history files.
type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// DefaultPath picks the history file to read: $HISTFILE when set,
// otherwise the conventional bash and zsh locations under home.
func (r *Reader) DefaultPath(histfileEnv, home string) string {
	if histfileEnv != "" {
		return histfileEnv
	}
	for _, name := range []string{".bash_history", ".zsh_history"} {
		path := filepath.Join(home, name)
		if ok, err := afero.Exists(r.fs, path); err == nil && ok {
			return path
		}
	}
	return filepath.Join(home, ".bash_history")
}

// LastCommand returns the newest history entry that is not itself a
// cmdkeep invocation, with zsh extended-history metadata stripped.
func (r *Reader) LastCommand(path string) (string, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open history file %s: %w", path, issue.ErrNotFound)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read history file %s: %w", path, err)
	}

	for i := len(lines) - 1; i >= 0; i-- {
		cmd := strings.TrimSpace(zshExtendedRe.ReplaceAllString(lines[i], ""))
		if cmd == "" || isOwnInvocation(cmd) {
			continue
		}
		return cmd, nil
	}
	return "", fmt.Errorf("history file %s: %w: no usable command found", path, issue.ErrNotFound)
}

// isOwnInvocation filters out cmdkeep's own commands so "save --last"
// does not capture itself.
func isOwnInvocation(cmd string) bool {
	return cmd == "cmdkeep" || strings.HasPrefix(cmd, "cmdkeep ")
}
