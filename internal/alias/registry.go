// SPDX-License-Identifier: MPL-2.0

// Package alias implements the alias registry (CRUD over the saved-command
// table) and the short-alias indirection layered on top of it.
package alias

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/syntax"

	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/store"
)

// Registry provides CRUD over the alias table. Every mutation performs a full
// load-mutate-save cycle against the persistent store; nothing is cached
// across invocations of this short-lived process.
type Registry struct {
	st     *store.Store
	fs     afero.Fs
	logger *log.Logger

	// Now is the time source for CreatedAt/UpdatedAt stamps.
	// Nil defaults to time.Now; tests inject a fake clock.
	Now func() time.Time
}

// NewRegistry creates a Registry over the given store. fs is used only for
// directory-existence warnings; a nil logger falls back to the default.
func NewRegistry(st *store.Store, fs afero.Fs, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{st: st, fs: fs, logger: logger}
}

func (r *Registry) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Registry) load() (Table, error) {
	t := Table{}
	if _, err := r.st.Load(&t); err != nil {
		return nil, err
	}
	if t == nil {
		t = Table{}
	}
	return t, nil
}

// Get returns the alias saved under name, or ok=false when absent.
func (r *Registry) Get(name Name) (CommandAlias, bool, error) {
	t, err := r.load()
	if err != nil {
		return CommandAlias{}, false, err
	}
	a, ok := t[name]
	return a, ok, nil
}

// Exists reports whether an alias is saved under name.
func (r *Registry) Exists(name Name) (bool, error) {
	_, ok, err := r.Get(name)
	return ok, err
}

// List returns the full alias table.
func (r *Registry) List() (Table, error) {
	return r.load()
}

// Set saves or updates the alias under name. The command is trimmed and must
// be non-empty; the directory must be non-empty and is normalized to an
// absolute cleaned path; env keys must be valid variable names. A directory
// that does not exist is warned about, never rejected: a command may
// legitimately reference a not-yet-created directory. CreatedAt is preserved
// across updates; UpdatedAt is always refreshed.
func (r *Registry) Set(name Name, command, directory string, mode PathMode, env map[string]string) error {
	if isValid, errs := name.IsValid(); !isValid {
		return fmt.Errorf("%w: %w", issue.ErrInvalidInput, errs[0])
	}

	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("%w: command must not be empty", issue.ErrInvalidInput)
	}

	directory = strings.TrimSpace(directory)
	if directory == "" {
		return fmt.Errorf("%w: directory must not be empty", issue.ErrInvalidInput)
	}
	directory, err := normalizeDir(directory)
	if err != nil {
		return fmt.Errorf("%w: %w", issue.ErrInvalidInput, err)
	}

	if isValid, errs := mode.IsValid(); !isValid {
		return fmt.Errorf("%w: %w", issue.ErrInvalidInput, errs[0])
	}

	for k := range env {
		if isValid, errs := EnvVarName(k).IsValid(); !isValid {
			return fmt.Errorf("%w: %w", issue.ErrInvalidInput, errs[0])
		}
	}

	r.warnOnSuspectInput(name, command, directory)

	t, err := r.load()
	if err != nil {
		return err
	}

	now := r.now()
	a := CommandAlias{
		Command:   command,
		Directory: directory,
		PathMode:  mode,
		Env:       env,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev, ok := t[name]; ok {
		a.CreatedAt = prev.CreatedAt
	}
	t[name] = a

	return r.st.Save(t)
}

// Delete removes the alias under name. Deleting an unknown name is a
// NotFound error.
func (r *Registry) Delete(name Name) error {
	t, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := t[name]; !ok {
		return fmt.Errorf("alias %q: %w", name, issue.ErrNotFound)
	}
	delete(t, name)
	return r.st.Save(t)
}

// Export returns the raw alias table for whole-table serialization. It
// bypasses per-field validation: the table is being copied, not edited.
func (r *Registry) Export() (Table, error) {
	return r.load()
}

// Import replaces (or, with merge, overlays) the alias table with incoming.
// Each incoming record is validated for required fields before anything is
// written; a single bad record rejects the whole import.
func (r *Registry) Import(incoming Table, merge bool) error {
	now := r.now()
	for name, a := range incoming {
		if isValid, errs := name.IsValid(); !isValid {
			return fmt.Errorf("%w: record %q: %w", issue.ErrInvalidInput, name, errs[0])
		}
		if strings.TrimSpace(a.Command) == "" {
			return fmt.Errorf("%w: record %q has an empty command", issue.ErrInvalidInput, name)
		}
		if strings.TrimSpace(a.Directory) == "" {
			return fmt.Errorf("%w: record %q has an empty directory", issue.ErrInvalidInput, name)
		}
		if isValid, errs := a.PathMode.IsValid(); !isValid {
			return fmt.Errorf("%w: record %q: %w", issue.ErrInvalidInput, name, errs[0])
		}
		for k := range a.Env {
			if isValid, errs := EnvVarName(k).IsValid(); !isValid {
				return fmt.Errorf("%w: record %q: %w", issue.ErrInvalidInput, name, errs[0])
			}
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
		incoming[name] = a
	}

	t := incoming
	if merge {
		existing, err := r.load()
		if err != nil {
			return err
		}
		for name, a := range incoming {
			existing[name] = a
		}
		t = existing
	}

	return r.st.Save(t)
}

// warnOnSuspectInput surfaces save-time diagnostics that never block the
// write: a missing directory and unbalanced shell syntax. The executor hands
// the command text to the shell verbatim, so a parse failure here is only a
// hint that the saved text may not run as intended.
func (r *Registry) warnOnSuspectInput(name Name, command, directory string) {
	if exists, err := afero.DirExists(r.fs, directory); err == nil && !exists {
		r.logger.Warn("directory does not exist yet; saving anyway",
			"alias", name, "directory", directory)
	}

	parser := syntax.NewParser()
	if _, err := parser.Parse(strings.NewReader(command), string(name)); err != nil {
		r.logger.Warn("command does not parse as shell syntax; saving anyway",
			"alias", name, "err", err)
	}
}

// normalizeDir resolves directory to an absolute, cleaned path. Relative
// input is resolved against the process working directory; the CLI boundary
// resolves user-supplied paths before they get here, so this is a backstop.
func normalizeDir(directory string) (string, error) {
	abs, err := filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("normalize directory %q: %w", directory, err)
	}
	return filepath.Clean(abs), nil
}
