// SPDX-License-Identifier: MPL-2.0

// Package recent tracks past command invocations so a user can re-run
// them by position. The raw log is newest-first and capped; display and
// @N addressing go through a deduplicated view so the index of a command
// stays stable across repeated runs of the same name.
package recent

import (
	"fmt"
	"time"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/meta"
	"github.com/cmdkeep/cmdkeep/internal/store"
)

// DefaultMaxSize is the raw log cap used when no explicit size has been
// configured.
const DefaultMaxSize = 50

type (
	// Entry is one recorded invocation. Entries are kept newest-first.
	Entry struct {
		CommandName alias.Name `json:"commandName"`
		ExecutedAt  time.Time  `json:"executedAt"`
	}

	// Config is the persisted tracker configuration.
	Config struct {
		MaxSize int `json:"maxSize"`
	}

	// Tracker is the recent-execution log over the metadata table. It owns
	// the execution-log and recent-config keys and nothing else.
	Tracker struct {
		st *store.Store
		// Nil defaults to time.Now; tests inject a fake clock.
		Now func() time.Time
	}
)

func NewTracker(st *store.Store) *Tracker {
	return &Tracker{st: st}
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Tracker) load() (*meta.Table, []Entry, error) {
	tbl, err := meta.Open(t.st)
	if err != nil {
		return nil, nil, err
	}
	entries, _, err := meta.Get[[]Entry](tbl, meta.KeyExecutionLog)
	if err != nil {
		return nil, nil, err
	}
	return tbl, entries, nil
}

func (t *Tracker) maxSize(tbl *meta.Table) int {
	cfg, ok, err := meta.Get[Config](tbl, meta.KeyRecentConfig)
	if err != nil || !ok || cfg.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return cfg.MaxSize
}

// MaxSize reports the currently effective raw-log cap.
func (t *Tracker) MaxSize() (int, error) {
	tbl, err := meta.Open(t.st)
	if err != nil {
		return 0, err
	}
	return t.maxSize(tbl), nil
}

// SetMaxSize persists a new raw-log cap and truncates the existing log to
// it immediately.
func (t *Tracker) SetMaxSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("recent log size %d: %w: must be positive", n, issue.ErrInvalidInput)
	}
	tbl, entries, err := t.load()
	if err != nil {
		return err
	}
	if err := meta.Set(tbl, meta.KeyRecentConfig, Config{MaxSize: n}); err != nil {
		return err
	}
	if len(entries) > n {
		if err := meta.Set(tbl, meta.KeyExecutionLog, entries[:n]); err != nil {
			return err
		}
	}
	return tbl.Save()
}

// Record prepends an invocation of name to the log and drops the oldest
// entries past the cap.
func (t *Tracker) Record(name alias.Name) error {
	tbl, entries, err := t.load()
	if err != nil {
		return err
	}
	entries = append([]Entry{{CommandName: name, ExecutedAt: t.now()}}, entries...)
	if max := t.maxSize(tbl); len(entries) > max {
		entries = entries[:max]
	}
	if err := meta.Set(tbl, meta.KeyExecutionLog, entries); err != nil {
		return err
	}
	return tbl.Save()
}

// ListRaw returns every recorded invocation, newest first, repeats
// included.
func (t *Tracker) ListRaw() ([]Entry, error) {
	_, entries, err := t.load()
	return entries, err
}

// ListDeduplicated walks the log newest-first and keeps the first
// occurrence of each distinct name. A limit <= 0 means no limit.
func (t *Tracker) ListDeduplicated(limit int) ([]alias.Name, error) {
	_, entries, err := t.load()
	if err != nil {
		return nil, err
	}
	seen := make(map[alias.Name]struct{}, len(entries))
	var names []alias.Name
	for _, e := range entries {
		if _, dup := seen[e.CommandName]; dup {
			continue
		}
		seen[e.CommandName] = struct{}{}
		names = append(names, e.CommandName)
		if limit > 0 && len(names) == limit {
			break
		}
	}
	return names, nil
}

// ByIndex resolves position i of the deduplicated list, 0 being the most
// recent distinct command.
func (t *Tracker) ByIndex(i int) (alias.Name, error) {
	if i < 0 {
		return "", fmt.Errorf("recent index %d: %w: must be non-negative", i, issue.ErrInvalidInput)
	}
	names, err := t.ListDeduplicated(0)
	if err != nil {
		return "", err
	}
	if i >= len(names) {
		return "", fmt.Errorf("recent index @%d: %w: only %d recent command(s)", i, issue.ErrNotFound, len(names))
	}
	return names[i], nil
}

// Clear replaces the log with an empty list. The configured cap is kept.
func (t *Tracker) Clear() error {
	tbl, err := meta.Open(t.st)
	if err != nil {
		return err
	}
	if err := meta.Set(tbl, meta.KeyExecutionLog, []Entry{}); err != nil {
		return err
	}
	return tbl.Save()
}
