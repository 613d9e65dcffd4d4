// SPDX-License-Identifier: MPL-2.0

// Package store implements the crash-safe JSON persistence layer backing the
// alias table and the metadata table.
//
// A Store is bound to a single file. Save writes the full serialized table to
// a sibling temporary file and atomically renames it over the real file, so a
// crash mid-write never leaves the real file half-written. There is no
// locking: two processes racing to save produce last-write-wins at rename
// granularity.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/cmdkeep/cmdkeep/internal/issue"
)

// ErrCorrupt is the sentinel error wrapped by CorruptFileError.
var ErrCorrupt = errors.New("corrupt table file")

type (
	// Store persists one JSON table to a single file over an afero filesystem.
	// Production code uses afero.NewOsFs(); tests inject afero.NewMemMapFs()
	// for hermetic round-trip and atomicity checks.
	Store struct {
		fs     afero.Fs
		path   string
		logger *log.Logger
	}

	// CorruptFileError is returned (via LoadReport) when the table file exists
	// but cannot be parsed. It wraps ErrCorrupt for errors.Is() compatibility.
	CorruptFileError struct {
		Path string
		Err  error
	}

	// LoadReport describes what Load recovered. Callers that care about silent
	// data loss (e.g. "cmdkeep config doctor"-style tooling) can inspect
	// Corrupt; ordinary callers ignore it and proceed with the decoded table.
	LoadReport struct {
		// Missing is true when the file did not exist and the zero table was
		// returned. This is a normal first-run condition, not an error.
		Missing bool
		// Corrupt is non-nil when the file existed but could not be parsed.
		// The zero table was returned and a diagnostic was logged.
		Corrupt *CorruptFileError
	}
)

// Error implements the error interface.
func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("corrupt table file %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrCorrupt so callers can use errors.Is for detection.
func (e *CorruptFileError) Unwrap() error { return ErrCorrupt }

// New creates a Store bound to path on fs. A nil logger falls back to the
// package-default charmbracelet logger.
func New(fs afero.Fs, path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{fs: fs, path: path, logger: logger}
}

// Path returns the file the store is bound to.
func (s *Store) Path() string { return s.path }

// Load decodes the table file into v (a pointer to the table type).
//
// A missing file yields the zero table and LoadReport.Missing. A corrupt file
// yields the zero table, a logged diagnostic, and LoadReport.Corrupt; the
// caller decides whether to surface it. Any other read failure is an
// issue.ErrIOFailure.
func (s *Store) Load(v any) (LoadReport, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadReport{Missing: true}, nil
		}
		if os.IsPermission(err) {
			return LoadReport{}, fmt.Errorf("read %s: %w: %w", s.path, issue.ErrPermissionDenied, err)
		}
		return LoadReport{}, fmt.Errorf("read %s: %w: %w", s.path, issue.ErrIOFailure, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		corrupt := &CorruptFileError{Path: s.path, Err: err}
		s.logger.Warn("table file is corrupt, continuing with an empty table",
			"path", s.path, "err", err)
		return LoadReport{Corrupt: corrupt}, nil
	}

	return LoadReport{}, nil
}

// Save atomically replaces the table file with the serialized form of v.
// The parent directory is created if needed. On any failure after the
// temporary file is created, the temporary file is removed and the real file
// is left untouched.
func (s *Store) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return s.classifyWriteErr("create directory", dir, err)
	}

	tmp := fmt.Sprintf("%s.tmp-%d", s.path, os.Getpid())
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		// A failed write can still leave a partial file behind.
		if rmErr := s.fs.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("failed to clean up temp file", "path", tmp, "err", rmErr)
		}
		return s.classifyWriteErr("write temp file", tmp, err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		if rmErr := s.fs.Remove(tmp); rmErr != nil {
			s.logger.Warn("failed to clean up temp file", "path", tmp, "err", rmErr)
		}
		return s.classifyWriteErr("replace table file", s.path, err)
	}

	return nil
}

func (s *Store) classifyWriteErr(op, path string, err error) error {
	if os.IsPermission(err) {
		return fmt.Errorf("%s %s: %w: %w", op, path, issue.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%s %s: %w: %w", op, path, issue.ErrIOFailure, err)
}
