// SPDX-License-Identifier: MPL-2.0

// Package meta implements the generic metadata table: a JSON object mapping a
// string key to a per-subsystem value. Each subsystem owns exactly one key and
// reads/writes it through a typed accessor (Get/Set with its own value type),
// never through an untyped blob. Keys the current build does not know about
// pass through save cycles opaquely, so older and newer versions can share a
// file.
package meta

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cmdkeep/cmdkeep/internal/store"
)

// Key identifies one subsystem's slot in the metadata table.
type Key string

const (
	// KeyShortAliases holds the short-alias map (owned by internal/alias).
	KeyShortAliases Key = "short_aliases"
	// KeyExecutionLog holds the recent-execution log (owned by internal/recent).
	KeyExecutionLog Key = "execution_log"
	// KeyRecentConfig holds the recent-log configuration (owned by internal/recent).
	KeyRecentConfig Key = "recent_log"
	// KeyUpdateCheck holds version-check bookkeeping (owned by this package).
	KeyUpdateCheck Key = "update_check"
)

// Table is one loaded snapshot of the metadata file. Mutations operate on the
// snapshot; Save persists the whole table atomically through the store. The
// short-lived CLI process follows a full load-mutate-save cycle per mutation,
// the same discipline as the alias table.
type Table struct {
	st     *store.Store
	values map[string]json.RawMessage
}

// Open loads a fresh snapshot of the metadata table. A missing file yields an
// empty table; a corrupt file yields an empty table with the diagnostic logged
// by the store layer.
func Open(st *store.Store) (*Table, error) {
	values := make(map[string]json.RawMessage)
	if _, err := st.Load(&values); err != nil {
		return nil, err
	}
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	return &Table{st: st, values: values}, nil
}

// Save persists the snapshot, unknown keys included, through the store's
// atomic-rename write.
func (t *Table) Save() error {
	return t.st.Save(t.values)
}

// Keys returns every key present in the snapshot, sorted, including keys this
// build does not interpret.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Delete removes a key from the snapshot. Deleting an absent key is a no-op.
func (t *Table) Delete(k Key) {
	delete(t.values, string(k))
}

// Get decodes the value under k into T. ok is false when the key is absent.
// A present value that does not decode as T is an error: it means another
// subsystem (or a bug) wrote to a key it does not own.
func Get[T any](t *Table, k Key) (v T, ok bool, err error) {
	raw, present := t.values[string(k)]
	if !present {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode metadata key %q: %w", k, err)
	}
	return v, true, nil
}

// Set encodes v into the slot under k. The caller still needs Save to persist.
func Set[T any](t *Table, k Key, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode metadata key %q: %w", k, err)
	}
	t.values[string(k)] = raw
	return nil
}
