// SPDX-License-Identifier: MPL-2.0

package recent

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/store"
	"github.com/cmdkeep/cmdkeep/internal/testutil"
)

func newTestTracker(t *testing.T) (*Tracker, *testutil.FakeClock) {
	t.Helper()
	fs := afero.NewMemMapFs()
	st := store.New(fs, "/data/cmdkeep/metadata.json", nil)
	clk := testutil.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	tr := NewTracker(st)
	tr.Now = clk.Now
	return tr, clk
}

func mustRecord(t *testing.T, tr *Tracker, names ...alias.Name) {
	t.Helper()
	for _, n := range names {
		if err := tr.Record(n); err != nil {
			t.Fatalf("Record(%q) error: %v", n, err)
		}
	}
}

func TestTracker_RecordNewestFirst(t *testing.T) {
	tr, clk := newTestTracker(t)
	mustRecord(t, tr, "build")
	clk.Advance(time.Minute)
	mustRecord(t, tr, "test")

	entries, err := tr.ListRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListRaw() returned %d entries, want 2", len(entries))
	}
	if entries[0].CommandName != "test" || entries[1].CommandName != "build" {
		t.Errorf("ListRaw() order = [%s, %s], want newest first", entries[0].CommandName, entries[1].CommandName)
	}
	if !entries[0].ExecutedAt.After(entries[1].ExecutedAt) {
		t.Errorf("newest entry timestamp %v not after oldest %v", entries[0].ExecutedAt, entries[1].ExecutedAt)
	}
}

func TestTracker_DeduplicatesOnRead(t *testing.T) {
	tr, _ := newTestTracker(t)
	// Raw log ends up [A, B, A, C] newest first.
	mustRecord(t, tr, "C", "A", "B", "A")

	names, err := tr.ListDeduplicated(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []alias.Name{"A", "B", "C"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("ListDeduplicated() mismatch (-want +got):\n%s", diff)
	}

	raw, err := tr.ListRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 4 {
		t.Errorf("raw log has %d entries, want 4: dedup must not rewrite it", len(raw))
	}
}

func TestTracker_ListDeduplicatedLimit(t *testing.T) {
	tr, _ := newTestTracker(t)
	mustRecord(t, tr, "C", "B", "A")

	names, err := tr.ListDeduplicated(2)
	if err != nil {
		t.Fatal(err)
	}
	want := []alias.Name{"A", "B"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("ListDeduplicated(2) mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker_ByIndex(t *testing.T) {
	tr, _ := newTestTracker(t)
	mustRecord(t, tr, "C", "A", "B", "A")

	got, err := tr.ByIndex(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "B" {
		t.Errorf("ByIndex(1) = %q, want %q", got, "B")
	}

	if _, err := tr.ByIndex(3); !errors.Is(err, issue.ErrNotFound) {
		t.Errorf("ByIndex(3) = %v, want ErrNotFound", err)
	}
	if _, err := tr.ByIndex(-1); !errors.Is(err, issue.ErrInvalidInput) {
		t.Errorf("ByIndex(-1) = %v, want ErrInvalidInput", err)
	}
}

func TestTracker_CapDropsOldest(t *testing.T) {
	tr, _ := newTestTracker(t)
	if err := tr.SetMaxSize(3); err != nil {
		t.Fatal(err)
	}
	mustRecord(t, tr, "a", "b", "c", "d")

	entries, err := tr.ListRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("ListRaw() returned %d entries, want cap of 3", len(entries))
	}
	if entries[0].CommandName != "d" || entries[2].CommandName != "b" {
		t.Errorf("cap dropped wrong end: got [%s .. %s], want newest kept", entries[0].CommandName, entries[2].CommandName)
	}
}

func TestTracker_SetMaxSizeTruncatesExisting(t *testing.T) {
	tr, _ := newTestTracker(t)
	mustRecord(t, tr, "a", "b", "c", "d")

	if err := tr.SetMaxSize(2); err != nil {
		t.Fatal(err)
	}
	entries, err := tr.ListRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].CommandName != "d" {
		t.Errorf("SetMaxSize(2) left %d entries starting with %q, want 2 starting with d", len(entries), entries[0].CommandName)
	}

	if err := tr.SetMaxSize(0); !errors.Is(err, issue.ErrInvalidInput) {
		t.Errorf("SetMaxSize(0) = %v, want ErrInvalidInput", err)
	}
}

func TestTracker_Clear(t *testing.T) {
	tr, _ := newTestTracker(t)
	mustRecord(t, tr, "a", "b")

	if err := tr.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err := tr.ListRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("ListRaw() after Clear() returned %d entries, want 0", len(entries))
	}
}
