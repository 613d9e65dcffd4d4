// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"
	"time"
)

func TestFakeClock_FrozenUntilAdvanced(t *testing.T) {
	t.Parallel()

	initial := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	clk := NewFakeClock(initial)

	if got := clk.Now(); !got.Equal(initial) {
		t.Errorf("Now() = %v, want %v", got, initial)
	}
	if got := clk.Now(); !got.Equal(initial) {
		t.Errorf("Now() moved on its own: %v", got)
	}

	clk.Advance(90 * time.Minute)
	want := initial.Add(90 * time.Minute)
	if got := clk.Now(); !got.Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClock_NowUsableAsHook(t *testing.T) {
	t.Parallel()

	clk := NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	// The method value is how registry and tracker tests inject it.
	now := clk.Now
	before := now()
	clk.Advance(time.Second)
	if !now().After(before) {
		t.Error("hooked Now() did not observe Advance")
	}
}
