// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "invalid input", err: ErrInvalidInput, want: ExitInvalidInput},
		{name: "wrapped invalid input", err: fmt.Errorf("alias name %q: %w", "a b", ErrInvalidInput), want: ExitInvalidInput},
		{name: "not found", err: ErrNotFound, want: ExitNotFound},
		{name: "permission denied", err: ErrPermissionDenied, want: ExitPermissionDenied},
		{name: "i/o failure", err: ErrIOFailure, want: ExitGeneralError},
		{name: "execution failure", err: ErrExecutionFailure, want: ExitGeneralError},
		{name: "unclassified", err: errors.New("boom"), want: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_ActionableWrapping(t *testing.T) {
	ae := NewErrorContext().
		WithOperation("resolve alias").
		WithResource("build-prod").
		Wrap(ErrNotFound).
		BuildError()

	if !errors.Is(ae, ErrNotFound) {
		t.Fatal("ActionableError should unwrap to ErrNotFound")
	}
	if got := ExitCodeFor(ae); got != ExitNotFound {
		t.Errorf("ExitCodeFor() = %d, want %d", got, ExitNotFound)
	}
}
