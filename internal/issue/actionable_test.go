// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "render Dockerfile"},
			expected: "failed to render Dockerfile",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "./config.cue",
			},
			expected: "failed to load configuration: ./config.cue",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "./config.cue",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load configuration: ./config.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("no passwd entry")
	err := NewErrorContext().
		WithOperation("compose extensions").
		Wrap(fmt.Errorf("user: %w", sentinel)).
		BuildError()
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Chain(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	err := NewErrorContext().
		WithOperation("write Dockerfile").
		WithResource("/out/Dockerfile").
		Wrap(fmt.Errorf("open: %w", inner)).
		Build()

	want := []string{"open: permission denied", "permission denied"}
	if got := err.Chain(); !slices.Equal(got, want) {
		t.Errorf("Chain() = %q, want %q", got, want)
	}

	if got := (&ActionableError{Operation: "render Dockerfile"}).Chain(); got != nil {
		t.Errorf("Chain() without cause = %q, want nil", got)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}

	err := NewErrorContext().WithOperation("load configuration").WithIssue(ConfigLoadFailedId).BuildError()
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T, want *ActionableError", err)
	}
	if ae.IssueID != ConfigLoadFailedId {
		t.Errorf("IssueID = %d, want %d", ae.IssueID, ConfigLoadFailedId)
	}
}
