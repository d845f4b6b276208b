// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/gpihelp/gpihelp/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: mutates package-level build variables.
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version, Commit, BuildDate = "v1.2.3", "abc123", "2026-01-01"
	if got, want := getVersionString(), "v1.2.3 (commit: abc123, built: 2026-01-01)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	actionable := issue.NewErrorContext().
		WithOperation("locate documentation").
		WithResource("Jbo").
		WithIssue(issue.DocumentationNotFoundId).
		WithSuggestion("Type 'index' to list the documented public names").
		Wrap(errors.New("no such name")).
		BuildError()

	tests := []struct {
		name    string
		err     error
		verbose bool
		want    []string
		notWant []string
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: []string{"boom"},
		},
		{
			name:    "actionable",
			err:     actionable,
			want:    []string{"failed to locate documentation: Jbo: no such name", "• Type 'index'"},
			notWant: []string{"Error chain:", "No documentation found"},
		},
		{
			name:    "actionable verbose",
			err:     actionable,
			verbose: true,
			want:    []string{"Error chain:", "1. no such name", "No documentation found"},
		},
		{
			name: "wrapped actionable",
			err:  &ExitError{Code: 2, Err: actionable},
			want: []string{"• Type 'index'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatErrorForDisplay(tt.err, tt.verbose, "notty")
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output lacks %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("output contains %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}
	err := &ExitError{Code: 1, Err: cause}
	if err.Error() != "cause" || !errors.Is(err, cause) {
		t.Errorf("ExitError does not wrap its cause: %v", err)
	}
}
