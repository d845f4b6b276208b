// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

var errNoSuchName = errors.New("no such name")

// locateError builds the error reported when a help request names nothing.
func locateError(path string) *ActionableError {
	return NewErrorContext().
		WithOperation("locate documentation").
		WithResource(path).
		WithIssue(DocumentationNotFoundId).
		WithSuggestions(
			"Type 'index' to list the documented public names",
			"Use a dotted path such as Job.Kill",
		).
		Wrap(errNoSuchName).
		Build()
}

func TestActionableError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"bare", &ActionableError{Operation: "select pager"}, "failed to select pager"},
		{"resource", &ActionableError{Operation: "select pager", Resource: "less"}, "failed to select pager: less"},
		{"cause", &ActionableError{Operation: "display documentation", Cause: fs.ErrClosed}, "failed to display documentation: file already closed"},
		{"lookup", locateError("Job.Kil"), "failed to locate documentation: Job.Kil: no such name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_CauseChain(t *testing.T) {
	t.Parallel()

	err := locateError("Jobs.Selcet")
	if !errors.Is(err, errNoSuchName) {
		t.Error("errors.Is does not reach the cause")
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() without a cause should be nil")
	}

	outer := NewErrorContext().
		WithOperation("render documentation").
		Wrap(err).
		BuildError()
	var ae *ActionableError
	if !errors.As(outer, &ae) || ae.Operation != "render documentation" {
		t.Fatalf("errors.As() = %v", ae)
	}
	if !errors.Is(outer, errNoSuchName) {
		t.Error("nested ActionableErrors hide the root cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := locateError("Job.Kil")

	short := err.Format(false)
	wantShort := "failed to locate documentation: Job.Kil: no such name\n" +
		"\n  • Type 'index' to list the documented public names" +
		"\n  • Use a dotted path such as Job.Kill"
	if short != wantShort {
		t.Errorf("Format(false) = %q, want %q", short, wantShort)
	}

	long := err.Format(true)
	if !strings.HasPrefix(long, wantShort) || !strings.HasSuffix(long, "\n\nError chain:\n  1. no such name") {
		t.Errorf("Format(true) = %q", long)
	}

	nested := (&ActionableError{Operation: "render documentation", Cause: err}).Format(true)
	for _, want := range []string{"1. failed to locate documentation: Job.Kil: no such name", "2. no such name"} {
		if !strings.Contains(nested, want) {
			t.Errorf("nested Format(true) lacks %q:\n%s", want, nested)
		}
	}
}

func TestErrorContext(t *testing.T) {
	t.Parallel()

	t.Run("operation is required", func(t *testing.T) {
		t.Parallel()
		ctx := NewErrorContext().WithResource("config.cue").Wrap(fs.ErrNotExist)
		if ctx.Build() != nil {
			t.Error("Build() without an operation should be nil")
		}
		if err := ctx.BuildError(); err != nil {
			t.Errorf("BuildError() = %v, want a nil interface", err)
		}
	})

	t.Run("suggestions accumulate", func(t *testing.T) {
		t.Parallel()
		err := NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Run 'gpihelp config init'").
			WithSuggestions("Check file permissions", "Use --config").
			Build()
		want := []string{"Run 'gpihelp config init'", "Check file permissions", "Use --config"}
		if strings.Join(err.Suggestions, "|") != strings.Join(want, "|") {
			t.Errorf("Suggestions = %q, want %q", err.Suggestions, want)
		}
	})

	t.Run("rewrap keeps the context", func(t *testing.T) {
		t.Parallel()
		ctx := NewErrorContext().WithOperation("load configuration").WithResource("config.cue")
		first := ctx.Wrap(fs.ErrNotExist).Build()
		second := ctx.Wrap(fs.ErrPermission).Build()
		if !errors.Is(first, fs.ErrNotExist) || !errors.Is(second, fs.ErrPermission) {
			t.Errorf("causes = %v, %v", first.Cause, second.Cause)
		}
		if first.Resource != second.Resource {
			t.Error("rewrapping lost the resource")
		}
	})
}

func TestActionableError_Guide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		issue Id
		want  Id
	}{
		{"linked", DocumentationNotFoundId, DocumentationNotFoundId},
		{"unlinked", 0, 0},
		{"unknown id", Id(9999), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewErrorContext().
				WithOperation("locate documentation").
				WithIssue(tt.issue).
				Build()

			guide := err.Guide()
			if tt.want == 0 {
				if guide != nil {
					t.Errorf("Guide() = %d, want nil", guide.Id())
				}
				return
			}
			if guide == nil || guide.Id() != tt.want {
				t.Errorf("Guide() = %v, want issue %d", guide, tt.want)
			}
		})
	}
}
