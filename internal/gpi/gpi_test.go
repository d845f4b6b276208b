// SPDX-License-Identifier: MPL-2.0

package gpi

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/gpihelp/gpihelp/internal/describe"
	"github.com/gpihelp/gpihelp/internal/docreg"
	"github.com/gpihelp/gpihelp/internal/modres"
	"github.com/gpihelp/gpihelp/internal/object"
)

type failingBackend struct{}

func (failingBackend) Name() string       { return "Broken" }
func (failingBackend) Start(j *Job) error { return errors.New("no capacity") }

func TestJobRegistry_Submit(t *testing.T) {
	t.Parallel()

	r := NewJobRegistry(nil)
	first, err := r.Submit(NewJob("echo", "hello"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	second, err := r.Submit(NewJob("sleep", "1"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.Status != StatusRunning {
		t.Errorf("Status = %q, want running", first.Status)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}

	if _, err := r.Submit(first); !errors.Is(err, ErrJobState) {
		t.Errorf("resubmit error = %v, want ErrJobState", err)
	}
}

func TestJobRegistry_SubmitErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		j := NewJob("echo")
		j.Backend = "Grid"
		if _, err := NewJobRegistry(nil).Submit(j); !errors.Is(err, ErrUnknownBackend) {
			t.Errorf("Submit() error = %v, want ErrUnknownBackend", err)
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()
		r := NewJobRegistry(&Settings{DefaultBackend: LocalBackendName, MaxJobs: 1})
		if _, err := r.Submit(NewJob("a")); err != nil {
			t.Fatal(err)
		}
		if _, err := r.Submit(NewJob("b")); !errors.Is(err, ErrTooManyJobs) {
			t.Errorf("Submit() error = %v, want ErrTooManyJobs", err)
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		r := NewJobRegistry(nil)
		r.AddBackend(failingBackend{})
		j := NewJob("a")
		j.Backend = "Broken"
		got, err := r.Submit(j)
		if err == nil || got.Status != StatusFailed {
			t.Errorf("Submit() = (%v, %v), want a failed job and an error", got, err)
		}
		if r.Len() != 0 {
			t.Error("failed job was recorded")
		}
	})

	t.Run("default backend", func(t *testing.T) {
		t.Parallel()
		j := &Job{Application: "a", Status: StatusNew}
		if _, err := NewJobRegistry(nil).Submit(j); err != nil {
			t.Fatal(err)
		}
		if j.Backend != LocalBackendName {
			t.Errorf("Backend = %q, want %q", j.Backend, LocalBackendName)
		}
	})
}

func TestJobRegistry_GetAndSelect(t *testing.T) {
	t.Parallel()

	r := NewJobRegistry(nil)
	for _, app := range []string{"a", "b", "c"} {
		if _, err := r.Submit(NewJob(app)); err != nil {
			t.Fatal(err)
		}
	}
	j, err := r.Get(2)
	if err != nil || j.Application != "b" {
		t.Fatalf("Get(2) = (%v, %v)", j, err)
	}
	if _, err := r.Get(9); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Get(9) error = %v, want ErrJobNotFound", err)
	}

	if err := j.Kill(); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}
	if got := r.Select(StatusKilled); len(got) != 1 || got[0] != j {
		t.Errorf("Select(killed) = %v", got)
	}
	if got := r.Select(""); len(got) != 3 {
		t.Errorf("Select(\"\") returned %d jobs, want 3", len(got))
	}
}

func TestJob_Kill(t *testing.T) {
	t.Parallel()

	j := NewJob("echo")
	err := j.Kill()
	var jobErr *JobError
	if !errors.As(err, &jobErr) || jobErr.Op != "kill" || jobErr.Status != StatusNew {
		t.Fatalf("Kill() on a new job error = %v", err)
	}
	if !errors.Is(err, ErrJobState) {
		t.Error("JobError does not unwrap to ErrJobState")
	}
	if !strings.Contains(err.Error(), "cannot kill while new") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestJob_CopyAndString(t *testing.T) {
	t.Parallel()

	j := NewJob("echo", "hi")
	j.ID = 7
	j.Status = StatusCompleted
	c := j.Copy()
	c.Args[0] = "changed"

	if c.ID != 0 || c.Status != StatusNew || j.Args[0] != "hi" {
		t.Errorf("Copy() = %+v, original %+v", c, j)
	}
	if got := j.String(); got != "Job 7 (echo): completed" {
		t.Errorf("String() = %q", got)
	}
	j.Name = "greeting"
	if got := j.String(); got != "Job 7 (greeting): completed" {
		t.Errorf("String() = %q", got)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status        Status
		active, final bool
	}{
		{StatusNew, false, false},
		{StatusSubmitted, true, false},
		{StatusRunning, true, false},
		{StatusCompleted, false, true},
		{StatusFailed, false, true},
		{StatusKilled, false, true},
	}
	for _, tt := range tests {
		if tt.status.Active() != tt.active || tt.status.Final() != tt.final {
			t.Errorf("%s: Active() = %v, Final() = %v", tt.status, tt.status.Active(), tt.status.Final())
		}
	}
}

func TestPackage(t *testing.T) {
	t.Parallel()

	m := Package()
	if m.Name != "github.com/gpihelp/gpihelp/internal/gpi" {
		t.Errorf("Name = %q", m.Name)
	}
	files := m.SourceFiles()
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	for _, want := range []string{"job.go", "registry.go", "export.go"} {
		if !slices.Contains(names, want) {
			t.Errorf("SourceFiles() = %v, missing %s", names, want)
		}
	}
	if slices.Contains(names, "gpi_test.go") {
		t.Error("SourceFiles() includes test files")
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()

	rt := NewRuntime(nil)
	entry := object.NewModule(EntryName, "")
	reg := docreg.New(docreg.Options{})
	docs := describe.NewDocs()
	Publish(rt, entry, reg, docs)

	if entry.Doc == "" {
		t.Error("entry doc was not set")
	}
	if got, want := entry.Len(), reg.Len(); got != want {
		t.Errorf("entry has %d members, registry %d entries", got, want)
	}
	if v, _ := entry.Get("Jobs"); v != rt.Jobs {
		t.Error("Jobs is not the runtime registry")
	}
	if v, _ := entry.Get("Job"); v != reflect.TypeFor[Job]() {
		t.Error("Job is not the Job type")
	}
	if names := entryNames(reg.Entries(docreg.Exceptions)); !slices.Equal(names, []string{"JobError"}) {
		t.Errorf("Exceptions = %v", names)
	}
	if names := entryNames(reg.Entries(docreg.Objects)); !slices.Equal(names, []string{"Jobs", "Config"}) {
		t.Errorf("Objects = %v", names)
	}

	submit, _ := entry.Get("Submit")
	if text, ok := docs.Lookup(submit); !ok || !strings.HasPrefix(text, "Submit hands") {
		t.Errorf("Submit docs = (%q, %v)", text, ok)
	}
}

func TestSourceDocumentation(t *testing.T) {
	t.Parallel()

	table := modres.NewTable()
	table.Add(Package())
	docs := describe.NewDocs()
	builtin := Builtins(docs)
	x := describe.NewExtractor(docs, modres.NewResolver(table, modres.Options{Builtin: builtin}))

	tests := []struct {
		name string
		v    any
		want string
	}{
		{"type", reflect.TypeFor[Job](), "Job is a unit of work submitted to a backend."},
		{"func", NewJob, "NewJob creates a job in the \"new\" state running application with args on"},
		{"instance", NewJob("x"), "Job is a unit of work submitted to a backend."},
		{"builtin", reflect.TypeFor[int](), "int is a signed integer type that is at least 32 bits in size."},
	}
	for _, tt := range tests {
		if got := x.Summary(tt.v); got != tt.want {
			t.Errorf("%s: Summary() = %q, want %q", tt.name, got, tt.want)
		}
	}

	if got := x.MethodDoc(reflect.TypeFor[Job](), "Kill"); got != "Kill stops an active job." {
		t.Errorf("MethodDoc(Kill) = %q", got)
	}
}

func entryNames(entries []docreg.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
