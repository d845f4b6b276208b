// SPDX-License-Identifier: MPL-2.0

package gpi

import (
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/gpihelp/gpihelp/internal/describe"
	"github.com/gpihelp/gpihelp/internal/docreg"
	"github.com/gpihelp/gpihelp/internal/object"
)

const (
	// EntryName is the name of the public interface namespace.
	EntryName = "gpi"
	// BuiltinName is the name of the built-in namespace.
	BuiltinName = "builtin"

	// Version of the public interface.
	Version = "1.4.0"
)

const entryDoc = `Public interface of the job-management runtime.

Every name listed in the index is reachable from here, for example Job,
Submit or Jobs.Select.`

// Runtime is the live state behind the public interface.
type Runtime struct {
	// Jobs is the registry of submitted jobs.
	Jobs *JobRegistry
	// Config holds the runtime settings.
	Config *Settings
}

// NewRuntime creates a runtime with an empty job registry.
func NewRuntime(settings *Settings) *Runtime {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Runtime{
		Jobs:   NewJobRegistry(settings),
		Config: settings,
	}
}

// Submit hands a new job to its backend and records it in Jobs.
func (rt *Runtime) Submit(j *Job) (*Job, error) {
	return rt.Jobs.Submit(j)
}

// Package returns the module of this package, backed by its source directory
// so doc comments can be read from it.
func Package() *object.Module {
	m := object.NewModule(reflect.TypeFor[Job]().PkgPath(), "Package gpi implements the job-management runtime.")
	if _, file, _, ok := runtime.Caller(0); ok {
		m.Dir = filepath.Dir(file)
	}
	m.Set("Backend", reflect.TypeFor[Backend]())
	m.Set("Job", reflect.TypeFor[Job]())
	m.Set("JobError", reflect.TypeFor[JobError]())
	m.Set("JobRegistry", reflect.TypeFor[JobRegistry]())
	m.Set("LocalBackend", reflect.TypeFor[LocalBackend]())
	m.Set("Runtime", reflect.TypeFor[Runtime]())
	m.Set("Settings", reflect.TypeFor[Settings]())
	m.Set("Status", reflect.TypeFor[Status]())
	m.Set("DefaultSettings", DefaultSettings)
	m.Set("NewJob", NewJob)
	m.Set("NewJobRegistry", NewJobRegistry)
	m.Set("NewRuntime", NewRuntime)
	m.Set("Version", Version)
	return m
}

// Publish binds the public names of rt in entry and lists them in the index.
// Names without a Go declaration of their own get their documentation from
// docs or from an index override.
func Publish(rt *Runtime, entry *object.Module, reg *docreg.Registry, docs *describe.Docs) {
	if entry.Doc == "" {
		entry.Doc = entryDoc
	}

	export := func(name string, v any, section docreg.Section, override string) {
		entry.Set(name, v)
		reg.Register(name, v, section, override)
	}

	export("Job", reflect.TypeFor[Job](), docreg.Classes, "")
	export("LocalBackend", reflect.TypeFor[LocalBackend](), docreg.Classes, "")
	export("Settings", reflect.TypeFor[Settings](), docreg.Classes, "")
	export("Backend", reflect.TypeFor[Backend](), docreg.Classes, "")
	export("Status", reflect.TypeFor[Status](), docreg.Classes, "")

	export("JobError", reflect.TypeFor[JobError](), docreg.Exceptions, "")

	submit := rt.Submit
	docs.Attach(submit, "Submit hands a new job to its backend and records it in Jobs.\n\nIt returns the job with its ID assigned.")
	export("Submit", submit, docreg.Functions, "")
	export("NewJob", NewJob, docreg.Functions, "")

	export("Jobs", rt.Jobs, docreg.Objects, "Registry of all submitted jobs.")
	export("Config", rt.Config, docreg.Objects, "Runtime configuration settings.")
}

// Builtins returns the namespace of Go's predeclared types, documented
// through docs.
func Builtins(docs *describe.Docs) *object.Module {
	m := object.NewModule(BuiltinName, "Predeclared identifiers of the Go language.")
	for _, b := range []struct {
		name string
		typ  reflect.Type
		doc  string
	}{
		{"any", reflect.TypeFor[any](), "any is an alias for interface{} and is equivalent to it in all ways."},
		{"bool", reflect.TypeFor[bool](), "bool is the set of boolean values, true and false."},
		{"error", reflect.TypeFor[error](), "The error built-in interface type is the conventional interface for\nrepresenting an error condition, with the nil value representing no error."},
		{"float64", reflect.TypeFor[float64](), "float64 is the set of all IEEE 754 64-bit floating-point numbers."},
		{"int", reflect.TypeFor[int](), "int is a signed integer type that is at least 32 bits in size."},
		{"string", reflect.TypeFor[string](), "string is the set of all strings of 8-bit bytes, conventionally but not\nnecessarily representing UTF-8-encoded text."},
	} {
		docs.Attach(b.typ, b.doc)
		m.Set(b.name, b.typ)
	}
	return m
}
