// SPDX-License-Identifier: MPL-2.0

package object

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// Module is a named namespace of public members. Go packages are registered
	// as modules under their import path; synthetic namespaces such as the
	// public interface or the builtins use short names.
	//
	// Members keep their insertion order, which is also their display order.
	Module struct {
		// Name identifies the module in a modres.Table.
		Name string
		// Doc is the module documentation text.
		Doc string
		// Dir is the directory holding the module's Go source files (optional).
		Dir string
		// Files lists additional backing source files (optional).
		Files []string

		names   []string
		members map[string]any
	}

	// Member is a single named value of a Module.
	Member struct {
		Name  string
		Value any
	}

	// Property is a named, typed accessor on an owner type. Struct fields reached
	// through a dotted path surface as properties.
	Property struct {
		// Name is the field or accessor name.
		Name string
		// Doc is the accessor documentation text.
		Doc string
		// Type is the type of the value the accessor yields.
		Type reflect.Type
		// Owner is the type the accessor belongs to (may be nil).
		Owner reflect.Type
	}
)

// NewModule creates an empty module.
func NewModule(name, doc string) *Module {
	return &Module{
		Name:    name,
		Doc:     doc,
		members: make(map[string]any),
	}
}

// Set binds name to v. Rebinding an existing name keeps its original position.
func (m *Module) Set(name string, v any) *Module {
	if m.members == nil {
		m.members = make(map[string]any)
	}
	if _, exists := m.members[name]; !exists {
		m.names = append(m.names, name)
	}
	m.members[name] = v
	return m
}

// Get returns the member bound to name.
func (m *Module) Get(name string) (any, bool) {
	v, ok := m.members[name]
	return v, ok
}

// Members returns the module members in insertion order.
func (m *Module) Members() []Member {
	out := make([]Member, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, Member{Name: name, Value: m.members[name]})
	}
	return out
}

// Len returns the number of members.
func (m *Module) Len() int {
	return len(m.names)
}

// HasSource reports whether the module exposes any backing source.
func (m *Module) HasSource() bool {
	return m.Dir != "" || len(m.Files) > 0
}

// SourceFiles returns the absolute paths of the module's backing files: the
// explicit Files followed by the non-test Go files found in Dir. An unreadable
// Dir contributes nothing.
func (m *Module) SourceFiles() []string {
	var out []string
	for _, f := range m.Files {
		out = append(out, CanonicalPath(f))
	}
	if m.Dir == "" {
		return out
	}
	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		return out
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := CanonicalPath(filepath.Join(m.Dir, name))
		if !slices.Contains(out, path) {
			out = append(out, path)
		}
	}
	return out
}

// CanonicalPath returns the absolute, symlink-resolved form of path. When the
// path cannot be resolved on disk the cleaned absolute path is returned.
func CanonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// NewFieldProperty surfaces a struct field as a property. The field's doc
// text comes from its `doc` struct tag.
func NewFieldProperty(owner reflect.Type, f reflect.StructField) *Property {
	return &Property{
		Name:  f.Name,
		Doc:   f.Tag.Get("doc"),
		Type:  f.Type,
		Owner: owner,
	}
}
