// SPDX-License-Identifier: MPL-2.0

package modres

import (
	"log/slog"
	"path/filepath"
	"reflect"

	"github.com/gpihelp/gpihelp/internal/object"
)

type (
	// Options configures the namespace fallbacks of a Resolver.
	Options struct {
		// Entry is the program's entry namespace: the public interface the user
		// interacts with. Objects exported there by identity resolve to it.
		Entry *object.Module
		// Builtin is the namespace of always-available names.
		Builtin *object.Module
	}

	// Resolver determines which module defined an arbitrary object.
	//
	// The resolver keeps a cache of absolute source file path to module name.
	// Entries are only ever added: the set of modules known to the Table only
	// grows during the life of the process and a file never changes owner.
	// A Resolver is not safe for concurrent use.
	Resolver struct {
		table   *Table
		entry   *object.Module
		builtin *object.Module
		byFile  map[string]string
	}
)

// NewResolver creates a resolver over table.
func NewResolver(table *Table, opts Options) *Resolver {
	return &Resolver{
		table:   table,
		entry:   opts.Entry,
		builtin: opts.Builtin,
		byFile:  make(map[string]string),
	}
}

// Resolve returns the module v was defined in, or nil when it cannot be
// determined. A nil result is an expected outcome, never an error.
//
// Resolution stops at the first rule that applies:
//  1. a module resolves to itself;
//  2. an object that names its defining module (a ModuleName method, or a
//     named type's package path) resolves to the table entry of that name,
//     which may be absent. A func whose symbol's package path names a table
//     module resolves to it; other funcs go on to the next rules;
//  3. an object without a traceable absolute source file resolves to nil;
//  4. a source file found in the cache resolves to the cached module;
//  5. otherwise the cache is rebuilt from every module exposing source files
//     and consulted again;
//  6. an object bound under its own name in the entry namespace resolves to
//     the entry namespace;
//  7. likewise for the builtin namespace.
func (r *Resolver) Resolve(v any) *object.Module {
	if m, ok := v.(*object.Module); ok {
		return m
	}
	if name, ok := definingModuleName(v); ok {
		return r.table.Get(name)
	}
	if m := r.funcPackage(v); m != nil {
		return m
	}

	file, ok := sourceFile(v)
	if !ok {
		return nil
	}
	if name, ok := r.byFile[file]; ok {
		return r.table.Get(name)
	}
	r.rebuild()
	if name, ok := r.byFile[file]; ok {
		return r.table.Get(name)
	}

	name := object.NameOf(v)
	if name == "" {
		return nil
	}
	if owner := ownedBy(r.entry, name, v); owner != nil {
		return owner
	}
	return ownedBy(r.builtin, name, v)
}

// CacheSize returns the number of source files currently in the cache.
func (r *Resolver) CacheSize() int {
	return len(r.byFile)
}

// rebuild rescans every module in the table. It is a full scan and runs on
// every cache miss so modules registered late are picked up.
func (r *Resolver) rebuild() {
	scanned := 0
	for _, m := range r.table.Modules() {
		if !m.HasSource() {
			continue
		}
		scanned++
		for _, f := range m.SourceFiles() {
			r.byFile[f] = m.Name
		}
	}
	slog.Debug("rebuilt module resolution cache", "modules", scanned, "files", len(r.byFile))
}

// funcPackage returns the table module named by the package path of a func's
// compiled symbol. Bound method values are compiler-generated wrappers with no
// source file, so this is the only rule that can place them.
func (r *Resolver) funcPackage(v any) *object.Module {
	info, ok := object.FuncInfoOf(v)
	if !ok {
		return nil
	}
	path := object.FuncPkgPath(info.Symbol)
	if path == "" {
		return nil
	}
	return r.table.Get(path)
}

// definingModuleName reports the module name an object carries about itself.
// Funcs carry none here; funcPackage and the source file rules place them.
func definingModuleName(v any) (string, bool) {
	if namer, ok := v.(object.ModuleNamer); ok {
		return namer.ModuleName(), true
	}

	var t reflect.Type
	switch x := v.(type) {
	case nil:
		return "", false
	case reflect.Type:
		t = x
	case *object.Property:
		if x == nil {
			return "", false
		}
		t = x.Owner
	default:
		if object.KindOf(v) == object.KindFunc {
			return "", false
		}
		t = reflect.TypeOf(v)
	}

	if path := object.PkgPathOf(t); path != "" {
		return path, true
	}
	return "", false
}

// sourceFile returns the canonical absolute source file an object was
// compiled from. Only funcs have one; compiler-generated wrappers report a
// non-absolute placeholder and are treated as untraceable.
func sourceFile(v any) (string, bool) {
	info, ok := object.FuncInfoOf(v)
	if !ok || !filepath.IsAbs(info.File) {
		return "", false
	}
	return object.CanonicalPath(info.File), true
}

// ownedBy returns ns when it binds name to v itself.
func ownedBy(ns *object.Module, name string, v any) *object.Module {
	if ns == nil {
		return nil
	}
	if member, ok := ns.Get(name); ok && object.Same(member, v) {
		return ns
	}
	return nil
}
