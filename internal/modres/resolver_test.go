// SPDX-License-Identifier: MPL-2.0

package modres

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/gpihelp/gpihelp/internal/object"
)

type (
	probeJob struct {
		ID int
	}

	namedElsewhere struct{}
)

func (namedElsewhere) ModuleName() string { return "elsewhere" }

func (j *probeJob) Reset() { j.ID = 0 }

func resolverProbe() {}

func otherProbe() {}

// thisFile returns the path of this test file.
func thisFile(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return file
}

func pkgPath() string {
	return reflect.TypeOf(probeJob{}).PkgPath()
}

func TestResolve_ModuleIsItsOwnModule(t *testing.T) {
	t.Parallel()

	m := object.NewModule("ns", "")
	r := NewResolver(NewTable(), Options{})
	if got := r.Resolve(m); got != m {
		t.Errorf("Resolve(module) = %v, want the module itself", got)
	}
}

func TestResolve_DefiningModuleName(t *testing.T) {
	t.Parallel()

	table := NewTable()
	pkg := object.NewModule(pkgPath(), "probe package")
	elsewhere := object.NewModule("elsewhere", "")
	table.Add(pkg)
	table.Add(elsewhere)
	r := NewResolver(table, Options{})

	tests := []struct {
		name string
		v    any
		want *object.Module
	}{
		{"type", reflect.TypeOf(probeJob{}), pkg},
		{"pointer type", reflect.TypeOf(&probeJob{}), pkg},
		{"instance", probeJob{ID: 1}, pkg},
		{"instance pointer", &probeJob{ID: 2}, pkg},
		{"property", &object.Property{Name: "ID", Owner: reflect.TypeOf(probeJob{})}, pkg},
		{"module namer", namedElsewhere{}, elsewhere},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.Resolve(tt.v); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_DefiningModuleNotLoaded(t *testing.T) {
	t.Parallel()

	r := NewResolver(NewTable(), Options{})
	if got := r.Resolve(&probeJob{}); got != nil {
		t.Errorf("Resolve() = %v, want nil for an unregistered package", got)
	}
	if r.CacheSize() != 0 {
		t.Error("named types must not touch the file cache")
	}
}

func TestResolve_UntraceableObjectsResolveToNothing(t *testing.T) {
	t.Parallel()

	entry := object.NewModule("gpi", "")
	entry.Set("answer", 42)
	r := NewResolver(NewTable(), Options{Entry: entry})

	for _, v := range []any{42, "text", []int{1, 2}, nil, map[string]int{}} {
		if got := r.Resolve(v); got != nil {
			t.Errorf("Resolve(%#v) = %v, want nil", v, got)
		}
	}
}

func TestResolve_FuncBySourceFile(t *testing.T) {
	t.Parallel()

	table := NewTable()
	pkg := &object.Module{Name: "probe", Files: []string{thisFile(t)}}
	table.Add(pkg)
	r := NewResolver(table, Options{})

	if got := r.Resolve(resolverProbe); got != pkg {
		t.Fatalf("Resolve(func) = %v, want %v", got, pkg)
	}
	if r.CacheSize() == 0 {
		t.Error("expected the cache to be populated after a miss")
	}

	// Idempotent once the cache is stable.
	size := r.CacheSize()
	for range 3 {
		if got := r.Resolve(resolverProbe); got != pkg {
			t.Fatalf("repeated Resolve() = %v, want %v", got, pkg)
		}
	}
	if r.CacheSize() != size {
		t.Errorf("cache grew from %d to %d on hits", size, r.CacheSize())
	}
}

func TestResolve_LateModulesArePickedUp(t *testing.T) {
	t.Parallel()

	table := NewTable()
	r := NewResolver(table, Options{})

	if got := r.Resolve(resolverProbe); got != nil {
		t.Fatalf("Resolve() before registration = %v, want nil", got)
	}

	pkg := &object.Module{Name: "late", Files: []string{thisFile(t)}}
	table.Add(pkg)
	if got := r.Resolve(resolverProbe); got != pkg {
		t.Errorf("Resolve() after registration = %v, want %v", got, pkg)
	}
}

func TestResolve_NamespaceFallbacks(t *testing.T) {
	t.Parallel()

	entry := object.NewModule("gpi", "public interface")
	entry.Set("resolverProbe", resolverProbe)
	builtin := object.NewModule("builtin", "")
	builtin.Set("otherProbe", otherProbe)

	r := NewResolver(NewTable(), Options{Entry: entry, Builtin: builtin})

	if got := r.Resolve(resolverProbe); got != entry {
		t.Errorf("Resolve(resolverProbe) = %v, want entry namespace", got)
	}
	if got := r.Resolve(otherProbe); got != builtin {
		t.Errorf("Resolve(otherProbe) = %v, want builtin namespace", got)
	}
}

func TestResolve_NamespaceRequiresIdentity(t *testing.T) {
	t.Parallel()

	entry := object.NewModule("gpi", "")
	// Bound under the right name but to a different object.
	entry.Set("resolverProbe", otherProbe)
	// Bound to the right object but under another name.
	entry.Set("alias", otherProbe)

	r := NewResolver(NewTable(), Options{Entry: entry})
	if got := r.Resolve(resolverProbe); got != nil {
		t.Errorf("Resolve(resolverProbe) = %v, want nil", got)
	}
	if got := r.Resolve(otherProbe); got != nil {
		t.Errorf("Resolve(otherProbe) = %v, want nil", got)
	}
}

func TestResolve_MethodValueByPackage(t *testing.T) {
	t.Parallel()

	table := NewTable()
	pkg := object.NewModule(pkgPath(), "probe package")
	table.Add(pkg)

	job := &probeJob{ID: 3}
	reset := job.Reset
	entry := object.NewModule("gpi", "")
	entry.Set("Reset", reset)
	r := NewResolver(table, Options{Entry: entry})

	if got := r.Resolve(reset); got != pkg {
		t.Errorf("Resolve(method value) = %v, want %v", got, pkg)
	}
	if got := r.Resolve(resolverProbe); got != pkg {
		t.Errorf("Resolve(func) = %v, want %v", got, pkg)
	}
	if r.CacheSize() != 0 {
		t.Error("package-placed funcs must not touch the file cache")
	}
}

func TestResolve_UntraceableFuncIgnoresNamespaces(t *testing.T) {
	t.Parallel()

	job := &probeJob{}
	reset := job.Reset
	entry := object.NewModule("gpi", "")
	entry.Set("Reset", reset)
	builtin := object.NewModule("builtin", "")
	builtin.Set("Reset", reset)

	// The method value wrapper has no absolute source file and its package is
	// not in the table, so resolution stops before the namespace fallbacks.
	table := NewTable()
	table.Add(&object.Module{Name: "probe", Files: []string{thisFile(t)}})
	r := NewResolver(table, Options{Entry: entry, Builtin: builtin})
	if got := r.Resolve(reset); got != nil {
		t.Errorf("Resolve(method value) = %v, want nil", got)
	}
	if r.CacheSize() != 0 {
		t.Error("an untraceable func must not trigger a cache rebuild")
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := NewTable()
	a := object.NewModule("a", "")
	b := object.NewModule("b", "")
	a2 := object.NewModule("a", "replacement")
	table.Add(a)
	table.Add(b)
	table.Add(a2)
	table.Add(nil)

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	mods := table.Modules()
	if mods[0] != a2 || mods[1] != b {
		t.Errorf("Modules() = %v, want [a2 b] in registration order", mods)
	}
	if table.Get("a") != a2 {
		t.Error("Get should return the replacement module")
	}
	if table.Get("zzz") != nil {
		t.Error("Get of an unknown module should be nil")
	}
}
