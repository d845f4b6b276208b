// SPDX-License-Identifier: MPL-2.0

package object

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

const (
	// KindData is any value that is not one of the structural kinds below.
	KindData Kind = iota
	// KindModule is a *Module namespace.
	KindModule
	// KindType is a reflect.Type.
	KindType
	// KindFunc is any Go func value, including closures and method values.
	KindFunc
	// KindProperty is a *Property accessor.
	KindProperty
)

// methodValueSuffix is appended by the compiler to the symbol of a bound method value.
const methodValueSuffix = "-fm"

type (
	// Kind is the closed set of shapes the help facility distinguishes.
	Kind int

	// Documented is implemented by values that carry their own documentation text.
	Documented interface {
		Doc() string
	}

	// ModuleNamer is implemented by values that know the name of the module that
	// defined them. It takes precedence over reflection-derived package paths.
	ModuleNamer interface {
		ModuleName() string
	}

	// FuncInfo describes the compiled symbol behind a func value.
	FuncInfo struct {
		// Symbol is the fully qualified symbol, e.g. "example.com/pkg.(*T).Run-fm".
		Symbol string
		// File is the source file the function was compiled from.
		File string
		// Line is the line of the function entry.
		Line int
	}
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindType:
		return "type"
	case KindFunc:
		return "func"
	case KindProperty:
		return "property"
	case KindData:
		return "data"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsStructural reports whether values of this kind are documented directly
// rather than through their type.
func (k Kind) IsStructural() bool {
	return k != KindData
}

// KindOf classifies v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindData
	case *Module:
		return KindModule
	case reflect.Type:
		return KindType
	case *Property:
		return KindProperty
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return KindFunc
	}
	return KindData
}

// NameOf returns the intrinsic name of v, or "" when values of its kind carry
// no name of their own (plain data and instances).
func NameOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *Module:
		if x == nil {
			return ""
		}
		return x.Name
	case reflect.Type:
		if x.Name() != "" {
			return x.Name()
		}
		return x.String()
	case *Property:
		if x == nil {
			return ""
		}
		return x.Name
	}
	if info, ok := FuncInfoOf(v); ok {
		return ShortFuncName(info.Symbol)
	}
	return ""
}

// TypeName returns a short display name for t: the name of the named type,
// looking through one level of pointer, or the type literal otherwise.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Pointer && t.Elem().Name() != "" {
		return t.Elem().Name()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// PkgPathOf returns the import path of the package that declared t, looking
// through one level of pointer. Predeclared and unnamed types return "".
func PkgPathOf(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	return t.PkgPath()
}

// FuncInfoOf returns the compiled symbol information of a non-nil func value.
func FuncInfoOf(v any) (FuncInfo, bool) {
	if v == nil {
		return FuncInfo{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return FuncInfo{}, false
	}
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return FuncInfo{}, false
	}
	file, line := fn.FileLine(fn.Entry())
	return FuncInfo{Symbol: fn.Name(), File: file, Line: line}, true
}

// ShortFuncName strips the package path and receiver from a compiled symbol:
// "example.com/pkg.(*Job).Kill-fm" becomes "Kill".
func ShortFuncName(symbol string) string {
	name := strings.TrimSuffix(symbol, methodValueSuffix)
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// FuncPkgPath returns the import path of the package a compiled symbol
// belongs to: "example.com/pkg.(*Job).Kill-fm" gives "example.com/pkg".
// It returns "" when the symbol carries no package qualifier.
func FuncPkgPath(symbol string) string {
	// Type arguments of generic instantiations may contain slashes.
	if i := strings.IndexByte(symbol, '['); i >= 0 {
		symbol = symbol[:i]
	}
	slash := strings.LastIndexByte(symbol, '/')
	dot := strings.IndexByte(symbol[slash+1:], '.')
	if dot < 0 {
		return ""
	}
	return strings.ReplaceAll(symbol[:slash+1+dot], "%2e", ".")
}

// IsMethodValue reports whether the symbol belongs to a bound method value.
func IsMethodValue(symbol string) bool {
	return strings.HasSuffix(symbol, methodValueSuffix)
}

// Same reports whether a and b are the same object by identity. Types compare
// by type identity; funcs by code pointer; pointers, maps and channels by
// address. Plain values have no identity and never compare as the same.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	if ta, ok := a.(reflect.Type); ok {
		tb, ok := b.(reflect.Type)
		return ok && ta == tb
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if va.IsNil() || vb.IsNil() {
			return false
		}
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}
