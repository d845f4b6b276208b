// SPDX-License-Identifier: MPL-2.0

package object

import (
	"reflect"
	"strings"
)

// Attr returns the attribute called name of v:
//   - a module member;
//   - a method (as a method expression) or exported struct field (as a
//     Property) of a type;
//   - a method (through the value's type), exported field value or string-keyed
//     map entry of any other value.
//
// Interface methods have no func value and are not attributes.
func Attr(v any, name string) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *Module:
		if x == nil {
			return nil, false
		}
		return x.Get(name)
	case reflect.Type:
		return typeAttr(x, name)
	case *Property:
		if x == nil || x.Type == nil {
			return nil, false
		}
		return typeAttr(x.Type, name)
	}
	return valueAttr(reflect.ValueOf(v), name)
}

// Walk follows a dotted path of attribute names starting at root.
func Walk(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	cur := root
	for _, name := range strings.Split(path, ".") {
		next, ok := Attr(cur, name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func typeAttr(t reflect.Type, name string) (any, bool) {
	if t.Kind() == reflect.Interface {
		return nil, false
	}
	if m, ok := t.MethodByName(name); ok {
		return m.Func.Interface(), true
	}
	if t.Kind() != reflect.Pointer {
		if m, ok := reflect.PointerTo(t).MethodByName(name); ok {
			return m.Func.Interface(), true
		}
	}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		if f, ok := st.FieldByName(name); ok && f.IsExported() {
			return NewFieldProperty(st, f), true
		}
	}
	return nil, false
}

func valueAttr(v reflect.Value, name string) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}
	if attr, ok := typeAttr(v.Type(), name); ok {
		if _, isProp := attr.(*Property); !isProp {
			return attr, true
		}
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		f, ok := v.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, false
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			return nil, false
		}
		return fv.Interface(), true
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		item := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !item.IsValid() {
			return nil, false
		}
		return item.Interface(), true
	default:
		return nil, false
	}
}
