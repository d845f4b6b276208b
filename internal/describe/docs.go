// SPDX-License-Identifier: MPL-2.0

package describe

import (
	"reflect"
)

type (
	// Docs holds documentation text attached to objects that cannot carry
	// their own, such as funcs and types declared without a Doc method.
	// Text is keyed by object identity. Docs is not safe for concurrent use.
	Docs struct {
		byKey map[docKey]string
	}

	docKey struct {
		typ reflect.Type
		ptr uintptr
	}
)

// NewDocs creates an empty documentation store.
func NewDocs() *Docs {
	return &Docs{byKey: make(map[docKey]string)}
}

// Attach records text as the documentation of v. It reports false when v has
// no identity (plain values) and nothing was recorded.
func (d *Docs) Attach(v any, text string) bool {
	key, ok := keyOf(v)
	if !ok {
		return false
	}
	d.byKey[key] = text
	return true
}

// Lookup returns the text attached to v.
func (d *Docs) Lookup(v any) (string, bool) {
	if d == nil {
		return "", false
	}
	key, ok := keyOf(v)
	if !ok {
		return "", false
	}
	text, ok := d.byKey[key]
	return text, ok
}

// Len returns the number of attached texts.
func (d *Docs) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byKey)
}

func keyOf(v any) (docKey, bool) {
	if v == nil {
		return docKey{}, false
	}
	if t, ok := v.(reflect.Type); ok {
		return docKey{typ: t}, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan:
		if rv.IsNil() {
			return docKey{}, false
		}
		return docKey{typ: rv.Type(), ptr: rv.Pointer()}, true
	default:
		return docKey{}, false
	}
}
