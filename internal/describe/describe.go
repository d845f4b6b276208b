// SPDX-License-Identifier: MPL-2.0

package describe

import (
	"reflect"

	"github.com/gpihelp/gpihelp/internal/object"
)

// Describe returns a short description of v that does not depend on how
// deeply it will be rendered: "module gpi", "type Job", "func Submit",
// "method Kill", "property Status", or the type name of a plain value
// ("int", "Job", "[]string").
func Describe(v any) string {
	switch object.KindOf(v) {
	case object.KindModule:
		return "module " + object.NameOf(v)
	case object.KindType:
		return "type " + object.NameOf(v)
	case object.KindProperty:
		return "property " + object.NameOf(v)
	case object.KindFunc:
		if info, ok := object.FuncInfoOf(v); ok && object.IsMethodValue(info.Symbol) {
			return "method " + object.NameOf(v)
		}
		return "func " + object.NameOf(v)
	}
	if v == nil {
		return "nil"
	}
	return object.TypeName(reflect.TypeOf(v))
}
