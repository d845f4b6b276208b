// SPDX-License-Identifier: MPL-2.0

package describe

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/gpihelp/gpihelp/internal/modres"
	"github.com/gpihelp/gpihelp/internal/object"
)

var documentedType = reflect.TypeFor[object.Documented]()

// Extractor finds the documentation text of objects. Text is looked up in
// order from the object itself (a Doc method, a module or property doc), from
// text attached in Docs, and finally from Go doc comments in the source files
// of the object's module. Plain values without documentation of their own are
// documented by their type.
type Extractor struct {
	docs     *Docs
	resolver *modres.Resolver
	source   *sourceDocs
}

// NewExtractor creates an extractor. docs and resolver may be nil; without a
// resolver, type doc comments cannot be located in source.
func NewExtractor(docs *Docs, resolver *modres.Resolver) *Extractor {
	return &Extractor{
		docs:     docs,
		resolver: resolver,
		source:   newSourceDocs(),
	}
}

// Doc returns the cleaned documentation text of v, or "".
func (x *Extractor) Doc(v any) string {
	return CleanDoc(x.rawDoc(v))
}

// Summary returns the first line of the documentation text of v.
func (x *Extractor) Summary(v any) string {
	summary, _ := SplitDoc(x.Doc(v))
	return summary
}

// MethodDoc returns the documentation of method name declared on t.
func (x *Extractor) MethodDoc(t reflect.Type, name string) string {
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if m, ok := reflect.PointerTo(base).MethodByName(name); ok {
		if text, ok := x.docs.Lookup(m.Func.Interface()); ok {
			return CleanDoc(text)
		}
	}
	mod := x.moduleOf(base)
	if mod == nil || base.Name() == "" {
		return ""
	}
	return CleanDoc(x.source.methodDoc(mod.SourceFiles(), base.Name(), name))
}

func (x *Extractor) rawDoc(v any) string {
	switch o := v.(type) {
	case nil:
		return ""
	case *object.Module:
		if o != nil && o.Doc != "" {
			return o.Doc
		}
	case *object.Property:
		if o != nil && o.Doc != "" {
			return o.Doc
		}
	case reflect.Type:
		if text, ok := callDocMethod(o); ok && text != "" {
			return text
		}
	case object.Documented:
		if text := safeDoc(o); text != "" {
			return text
		}
	}

	if text, ok := x.docs.Lookup(v); ok {
		return text
	}

	switch object.KindOf(v) {
	case object.KindFunc:
		return x.funcSourceDoc(v)
	case object.KindType:
		return x.typeSourceDoc(v.(reflect.Type))
	case object.KindData:
		t := reflect.TypeOf(v)
		if t.Kind() == reflect.Pointer && t.Name() == "" && t.Elem().Name() != "" {
			t = t.Elem()
		}
		return x.rawDoc(t)
	default:
		return ""
	}
}

func (x *Extractor) funcSourceDoc(v any) string {
	info, ok := object.FuncInfoOf(v)
	if !ok {
		return ""
	}
	recv, name := splitSymbol(info.Symbol)
	return x.source.funcDoc(info.File, recv, name)
}

func (x *Extractor) typeSourceDoc(t reflect.Type) string {
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if t.Name() == "" {
		return ""
	}
	mod := x.moduleOf(t)
	if mod == nil {
		return ""
	}
	return x.source.typeDoc(mod.SourceFiles(), t.Name())
}

func (x *Extractor) moduleOf(t reflect.Type) *object.Module {
	if x.resolver == nil {
		return nil
	}
	return x.resolver.Resolve(t)
}

// callDocMethod calls the Doc method of t on a zero value, if t or *t has one.
func callDocMethod(t reflect.Type) (string, bool) {
	var recv reflect.Value
	switch {
	case t.Kind() == reflect.Interface:
		return "", false
	case t.Kind() == reflect.Pointer && t.Implements(documentedType):
		recv = reflect.New(t.Elem())
	case t.Implements(documentedType):
		recv = reflect.New(t).Elem()
	case reflect.PointerTo(t).Implements(documentedType):
		recv = reflect.New(t)
	default:
		return "", false
	}
	doc, ok := recv.Interface().(object.Documented)
	if !ok {
		return "", false
	}
	return safeDoc(doc), true
}

// safeDoc calls d.Doc, treating a panic as missing documentation.
func safeDoc(d object.Documented) (text string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("Doc method panicked", "type", reflect.TypeOf(d), "panic", r)
			text = ""
		}
	}()
	return d.Doc()
}

// CleanDoc normalizes documentation text: tabs become spaces, leading and
// trailing blank lines are removed, and the indentation common to all lines
// after the first is stripped.
func CleanDoc(doc string) string {
	if doc == "" {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(doc, "\t", "    "), "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " ")
		if content == "" {
			continue
		}
		if indent := len(line) - len(content); margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// SplitDoc splits documentation text into its first line and the remaining
// body, with blank lines between them dropped.
func SplitDoc(doc string) (summary, body string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "", ""
	}
	summary, body, _ = strings.Cut(doc, "\n")
	return strings.TrimSpace(summary), strings.TrimLeft(body, "\n")
}
