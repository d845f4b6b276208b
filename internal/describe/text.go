// SPDX-License-Identifier: MPL-2.0

package describe

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"

	"github.com/gpihelp/gpihelp/internal/object"
)

const (
	// DefaultMaxInlineString is the default cutoff for quoted string values.
	DefaultMaxInlineString = 255
	// DefaultMaxOtherValue is the default cutoff for any other inline value.
	DefaultMaxOtherValue = 70

	ellipsis   = "..."
	bodyIndent = "    "
	typeIndent = " |  "
)

type (
	// Limits bounds inline value representations in rendered documentation.
	// Rendered lines themselves are never truncated.
	Limits struct {
		// MaxInlineString is the maximum length of a string value, before quoting.
		MaxInlineString int
		// MaxOtherValue is the maximum length of any other value representation.
		MaxOtherValue int
	}

	// TextRenderer renders plain-text documentation for modules, types,
	// funcs, properties and data.
	TextRenderer struct {
		limits    Limits
		extractor *Extractor
	}
)

// DefaultLimits returns the widened limits used for interactive inspection.
func DefaultLimits() Limits {
	return Limits{
		MaxInlineString: DefaultMaxInlineString,
		MaxOtherValue:   DefaultMaxOtherValue,
	}
}

// NewTextRenderer creates a renderer. Non-positive limits fall back to the
// defaults.
func NewTextRenderer(limits Limits, extractor *Extractor) *TextRenderer {
	defaults := DefaultLimits()
	if limits.MaxInlineString <= 0 {
		limits.MaxInlineString = defaults.MaxInlineString
	}
	if limits.MaxOtherValue <= 0 {
		limits.MaxOtherValue = defaults.MaxOtherValue
	}
	if extractor == nil {
		extractor = NewExtractor(nil, nil)
	}
	return &TextRenderer{limits: limits, extractor: extractor}
}

// Limits returns the effective limits.
func (r *TextRenderer) Limits() Limits {
	return r.limits
}

// Document renders the full documentation of v under the display name name.
// An empty name falls back to the object's own name.
func (r *TextRenderer) Document(v any, name string) string {
	switch object.KindOf(v) {
	case object.KindModule:
		return r.docModule(v.(*object.Module), name)
	case object.KindType:
		return r.docType(v.(reflect.Type), name)
	case object.KindFunc:
		return r.docFunc(v, name)
	case object.KindProperty:
		return r.docProperty(v.(*object.Property), name)
	default:
		return r.docData(v, name)
	}
}

// Repr returns the inline representation of v within the renderer limits.
func (r *TextRenderer) Repr(v any) string {
	if object.KindOf(v).IsStructural() {
		return "<" + Describe(v) + ">"
	}
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(cram(x, r.limits.MaxInlineString))
	case error:
		return cram(x.Error(), r.limits.MaxOtherValue)
	case fmt.Stringer:
		return cram(safeString(x), r.limits.MaxOtherValue)
	}
	return cram(fmt.Sprintf("%v", v), r.limits.MaxOtherValue)
}

func (r *TextRenderer) docModule(m *object.Module, name string) string {
	if name == "" {
		name = m.Name
	}
	summary, body := SplitDoc(r.extractor.Doc(m))

	var b strings.Builder
	head := name
	if summary != "" {
		head += " - " + summary
	}
	section(&b, "NAME", head)
	if body != "" {
		section(&b, "DESCRIPTION", body)
	}

	var modules, types, funcs, data []string
	for _, member := range m.Members() {
		switch object.KindOf(member.Value) {
		case object.KindModule:
			modules = append(modules, member.Name)
		case object.KindType:
			types = append(types, r.docType(member.Value.(reflect.Type), member.Name))
		case object.KindFunc:
			funcs = append(funcs, r.docFunc(member.Value, member.Name))
		case object.KindProperty:
			data = append(data, r.docProperty(member.Value.(*object.Property), member.Name))
		default:
			data = append(data, r.docData(member.Value, member.Name))
		}
	}
	if len(modules) > 0 {
		section(&b, "MODULES", strings.Join(modules, "\n"))
	}
	if len(types) > 0 {
		section(&b, "TYPES", strings.Join(types, "\n"))
	}
	if len(funcs) > 0 {
		section(&b, "FUNCTIONS", strings.Join(funcs, "\n"))
	}
	if len(data) > 0 {
		section(&b, "DATA", strings.Join(data, "\n"))
	}
	if files := m.SourceFiles(); len(files) > 0 {
		section(&b, "FILES", strings.Join(files, "\n"))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (r *TextRenderer) docType(t reflect.Type, name string) string {
	realname := object.TypeName(t)
	title := "type " + realname + " " + kindWord(t)
	if name != "" && name != realname {
		title = name + " = " + title
	}

	var parts []string
	if doc := r.extractor.Doc(t); doc != "" {
		parts = append(parts, doc)
	}

	base := t
	if base.Kind() == reflect.Pointer && base.Name() == "" {
		base = base.Elem()
	}
	if base.Kind() == reflect.Struct {
		var fields []string
		for i := range base.NumField() {
			f := base.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, r.docProperty(object.NewFieldProperty(base, f), ""))
		}
		if len(fields) > 0 {
			parts = append(parts, "Fields defined here:\n\n"+joinBlocks(fields))
		}
	}
	if methods := r.methods(base); len(methods) > 0 {
		parts = append(parts, "Methods defined here:\n\n"+joinBlocks(methods))
	}

	if len(parts) == 0 {
		return title + "\n"
	}
	return title + "\n" + prefixLines(strings.Join(parts, "\n\n"), typeIndent) + "\n"
}

// methods renders the method set of t. Interface types list their method
// signatures; concrete types list the methods of *t, which include those of t.
func (r *TextRenderer) methods(t reflect.Type) []string {
	var out []string
	if t.Kind() == reflect.Interface {
		for i := range t.NumMethod() {
			m := t.Method(i)
			out = append(out, m.Name+signature(m.Type, 0)+"\n")
		}
		return out
	}
	pt := t
	if t.Kind() != reflect.Pointer {
		pt = reflect.PointerTo(t)
	}
	for i := range pt.NumMethod() {
		m := pt.Method(i)
		entry := m.Name + signature(m.Type, 1)
		if doc := r.extractor.MethodDoc(t, m.Name); doc != "" {
			entry += "\n" + prefixLines(doc, bodyIndent)
		}
		out = append(out, entry+"\n")
	}
	return out
}

func (r *TextRenderer) docFunc(v any, name string) string {
	realname := object.NameOf(v)
	title := realname + signature(reflect.TypeOf(v), 0)
	if name != "" && name != realname {
		title = name + " = " + title
	}
	if doc := r.extractor.Doc(v); doc != "" {
		return title + "\n" + prefixLines(doc, bodyIndent) + "\n"
	}
	return title + "\n"
}

func (r *TextRenderer) docProperty(p *object.Property, name string) string {
	if name == "" {
		name = p.Name
	}
	title := name
	if p.Type != nil {
		title += " " + p.Type.String()
	}
	if doc := CleanDoc(p.Doc); doc != "" {
		return title + "\n" + prefixLines(doc, bodyIndent) + "\n"
	}
	return title + "\n"
}

func (r *TextRenderer) docData(v any, name string) string {
	line := r.Repr(v)
	if name != "" {
		line = name + " = " + line
	}
	return line + "\n"
}

// signature formats the parameter and result types of a func type, skipping
// the first skip parameters (method receivers).
func signature(t reflect.Type, skip int) string {
	if t == nil || t.Kind() != reflect.Func {
		return ""
	}
	var params []string
	for i := skip; i < t.NumIn(); i++ {
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			params = append(params, "..."+in.Elem().String())
			continue
		}
		params = append(params, in.String())
	}
	sig := "(" + strings.Join(params, ", ") + ")"

	switch t.NumOut() {
	case 0:
		return sig
	case 1:
		return sig + " " + t.Out(0).String()
	default:
		outs := make([]string, t.NumOut())
		for i := range t.NumOut() {
			outs[i] = t.Out(i).String()
		}
		return sig + " (" + strings.Join(outs, ", ") + ")"
	}
}

// joinBlocks joins newline-terminated blocks with one blank line between them.
func joinBlocks(blocks []string) string {
	return strings.TrimRight(strings.Join(blocks, "\n"), "\n")
}

func kindWord(t reflect.Type) string {
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + t.Elem().Kind().String()
	}
	return t.Kind().String()
}

func section(b *strings.Builder, title, contents string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(prefixLines(strings.TrimRight(contents, "\n"), bodyIndent))
	b.WriteString("\n\n")
}

// prefixLines prefixes every line of text, blank lines included. Nothing is
// added after a trailing newline.
func prefixLines(text, prefix string) string {
	w := indent.NewWriter(1, func(out io.Writer) {
		_, _ = io.WriteString(out, prefix)
	})
	_, _ = w.Write([]byte(text))
	return w.String()
}

// cram shortens text to at most maxlen runes by replacing its middle with an
// ellipsis.
func cram(text string, maxlen int) string {
	runes := []rune(text)
	if len(runes) <= maxlen {
		return text
	}
	pre := max(0, (maxlen-len(ellipsis))/2)
	post := max(0, maxlen-len(ellipsis)-pre)
	return string(runes[:pre]) + ellipsis + string(runes[len(runes)-post:])
}

func safeString(s fmt.Stringer) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("<%T>", s)
		}
	}()
	return s.String()
}
