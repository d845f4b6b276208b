// SPDX-License-Identifier: MPL-2.0

package docreg

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/gpihelp/gpihelp/internal/textfmt"
)

// DefaultTitle is the first line of the rendered index.
const DefaultTitle = "GPI Index"

const (
	// Classes lists public types.
	Classes Section = iota
	// Exceptions lists public error types.
	Exceptions
	// Functions lists public funcs.
	Functions
	// Objects lists public values. Only entries in this section may carry an
	// override summary.
	Objects
)

var sectionNames = [...]string{
	Classes:    "Classes",
	Exceptions: "Exceptions",
	Functions:  "Functions",
	Objects:    "Objects",
}

type (
	// Section is an index section. Sections render in declaration order.
	Section int

	// Entry is one indexed public name.
	Entry struct {
		// Name is the public name shown in the index.
		Name string
		// Object is the live object the name refers to.
		Object any
		// Override replaces the summary derived from the object's documentation.
		Override string
	}

	// Formatter lays out one index paragraph.
	Formatter interface {
		FormatParagraph(heading string, items []textfmt.Item) string
	}

	// Summarizer derives the one-line summary of an object.
	Summarizer interface {
		Summary(v any) string
	}

	// Options configures a Registry.
	Options struct {
		// Title is the index title. Defaults to DefaultTitle.
		Title string
		// Formatter lays out paragraphs. Defaults to an 80 column textfmt.Itemized.
		Formatter Formatter
		// Summarizer derives summaries of entries without an override.
		Summarizer Summarizer
	}

	// Registry is the catalog of documented public names, grouped by section
	// and kept in registration order. Entries are never removed.
	// A Registry is not safe for concurrent use.
	Registry struct {
		title      string
		formatter  Formatter
		summarizer Summarizer
		entries    [len(sectionNames)][]Entry
	}
)

// Sections returns all sections in display order.
func Sections() []Section {
	return []Section{Classes, Exceptions, Functions, Objects}
}

// ParseSection returns the section with the given name, ignoring case.
func ParseSection(name string) (Section, error) {
	for _, s := range Sections() {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown index section %q (expected one of %s)", name, strings.Join(sectionNames[:], ", "))
}

// String returns the section heading name.
func (s Section) String() string {
	if !s.valid() {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionNames[s]
}

func (s Section) valid() bool {
	return s >= 0 && int(s) < len(sectionNames)
}

// New creates an empty registry.
func New(opts Options) *Registry {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Formatter == nil {
		opts.Formatter = textfmt.NewItemized(textfmt.DefaultWidth)
	}
	return &Registry{
		title:      opts.Title,
		formatter:  opts.Formatter,
		summarizer: opts.Summarizer,
	}
}

// Register adds a public name to section. A non-empty override replaces the
// summary derived from the object's documentation and is only allowed in the
// Objects section. Register panics on an unknown section or a misplaced
// override: both are programming errors at registration sites.
func (r *Registry) Register(name string, obj any, section Section, override string) {
	if !section.valid() {
		panic(fmt.Sprintf("docreg: register %q: unknown section %s", name, section))
	}
	if override != "" && section != Objects {
		panic(fmt.Sprintf("docreg: register %q: summary override is only allowed in %s, not %s", name, Objects, section))
	}
	r.entries[section] = append(r.entries[section], Entry{Name: name, Object: obj, Override: override})
}

// Entries returns a copy of the entries of section in registration order.
func (r *Registry) Entries(section Section) []Entry {
	if !section.valid() {
		return nil
	}
	return slices.Clone(r.entries[section])
}

// Len returns the total number of entries.
func (r *Registry) Len() int {
	n := 0
	for _, entries := range r.entries {
		n += len(entries)
	}
	return n
}

// RenderIndex renders the index: the title followed by one paragraph per
// section, each headed "<Section>:", separated by blank lines.
func (r *Registry) RenderIndex() string {
	var b strings.Builder
	b.WriteString(r.title)
	b.WriteString("\n\n")
	for i, s := range Sections() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(r.RenderSection(s))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSection renders the paragraph of a single section.
func (r *Registry) RenderSection(section Section) string {
	entries := r.Entries(section)
	items := make([]textfmt.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, textfmt.Item{Name: e.Name, Text: r.summary(e)})
	}
	return r.formatter.FormatParagraph(section.String()+":", items)
}

func (r *Registry) summary(e Entry) string {
	if e.Override != "" {
		summary, _, _ := strings.Cut(strings.TrimSpace(e.Override), "\n")
		return strings.TrimSpace(summary)
	}
	if r.summarizer == nil {
		return ""
	}
	return r.summarizer.Summary(e.Object)
}
