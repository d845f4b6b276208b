// SPDX-License-Identifier: MPL-2.0

package describe

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/gpihelp/gpihelp/internal/issue"
	"github.com/gpihelp/gpihelp/internal/modres"
	"github.com/gpihelp/gpihelp/internal/object"
)

// DefaultTitle is the title template used when Render is given none.
const DefaultTitle = "Documentation: %s"

type (
	// Pager displays a block of rendered documentation.
	Pager interface {
		Display(text string) error
	}

	// PagerFunc adapts a plain function to the Pager interface.
	PagerFunc func(text string) error

	// RendererOptions configures a Renderer.
	RendererOptions struct {
		// Table is the module table string paths are located in.
		Table *modres.Table
		// Resolver labels the provenance of rendered objects.
		Resolver *modres.Resolver
		// Docs holds attached documentation text. May be nil.
		Docs *Docs
		// Limits bounds inline value representations. Zero fields use the defaults.
		Limits Limits
		// Pager receives the rendered text.
		Pager Pager
		// Logger receives not-found reports. Defaults to slog.Default().
		Logger *slog.Logger
	}

	// Renderer assembles the documentation of an object and hands it to a pager.
	Renderer struct {
		table    *modres.Table
		resolver *modres.Resolver
		text     *TextRenderer
		pager    Pager
		logger   *slog.Logger
	}
)

// Display calls f(text).
func (f PagerFunc) Display(text string) error { return f(text) }

// NewRenderer creates a Renderer. The text renderer is built once with the
// configured limits.
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.Table == nil {
		opts.Table = modres.NewTable()
	}
	if opts.Resolver == nil {
		opts.Resolver = modres.NewResolver(opts.Table, modres.Options{})
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Renderer{
		table:    opts.Table,
		resolver: opts.Resolver,
		text:     NewTextRenderer(opts.Limits, NewExtractor(opts.Docs, opts.Resolver)),
		pager:    opts.Pager,
		logger:   opts.Logger,
	}
}

// Text returns the text renderer.
func (r *Renderer) Text() *TextRenderer {
	return r.text
}

// Render displays the documentation of thing, which is either a live object
// or a dotted path string. title is a format with one %s verb for the
// description. A path that cannot be located is logged and nothing is
// displayed; only pager failures are returned.
func (r *Renderer) Render(thing any, title string) error {
	page, ok := r.Page(thing, title)
	if !ok {
		return nil
	}
	if r.pager == nil {
		return fmt.Errorf("render %s: no pager configured", Describe(thing))
	}
	return r.pager.Display(page)
}

// Page builds the page Render would display. It reports false when thing is
// a path that cannot be located.
func (r *Renderer) Page(thing any, title string) (string, bool) {
	v, name, err := r.resolve(thing)
	if err != nil {
		r.logger.Error("documentation lookup failed", "error", notFoundError(err, name))
		return "", false
	}

	desc := Describe(v)
	module := r.resolver.Resolve(v)
	if prefix, ok := qualifier(name); ok {
		desc += " in " + prefix
	} else if module != nil && !object.Same(module, v) {
		desc += " in module " + module.Name
	}

	if !object.KindOf(v).IsStructural() {
		v = reflect.TypeOf(v)
		desc += " object"
	}

	if title == "" {
		title = DefaultTitle
	}
	return fmt.Sprintf(title, desc) + "\n\n" + r.text.Document(v, name), true
}

func (r *Renderer) resolve(thing any) (any, string, error) {
	if path, ok := thing.(string); ok {
		v, err := Locate(r.table, path)
		return v, path, err
	}
	return thing, object.NameOf(thing), nil
}

// qualifier returns the part of a dotted display name before its last dot.
// Only the last "/" segment is considered, so import paths are not split.
func qualifier(name string) (string, bool) {
	slash := strings.LastIndexByte(name, '/')
	dot := strings.LastIndexByte(name, '.')
	if dot <= slash {
		return "", false
	}
	return name[:dot], true
}

func notFoundError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("locate documentation").
		WithResource(path).
		WithIssue(issue.DocumentationNotFoundId).
		WithSuggestions(
			"Type 'index' to list the documented public names",
			"Use a dotted path such as Job.Kill or a full import path",
		).
		Wrap(err).
		BuildError()
}
