// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DocumentationNotFoundId Id = iota + 1
	ConfigLoadFailedId
	InvalidConfigId
	PagerFailedId
	InvalidIndexSectionId
	InvalidPagerModeId
)

type MarkdownMsg string

type HttpLink string

// Issue is a long-form, Markdown troubleshooting guide for one failure class.
type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the guide through glamour with the given style ("auto",
// "dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range append(slices.Clone(i.docLinks), i.extLinks...) {
			sb.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	documentationNotFoundIssue = &Issue{
		id: DocumentationNotFoundId,
		mdMsg: `
# No documentation found!

The name you asked about does not resolve to anything in the GPI.

## Things you can try:
- List every documented public name:
~~~
help> index
~~~

- Ask with the exact spelling shown in the index, using dots for members:
~~~
help> Job.Kill
~~~

- Use a full import path for members of other packages:
~~~
$ gpihelp github.com/gpihelp/gpihelp/internal/gpi.Submit
~~~`,
		docLinks: []HttpLink{"https://go.dev/doc/comment"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Print the configuration that is currently in effect:
~~~
$ gpihelp config show
~~~

- Write a fresh default file and edit it:
~~~
$ gpihelp config init
~~~

- Point at a different file explicitly:
~~~
$ gpihelp --config ./config.cue index
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	invalidConfigIssue = &Issue{
		id: InvalidConfigId,
		mdMsg: `
# Invalid configuration!

The file parsed correctly but some values are out of range.

## Rules:
- ` + "`render.title`" + ` must contain exactly one ` + "`%s`" + `
- ` + "`render.max_inline_string`" + ` and ` + "`render.max_other_value`" + ` must be at least 1
- ` + "`index.title`" + ` must not be blank and ` + "`index.width`" + ` must not be negative
- ` + "`pager`" + ` is one of "auto", "tui" or "plain"`,
		docLinks: []HttpLink{"https://pkg.go.dev/fmt"},
	}

	pagerFailedIssue = &Issue{
		id: PagerFailedId,
		mdMsg: `
# The pager failed!

The documentation page was produced but could not be displayed.

## Things you can try:
- Fall back to plain output:
~~~
$ gpihelp --pager plain Job
~~~

- Check that your terminal supports the alternate screen`,
		extLinks: []HttpLink{"https://github.com/charmbracelet/bubbletea"},
	}

	invalidIndexSectionIssue = &Issue{
		id: InvalidIndexSectionId,
		mdMsg: `
# Unknown index section!

The index has four sections: **Classes**, **Exceptions**, **Functions** and **Objects**.

## Things you can try:
~~~
$ gpihelp index --section functions
~~~`,
	}

	invalidPagerModeIssue = &Issue{
		id: InvalidPagerModeId,
		mdMsg: `
# Invalid pager mode!

The pager mode must be one of:
- **auto**: full-screen pager on a terminal, plain output otherwise
- **tui**: always use the full-screen pager
- **plain**: write pages directly to standard output`,
	}

	issues = map[Id]*Issue{
		documentationNotFoundIssue.Id(): documentationNotFoundIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		invalidConfigIssue.Id():         invalidConfigIssue,
		pagerFailedIssue.Id():           pagerFailedIssue,
		invalidIndexSectionIssue.Id():   invalidIndexSectionIssue,
		invalidPagerModeIssue.Id():      invalidPagerModeIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
