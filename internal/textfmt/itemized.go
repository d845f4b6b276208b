// SPDX-License-Identifier: MPL-2.0

// Package textfmt lays out itemized plain-text paragraphs.
package textfmt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// DefaultWidth is the wrap width used when none is configured.
	DefaultWidth = 80

	itemIndent    = 2
	itemSeparator = " - "
	// minTextWidth keeps very long names from squeezing the text column to nothing.
	minTextWidth = 20
)

type (
	// Item is one line of an itemized paragraph.
	Item struct {
		Name string
		Text string
	}

	// Itemized formats a heading followed by aligned "name - text" lines.
	// Text longer than the available width wraps under its own column.
	Itemized struct {
		// Width is the total line width; zero or less disables wrapping.
		Width int
	}
)

// NewItemized creates a formatter wrapping at width.
func NewItemized(width int) *Itemized {
	return &Itemized{Width: width}
}

// FormatParagraph renders heading and items. The result has no trailing
// newline. Items without text render as the bare name.
func (f *Itemized) FormatParagraph(heading string, items []Item) string {
	var b strings.Builder
	b.WriteString(heading)

	nameWidth := 0
	for _, it := range items {
		nameWidth = max(nameWidth, lipgloss.Width(it.Name))
	}
	textColumn := itemIndent + nameWidth + len(itemSeparator)

	for _, it := range items {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", itemIndent))
		text := strings.TrimSpace(it.Text)
		if text == "" {
			b.WriteString(it.Name)
			continue
		}
		b.WriteString(padding.String(it.Name, uint(nameWidth)))
		b.WriteString(itemSeparator)
		b.WriteString(f.wrap(text, textColumn))
	}
	return b.String()
}

// wrap wraps text to the space right of column. Continuation lines are
// indented to column.
func (f *Itemized) wrap(text string, column int) string {
	if f.Width <= 0 {
		return text
	}
	wrapped := wordwrap.String(text, max(f.Width-column, minTextWidth))
	first, rest, ok := strings.Cut(wrapped, "\n")
	if !ok {
		return first
	}
	return first + "\n" + indent.String(rest, uint(column))
}
