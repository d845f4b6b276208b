// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultPagerWidth  = 80
	defaultPagerHeight = 20
	// chromeLines is the room left for the title and footer.
	chromeLines = 2
)

var (
	pagerTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	pagerFooterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

type (
	// Pager displays a block of text.
	Pager interface {
		Display(text string) error
	}

	// PagerOptions configures the viewport pager.
	PagerOptions struct {
		// Content is the text content to display.
		Content string
		// Title is the title displayed at the top.
		Title string
		// Height limits the visible height (0 for the default).
		Height int
		// Width limits the visible width (0 for the default).
		Width int
	}

	// pagerModel is the bubbletea model of the viewport pager.
	pagerModel struct {
		viewport viewport.Model
		title    string
		done     bool
		width    int
		height   int
	}

	// TerminalPager shows each page in a full-screen scrollable viewport.
	// The first line of a page becomes the viewport title.
	TerminalPager struct {
		input  *os.File
		output io.Writer
		width  int
		height int
		// run executes the bubbletea program; replaced in tests.
		run func(tea.Model, ...tea.ProgramOption) error
	}

	// PlainPager writes pages to a writer unchanged.
	PlainPager struct {
		w io.Writer
	}
)

// NewPagerModel creates the viewport pager model.
func NewPagerModel(opts PagerOptions) *pagerModel {
	height := opts.Height
	if height <= 0 {
		height = defaultPagerHeight
	}
	width := opts.Width
	if width <= 0 {
		width = defaultPagerWidth
	}

	vp := viewport.New(width, max(height-chromeLines, 1))
	vp.SetContent(opts.Content)

	return &pagerModel{
		viewport: vp,
		title:    opts.Title,
		width:    width,
		height:   height,
	}
}

func (m *pagerModel) Init() tea.Cmd {
	return nil
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *pagerModel) View() string {
	if m.done {
		return ""
	}

	title := ""
	if m.title != "" {
		title = pagerTitleStyle.Render(m.title) + "\n"
	}
	footer := pagerFooterStyle.Render(fmt.Sprintf("↑/↓: scroll • %3.f%% • q: close", m.viewport.ScrollPercent()*100))

	return lipgloss.NewStyle().MaxWidth(m.width).Render(title + m.viewport.View() + "\n" + footer)
}

// SetSize resizes the pager and its viewport.
func (m *pagerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeLines, 1)
}

// NewPager returns the pager selected by cfg: the terminal pager for ModeTUI,
// or for ModeAuto when the output is a terminal; the plain pager otherwise.
func NewPager(cfg Config) (Pager, error) {
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}

	switch {
	case mode == ModePlain, mode == ModeAuto && !(isTerminal(cfg.Output) && isTerminal(cfg.Input)):
		return NewPlainPager(cfg.Output), nil
	default:
		return NewTerminalPager(cfg), nil
	}
}

// NewTerminalPager creates a full-screen pager on cfg's streams.
func NewTerminalPager(cfg Config) *TerminalPager {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	return &TerminalPager{
		input:  cfg.Input,
		output: cfg.Output,
		width:  cfg.Width,
		height: cfg.Height,
		run: func(model tea.Model, opts ...tea.ProgramOption) error {
			_, err := tea.NewProgram(model, opts...).Run()
			return err
		},
	}
}

// Display shows text until the user dismisses the pager.
func (p *TerminalPager) Display(text string) error {
	width, height := p.width, p.height
	if tw, th, ok := terminalSize(p.output); ok {
		if width <= 0 {
			width = tw
		}
		if height <= 0 {
			height = th
		}
	}

	title, content, _ := strings.Cut(text, "\n")
	model := NewPagerModel(PagerOptions{
		Content: strings.TrimLeft(content, "\n"),
		Title:   title,
		Width:   width,
		Height:  height,
	})
	if err := p.run(model, tea.WithAltScreen(), tea.WithInput(p.input), tea.WithOutput(p.output)); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}

// NewPlainPager creates a pager writing to w.
func NewPlainPager(w io.Writer) *PlainPager {
	return &PlainPager{w: w}
}

// Display writes text followed by a newline if it lacks one.
func (p *PlainPager) Display(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(p.w, text); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
