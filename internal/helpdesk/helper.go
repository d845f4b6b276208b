// SPDX-License-Identifier: MPL-2.0

package helpdesk

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/gpihelp/gpihelp/internal/describe"
	"github.com/gpihelp/gpihelp/internal/docreg"
	"github.com/gpihelp/gpihelp/internal/object"
)

// Reserved request tokens.
const (
	TokenIndex       = "index"
	TokenStandard    = "go"
	TokenInteractive = "interactive"
	TokenQuit        = "quit"
)

// Prompt is written before every line read by Interact.
const Prompt = "help> "

const (
	bannerRule        = "************************************"
	interactiveBanner = "\nThis is an interactive help. At the prompt type your questions in plain english\n\n"
)

const standardScreen = `# Welcome to gpihelp

Enter the name of any public type, function or object to see its
documentation. Use dots to reach members, as in ` + "`Job.Kill`" + ` or
` + "`Jobs.Get`" + `, and full import paths for other packages.

- ` + "`index`" + ` lists every documented public name
- ` + "`quit`" + ` (or ` + "`q`" + `) leaves help

Values are documented through their type: asking about a job shows what a
job can do, not its current state.
`

type (
	// Options configures a Helper.
	Options struct {
		// Registry provides the index.
		Registry *docreg.Registry
		// Renderer documents objects and dotted paths.
		Renderer *describe.Renderer
		// Entry is the public namespace requests are evaluated against.
		Entry *object.Module
		// Builtin is consulted when a name is not in Entry (optional).
		Builtin *object.Module
		// Output receives the intro, the index and banners. Defaults to os.Stdout.
		Output io.Writer
		// Logger defaults to slog.Default().
		Logger *slog.Logger
		// Hello is the program greeting shown in the intro banner.
		Hello string
		// Title is the page title template. Defaults to describe.DefaultTitle.
		Title string
		// Conversation runs the conversational help loop (optional).
		Conversation func()
		// GlamourStyle renders the standard screen as styled Markdown when set.
		GlamourStyle string
	}

	// Helper is the user-facing help command interpreter.
	Helper struct {
		registry     *docreg.Registry
		renderer     *describe.Renderer
		entry        *object.Module
		builtin      *object.Module
		out          io.Writer
		logger       *slog.Logger
		hello        string
		title        string
		conversation func()
		style        string
	}
)

// New creates a Helper.
func New(opts Options) *Helper {
	if opts.Registry == nil {
		opts.Registry = docreg.New(docreg.Options{})
	}
	if opts.Renderer == nil {
		opts.Renderer = describe.NewRenderer(describe.RendererOptions{Logger: opts.Logger})
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = describe.DefaultTitle
	}
	return &Helper{
		registry:     opts.Registry,
		renderer:     opts.Renderer,
		entry:        opts.Entry,
		builtin:      opts.Builtin,
		out:          opts.Output,
		logger:       opts.Logger,
		hello:        opts.Hello,
		title:        opts.Title,
		conversation: opts.Conversation,
		style:        opts.GlamourStyle,
	}
}

// Help answers one request. A string is either a reserved token or a dotted
// path evaluated against the public namespace; anything else is documented
// directly. Names that cannot be found are logged and nothing is shown, so
// the only errors returned come from writing output or from the pager.
func (h *Helper) Help(request any) error {
	if s, ok := request.(string); ok {
		switch s {
		case TokenStandard:
			return h.standard()
		case TokenIndex:
			_, err := io.WriteString(h.out, h.registry.RenderIndex())
			return err
		case TokenInteractive:
			return h.interactive()
		}

		// An unknown name is passed on as a path and fails location.
		if v, found := h.Evaluate(s); found {
			request = v
		}
	}

	h.logger.Debug("rendering documentation", "request", request)
	return h.renderer.Render(request, h.title)
}

// Evaluate resolves a dotted path against the public namespace, then the
// builtin namespace.
func (h *Helper) Evaluate(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}
	for _, ns := range []*object.Module{h.entry, h.builtin} {
		if ns == nil {
			continue
		}
		if v, ok := object.Walk(ns, path); ok {
			return v, true
		}
	}
	return nil, false
}

// Intro writes the welcome banner.
func (h *Helper) Intro(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(bannerRule + "\n")
	sb.WriteString(h.hello + "\n\n")
	sb.WriteString("This is an interactive help for the public interface.\n\n")
	fmt.Fprintf(&sb, "Type %-13s to see the help index.\n", quote(TokenIndex))
	fmt.Fprintf(&sb, "Type %-13s to see the standard help screen.\n", quote(TokenStandard))
	fmt.Fprintf(&sb, "Type %-13s to get conversational help.\n", quote(TokenInteractive))
	fmt.Fprintf(&sb, "Type %-13s to leave help.\n", quote(TokenQuit))
	sb.WriteString(bannerRule + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// Interact writes the intro and runs the prompt loop over r until quit, q or
// end of input. Blank lines are ignored. Failed requests are logged and the
// loop goes on.
func (h *Helper) Interact(r io.Reader) error {
	if err := h.Intro(h.out); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for {
		if _, err := io.WriteString(h.out, Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			_, _ = io.WriteString(h.out, "\n")
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case TokenQuit, "q":
			return nil
		}

		if err := h.Help(line); err != nil {
			h.logger.Error("help request failed", "request", line, "error", err)
		}
	}
}

func (h *Helper) standard() error {
	text := standardScreen
	if h.style != "" {
		rendered, err := glamour.Render(standardScreen, h.style)
		if err != nil {
			h.logger.Debug("markdown rendering failed, writing raw text", "error", err)
		} else {
			text = rendered
		}
	}
	_, err := io.WriteString(h.out, text)
	return err
}

func (h *Helper) interactive() error {
	if _, err := io.WriteString(h.out, interactiveBanner); err != nil {
		return err
	}
	if h.conversation == nil {
		h.logger.Warn("conversational help is not available")
		return nil
	}
	h.conversation()
	return nil
}

func quote(token string) string {
	return "'" + token + "'"
}
