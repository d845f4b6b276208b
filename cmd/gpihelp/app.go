// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpihelp/gpihelp/internal/config"
	"github.com/gpihelp/gpihelp/internal/describe"
	"github.com/gpihelp/gpihelp/internal/docreg"
	"github.com/gpihelp/gpihelp/internal/gpi"
	"github.com/gpihelp/gpihelp/internal/helpdesk"
	"github.com/gpihelp/gpihelp/internal/issue"
	"github.com/gpihelp/gpihelp/internal/modres"
	"github.com/gpihelp/gpihelp/internal/object"
	"github.com/gpihelp/gpihelp/internal/textfmt"
	"github.com/gpihelp/gpihelp/internal/tui"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		// Path returns the file the last successful Load read, or "".
		Path() string
	}

	// PagerFactory builds the pager documentation pages are displayed with.
	PagerFactory func(cfg tui.Config) (describe.Pager, error)

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Pager  PagerFactory
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// ConfigDir overrides the platform config directory.
		ConfigDir string
	}

	// App is the composition root of the CLI. Every command builds its help
	// session through it.
	App struct {
		Config    ConfigProvider
		newPager  PagerFactory
		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
		configDir string

		flags  rootFlags
		cfg    *config.Config
		logger *slog.Logger
		// installLogger makes the configured logger the slog default.
		installLogger bool
	}

	rootFlags struct {
		configPath string
		verbose    bool
		pager      string
	}

	// session is the help facility assembled for one invocation.
	session struct {
		helper   *helpdesk.Helper
		registry *docreg.Registry
		runtime  *gpi.Runtime
		table    *modres.Table
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Pager == nil {
		deps.Pager = func(cfg tui.Config) (describe.Pager, error) {
			p, err := tui.NewPager(cfg)
			if err != nil {
				return nil, err
			}
			return p, nil
		}
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &App{
		Config:    deps.Config,
		newPager:  deps.Pager,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		configDir: deps.ConfigDir,
		cfg:       config.DefaultConfig(),
		logger:    newLogger(deps.Stderr, false),
	}
}

// loadConfig reads the configuration selected by the global flags. A file
// that fails to load is reported as a warning and the defaults are used.
func (a *App) loadConfig(ctx context.Context) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose, config.DefaultGlamourStyle))
		cfg = config.DefaultConfig()
	}

	// Apply verbose from config if not set via flag
	if !a.flags.verbose {
		a.flags.verbose = cfg.UI.Verbose
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, a.flags.verbose)
	if a.installLogger {
		slog.SetDefault(a.logger)
	}
	a.logger.Debug("configuration loaded", "path", a.Config.Path(), "pager", cfg.Pager)
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		ConfigDirPath:  a.configDir,
	}
}

// pager builds the pager selected by --pager, or by the configuration.
func (a *App) pager() (describe.Pager, error) {
	mode := a.flags.pager
	if mode == "" {
		mode = string(a.cfg.Pager)
	}
	parsed, err := tui.ParseMode(mode)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("select pager").
			WithResource(mode).
			WithIssue(issue.InvalidPagerModeId).
			WithSuggestion("Use --pager auto, --pager tui or --pager plain").
			Wrap(err).
			BuildError()
	}

	cfg := tui.Config{Mode: parsed, Output: a.stdout}
	if f, ok := a.stdin.(*os.File); ok {
		cfg.Input = f
	}
	p, err := a.newPager(cfg)
	if err != nil {
		return nil, fmt.Errorf("create pager: %w", err)
	}

	return describe.PagerFunc(func(text string) error {
		if err := p.Display(text); err != nil {
			return issue.NewErrorContext().
				WithOperation("display documentation").
				WithIssue(issue.PagerFailedId).
				WithSuggestion("Retry with --pager plain").
				Wrap(err).
				BuildError()
		}
		return nil
	}), nil
}

// newSession assembles the public interface, its index and the help
// dispatcher from the loaded configuration.
func (a *App) newSession() (*session, error) {
	pager, err := a.pager()
	if err != nil {
		return nil, err
	}

	docs := describe.NewDocs()
	table := modres.NewTable()
	entry := object.NewModule(gpi.EntryName, "")
	builtin := gpi.Builtins(docs)
	table.Add(gpi.Package())
	table.Add(entry)
	table.Add(builtin)

	resolver := modres.NewResolver(table, modres.Options{Entry: entry, Builtin: builtin})
	registry := docreg.New(docreg.Options{
		Title:      a.cfg.Index.Title,
		Formatter:  textfmt.NewItemized(a.cfg.Index.Width),
		Summarizer: describe.NewExtractor(docs, resolver),
	})

	rt := gpi.NewRuntime(nil)
	gpi.Publish(rt, entry, registry, docs)

	renderer := describe.NewRenderer(describe.RendererOptions{
		Table:    table,
		Resolver: resolver,
		Docs:     docs,
		Limits: describe.Limits{
			MaxInlineString: a.cfg.Render.MaxInlineString,
			MaxOtherValue:   a.cfg.Render.MaxOtherValue,
		},
		Pager:  pager,
		Logger: a.logger,
	})

	helper := helpdesk.New(helpdesk.Options{
		Registry:     registry,
		Renderer:     renderer,
		Entry:        entry,
		Builtin:      builtin,
		Output:       a.stdout,
		Logger:       a.logger,
		Hello:        fmt.Sprintf("gpihelp %s, public interface %s", getVersionString(), gpi.Version),
		Title:        a.cfg.Render.Title,
		GlamourStyle: a.cfg.UI.GlamourStyle,
	})

	a.logger.Debug("help session ready", "modules", table.Len(), "indexed", registry.Len())
	return &session{helper: helper, registry: registry, runtime: rt, table: table}, nil
}

// fail reports err on stderr the way the CLI shows every failure and returns
// an ExitError so cobra does not print it again.
func (a *App) fail(cmd *cobra.Command, err error) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose, a.cfg.UI.GlamourStyle))

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Err: err}
}
