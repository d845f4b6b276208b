// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gpihelp/gpihelp/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the gpihelp command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gpihelp [request...]",
		Short: "Interactive help for the job-management public interface",
		Long: TitleStyle.Render("gpihelp") + SubtitleStyle.Render(" - interactive help for the public interface") + `

gpihelp documents the types, functions and objects of the public interface.
Each request is a dotted name such as Job, Job.Kill or Jobs.Select, or one
of the reserved words:

  ` + CmdStyle.Render("index") + `        list every documented public name
  ` + CmdStyle.Render("go") + `           show the standard help screen
  ` + CmdStyle.Render("interactive") + `  start conversational help

Values are documented through their type. With no request, gpihelp starts
the ` + CmdStyle.Render("help>") + ` prompt; type 'quit' to leave it.

` + SubtitleStyle.Render("Examples:") + `
  gpihelp                   Start the interactive prompt
  gpihelp Job               Show the documentation of Job
  gpihelp Jobs.Select       Show the documentation of a method
  gpihelp index             Print the help index
  gpihelp config show       Show the current configuration`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.loadConfig(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession()
			if err != nil {
				return app.fail(cmd, err)
			}
			if len(args) == 0 {
				if err := s.helper.Interact(app.stdin); err != nil {
					return app.fail(cmd, fmt.Errorf("read help requests: %w", err))
				}
				return nil
			}
			for _, request := range args {
				if err := s.helper.Help(request); err != nil {
					return app.fail(cmd, err)
				}
			}
			return nil
		},
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/gpihelp/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.flags.pager, "pager", "", "pager mode: auto, tui or plain (default from config)")

	rootCmd.AddCommand(newIndexCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	app.installLogger = true

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method; in verbose mode the linked troubleshooting guide
// is rendered below with the given glamour style.
func formatErrorForDisplay(err error, verbose bool, style string) string {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return err.Error()
	}

	msg := ae.Format(verbose)
	if !verbose {
		return msg
	}
	if guide := ae.Guide(); guide != nil {
		rendered, renderErr := guide.Render(style)
		if renderErr == nil {
			msg += "\n" + strings.TrimRight(rendered, "\n")
		}
	}
	return msg
}
