// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gpihelp/gpihelp/internal/config"
)

// newConfigCommand creates the `gpihelp config` command tree. The
// configuration itself is loaded by the root command before any subcommand
// runs.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gpihelp configuration",
		Long: `Manage gpihelp configuration.

Configuration is stored in:
  - Linux: ~/.config/gpihelp/config.cue
  - macOS: ~/Library/Application Support/gpihelp/config.cue
  - Windows: %APPDATA%\gpihelp\config.cue

Keys:
  pager                     auto, tui or plain
  render.max_inline_string  longest string shown inline (default 255)
  render.max_other_value    longest other value shown inline (default 70)
  render.title              page title, with one %s for the description
  index.title               first line of the help index
  index.width               wrap width of index summaries (0 disables wrapping)
  ui.verbose                verbose output
  ui.glamour_style          style of Markdown screens (auto, dark, light, notty)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showConfig(app.stdout, app.cfg, app.Config.Path())
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(app.configDir)
			if err != nil {
				return app.fail(cmd, fmt.Errorf("failed to create config: %w", err))
			}
			fmt.Fprintf(app.stdout, "%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.flags.configPath
			if path == "" {
				var err error
				if path, err = config.ConfigFilePath(app.configDir); err != nil {
					return app.fail(cmd, err)
				}
			}
			fmt.Fprintf(app.stdout, "Config file: %s\n", path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.stdout, config.GenerateCUE(app.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("pager"), valueStyle.Render(string(cfg.Pager)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("render"))
	fmt.Fprintf(w, "  max_inline_string: %s\n", valueStyle.Render(fmt.Sprint(cfg.Render.MaxInlineString)))
	fmt.Fprintf(w, "  max_other_value: %s\n", valueStyle.Render(fmt.Sprint(cfg.Render.MaxOtherValue)))
	fmt.Fprintf(w, "  title: %s\n", valueStyle.Render(fmt.Sprintf("%q", cfg.Render.Title)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("index"))
	fmt.Fprintf(w, "  title: %s\n", valueStyle.Render(fmt.Sprintf("%q", cfg.Index.Title)))
	fmt.Fprintf(w, "  width: %s\n", valueStyle.Render(fmt.Sprint(cfg.Index.Width)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(w, "  glamour_style: %s\n", valueStyle.Render(cfg.UI.GlamourStyle))
}
