// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpihelp/gpihelp/internal/docreg"
	"github.com/gpihelp/gpihelp/internal/helpdesk"
	"github.com/gpihelp/gpihelp/internal/issue"
)

// newIndexCommand creates the `gpihelp index` command.
func newIndexCommand(app *App) *cobra.Command {
	var section string

	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Print the help index",
		Long: `Print the index of documented public names, grouped into the
Classes, Exceptions, Functions and Objects sections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession()
			if err != nil {
				return app.fail(cmd, err)
			}
			if section == "" {
				if err := s.helper.Help(helpdesk.TokenIndex); err != nil {
					return app.fail(cmd, err)
				}
				return nil
			}

			sec, err := docreg.ParseSection(section)
			if err != nil {
				return app.fail(cmd, issue.NewErrorContext().
					WithOperation("print index section").
					WithResource(section).
					WithIssue(issue.InvalidIndexSectionId).
					WithSuggestion("Use one of: classes, exceptions, functions, objects").
					Wrap(err).
					BuildError())
			}
			fmt.Fprintln(app.stdout, s.registry.RenderSection(sec))
			return nil
		},
	}

	indexCmd.Flags().StringVarP(&section, "section", "s", "", "print a single section (classes, exceptions, functions, objects)")

	return indexCmd
}
