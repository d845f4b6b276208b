// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the gpihelp CLI commands.
//
// The root command answers help requests given as arguments, or runs the
// interactive help prompt when there are none. The index and config
// subcommands print the help index and manage the configuration file.
package cmd
