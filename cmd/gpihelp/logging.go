// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog logger backed by a charmbracelet/log handler
// writing to w. Verbose output includes debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "gpihelp",
		Level:  level,
	})
	return slog.New(handler)
}
