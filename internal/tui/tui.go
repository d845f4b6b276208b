// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	// ModeAuto pages through the TUI when output is a terminal, plainly otherwise.
	ModeAuto Mode = "auto"
	// ModeTUI always uses the full-screen viewport pager.
	ModeTUI Mode = "tui"
	// ModePlain writes pages straight to the output.
	ModePlain Mode = "plain"
)

// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid pager mode")

type (
	// Mode selects how pages are displayed.
	Mode string

	// InvalidModeError is returned when a pager mode is not recognized.
	// It wraps ErrInvalidMode for errors.Is() compatibility.
	InvalidModeError struct {
		Value string
	}

	// Config holds the pager configuration.
	Config struct {
		// Mode selects the pager. The zero value behaves like ModeAuto.
		Mode Mode
		// Input is where the TUI pager reads keys from (default os.Stdin).
		Input *os.File
		// Output is where pages are written (default os.Stdout).
		Output io.Writer
		// Width and Height size the TUI pager (0 for the terminal size).
		Width  int
		Height int
	}
)

// ParseMode validates a pager mode name. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeTUI, ModePlain:
		return Mode(s), nil
	default:
		return "", &InvalidModeError{Value: s}
	}
}

// Error implements the error interface for InvalidModeError.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid pager mode %q (expected auto, tui or plain)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// isTerminal reports whether w is a file connected to a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && f != nil && term.IsTerminal(int(f.Fd()))
}

// terminalSize returns the size of the terminal behind w, or ok=false.
func terminalSize(w any) (width, height int, ok bool) {
	f, isFile := w.(*os.File)
	if !isFile || f == nil {
		return 0, 0, false
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}
