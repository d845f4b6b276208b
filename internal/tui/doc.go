// SPDX-License-Identifier: MPL-2.0

// Package tui provides the pagers documentation pages are displayed through.
//
// The terminal pager is a Bubble Tea program around a Bubbles viewport; the
// plain pager writes to any io.Writer and is used when output is not a
// terminal.
package tui
