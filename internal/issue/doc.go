// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown
// troubleshooting guides.
//
// An ActionableError says what failed and how to recover in one or two lines;
// its Issue field links to a longer guide that the CLI renders with glamour
// when --verbose is set.
package issue
