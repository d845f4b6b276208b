// SPDX-License-Identifier: MPL-2.0

// Package docreg keeps the curated index of a program's public names.
//
// Public objects are registered once at startup under one of four sections
// and rendered on demand as a plain-text index whose summaries come from the
// objects' own documentation unless an override is given.
package docreg
