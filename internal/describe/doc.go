// SPDX-License-Identifier: MPL-2.0

// Package describe turns live objects into documentation pages.
//
// An Extractor finds documentation text, a TextRenderer lays it out as plain
// text, and a Renderer labels the object with its provenance and hands the
// page to a Pager.
package describe
