// SPDX-License-Identifier: MPL-2.0

// Package helpdesk is the interactive help entry point.
//
// A Helper classifies each request: the reserved tokens show the help index,
// the standard help screen or hand over to a conversational loop; any other
// string is evaluated as a dotted path against the public namespace and the
// result is rendered and paged.
package helpdesk
