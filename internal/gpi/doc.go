// SPDX-License-Identifier: MPL-2.0

// Package gpi is a small job-management runtime and the public interface the
// help facility documents.
//
// Publish binds the public names of a Runtime in the entry namespace and lists
// them in the help index; Package and Builtins describe the namespaces that
// resolution falls back on.
package gpi
