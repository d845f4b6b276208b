// SPDX-License-Identifier: MPL-2.0

// Package modres resolves the module that defined an arbitrary runtime object.
//
// Standard introspection is not enough on its own: funcs carry no package
// attribute, instances only know their type, and hosts may inject objects into
// the public namespace that were never declared in a registered module. The
// Resolver therefore layers a source-file cache and namespace identity
// fallbacks on top of reflection, and reports "unknown" as a nil module
// rather than an error.
package modres
