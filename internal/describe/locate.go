// SPDX-License-Identifier: MPL-2.0

package describe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gpihelp/gpihelp/internal/modres"
	"github.com/gpihelp/gpihelp/internal/object"
)

// ErrNotFound is returned when a dotted path names no reachable object.
var ErrNotFound = errors.New("no documentation found")

// LocateError reports the path that could not be located.
type LocateError struct {
	Path string
	// Module is the longest loaded module the path started with, if any.
	Module string
}

func (e *LocateError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s: %q (no member %q in module %s)",
			ErrNotFound, e.Path, strings.TrimPrefix(e.Path[len(e.Module):], "."), e.Module)
	}
	return fmt.Sprintf("%s: %q", ErrNotFound, e.Path)
}

// Unwrap returns ErrNotFound for errors.Is checks.
func (e *LocateError) Unwrap() error { return ErrNotFound }

// Locate finds the object named by a dotted path. The path starts with the
// name of a loaded module (the longest matching one wins), followed by member
// names walked with object.Walk.
func Locate(table *modres.Table, path string) (any, error) {
	path = strings.TrimSpace(path)
	if path == "" || table == nil {
		return nil, &LocateError{Path: path}
	}

	var base *object.Module
	for _, m := range table.Modules() {
		if m.Name != path && !strings.HasPrefix(path, m.Name+".") {
			continue
		}
		if base == nil || len(m.Name) > len(base.Name) {
			base = m
		}
	}
	if base == nil {
		return nil, &LocateError{Path: path}
	}
	if base.Name == path {
		return base, nil
	}

	v, ok := object.Walk(base, path[len(base.Name)+1:])
	if !ok {
		return nil, &LocateError{Path: path, Module: base.Name}
	}
	return v, nil
}
