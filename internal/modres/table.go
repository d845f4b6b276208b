// SPDX-License-Identifier: MPL-2.0

package modres

import (
	"github.com/gpihelp/gpihelp/internal/object"
)

// Table is the live module registry: every module the running program has made
// known to the help facility, keyed by name. Modules are only ever added.
type Table struct {
	order   []string
	modules map[string]*object.Module
}

// NewTable creates an empty module table.
func NewTable() *Table {
	return &Table{modules: make(map[string]*object.Module)}
}

// Add registers m under m.Name, replacing a previous module of the same name
// in place.
func (t *Table) Add(m *object.Module) {
	if m == nil {
		return
	}
	if _, exists := t.modules[m.Name]; !exists {
		t.order = append(t.order, m.Name)
	}
	t.modules[m.Name] = m
}

// Get returns the module registered under name, or nil.
func (t *Table) Get(name string) *object.Module {
	return t.modules[name]
}

// Modules returns the registered modules in registration order.
func (t *Table) Modules() []*object.Module {
	out := make([]*object.Module, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.modules[name])
	}
	return out
}

// Len returns the number of registered modules.
func (t *Table) Len() int {
	return len(t.order)
}
