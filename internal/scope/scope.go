// Package scope implements the chained symbol tables used by the analyzer
// and the code generator.
package scope

import "github.com/tinyrange/mathseq/internal/types"

// Symbol is a named binding in exactly one table.
type Symbol struct {
	Name        string
	Type        types.DataType
	Initialized bool
	Constant    bool
	ScopeDepth  int
	// IRName is the name the code generator stores the binding under. It
	// is empty for tables that never lower code.
	IRName string
}

type table struct {
	parent  *table
	depth   int
	symbols map[string]*Symbol
}

// Manager is a stack of tables. The global table at depth 0 is never popped.
type Manager struct {
	cur *table
}

func New() *Manager {
	return &Manager{cur: &table{symbols: make(map[string]*Symbol)}}
}

// EnterScope pushes a child of the current table.
func (m *Manager) EnterScope() {
	m.cur = &table{parent: m.cur, depth: m.cur.depth + 1, symbols: make(map[string]*Symbol)}
}

// ExitScope pops to the parent table. It does nothing at depth 0.
func (m *Manager) ExitScope() {
	if m.cur.parent != nil {
		m.cur = m.cur.parent
	}
}

func (m *Manager) Depth() int { return m.cur.depth }

// Declare adds name to the current table. It returns false, leaving the
// table unchanged, if the current table already holds name.
func (m *Manager) Declare(name string, typ types.DataType, initialized, constant bool) bool {
	if _, ok := m.cur.symbols[name]; ok {
		return false
	}
	m.cur.symbols[name] = &Symbol{
		Name:        name,
		Type:        typ,
		Initialized: initialized,
		Constant:    constant,
		ScopeDepth:  m.cur.depth,
	}
	return true
}

// Lookup returns the nearest declaration of name, searching outwards.
func (m *Manager) Lookup(name string) (*Symbol, bool) {
	for t := m.cur; t != nil; t = t.parent {
		if sym, ok := t.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only the current table.
func (m *Manager) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := m.cur.symbols[name]
	return sym, ok
}

// MarkInitialized flags the nearest declaration of name as initialized.
func (m *Manager) MarkInitialized(name string) bool {
	sym, ok := m.Lookup(name)
	if !ok {
		return false
	}
	sym.Initialized = true
	return true
}
