// Package scope implements Nebula's lexical scope tree. Each Scope
// owns a map of name to *Cell; a Cell is the shared mutable storage
// location a variable's declaration and every later reference to it
// both point at, so that an assignment anywhere is visible everywhere
// the variable is held. This plays the role the original interpreter
// filled with reference-counted shared_ptr<Value> cells distributed
// across AST nodes and symbol table entries; Go's garbage collector
// already rules out the dangling/double-free failure modes that
// design was built to guard against, so a plain pointer into the
// scope's map is enough — no separate slot arena is needed.
package scope

import "github.com/nebula-lang/nebula/value"

// Cell is a single named storage location. Initialized becomes true
// the first time the cell is assigned a value; reading an
// uninitialized cell is the "cannot evaluate an unitialized variable"
// error surfaced by the evaluator.
type Cell struct {
	Value       value.Value
	Initialized bool
}

// Scope is one lexical scope: a map of locally-declared names and a
// link to the enclosing scope, or nil at the root.
type Scope struct {
	vars   map[string]*Cell
	parent *Scope
}

// NewScope creates a scope whose enclosing scope is parent (nil for
// the program's root scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Create declares name in this scope only, returning its new cell.
// Matching the original symbol table, this does not check whether
// name is already declared in this scope: a second Create for the
// same name in the same scope silently allocates a fresh cell,
// shadowing the old one for any lookup performed from this point on.
// Earlier AST nodes that already resolved to the old cell keep
// pointing at it, so this behaves like ordinary shadowing rather than
// mutating the previous variable. See DESIGN.md for why this
// redeclaration behavior, left undocumented by the source this was
// distilled from, was resolved this way.
func (s *Scope) Create(name string, typ value.Type) *Cell {
	if s.vars == nil {
		s.vars = make(map[string]*Cell)
	}
	cell := &Cell{Value: defaultValue(typ)}
	s.vars[name] = cell
	return cell
}

// Get walks this scope and its ancestors for name, returning its cell
// and whether it was found.
func (s *Scope) Get(name string) (*Cell, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.vars != nil {
			if cell, ok := cur.vars[name]; ok {
				return cell, true
			}
		}
	}
	return nil, false
}

// Exists reports whether name is visible from this scope.
func (s *Scope) Exists(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// defaultValue returns the zero value for a freshly declared,
// not-yet-assigned variable of the given type tag.
func defaultValue(typ value.Type) value.Value {
	switch typ {
	case value.INT:
		return value.NewInt(0)
	case value.FLOAT:
		return value.NewFloat(0)
	case value.CHAR:
		return value.NewChar(0)
	case value.BOOL:
		return value.NewBool(false)
	default:
		return value.Null
	}
}
