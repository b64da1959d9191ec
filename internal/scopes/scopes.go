// Package scopes builds lexical scope chains for a parsed module and
// answers the queries the rewriter needs: which scope declares a name,
// what occurrences declare it there, and whether a scope is the module's
// top level.
//
// The language only has var declarations, which hoist to the nearest
// function (or module) scope, so blocks introduce no scope of their own.
package scopes

import (
	"github.com/modfuse/modfuse/internal/ast"
)

type Kind int

const (
	KindModule Kind = iota
	KindFunction
)

// BindKind records what sort of declaration introduced a binding.
type BindKind int

const (
	BindVar BindKind = iota
	BindFunction
	BindParam
	BindImport
)

// Binding is the declaration record for one name within one scope.
// Decls lists every declaring occurrence of the name; well-formed input
// has exactly one.
type Binding struct {
	Name  string
	Kind  BindKind
	Decls []*ast.Identifier
}

// Scope is one link in a lexical scope chain.
type Scope struct {
	kind     Kind
	parent   *Scope
	node     ast.Node // The Program or function node that introduced this scope
	bindings map[string]*Binding
	order    []string // Declaration order, for deterministic Bindings()
}

func newScope(kind Kind, parent *Scope, node ast.Node) *Scope {
	return &Scope{kind: kind, parent: parent, node: node, bindings: make(map[string]*Binding)}
}

// IsGlobal reports whether this is the module's top-level scope.
func (s *Scope) IsGlobal() bool {
	return s.kind == KindModule
}

// Parent returns the enclosing scope, or nil for the module scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Lookup walks the scope chain and returns the scope declaring name,
// or nil if no scope in the chain declares it.
func (s *Scope) Lookup(name string) *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.bindings[name]; ok {
			return scope
		}
	}
	return nil
}

// Binding returns this scope's own binding for name, or nil.
func (s *Scope) Binding(name string) *Binding {
	return s.bindings[name]
}

// Bindings returns every binding declared directly in this scope, in
// declaration order.
func (s *Scope) Bindings() []*Binding {
	out := make([]*Binding, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.bindings[name])
	}
	return out
}

func (s *Scope) declare(name string, kind BindKind, decl *ast.Identifier) {
	b, ok := s.bindings[name]
	if !ok {
		b = &Binding{Name: name, Kind: kind}
		s.bindings[name] = b
		s.order = append(s.order, name)
	}
	b.Decls = append(b.Decls, decl)
}
