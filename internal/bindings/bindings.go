// Package bindings holds the per-module import/export tables the
// rewriter resolves against: each module's declarations, in source
// order, with their specifiers mapping local names to remote names.
package bindings

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/scopes"
)

// Module is one source module with its binding tables and scope
// analysis. Modules are built before rewriting and are only mutated by
// the rewriter's commit pass.
type Module struct {
	Name    string // Identifier-safe short name, e.g. "a" for a.js
	Path    string // Source path the module was loaded from
	Program *ast.Program
	Exports *DeclarationList
	Imports *DeclarationList
	Scopes  *scopes.Info
}

// Declaration is one import or export statement belonging to a module.
type Declaration struct {
	Module     *Module
	Node       ast.Statement
	Specifiers []*Specifier
	Source     string  // Module request for imports and re-exports, "" otherwise
	Origin     *Module // Resolved Source, linked by the loader
	Default    bool    // True for export default
}

// HasOrigin reports whether this declaration pulls its values from
// another module.
func (d *Declaration) HasOrigin() bool {
	return d.Source != ""
}

// Specifier maps a local name to a remote name within one declaration.
type Specifier struct {
	Decl *Declaration

	// Local is the name bound (or referenced) in the declaring module.
	// Empty for re-export specifiers, which bind nothing locally.
	Local string

	// Remote is the name on the other side of the mapping: the origin
	// module's exported name for imports, the external name for
	// exports and re-exports.
	Remote string

	// OriginName is the name in the origin module for re-export
	// specifiers (the x in export { x as y } from "./m"); "" otherwise.
	OriginName string

	// Node is the specifier's own primary name occurrence in the tree.
	Node *ast.Identifier
}

// HasLocalBinding reports whether this specifier introduces a name
// usable as a value inside its declaring module. A bare re-export
// specifier (export { x } from "./m") does not.
func (s *Specifier) HasLocalBinding() bool {
	return s.Local != ""
}

// DeclarationList is an ordered sequence of declarations; order is
// source order and survives the transform.
type DeclarationList struct {
	decls []*Declaration
}

func (l *DeclarationList) Append(d *Declaration) {
	l.decls = append(l.decls, d)
}

func (l *DeclarationList) Declarations() []*Declaration {
	if l == nil {
		return nil
	}
	return l.decls
}

// FindSpecifierByName returns the first specifier whose external name
// is name. For export lists the external name is the exported alias
// (Remote); callers use this to ask "does this module export name".
func (l *DeclarationList) FindSpecifierByName(name string) *Specifier {
	if l == nil {
		return nil
	}
	for _, d := range l.decls {
		for _, s := range d.Specifiers {
			if s.Remote == name {
				return s
			}
		}
	}
	return nil
}

// FindSpecifierByLocalName returns the first specifier binding name
// locally, or nil.
func (l *DeclarationList) FindSpecifierByLocalName(name string) *Specifier {
	if l == nil {
		return nil
	}
	for _, d := range l.decls {
		for _, s := range d.Specifiers {
			if s.Local == name {
				return s
			}
		}
	}
	return nil
}
