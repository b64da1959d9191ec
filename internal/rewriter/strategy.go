// Package rewriter is the core of the flattening transform: it walks
// every module's tree once, decides for each identifier occurrence
// whether it must be retargeted, enforces import-binding immutability,
// and commits all planned changes in a single final pass.
package rewriter

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/bindings"
	"github.com/modfuse/modfuse/internal/scopes"
	"github.com/modfuse/modfuse/internal/walk"
)

// Reference is one value-position identifier occurrence, located by its
// path and the lexical scope it occurs in. References are evaluated on
// the fly during traversal and not retained.
type Reference struct {
	Module *bindings.Module
	Path   *walk.Path
	Scope  *scopes.Scope
}

// Identifier returns the occurrence's identifier node.
func (r *Reference) Identifier() *ast.Identifier {
	id, _ := r.Path.Node.(*ast.Identifier)
	return id
}

// Name returns the referenced name.
func (r *Reference) Name() string {
	if id := r.Identifier(); id != nil {
		return id.Value
	}
	return ""
}

// DeclaringScope returns the scope declaring the referenced name, or
// nil when no scope in the chain declares it.
func (r *Reference) DeclaringScope() *scopes.Scope {
	return r.Scope.Lookup(r.Name())
}

// Strategy decides how qualified replacements are spelled and how
// declarations are restructured. Each method returns its replacement or
// reports none; the resolver consults the reference methods in a fixed
// priority order (exported-by-declaration, then imported, then
// local-fallback) and stops at the first answer.
//
// Structural replacements are returned as builders so they can assemble
// their output from the tree's state at commit time, after no further
// discovery depends on the original shape. A builder may reuse (and at
// commit time rename inside) the original node's subtrees; queued
// reference swaps inside those subtrees still apply because the
// containers are shared.
type Strategy interface {
	// ProcessVariableDeclaration handles a top-level var statement.
	ProcessVariableDeclaration(mod *bindings.Module, node *ast.VarDeclaration) (Builder, bool)

	// ProcessFunctionDeclaration handles a function declaration whose
	// immediate parent is the module body.
	ProcessFunctionDeclaration(mod *bindings.Module, node *ast.FunctionDeclaration) (Builder, bool)

	// ProcessExportDeclaration handles a non-default export statement.
	ProcessExportDeclaration(mod *bindings.Module, node *ast.ExportDeclaration) (Builder, bool)

	// ProcessImportDeclaration handles an import statement.
	ProcessImportDeclaration(mod *bindings.Module, node *ast.ImportDeclaration) (Builder, bool)

	// DefaultExport handles export default. value is the exported
	// expression, already retargeted when it was a bare imported name.
	DefaultExport(mod *bindings.Module, node *ast.ExportDeclaration, value ast.Expression) (Builder, bool)

	// ExportedReference answers for a name this module exports via a
	// local declaration.
	ExportedReference(mod *bindings.Module, ref *Reference) ast.Expression

	// ImportedReference answers for a name bound by an import
	// specifier.
	ImportedReference(mod *bindings.Module, ref *Reference) ast.Expression

	// LocalReference answers for an otherwise-local name that must
	// still become qualified (a module-level binding hoisted into the
	// output namespace).
	LocalReference(mod *bindings.Module, ref *Reference) ast.Expression
}

// Builder produces the statements replacing one declaration. It runs
// during the commit pass only.
type Builder func() []ast.Statement
