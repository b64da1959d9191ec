package strategy

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/bindings"
	"github.com/modfuse/modfuse/internal/rewriter"
)

// participates reports whether mod takes part in the module system at
// all. A module with no import and no export declarations shares
// nothing with the rest of the bundle: its bindings stay untouched,
// which also keeps the transform idempotent over its own output.
func participates(mod *bindings.Module) bool {
	return len(mod.Imports.Declarations()) > 0 || len(mod.Exports.Declarations()) > 0
}

// ProcessVariableDeclaration renames every declarator of a top-level
// var statement into the module's namespace. The statement keeps its
// declaration form, so hoisting behaves as before; the builder reuses
// the original node and renames in place at commit time.
func (f *Flat) ProcessVariableDeclaration(mod *bindings.Module, node *ast.VarDeclaration) (rewriter.Builder, bool) {
	if !participates(mod) {
		return nil, false
	}
	return func() []ast.Statement {
		f.renameDeclarators(mod, node)
		return []ast.Statement{node}
	}, true
}

// ProcessFunctionDeclaration renames a module-body function declaration
// into the namespace, keeping the declaration form so the binding is
// visible before its statement executes.
func (f *Flat) ProcessFunctionDeclaration(mod *bindings.Module, node *ast.FunctionDeclaration) (rewriter.Builder, bool) {
	if !participates(mod) {
		return nil, false
	}
	return func() []ast.Statement {
		node.Name = f.qualified(mod, node.Name.Value, node.Name.Token)
		return []ast.Statement{node}
	}, true
}

// ProcessExportDeclaration strips the export wrapper. Declaration forms
// keep their (renamed) inner declaration; specifier lists vanish —
// every reference they served was already retargeted, and re-exports
// resolve in downstream modules.
func (f *Flat) ProcessExportDeclaration(mod *bindings.Module, node *ast.ExportDeclaration) (rewriter.Builder, bool) {
	switch decl := node.Declaration.(type) {
	case *ast.VarDeclaration:
		return func() []ast.Statement {
			f.renameDeclarators(mod, decl)
			return []ast.Statement{decl}
		}, true
	case *ast.FunctionDeclaration:
		return func() []ast.Statement {
			decl.Name = f.qualified(mod, decl.Name.Value, decl.Name.Token)
			return []ast.Statement{decl}
		}, true
	default:
		return func() []ast.Statement { return nil }, true
	}
}

// ProcessImportDeclaration removes the declaration outright: all
// references into the module were already retargeted by the resolver.
func (f *Flat) ProcessImportDeclaration(mod *bindings.Module, node *ast.ImportDeclaration) (rewriter.Builder, bool) {
	return func() []ast.Statement { return nil }, true
}

// DefaultExport collapses export default into a plain namespace
// declaration: var <mod>$$default = value;
func (f *Flat) DefaultExport(mod *bindings.Module, node *ast.ExportDeclaration, value ast.Expression) (rewriter.Builder, bool) {
	return func() []ast.Statement {
		return []ast.Statement{&ast.VarDeclaration{
			Token: node.Token,
			Declarators: []*ast.VarDeclarator{{
				Name: f.qualified(mod, "default", node.Token),
				Init: value,
			}},
		}}
	}, true
}

func (f *Flat) renameDeclarators(mod *bindings.Module, node *ast.VarDeclaration) {
	for _, d := range node.Declarators {
		d.Name = f.qualified(mod, d.Name.Value, d.Name.Token)
	}
}
