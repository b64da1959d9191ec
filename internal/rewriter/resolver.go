package rewriter

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/bindings"
)

// resolveReference decides whether a value-position identifier
// occurrence must be replaced, and with what. It returns nil when the
// name should be left as-is.
//
// The decision procedure, in order:
//
//  1. The bare name of a non-default export specifier denotes the
//     external contract, not a value use; it survives verbatim.
//  2. A name matching a pure re-export (export { x } from "./m")
//     creates no local binding here; references belong to resolving
//     modules downstream.
//  3. Otherwise the strategy answers, first match wins: exported via a
//     local declaration, then bound by an import specifier, then the
//     local-but-qualified fallback.
//  4. No answer means a genuinely local, non-exported binding.
func (r *Rewriter) resolveReference(mod *bindings.Module, ref *Reference) ast.Expression {
	ident := ref.Identifier()
	if ident == nil {
		return nil
	}

	if inExportSpecifier(ref) {
		return nil
	}

	if spec := mod.Exports.FindSpecifierByName(ident.Value); spec != nil &&
		spec.Decl.HasOrigin() && spec.Node != ident {
		return nil
	}

	if e := r.strategy.ExportedReference(mod, ref); e != nil {
		return e
	}
	if e := r.strategy.ImportedReference(mod, ref); e != nil {
		return e
	}
	if e := r.strategy.LocalReference(mod, ref); e != nil {
		return e
	}
	return nil
}

// inExportSpecifier reports whether the occurrence is a specifier name
// inside a non-default export declaration.
func inExportSpecifier(ref *Reference) bool {
	parent := ref.Path.Parent
	if parent == nil {
		return false
	}
	if _, ok := parent.Node.(*ast.ExportSpecifier); !ok {
		return false
	}
	if decl := parent.Parent; decl != nil {
		if ed, ok := decl.Node.(*ast.ExportDeclaration); ok {
			return !ed.Default
		}
	}
	return true
}
