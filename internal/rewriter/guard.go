package rewriter

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/diagnostics"
	"github.com/modfuse/modfuse/internal/scopes"
)

// guardMutation enforces the language rule that an imported binding is
// immutable. target is the left-hand side of an assignment or the
// operand of an increment/decrement.
//
// Targets that are not plain names (member expressions, computed
// access) are out of scope and pass untouched. For a plain name, the
// declaring scope must hold exactly one declaring occurrence; zero or
// more than one means the scope analysis handed us malformed input.
func guardMutation(target ast.Expression, scope *scopes.Scope) *diagnostics.DiagnosticError {
	ident, ok := target.(*ast.Identifier)
	if !ok {
		return nil
	}

	declScope := scope.Lookup(ident.Value)
	if declScope == nil {
		// Undeclared names are left to the host environment.
		return nil
	}

	binding := declScope.Binding(ident.Value)
	if binding == nil || len(binding.Decls) != 1 {
		n := 0
		if binding != nil {
			n = len(binding.Decls)
		}
		return diagnostics.NewError(diagnostics.ErrR002, ident.Token, ident.Value, n)
	}

	if binding.Kind == scopes.BindImport {
		return diagnostics.NewError(diagnostics.ErrR001, ident.Token, ident.Value)
	}
	return nil
}
