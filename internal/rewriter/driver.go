package rewriter

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/bindings"
	"github.com/modfuse/modfuse/internal/diagnostics"
	"github.com/modfuse/modfuse/internal/scopes"
	"github.com/modfuse/modfuse/internal/walk"
)

// Rewriter drives the transform: a read-only discovery walk over every
// module, then a single commit pass applying all queued replacements.
type Rewriter struct {
	strategy Strategy
}

func New(strategy Strategy) *Rewriter {
	return &Rewriter{strategy: strategy}
}

// Rewrite processes mods in list order. Discovery must finish for the
// whole batch before anything mutates: later references depend on the
// original, unmutated tree shape, scope chains included. On error the
// batch aborts with zero mutation.
//
// It returns the number of replacements applied, so callers can detect
// a no-op run.
func (r *Rewriter) Rewrite(mods []*bindings.Module) (int, *diagnostics.DiagnosticError) {
	q := newQueue()
	for _, mod := range mods {
		root := walk.Root(mod.Program)
		err := r.discoverStatementList(mod, root, &mod.Program.Statements, mod.Scopes.Module, q)
		if err != nil {
			return 0, err.WithFile(mod.Path)
		}
	}
	q.commit()
	return q.Len(), nil
}

func (r *Rewriter) discoverStatementList(mod *bindings.Module, parent *walk.Path, list *[]ast.Statement, scope *scopes.Scope, q *queue) *diagnostics.DiagnosticError {
	for i, stmt := range *list {
		path := walk.StmtChild(parent, stmt, "Statements", i, list)
		if err := r.discoverStatement(mod, path, scope, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rewriter) discoverStatement(mod *bindings.Module, path *walk.Path, scope *scopes.Scope, q *queue) *diagnostics.DiagnosticError {
	switch s := path.Node.(type) {
	case *ast.VarDeclaration:
		// Top-level vars hoist into the module's namespace; nested ones
		// stay plain locals.
		if scope.IsGlobal() {
			if build, ok := r.strategy.ProcessVariableDeclaration(mod, s); ok {
				q.addStructural(path, build)
			}
		}
		return r.discoverDeclarators(mod, path, s, scope, q)

	case *ast.FunctionDeclaration:
		if _, atModuleBody := path.ParentNode().(*ast.Program); atModuleBody {
			if build, ok := r.strategy.ProcessFunctionDeclaration(mod, s); ok {
				q.addStructural(path, build)
			}
		}
		inner := mod.Scopes.ScopeOf(s)
		return r.discoverStatementList(mod, path, &s.Body.Statements, inner, q)

	case *ast.ReturnStatement:
		if s.Value == nil {
			return nil
		}
		return r.discoverExpression(mod, walk.ExprChild(path, s.Value, "Value", -1, func(e ast.Expression) { s.Value = e }), scope, q)

	case *ast.IfStatement:
		err := r.discoverExpression(mod, walk.ExprChild(path, s.Condition, "Condition", -1, func(e ast.Expression) { s.Condition = e }), scope, q)
		if err != nil {
			return err
		}
		if err := r.discoverStatementList(mod, path, &s.Consequence.Statements, scope, q); err != nil {
			return err
		}
		if s.Alternative != nil {
			alt := walk.StmtChild(path, s.Alternative, "Alternative", -1, nil)
			return r.discoverStatement(mod, alt, scope, q)
		}
		return nil

	case *ast.BlockStatement:
		return r.discoverStatementList(mod, path, &s.Statements, scope, q)

	case *ast.ExpressionStatement:
		return r.discoverExpression(mod, walk.ExprChild(path, s.Expression, "Expression", -1, func(e ast.Expression) { s.Expression = e }), scope, q)

	case *ast.ImportDeclaration:
		// References into this module were already retargeted by the
		// resolver; the declaration itself is the strategy's to remove.
		if build, ok := r.strategy.ProcessImportDeclaration(mod, s); ok {
			q.addStructural(path, build)
		}
		return nil

	case *ast.ExportDeclaration:
		return r.discoverExport(mod, path, s, scope, q)
	}
	return nil
}

func (r *Rewriter) discoverDeclarators(mod *bindings.Module, path *walk.Path, s *ast.VarDeclaration, scope *scopes.Scope, q *queue) *diagnostics.DiagnosticError {
	for _, d := range s.Declarators {
		if d.Init == nil {
			continue
		}
		d := d
		child := walk.ExprChild(path, d.Init, "Init", -1, func(e ast.Expression) { d.Init = e })
		if err := r.discoverExpression(mod, child, scope, q); err != nil {
			return err
		}
	}
	return nil
}

// discoverExport handles every export form. Default exports introduce
// no local binding, so they always collapse to a plain qualified
// assignment; non-default exports are the strategy's to restructure.
func (r *Rewriter) discoverExport(mod *bindings.Module, path *walk.Path, s *ast.ExportDeclaration, scope *scopes.Scope, q *queue) *diagnostics.DiagnosticError {
	if s.Default {
		value := s.Value
		if ident, ok := value.(*ast.Identifier); ok {
			// export default importedName must point straight at the
			// origin, not at a local alias.
			ref := &Reference{Module: mod, Path: walk.ExprChild(path, ident, "Value", -1, nil), Scope: scope}
			if repl := r.resolveReference(mod, ref); repl != nil {
				value = repl
			}
		} else {
			child := walk.ExprChild(path, value, "Value", -1, func(e ast.Expression) { s.Value = e })
			if err := r.discoverExpression(mod, child, scope, q); err != nil {
				return err
			}
		}
		if build, ok := r.strategy.DefaultExport(mod, s, value); ok {
			q.addStructural(path, build)
		}
		return nil
	}

	if build, ok := r.strategy.ProcessExportDeclaration(mod, s); ok {
		q.addStructural(path, build)
	}

	// Specifier names survive verbatim and are never walked; only the
	// inner declaration (if any) holds value references.
	switch decl := s.Declaration.(type) {
	case *ast.VarDeclaration:
		declPath := walk.StmtChild(path, decl, "Declaration", -1, nil)
		return r.discoverDeclarators(mod, declPath, decl, scope, q)
	case *ast.FunctionDeclaration:
		declPath := walk.StmtChild(path, decl, "Declaration", -1, nil)
		inner := mod.Scopes.ScopeOf(decl)
		return r.discoverStatementList(mod, declPath, &decl.Body.Statements, inner, q)
	}
	return nil
}

func (r *Rewriter) discoverExpression(mod *bindings.Module, path *walk.Path, scope *scopes.Scope, q *queue) *diagnostics.DiagnosticError {
	switch e := path.Node.(type) {
	case *ast.Identifier:
		ref := &Reference{Module: mod, Path: path, Scope: scope}
		if repl := r.resolveReference(mod, ref); repl != nil {
			q.addSwap(path, repl)
		}
		return nil

	case *ast.AssignExpression:
		if err := guardMutation(e.Left, scope); err != nil {
			return err
		}
		left := walk.ExprChild(path, e.Left, "Left", -1, func(x ast.Expression) { e.Left = x })
		if err := r.discoverExpression(mod, left, scope, q); err != nil {
			return err
		}
		value := walk.ExprChild(path, e.Value, "Value", -1, func(x ast.Expression) { e.Value = x })
		return r.discoverExpression(mod, value, scope, q)

	case *ast.UpdateExpression:
		if err := guardMutation(e.Operand, scope); err != nil {
			return err
		}
		operand := walk.ExprChild(path, e.Operand, "Operand", -1, func(x ast.Expression) { e.Operand = x })
		return r.discoverExpression(mod, operand, scope, q)

	case *ast.PrefixExpression:
		right := walk.ExprChild(path, e.Right, "Right", -1, func(x ast.Expression) { e.Right = x })
		return r.discoverExpression(mod, right, scope, q)

	case *ast.InfixExpression:
		left := walk.ExprChild(path, e.Left, "Left", -1, func(x ast.Expression) { e.Left = x })
		if err := r.discoverExpression(mod, left, scope, q); err != nil {
			return err
		}
		right := walk.ExprChild(path, e.Right, "Right", -1, func(x ast.Expression) { e.Right = x })
		return r.discoverExpression(mod, right, scope, q)

	case *ast.CallExpression:
		fn := walk.ExprChild(path, e.Function, "Function", -1, func(x ast.Expression) { e.Function = x })
		if err := r.discoverExpression(mod, fn, scope, q); err != nil {
			return err
		}
		for i := range e.Arguments {
			i := i
			arg := walk.ExprChild(path, e.Arguments[i], "Arguments", i, func(x ast.Expression) { e.Arguments[i] = x })
			if err := r.discoverExpression(mod, arg, scope, q); err != nil {
				return err
			}
		}
		return nil

	case *ast.MemberExpression:
		// Property names are spelling, not references.
		obj := walk.ExprChild(path, e.Object, "Object", -1, func(x ast.Expression) { e.Object = x })
		return r.discoverExpression(mod, obj, scope, q)

	case *ast.IndexExpression:
		left := walk.ExprChild(path, e.Left, "Left", -1, func(x ast.Expression) { e.Left = x })
		if err := r.discoverExpression(mod, left, scope, q); err != nil {
			return err
		}
		index := walk.ExprChild(path, e.Index, "Index", -1, func(x ast.Expression) { e.Index = x })
		return r.discoverExpression(mod, index, scope, q)

	case *ast.FunctionLiteral:
		inner := mod.Scopes.ScopeOf(e)
		return r.discoverStatementList(mod, path, &e.Body.Statements, inner, q)
	}
	return nil
}
