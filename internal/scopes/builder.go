package scopes

import (
	"github.com/modfuse/modfuse/internal/ast"
)

// Info holds the scope analysis results for one module.
type Info struct {
	Module *Scope
	scopes map[ast.Node]*Scope // keyed by the scope-introducing node
}

// ScopeOf returns the scope introduced by node (a Program, function
// declaration or function literal), or nil.
func (i *Info) ScopeOf(node ast.Node) *Scope {
	return i.scopes[node]
}

// Build analyzes program and returns its scope chains. Declarations
// hoist: a var or function declaration anywhere in a function body is
// visible throughout that function.
func Build(program *ast.Program) *Info {
	info := &Info{scopes: make(map[ast.Node]*Scope)}
	module := newScope(KindModule, nil, program)
	info.Module = module
	info.scopes[program] = module

	for _, stmt := range program.Statements {
		buildStatement(info, module, stmt)
	}
	return info
}

func buildStatement(info *Info, scope *Scope, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		for _, d := range s.Declarators {
			scope.declare(d.Name.Value, BindVar, d.Name)
			if d.Init != nil {
				buildExpression(info, scope, d.Init)
			}
		}
	case *ast.FunctionDeclaration:
		scope.declare(s.Name.Value, BindFunction, s.Name)
		fn := newScope(KindFunction, scope, s)
		info.scopes[s] = fn
		for _, p := range s.Params {
			fn.declare(p.Value, BindParam, p)
		}
		for _, inner := range s.Body.Statements {
			buildStatement(info, fn, inner)
		}
	case *ast.ReturnStatement:
		if s.Value != nil {
			buildExpression(info, scope, s.Value)
		}
	case *ast.IfStatement:
		buildExpression(info, scope, s.Condition)
		for _, inner := range s.Consequence.Statements {
			buildStatement(info, scope, inner)
		}
		if s.Alternative != nil {
			buildStatement(info, scope, s.Alternative)
		}
	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			buildStatement(info, scope, inner)
		}
	case *ast.ExpressionStatement:
		buildExpression(info, scope, s.Expression)
	case *ast.ImportDeclaration:
		for _, spec := range s.Specifiers {
			scope.declare(spec.Local.Value, BindImport, spec.Local)
		}
	case *ast.ExportDeclaration:
		if s.Declaration != nil {
			buildStatement(info, scope, s.Declaration)
		}
		if s.Value != nil {
			buildExpression(info, scope, s.Value)
		}
		// Export specifier names declare nothing; they reference
		// bindings made elsewhere (or, for re-exports, nothing local).
	}
}

func buildExpression(info *Info, scope *Scope, expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.FunctionLiteral:
		fn := newScope(KindFunction, scope, e)
		info.scopes[e] = fn
		// A named function expression can call itself by name.
		if e.Name != nil {
			fn.declare(e.Name.Value, BindFunction, e.Name)
		}
		for _, p := range e.Params {
			fn.declare(p.Value, BindParam, p)
		}
		for _, inner := range e.Body.Statements {
			buildStatement(info, fn, inner)
		}
	case *ast.AssignExpression:
		buildExpression(info, scope, e.Left)
		buildExpression(info, scope, e.Value)
	case *ast.UpdateExpression:
		buildExpression(info, scope, e.Operand)
	case *ast.PrefixExpression:
		buildExpression(info, scope, e.Right)
	case *ast.InfixExpression:
		buildExpression(info, scope, e.Left)
		buildExpression(info, scope, e.Right)
	case *ast.CallExpression:
		buildExpression(info, scope, e.Function)
		for _, a := range e.Arguments {
			buildExpression(info, scope, a)
		}
	case *ast.MemberExpression:
		buildExpression(info, scope, e.Object)
	case *ast.IndexExpression:
		buildExpression(info, scope, e.Left)
		buildExpression(info, scope, e.Index)
	}
}
