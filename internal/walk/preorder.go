package walk

import (
	"github.com/modfuse/modfuse/internal/ast"
)

// Preorder visits node and all its children depth-first. If visit
// returns false the children of the current node are skipped.
func Preorder(node ast.Node, visit func(ast.Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *ast.Program:
		for _, s := range n.Statements {
			Preorder(s, visit)
		}
	case *ast.VarDeclaration:
		for _, d := range n.Declarators {
			Preorder(d.Name, visit)
			if d.Init != nil {
				Preorder(d.Init, visit)
			}
		}
	case *ast.FunctionDeclaration:
		Preorder(n.Name, visit)
		for _, p := range n.Params {
			Preorder(p, visit)
		}
		Preorder(n.Body, visit)
	case *ast.ReturnStatement:
		if n.Value != nil {
			Preorder(n.Value, visit)
		}
	case *ast.IfStatement:
		Preorder(n.Condition, visit)
		Preorder(n.Consequence, visit)
		if n.Alternative != nil {
			Preorder(n.Alternative, visit)
		}
	case *ast.BlockStatement:
		for _, s := range n.Statements {
			Preorder(s, visit)
		}
	case *ast.ExpressionStatement:
		Preorder(n.Expression, visit)
	case *ast.ImportDeclaration:
		for _, sp := range n.Specifiers {
			if sp.Imported != nil {
				Preorder(sp.Imported, visit)
			}
			Preorder(sp.Local, visit)
		}
	case *ast.ExportDeclaration:
		if n.Declaration != nil {
			Preorder(n.Declaration, visit)
		}
		for _, sp := range n.Specifiers {
			Preorder(sp.Local, visit)
			if sp.Exported != nil {
				Preorder(sp.Exported, visit)
			}
		}
		if n.Value != nil {
			Preorder(n.Value, visit)
		}
	case *ast.AssignExpression:
		Preorder(n.Left, visit)
		Preorder(n.Value, visit)
	case *ast.UpdateExpression:
		Preorder(n.Operand, visit)
	case *ast.PrefixExpression:
		Preorder(n.Right, visit)
	case *ast.InfixExpression:
		Preorder(n.Left, visit)
		Preorder(n.Right, visit)
	case *ast.CallExpression:
		Preorder(n.Function, visit)
		for _, a := range n.Arguments {
			Preorder(a, visit)
		}
	case *ast.MemberExpression:
		Preorder(n.Object, visit)
		// Property names are not visited: they are not references.
	case *ast.IndexExpression:
		Preorder(n.Left, visit)
		Preorder(n.Index, visit)
	case *ast.FunctionLiteral:
		if n.Name != nil {
			Preorder(n.Name, visit)
		}
		for _, p := range n.Params {
			Preorder(p, visit)
		}
		Preorder(n.Body, visit)
	}
}
