// Package walk provides pre-order traversal over the AST together with
// Path values that remember where a node sits inside its parent, so a
// node can be swapped out (or a statement spliced) long after the walk
// that discovered it has finished.
package walk

import (
	"github.com/modfuse/modfuse/internal/ast"
)

// Path is one node together with its location in the tree. Expression
// paths carry a setter for the parent field holding the node; statement
// paths carry the owning statement slice so one statement can be
// replaced by zero or more statements.
type Path struct {
	Node   ast.Node
	Parent *Path
	Field  string // Name of the parent field holding this node
	Index  int    // Position in a slice field, -1 otherwise

	setExpr func(ast.Expression)
	stmts   *[]ast.Statement
}

// ExprChild builds a path for an expression held in a parent field.
// set writes a replacement back into that field.
func ExprChild(parent *Path, node ast.Expression, field string, index int, set func(ast.Expression)) *Path {
	return &Path{Node: node, Parent: parent, Field: field, Index: index, setExpr: set}
}

// StmtChild builds a path for a statement held in owner at index.
func StmtChild(parent *Path, node ast.Statement, field string, index int, owner *[]ast.Statement) *Path {
	return &Path{Node: node, Parent: parent, Field: field, Index: index, stmts: owner}
}

// Root builds a path with no parent.
func Root(node ast.Node) *Path {
	return &Path{Node: node, Index: -1}
}

// ParentNode returns the parent's node, or nil at the root.
func (p *Path) ParentNode() ast.Node {
	if p == nil || p.Parent == nil {
		return nil
	}
	return p.Parent.Node
}

// CanReplaceExpression reports whether this path points at a swappable
// expression slot.
func (p *Path) CanReplaceExpression() bool {
	return p != nil && p.setExpr != nil
}

// CanSpliceStatements reports whether this path points at a statement
// slot that supports one-for-many replacement.
func (p *Path) CanSpliceStatements() bool {
	return p != nil && p.stmts != nil
}

// ReplaceExpression swaps the expression at this path for e.
func (p *Path) ReplaceExpression(e ast.Expression) {
	if p.setExpr == nil {
		panic("walk: path is not an expression slot")
	}
	p.setExpr(e)
}

// SpliceStatements replaces the statement at this path with repl, which
// may be empty to delete it. The original statement is located by
// identity, so earlier splices in the same list do not invalidate the
// path.
func (p *Path) SpliceStatements(repl ...ast.Statement) {
	if p.stmts == nil {
		panic("walk: path is not a statement slot")
	}
	list := *p.stmts
	for i, s := range list {
		if s == p.Node {
			out := make([]ast.Statement, 0, len(list)-1+len(repl))
			out = append(out, list[:i]...)
			out = append(out, repl...)
			out = append(out, list[i+1:]...)
			*p.stmts = out
			return
		}
	}
	// The statement was already removed; nothing to splice.
}
