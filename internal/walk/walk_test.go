package walk

import (
	"testing"

	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/token"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: token.Token{Type: token.IDENT, Lexeme: name}, Value: name}
}

func exprStmt(e ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: e}
}

func TestReplaceExpression(t *testing.T) {
	stmt := exprStmt(ident("old"))
	path := ExprChild(nil, stmt.Expression, "Expression", -1, func(e ast.Expression) { stmt.Expression = e })

	if !path.CanReplaceExpression() {
		t.Fatal("CanReplaceExpression() = false, want true")
	}
	path.ReplaceExpression(ident("new"))

	got, ok := stmt.Expression.(*ast.Identifier)
	if !ok || got.Value != "new" {
		t.Errorf("expression = %v, want identifier new", stmt.Expression)
	}
}

func TestSpliceStatements(t *testing.T) {
	a, b, c := exprStmt(ident("a")), exprStmt(ident("b")), exprStmt(ident("c"))
	list := []ast.Statement{a, b, c}

	path := StmtChild(nil, b, "Statements", 1, &list)
	if !path.CanSpliceStatements() {
		t.Fatal("CanSpliceStatements() = false, want true")
	}
	r1, r2 := exprStmt(ident("r1")), exprStmt(ident("r2"))
	path.SpliceStatements(r1, r2)

	if len(list) != 4 {
		t.Fatalf("len = %d, want 4", len(list))
	}
	if list[0] != a || list[1] != ast.Statement(r1) || list[2] != ast.Statement(r2) || list[3] != c {
		t.Errorf("splice produced wrong order: %v", list)
	}
}

func TestSpliceDeletes(t *testing.T) {
	a, b := exprStmt(ident("a")), exprStmt(ident("b"))
	list := []ast.Statement{a, b}

	StmtChild(nil, a, "Statements", 0, &list).SpliceStatements()
	if len(list) != 1 || list[0] != ast.Statement(b) {
		t.Errorf("list = %v, want [b]", list)
	}
}

func TestSpliceLocatesByIdentity(t *testing.T) {
	// Paths recorded before earlier splices in the same list must still
	// find their statement, whatever its index is now.
	a, b, c := exprStmt(ident("a")), exprStmt(ident("b")), exprStmt(ident("c"))
	list := []ast.Statement{a, b, c}

	pathC := StmtChild(nil, c, "Statements", 2, &list)
	StmtChild(nil, a, "Statements", 0, &list).SpliceStatements()
	pathC.SpliceStatements(exprStmt(ident("z")))

	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	z := list[1].(*ast.ExpressionStatement).Expression.(*ast.Identifier)
	if z.Value != "z" {
		t.Errorf("list[1] = %v, want z", list[1])
	}
}

func TestSpliceOfRemovedStatementIsNoop(t *testing.T) {
	a := exprStmt(ident("a"))
	list := []ast.Statement{a}
	path := StmtChild(nil, a, "Statements", 0, &list)
	path.SpliceStatements()
	path.SpliceStatements(exprStmt(ident("again")))
	if len(list) != 0 {
		t.Errorf("len = %d, want 0", len(list))
	}
}

func TestPreorder(t *testing.T) {
	// use(a + b); visits statement, call, use, infix, a, b.
	infix := &ast.InfixExpression{Left: ident("a"), Operator: "+", Right: ident("b")}
	call := &ast.CallExpression{Function: ident("use"), Arguments: []ast.Expression{infix}}
	stmt := exprStmt(call)

	var names []string
	Preorder(stmt, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			names = append(names, id.Value)
		}
		return true
	})

	want := []string{"use", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("visited %v, want %v", names, want)
		}
	}
}

func TestPreorderSkipsSubtree(t *testing.T) {
	member := &ast.MemberExpression{Object: ident("obj"), Property: ident("prop")}
	stmt := exprStmt(&ast.CallExpression{Function: member})

	var names []string
	Preorder(stmt, func(n ast.Node) bool {
		if _, ok := n.(*ast.MemberExpression); ok {
			return false
		}
		if id, ok := n.(*ast.Identifier); ok {
			names = append(names, id.Value)
		}
		return true
	})
	if len(names) != 0 {
		t.Errorf("visited %v under a skipped subtree", names)
	}
}

func TestParentNode(t *testing.T) {
	prog := &ast.Program{}
	root := Root(prog)
	stmt := exprStmt(ident("x"))
	prog.Statements = []ast.Statement{stmt}
	child := StmtChild(root, stmt, "Statements", 0, &prog.Statements)

	if child.ParentNode() != ast.Node(prog) {
		t.Errorf("ParentNode() = %v, want the program", child.ParentNode())
	}
	if root.ParentNode() != nil {
		t.Errorf("root ParentNode() = %v, want nil", root.ParentNode())
	}
}
