package parser

import (
	"testing"

	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/diagnostics"
	"github.com/modfuse/modfuse/internal/lexer"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs[0])
	}
	return prog
}

func TestVarDeclaration(t *testing.T) {
	prog := parse(t, "var a = 1, b, c = a + 2;")
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VarDeclaration", prog.Statements[0])
	}
	if len(decl.Declarators) != 3 {
		t.Fatalf("declarators = %d, want 3", len(decl.Declarators))
	}
	if decl.Declarators[0].Name.Value != "a" {
		t.Errorf("declarators[0].Name = %q, want a", decl.Declarators[0].Name.Value)
	}
	if decl.Declarators[1].Init != nil {
		t.Errorf("declarators[1].Init = %v, want nil", decl.Declarators[1].Init)
	}
	if _, ok := decl.Declarators[2].Init.(*ast.InfixExpression); !ok {
		t.Errorf("declarators[2].Init is %T, want *ast.InfixExpression", decl.Declarators[2].Init)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := parse(t, "function add(a, b) { return a + b; }")
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionDeclaration", prog.Statements[0])
	}
	if fn.Name.Value != "add" {
		t.Errorf("name = %q, want add", fn.Name.Value)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Params))
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("body statements = %d, want 1", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStatement); !ok {
		t.Errorf("body[0] is %T, want *ast.ReturnStatement", fn.Body.Statements[0])
	}
}

func TestImportForms(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSpecs   int
		wantDefault bool
		wantSource  string
	}{
		{"named single", `import { a } from "./a";`, 1, false, "./a"},
		{"named aliased", `import { a as b, c } from "./lib";`, 2, false, "./lib"},
		{"default", `import d from "./d";`, 1, true, "./d"},
		{"empty list", `import {} from "./side";`, 0, false, "./side"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, tt.input)
			decl, ok := prog.Statements[0].(*ast.ImportDeclaration)
			if !ok {
				t.Fatalf("statement is %T, want *ast.ImportDeclaration", prog.Statements[0])
			}
			if len(decl.Specifiers) != tt.wantSpecs {
				t.Fatalf("specifiers = %d, want %d", len(decl.Specifiers), tt.wantSpecs)
			}
			if decl.Source.Value != tt.wantSource {
				t.Errorf("source = %q, want %q", decl.Source.Value, tt.wantSource)
			}
			if tt.wantDefault && !decl.Specifiers[0].Default {
				t.Errorf("specifier[0].Default = false, want true")
			}
		})
	}
}

func TestImportAlias(t *testing.T) {
	prog := parse(t, `import { a as b } from "./m";`)
	spec := prog.Statements[0].(*ast.ImportDeclaration).Specifiers[0]
	if spec.Imported.Value != "a" {
		t.Errorf("imported = %q, want a", spec.Imported.Value)
	}
	if spec.Local.Value != "b" {
		t.Errorf("local = %q, want b", spec.Local.Value)
	}
}

func TestExportForms(t *testing.T) {
	t.Run("var declaration", func(t *testing.T) {
		prog := parse(t, "export var x = 1;")
		decl := prog.Statements[0].(*ast.ExportDeclaration)
		if _, ok := decl.Declaration.(*ast.VarDeclaration); !ok {
			t.Fatalf("Declaration is %T, want *ast.VarDeclaration", decl.Declaration)
		}
	})

	t.Run("function declaration", func(t *testing.T) {
		prog := parse(t, "export function f() { return 1; }")
		decl := prog.Statements[0].(*ast.ExportDeclaration)
		if _, ok := decl.Declaration.(*ast.FunctionDeclaration); !ok {
			t.Fatalf("Declaration is %T, want *ast.FunctionDeclaration", decl.Declaration)
		}
	})

	t.Run("specifier list", func(t *testing.T) {
		prog := parse(t, "export { a, b as c };")
		decl := prog.Statements[0].(*ast.ExportDeclaration)
		if len(decl.Specifiers) != 2 {
			t.Fatalf("specifiers = %d, want 2", len(decl.Specifiers))
		}
		if decl.Specifiers[1].ExportedName() != "c" {
			t.Errorf("specifiers[1].ExportedName() = %q, want c", decl.Specifiers[1].ExportedName())
		}
		if decl.Source != nil {
			t.Errorf("Source = %v, want nil", decl.Source)
		}
	})

	t.Run("re-export", func(t *testing.T) {
		prog := parse(t, `export { x as y } from "./a";`)
		decl := prog.Statements[0].(*ast.ExportDeclaration)
		if decl.Source == nil || decl.Source.Value != "./a" {
			t.Fatalf("Source = %v, want ./a", decl.Source)
		}
		if decl.Specifiers[0].Local.Value != "x" {
			t.Errorf("Local = %q, want x", decl.Specifiers[0].Local.Value)
		}
		if decl.Specifiers[0].ExportedName() != "y" {
			t.Errorf("ExportedName() = %q, want y", decl.Specifiers[0].ExportedName())
		}
	})

	t.Run("default", func(t *testing.T) {
		prog := parse(t, "export default a + 1;")
		decl := prog.Statements[0].(*ast.ExportDeclaration)
		if !decl.Default {
			t.Fatal("Default = false, want true")
		}
		if _, ok := decl.Value.(*ast.InfixExpression); !ok {
			t.Errorf("Value is %T, want *ast.InfixExpression", decl.Value)
		}
	})
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parse(t, "a + b * c;")
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression
	infix, ok := expr.(*ast.InfixExpression)
	if !ok || infix.Operator != "+" {
		t.Fatalf("top operator = %v, want +", expr)
	}
	right, ok := infix.Right.(*ast.InfixExpression)
	if !ok || right.Operator != "*" {
		t.Fatalf("right operator = %v, want *", infix.Right)
	}
}

func TestAssignIsRightAssociative(t *testing.T) {
	prog := parse(t, "a = b = 1;")
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression
	outer, ok := expr.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("expression is %T, want *ast.AssignExpression", expr)
	}
	if _, ok := outer.Value.(*ast.AssignExpression); !ok {
		t.Fatalf("outer.Value is %T, want *ast.AssignExpression", outer.Value)
	}
}

func TestUpdateExpressions(t *testing.T) {
	prog := parse(t, "i++; --j;")
	post := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.UpdateExpression)
	if post.Prefix || post.Operator != "++" {
		t.Errorf("postfix: prefix=%v operator=%q, want postfix ++", post.Prefix, post.Operator)
	}
	pre := prog.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.UpdateExpression)
	if !pre.Prefix || pre.Operator != "--" {
		t.Errorf("prefix: prefix=%v operator=%q, want prefix --", pre.Prefix, pre.Operator)
	}
}

func TestMemberAndCall(t *testing.T) {
	prog := parse(t, "console.log(a, 1);")
	call := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	member, ok := call.Function.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("Function is %T, want *ast.MemberExpression", call.Function)
	}
	if member.Property.Value != "log" {
		t.Errorf("property = %q, want log", member.Property.Value)
	}
	if len(call.Arguments) != 2 {
		t.Errorf("arguments = %d, want 2", len(call.Arguments))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode diagnostics.Code
	}{
		{"missing semicolon", "var x = 1", diagnostics.ErrP001},
		{"missing from", `import { a } "./m";`, diagnostics.ErrP001},
		{"bad export form", "export 1;", diagnostics.ErrP001},
		{"no rule for token", "var x = ];", diagnostics.ErrP002},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(lexer.New(tt.input))
			p.ParseProgram()
			errs := p.Errors()
			if len(errs) == 0 {
				t.Fatal("expected parse errors, got none")
			}
			if errs[0].Code != tt.wantCode {
				t.Errorf("code = %s, want %s", errs[0].Code, tt.wantCode)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	p := New(lexer.New("var x =\n  ];"))
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatal("expected parse errors, got none")
	}
	if errs[0].Line != 2 {
		t.Errorf("line = %d, want 2", errs[0].Line)
	}
}
