package prettyprinter

import (
	"testing"

	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/lexer"
	"github.com/modfuse/modfuse/internal/parser"
)

func print(t *testing.T, input string) string {
	t.Helper()
	p := parser.New(lexer.New(input))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs[0])
	}
	return New().PrintProgram(prog)
}

func TestPrintStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"var", "var x = 1;", "var x = 1;\n"},
		{"var multi", "var a = 1, b;", "var a = 1, b;\n"},
		{"call", "f(a, 1);", "f(a, 1);\n"},
		{"assign", "x = y = 1;", "x = y = 1;\n"},
		{"update", "i++; --j;", "i++;\n--j;\n"},
		{"member", "console.log(a.b);", "console.log(a.b);\n"},
		{"index", "a[0] = 1;", "a[0] = 1;\n"},
		{"string", `var s = "hi";`, "var s = \"hi\";\n"},
		{"bools and null", "var t = true, n = null;", "var t = true, n = null;\n"},
		{"float", "var f = 1.5;", "var f = 1.5;\n"},
		{"prefix", "var m = -a + !b;", "var m = -a + !b;\n"},
		{"return empty", "function f() { return; }", "function f() {\n  return;\n}\n"},
		{"empty body", "function f() {}", "function f() {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := print(t, tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintFunctionWithBody(t *testing.T) {
	got := print(t, "function add(a, b) { return a + b; }")
	want := "function add(a, b) {\n  return a + b;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintIfElseChain(t *testing.T) {
	got := print(t, "if (a < b) { f(); } else if (a > b) { g(); } else { h(); }")
	want := "if (a < b) {\n  f();\n} else if (a > b) {\n  g();\n} else {\n  h();\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrecedenceParentheses(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Grouping that matters is preserved, grouping that does not is
		// dropped.
		{"var x = (a + b) * c;", "var x = (a + b) * c;\n"},
		{"var x = a + b * c;", "var x = a + b * c;\n"},
		{"var x = a * (b + c);", "var x = a * (b + c);\n"},
		{"var x = (a + b) + c;", "var x = a + b + c;\n"},
		{"var x = a - (b - c);", "var x = a - (b - c);\n"},
		{"var x = (a == b) + 1;", "var x = (a == b) + 1;\n"},
	}

	for _, tt := range tests {
		if got := print(t, tt.input); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrintModuleDeclarations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`import { a } from "./a";`, "import { a } from \"./a\";\n"},
		{`import { a as b } from "./a";`, "import { a as b } from \"./a\";\n"},
		{`import d from "./a";`, "import d from \"./a\";\n"},
		{"export var x = 1;", "export var x = 1;\n"},
		{"export { a, b as c };", "export { a, b as c };\n"},
		{`export { x as y } from "./a";`, "export { x as y } from \"./a\";\n"},
		{"export default v;", "export default v;\n"},
	}

	for _, tt := range tests {
		if got := print(t, tt.input); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrintedOutputReparses(t *testing.T) {
	input := `var total = 0;
function step(n) {
  if (n > 0) {
    total = total + n;
  } else {
    total--;
  }
  return total;
}
step(f(1, 2)[0].value);
`
	first := print(t, input)
	second := print(t, first)
	if first != second {
		t.Errorf("print is not a fixed point:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestPrintFunctionLiteral(t *testing.T) {
	got := print(t, "var f = function g(a) { return g(a); };")
	want := "var f = function g(a) {\n  return g(a);\n};\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintEmptyProgram(t *testing.T) {
	if got := New().PrintProgram(&ast.Program{}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
