package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/modfuse/modfuse/internal/ast"
)

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"==": 1,
	"!=": 1,
	"<":  2,
	">":  2,
	"<=": 2,
	">=": 2,
	"+":  3,
	"-":  3,
	"*":  4,
	"/":  4,
	"%":  4,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 5 // Default high precedence for unknown ops
}

// CodePrinter renders an AST back to source text.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func New() *CodePrinter {
	return &CodePrinter{}
}

// PrintProgram renders every statement of prog and returns the text.
func (cp *CodePrinter) PrintProgram(prog *ast.Program) string {
	cp.buf.Reset()
	cp.indent = 0
	for _, stmt := range prog.Statements {
		cp.printStatement(stmt)
	}
	return cp.buf.String()
}

func (cp *CodePrinter) write(s string) {
	cp.buf.WriteString(s)
}

func (cp *CodePrinter) writeIndent() {
	cp.buf.WriteString(strings.Repeat("  ", cp.indent))
}

func (cp *CodePrinter) printStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		cp.writeIndent()
		cp.printVarDeclaration(s)
		cp.write("\n")
	case *ast.FunctionDeclaration:
		cp.writeIndent()
		cp.write("function " + s.Name.Value + "(")
		cp.printParams(s.Params)
		cp.write(") ")
		cp.printBlock(s.Body)
		cp.write("\n")
	case *ast.ReturnStatement:
		cp.writeIndent()
		if s.Value == nil {
			cp.write("return;\n")
		} else {
			cp.write("return ")
			cp.printExpression(s.Value, 0)
			cp.write(";\n")
		}
	case *ast.IfStatement:
		cp.writeIndent()
		cp.printIf(s)
		cp.write("\n")
	case *ast.BlockStatement:
		cp.writeIndent()
		cp.printBlock(s)
		cp.write("\n")
	case *ast.ExpressionStatement:
		cp.writeIndent()
		cp.printExpression(s.Expression, 0)
		cp.write(";\n")
	case *ast.ImportDeclaration:
		cp.writeIndent()
		cp.printImport(s)
		cp.write("\n")
	case *ast.ExportDeclaration:
		cp.writeIndent()
		cp.printExport(s)
		cp.write("\n")
	}
}

func (cp *CodePrinter) printVarDeclaration(s *ast.VarDeclaration) {
	cp.write("var ")
	for i, d := range s.Declarators {
		if i > 0 {
			cp.write(", ")
		}
		cp.write(d.Name.Value)
		if d.Init != nil {
			cp.write(" = ")
			cp.printExpression(d.Init, 0)
		}
	}
	cp.write(";")
}

func (cp *CodePrinter) printIf(s *ast.IfStatement) {
	cp.write("if (")
	cp.printExpression(s.Condition, 0)
	cp.write(") ")
	cp.printBlock(s.Consequence)
	if s.Alternative != nil {
		cp.write(" else ")
		switch alt := s.Alternative.(type) {
		case *ast.IfStatement:
			cp.printIf(alt)
		case *ast.BlockStatement:
			cp.printBlock(alt)
		}
	}
}

func (cp *CodePrinter) printBlock(b *ast.BlockStatement) {
	if len(b.Statements) == 0 {
		cp.write("{}")
		return
	}
	cp.write("{\n")
	cp.indent++
	for _, stmt := range b.Statements {
		cp.printStatement(stmt)
	}
	cp.indent--
	cp.writeIndent()
	cp.write("}")
}

func (cp *CodePrinter) printParams(params []*ast.Identifier) {
	for i, p := range params {
		if i > 0 {
			cp.write(", ")
		}
		cp.write(p.Value)
	}
}

func (cp *CodePrinter) printImport(s *ast.ImportDeclaration) {
	cp.write("import ")
	if len(s.Specifiers) == 1 && s.Specifiers[0].Default {
		cp.write(s.Specifiers[0].Local.Value)
	} else {
		cp.write("{ ")
		for i, spec := range s.Specifiers {
			if i > 0 {
				cp.write(", ")
			}
			if spec.Imported != nil && spec.Imported.Value != spec.Local.Value {
				cp.write(spec.Imported.Value + " as " + spec.Local.Value)
			} else {
				cp.write(spec.Local.Value)
			}
		}
		cp.write(" }")
	}
	cp.write(" from " + strconv.Quote(s.Source.Value) + ";")
}

func (cp *CodePrinter) printExport(s *ast.ExportDeclaration) {
	cp.write("export ")
	switch {
	case s.Default:
		cp.write("default ")
		cp.printExpression(s.Value, 0)
		cp.write(";")
	case s.Declaration != nil:
		switch decl := s.Declaration.(type) {
		case *ast.VarDeclaration:
			cp.printVarDeclaration(decl)
		case *ast.FunctionDeclaration:
			cp.write("function " + decl.Name.Value + "(")
			cp.printParams(decl.Params)
			cp.write(") ")
			cp.printBlock(decl.Body)
		}
	default:
		cp.write("{ ")
		for i, spec := range s.Specifiers {
			if i > 0 {
				cp.write(", ")
			}
			cp.write(spec.Local.Value)
			if spec.Exported != nil {
				cp.write(" as " + spec.Exported.Value)
			}
		}
		cp.write(" }")
		if s.Source != nil {
			cp.write(" from " + strconv.Quote(s.Source.Value))
		}
		cp.write(";")
	}
}

// printExpression renders e, parenthesizing when the context binds
// tighter than e's operator.
func (cp *CodePrinter) printExpression(e ast.Expression, parentPrec int) {
	switch x := e.(type) {
	case *ast.Identifier:
		cp.write(x.Value)
	case *ast.NumberLiteral:
		cp.write(formatNumber(x.Value))
	case *ast.StringLiteral:
		cp.write(strconv.Quote(x.Value))
	case *ast.BooleanLiteral:
		cp.write(strconv.FormatBool(x.Value))
	case *ast.NullLiteral:
		cp.write("null")
	case *ast.AssignExpression:
		needParens := parentPrec > 0
		if needParens {
			cp.write("(")
		}
		cp.printExpression(x.Left, 0)
		cp.write(" = ")
		cp.printExpression(x.Value, 0)
		if needParens {
			cp.write(")")
		}
	case *ast.UpdateExpression:
		if x.Prefix {
			cp.write(x.Operator)
			cp.printExpression(x.Operand, 6)
		} else {
			cp.printExpression(x.Operand, 6)
			cp.write(x.Operator)
		}
	case *ast.PrefixExpression:
		cp.write(x.Operator)
		cp.printExpression(x.Right, 6)
	case *ast.InfixExpression:
		prec := getPrecedence(x.Operator)
		if prec < parentPrec {
			cp.write("(")
		}
		cp.printExpression(x.Left, prec)
		cp.write(" " + x.Operator + " ")
		cp.printExpression(x.Right, prec+1)
		if prec < parentPrec {
			cp.write(")")
		}
	case *ast.CallExpression:
		cp.printExpression(x.Function, 6)
		cp.write("(")
		for i, arg := range x.Arguments {
			if i > 0 {
				cp.write(", ")
			}
			cp.printExpression(arg, 0)
		}
		cp.write(")")
	case *ast.MemberExpression:
		cp.printExpression(x.Object, 6)
		cp.write("." + x.Property.Value)
	case *ast.IndexExpression:
		cp.printExpression(x.Left, 6)
		cp.write("[")
		cp.printExpression(x.Index, 0)
		cp.write("]")
	case *ast.FunctionLiteral:
		cp.write("function ")
		if x.Name != nil {
			cp.write(x.Name.Value)
		}
		cp.write("(")
		cp.printParams(x.Params)
		cp.write(") ")
		cp.printBlock(x.Body)
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%g", v)
}
