package ast

import (
	"testing"

	"github.com/modfuse/modfuse/internal/token"
)

// Specifiers are tree nodes like every other AST type; traversal code
// type-switches on Node and must be able to reach them.
var (
	_ Node = (*ImportSpecifier)(nil)
	_ Node = (*ExportSpecifier)(nil)
)

func TestSpecifierNodeMethods(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Lexeme: "x", Literal: "x", Line: 1, Column: 8}

	is := &ImportSpecifier{Token: tok, Local: &Identifier{Token: tok, Value: "x"}}
	if got := is.TokenLiteral(); got != "x" {
		t.Errorf("ImportSpecifier.TokenLiteral() = %q, want x", got)
	}
	if got := is.GetToken(); got.Line != 1 || got.Column != 8 {
		t.Errorf("ImportSpecifier.GetToken() = %d:%d, want 1:8", got.Line, got.Column)
	}

	es := &ExportSpecifier{Token: tok, Local: &Identifier{Token: tok, Value: "x"}}
	if got := es.TokenLiteral(); got != "x" {
		t.Errorf("ExportSpecifier.TokenLiteral() = %q, want x", got)
	}
	if got := es.GetToken(); got.Line != 1 || got.Column != 8 {
		t.Errorf("ExportSpecifier.GetToken() = %d:%d, want 1:8", got.Line, got.Column)
	}
}

func TestSpecifierGetTokenNilReceiver(t *testing.T) {
	var is *ImportSpecifier
	var es *ExportSpecifier
	if got := is.GetToken(); got.Line != 0 {
		t.Errorf("nil ImportSpecifier.GetToken() = %+v, want zero token", got)
	}
	if got := es.GetToken(); got.Line != 0 {
		t.Errorf("nil ExportSpecifier.GetToken() = %+v, want zero token", got)
	}
}
