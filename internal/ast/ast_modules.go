package ast

import (
	"github.com/modfuse/modfuse/internal/token"
)

// ImportSpecifier is one clause of an import declaration.
// import { a, b as c } from "./m" has two specifiers; the second maps
// remote b to local c. A default import (import d from "./m") has
// Default set and no Imported identifier.
type ImportSpecifier struct {
	Token    token.Token
	Imported *Identifier // Remote name; nil for default imports
	Local    *Identifier // The name bound in this module
	Default  bool
}

func (is *ImportSpecifier) TokenLiteral() string { return is.Token.Lexeme }
func (is *ImportSpecifier) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// ImportDeclaration represents an import statement.
// import { a, b as c } from "./m";
type ImportDeclaration struct {
	Token      token.Token // The 'import' token
	Specifiers []*ImportSpecifier
	Source     *StringLiteral
}

func (id *ImportDeclaration) statementNode()       {}
func (id *ImportDeclaration) TokenLiteral() string { return id.Token.Lexeme }
func (id *ImportDeclaration) GetToken() token.Token {
	if id == nil {
		return token.Token{}
	}
	return id.Token
}

// ExportSpecifier is one clause of an export list.
// export { a, b as c } has two specifiers; the second exposes local b
// under the external name c.
type ExportSpecifier struct {
	Token    token.Token
	Local    *Identifier // The source-side name
	Exported *Identifier // Optional alias; nil means exported under Local's name
}

func (es *ExportSpecifier) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExportSpecifier) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// ExportedName returns the name this specifier exposes externally.
func (es *ExportSpecifier) ExportedName() string {
	if es.Exported != nil {
		return es.Exported.Value
	}
	return es.Local.Value
}

// ExportDeclaration represents any of the export statement forms:
//
//	export var x = 1;            Declaration set
//	export function f() {}       Declaration set
//	export { a, b as c };        Specifiers set
//	export { a } from "./m";     Specifiers + Source set (no local binding)
//	export default expr;         Default + Value set
type ExportDeclaration struct {
	Token       token.Token // The 'export' token
	Default     bool
	Declaration Statement // Inner var/function declaration, if any
	Specifiers  []*ExportSpecifier
	Source      *StringLiteral // Origin module request for re-exports
	Value       Expression     // The default-exported expression
}

func (ed *ExportDeclaration) statementNode()       {}
func (ed *ExportDeclaration) TokenLiteral() string { return ed.Token.Lexeme }
func (ed *ExportDeclaration) GetToken() token.Token {
	if ed == nil {
		return token.Token{}
	}
	return ed.Token
}
