package parser

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/token"
)

// parseImportDeclaration handles both import forms:
//
//	import d from "./m";
//	import { a, b as c } from "./m";
func (p *Parser) parseImportDeclaration() *ast.ImportDeclaration {
	decl := &ast.ImportDeclaration{Token: p.curToken}

	if p.peekTokenIs(token.IDENT) {
		// Default import binds the module's default export.
		p.nextToken()
		local := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		decl.Specifiers = append(decl.Specifiers, &ast.ImportSpecifier{
			Token:   p.curToken,
			Local:   local,
			Default: true,
		})
	} else {
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		decl.Specifiers = p.parseImportSpecifiers()
		if decl.Specifiers == nil {
			return nil
		}
	}

	if !p.expectPeek(token.FROM) {
		return nil
	}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	decl.Source = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return decl
}

// parseImportSpecifiers parses the braced clause list after '{'.
func (p *Parser) parseImportSpecifiers() []*ast.ImportSpecifier {
	specs := []*ast.ImportSpecifier{}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return specs
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		spec := &ast.ImportSpecifier{Token: p.curToken}
		imported := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			spec.Imported = imported
			spec.Local = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		} else {
			spec.Imported = imported
			spec.Local = &ast.Identifier{Token: imported.Token, Value: imported.Value}
		}
		specs = append(specs, spec)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return specs
}

// parseExportDeclaration handles every export statement form:
//
//	export var x = 1;
//	export function f() {}
//	export { a, b as c };
//	export { a } from "./m";
//	export default expr;
func (p *Parser) parseExportDeclaration() *ast.ExportDeclaration {
	decl := &ast.ExportDeclaration{Token: p.curToken}

	switch p.peekToken.Type {
	case token.DEFAULT:
		p.nextToken()
		p.nextToken()
		decl.Default = true
		decl.Value = p.parseExpression(LOWEST)
		if decl.Value == nil {
			return nil
		}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	case token.VAR:
		p.nextToken()
		decl.Declaration = p.parseVarDeclaration()
		if decl.Declaration == nil {
			return nil
		}
	case token.FUNCTION:
		p.nextToken()
		decl.Declaration = p.parseFunctionDeclaration()
		if decl.Declaration == nil {
			return nil
		}
	case token.LBRACE:
		p.nextToken()
		decl.Specifiers = p.parseExportSpecifiers()
		if decl.Specifiers == nil {
			return nil
		}
		if p.peekTokenIs(token.FROM) {
			p.nextToken()
			if !p.expectPeek(token.STRING) {
				return nil
			}
			decl.Source = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
		}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	default:
		p.errors = append(p.errors, newUnexpected(p.peekToken, "var, function, default or {"))
		return nil
	}
	return decl
}

func (p *Parser) parseExportSpecifiers() []*ast.ExportSpecifier {
	specs := []*ast.ExportSpecifier{}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return specs
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		spec := &ast.ExportSpecifier{
			Token: p.curToken,
			Local: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			spec.Exported = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		}
		specs = append(specs, spec)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return specs
}
