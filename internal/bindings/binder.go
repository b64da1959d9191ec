package bindings

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/scopes"
)

// Bind builds a Module's import/export tables from its parsed program.
// Origin links on declarations with a source are left nil; the loader
// connects them once every module is known.
func Bind(name, path string, program *ast.Program) *Module {
	mod := &Module{
		Name:    name,
		Path:    path,
		Program: program,
		Exports: &DeclarationList{},
		Imports: &DeclarationList{},
		Scopes:  scopes.Build(program),
	}

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.ImportDeclaration:
			mod.Imports.Append(bindImport(mod, s))
		case *ast.ExportDeclaration:
			mod.Exports.Append(bindExport(mod, s))
		}
	}
	return mod
}

func bindImport(mod *Module, node *ast.ImportDeclaration) *Declaration {
	decl := &Declaration{Module: mod, Node: node, Source: node.Source.Value}
	for _, spec := range node.Specifiers {
		remote := "default"
		if !spec.Default {
			remote = spec.Imported.Value
		}
		decl.Specifiers = append(decl.Specifiers, &Specifier{
			Decl:   decl,
			Local:  spec.Local.Value,
			Remote: remote,
			Node:   spec.Local,
		})
	}
	return decl
}

func bindExport(mod *Module, node *ast.ExportDeclaration) *Declaration {
	decl := &Declaration{Module: mod, Node: node, Default: node.Default}

	switch {
	case node.Default:
		decl.Specifiers = append(decl.Specifiers, &Specifier{
			Decl:   decl,
			Remote: "default",
		})
	case node.Declaration != nil:
		// export var x = 1; / export function f() {}
		for _, name := range declaredNames(node.Declaration) {
			decl.Specifiers = append(decl.Specifiers, &Specifier{
				Decl:   decl,
				Local:  name.Value,
				Remote: name.Value,
				Node:   name,
			})
		}
	case node.Source != nil:
		// export { x as y } from "./m"; binds nothing locally.
		decl.Source = node.Source.Value
		for _, spec := range node.Specifiers {
			decl.Specifiers = append(decl.Specifiers, &Specifier{
				Decl:       decl,
				Remote:     spec.ExportedName(),
				OriginName: spec.Local.Value,
				Node:       spec.Local,
			})
		}
	default:
		// export { x, y as z };
		for _, spec := range node.Specifiers {
			decl.Specifiers = append(decl.Specifiers, &Specifier{
				Decl:   decl,
				Local:  spec.Local.Value,
				Remote: spec.ExportedName(),
				Node:   spec.Local,
			})
		}
	}
	return decl
}

// declaredNames lists the names a var or function declaration binds.
func declaredNames(stmt ast.Statement) []*ast.Identifier {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		names := make([]*ast.Identifier, 0, len(s.Declarators))
		for _, d := range s.Declarators {
			names = append(names, d.Name)
		}
		return names
	case *ast.FunctionDeclaration:
		return []*ast.Identifier{s.Name}
	}
	return nil
}
