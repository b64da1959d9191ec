// Package strategy implements the naming strategy used when modules
// are flattened into a single output unit: every module-level binding
// moves into a shared namespace as <moduleID><sep><name>, import and
// export declarations disappear, and references follow re-export chains
// back to the module that actually defines the value.
package strategy

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/bindings"
	"github.com/modfuse/modfuse/internal/rewriter"
	"github.com/modfuse/modfuse/internal/token"
)

// Flat is the bundle naming strategy. It is not safe for concurrent
// use; create one per rewrite invocation.
type Flat struct {
	sep  string
	ids  map[*bindings.Module]string
	used map[string]bool
}

var _ rewriter.Strategy = (*Flat)(nil)

// NewFlat builds a Flat strategy using sep between module id and name.
func NewFlat(sep string) *Flat {
	if sep == "" {
		sep = "$$"
	}
	return &Flat{
		sep:  sep,
		ids:  make(map[*bindings.Module]string),
		used: make(map[string]bool),
	}
}

// ModuleID returns the identifier-safe id assigned to mod, assigning
// one on first use. Sanitized name collisions get numeric suffixes.
func (f *Flat) ModuleID(mod *bindings.Module) string {
	if id, ok := f.ids[mod]; ok {
		return id
	}
	base := sanitize(mod.Name)
	id := base
	for i := 2; f.used[id]; i++ {
		id = fmt.Sprintf("%s%d", base, i)
	}
	f.used[id] = true
	f.ids[mod] = id
	return id
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return "module"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "_" + out
	}
	return out
}

// qualified builds the namespace identifier for name in mod, positioned
// at tok.
func (f *Flat) qualified(mod *bindings.Module, name string, tok token.Token) *ast.Identifier {
	full := f.ModuleID(mod) + f.sep + name
	return &ast.Identifier{
		Token: token.Token{Type: token.IDENT, Lexeme: full, Literal: full, Line: tok.Line, Column: tok.Column},
		Value: full,
	}
}

// resolveExport follows re-export chains until it reaches the module
// whose own declaration defines name, returning that module and the
// local name there. A nil module means name is not exported.
func (f *Flat) resolveExport(mod *bindings.Module, name string, seen map[*bindings.Module]bool) (*bindings.Module, string) {
	if mod == nil || seen[mod] {
		return nil, ""
	}
	seen[mod] = true

	spec := mod.Exports.FindSpecifierByName(name)
	if spec == nil {
		return nil, ""
	}
	if spec.Decl.HasOrigin() {
		return f.resolveExport(spec.Decl.Origin, spec.OriginName, seen)
	}
	if spec.Decl.Default {
		return mod, "default"
	}
	// export { x } where x is itself import-bound: the value lives in
	// the import's origin, keep following the chain there.
	if ispec := mod.Imports.FindSpecifierByLocalName(spec.Local); ispec != nil && ispec.Decl.Origin != nil {
		if origin, local := f.resolveExport(ispec.Decl.Origin, ispec.Remote, seen); origin != nil {
			return origin, local
		}
		return ispec.Decl.Origin, ispec.Remote
	}
	return mod, spec.Local
}

// findExportByLocal returns the export specifier binding name through a
// declaration local to mod, or nil. A name exported from an import
// binding (import { x } ...; export { x };) does not count: its value
// is declared elsewhere and must resolve as an imported reference.
func findExportByLocal(mod *bindings.Module, name string) *bindings.Specifier {
	spec := mod.Exports.FindSpecifierByLocalName(name)
	if spec == nil || spec.Decl.HasOrigin() {
		return nil
	}
	if mod.Imports.FindSpecifierByLocalName(name) != nil {
		return nil
	}
	return spec
}

// shadowed reports whether the reference resolves to a declaration
// below module scope, which hides any module-level meaning of the name.
func shadowed(ref *rewriter.Reference) bool {
	declScope := ref.DeclaringScope()
	return declScope != nil && !declScope.IsGlobal()
}

// ExportedReference qualifies a name this module exports via a local
// declaration.
func (f *Flat) ExportedReference(mod *bindings.Module, ref *rewriter.Reference) ast.Expression {
	if shadowed(ref) {
		return nil
	}
	name := ref.Name()
	if findExportByLocal(mod, name) == nil {
		return nil
	}
	return f.qualified(mod, name, ref.Identifier().Token)
}

// ImportedReference qualifies a name bound by an import specifier,
// pointing straight at the origin module's own binding.
func (f *Flat) ImportedReference(mod *bindings.Module, ref *rewriter.Reference) ast.Expression {
	if shadowed(ref) {
		return nil
	}
	spec := mod.Imports.FindSpecifierByLocalName(ref.Name())
	if spec == nil || spec.Decl.Origin == nil {
		return nil
	}
	tok := ref.Identifier().Token
	origin, local := f.resolveExport(spec.Decl.Origin, spec.Remote, make(map[*bindings.Module]bool))
	if origin == nil {
		// The origin never exports the name; qualify against the
		// direct origin so the output stays deterministic.
		return f.qualified(spec.Decl.Origin, spec.Remote, tok)
	}
	return f.qualified(origin, local, tok)
}

// LocalReference qualifies any other module-level binding being hoisted
// into the output namespace.
func (f *Flat) LocalReference(mod *bindings.Module, ref *rewriter.Reference) ast.Expression {
	if !participates(mod) {
		return nil
	}
	declScope := ref.DeclaringScope()
	if declScope == nil || !declScope.IsGlobal() {
		return nil
	}
	return f.qualified(mod, ref.Name(), ref.Identifier().Token)
}
