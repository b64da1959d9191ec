// Package modules loads an entry module and its transitive imports,
// producing the bound module list the rewriter works on.
package modules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/bindings"
	"github.com/modfuse/modfuse/internal/cache"
	"github.com/modfuse/modfuse/internal/config"
	"github.com/modfuse/modfuse/internal/diagnostics"
	"github.com/modfuse/modfuse/internal/lexer"
	"github.com/modfuse/modfuse/internal/parser"
	"github.com/modfuse/modfuse/internal/token"
)

type pendingLink struct {
	decl *bindings.Declaration
	path string
}

// Loader resolves relative import requests starting from an entry file
// and returns modules in dependency-first discovery order (imports
// before importers, entry last). Cycles are tolerated: the cyclic edge
// is linked after both modules exist.
type Loader struct {
	metadata *cache.Cache // optional parse-metadata cache

	modules map[string]*bindings.Module
	order   []*bindings.Module
	loading map[string]bool
	links   []pendingLink
}

func NewLoader() *Loader {
	return &Loader{
		modules: make(map[string]*bindings.Module),
		loading: make(map[string]bool),
	}
}

// SetCache attaches a parse-metadata cache. Purely an optimization;
// the loader works identically without one.
func (l *Loader) SetCache(c *cache.Cache) {
	l.metadata = c
}

// Load parses entry and everything it transitively imports, links
// every declaration's origin module, and returns the module list.
// Names pulled from another module must actually be exported there.
func (l *Loader) Load(entry string) ([]*bindings.Module, *diagnostics.DiagnosticError) {
	if _, err := l.load(entry); err != nil {
		return nil, err
	}
	for _, link := range l.links {
		if dep, ok := l.modules[link.path]; ok {
			link.decl.Origin = dep
		}
	}
	for _, mod := range l.order {
		if err := checkOrigins(mod); err != nil {
			return nil, err
		}
	}
	return l.order, nil
}

// checkOrigins verifies, one hop at a time, that every name a module
// imports or re-exports is exported by its origin. Chains work out
// because each module along the chain gets the same check.
func checkOrigins(mod *bindings.Module) *diagnostics.DiagnosticError {
	for _, decl := range append(mod.Imports.Declarations(), mod.Exports.Declarations()...) {
		if decl.Origin == nil {
			continue
		}
		for _, spec := range decl.Specifiers {
			name := spec.Remote
			if spec.OriginName != "" {
				name = spec.OriginName
			}
			if decl.Origin.Exports.FindSpecifierByName(name) == nil {
				return diagnostics.NewError(diagnostics.ErrL002, spec.Node.GetToken(), name, decl.Source).WithFile(mod.Path)
			}
		}
	}
	return nil
}

func (l *Loader) load(path string) (*bindings.Module, *diagnostics.DiagnosticError) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if mod, ok := l.modules[abs]; ok {
		return mod, nil
	}
	if l.loading[abs] {
		// Cycle; the caller's origin link is resolved afterwards.
		return nil, nil
	}
	l.loading[abs] = true
	defer delete(l.loading, abs)

	source, readErr := os.ReadFile(abs)
	if readErr != nil {
		return nil, diagnostics.NewError(diagnostics.ErrL001, token.Token{}, path, readErr.Error())
	}

	prog, perr := parse(string(source), abs)
	if perr != nil {
		return nil, perr
	}

	mod := bindings.Bind(moduleName(abs), abs, prog)
	l.modules[abs] = mod
	l.storeMetadata(source, mod)

	for _, decl := range append(mod.Imports.Declarations(), mod.Exports.Declarations()...) {
		if !decl.HasOrigin() {
			continue
		}
		depPath := resolveRequest(abs, decl.Source)
		dep, derr := l.load(depPath)
		if derr != nil {
			return nil, derr
		}
		if dep != nil {
			decl.Origin = dep
		} else {
			l.links = append(l.links, pendingLink{decl: decl, path: depPath})
		}
	}

	l.order = append(l.order, mod)
	return mod, nil
}

func parse(source, file string) (*ast.Program, *diagnostics.DiagnosticError) {
	p := parser.New(lexer.New(source))
	prog := p.ParseProgram()
	prog.File = file
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0].WithFile(file)
	}
	return prog, nil
}

func (l *Loader) storeMetadata(source []byte, mod *bindings.Module) {
	if l.metadata == nil {
		return
	}
	entry := &cache.Entry{}
	for _, decl := range append(mod.Imports.Declarations(), mod.Exports.Declarations()...) {
		if decl.HasOrigin() {
			entry.Sources = append(entry.Sources, decl.Source)
		}
	}
	for _, decl := range mod.Exports.Declarations() {
		for _, spec := range decl.Specifiers {
			entry.Exports = append(entry.Exports, spec.Remote)
		}
	}
	// Best effort: a failed store never fails the load.
	_ = l.metadata.Store(cache.HashSource(source), entry)
}

// resolveRequest turns an import request into a file path relative to
// the importing module. An extensionless request tries each recognized
// source extension and takes the first file that exists, defaulting to
// the primary extension so the not-found error names a sensible path.
func resolveRequest(importer, request string) string {
	dir := filepath.Dir(importer)
	target := filepath.Join(dir, request)
	if filepath.Ext(target) != "" {
		return target
	}
	for _, ext := range config.SourceFileExtensions {
		if candidate := target + ext; sourceExists(candidate) {
			return candidate
		}
	}
	return target + config.SourceFileExt
}

func sourceExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
