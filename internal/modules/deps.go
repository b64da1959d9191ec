package modules

import (
	"os"
	"path/filepath"

	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/cache"
	"github.com/modfuse/modfuse/internal/diagnostics"
	"github.com/modfuse/modfuse/internal/token"
)

// ListDependencies returns entry's transitive dependency files in
// dependency-first order without retaining parsed trees. When a cache
// is supplied, unchanged files resolve from stored metadata and skip
// the parser entirely.
func ListDependencies(entry string, c *cache.Cache) ([]string, *diagnostics.DiagnosticError) {
	lister := &depLister{
		metadata: c,
		visited:  make(map[string]bool),
	}
	if err := lister.visit(entry); err != nil {
		return nil, err
	}
	return lister.order, nil
}

type depLister struct {
	metadata *cache.Cache
	visited  map[string]bool
	order    []string
}

func (dl *depLister) visit(path string) *diagnostics.DiagnosticError {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if dl.visited[abs] {
		return nil
	}
	dl.visited[abs] = true

	sources, derr := dl.sourcesOf(abs)
	if derr != nil {
		return derr
	}
	for _, request := range sources {
		if err := dl.visit(resolveRequest(abs, request)); err != nil {
			return err
		}
	}
	dl.order = append(dl.order, abs)
	return nil
}

// sourcesOf returns the import requests of the file at abs, from the
// cache when its content hash is known, otherwise by parsing.
func (dl *depLister) sourcesOf(abs string) ([]string, *diagnostics.DiagnosticError) {
	source, readErr := os.ReadFile(abs)
	if readErr != nil {
		return nil, diagnostics.NewError(diagnostics.ErrL001, token.Token{}, abs, readErr.Error())
	}

	hash := cache.HashSource(source)
	if dl.metadata != nil {
		if entry, ok := dl.metadata.Lookup(hash); ok {
			return entry.Sources, nil
		}
	}

	prog, perr := parse(string(source), abs)
	if perr != nil {
		return nil, perr
	}

	var requests []string
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.ImportDeclaration:
			requests = append(requests, s.Source.Value)
		case *ast.ExportDeclaration:
			if s.Source != nil {
				requests = append(requests, s.Source.Value)
			}
		}
	}
	if dl.metadata != nil {
		_ = dl.metadata.Store(hash, &cache.Entry{Sources: requests})
	}
	return requests, nil
}
