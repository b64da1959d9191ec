package pipeline

import (
	"strings"

	"github.com/modfuse/modfuse/internal/modules"
	"github.com/modfuse/modfuse/internal/prettyprinter"
	"github.com/modfuse/modfuse/internal/rewriter"
	"github.com/modfuse/modfuse/internal/strategy"
)

// LoadStage parses the entry module and its transitive imports.
type LoadStage struct{}

func (s *LoadStage) Process(ctx *Context) *Context {
	loader := modules.NewLoader()
	if ctx.Metadata != nil {
		loader.SetCache(ctx.Metadata)
	}
	mods, err := loader.Load(ctx.Entry)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Modules = mods
	return ctx
}

// RewriteStage runs the reference rewriter over the loaded modules.
type RewriteStage struct{}

func (s *RewriteStage) Process(ctx *Context) *Context {
	if ctx.Modules == nil {
		return ctx
	}
	rw := rewriter.New(strategy.NewFlat(ctx.Separator))
	count, err := rw.Rewrite(ctx.Modules)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Replacements = count
	return ctx
}

// PrintStage concatenates the rewritten modules into the output unit.
type PrintStage struct{}

func (s *PrintStage) Process(ctx *Context) *Context {
	if ctx.Modules == nil || ctx.Failed() {
		return ctx
	}
	printer := prettyprinter.New()
	var parts []string
	for _, mod := range ctx.Modules {
		text := printer.PrintProgram(mod.Program)
		if strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, text)
	}
	ctx.Output = strings.Join(parts, "\n")
	return ctx
}
