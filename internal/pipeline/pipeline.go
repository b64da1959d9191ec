package pipeline

import (
	"github.com/modfuse/modfuse/internal/bindings"
	"github.com/modfuse/modfuse/internal/cache"
	"github.com/modfuse/modfuse/internal/diagnostics"
)

// Context carries state between stages of one flatten run.
type Context struct {
	Entry     string
	Separator string
	Metadata  *cache.Cache // optional

	Modules      []*bindings.Module
	Replacements int
	Output       string

	Errors []*diagnostics.DiagnosticError
}

// Failed reports whether any stage recorded an error.
func (ctx *Context) Failed() bool {
	return len(ctx.Errors) > 0
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages run even after errors so callers
// see diagnostics from every stage that can still make progress;
// stages themselves skip work whose inputs are missing.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
