// Package cli implements the modfuse command: flatten an entry module
// and everything it imports into one output unit, or list the
// dependency order.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/modfuse/modfuse/internal/cache"
	"github.com/modfuse/modfuse/internal/config"
	"github.com/modfuse/modfuse/internal/diagnostics"
	"github.com/modfuse/modfuse/internal/modules"
	"github.com/modfuse/modfuse/internal/pipeline"
)

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("modfuse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "configuration file (default modfuse.yaml if present)")
		output     = fs.String("o", "", "output file (default stdout)")
		separator  = fs.String("sep", "", "namespace separator (default "+config.DefaultSeparator+")")
		cachePath  = fs.String("cache", "", "metadata cache file, or 'off' (default "+config.DefaultCacheFile+")")
		list       = fs.Bool("list", false, "print the dependency order instead of bundling")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *separator != "" {
		cfg.Separator = *separator
	}
	if *cachePath != "" {
		cfg.Cache = *cachePath
	}

	metadata := openCache(cfg, stderr)
	if metadata != nil {
		defer metadata.Close()
	}

	if *list {
		return runList(cfg, metadata, stdout, stderr)
	}
	return runBundle(cfg, metadata, stdout, stderr)
}

// loadConfig layers the optional config file under the command line:
// a positional argument always wins as the entry.
func loadConfig(path string, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case path != "":
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		if _, err := os.Stat(config.ConfigFileName); err == nil {
			loaded, err := config.Load(config.ConfigFileName)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		} else {
			cfg = &config.Config{}
		}
	}
	if len(args) > 0 {
		cfg.Entry = args[0]
	}
	if cfg.Entry == "" {
		return nil, fmt.Errorf("modfuse: no entry module (pass a file or set entry in %s)", config.ConfigFileName)
	}
	return cfg, nil
}

func openCache(cfg *config.Config, stderr io.Writer) *cache.Cache {
	path := cfg.Cache
	if path == "off" {
		return nil
	}
	if path == "" {
		path = config.DefaultCacheFile
	}
	c, err := cache.Open(path)
	if err != nil {
		// The cache is an optimization; a broken one must not stop
		// the build.
		fmt.Fprintf(stderr, "modfuse: cache disabled: %v\n", err)
		return nil
	}
	return c
}

func runBundle(cfg *config.Config, metadata *cache.Cache, stdout, stderr io.Writer) int {
	ctx := &pipeline.Context{
		Entry:     cfg.Entry,
		Separator: cfg.EffectiveSeparator(),
		Metadata:  metadata,
	}
	p := pipeline.New(&pipeline.LoadStage{}, &pipeline.RewriteStage{}, &pipeline.PrintStage{})
	ctx = p.Run(ctx)

	if ctx.Failed() {
		reportErrors(ctx.Errors, stderr)
		return 1
	}

	if cfg.Output == "" {
		fmt.Fprint(stdout, ctx.Output)
		return 0
	}
	if err := os.WriteFile(cfg.Output, []byte(ctx.Output), 0o644); err != nil {
		fmt.Fprintf(stderr, "modfuse: %v\n", err)
		return 1
	}
	return 0
}

func runList(cfg *config.Config, metadata *cache.Cache, stdout, stderr io.Writer) int {
	order, err := modules.ListDependencies(cfg.Entry, metadata)
	if err != nil {
		reportErrors([]*diagnostics.DiagnosticError{err}, stderr)
		return 1
	}
	for _, path := range order {
		fmt.Fprintln(stdout, path)
	}
	return 0
}

func reportErrors(errs []*diagnostics.DiagnosticError, stderr io.Writer) {
	useColor := false
	if f, ok := stderr.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, err := range errs {
		if useColor {
			fmt.Fprintf(stderr, "%serror%s: %s\n", colorRed, colorReset, err.Error())
		} else {
			fmt.Fprintf(stderr, "error: %s\n", err.Error())
		}
	}
}
