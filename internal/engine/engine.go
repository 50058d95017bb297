// Package engine discovers Kotlin sources, parses them and runs the lint
// analyzer over every file.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/ktsmell/pkg/lint"
	"github.com/leapstack-labs/ktsmell/pkg/parser"
)

// Engine lints Kotlin files with one Analyzer.
type Engine struct {
	analyzer    *lint.Analyzer
	include     []string
	exclude     []string
	concurrency int
	logger      *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Include holds glob patterns a file must match to be linted
	Include []string
	// Exclude holds glob patterns for files and directories to skip
	Exclude []string
	// Concurrency bounds the number of files analyzed at once (0 = GOMAXPROCS)
	Concurrency int
	// Lint configures the rules (nil enables every rule with defaults)
	Lint *lint.Config
	// Registry overrides the global rule registry (optional)
	Registry *lint.Registry
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. Rules are instantiated here, once, and reused for
// every file linted by the engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	include := cfg.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	exclude := cfg.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	opts := []lint.Option{lint.WithLogger(logger)}
	if cfg.Registry != nil {
		opts = append(opts, lint.WithRegistry(cfg.Registry))
	}
	analyzer := lint.NewAnalyzer(cfg.Lint, opts...)

	logger.Debug("initializing engine", "rules", len(analyzer.Rules()), "concurrency", concurrency)

	return &Engine{
		analyzer:    analyzer,
		include:     include,
		exclude:     exclude,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Analyzer returns the analyzer used by the engine.
func (e *Engine) Analyzer() *lint.Analyzer {
	return e.analyzer
}

// Exclude returns the exclude patterns in effect, defaults included.
func (e *Engine) Exclude() []string {
	return e.exclude
}

// FileResult holds the outcome of linting one file.
type FileResult struct {
	Path   string
	Smells []lint.CodeSmell
	// ParseError is set when the file could not be parsed. Such files have
	// no smells and do not stop the run.
	ParseError error
}

// Report is the outcome of one lint run.
type Report struct {
	Files    []FileResult // sorted by path
	Duration time.Duration
}

// Smells returns every finding of the run in file order.
func (r *Report) Smells() []lint.CodeSmell {
	var out []lint.CodeSmell
	for _, f := range r.Files {
		out = append(out, f.Smells...)
	}
	return out
}

// SmellCount returns the number of findings.
func (r *Report) SmellCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Smells)
	}
	return n
}

// ParseErrors returns the files that failed to parse.
func (r *Report) ParseErrors() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.ParseError != nil {
			out = append(out, f)
		}
	}
	return out
}

// Filter returns a copy of the report keeping only findings whose severity
// is at least threshold.
func (r *Report) Filter(threshold lint.Severity) *Report {
	out := &Report{Duration: r.Duration, Files: make([]FileResult, 0, len(r.Files))}
	for _, f := range r.Files {
		kept := FileResult{Path: f.Path, ParseError: f.ParseError}
		for _, s := range f.Smells {
			if s.Severity.AtLeast(threshold) {
				kept.Smells = append(kept.Smells, s)
			}
		}
		out.Files = append(out.Files, kept)
	}
	return out
}

// Lint discovers the Kotlin files under paths and lints them.
func (e *Engine) Lint(ctx context.Context, paths ...string) (*Report, error) {
	files, err := e.Discover(paths...)
	if err != nil {
		return nil, err
	}
	return e.LintFiles(ctx, files)
}

// LintFiles lints the given files concurrently. A file that cannot be read
// or breaks the declaration contract aborts the run; a file that fails to
// parse is recorded in its FileResult and the run continues.
func (e *Engine) LintFiles(ctx context.Context, files []string) (*Report, error) {
	start := time.Now()
	e.logger.Info("starting lint", "files", len(files))

	results := make([]FileResult, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			src, err := os.ReadFile(path) //nolint:gosec // G304: path comes from discovery or the command line
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			res, err := e.LintSource(path, src)
			if err != nil {
				return err
			}

			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	report := &Report{Files: results, Duration: time.Since(start)}

	e.logger.Info("lint completed",
		"files", len(files),
		"smells", report.SmellCount(),
		"parse_errors", len(report.ParseErrors()),
		"duration_ms", report.Duration.Milliseconds())

	return report, nil
}

// LintSource parses and lints a single source text.
func (e *Engine) LintSource(path string, src []byte) (FileResult, error) {
	file, err := parser.Parse(path, src)
	if err != nil {
		e.logger.Debug("parse error", "path", path, "error", err.Error())
		return FileResult{Path: path, ParseError: err}, nil
	}

	smells, err := e.analyzer.AnalyzeFile(path, file)
	if err != nil {
		return FileResult{}, err
	}

	e.logger.Debug("linted file", "path", path, "smells", len(smells))
	return FileResult{Path: path, Smells: smells}, nil
}
