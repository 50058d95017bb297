package lint

import (
	"sync"

	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/decl"
)

// Sink receives findings as rules report them.
type Sink interface {
	Report(smell CodeSmell)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(CodeSmell)

// Report implements Sink.
func (f SinkFunc) Report(smell CodeSmell) { f(smell) }

// Collector is a Sink that keeps every finding in report order.
// It is safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	smells []CodeSmell
}

// Report implements Sink.
func (c *Collector) Report(smell CodeSmell) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smells = append(c.smells, smell)
}

// Smells returns a copy of the collected findings.
func (c *Collector) Smells() []CodeSmell {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CodeSmell, len(c.smells))
	copy(out, c.smells)
	return out
}

// Context is handed to a rule for the analysis of one file. It carries the
// rule's options and the sink findings go to.
type Context struct {
	path string
	opts core.RuleOptions
	sink Sink
}

// NewContext creates the context for analyzing the file at path.
func NewContext(path string, opts core.RuleOptions, sink Sink) *Context {
	return &Context{path: path, opts: opts, sink: sink}
}

// Path returns the path of the file being analyzed.
func (c *Context) Path() string { return c.path }

// Options returns the rule's configured options (may be nil).
func (c *Context) Options() core.RuleOptions { return c.opts }

// Report hands a finding to the sink.
func (c *Context) Report(smell CodeSmell) {
	c.sink.Report(smell)
}

// ReportNode reports issue against node n of the current file.
func (c *Context) ReportNode(issue Issue, n decl.Node) {
	c.Report(NewCodeSmell(issue, EntityFrom(c.path, n)))
}
