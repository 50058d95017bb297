package lint

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ktsmell/pkg/decl"
)

// Analyzer runs lint rules against parsed declaration trees.
//
// Rules are constructed once, when the analyzer is created, and then shared by
// every file it analyzes. Rules keep no state between Visit calls, so an
// Analyzer may be used from several goroutines at once.
type Analyzer struct {
	config *Config
	rules  []Rule
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*analyzerOptions)

type analyzerOptions struct {
	registry *Registry
	logger   *slog.Logger
}

// WithRegistry builds rules from r instead of the global registry.
func WithRegistry(r *Registry) Option {
	return func(o *analyzerOptions) { o.registry = r }
}

// WithLogger sets the logger used for per-rule debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *analyzerOptions) { o.logger = l }
}

// NewAnalyzer creates an analyzer with every enabled rule instantiated
// from its factory with the configured options.
func NewAnalyzer(config *Config, opts ...Option) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	o := analyzerOptions{registry: globalRegistry}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	a := &Analyzer{config: config, logger: o.logger}
	for _, id := range o.registry.IDs() {
		if config.IsDisabled(id) {
			continue
		}
		factory, _ := o.registry.Factory(id)
		a.rules = append(a.rules, factory(config.GetOptions(id)))
	}
	return a
}

// Rules returns the active rules in ID order.
func (a *Analyzer) Rules() []Rule {
	return a.rules
}

// AnalyzeFile runs all active rules over one file's tree and returns the
// findings in rule order, then report order. A tree that breaks the
// declaration contract aborts the analysis with a *decl.ContractError.
func (a *Analyzer) AnalyzeFile(path string, file decl.Node) ([]CodeSmell, error) {
	if file == nil {
		return nil, nil
	}

	var smells []CodeSmell
	for _, rule := range a.rules {
		found, err := a.runRule(rule, path, file)
		if err != nil {
			return nil, fmt.Errorf("rule %s on %s: %w", rule.ID(), path, err)
		}

		// Apply severity overrides
		for i := range found {
			found[i].Severity = a.config.GetSeverity(rule.ID(), found[i].Severity)
		}

		a.logger.Debug("rule finished", slog.String("rule", rule.ID()), slog.String("path", path), slog.Int("findings", len(found)))
		smells = append(smells, found...)
	}
	return smells, nil
}

// runRule visits file with one rule, turning a contract panic into an error.
func (a *Analyzer) runRule(rule Rule, path string, file decl.Node) (smells []CodeSmell, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*decl.ContractError); ok {
				smells, err = nil, ce
				return
			}
			panic(r)
		}
	}()

	collector := &Collector{}
	rule.Visit(file, NewContext(path, a.config.GetOptions(rule.ID()), collector))
	return collector.Smells(), nil
}

// IsContractError reports whether err stems from a malformed declaration tree.
func IsContractError(err error) bool {
	var ce *decl.ContractError
	return errors.As(err, &ce)
}
