package lint

import (
	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/decl"
)

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "ProtectedMemberInFinalClass"
	ID() string

	// Name returns the human-readable name, e.g., "style.protected_member_in_final_class"
	Name() string

	// Group returns the category, e.g., "style", "complexity"
	Group() string

	// Description returns a human-readable description
	Description() string

	// Issue returns the metadata attached to every finding of this rule
	Issue() Issue

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)

	// Visit analyzes one file's declaration tree and reports findings to ctx.
	Visit(file decl.Node, ctx *Context)
}

// Factory constructs a rule from its configuration. Every rule is built through
// a Factory, including rules that have no options, so the engine can create all
// of them the same way once per analysis run.
type Factory func(opts core.RuleOptions) Rule

// RuleDef is the static description of a rule.
type RuleDef struct {
	ID          string        // Unique identifier
	Name        string        // Human-readable name
	Group       string        // Category
	Description string        // Human-readable description
	Message     string        // Finding message; defaults to Description
	Severity    core.Severity // Default severity
	Debt        Debt          // Remediation cost per finding
	ConfigKeys  []string      // Configuration keys this rule accepts

	// Documentation fields for richer rule documentation
	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// Base implements the metadata half of Rule from a RuleDef.
// Concrete rules embed it and add Visit.
type Base struct {
	def   RuleDef
	issue Issue
}

// NewBase builds the metadata for a rule instance, including its Issue.
func NewBase(def RuleDef) Base {
	msg := def.Message
	if msg == "" {
		msg = def.Description
	}
	return Base{
		def: def,
		issue: Issue{
			ID:          def.ID,
			Severity:    def.Severity,
			Description: msg,
			Debt:        def.Debt,
		},
	}
}

func (b Base) ID() string           { return b.def.ID }
func (b Base) Name() string         { return b.def.Name }
func (b Base) Group() string        { return b.def.Group }
func (b Base) Description() string  { return b.def.Description }
func (b Base) Issue() Issue         { return b.issue }
func (b Base) ConfigKeys() []string { return b.def.ConfigKeys }

// Documentation methods
func (b Base) Rationale() string   { return b.def.Rationale }
func (b Base) BadExample() string  { return b.def.BadExample }
func (b Base) GoodExample() string { return b.def.GoodExample }
func (b Base) Fix() string         { return b.def.Fix }

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	issue := r.Issue()
	return core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		Message:         issue.Description,
		DefaultSeverity: issue.Severity,
		Debt:            issue.Debt.String(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
}
