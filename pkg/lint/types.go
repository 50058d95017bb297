package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/token"
)

// =============================================================================
// Issue
// =============================================================================

// Issue is the fixed metadata a rule attaches to every finding it reports.
// A rule builds its Issue once, when it is constructed, and never changes it.
type Issue struct {
	ID          string        // Rule identifier, e.g. "ProtectedMemberInFinalClass"
	Severity    core.Severity // Default severity
	Description string        // Message shown for each finding
	Debt        Debt          // Estimated remediation cost per finding
}

// Debt is the estimated time needed to fix one finding.
type Debt struct {
	Days  int
	Hours int
	Mins  int
}

// Common debt values.
var (
	DebtFiveMins   = Debt{Mins: 5}
	DebtTenMins    = Debt{Mins: 10}
	DebtTwentyMins = Debt{Mins: 20}
)

// Minutes returns the debt in minutes, counting a day as 24 hours.
func (d Debt) Minutes() int {
	return d.Days*24*60 + d.Hours*60 + d.Mins
}

// String renders the debt like "1d 2h 10min".
func (d Debt) String() string {
	var parts []string
	if d.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", d.Days))
	}
	if d.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", d.Hours))
	}
	if d.Mins > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dmin", d.Mins))
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// Entity
// =============================================================================

// Entity binds a finding to the declaration that caused it.
type Entity struct {
	Name      string     // Declared name
	Kind      decl.Kind  // Declaration kind
	Signature string     // Modifiers, kind and name, e.g. "protected property x"
	Path      string     // Source file path
	Span      token.Span // Location of the declaration
}

// EntityFrom derives an Entity from a declaration node.
func EntityFrom(path string, n decl.Node) Entity {
	sig := n.Kind().String() + " " + n.Name()
	if mods := n.Modifiers(); mods.Len() > 0 {
		sig = mods.String() + " " + sig
	}
	return Entity{
		Name:      n.Name(),
		Kind:      n.Kind(),
		Signature: sig,
		Path:      path,
		Span:      n.Span(),
	}
}

// Location renders "path:line:column".
func (e Entity) Location() string {
	return fmt.Sprintf("%s:%s", e.Path, e.Span.Start)
}

// =============================================================================
// CodeSmell
// =============================================================================

// CodeSmell is one reported violation.
type CodeSmell struct {
	Issue    Issue
	Entity   Entity
	Severity core.Severity // Effective severity after configuration overrides
	Message  string

	// Remediation metadata
	DocumentationURL string
}

// NewCodeSmell creates a finding for entity using the issue's defaults.
func NewCodeSmell(issue Issue, entity Entity) CodeSmell {
	return CodeSmell{
		Issue:            issue,
		Entity:           entity,
		Severity:         issue.Severity,
		Message:          issue.Description,
		DocumentationURL: BuildDocURL(issue.ID),
	}
}

// RuleID returns the identifier of the rule that reported the finding.
func (c CodeSmell) RuleID() string {
	return c.Issue.ID
}

// Pos returns the start of the flagged declaration.
func (c CodeSmell) Pos() token.Position {
	return c.Entity.Span.Start
}
