package style

import (
	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
)

func init() {
	lint.Register(NewProtectedMemberInFinalClass)
}

// ProtectedMemberInFinalClassID identifies the rule in configuration and findings.
const ProtectedMemberInFinalClassID = "ProtectedMemberInFinalClass"

// ProtectedMemberInFinalClassMessage is reported for every flagged member.
const ProtectedMemberInFinalClassMessage = "Member with protected visibility in final class is private. Consider using private or internal as modifier."

var protectedMemberInFinalClassDef = lint.RuleDef{
	ID:          ProtectedMemberInFinalClassID,
	Name:        "style.protected_member_in_final_class",
	Group:       "style",
	Description: "Protected members of a final class should be private or internal.",
	Message:     ProtectedMemberInFinalClassMessage,
	Severity:    core.SeverityWarning,
	Debt:        lint.DebtTenMins,
	Rationale: `A class that is not open, abstract or sealed cannot be subclassed, so protected
visibility grants nothing beyond private. Writing it anyway suggests the author expected
subclasses that can never exist.`,
	BadExample: `class Account {
    protected val balance: Int = 0
}`,
	GoodExample: `class Account {
    private val balance: Int = 0
}`,
	Fix: "Use private, or internal if the member is shared inside the module. Overriding members keep their visibility and are never flagged.",
}

// ProtectedMemberInFinalClass flags protected, non-overriding members of
// classes that cannot be subclassed.
type ProtectedMemberInFinalClass struct {
	lint.Base
}

// NewProtectedMemberInFinalClass creates the rule. It has no options.
func NewProtectedMemberInFinalClass(_ core.RuleOptions) lint.Rule {
	return &ProtectedMemberInFinalClass{Base: lint.NewBase(protectedMemberInFinalClassDef)}
}

// Visit walks the whole file; every class is checked on its own, whatever
// encloses it.
func (r *ProtectedMemberInFinalClass) Visit(file decl.Node, ctx *lint.Context) {
	decl.Walk(&finalClassVisitor{issue: r.Issue(), ctx: ctx}, file)
}

type finalClassVisitor struct {
	decl.BaseVisitor
	issue lint.Issue
	ctx   *lint.Context
}

func (v *finalClassVisitor) VisitClass(c decl.ClassNode) bool {
	if IsEligible(c) {
		for _, m := range Violations(ScopedMembers(c)) {
			v.ctx.ReportNode(v.issue, m)
		}
	}
	// Nested classes still get their own check.
	return true
}

// IsEligible reports whether c can never be subclassed: it carries none of
// abstract, open or sealed.
func IsEligible(c decl.ClassNode) bool {
	isNotAbstract := !c.HasModifier(decl.Abstract)
	isFinal := !c.HasModifier(decl.Open)
	isNotSealed := !c.HasModifier(decl.Sealed)
	return isNotAbstract && isFinal && isNotSealed
}

// IsViolation reports whether n is protected without overriding anything.
func IsViolation(n decl.Node) bool {
	return n.HasModifier(decl.Protected) && !n.HasModifier(decl.Override)
}

// ScopedMembers returns the declarations checked for class c, in order: the
// primary constructor, the body declarations, then the direct declarations of
// each companion object. Nested classes appear only as themselves; their
// members belong to their own check.
func ScopedMembers(c decl.ClassNode) []decl.Node {
	var members []decl.Node
	if ctor := c.PrimaryConstructor(); ctor != nil {
		members = append(members, ctor)
	}
	for _, m := range c.BodyDeclarations() {
		if m == nil {
			panic(&decl.ContractError{Kind: c.Kind(), Name: c.Name(), Message: "nil body declaration"})
		}
		members = append(members, m)
	}
	for _, companion := range c.CompanionObjects() {
		members = append(members, decl.AsClass(companion).BodyDeclarations()...)
	}
	return members
}

// Violations filters members down to those that break the rule.
func Violations(members []decl.Node) []decl.Node {
	var out []decl.Node
	for _, m := range members {
		if IsViolation(m) {
			out = append(out, m)
		}
	}
	return out
}
