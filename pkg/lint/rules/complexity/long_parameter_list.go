package complexity

import (
	"fmt"

	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
)

func init() {
	lint.Register(NewLongParameterList)
}

// LongParameterListID identifies the rule.
const LongParameterListID = "LongParameterList"

// DefaultParameterThreshold is the largest parameter count accepted without a finding.
const DefaultParameterThreshold = 5

var longParameterListDef = lint.RuleDef{
	ID:          LongParameterListID,
	Name:        "complexity.long_parameter_list",
	Group:       "complexity",
	Description: "Functions should not take more parameters than the configured threshold.",
	Message:     "The function has too many parameters. Consider grouping them into a class.",
	Severity:    core.SeverityWarning,
	Debt:        lint.DebtTwentyMins,
	ConfigKeys:  []string{"threshold"},
	Rationale: `Long parameter lists are hard to read and easy to call with arguments in the
wrong order. They usually mean the function does too much or that some
parameters belong together.`,
	BadExample: `fun send(host: String, port: Int, user: String, password: String, retries: Int, timeout: Long) {}`,
	GoodExample: `data class Endpoint(val host: String, val port: Int)
data class Credentials(val user: String, val password: String)

fun send(endpoint: Endpoint, credentials: Credentials, retries: Int, timeout: Long) {}`,
}

// LongParameterList flags functions whose parameter count exceeds a threshold.
type LongParameterList struct {
	lint.Base
	threshold int
}

// NewLongParameterList creates the rule. Option "threshold" sets the
// largest accepted parameter count.
func NewLongParameterList(opts core.RuleOptions) lint.Rule {
	threshold := lint.GetIntOption(opts, "threshold", DefaultParameterThreshold)
	if threshold < 0 {
		threshold = DefaultParameterThreshold
	}
	return &LongParameterList{
		Base:      lint.NewBase(longParameterListDef),
		threshold: threshold,
	}
}

// Threshold returns the configured parameter limit.
func (r *LongParameterList) Threshold() int { return r.threshold }

func (r *LongParameterList) Visit(file decl.Node, ctx *lint.Context) {
	decl.Walk(&parameterVisitor{rule: r, ctx: ctx}, file)
}

type parameterVisitor struct {
	decl.BaseVisitor
	rule *LongParameterList
	ctx  *lint.Context
}

func (v *parameterVisitor) VisitFunction(n decl.Node) bool {
	if count := len(decl.Parameters(n)); count > v.rule.threshold {
		smell := lint.NewCodeSmell(v.rule.Issue(), lint.EntityFrom(v.ctx.Path(), n))
		smell.Message = fmt.Sprintf("%s has %d parameters, more than the threshold of %d.", n.Name(), count, v.rule.threshold)
		v.ctx.Report(smell)
	}
	return true
}
