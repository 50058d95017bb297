// Package lint provides the rule framework for Kotlin declaration linting.
//
// # Architecture
//
//  1. Root package (pkg/lint/): the Rule contract, the registry, configuration and the Analyzer
//  2. Rule packages (pkg/lint/rules/...): rule implementations grouped by category
//
// A rule receives one file's declaration tree (see pkg/decl) together with a
// Context and reports CodeSmell values through it. Every finding carries the
// rule's Issue, an Entity naming the flagged declaration and the effective
// severity.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/ktsmell/pkg/lint/rules"
//
// A rule is registered as a Factory. The Analyzer calls each factory once,
// with the rule's configured options, and reuses the instance for every file.
//
// # Using the Registry
//
//	infos := lint.AllRules()
//	info, ok := lint.GetByID("ProtectedMemberInFinalClass")
//	style := lint.GetByGroup("style")
//
// # Configuration
//
// Use Config to control which rules are enabled, their severity and options:
//
//	config := lint.NewConfig()
//	config.Disable("LongParameterList")
//	config.SetSeverity("ProtectedMemberInFinalClass", core.SeverityError)
//	config.SetOptions("LongParameterList", core.RuleOptions{"threshold": 7})
//
// # Creating Custom Rules
//
// Embed Base for the metadata and implement Visit:
//
//	type MyRule struct{ lint.Base }
//
//	func NewMyRule(_ core.RuleOptions) lint.Rule {
//		return &MyRule{Base: lint.NewBase(lint.RuleDef{
//			ID:       "MyRule",
//			Group:    "custom",
//			Severity: core.SeverityWarning,
//			Debt:     lint.DebtFiveMins,
//		})}
//	}
//
//	func (r *MyRule) Visit(file decl.Node, ctx *lint.Context) { ... }
//
//	func init() {
//		lint.Register(NewMyRule)
//	}
package lint
