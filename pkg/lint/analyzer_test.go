package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/token"
)

func sampleFile() *decl.File {
	at := func(line int) token.Span {
		return token.Span{Start: token.Position{Line: line, Column: 1}, End: token.Position{Line: line, Column: 10}}
	}
	class := decl.NewClass(decl.KindClass, "A", 0, at(1), nil, []decl.Node{
		decl.NewDecl(decl.KindProperty, "x", 0, at(2)),
		decl.NewDecl(decl.KindProperty, "y", 0, at(3)),
	})
	return decl.NewFile("A.kt", "", at(1), class)
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register(propertyRuleFactory("B1", core.SeverityWarning))
	r.Register(propertyRuleFactory("A1", core.SeverityInfo))
	return r
}

func TestAnalyzer_RunsRulesInIDOrder(t *testing.T) {
	a := NewAnalyzer(NewConfig(), WithRegistry(testRegistry()))

	require.Len(t, a.Rules(), 2)
	assert.Equal(t, "A1", a.Rules()[0].ID())

	smells, err := a.AnalyzeFile("A.kt", sampleFile())
	require.NoError(t, err)

	var got []string
	for _, s := range smells {
		got = append(got, s.RuleID()+":"+s.Entity.Name)
	}
	assert.Equal(t, []string{"A1:x", "A1:y", "B1:x", "B1:y"}, got)
}

func TestAnalyzer_DisabledRules(t *testing.T) {
	cfg := NewConfig().Disable("A1")
	a := NewAnalyzer(cfg, WithRegistry(testRegistry()))

	require.Len(t, a.Rules(), 1)
	smells, err := a.AnalyzeFile("A.kt", sampleFile())
	require.NoError(t, err)
	for _, s := range smells {
		assert.Equal(t, "B1", s.RuleID())
	}
}

func TestAnalyzer_SeverityOverride(t *testing.T) {
	cfg := NewConfig().SetSeverity("B1", core.SeverityError)
	a := NewAnalyzer(cfg, WithRegistry(testRegistry()))

	smells, err := a.AnalyzeFile("A.kt", sampleFile())
	require.NoError(t, err)
	for _, s := range smells {
		switch s.RuleID() {
		case "B1":
			assert.Equal(t, core.SeverityError, s.Severity)
			assert.Equal(t, core.SeverityWarning, s.Issue.Severity, "issue metadata is never changed")
		case "A1":
			assert.Equal(t, core.SeverityInfo, s.Severity)
		}
	}
}

func TestAnalyzer_InstantiatesRulesOnce(t *testing.T) {
	var built, visits int
	r := NewRegistry()
	r.Register(func(opts core.RuleOptions) Rule {
		built++
		rule := propertyRuleFactory("C1", core.SeverityWarning)(opts).(*propertyRule)
		rule.visits = &visits
		return rule
	})
	built = 0 // Register builds one instance for metadata

	a := NewAnalyzer(NewConfig(), WithRegistry(r))
	for i := 0; i < 3; i++ {
		_, err := a.AnalyzeFile("A.kt", sampleFile())
		require.NoError(t, err)
	}

	assert.Equal(t, 1, built)
	assert.Equal(t, 3, visits)
}

func TestAnalyzer_PassesOptions(t *testing.T) {
	var got core.RuleOptions
	r := NewRegistry()
	r.Register(func(opts core.RuleOptions) Rule {
		got = opts
		return propertyRuleFactory("D1", core.SeverityWarning)(opts)
	})

	cfg := NewConfig().SetOptions("D1", core.RuleOptions{"flag": true})
	NewAnalyzer(cfg, WithRegistry(r))
	assert.Equal(t, core.RuleOptions{"flag": true}, got)
}

func TestAnalyzer_NilFile(t *testing.T) {
	smells, err := NewAnalyzer(nil, WithRegistry(testRegistry())).AnalyzeFile("A.kt", nil)
	assert.NoError(t, err)
	assert.Nil(t, smells)
}

// brokenClass claims to be a class without implementing decl.ClassNode.
type brokenClass struct {
	decl.Node
}

func TestAnalyzer_ContractViolationIsError(t *testing.T) {
	inner := decl.NewDecl(decl.KindClass, "Broken", 0, token.Span{})
	file := decl.NewFile("A.kt", "", token.Span{}, brokenClass{Node: inner})

	smells, err := NewAnalyzer(nil, WithRegistry(testRegistry())).AnalyzeFile("A.kt", file)
	require.Error(t, err)
	assert.Nil(t, smells)
	assert.True(t, IsContractError(err))
	assert.Contains(t, err.Error(), `"Broken"`)
}

func TestAnalyzer_OtherPanicsPropagate(t *testing.T) {
	r := NewRegistry()
	r.Register(func(core.RuleOptions) Rule { return &panickyRule{Base: NewBase(RuleDef{ID: "P"})} })

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = NewAnalyzer(nil, WithRegistry(r)).AnalyzeFile("A.kt", sampleFile())
	})
}

type panickyRule struct {
	Base
}

func (r *panickyRule) Visit(decl.Node, *Context) { panic("boom") }

func TestIsContractError(t *testing.T) {
	assert.False(t, IsContractError(nil))
	assert.True(t, IsContractError(&decl.ContractError{Kind: decl.KindClass}))
}
