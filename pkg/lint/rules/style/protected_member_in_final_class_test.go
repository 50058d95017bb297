package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
	"github.com/leapstack-labs/ktsmell/pkg/lint/rules/style"
	"github.com/leapstack-labs/ktsmell/pkg/parser"
	"github.com/leapstack-labs/ktsmell/pkg/token"
)

func newAnalyzer() *lint.Analyzer {
	reg := lint.NewRegistry()
	reg.Register(style.NewProtectedMemberInFinalClass)
	return lint.NewAnalyzer(lint.NewConfig(), lint.WithRegistry(reg))
}

// Helper to parse and lint a source snippet
func lintSource(t *testing.T, src string) []lint.CodeSmell {
	t.Helper()
	file, err := parser.ParseString("Test.kt", src)
	require.NoError(t, err)

	smells, err := newAnalyzer().AnalyzeFile("Test.kt", file)
	require.NoError(t, err)
	return smells
}

func names(smells []lint.CodeSmell) []string {
	var out []string
	for _, s := range smells {
		out = append(out, s.Entity.Name)
	}
	return out
}

func TestProtectedMemberInFinalClass(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string // flagged member names, in report order
	}{
		{
			name: "final class with protected property",
			src:  "class A { protected val x: Int }",
			want: []string{"x"},
		},
		{
			name: "open class",
			src:  "open class B { protected val x: Int }",
		},
		{
			name: "abstract class",
			src:  "abstract class C { protected val x: Int }",
		},
		{
			name: "sealed class",
			src:  "sealed class D { protected val x: Int }",
		},
		{
			name: "overriding member",
			src:  "class E : F() { protected override val x: Int }",
		},
		{
			name: "companion object member",
			src:  "class G { companion object { protected val y: Int } }",
			want: []string{"y"},
		},
		{
			name: "companion object in open class",
			src:  "open class G { companion object { protected val y: Int } }",
		},
		{
			name: "protected primary constructor",
			src:  "class H protected constructor(val a: Int)",
			want: []string{"H"},
		},
		{
			name: "primary constructor parameters are not members of the check",
			src:  "class J(protected val x: Int)",
		},
		{
			name: "one finding per member in source order",
			src: `class K {
    protected fun a() {}
    private val b = 1
    protected var c = 2
    protected override fun d() {}
    protected class L
}`,
			want: []string{"a", "c", "L"},
		},
		{
			name: "final class nested in open class is still checked",
			src: `open class Outer {
    protected val kept = 1
    class Inner {
        protected val flagged = 2
    }
}`,
			want: []string{"flagged"},
		},
		{
			name: "open class nested in final class is skipped",
			src: `class Outer {
    protected val flagged = 1
    open class Inner {
        protected val kept = 2
    }
}`,
			want: []string{"flagged"},
		},
		{
			name: "class nested in companion object",
			src: `open class Outer {
    companion object {
        class Inner {
            protected fun f() {}
        }
    }
}`,
			want: []string{"f"},
		},
		{
			name: "interfaces and objects are not classes",
			src: `interface I { protected fun f() }
object O { protected val x = 1 }`,
		},
		{
			name: "enum class",
			src:  "enum class Color { RED; protected fun hex() = 0 }",
			want: []string{"hex"},
		},
		{
			name: "protected companion object itself",
			src:  "class M { protected companion object { val z = 1 } }",
			want: []string{"Companion"},
		},
		{
			name: "protected secondary constructor",
			src:  "class N(val v: Int) { protected constructor() : this(0) }",
			want: []string{"N"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			smells := lintSource(t, tt.src)
			assert.Equal(t, tt.want, names(smells))
		})
	}
}

func TestProtectedMemberInFinalClass_Finding(t *testing.T) {
	smells := lintSource(t, "class A {\n    protected val x: Int = 1\n}\n")
	require.Len(t, smells, 1)

	s := smells[0]
	assert.Equal(t, "ProtectedMemberInFinalClass", s.RuleID())
	assert.Equal(t, core.SeverityWarning, s.Severity)
	assert.Equal(t, style.ProtectedMemberInFinalClassMessage, s.Message)
	assert.Equal(t, lint.DebtTenMins, s.Issue.Debt)
	assert.Equal(t, "10min", s.Issue.Debt.String())

	// The entity is the member, never the class
	assert.Equal(t, "x", s.Entity.Name)
	assert.Equal(t, decl.KindProperty, s.Entity.Kind)
	assert.Equal(t, "protected property x", s.Entity.Signature)
	assert.Equal(t, "Test.kt", s.Entity.Path)
	assert.Equal(t, 2, s.Entity.Span.Start.Line)
	assert.Equal(t, 5, s.Entity.Span.Start.Column)
	assert.Equal(t, "Test.kt:2:5", s.Entity.Location())
}

func TestProtectedMemberInFinalClass_RuleIsReusable(t *testing.T) {
	a := newAnalyzer()
	for _, src := range []string{
		"class A { protected val x = 1 }",
		"class B { protected fun y() {} }",
	} {
		file, err := parser.ParseString("Test.kt", src)
		require.NoError(t, err)
		smells, err := a.AnalyzeFile("Test.kt", file)
		require.NoError(t, err)
		assert.Len(t, smells, 1, "each file gets its own findings")
	}
}

func TestProtectedMemberInFinalClass_IgnoresOptions(t *testing.T) {
	r := style.NewProtectedMemberInFinalClass(core.RuleOptions{"threshold": 3})
	assert.Equal(t, "ProtectedMemberInFinalClass", r.ID())
	assert.Equal(t, "style", r.Group())
	assert.Empty(t, r.ConfigKeys())
	assert.Equal(t, core.SeverityWarning, r.Issue().Severity)
}

// ---------- Predicates on hand-built trees ----------

func member(kind decl.Kind, name string, mods ...decl.Modifier) decl.Node {
	return decl.NewDecl(kind, name, decl.Modifiers(mods...), token.Span{})
}

func class(name string, mods decl.ModifierSet, primary decl.Node, body ...decl.Node) *decl.Decl {
	return decl.NewClass(decl.KindClass, name, mods, token.Span{}, primary, body)
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		mods decl.ModifierSet
		want bool
	}{
		{0, true},
		{decl.Modifiers(decl.Final), true},
		{decl.Modifiers(decl.Data), true},
		{decl.Modifiers(decl.Enum), true},
		{decl.Modifiers(decl.Inner, decl.Private), true},
		{decl.Modifiers(decl.Open), false},
		{decl.Modifiers(decl.Abstract), false},
		{decl.Modifiers(decl.Sealed), false},
		{decl.Modifiers(decl.Abstract, decl.Open), false},
	}

	for _, tt := range tests {
		t.Run(tt.mods.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, style.IsEligible(class("A", tt.mods, nil)))
		})
	}
}

func TestIsViolation(t *testing.T) {
	tests := []struct {
		name string
		node decl.Node
		want bool
	}{
		{"protected", member(decl.KindProperty, "x", decl.Protected), true},
		{"protected override", member(decl.KindFunction, "f", decl.Protected, decl.Override), false},
		{"override only", member(decl.KindFunction, "f", decl.Override), false},
		{"private", member(decl.KindProperty, "x", decl.Private), false},
		{"internal", member(decl.KindProperty, "x", decl.Internal), false},
		{"no modifiers", member(decl.KindProperty, "x"), false},
		{"protected constructor", member(decl.KindSecondaryConstructor, "A", decl.Protected), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, style.IsViolation(tt.node))
		})
	}
}

func TestScopedMembers_Order(t *testing.T) {
	ctor := member(decl.KindPrimaryConstructor, "A")
	companion := decl.NewClass(decl.KindCompanionObject, "Companion", decl.Modifiers(decl.Companion), token.Span{}, nil,
		[]decl.Node{member(decl.KindProperty, "z")})
	nested := class("Nested", 0, nil, member(decl.KindProperty, "hidden"))
	c := class("A", 0, ctor, member(decl.KindProperty, "p"), nested, companion, member(decl.KindFunction, "f"))

	var got []string
	for _, m := range style.ScopedMembers(c) {
		got = append(got, m.Kind().String()+" "+m.Name())
	}
	assert.Equal(t, []string{
		"primary constructor A",
		"property p",
		"class Nested",
		"companion object Companion",
		"function f",
		"property z",
	}, got)
}

func TestViolations_PureFilter(t *testing.T) {
	members := []decl.Node{
		member(decl.KindProperty, "a", decl.Protected),
		member(decl.KindProperty, "b"),
		member(decl.KindFunction, "c", decl.Protected, decl.Override),
		member(decl.KindFunction, "d", decl.Protected),
	}
	got := style.Violations(members)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name())
	assert.Equal(t, "d", got[1].Name())
	assert.Empty(t, style.Violations(nil))
}

// notAClass claims a class-like kind without implementing decl.ClassNode.
type notAClass struct {
	decl.Node
}

func TestProtectedMemberInFinalClass_ContractViolation(t *testing.T) {
	tests := []struct {
		name string
		tree decl.Node
	}{
		{
			name: "companion without class accessors",
			tree: decl.NewFile("Test.kt", "", token.Span{},
				class("A", 0, nil, notAClass{Node: member(decl.KindCompanionObject, "Companion", decl.Companion)}),
			),
		},
		{
			name: "nil body declaration",
			tree: decl.NewFile("Test.kt", "", token.Span{},
				class("A", 0, nil, nil),
			),
		},
		{
			name: "nil body declaration in open class",
			tree: decl.NewFile("Test.kt", "", token.Span{},
				class("A", decl.Modifiers(decl.Open), nil, nil),
			),
		},
		{
			name: "nil declaration in nested abstract class",
			tree: decl.NewFile("Test.kt", "", token.Span{},
				class("A", 0, nil, class("B", decl.Modifiers(decl.Abstract), nil, member(decl.KindProperty, "x"), nil)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			smells, err := newAnalyzer().AnalyzeFile("Test.kt", tt.tree)
			require.Error(t, err)
			assert.Nil(t, smells)
			assert.True(t, lint.IsContractError(err))
			assert.Contains(t, err.Error(), "ProtectedMemberInFinalClass")
		})
	}
}
