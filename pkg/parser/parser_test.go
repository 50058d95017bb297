package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/parser"
)

// outline renders a tree one declaration per line, indented by depth.
func outline(n decl.Node) string {
	var sb strings.Builder
	var walk func(n decl.Node, depth int)
	walk = func(n decl.Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&sb, "%s %s", n.Kind(), n.Name())
		if mods := n.Modifiers(); mods.Len() > 0 {
			fmt.Fprintf(&sb, " [%s]", mods)
		}
		sb.WriteString("\n")
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	for _, c := range n.Children() {
		walk(c, 0)
	}
	return sb.String()
}

func mustParse(t *testing.T, src string) *decl.File {
	t.Helper()
	file, err := parser.ParseString("Test.kt", src)
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func TestParse_ClassStructure(t *testing.T) {
	src := `package com.example.accounts

import kotlin.math.max

/** An account. */
@Suppress("unused")
class Outer protected constructor(val a: Int, protected val b: String = "}") : Base(a), Marker {
    protected val x: Int = 1
    var y: String
        get() = "y"
        private set

    fun String.ext(n: Int = max(1, 2)): Int = n

    class Nested {
        protected fun f() {}
    }

    companion object {
        protected const val Z = "${"{"}"
    }
}
`
	file := mustParse(t, src)
	assert.Equal(t, "com.example.accounts", file.Package)
	assert.Equal(t, "Test.kt", file.Path)

	want := `class Outer
  primary constructor Outer [protected]
    parameter a
    parameter b [protected]
  property x [protected]
  property y
  function ext
    parameter n
  class Nested
    function f [protected]
  companion object Companion [companion]
    property Z [protected const]
`
	assert.Equal(t, want, outline(file))
}

func TestParse_Declarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "modifiers on class kinds",
			src:  "open class A\nabstract class B\nsealed class C\ndata class D(val x: Int)\n",
			want: "class A [open]\nclass B [abstract]\nclass C [sealed]\nclass D [data]\n  primary constructor D\n    parameter x\n",
		},
		{
			name: "interface and fun interface",
			src:  "interface I { fun a() }\nfun interface F { fun b(): Int }",
			want: "interface I\n  function a\ninterface F\n  function b\n",
		},
		{
			name: "named companion with supertype",
			src:  "class A { companion object Factory : Creator<A> { fun create() = A() } }",
			want: "class A\n  companion object Factory [companion]\n    function create\n",
		},
		{
			name: "object declaration",
			src:  "object Registry : Base() {\n    internal val items = mutableListOf<String>()\n}",
			want: "object Registry\n  property items [internal]\n",
		},
		{
			name: "enum with entries and members",
			src: `enum class Color(val rgb: Int) {
    RED(0xFF0000),
    GREEN(0x00FF00) {
        override fun label() = "g"
    },
    BLUE(0x0000FF);

    open fun label(): String = name
}`,
			want: "class Color [enum]\n  primary constructor Color\n    parameter rgb\n  enum entry RED\n  enum entry GREEN\n    function label [override]\n  enum entry BLUE\n  function label [open]\n",
		},
		{
			name: "secondary constructor and init",
			src: `class P(val n: Int) {
    init {
        require(n > 0) { "n must be positive" }
    }

    protected constructor(s: String) : this(s.toInt()) {
        println(s)
    }
}`,
			want: "class P\n  primary constructor P\n    parameter n\n  initializer init\n  secondary constructor P [protected]\n    parameter s\n",
		},
		{
			name: "generic extension members",
			src:  "fun <T : Comparable<T>> List<T>.top(n: Int): List<T> where T : Any = sorted().take(n)\nval <T> List<T>.second: T get() = this[1]\n",
			want: "function top\n  parameter n\nproperty second\n",
		},
		{
			name: "delegated and lateinit properties",
			src: `class S {
    @Inject
    lateinit var repo: Repository
    private val cache by lazy {
        mutableMapOf<String, Int>()
    }
    val total: Int
        get() {
            return cache.size
        }
}`,
			want: "class S\n  property repo [lateinit]\n  property cache [private]\n  property total\n",
		},
		{
			name: "type alias and annotations",
			src:  "@file:JvmName(\"Utils\")\npackage util\n\ntypealias Handler = (String) -> Unit\n\n@Target(AnnotationTarget.CLASS) annotation class Marker\n",
			want: "type alias Handler\nclass Marker [annotation]\n",
		},
		{
			name: "multi-line expression initializers",
			src: `val message = listOf(1, 2, 3)
    .map { it * 2 }
    .joinToString(",")
val flag = if (message.isEmpty()) "none"
    else "some"
private fun helper() = 1`,
			want: "property message\nproperty flag\nfunction helper [private]\n",
		},
		{
			name: "soft keywords used as names",
			src:  "class Box(val value: Int, var data: String) { fun set(value: Int) {} }",
			want: "class Box\n  primary constructor Box\n    parameter value\n    parameter data\n  function set\n    parameter value\n",
		},
		{
			name: "raw strings and nested comments",
			src:  "/* outer /* inner */ still comment */\nval sql = \"\"\"\n    select { } from t\n\"\"\"\nval c = '}'\n",
			want: "property sql\nproperty c\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, tt.src)
			assert.Equal(t, tt.want, outline(file))
		})
	}
}

func TestParse_Positions(t *testing.T) {
	src := "class A {\n    protected val x: Int = 1\n}\n"
	file := mustParse(t, src)

	class := decl.AsClass(file.Children()[0])
	assert.Equal(t, 1, class.Span().Start.Line)
	assert.Equal(t, 1, class.Span().Start.Column)
	assert.Equal(t, 3, class.Span().End.Line)

	x := class.BodyDeclarations()[0]
	assert.Equal(t, "x", x.Name())
	assert.Equal(t, 2, x.Span().Start.Line)
	assert.Equal(t, 5, x.Span().Start.Column)
	assert.Equal(t, 2, x.Span().End.Line)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "unclosed class body", src: "class A {\n val x = 1\n", wantErr: "expected }"},
		{name: "unterminated string", src: `val s = "abc`, wantErr: "unterminated string literal"},
		{name: "unterminated parameter list", src: "fun f(x: Int", wantErr: "expected )"},
		{name: "statement in class body", src: "class A { 42 }", wantErr: "expected declaration"},
		{name: "unbalanced block", src: "fun f() { if (x) { }", wantErr: "unbalanced {"},
		{name: "unterminated comment", src: "/* never closed", wantErr: "unterminated block comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.ParseString("Bad.kt", tt.src)
			require.Error(t, err)
			assert.Nil(t, file)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "Bad.kt")
		})
	}
}

func TestParse_EmptyFile(t *testing.T) {
	file := mustParse(t, "\n// nothing here\n")
	assert.Empty(t, file.Children())
	assert.Equal(t, "", file.Package)
}

func TestParse_ByteOrderMark(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "class", src: "\ufeffclass A { protected val x = 1 }"},
		{name: "shebang", src: "\ufeff#!/usr/bin/env kotlin\nclass A { protected val x = 1 }"},
		{name: "package", src: "\ufeffpackage p\n\nclass A { protected val x = 1 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, tt.src)
			require.Len(t, file.Children(), 1)

			class := decl.AsClass(file.Children()[0])
			assert.Equal(t, "A", class.Name())
			require.Len(t, class.BodyDeclarations(), 1)
			assert.Equal(t, "x", class.BodyDeclarations()[0].Name())
		})
	}
}
