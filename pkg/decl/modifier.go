package decl

import (
	"math/bits"
	"strings"
)

// Modifier is a single Kotlin modifier keyword.
type Modifier uint64

// Modifier keywords, grouped as in the Kotlin grammar.
const (
	// Visibility
	Public Modifier = 1 << iota
	Private
	Protected
	Internal

	// Inheritance
	Open
	Final
	Abstract
	Sealed
	Override

	// Class
	Enum
	Annotation
	Data
	Inner
	Value
	Companion

	// Member
	Lateinit
	Const
	Inline
	Noinline
	Crossinline
	Tailrec
	Operator
	Infix
	Suspend
	External
	Vararg
	Reified

	// Platform
	Expect
	Actual

	modifierEnd
)

var modifierNames = map[Modifier]string{
	Public:      "public",
	Private:     "private",
	Protected:   "protected",
	Internal:    "internal",
	Open:        "open",
	Final:       "final",
	Abstract:    "abstract",
	Sealed:      "sealed",
	Override:    "override",
	Enum:        "enum",
	Annotation:  "annotation",
	Data:        "data",
	Inner:       "inner",
	Value:       "value",
	Companion:   "companion",
	Lateinit:    "lateinit",
	Const:       "const",
	Inline:      "inline",
	Noinline:    "noinline",
	Crossinline: "crossinline",
	Tailrec:     "tailrec",
	Operator:    "operator",
	Infix:       "infix",
	Suspend:     "suspend",
	External:    "external",
	Vararg:      "vararg",
	Reified:     "reified",
	Expect:      "expect",
	Actual:      "actual",
}

var modifiersByName = func() map[string]Modifier {
	m := make(map[string]Modifier, len(modifierNames))
	for mod, name := range modifierNames {
		m[name] = mod
	}
	return m
}()

// ParseModifier looks up a modifier keyword.
func ParseModifier(word string) (Modifier, bool) {
	m, ok := modifiersByName[word]
	return m, ok
}

// String returns the keyword.
func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return "unknown"
}

// ModifierSet is an unordered set of modifiers.
type ModifierSet uint64

// Modifiers builds a set from individual modifiers.
func Modifiers(mods ...Modifier) ModifierSet {
	var s ModifierSet
	for _, m := range mods {
		s |= ModifierSet(m)
	}
	return s
}

// Has reports whether m is in the set.
func (s ModifierSet) Has(m Modifier) bool {
	return s&ModifierSet(m) != 0
}

// With returns a copy of s that also contains m.
func (s ModifierSet) With(m Modifier) ModifierSet {
	return s | ModifierSet(m)
}

// Len returns the number of modifiers in the set.
func (s ModifierSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// List returns the modifiers in declaration-grammar order.
func (s ModifierSet) List() []Modifier {
	out := make([]Modifier, 0, s.Len())
	for m := Public; m < modifierEnd; m <<= 1 {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String renders the set the way it would appear in source, e.g. "protected override".
func (s ModifierSet) String() string {
	mods := s.List()
	words := make([]string, len(mods))
	for i, m := range mods {
		words[i] = m.String()
	}
	return strings.Join(words, " ")
}
