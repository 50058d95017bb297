package decl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/ktsmell/pkg/decl"
)

func TestModifierSet(t *testing.T) {
	s := decl.Modifiers(decl.Protected, decl.Override)

	assert.True(t, s.Has(decl.Protected))
	assert.True(t, s.Has(decl.Override))
	assert.False(t, s.Has(decl.Open))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "protected override", s.String())

	s2 := s.With(decl.Open)
	assert.True(t, s2.Has(decl.Open))
	assert.False(t, s.Has(decl.Open), "With must not modify the receiver")
}

func TestParseModifier(t *testing.T) {
	tests := []struct {
		word string
		want decl.Modifier
		ok   bool
	}{
		{"protected", decl.Protected, true},
		{"sealed", decl.Sealed, true},
		{"companion", decl.Companion, true},
		{"actual", decl.Actual, true},
		{"val", 0, false},
		{"Protected", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := decl.ParseModifier(tt.word)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.word, got.String())
			}
		})
	}
}
