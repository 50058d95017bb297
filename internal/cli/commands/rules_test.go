package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/internal/cli/config"
	"github.com/leapstack-labs/ktsmell/internal/cli/testutil"
	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/lint/rules/style"
)

func executeRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"group", "verbose", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListMarkdown(t *testing.T) {
	out, err := executeRules(t)
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Lint Rules")
	assert.Contains(t, out, "## Style")
	assert.Contains(t, out, "## Complexity")
	assert.Contains(t, out, "**ProtectedMemberInFinalClass**")
	assert.Contains(t, out, "(`warning`, 10min)")

	// Groups are sorted
	assert.Less(t, strings.Index(out, "## Complexity"), strings.Index(out, "## Style"))
}

func TestRulesCommand_ListText(t *testing.T) {
	out, err := executeRules(t, "--format", "text", "--verbose")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "Lint Rules (2)")
	assert.Contains(t, out, "┌", "rendered as a table")
	assert.Contains(t, out, style.ProtectedMemberInFinalClassID)
	assert.Contains(t, out, "Style")
	assert.Contains(t, out, "DESCRIPTION", "verbose adds a column")
}

func TestRulesCommand_FilterByGroup(t *testing.T) {
	tests := []struct {
		name    string
		group   string
		want    []string
		notWant []string
	}{
		{
			name:    "style",
			group:   "style",
			want:    []string{"ProtectedMemberInFinalClass"},
			notWant: []string{"LongParameterList"},
		},
		{
			name:    "case insensitive",
			group:   "COMPLEXITY",
			want:    []string{"LongParameterList"},
			notWant: []string{"ProtectedMemberInFinalClass"},
		},
		{
			name:    "unknown group",
			group:   "nope",
			notWant: []string{"ProtectedMemberInFinalClass", "LongParameterList"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeRules(t, "--group", tt.group)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRulesCommand_ListJSON(t *testing.T) {
	out, err := executeRules(t, "--format", "json")
	require.NoError(t, err)

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Rules, 2)
	assert.Equal(t, "LongParameterList", result.Rules[0].ID)
	assert.Equal(t, "ProtectedMemberInFinalClass", result.Rules[1].ID)
	assert.Equal(t, "10min", result.Rules[1].Debt)

	// Severities are written by name
	assert.Contains(t, out, `"default_severity": "warning"`)
}

func TestRulesCommand_Show(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		out, err := executeRules(t, style.ProtectedMemberInFinalClassID)
		require.NoError(t, err)

		testutil.AssertValidMarkdown(t, out)
		assert.Contains(t, out, "# ProtectedMemberInFinalClass")
		assert.Contains(t, out, "> "+style.ProtectedMemberInFinalClassMessage)
		assert.Contains(t, out, "```kotlin")
		assert.Contains(t, out, "**Debt:** 10min")
	})

	t.Run("text", func(t *testing.T) {
		out, err := executeRules(t, style.ProtectedMemberInFinalClassID, "--format", "text")
		require.NoError(t, err)

		assert.Contains(t, out, "Why This Matters")
		assert.Contains(t, out, "Docs: ")
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeRules(t, style.ProtectedMemberInFinalClassID, "--format", "json")
		require.NoError(t, err)

		var info core.RuleInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, core.SeverityWarning, info.DefaultSeverity)
		assert.Equal(t, style.ProtectedMemberInFinalClassID, info.ID)
		assert.Equal(t, style.ProtectedMemberInFinalClassMessage, info.Message)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := executeRules(t, "NoSuchRule")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestTruncateOneLine(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{in: "short", maxLen: 10, want: "short"},
		{in: "first\nsecond", maxLen: 10, want: "first"},
		{in: "abcdefghijkl", maxLen: 8, want: "abcde..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateOneLine(tt.in, tt.maxLen))
	}
}
