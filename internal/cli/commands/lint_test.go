package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/internal/cli/config"
	"github.com/leapstack-labs/ktsmell/internal/cli/output"
	"github.com/leapstack-labs/ktsmell/internal/cli/testutil"
	"github.com/leapstack-labs/ktsmell/internal/engine"
	"github.com/leapstack-labs/ktsmell/internal/state"
	"github.com/leapstack-labs/ktsmell/pkg/core"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
	"github.com/leapstack-labs/ktsmell/pkg/lint/rules/complexity"
	"github.com/leapstack-labs/ktsmell/pkg/lint/rules/style"
)

// executeLint runs the lint command inside dir with default configuration.
func executeLint(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Chdir(dir)

	cmd := NewLintCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"format", "disable", "rule", "severity", "record", "watch", "concurrency"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{})
		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled(style.ProtectedMemberInFinalClassID))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{Disable: []string{" LongParameterList "}})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled(complexity.LongParameterListID))
		assert.False(t, cfg.IsDisabled(style.ProtectedMemberInFinalClassID))
	})

	t.Run("enable only specific rules", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{Rules: []string{style.ProtectedMemberInFinalClassID}})
		require.NoError(t, err)
		for _, info := range lint.AllRules() {
			want := info.ID != style.ProtectedMemberInFinalClassID
			assert.Equal(t, want, cfg.IsDisabled(info.ID), "rule %q", info.ID)
		}
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := buildLintConfig(nil, &LintOptions{Rules: []string{"NoSuchRule"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NoSuchRule")
	})

	t.Run("project config", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{
				Disabled: []string{complexity.LongParameterListID},
				Severity: map[string]core.Severity{style.ProtectedMemberInFinalClassID: core.SeverityError},
				Rules: map[string]config.RuleOptions{
					complexity.LongParameterListID: {"threshold": 3},
				},
			},
		}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{})
		require.NoError(t, err)

		assert.True(t, cfg.IsDisabled(complexity.LongParameterListID))
		assert.Equal(t, core.SeverityError, cfg.GetSeverity(style.ProtectedMemberInFinalClassID, core.SeverityWarning))
		assert.Equal(t, 3, cfg.GetOptions(complexity.LongParameterListID)["threshold"])
	})
}

func TestLintCommand_Markdown(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := executeLint(t, dir)
	require.ErrorIs(t, err, ErrLintIssues)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Lint Results")
	assert.Contains(t, out, "## "+filepath.Join("src", "main", "kotlin", "Account.kt"))
	assert.Contains(t, out, style.ProtectedMemberInFinalClassMessage)
	assert.Contains(t, out, "protected property balance")
	assert.NotContains(t, out, "Gen.kt", "build output is excluded")
	assert.NotContains(t, out, "Base.kt", "open classes are clean")
	assert.Contains(t, out, "**Summary:** 2 issues, 2 warnings in 1 of 2 files, 20min of debt")
}

func TestLintCommand_Text(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	config.ResetConfig()
	t.Chdir(dir)

	eng := engine.New(engine.Config{})
	report, err := eng.Lint(context.Background())
	require.NoError(t, err)

	tr := testutil.NewTestRenderer(output.ModeText, false)
	renderLintText(tr.Renderer, report, "run-1")

	out := tr.Output()
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, style.ProtectedMemberInFinalClassID)
	assert.Contains(t, out, "Summary: 2 issues, 2 warnings in 1 of 2 files, 20min of debt")
	assert.Contains(t, out, "Recorded run run-1")
}

func TestLintCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteFile(t, dir, "src/main/kotlin/Broken.kt", "class Broken {")

	out, _, err := executeLint(t, dir, "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, 3, result.Summary.FilesAnalyzed)
	assert.Equal(t, 2, result.Summary.TotalIssues)
	assert.Equal(t, 2, result.Summary.Warnings)
	assert.Equal(t, 1, result.Summary.ParseErrors)
	assert.Equal(t, 20, result.Summary.DebtMinutes)
	assert.Empty(t, result.RunID)

	require.Len(t, result.Files, 2)
	account := result.Files[0]
	assert.Equal(t, "Account.kt", filepath.Base(account.Path))
	require.Len(t, account.Diagnostics, 2)
	assert.Equal(t, "balance", account.Diagnostics[0].Entity)
	assert.Equal(t, "LIMIT", account.Diagnostics[1].Entity)
	assert.Equal(t, "warning", account.Diagnostics[0].Severity)
	assert.Equal(t, "10min", account.Diagnostics[0].Debt)
	assert.Equal(t, 4, account.Diagnostics[0].Line)

	broken := result.Files[1]
	assert.Equal(t, "Broken.kt", filepath.Base(broken.Path))
	assert.NotEmpty(t, broken.ParseError)
	assert.Empty(t, broken.Diagnostics)
}

func TestLintCommand_Sonar(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := executeLint(t, dir, "--format", "sonar")
	require.ErrorIs(t, err, ErrLintIssues)

	var result output.SonarReport
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Issues, 2)

	issue := result.Issues[0]
	assert.Equal(t, "ktsmell", issue.EngineID)
	assert.Equal(t, style.ProtectedMemberInFinalClassID, issue.RuleID)
	assert.Equal(t, "MAJOR", issue.Severity)
	assert.Equal(t, "CODE_SMELL", issue.Type)
	assert.Equal(t, 10, issue.EffortMinutes)
	assert.Equal(t, 4, issue.PrimaryLocation.TextRange.StartLine)
}

func TestLintCommand_Filters(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		want    string
	}{
		{
			name: "severity threshold above findings",
			args: []string{"--severity", "error"},
			want: "No code smells found in 2 files",
		},
		{
			name: "rule disabled",
			args: []string{"--disable", style.ProtectedMemberInFinalClassID},
			want: "No code smells found in 2 files",
		},
		{
			name: "only another rule",
			args: []string{"--rule", complexity.LongParameterListID},
			want: "No code smells found in 2 files",
		},
		{
			name:    "explicit file",
			args:    []string{filepath.Join("src", "main", "kotlin", "Account.kt")},
			wantErr: ErrLintIssues,
			want:    "in 1 of 1 files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.SetupTestProject(t)

			out, _, err := executeLint(t, dir, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestLintCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{name: "unknown severity", args: []string{"--severity", "fatal"}, errSubstr: "unknown severity"},
		{name: "unknown rule", args: []string{"--rule", "Nope"}, errSubstr: "unknown rule"},
		{name: "missing path", args: []string{"does-not-exist"}, errSubstr: "does-not-exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.SetupTestProject(t)

			_, _, err := executeLint(t, dir, tt.args...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrLintIssues)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLintCommand_Record(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := executeLint(t, dir, "--record", "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.RunID)

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(filepath.Join(dir, config.DefaultStateFile)))
	defer store.Close()

	run, err := store.GetRun(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Files)
	assert.Equal(t, 2, run.Smells)
	assert.Equal(t, 20, run.DebtMinutes)
	assert.Equal(t, []string{"."}, run.Paths)

	findings, err := store.RunFindings(context.Background(), run.ID)
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, "balance", findings[0].Entity)
}

func TestSummaryParts(t *testing.T) {
	tests := []struct {
		name    string
		summary output.LintSummary
		want    []string
	}{
		{
			name:    "only total",
			summary: output.LintSummary{TotalIssues: 0},
			want:    []string{"0 issues"},
		},
		{
			name:    "mixed",
			summary: output.LintSummary{TotalIssues: 4, Errors: 1, Warnings: 1, Info: 1, Hints: 1},
			want:    []string{"4 issues", "1 errors", "1 warnings", "1 info", "1 hints"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summaryParts(tt.summary))
		})
	}
}
