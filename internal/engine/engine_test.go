package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/internal/testutil"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
	_ "github.com/leapstack-labs/ktsmell/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/ktsmell/pkg/lint/rules/style"
)

const finalWithProtected = `package sample

class Account {
    protected val balance = 0
    protected override fun toString() = "Account"
}
`

const openWithProtected = `package sample

open class Base {
    protected val x = 1
}
`

func TestEngine_LintFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Account.kt"), finalWithProtected)
	writeFile(t, filepath.Join(root, "Base.kt"), openWithProtected)
	writeFile(t, filepath.Join(root, "Broken.kt"), "class Broken {")

	eng := New(Config{Logger: testutil.NewTestLogger(t), Concurrency: 2})
	report, err := eng.Lint(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, report.Files, 3)
	assert.Equal(t, "Account.kt", filepath.Base(report.Files[0].Path))
	assert.Equal(t, "Base.kt", filepath.Base(report.Files[1].Path))
	assert.Equal(t, "Broken.kt", filepath.Base(report.Files[2].Path))

	smells := report.Smells()
	require.Len(t, smells, 1)
	assert.Equal(t, style.ProtectedMemberInFinalClassID, smells[0].RuleID())
	assert.Equal(t, "balance", smells[0].Entity.Name)
	assert.Equal(t, style.ProtectedMemberInFinalClassMessage, smells[0].Message)
	assert.Equal(t, 4, smells[0].Pos().Line)

	parseErrors := report.ParseErrors()
	require.Len(t, parseErrors, 1)
	assert.Equal(t, "Broken.kt", filepath.Base(parseErrors[0].Path))
	assert.Empty(t, parseErrors[0].Smells)
}

func TestEngine_LogsRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Account.kt"), finalWithProtected)
	writeFile(t, filepath.Join(root, "Broken.kt"), "class Broken {")

	logger, logs := testutil.NewCaptureLogger()
	_, err := New(Config{Logger: logger}).Lint(context.Background(), root)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "msg=\"parse error\"")
	assert.Contains(t, out, "msg=\"lint completed\" files=2 smells=1 parse_errors=1")
}

func TestEngine_DisabledRule(t *testing.T) {
	cfg := lint.NewConfig().Disable(style.ProtectedMemberInFinalClassID)
	eng := New(Config{Lint: cfg})

	res, err := eng.LintSource("Account.kt", []byte(finalWithProtected))
	require.NoError(t, err)
	assert.Empty(t, res.Smells)
}

func TestEngine_SeverityOverrideAndFilter(t *testing.T) {
	cfg := lint.NewConfig().SetSeverity(style.ProtectedMemberInFinalClassID, lint.SeverityHint)
	eng := New(Config{Lint: cfg})

	res, err := eng.LintSource("Account.kt", []byte(finalWithProtected))
	require.NoError(t, err)
	require.Len(t, res.Smells, 1)
	assert.Equal(t, lint.SeverityHint, res.Smells[0].Severity)
	assert.Equal(t, lint.SeverityWarning, res.Smells[0].Issue.Severity, "issue keeps the rule default")

	report := &Report{Files: []FileResult{res}}
	assert.Equal(t, 0, report.Filter(lint.SeverityWarning).SmellCount())
	assert.Equal(t, 1, report.Filter(lint.SeverityHint).SmellCount())
	assert.Equal(t, 1, report.SmellCount(), "Filter does not modify the receiver")
}

func TestEngine_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Account.kt"), finalWithProtected)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(Config{})
	_, err := eng.Lint(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_UnreadableFile(t *testing.T) {
	eng := New(Config{})
	_, err := eng.LintFiles(context.Background(), []string{filepath.Join(t.TempDir(), "Gone.kt")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestEngine_RulesBuiltOnce(t *testing.T) {
	eng := New(Config{})
	before := eng.Analyzer().Rules()

	for range 3 {
		_, err := eng.LintSource("Account.kt", []byte(finalWithProtected))
		require.NoError(t, err)
	}

	after := eng.Analyzer().Rules()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
}
