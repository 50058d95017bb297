package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ktsmell/internal/cli/config"
	"github.com/leapstack-labs/ktsmell/internal/cli/testutil"
	"github.com/leapstack-labs/ktsmell/internal/state"
)

// seedHistory records two runs in dir's default state database.
func seedHistory(t *testing.T, dir string) (older, newer *state.Run) {
	t.Helper()

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(filepath.Join(dir, config.DefaultStateFile)))
	defer store.Close()
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older = &state.Run{StartedAt: base, Paths: []string{"."}, Files: 3}
	newer = &state.Run{StartedAt: base.Add(time.Hour), Paths: []string{"src"}, Files: 2, Smells: 1, DebtMinutes: 10}
	require.NoError(t, store.SaveRun(ctx, older, nil))
	require.NoError(t, store.SaveRun(ctx, newer, []state.Finding{{
		RuleID:      "ProtectedMemberInFinalClass",
		Severity:    "warning",
		Message:     "m",
		Entity:      "balance",
		Signature:   "protected property balance",
		Path:        "src/Account.kt",
		Line:        4,
		Column:      5,
		DebtMinutes: 10,
	}}))
	return older, newer
}

func executeHistory(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Chdir(dir)

	cmd := NewHistoryCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := executeHistory(t, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded runs")
}

func TestHistoryCommand_List(t *testing.T) {
	dir := t.TempDir()
	older, newer := seedHistory(t, dir)

	t.Run("markdown", func(t *testing.T) {
		out, err := executeHistory(t, dir)
		require.NoError(t, err)

		testutil.AssertNoANSI(t, out)
		assert.Contains(t, out, "# Lint Runs")
		assert.Contains(t, out, "| "+newer.ShortID())
		assert.Less(t, bytes.Index([]byte(out), []byte(newer.ShortID())), bytes.Index([]byte(out), []byte(older.ShortID())), "most recent first")
	})

	t.Run("text with limit", func(t *testing.T) {
		out, err := executeHistory(t, dir, "--format", "text", "--limit", "1")
		require.NoError(t, err)

		assert.Contains(t, out, "┌")
		assert.Contains(t, out, newer.ShortID())
		assert.NotContains(t, out, older.ShortID())
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeHistory(t, dir, "--format", "json")
		require.NoError(t, err)

		var runs []HistoryRun
		require.NoError(t, json.Unmarshal([]byte(out), &runs))
		require.Len(t, runs, 2)
		assert.Equal(t, newer.ID, runs[0].ID)
		assert.Equal(t, []string{"src"}, runs[0].Paths)
		assert.Equal(t, 10, runs[0].DebtMinutes)
	})
}

func TestHistoryCommand_Show(t *testing.T) {
	dir := t.TempDir()
	older, newer := seedHistory(t, dir)

	t.Run("json by prefix", func(t *testing.T) {
		out, err := executeHistory(t, dir, newer.ShortID(), "--format", "json")
		require.NoError(t, err)

		var detail HistoryRunDetail
		require.NoError(t, json.Unmarshal([]byte(out), &detail))
		assert.Equal(t, newer.ID, detail.ID)
		require.Len(t, detail.Findings, 1)
		assert.Equal(t, "balance", detail.Findings[0].Entity)
		assert.Equal(t, 4, detail.Findings[0].Line)
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := executeHistory(t, dir, newer.ID)
		require.NoError(t, err)
		assert.Contains(t, out, "# Run "+newer.ShortID())
		assert.Contains(t, out, "`src/Account.kt:4:5`")
	})

	t.Run("text without findings", func(t *testing.T) {
		out, err := executeHistory(t, dir, older.ID, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "Run "+older.ID)
		assert.Contains(t, out, "No code smells recorded")
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := executeHistory(t, dir, "zzzzzzzz")
		require.ErrorIs(t, err, state.ErrRunNotFound)
	})
}
