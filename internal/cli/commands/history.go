package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ktsmell/internal/cli/output"
	"github.com/leapstack-labs/ktsmell/internal/state"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int
	Format string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded lint runs",
		Long: `Show lint runs recorded with 'ktsmell lint --record'.

Without arguments the most recent runs are listed. With a run ID (or a
unique prefix of one) the findings of that run are shown.`,
		Example: `  # List recent runs
  ktsmell history

  # Show the findings of one run
  ktsmell history 3f2a9c1e

  # Output as JSON
  ktsmell history --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd, opts.Format)
			store, cleanup, err := cmdCtx.OpenStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open state store: %w", err)
			}
			defer cleanup()

			if len(args) > 0 {
				return showRun(cmd.Context(), cmdCtx.Renderer, store, args[0])
			}
			return listRuns(cmd.Context(), cmdCtx.Renderer, store, opts.Limit)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// HistoryRun is one run in JSON output.
type HistoryRun struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
	Paths       []string  `json:"paths"`
	Files       int       `json:"files"`
	Smells      int       `json:"smells"`
	ParseErrors int       `json:"parse_errors"`
	DebtMinutes int       `json:"debt_minutes"`
}

// HistoryRunDetail is the JSON output for one run.
type HistoryRunDetail struct {
	HistoryRun
	Findings []state.Finding `json:"findings"`
}

func toHistoryRun(run state.Run) HistoryRun {
	return HistoryRun{
		ID:          run.ID,
		StartedAt:   run.StartedAt,
		DurationMS:  run.Duration.Milliseconds(),
		Paths:       run.Paths,
		Files:       run.Files,
		Smells:      run.Smells,
		ParseErrors: run.ParseErrors,
		DebtMinutes: run.DebtMinutes,
	}
}

func listRuns(ctx context.Context, r *output.Renderer, store state.Store, limit int) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]HistoryRun, 0, len(runs))
		for _, run := range runs {
			out = append(out, toHistoryRun(run))
		}
		return r.JSON(out)
	}

	if len(runs) == 0 {
		r.Println("No recorded runs. Use 'ktsmell lint --record' to record one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Started", "Paths", "Files", "Smells", "Debt"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ShortID(),
			run.StartedAt.Local().Format(time.DateTime),
			strings.Join(run.Paths, ", "),
			run.Files,
			run.Smells,
			lint.Debt{Mins: run.DebtMinutes}.String(),
		})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Lint Runs")
		r.Println("")
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}

func showRun(ctx context.Context, r *output.Renderer, store state.Store, id string) error {
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	findings, err := store.RunFindings(ctx, run.ID)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if findings == nil {
			findings = []state.Finding{}
		}
		return r.JSON(HistoryRunDetail{HistoryRun: toHistoryRun(*run), Findings: findings})
	case output.ModeMarkdown:
		r.Printf("# Run %s\n\n", run.ShortID())
		r.Printf("Started %s, %d files, %d smells, %s of debt\n\n",
			run.StartedAt.Local().Format(time.DateTime), run.Files, run.Smells,
			lint.Debt{Mins: run.DebtMinutes}.String())
		for _, f := range findings {
			r.Printf("- `%s:%d:%d` **%s** `%s` %s\n", f.Path, f.Line, f.Column, f.Severity, f.RuleID, f.Message)
		}
		return nil
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render("Run " + run.ID))
	r.Printf("  %s: %s\n", styles.Bold.Render("Started"), run.StartedAt.Local().Format(time.DateTime))
	r.Printf("  %s: %s\n", styles.Bold.Render("Duration"), run.Duration)
	r.Printf("  %s: %s\n", styles.Bold.Render("Paths"), strings.Join(run.Paths, ", "))
	r.Printf("  %s: %d files, %d smells, %d parse errors\n", styles.Bold.Render("Totals"), run.Files, run.Smells, run.ParseErrors)
	r.Println("")

	if len(findings) == 0 {
		r.Success("No code smells recorded")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Location", "Severity", "Rule", "Entity"})
	for _, f := range findings {
		t.AppendRow(table.Row{
			fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column),
			f.Severity,
			f.RuleID,
			f.Signature,
		})
	}
	t.Render()
	return nil
}
