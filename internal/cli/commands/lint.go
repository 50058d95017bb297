package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ktsmell/internal/cli/config"
	"github.com/leapstack-labs/ktsmell/internal/cli/output"
	"github.com/leapstack-labs/ktsmell/internal/engine"
	"github.com/leapstack-labs/ktsmell/internal/state"
	"github.com/leapstack-labs/ktsmell/internal/watch"
	"github.com/leapstack-labs/ktsmell/pkg/lint"
	_ "github.com/leapstack-labs/ktsmell/pkg/lint/rules" // register rules
)

// ErrLintIssues is returned when a lint run reports findings.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths       []string // Files or directories to lint
	Format      string   // Output format: text, markdown, json, sonar
	Disable     []string // Rule IDs to disable
	Rules       []string // Run only specific rules
	Severity    string   // Minimum severity: error, warning, info, hint
	Record      bool     // Save the run to the state database
	Watch       bool     // Re-lint when files change
	Concurrency int      // Files analyzed at once
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Find code smells in Kotlin sources",
		Long: `Analyze Kotlin files for code smells.

Directories are searched recursively for files matching the include
patterns (*.kt and *.kts by default). Rules can be disabled, given another
severity or configured in ktsmell.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format
  - Sonar: SonarQube generic issue format`,
		Example: `  # Lint the current directory
  ktsmell lint

  # Lint specific paths
  ktsmell lint src/main/kotlin app/Build.kt

  # Output as JSON
  ktsmell lint --format json

  # Disable specific rules
  ktsmell lint --disable LongParameterList

  # Record the run and re-lint on every change
  ktsmell lint --record --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, sonar")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to report: error, warning, info, hint")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record the run in the state database")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint when Kotlin files change")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "j", 0, "Files analyzed at once (default: number of CPUs)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	cfg := cmdCtx.Cfg

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q", opts.Severity)
	}

	lintCfg, err := buildLintConfig(cfg, opts)
	if err != nil {
		return err
	}

	concurrency := cfg.Concurrency
	if opts.Concurrency > 0 {
		concurrency = opts.Concurrency
	}

	eng := engine.New(engine.Config{
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Concurrency: concurrency,
		Lint:        lintCfg,
		Logger:      cmdCtx.Logger,
	})

	run := func(ctx context.Context) (int, error) {
		return lintOnce(ctx, cmdCtx, eng, opts, threshold)
	}

	if !opts.Watch {
		found, err := run(cmd.Context())
		if err != nil {
			return err
		}
		if found > 0 {
			return ErrLintIssues
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if _, err := run(ctx); err != nil {
		return err
	}

	roots := opts.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}
	w := watch.New(watch.Config{Roots: roots, Exclude: eng.Exclude(), Logger: cmdCtx.Logger})
	cmdCtx.Renderer.Println(cmdCtx.Renderer.Styles().Muted.Render("Watching for changes (Ctrl+C to stop)..."))

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		cmdCtx.Logger.Info("re-linting", "changed", len(changed))
		if _, err := run(ctx); err != nil && ctx.Err() == nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	})
}

// lintOnce runs one lint pass and renders it. It returns the number of
// reported findings.
func lintOnce(ctx context.Context, cmdCtx *CommandContext, eng *engine.Engine, opts *LintOptions, threshold lint.Severity) (int, error) {
	started := time.Now()
	report, err := eng.Lint(ctx, opts.Paths...)
	if err != nil {
		return 0, err
	}
	report = report.Filter(threshold)

	var runID string
	if opts.Record {
		runID, err = recordRun(ctx, cmdCtx, report, started, opts.Paths)
		if err != nil {
			return 0, err
		}
	}

	if err := renderLintReport(cmdCtx.Renderer, report, runID); err != nil {
		return 0, err
	}
	return report.SmellCount(), nil
}

func recordRun(ctx context.Context, cmdCtx *CommandContext, report *engine.Report, started time.Time, paths []string) (string, error) {
	store, cleanup, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to open state store: %w", err)
	}
	defer cleanup()

	if len(paths) == 0 {
		paths = []string{"."}
	}
	run, findings := state.RunFromReport(report, started, paths)
	if err := store.SaveRun(ctx, run, findings); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return run.ID, nil
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	// Project config first (lower precedence)
	var lintCfg *lint.Config
	if cfg != nil {
		lintCfg = lint.ConfigFromCore(cfg.Lint)
	} else {
		lintCfg = lint.NewConfig()
	}

	// CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool)
		for _, id := range opts.Rules {
			id = strings.TrimSpace(id)
			if _, ok := lint.GetByID(id); !ok {
				return nil, fmt.Errorf("unknown rule %q", id)
			}
			enabled[id] = true
		}
		for _, info := range lint.AllRules() {
			if !enabled[info.ID] {
				lintCfg.Disable(info.ID)
			}
		}
	}

	return lintCfg, nil
}

func completeRuleIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var ids []string
	for _, info := range lint.AllRules() {
		ids = append(ids, info.ID+"\t"+info.Description)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func summarize(report *engine.Report) output.LintSummary {
	summary := output.LintSummary{
		FilesAnalyzed: len(report.Files),
		ParseErrors:   len(report.ParseErrors()),
	}
	for _, f := range report.Files {
		if len(f.Smells) > 0 {
			summary.FilesWithIssues++
		}
		for _, s := range f.Smells {
			summary.TotalIssues++
			summary.DebtMinutes += s.Issue.Debt.Minutes()
			switch s.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}
	return summary
}

func renderLintReport(r *output.Renderer, report *engine.Report, runID string) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(lintJSON(report, runID))
	case output.ModeSonar:
		return r.JSON(lintSonar(report))
	case output.ModeMarkdown:
		renderLintMarkdown(r, report, runID)
	default:
		renderLintText(r, report, runID)
	}
	return nil
}

func lintJSON(report *engine.Report, runID string) output.LintOutput {
	out := output.LintOutput{RunID: runID, Summary: summarize(report), Files: []output.LintFileResult{}}
	for _, f := range report.Files {
		if len(f.Smells) == 0 && f.ParseError == nil {
			continue
		}
		fr := output.LintFileResult{Path: f.Path, Diagnostics: []output.LintDiagnostic{}}
		if f.ParseError != nil {
			fr.ParseError = f.ParseError.Error()
		}
		for _, s := range f.Smells {
			fr.Diagnostics = append(fr.Diagnostics, output.LintDiagnostic{
				RuleID:           s.RuleID(),
				Severity:         s.Severity.String(),
				Message:          s.Message,
				Entity:           s.Entity.Name,
				Signature:        s.Entity.Signature,
				Line:             s.Pos().Line,
				Column:           s.Pos().Column,
				Debt:             s.Issue.Debt.String(),
				DocumentationURL: s.DocumentationURL,
			})
		}
		out.Files = append(out.Files, fr)
	}
	return out
}

func lintSonar(report *engine.Report) output.SonarReport {
	out := output.SonarReport{Issues: []output.SonarIssue{}}
	for _, s := range report.Smells() {
		col := s.Pos().Column - 1
		if col < 0 {
			col = 0
		}
		out.Issues = append(out.Issues, output.SonarIssue{
			EngineID: "ktsmell",
			RuleID:   s.RuleID(),
			Severity: output.SonarSeverity(s.Severity.String()),
			Type:     "CODE_SMELL",
			PrimaryLocation: output.SonarLocation{
				Message:   s.Message,
				FilePath:  s.Entity.Path,
				TextRange: output.SonarTextRange{StartLine: s.Pos().Line, StartColumn: col},
			},
			EffortMinutes: s.Issue.Debt.Minutes(),
		})
	}
	return out
}

func renderLintText(r *output.Renderer, report *engine.Report, runID string) {
	styles := r.Styles()

	for _, f := range report.ParseErrors() {
		r.Warning(fmt.Sprintf("skipped %s: %v", f.Path, f.ParseError))
	}

	summary := summarize(report)
	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No code smells found in %d files", summary.FilesAnalyzed))
		return
	}

	for _, f := range report.Files {
		if len(f.Smells) == 0 {
			continue
		}
		r.Println(styles.FilePath.Render(f.Path))
		for _, s := range f.Smells {
			loc := fmt.Sprintf("%d:%d", s.Pos().Line, s.Pos().Column)
			r.Printf("  %s  %s  %s  %s %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityLabel(r, s.Severity),
				styles.Bold.Render(s.RuleID()),
				s.Message,
				styles.Muted.Render("("+s.Entity.Signature+")"),
			)
		}
		r.Println("")
	}

	r.Printf("Summary: %s in %d of %d files, %s of debt\n",
		strings.Join(summaryParts(summary), ", "),
		summary.FilesWithIssues, summary.FilesAnalyzed,
		lint.Debt{Mins: summary.DebtMinutes}.String())
	if runID != "" {
		r.Println(styles.Muted.Render("Recorded run " + runID))
	}
}

func renderLintMarkdown(r *output.Renderer, report *engine.Report, runID string) {
	summary := summarize(report)

	r.Println("# Lint Results")
	r.Println("")

	if parseErrors := report.ParseErrors(); len(parseErrors) > 0 {
		r.Println("## Skipped files")
		r.Println("")
		for _, f := range parseErrors {
			r.Printf("- `%s`: %v\n", f.Path, f.ParseError)
		}
		r.Println("")
	}

	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No code smells found in %d files", summary.FilesAnalyzed))
		return
	}

	for _, f := range report.Files {
		if len(f.Smells) == 0 {
			continue
		}
		r.Printf("## %s\n\n", f.Path)
		for _, s := range f.Smells {
			r.Printf("- `%d:%d` **%s** `%s` %s (`%s`)\n",
				s.Pos().Line, s.Pos().Column, s.Severity, s.RuleID(), s.Message, s.Entity.Signature)
		}
		r.Println("")
	}

	r.Printf("**Summary:** %s in %d of %d files, %s of debt\n",
		strings.Join(summaryParts(summary), ", "),
		summary.FilesWithIssues, summary.FilesAnalyzed,
		lint.Debt{Mins: summary.DebtMinutes}.String())
	if runID != "" {
		r.Println("")
		r.Printf("Recorded run `%s`\n", runID)
	}
}

func summaryParts(summary output.LintSummary) []string {
	parts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", summary.Hints))
	}
	return parts
}

func severityLabel(r *output.Renderer, sev lint.Severity) string {
	return getSeverityStyle(r.Styles(), sev).Render(fmt.Sprintf("%-7s", sev))
}
