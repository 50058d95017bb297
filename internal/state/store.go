// Package state records lint runs and their findings in SQLite so results
// can be compared over time.
package state

import (
	"context"
	"strings"
	"time"

	"github.com/leapstack-labs/ktsmell/internal/engine"
)

// Store persists lint runs.
type Store interface {
	// Migrate brings the schema up to date.
	Migrate(ctx context.Context) error

	// SaveRun stores a run and its findings in one transaction. An empty
	// run.ID is replaced with a generated one.
	SaveRun(ctx context.Context, run *Run, findings []Finding) error

	// ListRuns returns the most recent runs first. limit <= 0 returns all.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// GetRun finds a run by its ID or an unambiguous ID prefix.
	GetRun(ctx context.Context, id string) (*Run, error)

	// RunFindings returns the findings of a run ordered by path and position.
	RunFindings(ctx context.Context, runID string) ([]Finding, error)

	// Close releases the database.
	Close() error
}

// Run is one recorded invocation of the linter.
type Run struct {
	ID          string
	StartedAt   time.Time
	Duration    time.Duration
	Paths       []string
	Files       int
	Smells      int
	ParseErrors int
	DebtMinutes int
}

// ShortID returns the first eight characters of the run ID.
func (r Run) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

// Finding is a stored code smell.
type Finding struct {
	RunID       string `json:"run_id"`
	RuleID      string `json:"rule_id"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Entity      string `json:"entity"`
	Signature   string `json:"signature,omitempty"`
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	DebtMinutes int    `json:"debt_minutes"`
}

// RunFromReport converts an engine report into a run record and its findings.
func RunFromReport(report *engine.Report, startedAt time.Time, paths []string) (*Run, []Finding) {
	run := &Run{
		StartedAt:   startedAt.UTC(),
		Duration:    report.Duration,
		Paths:       paths,
		Files:       len(report.Files),
		ParseErrors: len(report.ParseErrors()),
	}

	var findings []Finding
	for _, s := range report.Smells() {
		debt := s.Issue.Debt.Minutes()
		findings = append(findings, Finding{
			RuleID:      s.RuleID(),
			Severity:    s.Severity.String(),
			Message:     s.Message,
			Entity:      s.Entity.Name,
			Signature:   s.Entity.Signature,
			Path:        s.Entity.Path,
			Line:        s.Pos().Line,
			Column:      s.Pos().Column,
			DebtMinutes: debt,
		})
		run.DebtMinutes += debt
	}
	run.Smells = len(findings)
	return run, findings
}

func joinPaths(paths []string) string {
	return strings.Join(paths, "\n")
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
