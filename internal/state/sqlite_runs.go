package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when no run matches the requested ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, started_at, duration_ms, paths, files, smells, parse_errors, debt_minutes`

// SaveRun stores a run and its findings in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run, findings []Finding) (err error) {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if run.ID == "" {
		run.ID = generateID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), joinPaths(run.Paths),
		run.Files, run.Smells, run.ParseErrors, run.DebtMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i := range findings {
		f := &findings[i]
		f.RunID = run.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO findings (run_id, rule_id, severity, message, entity, signature, path, line, col, debt_minutes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.RunID, f.RuleID, f.Severity, f.Message, f.Entity, f.Signature, f.Path, f.Line, f.Column, f.DebtMinutes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	s.logger.Debug("saved run", "id", run.ID, "findings", len(findings))
	return nil
}

// ListRuns returns the most recent runs first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves a run by ID or unambiguous ID prefix.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, length(?)) = ? ORDER BY id = ? DESC LIMIT 2`,
		id, id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case matches[0].ID == id, len(matches) == 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id %q is ambiguous", id)
	}
}

// RunFindings returns the findings of a run.
func (s *SQLiteStore) RunFindings(ctx context.Context, runID string) ([]Finding, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, rule_id, severity, message, entity, signature, path, line, col, debt_minutes
		 FROM findings WHERE run_id = ? ORDER BY path, line, col, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []Finding
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.RunID, &f.RuleID, &f.Severity, &f.Message, &f.Entity, &f.Signature,
			&f.Path, &f.Line, &f.Column, &f.DebtMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	return findings, nil
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var (
		run        Run
		startedAt  int64
		durationMS int64
		paths      string
	)
	if err := rows.Scan(&run.ID, &startedAt, &durationMS, &paths, &run.Files, &run.Smells,
		&run.ParseErrors, &run.DebtMinutes); err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.StartedAt = time.UnixMilli(startedAt).UTC()
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.Paths = splitPaths(paths)
	return &run, nil
}
