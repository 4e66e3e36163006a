package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is one recorded engine run.
type Run struct {
	ID         string
	InputPath  string
	Mode       string
	Violations int
	Repairs    int
	Success    bool
	CreatedAt  time.Time
}

// Finding is one violation or repair recorded for a run. Kind is "error" for
// violations and "repair" for mutations; a finding is never both.
type Finding struct {
	RunID    string
	Kind     string
	Category string
	Message  string
}

// Store persists runs and their findings.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by db.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// RecordRun inserts a run and its findings in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, findings []Finding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, input_path, mode, violations, repairs, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.InputPath, run.Mode, run.Violations, run.Repairs, run.Success, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, finding := range findings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO findings (run_id, kind, category, message)
			VALUES (?, ?, ?, ?)
		`, run.ID, finding.Kind, finding.Category, finding.Message)
		if err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, input_path, mode, violations, repairs, success, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.InputPath, &run.Mode, &run.Violations, &run.Repairs, &run.Success, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input_path, mode, violations, repairs, success, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.InputPath, &run.Mode, &run.Violations, &run.Repairs, &run.Success, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Findings returns a run's findings in insertion order.
func (s *Store) Findings(ctx context.Context, runID string) ([]Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, kind, category, message
		FROM findings
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list findings: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var finding Finding
		if err := rows.Scan(&finding.RunID, &finding.Kind, &finding.Category, &finding.Message); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, finding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate findings: %w", err)
	}
	return findings, nil
}
