package state

import (
	"context"
	"database/sql"
	"fmt"
)

// AddFileResults records per-file outcomes for a run in one transaction.
func (s *SQLiteStore) AddFileResults(ctx context.Context, runID string, results []FileResult) error {
	if s.db == nil {
		return ErrNotOpened
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO file_results (id, run_id, path, header_row, violations, error) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		var errMsg sql.NullString
		if r.Error != "" {
			errMsg = sql.NullString{String: r.Error, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, generateID(), runID, r.Path, r.HeaderRow, r.Violations, errMsg); err != nil {
			return fmt.Errorf("failed to record %s: %w", r.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit file results: %w", err)
	}
	return nil
}

// FileResults returns the file outcomes of a run ordered by path.
func (s *SQLiteStore) FileResults(ctx context.Context, runID string) ([]FileResult, error) {
	if s.db == nil {
		return nil, ErrNotOpened
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, path, header_row, violations, error FROM file_results WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query file results: %w", err)
	}
	defer rows.Close()

	var results []FileResult
	for rows.Next() {
		var (
			r      FileResult
			errMsg sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.Path, &r.HeaderRow, &r.Violations, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan file result: %w", err)
		}
		r.Error = errMsg.String
		results = append(results, r)
	}
	return results, rows.Err()
}
