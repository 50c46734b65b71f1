package history

import (
	"context"
	"fmt"
	"time"
)

// Append stores one record and prunes the ledger to the configured size.
func (s *Store) Append(ctx context.Context, record Record) error {
	ctx = ensureContext(ctx)

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.execWithRetry(ctx, `
		INSERT INTO invocations (created_at, operation, host, batch_id, request, response, outcome, error, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UTC().Format(time.RFC3339Nano),
		record.Operation,
		record.Host,
		record.BatchID,
		record.Request,
		record.Response,
		string(record.Outcome),
		record.Error,
		record.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("append history record: %w", err)
	}

	return s.prune(ctx)
}

func (s *Store) prune(ctx context.Context) error {
	if s.maxEntries <= 0 {
		return nil
	}
	_, err := s.execWithRetry(ctx, `
		DELETE FROM invocations
		WHERE id NOT IN (SELECT id FROM invocations ORDER BY id DESC LIMIT ?)`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	ctx = ensureContext(ctx)

	query := `
		SELECT id, created_at, operation, host, batch_id, request, response, outcome, error, elapsed_ms
		FROM invocations
		ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record    Record
			createdAt string
			outcome   string
			elapsedMS int64
		)
		if err := rows.Scan(
			&record.ID,
			&createdAt,
			&record.Operation,
			&record.Host,
			&record.BatchID,
			&record.Request,
			&record.Response,
			&outcome,
			&record.Error,
			&elapsedMS,
		); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		record.CreatedAt = parsed
		record.Outcome = Outcome(outcome)
		record.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, record)
	}
	return records, rows.Err()
}

// Clear removes every record and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	res, err := s.execWithRetry(ctx, "DELETE FROM invocations")
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared records: %w", err)
	}
	return affected, nil
}
