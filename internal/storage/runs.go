package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/siftline/siftline/internal/classify"
)

// RunBucket is the persisted summary of one bucket from a run.
type RunBucket struct {
	Name       string
	MatchCount int
	AmountSum  float64
}

// RunSummary is the persisted summary of one classification run. Bucket
// record lists are not stored, only their aggregates.
type RunSummary struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Buckets     []RunBucket
	ID          uuid.UUID
	TotalCount  int
	TotalAmount float64
}

// SaveRun persists the aggregates of a classification report.
func (s *SQLiteStorage) SaveRun(ctx context.Context, report *classify.Report) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReport(report); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, completed_at, total_count, total_amount)
		VALUES (?, ?, ?, ?, ?)
	`,
		report.RunID.String(),
		report.StartedAt.UTC(),
		report.CompletedAt.UTC(),
		report.TotalCount,
		report.TotalAmount,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_buckets (run_id, name, position, match_count, amount_sum)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, bucket := range report.Buckets {
		if _, err := stmt.ExecContext(ctx,
			report.RunID.String(),
			bucket.Name,
			i,
			bucket.MatchCount,
			bucket.AmountSum,
		); err != nil {
			return fmt.Errorf("failed to insert run bucket %q: %w", bucket.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns all persisted run summaries, most recent first.
func (s *SQLiteStorage) ListRuns(ctx context.Context) ([]RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, completed_at, total_count, total_amount
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunSummary
	for rows.Next() {
		var (
			id  string
			run RunSummary
		)
		if err := rows.Scan(&id, &run.StartedAt, &run.CompletedAt, &run.TotalCount, &run.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run id %q: %w", id, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for i := range runs {
		buckets, err := s.listRunBuckets(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Buckets = buckets
	}
	return runs, nil
}

func (s *SQLiteStorage) listRunBuckets(ctx context.Context, runID uuid.UUID) ([]RunBucket, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, match_count, amount_sum
		FROM run_buckets
		WHERE run_id = ?
		ORDER BY position
	`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query run buckets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var buckets []RunBucket
	for rows.Next() {
		var bucket RunBucket
		if err := rows.Scan(&bucket.Name, &bucket.MatchCount, &bucket.AmountSum); err != nil {
			return nil, fmt.Errorf("failed to scan run bucket: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run buckets: %w", err)
	}
	return buckets, nil
}
