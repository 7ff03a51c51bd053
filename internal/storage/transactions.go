package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/siftline/siftline/internal/model"
)

// SaveTransactions inserts transactions in one database transaction.
// Existing rows with the same id are left untouched.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, amount, reconciled_amount, status, failure_reason
		) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		var reconciled sql.NullFloat64
		if rec, ok := txn.Reconciled(); ok {
			reconciled = sql.NullFloat64{Float64: rec, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			txn.ID,
			txn.Amount,
			reconciled,
			string(txn.Status.Kind),
			txn.Status.Reason,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// ListTransactions returns all stored transactions ordered by id, which is
// the insertion order the classifier's buckets preserve.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, reconciled_amount, status, failure_reason
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			id         int64
			amount     float64
			reconciled sql.NullFloat64
			status     string
			reason     string
		)
		if err := rows.Scan(&id, &amount, &reconciled, &status, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		kind, err := model.ParseStatusKind(status)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", id, err)
		}

		var rec *float64
		if reconciled.Valid {
			rec = &reconciled.Float64
		}

		txn, err := model.NewTransaction(id, amount, rec, model.Status{Kind: kind, Reason: reason})
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", id, err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// CountTransactions returns the number of stored transactions.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ResetTransactions deletes all stored transactions.
func (s *SQLiteStorage) ResetTransactions(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to reset transactions: %w", err)
	}
	return nil
}
