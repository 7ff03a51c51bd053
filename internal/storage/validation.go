package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/siftline/siftline/internal/classify"
	"github.com/siftline/siftline/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions against the model
// invariants before they touch the database.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if txn.ID < 0 {
			return fmt.Errorf("transaction at index %d: %w: negative id", i, model.ErrInvalidTransaction)
		}
		if txn.Amount < 0 {
			return fmt.Errorf("transaction at index %d: %w: negative amount", i, model.ErrInvalidTransaction)
		}
		if !txn.Status.Kind.Valid() {
			return fmt.Errorf("transaction at index %d: %w: unknown status %q", i, model.ErrInvalidTransaction, txn.Status.Kind)
		}
	}
	return nil
}

// validateReport validates a classification report before persisting it.
func validateReport(report *classify.Report) error {
	if report == nil {
		return fmt.Errorf("%w: report", ErrNilParameter)
	}
	for _, bucket := range report.Buckets {
		if bucket.Name == "" {
			return fmt.Errorf("%w: bucket name", ErrEmptyString)
		}
	}
	return nil
}
