package model

import (
	"errors"
	"fmt"
)

// ErrInvalidTransaction indicates a transaction that failed construction-time validation.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Transaction represents a single financial transaction to classify.
// Build one with NewTransaction; downstream code assumes the invariants
// it enforces and performs no re-validation.
type Transaction struct {
	ReconciledAmount *float64 // nil when no settled amount was reported
	ID               int64
	Amount           float64
	Status           Status
}

// NewTransaction validates and builds a Transaction. Validation failures
// name the offending field and wrap ErrInvalidTransaction.
func NewTransaction(id int64, amount float64, reconciled *float64, status Status) (Transaction, error) {
	if id < 0 {
		return Transaction{}, fmt.Errorf("%w: id %d must be non-negative", ErrInvalidTransaction, id)
	}
	if amount < 0 {
		return Transaction{}, fmt.Errorf("%w: amount %v must be non-negative", ErrInvalidTransaction, amount)
	}
	if !status.Kind.Valid() {
		return Transaction{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransaction, status.Kind)
	}
	if status.Kind != KindFailed && status.Reason != "" {
		return Transaction{}, fmt.Errorf("%w: reason %q is only valid on failed status", ErrInvalidTransaction, status.Reason)
	}

	// Copy the reconciled amount so the transaction does not alias caller memory.
	var rec *float64
	if reconciled != nil {
		v := *reconciled
		rec = &v
	}

	return Transaction{
		ID:               id,
		Amount:           amount,
		ReconciledAmount: rec,
		Status:           status,
	}, nil
}

// Reconciled returns the settled amount and whether one was reported.
// Absence is distinct from a reported zero.
func (t Transaction) Reconciled() (float64, bool) {
	if t.ReconciledAmount == nil {
		return 0, false
	}
	return *t.ReconciledAmount, true
}
