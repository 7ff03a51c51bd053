// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// StatusKind identifies one of the closed set of transaction states.
type StatusKind string

// Transaction status kinds.
const (
	KindPending StatusKind = "PENDING"
	KindSettled StatusKind = "SETTLED"
	KindFailed  StatusKind = "FAILED"
)

// Valid reports whether the kind is one of the known states.
func (k StatusKind) Valid() bool {
	switch k {
	case KindPending, KindSettled, KindFailed:
		return true
	default:
		return false
	}
}

// ParseStatusKind converts a stored string back into a StatusKind.
func ParseStatusKind(s string) (StatusKind, error) {
	k := StatusKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransaction, s)
	}
	return k, nil
}

// Status is a transaction state plus any variant payload.
// Reason is carried only by the Failed variant.
type Status struct {
	Kind   StatusKind
	Reason string
}

// Pending returns the pending status.
func Pending() Status {
	return Status{Kind: KindPending}
}

// Settled returns the settled status.
func Settled() Status {
	return Status{Kind: KindSettled}
}

// Failed returns the failed status carrying the failure reason.
func Failed(reason string) Status {
	return Status{Kind: KindFailed, Reason: reason}
}
