// Package classify partitions transactions into named buckets in a single pass.
package classify

import (
	"errors"
	"fmt"

	"github.com/siftline/siftline/internal/model"
)

// DefaultHighValueThreshold is the amount above which a transaction is
// considered high value when no threshold is configured.
const DefaultHighValueThreshold = 50_000

// Built-in predicate names.
const (
	BucketPending    = "pending"
	BucketHighValue  = "high_value"
	BucketMismatched = "mismatched"
)

// ErrInvalidPredicateSet indicates a predicate set that failed construction.
var ErrInvalidPredicateSet = errors.New("invalid predicate set")

// Predicate is a named boolean test over one transaction. Match must not
// mutate the transaction and must not depend on evaluation order.
type Predicate struct {
	Match func(model.Transaction) bool
	Name  string
}

// Pending matches transactions still awaiting settlement.
func Pending() Predicate {
	return Predicate{
		Name: BucketPending,
		Match: func(txn model.Transaction) bool {
			return txn.Status.Kind == model.KindPending
		},
	}
}

// HighValue matches transactions whose amount strictly exceeds the threshold.
// An amount exactly at the threshold does not match.
func HighValue(threshold float64) Predicate {
	return Predicate{
		Name: BucketHighValue,
		Match: func(txn model.Transaction) bool {
			return txn.Amount > threshold
		},
	}
}

// Mismatched matches transactions whose reconciled amount is absent or
// differs from the nominal amount. The comparison is exact; no tolerance.
func Mismatched() Predicate {
	return Predicate{
		Name: BucketMismatched,
		Match: func(txn model.Transaction) bool {
			rec, ok := txn.Reconciled()
			return !ok || rec != txn.Amount
		},
	}
}

// Set is an ordered collection of uniquely named predicates, fixed for the
// duration of a classification pass.
type Set struct {
	predicates []Predicate
}

// NewSet builds a predicate set, rejecting empty names, nil matchers and
// duplicate names.
func NewSet(predicates ...Predicate) (*Set, error) {
	if len(predicates) == 0 {
		return nil, fmt.Errorf("%w: at least one predicate is required", ErrInvalidPredicateSet)
	}

	seen := make(map[string]struct{}, len(predicates))
	for _, p := range predicates {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: predicate name cannot be empty", ErrInvalidPredicateSet)
		}
		if p.Match == nil {
			return nil, fmt.Errorf("%w: predicate %q has no match function", ErrInvalidPredicateSet, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate predicate name %q", ErrInvalidPredicateSet, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	set := &Set{predicates: make([]Predicate, len(predicates))}
	copy(set.predicates, predicates)
	return set, nil
}

// DefaultSet returns the built-in pending / high value / mismatched
// predicates with the given high-value threshold.
func DefaultSet(threshold float64) *Set {
	set, err := NewSet(Pending(), HighValue(threshold), Mismatched())
	if err != nil {
		// The built-ins are statically well formed.
		panic(err)
	}
	return set
}

// Len returns the number of predicates in the set.
func (s *Set) Len() int {
	return len(s.predicates)
}

// Names returns the predicate names in evaluation order.
func (s *Set) Names() []string {
	names := make([]string, len(s.predicates))
	for i, p := range s.predicates {
		names[i] = p.Name
	}
	return names
}
