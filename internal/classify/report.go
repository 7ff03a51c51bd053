package classify

import (
	"time"

	"github.com/google/uuid"
	"github.com/siftline/siftline/internal/model"
)

// Bucket holds the transactions matching one predicate, in the order they
// were encountered in the input.
type Bucket struct {
	Name         string
	Transactions []model.Transaction
	MatchCount   int
	AmountSum    float64
}

// Report is the read-only result of one classification pass. Buckets appear
// in predicate-set order; callers must not modify them.
type Report struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Buckets     []Bucket
	RunID       uuid.UUID
	TotalCount  int
	TotalAmount float64
}

// Bucket returns the bucket with the given name, if present.
func (r *Report) Bucket(name string) (*Bucket, bool) {
	for i := range r.Buckets {
		if r.Buckets[i].Name == name {
			return &r.Buckets[i], true
		}
	}
	return nil, false
}

// Duration returns the wall-clock time the pass took.
func (r *Report) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
