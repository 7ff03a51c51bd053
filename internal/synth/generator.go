// Package synth generates deterministic synthetic transactions for bulk
// classification runs.
package synth

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/siftline/siftline/internal/model"
)

// ErrInvalidOptions indicates generator options that failed validation.
var ErrInvalidOptions = errors.New("invalid generator options")

var failureReasons = []string{
	"insufficient funds",
	"card declined",
	"network timeout",
	"fraud hold",
}

// Options controls the shape of the generated data. All rates are
// fractions in [0, 1].
type Options struct {
	Count         int
	Seed          int64
	HighValueRate float64 // fraction drawn from the high-value band
	MismatchRate  float64 // fraction with an absent or drifted reconciled amount
	PendingRate   float64
	FailureRate   float64
}

// DefaultOptions mirrors the distribution of the original sample data.
func DefaultOptions() Options {
	return Options{
		Count:         100_000,
		Seed:          1,
		HighValueRate: 0.05,
		MismatchRate:  0.10,
		PendingRate:   0.20,
		FailureRate:   0.05,
	}
}

func (o Options) validate() error {
	if o.Count < 0 {
		return fmt.Errorf("%w: count %d must be non-negative", ErrInvalidOptions, o.Count)
	}
	for name, rate := range map[string]float64{
		"high value rate": o.HighValueRate,
		"mismatch rate":   o.MismatchRate,
		"pending rate":    o.PendingRate,
		"failure rate":    o.FailureRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: %s %v must be between 0 and 1", ErrInvalidOptions, name, rate)
		}
	}
	if o.PendingRate+o.FailureRate > 1 {
		return fmt.Errorf("%w: pending and failure rates sum to more than 1", ErrInvalidOptions)
	}
	return nil
}

// Generate produces opts.Count transactions. The same options always yield
// the same sequence.
func Generate(opts Options) ([]model.Transaction, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Count == 0 {
		return []model.Transaction{}, nil
	}

	txns := make([]model.Transaction, 0, opts.Count)
	err := GenerateBatches(opts, opts.Count, func(batch []model.Transaction) error {
		txns = append(txns, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// GenerateBatches produces opts.Count transactions in batches of at most
// batchSize, invoking fn for each batch. Generation stops at the first
// error from fn. IDs are sequential starting at zero.
func GenerateBatches(opts Options, batchSize int, fn func([]model.Transaction) error) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if batchSize <= 0 {
		return fmt.Errorf("%w: batch size %d must be positive", ErrInvalidOptions, batchSize)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	batch := make([]model.Transaction, 0, batchSize)

	for id := int64(0); id < int64(opts.Count); id++ {
		txn, err := generateOne(rng, id, opts)
		if err != nil {
			return err
		}
		batch = append(batch, txn)

		if len(batch) == batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

func generateOne(rng *rand.Rand, id int64, opts Options) (model.Transaction, error) {
	amount := rng.Float64() * 50_000
	if rng.Float64() < opts.HighValueRate {
		amount = 50_000 + rng.Float64()*450_000
	}
	// Round to cents like the source data.
	amount = float64(int64(amount*100)) / 100

	status := model.Settled()
	switch roll := rng.Float64(); {
	case roll < opts.PendingRate:
		status = model.Pending()
	case roll < opts.PendingRate+opts.FailureRate:
		status = model.Failed(failureReasons[rng.Intn(len(failureReasons))])
	}

	var reconciled *float64
	if rng.Float64() < opts.MismatchRate {
		// Half of mismatches report nothing, half drift off the amount.
		if rng.Float64() < 0.5 {
			drifted := amount + float64(rng.Intn(1_000)+1)/100
			reconciled = &drifted
		}
	} else {
		v := amount
		reconciled = &v
	}

	return model.NewTransaction(id, amount, reconciled, status)
}
