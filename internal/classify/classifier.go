package classify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/siftline/siftline/internal/model"
)

// Options configures how a classification pass runs.
type Options struct {
	Workers   int // number of parallel workers; <= 1 runs the pass sequentially
	ChunkSize int // transactions per parallel chunk
}

// DefaultOptions returns sensible defaults for a sequential pass.
func DefaultOptions() Options {
	return Options{
		Workers:   1,
		ChunkSize: 50_000,
	}
}

// Classifier evaluates a fixed predicate set against transaction batches.
// It holds no state across calls; each Classify invocation reads a fresh
// input and returns a fresh Report.
type Classifier struct {
	set  *Set
	opts Options
}

// New creates a classifier for the given predicate set.
func New(set *Set, opts Options) *Classifier {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultOptions().ChunkSize
	}
	return &Classifier{set: set, opts: opts}
}

// Classify traverses the input exactly once, evaluating every predicate
// against every transaction. Buckets are non-exclusive and preserve input
// order. The pass itself cannot fail; the only error is context
// cancellation during a parallel run.
func (c *Classifier) Classify(ctx context.Context, txns []model.Transaction) (*Report, error) {
	startedAt := time.Now()

	var agg *partial
	if c.opts.Workers > 1 && len(txns) > c.opts.ChunkSize {
		merged, err := c.classifyParallel(ctx, txns)
		if err != nil {
			return nil, err
		}
		agg = merged
	} else {
		agg = c.classifyChunk(txns)
	}

	report := &Report{
		RunID:       uuid.New(),
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
		TotalCount:  agg.count,
		TotalAmount: agg.amount,
		Buckets:     make([]Bucket, c.set.Len()),
	}
	for i, p := range c.set.predicates {
		report.Buckets[i] = Bucket{
			Name:         p.Name,
			Transactions: agg.buckets[i],
			MatchCount:   agg.matchCounts[i],
			AmountSum:    agg.amountSums[i],
		}
	}

	slog.Debug("classification pass complete",
		"transactions", report.TotalCount,
		"predicates", c.set.Len(),
		"duration", report.Duration())

	return report, nil
}

// partial accumulates buckets and aggregates for one contiguous slice of
// the input.
type partial struct {
	buckets     [][]model.Transaction
	matchCounts []int
	amountSums  []float64
	count       int
	amount      float64
}

func (c *Classifier) newPartial() *partial {
	n := c.set.Len()
	return &partial{
		buckets:     make([][]model.Transaction, n),
		matchCounts: make([]int, n),
		amountSums:  make([]float64, n),
	}
}

// classifyChunk is the single-traversal core: every predicate is evaluated
// exactly once per transaction.
func (c *Classifier) classifyChunk(txns []model.Transaction) *partial {
	p := c.newPartial()
	for _, txn := range txns {
		p.count++
		p.amount += txn.Amount
		for i, pred := range c.set.predicates {
			if pred.Match(txn) {
				p.buckets[i] = append(p.buckets[i], txn)
				p.matchCounts[i]++
				p.amountSums[i] += txn.Amount
			}
		}
	}
	return p
}

// classifyParallel splits the input into contiguous chunks and fans them
// out to workers. Each worker owns its partials outright; the merge step
// concatenates them in original input order, never completion order.
func (c *Classifier) classifyParallel(ctx context.Context, txns []model.Transaction) (*partial, error) {
	chunkCount := (len(txns) + c.opts.ChunkSize - 1) / c.opts.ChunkSize
	partials := make([]*partial, chunkCount)

	workChan := make(chan int, chunkCount)
	for i := 0; i < chunkCount; i++ {
		workChan <- i
	}
	close(workChan)

	var wg sync.WaitGroup
	var cancelOnce sync.Once
	var cancelErr error

	workers := c.opts.Workers
	if workers > chunkCount {
		workers = chunkCount
	}
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(workerID int) {
			defer wg.Done()
			for idx := range workChan {
				select {
				case <-ctx.Done():
					cancelOnce.Do(func() { cancelErr = ctx.Err() })
					return
				default:
				}

				start := idx * c.opts.ChunkSize
				end := start + c.opts.ChunkSize
				if end > len(txns) {
					end = len(txns)
				}

				slog.Debug("worker classifying chunk",
					"worker_id", workerID,
					"chunk", idx,
					"records", end-start)
				partials[idx] = c.classifyChunk(txns[start:end])
			}
		}(w)
	}

	wg.Wait()

	if cancelErr != nil {
		return nil, cancelErr
	}

	// Merge in chunk-index order to keep buckets as ordered subsequences
	// of the input.
	merged := c.newPartial()
	for _, p := range partials {
		merged.count += p.count
		merged.amount += p.amount
		for i := range c.set.predicates {
			merged.buckets[i] = append(merged.buckets[i], p.buckets[i]...)
			merged.matchCounts[i] += p.matchCounts[i]
			merged.amountSums[i] += p.amountSums[i]
		}
	}
	return merged, nil
}
