package cli

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/siftline/siftline/internal/classify"
	"github.com/siftline/siftline/internal/model"
	"github.com/siftline/siftline/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReport(t *testing.T) {
	rec := 100_000.0
	txns := []model.Transaction{}
	for _, spec := range []struct {
		reconciled *float64
		id         int64
		amount     float64
		status     model.Status
	}{
		{id: 1, amount: 5_000, reconciled: nil, status: model.Pending()},
		{id: 2, amount: 100_000, reconciled: &rec, status: model.Settled()},
	} {
		txn, err := model.NewTransaction(spec.id, spec.amount, spec.reconciled, spec.status)
		require.NoError(t, err)
		txns = append(txns, txn)
	}

	classifier := classify.New(classify.DefaultSet(50_000), classify.DefaultOptions())
	report, err := classifier.Classify(context.Background(), txns)
	require.NoError(t, err)

	out := RenderReport(report, 10)

	assert.Contains(t, out, "Classification Report")
	assert.Contains(t, out, classify.BucketPending)
	assert.Contains(t, out, classify.BucketHighValue)
	assert.Contains(t, out, classify.BucketMismatched)
	assert.Contains(t, out, "reconciled=absent")
	assert.Contains(t, out, "#2")
}

func TestRenderReport_TruncatesSamples(t *testing.T) {
	txns := make([]model.Transaction, 0, 5)
	for i := int64(0); i < 5; i++ {
		txn, err := model.NewTransaction(i, 10, nil, model.Pending())
		require.NoError(t, err)
		txns = append(txns, txn)
	}

	classifier := classify.New(classify.DefaultSet(50_000), classify.DefaultOptions())
	report, err := classifier.Classify(context.Background(), txns)
	require.NoError(t, err)

	out := RenderReport(report, 2)
	assert.Contains(t, out, "and 3 more")
}

func TestRenderRuns(t *testing.T) {
	assert.Contains(t, RenderRuns(nil), "No classification runs")

	runs := []storage.RunSummary{
		{
			ID:          uuid.New(),
			StartedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			CompletedAt: time.Date(2026, 3, 1, 9, 0, 2, 0, time.UTC),
			TotalCount:  7,
			TotalAmount: 700,
			Buckets: []storage.RunBucket{
				{Name: classify.BucketPending, MatchCount: 3, AmountSum: 120},
			},
		},
	}
	out := RenderRuns(runs)
	assert.Contains(t, out, runs[0].ID.String())
	assert.Contains(t, out, "7 transactions")
	assert.Contains(t, out, classify.BucketPending)
}
