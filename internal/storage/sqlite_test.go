package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/siftline/siftline/internal/classify"
	"github.com/siftline/siftline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	db, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func mustTxn(t *testing.T, id int64, amount float64, reconciled *float64, status model.Status) model.Transaction {
	t.Helper()
	txn, err := model.NewTransaction(id, amount, reconciled, status)
	require.NoError(t, err)
	return txn
}

func float64Ptr(v float64) *float64 {
	return &v
}

func TestSQLiteStorage_SaveAndListTransactions(t *testing.T) {
	db := testStorage(t)
	ctx := context.Background()

	txns := []model.Transaction{
		mustTxn(t, 3, 5_000, nil, model.Pending()),
		mustTxn(t, 1, 100.50, float64Ptr(100.50), model.Settled()),
		mustTxn(t, 2, 75_000, float64Ptr(74_000), model.Failed("fraud hold")),
	}
	require.NoError(t, db.SaveTransactions(ctx, txns))

	got, err := db.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Listing is ordered by id regardless of insert order.
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)

	// Absent reconciled amount survives the round trip as absent.
	_, ok := got[2].Reconciled()
	assert.False(t, ok)

	rec, ok := got[1].Reconciled()
	require.True(t, ok)
	assert.Equal(t, 74_000.0, rec)

	assert.Equal(t, model.Failed("fraud hold"), got[1].Status)
	assert.Equal(t, model.Pending(), got[2].Status)
}

func TestSQLiteStorage_SaveTransactions_IgnoresDuplicateIDs(t *testing.T) {
	db := testStorage(t)
	ctx := context.Background()

	require.NoError(t, db.SaveTransactions(ctx, []model.Transaction{
		mustTxn(t, 1, 100, nil, model.Pending()),
	}))
	require.NoError(t, db.SaveTransactions(ctx, []model.Transaction{
		mustTxn(t, 1, 999, nil, model.Settled()),
		mustTxn(t, 2, 200, nil, model.Settled()),
	}))

	got, err := db.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Amount, "first write wins for a duplicate id")
}

func TestSQLiteStorage_SaveTransactions_Validation(t *testing.T) {
	db := testStorage(t)
	ctx := context.Background()

	err := db.SaveTransactions(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilParameter)

	err = db.SaveTransactions(ctx, []model.Transaction{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySlice)

	// A transaction that bypassed the model constructor is still rejected.
	err = db.SaveTransactions(ctx, []model.Transaction{{ID: 1, Amount: -5, Status: model.Settled()}})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidTransaction)
}

func TestSQLiteStorage_CountAndReset(t *testing.T) {
	db := testStorage(t)
	ctx := context.Background()

	count, err := db.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, db.SaveTransactions(ctx, []model.Transaction{
		mustTxn(t, 1, 10, nil, model.Pending()),
		mustTxn(t, 2, 20, nil, model.Settled()),
	}))

	count, err = db.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, db.ResetTransactions(ctx))
	count, err = db.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSQLiteStorage_SaveAndListRuns(t *testing.T) {
	db := testStorage(t)
	ctx := context.Background()

	older := &classify.Report{
		RunID:       uuid.New(),
		StartedAt:   time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2026, 1, 1, 10, 0, 3, 0, time.UTC),
		TotalCount:  10,
		TotalAmount: 1_000,
		Buckets: []classify.Bucket{
			{Name: classify.BucketPending, MatchCount: 4, AmountSum: 250},
			{Name: classify.BucketHighValue, MatchCount: 1, AmountSum: 600},
			{Name: classify.BucketMismatched, MatchCount: 2, AmountSum: 90},
		},
	}
	newer := &classify.Report{
		RunID:       uuid.New(),
		StartedAt:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2026, 2, 1, 10, 0, 1, 0, time.UTC),
		TotalCount:  5,
		TotalAmount: 500,
		Buckets: []classify.Bucket{
			{Name: classify.BucketPending, MatchCount: 1, AmountSum: 50},
		},
	}

	require.NoError(t, db.SaveRun(ctx, older))
	require.NoError(t, db.SaveRun(ctx, newer))

	runs, err := db.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, newer.RunID, runs[0].ID)
	assert.Equal(t, older.RunID, runs[1].ID)

	assert.Equal(t, 10, runs[1].TotalCount)
	assert.InDelta(t, 1_000, runs[1].TotalAmount, 1e-9)
	require.Len(t, runs[1].Buckets, 3)
	assert.Equal(t, classify.BucketPending, runs[1].Buckets[0].Name)
	assert.Equal(t, 4, runs[1].Buckets[0].MatchCount)
	assert.InDelta(t, 600, runs[1].Buckets[1].AmountSum, 1e-9)
}

func TestSQLiteStorage_SaveRun_Validation(t *testing.T) {
	db := testStorage(t)
	ctx := context.Background()

	err := db.SaveRun(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilParameter)
}

func TestSQLiteStorage_Migrate_Idempotent(t *testing.T) {
	db := testStorage(t)
	require.NoError(t, db.Migrate(context.Background()))
}
