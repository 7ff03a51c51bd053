package classify

import (
	"testing"

	"github.com/siftline/siftline/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTxn(t *testing.T, id int64, amount float64, reconciled *float64, status model.Status) model.Transaction {
	t.Helper()
	txn, err := model.NewTransaction(id, amount, reconciled, status)
	require.NoError(t, err)
	return txn
}

func float64Ptr(v float64) *float64 {
	return &v
}

func TestPendingPredicate(t *testing.T) {
	pred := Pending()

	assert.True(t, pred.Match(mustTxn(t, 1, 100, nil, model.Pending())))
	assert.False(t, pred.Match(mustTxn(t, 2, 100, nil, model.Settled())))
	assert.False(t, pred.Match(mustTxn(t, 3, 100, nil, model.Failed("timeout"))))
}

func TestHighValuePredicate(t *testing.T) {
	pred := HighValue(50_000)

	tests := []struct {
		name   string
		amount float64
		want   bool
	}{
		{name: "well below threshold", amount: 5_000, want: false},
		{name: "exactly at threshold is not high value", amount: 50_000, want: false},
		{name: "just above threshold", amount: 50_000.01, want: true},
		{name: "well above threshold", amount: 100_000, want: true},
		{name: "zero amount", amount: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := mustTxn(t, 1, tt.amount, nil, model.Settled())
			assert.Equal(t, tt.want, pred.Match(txn))
		})
	}
}

func TestMismatchedPredicate(t *testing.T) {
	pred := Mismatched()

	tests := []struct {
		reconciled *float64
		name       string
		amount     float64
		want       bool
	}{
		{name: "absent reconciled amount is always mismatched", amount: 5_000, reconciled: nil, want: true},
		{name: "absent reconciled amount with zero amount", amount: 0, reconciled: nil, want: true},
		{name: "equal amounts match", amount: 5_000, reconciled: float64Ptr(5_000), want: false},
		{name: "reconciled above amount", amount: 5_000, reconciled: float64Ptr(5_100), want: true},
		{name: "reconciled below amount", amount: 5_000, reconciled: float64Ptr(4_900), want: true},
		{name: "exact comparison has no tolerance", amount: 5_000, reconciled: float64Ptr(5_000.0000001), want: true},
		{name: "reported zero against zero amount matches", amount: 0, reconciled: float64Ptr(0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := mustTxn(t, 1, tt.amount, tt.reconciled, model.Settled())
			assert.Equal(t, tt.want, pred.Match(txn))
		})
	}
}

func TestNewSet(t *testing.T) {
	tests := []struct {
		name       string
		predicates []Predicate
		wantErr    bool
	}{
		{
			name:       "valid set",
			predicates: []Predicate{Pending(), Mismatched()},
		},
		{
			name:    "empty set rejected",
			wantErr: true,
		},
		{
			name:       "duplicate names rejected",
			predicates: []Predicate{Pending(), Pending()},
			wantErr:    true,
		},
		{
			name:       "empty name rejected",
			predicates: []Predicate{{Name: "", Match: func(model.Transaction) bool { return true }}},
			wantErr:    true,
		},
		{
			name:       "nil matcher rejected",
			predicates: []Predicate{{Name: "broken"}},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet(tt.predicates...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPredicateSet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.predicates), set.Len())
		})
	}
}

func TestDefaultSet(t *testing.T) {
	set := DefaultSet(DefaultHighValueThreshold)
	assert.Equal(t, []string{BucketPending, BucketHighValue, BucketMismatched}, set.Names())
}
