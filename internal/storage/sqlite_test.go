package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/testutil"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestSaveAndGetTransactions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	txns := []model.Transaction{
		testutil.Txn(t, "2025-01-15", "STARBUCKS STORE 04411", 5.75),
		testutil.Txn(t, "2025-02-01", "NETFLIX.COM", 15.99),
	}
	txns[0].Location = "WA"

	require.NoError(t, s.SaveTransactions(ctx, txns))

	got, err := s.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "STARBUCKS STORE 04411", got[0].RawDescription)
	assert.Equal(t, "WA", got[0].Location)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("5.75")))
	assert.Equal(t, 2025, got[0].Date.Year())
	assert.Equal(t, txns[0].Hash, got[0].Hash)
}

func TestSaveTransactions_DeduplicatesByHash(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	txn := testutil.Txn(t, "2025-01-15", "STARBUCKS STORE 04411", 5.75)

	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{txn}))
	// Re-importing the same statement is a no-op.
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{txn}))

	got, err := s.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveTransactions_FillsMissingHash(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	txn := model.Transaction{
		Date:           testutil.Date(t, "2025-01-15"),
		RawDescription: "CORNER DELI",
		Amount:         decimal.RequireFromString("8.50"),
		Source:         "CSV",
	}

	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{txn}))

	got, err := s.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].Hash)
	assert.NotEmpty(t, got[0].ID)
}

func TestGetTransactions_Filters(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{
		testutil.Txn(t, "2025-01-15", "JANUARY PURCHASE", 10),
		testutil.Txn(t, "2025-02-15", "FEBRUARY PURCHASE", 20),
		testutil.Txn(t, "2025-03-15", "MARCH PURCHASE", 30),
	}))

	amex := testutil.Txn(t, "2025-02-20", "AMEX ONLY", 40)
	amex.Source = "AMEX"
	amex.Hash = amex.GenerateHash()
	amex.ID = amex.Hash[:16]
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{amex}))

	t.Run("date window", func(t *testing.T) {
		start := testutil.Date(t, "2025-02-01")
		end := testutil.Date(t, "2025-02-28")
		got, err := s.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("source", func(t *testing.T) {
		got, err := s.GetTransactions(ctx, service.TransactionFilter{Source: "AMEX"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "AMEX ONLY", got[0].RawDescription)
	})

	t.Run("ordered by date", func(t *testing.T) {
		got, err := s.GetTransactions(ctx, service.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].Date.Before(got[i-1].Date))
		}
	})
}

func TestSaveRun(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	m := &model.Merchant{
		ID:       "netflix",
		Name:     "Netflix",
		Category: "Subscriptions",
	}
	result := model.ClassificationResult{
		Merchant:         m,
		Kind:             model.KindMonthly,
		ActiveMonthRatio: 1.0,
		Consistent:       true,
		TypicalMonthly:   decimal.RequireFromString("15.99"),
	}
	result.AddTrace("monthly", true, "active in 4/4 months")

	require.NoError(t, s.SaveRun(ctx, time.Now(), []model.ClassificationResult{result}))

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM classification_runs WHERE merchant_id = 'netflix' AND kind = 'monthly'`,
	).Scan(&count))
	assert.Equal(t, 1, count)
}
