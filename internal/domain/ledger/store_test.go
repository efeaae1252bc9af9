package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwell/finwell-mcp/internal/domain/errors"
)

func validRecord() Record {
	return Record{
		ID:       "txn-001",
		Date:     "2024-03-15",
		Amount:   "125.50",
		Category: "Groceries",
		Merchant: "Whole Foods",
		Type:     "expense",
	}
}

func TestLoad(t *testing.T) {
	t.Run("builds a store from valid records", func(t *testing.T) {
		store, err := Load([]Record{validRecord()})
		require.NoError(t, err)
		require.Equal(t, 1, store.Len())

		tx := store.All()[0]
		assert.Equal(t, "txn-001", tx.ID)
		assert.Equal(t, "125.5", tx.Amount.String())
		assert.Equal(t, Expense, tx.Type)
		assert.Equal(t, 2024, tx.Date.Year())
	})

	t.Run("empty ledger is valid", func(t *testing.T) {
		store, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, store.Len())
		assert.Empty(t, store.All())
	})

	t.Run("rejects malformed records", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*Record)
		}{
			{"missing id", func(r *Record) { r.ID = "" }},
			{"missing category", func(r *Record) { r.Category = "" }},
			{"missing merchant", func(r *Record) { r.Merchant = "" }},
			{"unknown type", func(r *Record) { r.Type = "refund" }},
			{"bad date", func(r *Record) { r.Date = "15/03/2024" }},
			{"bad amount", func(r *Record) { r.Amount = "$125.50" }},
			{"negative amount", func(r *Record) { r.Amount = "-10.00" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := validRecord()
				tc.mutate(&rec)
				_, err := Load([]Record{rec})
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.NewMalformedRecordError("", nil))
			})
		}
	})

	t.Run("error identifies the offending record", func(t *testing.T) {
		bad := validRecord()
		bad.ID = "txn-002"
		bad.Amount = "oops"

		_, err := Load([]Record{validRecord(), bad})
		require.Error(t, err)

		appErr, ok := err.(errors.AppError)
		require.True(t, ok)
		assert.Equal(t, 1, appErr.Details["record"])
		assert.Equal(t, "txn-002", appErr.Details["transactionId"])
	})
}

func TestStoreFilter(t *testing.T) {
	records := []Record{
		{ID: "t1", Date: "2024-03-01", Amount: "50.00", Category: "Groceries", Merchant: "Trader Joe's", Type: "expense"},
		{ID: "t2", Date: "2024-03-02", Amount: "2500.00", Category: "Income", Merchant: "Acme Corp", Type: "income"},
		{ID: "t3", Date: "2024-03-03", Amount: "12.75", Category: "Food & Dining", Merchant: "Blue Bottle", Type: "expense"},
		{ID: "t4", Date: "2024-03-04", Amount: "80.00", Category: "Groceries", Merchant: "Whole Foods", Type: "expense"},
	}
	store, err := Load(records)
	require.NoError(t, err)

	t.Run("preserves ledger order", func(t *testing.T) {
		matched := store.Filter(func(tx Transaction) bool { return tx.Type == Expense })
		require.Len(t, matched, 3)
		assert.Equal(t, []string{"t1", "t3", "t4"}, []string{matched[0].ID, matched[1].ID, matched[2].ID})
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		matched := store.Filter(func(tx Transaction) bool { return tx.Category == "Travel" })
		assert.NotNil(t, matched)
		assert.Empty(t, matched)
	})

	t.Run("nil predicate matches everything", func(t *testing.T) {
		assert.Len(t, store.Filter(nil), 4)
	})

	t.Run("mutating a result does not touch the store", func(t *testing.T) {
		matched := store.All()
		matched[0].Category = "Hacked"
		assert.Equal(t, "Groceries", store.All()[0].Category)
	})

	t.Run("categories in first-seen order", func(t *testing.T) {
		assert.Equal(t, []string{"Groceries", "Income", "Food & Dining"}, store.Categories())
	})

	t.Run("span covers earliest and latest dates", func(t *testing.T) {
		min, max, ok := store.Span()
		require.True(t, ok)
		assert.Equal(t, "2024-03-01", min.Format(DateLayout))
		assert.Equal(t, "2024-03-04", max.Format(DateLayout))
	})
}
