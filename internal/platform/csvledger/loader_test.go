package csvledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRecords(t *testing.T) {
	t.Run("reads header-mapped rows", func(t *testing.T) {
		path := writeCSV(t, `transaction_id,date,amount,category,description,merchant,transaction_type,account_type
txn-001,2024-03-01,125.50,Groceries,Weekly shop,Whole Foods,expense,checking
txn-002,2024-03-02,2500.00,Income,Salary,Acme Corp,income,checking
`)

		records, err := NewLoader(path, nil).Records(context.Background())

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "txn-001", records[0].ID)
		assert.Equal(t, "2024-03-01", records[0].Date)
		assert.Equal(t, "125.50", records[0].Amount)
		assert.Equal(t, "Whole Foods", records[0].Merchant)
		assert.Equal(t, "income", records[1].Type)
	})

	t.Run("column order does not matter", func(t *testing.T) {
		path := writeCSV(t, `amount,transaction_type,category,date,merchant,transaction_id
9.99,expense,Entertainment,2024-03-03,Netflix,txn-003
`)

		records, err := NewLoader(path, nil).Records(context.Background())

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Entertainment", records[0].Category)
		assert.Equal(t, "Netflix", records[0].Merchant)
	})

	t.Run("generates an ID for rows without one", func(t *testing.T) {
		path := writeCSV(t, `transaction_id,date,amount,category,merchant,transaction_type
,2024-03-04,15.00,Groceries,Trader Joes,expense
`)

		records, err := NewLoader(path, nil).Records(context.Background())

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.NotEmpty(t, records[0].ID)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, `transaction_id,date,category,merchant,transaction_type
txn-001,2024-03-01,Groceries,Store,expense
`)

		_, err := NewLoader(path, nil).Records(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeCSV(t, "")

		_, err := NewLoader(path, nil).Records(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(filepath.Join(t.TempDir(), "nope.csv"), nil).Records(context.Background())

		assert.Error(t, err)
	})
}
