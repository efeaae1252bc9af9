package advice

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

func advisorOver(t *testing.T, budgets analysis.Budgets, records []ledger.Record) *Advisor {
	t.Helper()
	store, err := ledger.Load(records)
	require.NoError(t, err)
	return NewAdvisor(analysis.NewEngine(store, budgets))
}

func day(s string) time.Time {
	t, err := time.Parse(ledger.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func findKind(recs []Recommendation, kind Kind) (Recommendation, bool) {
	for _, rec := range recs {
		if rec.Kind == kind {
			return rec, true
		}
	}
	return Recommendation{}, false
}

func TestOverspendAlerts(t *testing.T) {
	budgets := analysis.Budgets{"Groceries": decimal.NewFromInt(100)}
	advisor := advisorOver(t, budgets, []ledger.Record{
		{ID: "t1", Date: "2024-03-05", Amount: "160.00", Category: "Groceries", Merchant: "Whole Foods", Type: "expense"},
	})

	t.Run("daily reduction uses the period length", func(t *testing.T) {
		period := &ledger.DateRange{Start: day("2024-03-01"), End: day("2024-03-10")}
		recs := advisor.Recommendations(nil, period)

		alert, ok := findKind(recs, Overspend)
		require.True(t, ok)
		assert.Equal(t, "Groceries", alert.Category)
		assert.True(t, alert.Amount.Equal(decimal.NewFromInt(60)))
		// 60 over 10 days
		assert.Contains(t, alert.Message, "$6.00 per day")
	})

	t.Run("defaults to a 30 day period", func(t *testing.T) {
		recs := advisor.Recommendations(nil, nil)
		alert, ok := findKind(recs, Overspend)
		require.True(t, ok)
		assert.Contains(t, alert.Message, "$2.00 per day")
	})

	t.Run("unbudgeted overspending is not alerted", func(t *testing.T) {
		advisor := advisorOver(t, analysis.Budgets{}, []ledger.Record{
			{ID: "t1", Date: "2024-03-05", Amount: "160.00", Category: "Pets", Merchant: "Petco", Type: "expense"},
		})
		_, ok := findKind(advisor.Recommendations(nil, nil), Overspend)
		assert.False(t, ok)
	})
}

func TestFrequentPurchaseFlags(t *testing.T) {
	records := make([]ledger.Record, 0)
	for i := 0; i < 7; i++ {
		records = append(records, ledger.Record{
			ID:       fmt.Sprintf("coffee-%d", i),
			Date:     fmt.Sprintf("2024-03-%02d", i+1),
			Amount:   "4.50",
			Category: "Food & Dining",
			Merchant: "Blue Bottle",
			Type:     "expense",
		})
	}
	records = append(records, ledger.Record{
		ID: "t-rent", Date: "2024-03-01", Amount: "1200.00", Category: "Rent", Merchant: "Landlord LLC", Type: "expense",
	})

	advisor := advisorOver(t, analysis.Budgets{}, records)
	period := &ledger.DateRange{Start: day("2024-03-01"), End: day("2024-03-30")}
	recs := advisor.Recommendations(nil, period)

	flag, ok := findKind(recs, FrequentPurchases)
	require.True(t, ok)
	assert.Equal(t, "Food & Dining", flag.Category)
	assert.Equal(t, 7, flag.Count)
	assert.Contains(t, flag.Message, "7 Food & Dining purchases")
	assert.Contains(t, flag.Message, "$4.50")

	// a single large purchase never trips the frequency rule
	for _, rec := range recs {
		if rec.Kind == FrequentPurchases {
			assert.NotEqual(t, "Rent", rec.Category)
		}
	}
}

func TestCashflowAdvice(t *testing.T) {
	t.Run("healthy savings rate", func(t *testing.T) {
		advisor := advisorOver(t, analysis.Budgets{}, []ledger.Record{
			{ID: "t1", Date: "2024-03-01", Amount: "2500.00", Category: "Income", Merchant: "Acme Corp", Type: "income"},
			{ID: "t2", Date: "2024-03-05", Amount: "1500.00", Category: "Rent", Merchant: "Landlord LLC", Type: "expense"},
		})
		rec, ok := findKind(advisor.Recommendations(nil, nil), SavingsRate)
		require.True(t, ok)
		require.NotNil(t, rec.Rate)
		assert.InDelta(t, 0.4, *rec.Rate, 0.001)
		assert.Contains(t, rec.Message, "40.0%")
	})

	t.Run("deficit warning when spending exceeds income", func(t *testing.T) {
		advisor := advisorOver(t, analysis.Budgets{}, []ledger.Record{
			{ID: "t1", Date: "2024-03-01", Amount: "1000.00", Category: "Income", Merchant: "Acme Corp", Type: "income"},
			{ID: "t2", Date: "2024-03-05", Amount: "1300.00", Category: "Rent", Merchant: "Landlord LLC", Type: "expense"},
		})
		recs := advisor.Recommendations(nil, nil)

		rec, ok := findKind(recs, Deficit)
		require.True(t, ok)
		assert.True(t, rec.Amount.Equal(decimal.NewFromInt(300)))

		_, ok = findKind(recs, SavingsRate)
		assert.False(t, ok)
	})

	t.Run("no income leaves the rate undefined", func(t *testing.T) {
		advisor := advisorOver(t, analysis.Budgets{}, []ledger.Record{
			{ID: "t1", Date: "2024-03-05", Amount: "50.00", Category: "Groceries", Merchant: "Whole Foods", Type: "expense"},
		})
		rec, ok := findKind(advisor.Recommendations(nil, nil), SavingsRate)
		require.True(t, ok)
		assert.Nil(t, rec.Rate)
	})

	t.Run("empty period yields no cashflow advice", func(t *testing.T) {
		advisor := advisorOver(t, analysis.Budgets{}, nil)
		recs := advisor.Recommendations(nil, nil)
		assert.Empty(t, recs)
	})
}
