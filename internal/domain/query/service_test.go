package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwell/finwell-mcp/internal/domain/advice"
	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// reference date is a Wednesday in March
var refDate = time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

type stubNarrator struct {
	narrative string
	err       error
	calls     int
}

func (n *stubNarrator) Narrate(_ context.Context, _ string, _ *Result) (string, error) {
	n.calls++
	return n.narrative, n.err
}

func testService(t *testing.T, narrator Narrator) *Service {
	t.Helper()
	store, err := ledger.Load([]ledger.Record{
		{ID: "t1", Date: "2024-03-04", Amount: "60.00", Category: "Groceries", Merchant: "Whole Foods", Type: "expense"},
		{ID: "t2", Date: "2024-03-11", Amount: "45.00", Category: "Groceries", Merchant: "Trader Joe's", Type: "expense"},
		{ID: "t3", Date: "2024-03-12", Amount: "30.00", Category: "Entertainment", Merchant: "AMC Theatres", Type: "expense"},
		{ID: "t4", Date: "2024-03-01", Amount: "2500.00", Category: "Income", Merchant: "Acme Corp", Type: "income"},
	})
	require.NoError(t, err)
	engine := analysis.NewEngine(store, analysis.DefaultBudgets())
	return NewService(engine, advice.NewAdvisor(engine), narrator, nil)
}

func TestAsk(t *testing.T) {
	t.Run("default intent is a spending summary", func(t *testing.T) {
		svc := testService(t, nil)
		result, err := svc.Ask(context.Background(), "s1", "how much did I spend this month", refDate)
		require.NoError(t, err)

		assert.Equal(t, SpendingSummary, result.Intent)
		require.NotNil(t, result.Summary)
		assert.Equal(t, 4, result.Summary.Transactions)
		assert.Equal(t, 135.0, analysis.Money(result.Summary.TotalExpenses))
	})

	t.Run("merchant question ranks merchants", func(t *testing.T) {
		svc := testService(t, nil)
		result, err := svc.Ask(context.Background(), "s1", "show me my spending at whole foods", refDate)
		require.NoError(t, err)

		assert.Equal(t, MerchantAnalysis, result.Intent)
		require.Len(t, result.Merchants, 1)
		assert.Equal(t, "Whole Foods", result.Merchants[0].Merchant)
	})

	t.Run("follow-up narrows the previous answer", func(t *testing.T) {
		svc := testService(t, nil)

		_, err := svc.Ask(context.Background(), "s1", "spending on groceries this month", refDate)
		require.NoError(t, err)

		result, err := svc.Ask(context.Background(), "s1", "and last week?", refDate)
		require.NoError(t, err)

		// last week relative to Wed 2024-03-13 is Mar 4 through Mar 10
		require.NotNil(t, result.Summary)
		assert.Equal(t, "Groceries", result.Filter.Category)
		assert.Equal(t, 1, result.Summary.Transactions)
		assert.Equal(t, 60.0, analysis.Money(result.Summary.TotalExpenses))
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		svc := testService(t, nil)

		_, err := svc.Ask(context.Background(), "s1", "spending on groceries this month", refDate)
		require.NoError(t, err)

		result, err := svc.Ask(context.Background(), "s2", "how much did I spend this month", refDate)
		require.NoError(t, err)
		assert.Empty(t, result.Filter.Category)
		assert.Equal(t, 4, result.Summary.Transactions)
	})

	t.Run("narration is attached when available", func(t *testing.T) {
		narrator := &stubNarrator{narrative: "You spent $135 this month."}
		svc := testService(t, narrator)

		result, err := svc.Ask(context.Background(), "s1", "how much did I spend", refDate)
		require.NoError(t, err)
		assert.Equal(t, "You spent $135 this month.", result.Narrative)
		assert.Equal(t, 1, narrator.calls)
	})

	t.Run("narration failure does not fail the query", func(t *testing.T) {
		narrator := &stubNarrator{err: assert.AnError}
		svc := testService(t, narrator)

		result, err := svc.Ask(context.Background(), "s1", "how much did I spend", refDate)
		require.NoError(t, err)
		assert.Empty(t, result.Narrative)
		require.NotNil(t, result.Summary)
	})
}

func TestExecute(t *testing.T) {
	svc := testService(t, nil)

	t.Run("budget request", func(t *testing.T) {
		result, err := svc.Execute(Request{Intent: BudgetAnalysis}, refDate)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Budget)
	})

	t.Run("recommendations pass the resolved period through", func(t *testing.T) {
		result, err := svc.Execute(Request{
			Intent: Recommendations,
			Filter: ledger.FilterSpec{DatePhrase: "this month"},
		}, refDate)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Recommendations)
	})

	t.Run("invalid filter is surfaced", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Execute(Request{
			Intent: SpendingSummary,
			Filter: ledger.FilterSpec{Start: &start, End: &end},
		}, refDate)
		assert.Error(t, err)
	})
}
