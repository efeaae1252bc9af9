package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/errors"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

func testInterpreter() *Interpreter {
	return NewInterpreter(ledger.NewCategoryMatcher([]string{
		"Groceries", "Food & Dining", "Transportation", "Entertainment", "Rent", "Income",
	}))
}

func TestClassification(t *testing.T) {
	interp := testInterpreter()

	cases := []struct {
		text   string
		intent Intent
	}{
		{"how much did I spend last month", SpendingSummary},
		{"show me my spending at Amazon", MerchantAnalysis},
		{"am I over budget on groceries", BudgetAnalysis},
		{"how can I save money", Recommendations},
		{"show my spending trend by week", TrendAnalysis},
		{"chart my spending by category", ChartData},
		{"list my transactions from this week", TransactionLookup},
		{"give me an overview", SpendingSummary},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			req, err := interp.Interpret(tc.text, &Context{})
			require.NoError(t, err)
			assert.Equal(t, tc.intent, req.Intent)
		})
	}
}

func TestFilterExtraction(t *testing.T) {
	interp := testInterpreter()

	t.Run("fuzzy category token", func(t *testing.T) {
		req, err := interp.Interpret("how much did I spend on food last month", &Context{})
		require.NoError(t, err)
		assert.Equal(t, "Food & Dining", req.Filter.Category)
		assert.Equal(t, "last month", req.Filter.DatePhrase)
	})

	t.Run("merchant capture stops before the date phrase", func(t *testing.T) {
		req, err := interp.Interpret("what did I spend at whole foods last week", &Context{})
		require.NoError(t, err)
		assert.Equal(t, MerchantAnalysis, req.Intent)
		assert.Equal(t, "whole foods", req.Filter.Merchant)
		assert.Equal(t, "last week", req.Filter.DatePhrase)
	})

	t.Run("explicit unknown category is an error", func(t *testing.T) {
		ctx := &Context{}
		_, err := interp.Interpret("how much in the cryptocurrency category", ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.NewUnknownCategoryError(""))

		// the failed turn must not touch the context
		assert.False(t, ctx.HasIntent)
		assert.Equal(t, 0, ctx.Turns)
	})

	t.Run("bare unmatched token degrades to no category filter", func(t *testing.T) {
		req, err := interp.Interpret("how much did I spend on llamas", &Context{})
		require.NoError(t, err)
		assert.Empty(t, req.Filter.Category)
	})

	t.Run("trend interval markers", func(t *testing.T) {
		req, err := interp.Interpret("show my daily spending trend", &Context{})
		require.NoError(t, err)
		assert.Equal(t, analysis.Daily, req.Interval)
	})

	t.Run("chart kind markers", func(t *testing.T) {
		req, err := interp.Interpret("chart my budget", &Context{})
		require.NoError(t, err)
		assert.Equal(t, ChartData, req.Intent)
		assert.Equal(t, analysis.BudgetChart, req.ChartKind)
	})
}

func TestContextCarryOver(t *testing.T) {
	interp := testInterpreter()

	t.Run("elliptical follow-up inherits intent and merges filters", func(t *testing.T) {
		ctx := &Context{}

		req, err := interp.Interpret("how much did I spend on groceries this month", ctx)
		require.NoError(t, err)
		assert.Equal(t, SpendingSummary, req.Intent)
		assert.Equal(t, "Groceries", req.Filter.Category)

		req, err = interp.Interpret("and last month?", ctx)
		require.NoError(t, err)
		assert.Equal(t, SpendingSummary, req.Intent)
		assert.True(t, req.Inherited)
		assert.Equal(t, "Groceries", req.Filter.Category)
		assert.Equal(t, "last month", req.Filter.DatePhrase)
	})

	t.Run("new value for a dimension overwrites the carried one", func(t *testing.T) {
		ctx := &Context{}

		_, err := interp.Interpret("spending on groceries last month", ctx)
		require.NoError(t, err)

		req, err := interp.Interpret("what about entertainment", ctx)
		require.NoError(t, err)
		assert.Equal(t, "Entertainment", req.Filter.Category)
		assert.Equal(t, "last month", req.Filter.DatePhrase)
	})

	t.Run("crossing intent families drops the carried filter", func(t *testing.T) {
		ctx := &Context{}

		_, err := interp.Interpret("spending on groceries last month", ctx)
		require.NoError(t, err)

		req, err := interp.Interpret("how can I save money", ctx)
		require.NoError(t, err)
		assert.Equal(t, Recommendations, req.Intent)
		assert.Empty(t, req.Filter.Category)
		assert.Empty(t, req.Filter.DatePhrase)
	})

	t.Run("filters keep merging within the spending family", func(t *testing.T) {
		ctx := &Context{}

		_, err := interp.Interpret("spending on groceries last month", ctx)
		require.NoError(t, err)

		req, err := interp.Interpret("show that as a trend", ctx)
		require.NoError(t, err)
		assert.Equal(t, TrendAnalysis, req.Intent)
		assert.Equal(t, "Groceries", req.Filter.Category)
		assert.Equal(t, "last month", req.Filter.DatePhrase)
	})
}
