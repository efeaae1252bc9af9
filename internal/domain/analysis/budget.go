package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// BudgetLine compares actual spending in one category against its budget
// limit. Variance is limit minus actual: negative means over budget.
// Categories absent from the budget table carry Budgeted false and are never
// classified as over budget.
type BudgetLine struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
	Variance decimal.Decimal `json:"variance"`
	Budgeted bool            `json:"budgeted"`
	Over     bool            `json:"overBudget"`
	Used     *float64        `json:"percentUsed"`
}

// BudgetReport compares actual expense totals against the budget table for
// the transactions matching pred. Every budgeted category appears even with
// no spending; spending in unbudgeted categories is reported with a zero
// limit but stays outside the over/under classification. Rows are ordered
// most-overspent first, name ascending on ties.
func (e *Engine) BudgetReport(pred ledger.Predicate) []BudgetLine {
	actuals := make(map[string]decimal.Decimal)
	for _, tx := range e.store.Filter(pred) {
		if tx.Type == ledger.Expense {
			actuals[tx.Category] = actuals[tx.Category].Add(tx.Amount)
		}
	}

	seen := make(map[string]bool)
	lines := make([]BudgetLine, 0, len(e.budgets))
	for category, limit := range e.budgets {
		seen[category] = true
		lines = append(lines, budgetLine(category, limit, actuals[category], true))
	}
	for category, actual := range actuals {
		if !seen[category] {
			lines = append(lines, budgetLine(category, decimal.Zero, actual, false))
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Variance.Equal(lines[j].Variance) {
			return lines[i].Variance.LessThan(lines[j].Variance)
		}
		return lines[i].Category < lines[j].Category
	})
	return lines
}

func budgetLine(category string, limit, actual decimal.Decimal, budgeted bool) BudgetLine {
	return BudgetLine{
		Category: category,
		Limit:    limit,
		Actual:   actual,
		Variance: limit.Sub(actual),
		Budgeted: budgeted,
		Over:     budgeted && actual.GreaterThan(limit),
		Used:     share(actual, limit),
	}
}
