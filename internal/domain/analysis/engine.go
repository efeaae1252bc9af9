package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// Engine computes aggregations over the transaction ledger. All methods are
// pure functions of the filtered transaction set; the engine holds no mutable
// state, so one instance serves all sessions.
type Engine struct {
	store   *ledger.Store
	budgets Budgets
}

// NewEngine creates an aggregation engine over a loaded ledger
func NewEngine(store *ledger.Store, budgets Budgets) *Engine {
	if budgets == nil {
		budgets = DefaultBudgets()
	}
	return &Engine{store: store, budgets: budgets}
}

// Store exposes the underlying ledger
func (e *Engine) Store() *ledger.Store {
	return e.store
}

// Budgets exposes the budget table
func (e *Engine) Budgets() Budgets {
	return e.budgets
}

// CategoryTotal is one row of a category breakdown. Percentage is the
// category's share of total expenses; nil when the expense total is zero.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage *float64        `json:"percentage"`
}

// Summary is the headline view over a filtered transaction set
type Summary struct {
	Transactions  int             `json:"transactionCount"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	Net           decimal.Decimal `json:"netCashflow"`
	Categories    []CategoryTotal `json:"categories"`
}

// Summarize computes the headline totals and category breakdown for the
// transactions matching pred.
func (e *Engine) Summarize(pred ledger.Predicate) Summary {
	txs := e.store.Filter(pred)

	totalExpenses, totalIncome := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case ledger.Expense:
			totalExpenses = totalExpenses.Add(tx.Amount)
		case ledger.Income:
			totalIncome = totalIncome.Add(tx.Amount)
		}
	}

	return Summary{
		Transactions:  len(txs),
		TotalExpenses: totalExpenses,
		TotalIncome:   totalIncome,
		Net:           totalIncome.Sub(totalExpenses),
		Categories:    breakdown(txs, totalExpenses),
	}
}

// Breakdown computes the per-category expense breakdown for the transactions
// matching pred, sorted by total descending, name ascending on ties.
func (e *Engine) Breakdown(pred ledger.Predicate) []CategoryTotal {
	txs := e.store.Filter(pred)
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type == ledger.Expense {
			total = total.Add(tx.Amount)
		}
	}
	return breakdown(txs, total)
}

func breakdown(txs []ledger.Transaction, expenseTotal decimal.Decimal) []CategoryTotal {
	totals := make(map[string]*CategoryTotal)
	order := make([]string, 0)
	for _, tx := range txs {
		if tx.Type != ledger.Expense {
			continue
		}
		row, ok := totals[tx.Category]
		if !ok {
			row = &CategoryTotal{Category: tx.Category, Total: decimal.Zero}
			totals[tx.Category] = row
			order = append(order, tx.Category)
		}
		row.Total = row.Total.Add(tx.Amount)
		row.Count++
	}

	rows := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		row := *totals[category]
		row.Percentage = share(row.Total, expenseTotal)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// share returns part/whole as a percentage, nil when the whole is zero
func share(part, whole decimal.Decimal) *float64 {
	if whole.IsZero() {
		return nil
	}
	pct := part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
	return &pct
}

// Round2 rounds a monetary amount to 2 decimal places for presentation
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Money renders a monetary amount as a float rounded to 2 decimal places.
// Only presentation payloads go through this; internal math stays decimal.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// RoundPct rounds a percentage pointer to 1 decimal place, preserving nil
func RoundPct(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v, _ := decimal.NewFromFloat(*p).Round(1).Float64()
	return &v
}
