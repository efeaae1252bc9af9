package analysis

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/errors"
)

// Budgets maps category names to monthly budget limits
type Budgets map[string]decimal.Decimal

// DefaultBudgets returns the built-in monthly budget table
func DefaultBudgets() Budgets {
	return Budgets{
		"Groceries":      decimal.NewFromInt(400),
		"Food & Dining":  decimal.NewFromInt(300),
		"Transportation": decimal.NewFromInt(200),
		"Entertainment":  decimal.NewFromInt(150),
		"Shopping":       decimal.NewFromInt(250),
		"Healthcare":     decimal.NewFromInt(100),
		"Utilities":      decimal.NewFromInt(200),
		"Rent":           decimal.NewFromInt(1200),
		"Savings":        decimal.NewFromInt(500),
		"Income":         decimal.Zero,
	}
}

// LoadBudgets reads a category-to-limit table from a JSON file. Amounts are
// accepted as JSON numbers or strings so hand-edited files stay forgiving.
func LoadBudgets(path string) (Budgets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInternalError("failed to read budgets file", err)
	}

	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewInvalidInputError("budgets file is not a valid JSON object", err)
	}

	budgets := make(Budgets, len(raw))
	for category, num := range raw {
		limit, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, errors.NewInvalidInputError("budget limit for "+category+" is not a number", err)
		}
		budgets[category] = limit
	}
	return budgets, nil
}

// Limit returns the budget limit for a category and whether one is set
func (b Budgets) Limit(category string) (decimal.Decimal, bool) {
	limit, ok := b[category]
	return limit, ok
}
