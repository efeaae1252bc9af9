package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// MerchantStat aggregates expense activity at one merchant
type MerchantStat struct {
	Merchant string          `json:"merchant"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Average  decimal.Decimal `json:"average"`
	Category string          `json:"category"`
	First    time.Time       `json:"firstSeen"`
	Last     time.Time       `json:"lastSeen"`
}

// Merchants ranks merchants by expense volume over the transactions matching
// pred. Ordering is total descending, then count descending, then merchant
// name ascending, so equal-volume merchants always rank the same way. A
// limit of 0 or less returns the full ranking.
func (e *Engine) Merchants(pred ledger.Predicate, limit int) []MerchantStat {
	stats := make(map[string]*MerchantStat)
	order := make([]string, 0)
	for _, tx := range e.store.Filter(pred) {
		if tx.Type != ledger.Expense {
			continue
		}
		stat, ok := stats[tx.Merchant]
		if !ok {
			stat = &MerchantStat{
				Merchant: tx.Merchant,
				Total:    decimal.Zero,
				Category: tx.Category,
				First:    tx.Date,
				Last:     tx.Date,
			}
			stats[tx.Merchant] = stat
			order = append(order, tx.Merchant)
		}
		stat.Total = stat.Total.Add(tx.Amount)
		stat.Count++
		if tx.Date.Before(stat.First) {
			stat.First = tx.Date
		}
		if tx.Date.After(stat.Last) {
			stat.Last = tx.Date
		}
	}

	ranked := make([]MerchantStat, 0, len(order))
	for _, merchant := range order {
		stat := *stats[merchant]
		stat.Average = stat.Total.Div(decimal.NewFromInt(int64(stat.Count)))
		ranked = append(ranked, stat)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].Total.Equal(ranked[j].Total) {
			return ranked[i].Total.GreaterThan(ranked[j].Total)
		}
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Merchant < ranked[j].Merchant
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
