package advice

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// Kind classifies a recommendation
type Kind string

const (
	// Overspend flags a category running past its budget
	Overspend Kind = "overspend_alert"
	// FrequentPurchases flags a category with many small transactions
	FrequentPurchases Kind = "frequent_purchases"
	// SavingsRate comments on the income kept after expenses
	SavingsRate Kind = "savings_rate"
	// Deficit warns that expenses exceed income for the period
	Deficit Kind = "deficit_warning"
)

// Recommendation is one structured piece of advice. Amount carries the
// rule's magnitude (overage, suggested daily cut, deficit size); Rate is set
// only on savings-rate advice and stays nil when income is zero.
type Recommendation struct {
	Kind     Kind            `json:"type"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count,omitempty"`
	Rate     *float64        `json:"rate,omitempty"`
	Message  string          `json:"message"`
}

// defaultPeriodDays is assumed when the filter carries no date range
const defaultPeriodDays = 30

// Advisor derives recommendations from aggregation results. The rules are
// deterministic: the same ledger, budget table, and period always produce
// the same records in the same order.
type Advisor struct {
	engine *analysis.Engine
}

// NewAdvisor creates an advisor over an aggregation engine
func NewAdvisor(engine *analysis.Engine) *Advisor {
	return &Advisor{engine: engine}
}

// Recommendations evaluates every rule over the transactions matching pred.
// period supplies the analysis window length; nil means no explicit window
// and the rules assume a 30 day period. Order: overspend alerts (largest
// overage first), frequent-purchase flags (highest count first), then the
// savings-rate or deficit commentary.
func (a *Advisor) Recommendations(pred ledger.Predicate, period *ledger.DateRange) []Recommendation {
	days := defaultPeriodDays
	if period != nil {
		days = int(period.End.Sub(period.Start).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
	}

	recs := make([]Recommendation, 0)
	recs = append(recs, a.overspendAlerts(pred, days)...)
	recs = append(recs, a.frequentPurchaseFlags(pred, days)...)
	recs = append(recs, a.cashflowAdvice(pred)...)
	return recs
}

func (a *Advisor) overspendAlerts(pred ledger.Predicate, days int) []Recommendation {
	recs := make([]Recommendation, 0)
	for _, line := range a.engine.BudgetReport(pred) {
		if !line.Over || line.Limit.IsZero() {
			continue
		}
		overage := line.Actual.Sub(line.Limit)
		daily := overage.Div(decimal.NewFromInt(int64(days)))
		recs = append(recs, Recommendation{
			Kind:     Overspend,
			Category: line.Category,
			Amount:   overage,
			Message: fmt.Sprintf(
				"You are %s over your %s budget of %s. Cutting about %s per day would bring you back in line.",
				money(overage), line.Category, money(line.Limit), money(daily)),
		})
	}
	// BudgetReport already orders most-overspent first
	return recs
}

// frequentPurchaseFlags flags categories whose purchase count exceeds the
// density of the original rule (more than 5 purchases in 30 days), scaled to
// the period length.
func (a *Advisor) frequentPurchaseFlags(pred ledger.Predicate, days int) []Recommendation {
	threshold := days / 6
	if threshold < 1 {
		threshold = 1
	}

	recs := make([]Recommendation, 0)
	for _, row := range a.engine.Breakdown(pred) {
		if row.Count <= threshold {
			continue
		}
		avg := row.Total.Div(decimal.NewFromInt(int64(row.Count)))
		recs = append(recs, Recommendation{
			Kind:     FrequentPurchases,
			Category: row.Category,
			Amount:   row.Total,
			Count:    row.Count,
			Message: fmt.Sprintf(
				"%d %s purchases averaging %s each. Consolidating these could reduce impulse spending.",
				row.Count, row.Category, money(avg)),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Count != recs[j].Count {
			return recs[i].Count > recs[j].Count
		}
		return recs[i].Category < recs[j].Category
	})
	return recs
}

func (a *Advisor) cashflowAdvice(pred ledger.Predicate) []Recommendation {
	summary := a.engine.Summarize(pred)
	income, expenses := summary.TotalIncome, summary.TotalExpenses

	if income.IsZero() {
		// savings rate is undefined without income; say so rather than
		// reporting a fake 0%
		if expenses.IsPositive() {
			return []Recommendation{{
				Kind:    SavingsRate,
				Amount:  expenses,
				Message: "No income recorded for this period, so a savings rate cannot be computed.",
			}}
		}
		return nil
	}

	if expenses.GreaterThan(income) {
		deficit := expenses.Sub(income)
		return []Recommendation{{
			Kind:   Deficit,
			Amount: deficit,
			Message: fmt.Sprintf(
				"Spending exceeded income by %s this period. Review the largest categories to close the gap.",
				money(deficit)),
		}}
	}

	rate := income.Sub(expenses).Div(income).InexactFloat64()
	rec := Recommendation{
		Kind:   SavingsRate,
		Amount: income.Sub(expenses),
		Rate:   &rate,
	}
	switch {
	case rate >= 0.20:
		rec.Message = fmt.Sprintf("You saved %.1f%% of your income. Excellent work, keep it up.", rate*100)
	case rate >= 0.10:
		rec.Message = fmt.Sprintf("You saved %.1f%% of your income. Solid, though 20%% is a common target.", rate*100)
	default:
		rec.Message = fmt.Sprintf("You saved %.1f%% of your income. Aim for at least 10%% by trimming the biggest expense categories.", rate*100)
	}
	return []Recommendation{rec}
}

func money(d decimal.Decimal) string {
	return "$" + d.Round(2).StringFixed(2)
}
