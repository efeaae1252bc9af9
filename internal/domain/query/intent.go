package query

import "strings"

// Intent is the analysis a free-text query resolves to
type Intent string

const (
	// SpendingSummary is the default intent: totals plus category breakdown
	SpendingSummary Intent = "spending_summary"
	// TransactionLookup lists the matching transactions
	TransactionLookup Intent = "transaction_lookup"
	// BudgetAnalysis compares spending against budget limits
	BudgetAnalysis Intent = "budget_analysis"
	// Recommendations produces the advice rule output
	Recommendations Intent = "recommendations"
	// MerchantAnalysis ranks spending by merchant
	MerchantAnalysis Intent = "merchant_analysis"
	// TrendAnalysis buckets spending over time
	TrendAnalysis Intent = "trend_analysis"
	// ChartData produces a data-only chart payload
	ChartData Intent = "chart_data"
)

// Family groups intents whose carried-over filters are interchangeable.
// Filters only merge across turns when both turns stay inside one family;
// switching family starts from a clean filter.
type Family string

const (
	// SpendingFamily covers the descriptive analyses over spending
	SpendingFamily Family = "spending"
	// BudgetFamily covers budget comparison
	BudgetFamily Family = "budget"
	// AdviceFamily covers recommendations
	AdviceFamily Family = "advice"
)

// Family returns the intent's filter-sharing family
func (i Intent) Family() Family {
	switch i {
	case BudgetAnalysis:
		return BudgetFamily
	case Recommendations:
		return AdviceFamily
	}
	return SpendingFamily
}

// intentPattern maps keyword markers to an intent. Patterns are evaluated in
// order and the first hit wins, so more specific intents sit above the
// broad spending fallback.
type intentPattern struct {
	intent  Intent
	markers []string
}

var intentPatterns = []intentPattern{
	{ChartData, []string{"chart", "graph", "plot", "visualize", "visualise"}},
	{BudgetAnalysis, []string{"budget", "over budget", "spending limit"}},
	{Recommendations, []string{"recommend", "advice", "advise", "suggest", "tips", "save money", "how can i save"}},
	{MerchantAnalysis, []string{"merchant", "store", "shop", "vendor", "where do i spend", "where am i spending"}},
	{TrendAnalysis, []string{"trend", "over time", "pattern", "month over month", "by month", "by week", "by day", "monthly", "weekly", "daily"}},
	{TransactionLookup, []string{"transactions", "transaction", "list", "show me what", "purchases", "what did i buy"}},
	{SpendingSummary, []string{"spend", "spent", "spending", "how much", "summary", "overview", "total", "breakdown", "cost"}},
}

// classify resolves the query's intent from its keyword markers. A query
// that names a merchant classifies as merchant analysis even without a
// merchant keyword ("show me my spending at Amazon"). Returns false when no
// marker matched, which lets the caller fall back to the session's previous
// intent for elliptical follow-ups ("and last month?").
func classify(text string, ext extraction) (Intent, bool) {
	t := strings.ToLower(text)
	for _, p := range intentPatterns {
		for _, marker := range p.markers {
			if !strings.Contains(t, marker) {
				continue
			}
			if p.intent == SpendingSummary && ext.Filter.Merchant != "" {
				return MerchantAnalysis, true
			}
			return p.intent, true
		}
	}
	if ext.Filter.Merchant != "" {
		return MerchantAnalysis, true
	}
	return SpendingSummary, false
}
