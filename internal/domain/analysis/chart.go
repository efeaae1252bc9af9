package analysis

import (
	"github.com/finwell/finwell-mcp/internal/domain/errors"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// ChartKind selects which data-only chart payload to build
type ChartKind string

const (
	// CategoryChart is a pie-style breakdown of expense totals by category
	CategoryChart ChartKind = "category"
	// TrendChart is a line-style series of bucketed expense totals
	TrendChart ChartKind = "trend"
	// BudgetChart pairs budgeted and actual amounts per category
	BudgetChart ChartKind = "budget"
	// MerchantChart is a bar-style ranking of merchant expense totals
	MerchantChart ChartKind = "merchant"
)

// ChartSeries is one named value series aligned with the chart labels
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartData is a renderer-agnostic chart payload: labels plus aligned value
// series, amounts already rounded for presentation. No rendering happens
// here; clients draw it however they like.
type ChartData struct {
	Kind   ChartKind     `json:"chartType"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// Chart builds the requested chart payload over the transactions matching
// pred. Trend charts use the given interval; other kinds ignore it.
func (e *Engine) Chart(kind ChartKind, pred ledger.Predicate, interval Interval) (ChartData, error) {
	switch kind {
	case CategoryChart:
		rows := e.Breakdown(pred)
		chart := ChartData{Kind: kind, Labels: make([]string, 0, len(rows))}
		values := make([]float64, 0, len(rows))
		for _, row := range rows {
			chart.Labels = append(chart.Labels, row.Category)
			values = append(values, Money(row.Total))
		}
		chart.Series = []ChartSeries{{Name: "spending", Values: values}}
		return chart, nil

	case TrendChart:
		trend := e.Trend(pred, interval)
		chart := ChartData{Kind: kind, Labels: make([]string, 0, len(trend.Points))}
		values := make([]float64, 0, len(trend.Points))
		for _, p := range trend.Points {
			chart.Labels = append(chart.Labels, p.Label)
			values = append(values, Money(p.Total))
		}
		chart.Series = []ChartSeries{{Name: "spending", Values: values}}
		return chart, nil

	case BudgetChart:
		lines := e.BudgetReport(pred)
		chart := ChartData{Kind: kind, Labels: make([]string, 0, len(lines))}
		budgeted := make([]float64, 0, len(lines))
		actual := make([]float64, 0, len(lines))
		for _, line := range lines {
			chart.Labels = append(chart.Labels, line.Category)
			budgeted = append(budgeted, Money(line.Limit))
			actual = append(actual, Money(line.Actual))
		}
		chart.Series = []ChartSeries{
			{Name: "budget", Values: budgeted},
			{Name: "actual", Values: actual},
		}
		return chart, nil

	case MerchantChart:
		ranked := e.Merchants(pred, 10)
		chart := ChartData{Kind: kind, Labels: make([]string, 0, len(ranked))}
		values := make([]float64, 0, len(ranked))
		for _, stat := range ranked {
			chart.Labels = append(chart.Labels, stat.Merchant)
			values = append(values, Money(stat.Total))
		}
		chart.Series = []ChartSeries{{Name: "spending", Values: values}}
		return chart, nil
	}

	return ChartData{}, errors.NewInvalidInputError("unknown chart type: "+string(kind), nil)
}
