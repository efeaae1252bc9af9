package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/errors"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// Interval is the trend bucket width
type Interval string

const (
	// Daily buckets one calendar day per point
	Daily Interval = "day"
	// Weekly buckets Monday-start weeks
	Weekly Interval = "week"
	// Monthly buckets calendar months
	Monthly Interval = "month"
)

// ParseInterval parses a bucket width label, defaulting to Monthly for an
// empty label.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case Daily, Weekly, Monthly:
		return Interval(s), nil
	case "":
		return Monthly, nil
	}
	return "", errors.NewInvalidInputError("unknown trend interval: "+s, nil)
}

// TrendPoint is one time bucket of a spending trend. Start is the bucket's
// inclusive start; the bucket covers [Start, next bucket's Start). Growth is
// the relative change from the previous bucket, nil for the first bucket and
// whenever the previous bucket's total is zero.
type TrendPoint struct {
	Start  time.Time       `json:"bucketStart"`
	Label  string          `json:"label"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
	Growth *float64        `json:"growthRate"`
}

// TrendAnalysis is a bucketed expense series with summary metrics. Growth is
// the mean of the per-bucket growth rates that are defined, nil when no
// transition has a non-zero base. Volatility is the population standard
// deviation of non-empty bucket totals divided by their mean, nil with fewer
// than two non-empty buckets or a zero mean. Undefined metrics stay nil
// rather than surfacing NaN or Inf.
type TrendAnalysis struct {
	Interval   Interval     `json:"interval"`
	Points     []TrendPoint `json:"points"`
	Average    *float64     `json:"averagePerBucket"`
	Growth     *float64     `json:"growthRate"`
	Volatility *float64     `json:"volatility"`
}

// Trend buckets expenses matching pred into consecutive intervals from the
// earliest matching transaction to the latest. Buckets with no transactions
// appear with a zero total so the series has no gaps.
func (e *Engine) Trend(pred ledger.Predicate, interval Interval) TrendAnalysis {
	var min, max time.Time
	expenses := make([]ledger.Transaction, 0)
	for _, tx := range e.store.Filter(pred) {
		if tx.Type != ledger.Expense {
			continue
		}
		if len(expenses) == 0 || tx.Date.Before(min) {
			min = tx.Date
		}
		if len(expenses) == 0 || tx.Date.After(max) {
			max = tx.Date
		}
		expenses = append(expenses, tx)
	}

	analysis := TrendAnalysis{Interval: interval, Points: []TrendPoint{}}
	if len(expenses) == 0 {
		return analysis
	}

	index := make(map[time.Time]int)
	for start := bucketStart(min, interval); !start.After(max); start = nextBucket(start, interval) {
		index[start] = len(analysis.Points)
		analysis.Points = append(analysis.Points, TrendPoint{
			Start: start,
			Label: bucketLabel(start, interval),
			Total: decimal.Zero,
		})
	}

	for _, tx := range expenses {
		i := index[bucketStart(tx.Date, interval)]
		analysis.Points[i].Total = analysis.Points[i].Total.Add(tx.Amount)
		analysis.Points[i].Count++
	}

	analysis.Average = bucketAverage(analysis.Points)
	analysis.Growth = growthRates(analysis.Points)
	analysis.Volatility = volatility(analysis.Points)
	return analysis
}

func bucketStart(t time.Time, interval Interval) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch interval {
	case Weekly:
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

func nextBucket(start time.Time, interval Interval) time.Time {
	switch interval {
	case Weekly:
		return start.AddDate(0, 0, 7)
	case Monthly:
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 1)
}

func bucketLabel(start time.Time, interval Interval) string {
	switch interval {
	case Monthly:
		return start.Format("2006-01")
	case Weekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return start.Format("2006-01-02")
}

func bucketAverage(points []TrendPoint) *float64 {
	if len(points) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Total)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(points)))).InexactFloat64()
	return &avg
}

// growthRates fills each point's Growth with the relative change from the
// previous bucket, leaving it nil when the previous total is zero, and
// returns the mean of the defined rates.
func growthRates(points []TrendPoint) *float64 {
	sum := 0.0
	defined := 0
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Total
		if prev.IsZero() {
			continue
		}
		rate := points[i].Total.Sub(prev).Div(prev).InexactFloat64()
		points[i].Growth = &rate
		sum += rate
		defined++
	}
	if defined == 0 {
		return nil
	}
	mean := sum / float64(defined)
	return &mean
}

// volatility is the coefficient of variation over non-empty buckets
func volatility(points []TrendPoint) *float64 {
	totals := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Count > 0 {
			totals = append(totals, p.Total.InexactFloat64())
		}
	}
	if len(totals) < 2 {
		return nil
	}

	mean := 0.0
	for _, t := range totals {
		mean += t
	}
	mean /= float64(len(totals))
	if mean == 0 {
		return nil
	}

	variance := 0.0
	for _, t := range totals {
		variance += (t - mean) * (t - mean)
	}
	variance /= float64(len(totals))

	v := math.Sqrt(variance) / mean
	return &v
}
