package query

import (
	"regexp"
	"strings"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/errors"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// extraction is everything pulled out of one query's text
type extraction struct {
	Filter    ledger.FilterSpec
	Interval  analysis.Interval
	ChartKind analysis.ChartKind
}

var (
	// explicit category markers; a token matched here that resolves to no
	// known category is an error rather than a silently dropped filter
	categoryMarkerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bcategory\s+([a-z&' ]+?)(?:\s+(?:last|this|past|in|during|for|from|over|since)\b|[?.!,]|$)`),
		regexp.MustCompile(`\bin\s+the\s+([a-z&' ]+?)\s+category\b`),
	}

	merchantPattern = regexp.MustCompile(`\b(?:at|from)\s+([a-z0-9&'. ]+?)(?:\s+(?:last|this|past|in|during|for|over|since|compared|versus|vs)\b|[?.!,]|$)`)

	// leading words that mean the "at/from" capture is not a merchant name
	merchantStopwords = map[string]bool{
		"my": true, "the": true, "a": true, "an": true, "all": true,
		"least": true, "most": true, "home": true, "work": true,
		"yesterday": true, "today": true, "last": true, "this": true,
		"past": true, "each": true, "every": true,
	}
)

// extractor pulls structured filters out of free text. Category tokens
// resolve through the ledger's fuzzy matcher so "food" finds "Food & Dining".
type extractor struct {
	matcher *ledger.CategoryMatcher
}

func newExtractor(matcher *ledger.CategoryMatcher) *extractor {
	return &extractor{matcher: matcher}
}

// extract pulls category, merchant, type, date phrase, trend interval, and
// chart kind markers from the query text. An explicitly marked category that
// resolves to nothing is an UnknownCategoryError; a bare token that matches
// nothing simply contributes no category filter.
func (e *extractor) extract(text string) (extraction, error) {
	t := strings.ToLower(text)
	var ext extraction

	if phrase, ok := ledger.ExtractDatePhrase(t); ok {
		ext.Filter.DatePhrase = phrase
	}

	category, err := e.extractCategory(t)
	if err != nil {
		return extraction{}, err
	}
	ext.Filter.Category = category

	ext.Filter.Merchant = extractMerchant(t)

	if strings.Contains(t, "income") || strings.Contains(t, "earnings") {
		ext.Filter.Type = ledger.Income
	} else if strings.Contains(t, "only expenses") || strings.Contains(t, "expenses only") {
		ext.Filter.Type = ledger.Expense
	}

	ext.Interval = extractInterval(t)
	ext.ChartKind = extractChartKind(t)
	return ext, nil
}

func (e *extractor) extractCategory(t string) (string, error) {
	for _, pattern := range categoryMarkerPatterns {
		m := pattern.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		token := strings.TrimSpace(m[1])
		category, ok := e.matcher.Match(token)
		if !ok {
			return "", errors.NewUnknownCategoryError(token)
		}
		return category, nil
	}

	// no explicit marker: look for any known category named loosely in the
	// text ("how much on groceries", "my food spending")
	words := wordSet(t)
	for _, category := range e.matcher.Categories() {
		if categoryNamed(category, t, words) {
			return category, nil
		}
	}
	return "", nil
}

func categoryNamed(category, text string, words map[string]bool) bool {
	lower := strings.ToLower(category)
	if strings.Contains(text, lower) {
		return true
	}
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == '&' || r == '/'
	}) {
		if w == "and" || len(w) < 4 {
			continue
		}
		if words[w] {
			return true
		}
	}
	return false
}

func wordSet(t string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(t, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		words[w] = true
	}
	return words
}

func extractMerchant(t string) string {
	m := merchantPattern.FindStringSubmatch(t)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	first := strings.SplitN(name, " ", 2)[0]
	if merchantStopwords[first] {
		return ""
	}
	return name
}

func extractInterval(t string) analysis.Interval {
	switch {
	case strings.Contains(t, "daily") || strings.Contains(t, "by day") || strings.Contains(t, "per day") || strings.Contains(t, "day by day"):
		return analysis.Daily
	case strings.Contains(t, "weekly") || strings.Contains(t, "by week") || strings.Contains(t, "per week"):
		return analysis.Weekly
	}
	return analysis.Monthly
}

func extractChartKind(t string) analysis.ChartKind {
	switch {
	case strings.Contains(t, "trend") || strings.Contains(t, "over time") || strings.Contains(t, "line"):
		return analysis.TrendChart
	case strings.Contains(t, "budget"):
		return analysis.BudgetChart
	case strings.Contains(t, "merchant") || strings.Contains(t, "store") || strings.Contains(t, "bar"):
		return analysis.MerchantChart
	}
	return analysis.CategoryChart
}
