package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type GetSpendingAnalysisTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewGetSpendingAnalysisTool(queryService *query.Service) *GetSpendingAnalysisTool {
	return &GetSpendingAnalysisTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *GetSpendingAnalysisTool) GetName() string {
	return "get-spending-analysis"
}

func (t *GetSpendingAnalysisTool) GetDescription() string {
	return "Analyzes spending: totals, category breakdown with percentages, monthly trend, and top merchants"
}

func (t *GetSpendingAnalysisTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type:       "object",
		Properties: filterProperties(),
	}
}

func (t *GetSpendingAnalysisTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args filterArgs
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return errorResult("Error parsing arguments: %v", err), nil
		}
	}

	spec, err := args.toFilterSpec()
	if err != nil {
		return errorResult("Error: %v", err), nil
	}

	ref := t.now()

	summaryResult, err := t.queryService.Execute(query.Request{Intent: query.SpendingSummary, Filter: spec}, ref)
	if err != nil {
		return errorResult("Error analyzing spending: %v", err), nil
	}
	trendResult, err := t.queryService.Execute(query.Request{Intent: query.TrendAnalysis, Filter: spec, Interval: analysis.Monthly}, ref)
	if err != nil {
		return errorResult("Error analyzing spending: %v", err), nil
	}
	merchantResult, err := t.queryService.Execute(query.Request{Intent: query.MerchantAnalysis, Filter: spec}, ref)
	if err != nil {
		return errorResult("Error analyzing spending: %v", err), nil
	}

	topMerchants := merchantResult.Merchants
	if len(topMerchants) > 5 {
		topMerchants = topMerchants[:5]
	}

	payload := struct {
		Summary      *analysis.Summary       `json:"summary"`
		MonthlyTrend *analysis.TrendAnalysis `json:"monthlyTrend"`
		TopMerchants []analysis.MerchantStat `json:"topMerchants"`
	}{
		Summary:      summaryResult.Summary,
		MonthlyTrend: trendResult.Trend,
		TopMerchants: topMerchants,
	}

	return jsonResult("Spending analysis:", payload)
}
