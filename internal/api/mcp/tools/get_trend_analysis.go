package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type GetTrendAnalysisTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewGetTrendAnalysisTool(queryService *query.Service) *GetTrendAnalysisTool {
	return &GetTrendAnalysisTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *GetTrendAnalysisTool) GetName() string {
	return "get-trend-analysis"
}

func (t *GetTrendAnalysisTool) GetDescription() string {
	return "Buckets spending over time (daily, weekly, or monthly) with growth rate and volatility metrics"
}

func (t *GetTrendAnalysisTool) GetInputSchema() mcp.JSONSchema {
	properties := filterProperties()
	properties["interval"] = map[string]interface{}{
		"type":        "string",
		"description": "Bucket width for the trend series",
		"enum":        []string{"day", "week", "month"},
		"default":     "month",
	}
	return mcp.JSONSchema{
		Type:       "object",
		Properties: properties,
	}
}

func (t *GetTrendAnalysisTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		filterArgs
		Interval string `json:"interval,omitempty"`
	}
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return errorResult("Error parsing arguments: %v", err), nil
		}
	}

	spec, err := args.toFilterSpec()
	if err != nil {
		return errorResult("Error: %v", err), nil
	}

	interval, err := analysis.ParseInterval(args.Interval)
	if err != nil {
		return errorResult("Error: %v", err), nil
	}

	result, err := t.queryService.Execute(query.Request{
		Intent:   query.TrendAnalysis,
		Filter:   spec,
		Interval: interval,
	}, t.now())
	if err != nil {
		return errorResult("Error analyzing trend: %v", err), nil
	}

	return jsonResult("Trend analysis:", result.Trend)
}
