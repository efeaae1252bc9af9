package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type GetChartDataTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewGetChartDataTool(queryService *query.Service) *GetChartDataTool {
	return &GetChartDataTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *GetChartDataTool) GetName() string {
	return "get-chart-data"
}

func (t *GetChartDataTool) GetDescription() string {
	return "Produces data-only chart payloads (labels and value series); rendering is left to the client"
}

func (t *GetChartDataTool) GetInputSchema() mcp.JSONSchema {
	properties := filterProperties()
	properties["chartType"] = map[string]interface{}{
		"type":        "string",
		"description": "Which chart payload to build",
		"enum":        []string{"category", "trend", "budget", "merchant"},
		"default":     "category",
	}
	properties["interval"] = map[string]interface{}{
		"type":        "string",
		"description": "Bucket width for trend charts",
		"enum":        []string{"day", "week", "month"},
		"default":     "month",
	}
	return mcp.JSONSchema{
		Type:       "object",
		Properties: properties,
	}
}

func (t *GetChartDataTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		filterArgs
		ChartType string `json:"chartType,omitempty"`
		Interval  string `json:"interval,omitempty"`
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

	kind := analysis.ChartKind(args.ChartType)
	if args.ChartType == "" {
		kind = analysis.CategoryChart
	}

	result, err := t.queryService.Execute(query.Request{
		Intent:    query.ChartData,
		Filter:    spec,
		Interval:  interval,
		ChartKind: kind,
	}, t.now())
	if err != nil {
		return errorResult("Error building chart data: %v", err), nil
	}

	return jsonResult("Chart data:", result.Chart)
}
