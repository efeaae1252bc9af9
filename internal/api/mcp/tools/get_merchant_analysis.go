package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type GetMerchantAnalysisTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewGetMerchantAnalysisTool(queryService *query.Service) *GetMerchantAnalysisTool {
	return &GetMerchantAnalysisTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *GetMerchantAnalysisTool) GetName() string {
	return "get-merchant-analysis"
}

func (t *GetMerchantAnalysisTool) GetDescription() string {
	return "Ranks merchants by spending with totals, visit counts, averages, and first/last purchase dates"
}

func (t *GetMerchantAnalysisTool) GetInputSchema() mcp.JSONSchema {
	properties := filterProperties()
	properties["limit"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of merchants to return (default 10)",
		"minimum":     1,
	}
	return mcp.JSONSchema{
		Type:       "object",
		Properties: properties,
	}
}

func (t *GetMerchantAnalysisTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		filterArgs
		Limit int `json:"limit,omitempty"`
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

	result, err := t.queryService.Execute(query.Request{
		Intent: query.MerchantAnalysis,
		Filter: spec,
	}, t.now())
	if err != nil {
		return errorResult("Error analyzing merchants: %v", err), nil
	}

	merchants := result.Merchants
	if args.Limit > 0 && len(merchants) > args.Limit {
		merchants = merchants[:args.Limit]
	}

	return jsonResult("Merchant analysis:", merchants)
}
