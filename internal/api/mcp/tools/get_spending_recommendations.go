package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type GetSpendingRecommendationsTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewGetSpendingRecommendationsTool(queryService *query.Service) *GetSpendingRecommendationsTool {
	return &GetSpendingRecommendationsTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *GetSpendingRecommendationsTool) GetName() string {
	return "get-spending-recommendations"
}

func (t *GetSpendingRecommendationsTool) GetDescription() string {
	return "Generates personalized recommendations: overspending alerts, frequent-purchase flags, and savings rate commentary"
}

func (t *GetSpendingRecommendationsTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type:       "object",
		Properties: filterProperties(),
	}
}

func (t *GetSpendingRecommendationsTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
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

	result, err := t.queryService.Execute(query.Request{
		Intent: query.Recommendations,
		Filter: spec,
	}, t.now())
	if err != nil {
		return errorResult("Error generating recommendations: %v", err), nil
	}

	if len(result.Recommendations) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.ToolResultContent{
				{
					Type: "text",
					Text: "No recommendations for this period; spending looks healthy.",
				},
			},
		}, nil
	}

	return jsonResult("Recommendations:", result.Recommendations)
}
