package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type GetBudgetAnalysisTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewGetBudgetAnalysisTool(queryService *query.Service) *GetBudgetAnalysisTool {
	return &GetBudgetAnalysisTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *GetBudgetAnalysisTool) GetName() string {
	return "get-budget-analysis"
}

func (t *GetBudgetAnalysisTool) GetDescription() string {
	return "Compares actual spending against budget limits per category, flagging overspending"
}

func (t *GetBudgetAnalysisTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type:       "object",
		Properties: filterProperties(),
	}
}

func (t *GetBudgetAnalysisTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
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
		Intent: query.BudgetAnalysis,
		Filter: spec,
	}, t.now())
	if err != nil {
		return errorResult("Error analyzing budget: %v", err), nil
	}

	return jsonResult("Budget analysis:", result.Budget)
}
