package prompts

import (
	"context"
	"fmt"

	"github.com/finwell/finwell-mcp/internal/domain/mcp"
)

// FinancialCheckupPrompt guides a client through a full spending review
type FinancialCheckupPrompt struct{}

func NewFinancialCheckupPrompt() *FinancialCheckupPrompt {
	return &FinancialCheckupPrompt{}
}

func (p *FinancialCheckupPrompt) GetName() string {
	return "financial-checkup"
}

func (p *FinancialCheckupPrompt) GetDescription() string {
	return "Run a full financial wellness review: spending, budgets, trends, and recommendations for a period"
}

func (p *FinancialCheckupPrompt) GetArguments() []mcp.PromptArgument {
	return []mcp.PromptArgument{
		{
			Name:        "period",
			Description: "The period to review (e.g., 'this month', 'last month', 'last 30 days')",
			Required:    true,
		},
		{
			Name:        "focus",
			Description: "Optional area to focus on (e.g., 'budgets', 'merchants', 'savings')",
			Required:    false,
		},
	}
}

func (p *FinancialCheckupPrompt) Get(ctx context.Context, arguments map[string]string) (*mcp.GetPromptResult, error) {
	period := arguments["period"]
	if period == "" {
		return nil, fmt.Errorf("period argument is required")
	}

	focus := arguments["focus"]
	if focus == "" {
		focus = "overall financial health"
	}

	messages := []mcp.PromptMessage{
		{
			Role: "user",
			Content: mcp.PromptContent{
				Type: "text",
				Text: fmt.Sprintf(`Please run a financial wellness review for %s with a focus on %s.

Work through these steps:
1. Call get-spending-analysis to see totals, category breakdown, and top merchants
2. Call get-budget-analysis and point out any categories over budget
3. Call get-trend-analysis to describe how spending is moving over time
4. Call get-spending-recommendations and summarize the actionable advice

Finish with a short plain-language verdict on how the period went.`, period, focus),
			},
		},
	}

	return &mcp.GetPromptResult{
		Messages: messages,
	}, nil
}
