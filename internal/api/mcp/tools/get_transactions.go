package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/ledger"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type GetTransactionsTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewGetTransactionsTool(queryService *query.Service) *GetTransactionsTool {
	return &GetTransactionsTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *GetTransactionsTool) GetName() string {
	return "get-transactions"
}

func (t *GetTransactionsTool) GetDescription() string {
	return "Lists transactions matching the given filters, with a count and total amount"
}

func (t *GetTransactionsTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type:       "object",
		Properties: filterProperties(),
	}
}

func (t *GetTransactionsTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
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
		Intent: query.TransactionLookup,
		Filter: spec,
	}, t.now())
	if err != nil {
		return errorResult("Error retrieving transactions: %v", err), nil
	}

	total := decimal.Zero
	for _, tx := range result.Transactions {
		total = total.Add(tx.Amount)
	}

	payload := struct {
		Count        int                  `json:"count"`
		Total        decimal.Decimal      `json:"totalAmount"`
		Transactions []ledger.Transaction `json:"transactions"`
	}{
		Count:        len(result.Transactions),
		Total:        total.Round(2),
		Transactions: result.Transactions,
	}

	return jsonResult("Transactions:", payload)
}
