package tools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/ledger"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
)

// filterArgs are the filtering arguments shared by every analysis tool
type filterArgs struct {
	Category        string `json:"category,omitempty"`
	Merchant        string `json:"merchant,omitempty"`
	TransactionType string `json:"transactionType,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	Period          string `json:"period,omitempty"`
}

// toFilterSpec converts the raw tool arguments into a filter spec. Dates are
// YYYY-MM-DD; period accepts the named phrases the query language knows
// ("this month", "last week", "last 30 days").
func (a filterArgs) toFilterSpec() (ledger.FilterSpec, error) {
	spec := ledger.FilterSpec{
		Category:   a.Category,
		Merchant:   a.Merchant,
		DatePhrase: a.Period,
	}

	if a.TransactionType != "" {
		txType, ok := ledger.ParseTransactionType(a.TransactionType)
		if !ok {
			return ledger.FilterSpec{}, fmt.Errorf("unknown transaction type: %s", a.TransactionType)
		}
		spec.Type = txType
	}

	if a.StartDate != "" {
		start, err := time.Parse(ledger.DateLayout, a.StartDate)
		if err != nil {
			return ledger.FilterSpec{}, fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD", a.StartDate)
		}
		spec.Start = &start
	}
	if a.EndDate != "" {
		end, err := time.Parse(ledger.DateLayout, a.EndDate)
		if err != nil {
			return ledger.FilterSpec{}, fmt.Errorf("invalid endDate %q: expected YYYY-MM-DD", a.EndDate)
		}
		spec.End = &end
	}

	return spec, nil
}

// filterProperties returns the shared filter schema fragment for tool input
// schemas.
func filterProperties() map[string]interface{} {
	return map[string]interface{}{
		"category": map[string]string{
			"type":        "string",
			"description": "Restrict to one spending category (fuzzy names like 'food' are accepted)",
		},
		"merchant": map[string]string{
			"type":        "string",
			"description": "Restrict to merchants whose name contains this text",
		},
		"transactionType": map[string]interface{}{
			"type":        "string",
			"description": "Restrict to one transaction type",
			"enum":        []string{"expense", "income", "transfer"},
		},
		"startDate": map[string]string{
			"type":        "string",
			"description": "Start of the date range in YYYY-MM-DD format (inclusive)",
			"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
		},
		"endDate": map[string]string{
			"type":        "string",
			"description": "End of the date range in YYYY-MM-DD format (inclusive)",
			"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
		},
		"period": map[string]string{
			"type":        "string",
			"description": "Named period such as 'this month', 'last week', or 'last 30 days'; ignored when explicit dates are set",
		},
	}
}

// errorResult wraps an error message in the tool-result error format
func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.ToolResultContent{
			{
				Type: "text",
				Text: fmt.Sprintf(format, args...),
			},
		},
		IsError: true,
	}
}

// jsonResult renders a payload as an indented JSON tool result with a short
// heading line.
func jsonResult(heading string, payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult("Error formatting response: %v", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.ToolResultContent{
			{
				Type: "text",
				Text: fmt.Sprintf("%s\n%s", heading, string(data)),
			},
		},
		IsError: false,
	}, nil
}
