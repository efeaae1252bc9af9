package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
)

type LedgerResource struct {
	engine *analysis.Engine
}

func NewLedgerResource(engine *analysis.Engine) *LedgerResource {
	return &LedgerResource{
		engine: engine,
	}
}

func (r *LedgerResource) GetURI() string {
	return "finwell://ledger"
}

func (r *LedgerResource) GetName() string {
	return "Transaction Ledger"
}

func (r *LedgerResource) GetDescription() string {
	return "Status of the loaded transaction ledger: record count, date span, and known categories"
}

func (r *LedgerResource) GetMimeType() string {
	return "application/json"
}

func (r *LedgerResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	store := r.engine.Store()

	status := struct {
		TransactionCount int      `json:"transactionCount"`
		EarliestDate     string   `json:"earliestDate,omitempty"`
		LatestDate       string   `json:"latestDate,omitempty"`
		Categories       []string `json:"categories"`
	}{
		TransactionCount: store.Len(),
		Categories:       store.Categories(),
	}

	if min, max, ok := store.Span(); ok {
		status.EarliestDate = min.Format(ledger.DateLayout)
		status.LatestDate = max.Format(ledger.DateLayout)
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      r.GetURI(),
				MimeType: r.GetMimeType(),
				Text:     string(data),
			},
		},
	}, nil
}
