package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
)

type CategoriesResource struct {
	engine *analysis.Engine
}

func NewCategoriesResource(engine *analysis.Engine) *CategoriesResource {
	return &CategoriesResource{
		engine: engine,
	}
}

func (r *CategoriesResource) GetURI() string {
	return "finwell://categories"
}

func (r *CategoriesResource) GetName() string {
	return "Spending Categories"
}

func (r *CategoriesResource) GetDescription() string {
	return "The known spending categories with their monthly budget limits"
}

func (r *CategoriesResource) GetMimeType() string {
	return "application/json"
}

func (r *CategoriesResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	type categoryEntry struct {
		Category string   `json:"category"`
		Budget   *float64 `json:"monthlyBudget"`
	}

	budgets := r.engine.Budgets()
	seen := make(map[string]bool)
	entries := make([]categoryEntry, 0, len(budgets))

	for category, limit := range budgets {
		seen[category] = true
		amount := analysis.Money(limit)
		entries = append(entries, categoryEntry{Category: category, Budget: &amount})
	}
	for _, category := range r.engine.Store().Categories() {
		if !seen[category] {
			entries = append(entries, categoryEntry{Category: category})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Category < entries[j].Category
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal categories: %w", err)
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
