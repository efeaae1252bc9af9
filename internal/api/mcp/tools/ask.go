package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

type AskTool struct {
	queryService *query.Service
	now          func() time.Time
}

func NewAskTool(queryService *query.Service) *AskTool {
	return &AskTool{
		queryService: queryService,
		now:          time.Now,
	}
}

func (t *AskTool) GetName() string {
	return "ask"
}

func (t *AskTool) GetDescription() string {
	return "Answers a free-text question about spending. Pass the same sessionId across turns to keep conversational context (follow-ups like 'and last month?' reuse the previous filters)"
}

func (t *AskTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"query": map[string]string{
				"type":        "string",
				"description": "The question, e.g. 'how much did I spend on groceries last month'",
			},
			"sessionId": map[string]string{
				"type":        "string",
				"description": "Conversation session identifier; omit to start a fresh session",
			},
		},
		Required: []string{"query"},
	}
}

func (t *AskTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		Query     string `json:"query"`
		SessionID string `json:"sessionId,omitempty"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResult("Error parsing arguments: %v", err), nil
	}
	if args.Query == "" {
		return errorResult("Error: query is required"), nil
	}

	sessionID := args.SessionID
	if sessionID == "" {
		sessionID = query.NewSessionID()
	}

	result, err := t.queryService.Ask(ctx, sessionID, args.Query, t.now())
	if err != nil {
		return errorResult("Error answering query: %v", err), nil
	}

	payload := struct {
		SessionID string        `json:"sessionId"`
		Result    *query.Result `json:"result"`
	}{
		SessionID: sessionID,
		Result:    result,
	}

	return jsonResult("Answer:", payload)
}
