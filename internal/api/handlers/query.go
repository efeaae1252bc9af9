package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/finwell/finwell-mcp/internal/api/response"
	"github.com/finwell/finwell-mcp/internal/domain/errors"
	"github.com/finwell/finwell-mcp/internal/domain/query"
)

// QueryHandler exposes the conversational query endpoint over REST
type QueryHandler struct {
	service *query.Service
	now     func() time.Time
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(service *query.Service) *QueryHandler {
	return &QueryHandler{
		service: service,
		now:     time.Now,
	}
}

type askRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Query     string `json:"query"`
}

type askResponse struct {
	SessionID string        `json:"sessionId"`
	Result    *query.Result `json:"result"`
}

// Ask handles POST /ask
func (h *QueryHandler) Ask(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var body askRequest
	if err := json.Unmarshal([]byte(request.Body), &body); err != nil {
		return response.BadRequest("Request body must be valid JSON", request.RequestContext.RequestID), nil
	}
	if body.Query == "" {
		return response.ValidationError("query is required", request.RequestContext.RequestID), nil
	}

	sessionID := body.SessionID
	if sessionID == "" {
		sessionID = query.NewSessionID()
	}

	result, err := h.service.Ask(ctx, sessionID, body.Query, h.now())
	if err != nil {
		if appErr, ok := err.(errors.AppError); ok {
			return response.Error(appErr, request.RequestContext.RequestID), nil
		}
		return events.APIGatewayProxyResponse{}, err
	}

	return response.OK(askResponse{
		SessionID: sessionID,
		Result:    result,
	}, request.RequestContext.RequestID), nil
}

// Health handles GET /health
func (h *QueryHandler) Health(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return response.OK(map[string]string{"status": "ok"}, request.RequestContext.RequestID), nil
}
