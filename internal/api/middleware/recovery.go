package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"

	"github.com/finwell/finwell-mcp/internal/api/response"
	"github.com/finwell/finwell-mcp/internal/domain/errors"
)

// RecoveryMiddleware is a middleware for recovering from panics
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware() RecoveryMiddleware {
	return RecoveryMiddleware{}
}

// Handle handles the recovery middleware
func (m RecoveryMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				fmt.Printf("[PANIC] %v\n%s\n", r, stack)
			}
		}()

		resp, err := next(ctx, logger, request)

		if err != nil {
			// Convert the error to an AppError if it's not already
			var appErr errors.AppError
			if e, ok := err.(errors.AppError); ok {
				appErr = e
			} else {
				appErr = errors.NewInternalError("An unexpected error occurred", err)
			}

			fmt.Printf("[ERROR] %s: %v\n", appErr.Code, appErr.Error())

			return response.Error(appErr, request.RequestContext.RequestID), nil
		}

		return resp, nil
	}
}
