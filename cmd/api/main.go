// Command api runs the REST query endpoint as an AWS Lambda behind API
// Gateway. It exposes the same query service as the MCP server for clients
// that just want a plain HTTP surface.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"

	"github.com/finwell/finwell-mcp/internal/api/handlers"
	"github.com/finwell/finwell-mcp/internal/api/middleware"
	"github.com/finwell/finwell-mcp/internal/api/response"
	envconfig "github.com/finwell/finwell-mcp/internal/common/config"
	"github.com/finwell/finwell-mcp/internal/domain/advice"
	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
	"github.com/finwell/finwell-mcp/internal/domain/query"
	"github.com/finwell/finwell-mcp/internal/platform/csvledger"
	dynamoClient "github.com/finwell/finwell-mcp/internal/platform/dynamodb/client"
	dynamodbRepository "github.com/finwell/finwell-mcp/internal/platform/dynamodb/repository"
	"github.com/finwell/finwell-mcp/internal/platform/gemini"
	"github.com/finwell/finwell-mcp/internal/platform/secrets"
)

func route(handler *handlers.QueryHandler) middleware.APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if request.HTTPMethod == "OPTIONS" {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusOK,
				Headers:    response.DefaultHeaders(),
			}, nil
		}

		switch {
		case request.HTTPMethod == "POST" && request.Path == "/ask":
			return handler.Ask(ctx, logger, request)
		case request.HTTPMethod == "GET" && request.Path == "/health":
			return handler.Health(ctx, logger, request)
		}
		return response.NotFound("Endpoint not found"), nil
	}
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := envconfig.LoadFromEnv()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		logger.Error("Failed to initialize zap logger", "error", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	ctx := context.Background()

	var source ledger.Source
	if config.LedgerSource == envconfig.SourceDynamoDB {
		client, err := dynamoClient.NewDynamoDBClient(ctx, config.AWSRegion)
		if err != nil {
			logger.Error("Failed to initialize DynamoDB client", "error", err)
			os.Exit(1)
		}
		source = dynamodbRepository.NewDynamoDBLedgerRepository(client, config.DynamoDBTableName, zlog)
	} else {
		source = csvledger.NewLoader(config.LedgerCSVPath, zlog)
	}

	records, err := source.Records(ctx)
	if err != nil {
		logger.Error("Failed to read ledger records", "error", err)
		os.Exit(1)
	}
	store, err := ledger.Load(records)
	if err != nil {
		logger.Error("Failed to load ledger store", "error", err)
		os.Exit(1)
	}

	budgets := analysis.DefaultBudgets()
	if config.BudgetsPath != "" {
		budgets, err = analysis.LoadBudgets(config.BudgetsPath)
		if err != nil {
			logger.Error("Failed to load budgets", "error", err)
			os.Exit(1)
		}
	}

	var narrator query.Narrator
	apiKey := config.GeminiAPIKey
	if apiKey == "" && config.GeminiAPISecretARN != "" {
		awscfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.AWSRegion))
		if err != nil {
			logger.Error("Failed to load AWS config for secrets", "error", err)
		} else if apiKey, err = secrets.NewResolver(awscfg).GetSecretString(ctx, config.GeminiAPISecretARN); err != nil {
			logger.Error("Failed to resolve Gemini API key secret", "error", err)
			apiKey = ""
		}
	}
	if apiKey != "" {
		narrator, err = gemini.NewNarrator(ctx, apiKey)
		if err != nil {
			logger.Error("Failed to initialize narrator", "error", err)
			narrator = nil
		}
	}

	engine := analysis.NewEngine(store, budgets)
	queryService := query.NewService(engine, advice.NewAdvisor(engine), narrator, zlog)
	handler := handlers.NewQueryHandler(queryService)

	chain := middleware.NewRecoveryMiddleware().Handle(
		middleware.NewLoggingMiddleware().Handle(
			route(handler),
		),
	)

	lambda.Start(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return chain(ctx, logger, request)
	})
}
