package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"

	"github.com/finwell/finwell-mcp/internal/api/mcp/prompts"
	"github.com/finwell/finwell-mcp/internal/api/mcp/resources"
	"github.com/finwell/finwell-mcp/internal/api/mcp/tools"
	"github.com/finwell/finwell-mcp/internal/api/middleware"
	"github.com/finwell/finwell-mcp/internal/api/response"
	envconfig "github.com/finwell/finwell-mcp/internal/common/config"
	"github.com/finwell/finwell-mcp/internal/domain/advice"
	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
	"github.com/finwell/finwell-mcp/internal/domain/mcp"
	"github.com/finwell/finwell-mcp/internal/domain/query"
	"github.com/finwell/finwell-mcp/internal/platform/csvledger"
	dynamoClient "github.com/finwell/finwell-mcp/internal/platform/dynamodb/client"
	dynamodbRepository "github.com/finwell/finwell-mcp/internal/platform/dynamodb/repository"
	"github.com/finwell/finwell-mcp/internal/platform/gemini"
	"github.com/finwell/finwell-mcp/internal/platform/secrets"
)

type MCPRequestHandler struct {
	mcpService *mcp.Service
	logger     *slog.Logger
	config     *envconfig.Config
}

// NewMCPRequestHandler creates a new MCP request handler
func NewMCPRequestHandler(
	mcpService *mcp.Service,
	logger *slog.Logger,
	config *envconfig.Config,
) *MCPRequestHandler {
	return &MCPRequestHandler{
		mcpService: mcpService,
		logger:     logger,
		config:     config,
	}
}

func (h *MCPRequestHandler) HandleRequest(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Handle CORS preflight
	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    h.getCORSHeaders(),
		}, nil
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	h.logger.Info("mcp - Memory Status", "MB", m.Alloc/1024/1024)

	if h.config.Environment == "dev" {
		h.logger.Info("Request Details",
			"path", request.Path,
			"method", request.HTTPMethod,
			"body", request.Body,
			"requestId", request.RequestContext.RequestID,
			"sourceIP", request.RequestContext.Identity.SourceIP,
		)
	}

	if request.Path == "/" && request.HTTPMethod != "POST" {
		return h.jsonRPCMethodNotAllowedError(), nil
	}

	// MCP servers handle JSON-RPC requests on the root path
	if request.Path != "/" || request.HTTPMethod != "POST" {
		return response.NotFound("Endpoint not found"), nil
	}

	// Parse JSON-RPC request
	var jsonRPCRequest mcp.JSONRPCRequest
	if err := json.Unmarshal([]byte(request.Body), &jsonRPCRequest); err != nil {
		h.logger.Error("Failed to parse JSON-RPC request", "error", err)
		return h.jsonRPCErrorResponse(mcp.ParseError, "Parse error", err.Error()), nil
	}

	// Handle the request
	httpResponse := h.mcpService.HandleRequest(ctx, jsonRPCRequest)

	// Marshal response
	responseBody, err := json.Marshal(httpResponse.JSONRPCResponse)
	if err != nil {
		h.logger.Error("Failed to marshal JSON-RPC response", "error", err)
		return h.jsonRPCErrorResponse(mcp.InternalError, "Internal error", "Failed to marshal response"), nil
	}

	if h.config.Environment == "dev" {
		h.logger.Info("Response Details",
			"response", string(responseBody),
		)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: httpResponse.StatusCode,
		Headers:    h.getCORSHeaders(),
		Body:       string(responseBody),
	}, nil
}

func (h *MCPRequestHandler) getCORSHeaders() map[string]string {
	headers := make(map[string]string)
	headers["Content-Type"] = "application/json"
	headers["Access-Control-Allow-Origin"] = "*"
	headers["Access-Control-Allow-Methods"] = "POST, OPTIONS"
	headers["Access-Control-Allow-Headers"] = "Content-Type, Authorization"
	return headers
}

func (h *MCPRequestHandler) jsonRPCErrorResponse(code int, message string, data string) events.APIGatewayProxyResponse {
	errorResponse := mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &mcp.JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}

	body, _ := json.Marshal(errorResponse)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK, // JSON-RPC errors still return 200
		Headers:    h.getCORSHeaders(),
		Body:       string(body),
	}
}

func (h *MCPRequestHandler) jsonRPCMethodNotAllowedError() events.APIGatewayProxyResponse {
	errorResponse := mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &mcp.JSONRPCError{
			Code:    mcp.InvalidRequest,
			Message: "Method Not Allowed",
		},
	}

	body, _ := json.Marshal(errorResponse)
	headers := h.getCORSHeaders()
	headers["Allow"] = "POST"
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusMethodNotAllowed,
		Headers:    headers,
		Body:       string(body),
	}
}

// loadLedgerSource picks the configured ingestion source
func loadLedgerSource(ctx context.Context, config *envconfig.Config, zlog *zap.Logger) (ledger.Source, error) {
	if config.LedgerSource == envconfig.SourceDynamoDB {
		client, err := dynamoClient.NewDynamoDBClient(ctx, config.AWSRegion)
		if err != nil {
			return nil, err
		}
		return dynamodbRepository.NewDynamoDBLedgerRepository(client, config.DynamoDBTableName, zlog), nil
	}
	return csvledger.NewLoader(config.LedgerCSVPath, zlog), nil
}

// buildNarrator resolves the Gemini API key and builds the narrator. Returns
// nil when no key is configured; the query service then skips narration.
func buildNarrator(ctx context.Context, config *envconfig.Config, logger *slog.Logger) query.Narrator {
	apiKey := config.GeminiAPIKey
	if apiKey == "" && config.GeminiAPISecretARN != "" {
		awscfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.AWSRegion))
		if err != nil {
			logger.Error("Failed to load AWS config for secrets", "error", err)
			return nil
		}
		apiKey, err = secrets.NewResolver(awscfg).GetSecretString(ctx, config.GeminiAPISecretARN)
		if err != nil {
			logger.Error("Failed to resolve Gemini API key secret", "error", err)
			return nil
		}
	}
	if apiKey == "" {
		return nil
	}

	narrator, err := gemini.NewNarrator(ctx, apiKey)
	if err != nil {
		logger.Error("Failed to initialize narrator", "error", err)
		return nil
	}
	return narrator
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
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

	// Initialize ledger source and load the store
	source, err := loadLedgerSource(ctx, config, zlog)
	if err != nil {
		logger.Error("Failed to initialize ledger source", "error", err)
		os.Exit(1)
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

	// Initialize budgets
	budgets := analysis.DefaultBudgets()
	if config.BudgetsPath != "" {
		budgets, err = analysis.LoadBudgets(config.BudgetsPath)
		if err != nil {
			logger.Error("Failed to load budgets", "error", err)
			os.Exit(1)
		}
	}

	// Initialize the analysis engine, advisor, and query service
	engine := analysis.NewEngine(store, budgets)
	advisor := advice.NewAdvisor(engine)
	narrator := buildNarrator(ctx, config, logger)
	queryService := query.NewService(engine, advisor, narrator, zlog)

	// Create MCP handler registry
	registry := mcp.NewHandlerRegistry()

	// Register analysis tools
	registry.RegisterTool(tools.NewGetTransactionsTool(queryService))
	registry.RegisterTool(tools.NewGetSpendingAnalysisTool(queryService))
	registry.RegisterTool(tools.NewGetBudgetAnalysisTool(queryService))
	registry.RegisterTool(tools.NewGetSpendingRecommendationsTool(queryService))
	registry.RegisterTool(tools.NewGetMerchantAnalysisTool(queryService))
	registry.RegisterTool(tools.NewGetTrendAnalysisTool(queryService))
	registry.RegisterTool(tools.NewGetChartDataTool(queryService))
	registry.RegisterTool(tools.NewAskTool(queryService))

	// Register ledger resources
	registry.RegisterResource(resources.NewCategoriesResource(engine))
	registry.RegisterResource(resources.NewLedgerResource(engine))

	// Register prompts
	registry.RegisterPrompt(prompts.NewFinancialCheckupPrompt())

	// Create MCP service with registry
	mcpService := mcp.NewService(logger, registry)

	// Create handler and wrap it in the middleware chain
	handler := NewMCPRequestHandler(
		mcpService,
		logger,
		config,
	)

	chain := middleware.NewRecoveryMiddleware().Handle(
		middleware.NewLoggingMiddleware().Handle(
			handler.HandleRequest,
		),
	)

	lambda.Start(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return chain(ctx, logger, request)
	})
}
