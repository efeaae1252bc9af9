package config

import (
	"errors"
	"os"
)

// Ledger source selectors
const (
	SourceCSV      = "csv"
	SourceDynamoDB = "dynamodb"
)

// Config represents the application configuration
// This struct contains all configuration parameters for the application
type Config struct {
	// AWS-specific configuration
	AWSRegion         string
	DynamoDBTableName string

	// Environment info
	Environment string

	// Ledger configuration
	LedgerSource  string // "csv" or "dynamodb"
	LedgerCSVPath string
	BudgetsPath   string // optional JSON budget table; empty means built-in defaults

	// Narration configuration. The API key wins when both are set; the
	// secret ARN is resolved through Secrets Manager at startup.
	GeminiAPIKey       string
	GeminiAPISecretARN string

	// Lambda detection flag (cached)
	isLambda bool
}

// LoadFromEnv loads the configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "dev" // Default to dev environment
	}

	cfg.AWSRegion = os.Getenv("AWS_REGION")
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-west-2"
	}

	cfg.LedgerSource = os.Getenv("LEDGER_SOURCE")
	if cfg.LedgerSource == "" {
		cfg.LedgerSource = SourceCSV
	}
	if cfg.LedgerSource != SourceCSV && cfg.LedgerSource != SourceDynamoDB {
		return nil, errors.New("LEDGER_SOURCE must be 'csv' or 'dynamodb'")
	}

	cfg.LedgerCSVPath = os.Getenv("LEDGER_CSV_PATH")
	if cfg.LedgerCSVPath == "" {
		cfg.LedgerCSVPath = "./data/daily_transactions.csv"
	}

	// The table is only required when DynamoDB is the ledger source
	cfg.DynamoDBTableName = os.Getenv("DYNAMODB_TABLE_NAME")
	if cfg.LedgerSource == SourceDynamoDB && cfg.DynamoDBTableName == "" {
		return nil, errors.New("DYNAMODB_TABLE_NAME environment variable is required for the dynamodb ledger source")
	}

	cfg.BudgetsPath = os.Getenv("BUDGETS_PATH")

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiAPISecretARN = os.Getenv("GEMINI_API_KEY_SECRET_ARN")

	// Check if running in Lambda
	cfg.isLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// IsLambda returns true if the application is running in AWS Lambda
func (c *Config) IsLambda() bool {
	return c.isLambda
}
