package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	ulid "github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	commonErrors "github.com/finwell/finwell-mcp/internal/domain/errors"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
	"github.com/finwell/finwell-mcp/internal/platform/dynamodb/client"
)

// ledgerPartition is the partition key shared by every transaction item.
// The ledger is single-user, so one partition keeps date-ordered reads cheap.
const ledgerPartition = "LEDGER"

// batchWriteLimit is the DynamoDB BatchWriteItem per-request item cap
const batchWriteLimit = 25

// DynamoDBLedgerRepository reads and writes raw ledger records in DynamoDB.
// It implements ledger.Source.
type DynamoDBLedgerRepository struct {
	client client.Client
	table  string
	logger *zap.Logger
}

// NewDynamoDBLedgerRepository creates a new DynamoDBLedgerRepository
func NewDynamoDBLedgerRepository(client client.Client, table string, logger *zap.Logger) *DynamoDBLedgerRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DynamoDBLedgerRepository{
		client: client,
		table:  table,
		logger: logger,
	}
}

func transactionSK(date, id string) string {
	return fmt.Sprintf("TXN#%s#%s", date, id)
}

// Records returns every ledger record in the table, oldest first. It pages
// through the partition until DynamoDB stops returning a continuation key.
func (r *DynamoDBLedgerRepository) Records(ctx context.Context) ([]ledger.Record, error) {
	keyCondition := expression.Key("PK").Equal(expression.Value(ledgerPartition)).
		And(expression.Key("SK").BeginsWith("TXN#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to build ledger query expression", err)
	}

	var records []ledger.Record
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.table),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
			ScanIndexForward:          aws.Bool(true),
		})
		if err != nil {
			return nil, commonErrors.NewInternalError("failed to query ledger records", err)
		}

		page := make([]ledger.Record, 0, len(result.Items))
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, commonErrors.NewInternalError("failed to unmarshal ledger records", err)
		}
		records = append(records, page...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	r.logger.Info("loaded ledger records from dynamodb",
		zap.String("table", r.table),
		zap.Int("count", len(records)))

	return records, nil
}

// GetRecord retrieves a single record by transaction ID and date
func (r *DynamoDBLedgerRepository) GetRecord(ctx context.Context, date, id string) (*ledger.Record, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: ledgerPartition},
			"SK": &types.AttributeValueMemberS{Value: transactionSK(date, id)},
		},
	})
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to get ledger record", err)
	}
	if len(result.Item) == 0 {
		return nil, commonErrors.NewNotFoundError("ledger record not found")
	}

	var record ledger.Record
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, commonErrors.NewInternalError("failed to unmarshal ledger record", err)
	}
	return &record, nil
}

// PutRecord writes a single record. A missing transaction ID gets a generated
// ULID so the sort key stays unique within a date.
func (r *DynamoDBLedgerRepository) PutRecord(ctx context.Context, record ledger.Record) (*ledger.Record, error) {
	if record.ID == "" {
		record.ID = ulid.Make().String()
	}
	if _, err := time.Parse(ledger.DateLayout, record.Date); err != nil {
		return nil, commonErrors.NewValidationError("record date must be in YYYY-MM-DD format")
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to marshal ledger record", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: ledgerPartition}
	item["SK"] = &types.AttributeValueMemberS{Value: transactionSK(record.Date, record.ID)}
	item["Type"] = &types.AttributeValueMemberS{Value: "transaction"}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to put ledger record", err)
	}

	return &record, nil
}

// PutRecords writes records in BatchWriteItem chunks. Used by the CSV import
// path when seeding a table.
func (r *DynamoDBLedgerRepository) PutRecords(ctx context.Context, records []ledger.Record) error {
	for start := 0; start < len(records); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(records) {
			end = len(records)
		}

		writes := make([]types.WriteRequest, 0, end-start)
		for _, record := range records[start:end] {
			if record.ID == "" {
				record.ID = ulid.Make().String()
			}
			item, err := attributevalue.MarshalMap(record)
			if err != nil {
				return commonErrors.NewInternalError("failed to marshal ledger record", err)
			}
			item["PK"] = &types.AttributeValueMemberS{Value: ledgerPartition}
			item["SK"] = &types.AttributeValueMemberS{Value: transactionSK(record.Date, record.ID)}
			item["Type"] = &types.AttributeValueMemberS{Value: "transaction"}

			writes = append(writes, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		_, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				r.table: writes,
			},
		})
		if err != nil {
			return commonErrors.NewInternalError("failed to batch write ledger records", err)
		}
	}

	r.logger.Info("batch wrote ledger records",
		zap.String("table", r.table),
		zap.Int("count", len(records)))

	return nil
}
