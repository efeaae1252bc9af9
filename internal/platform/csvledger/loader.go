// Package csvledger reads raw ledger records from a CSV export. It is the
// default ingestion source for local development and the bundled sample data.
package csvledger

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	ulid "github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	commonErrors "github.com/finwell/finwell-mcp/internal/domain/errors"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// Loader reads ledger records from a CSV file. It implements ledger.Source.
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a Loader for the CSV file at path
func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		path:   path,
		logger: logger,
	}
}

// Records reads the whole file and returns one raw record per data row.
// Columns are matched by header name, so column order does not matter. Rows
// without a transaction_id get a generated ULID; everything else is left to
// the ledger loader to validate.
func (l *Loader) Records(ctx context.Context) ([]ledger.Record, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to open ledger csv", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, commonErrors.NewMalformedRecordError("ledger csv is empty", nil)
	}
	if err != nil {
		return nil, commonErrors.NewMalformedRecordError("failed to read ledger csv header", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "amount", "category", "transaction_type"} {
		if _, ok := columns[required]; !ok {
			return nil, commonErrors.NewMalformedRecordError("ledger csv is missing the "+required+" column", nil)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []ledger.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, commonErrors.NewMalformedRecordError("failed to read ledger csv row", err).
				WithDetail("record", len(records))
		}

		record := ledger.Record{
			ID:          field(row, "transaction_id"),
			Date:        field(row, "date"),
			Amount:      field(row, "amount"),
			Category:    field(row, "category"),
			Description: field(row, "description"),
			Merchant:    field(row, "merchant"),
			Type:        field(row, "transaction_type"),
			Account:     field(row, "account_type"),
		}
		if record.ID == "" {
			record.ID = ulid.Make().String()
		}
		records = append(records, record)
	}

	l.logger.Info("loaded ledger records from csv",
		zap.String("path", l.path),
		zap.Int("count", len(records)))

	return records, nil
}
