package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwell/finwell-mcp/internal/domain/errors"
)

// Source delivers raw ledger records from wherever they live (CSV file,
// DynamoDB table). Sources do not validate; Load does.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Store is the immutable-after-load transaction collection. It is safe to
// share across concurrent query evaluations without locking.
type Store struct {
	transactions []Transaction
}

// Predicate selects transactions during filtering
type Predicate func(Transaction) bool

// Load validates raw records and builds a Store. A record missing a required
// field or carrying an unparseable date or amount yields a
// MalformedRecordError identifying the record; the caller decides whether to
// skip it and retry with the rest or abort.
func Load(records []Record) (*Store, error) {
	transactions := make([]Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := parseRecord(rec)
		if err != nil {
			if appErr, ok := err.(errors.AppError); ok {
				return nil, appErr.WithDetail("record", i).WithDetail("transactionId", rec.ID)
			}
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return &Store{transactions: transactions}, nil
}

func parseRecord(rec Record) (Transaction, error) {
	if rec.ID == "" {
		return Transaction{}, errors.NewMalformedRecordError("record is missing a transaction id", nil)
	}
	if rec.Category == "" {
		return Transaction{}, errors.NewMalformedRecordError("record is missing a category", nil)
	}
	if rec.Merchant == "" {
		return Transaction{}, errors.NewMalformedRecordError("record is missing a merchant", nil)
	}

	txType, ok := ParseTransactionType(rec.Type)
	if !ok {
		return Transaction{}, errors.NewMalformedRecordError(
			fmt.Sprintf("record has unknown transaction type %q", rec.Type), nil)
	}

	date, err := time.Parse(DateLayout, rec.Date)
	if err != nil {
		return Transaction{}, errors.NewMalformedRecordError(
			fmt.Sprintf("record has unparseable date %q", rec.Date), err)
	}

	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return Transaction{}, errors.NewMalformedRecordError(
			fmt.Sprintf("record has unparseable amount %q", rec.Amount), err)
	}
	if amount.IsNegative() {
		return Transaction{}, errors.NewMalformedRecordError(
			"record has a negative amount; direction is carried by the transaction type", nil)
	}

	return Transaction{
		ID:          rec.ID,
		Date:        date.UTC(),
		Amount:      amount,
		Category:    rec.Category,
		Description: rec.Description,
		Merchant:    rec.Merchant,
		Type:        txType,
		Account:     rec.Account,
	}, nil
}

// Filter returns the transactions matching the predicate, preserving the
// original ledger order. The returned slice is a copy; the store never
// mutates after load.
func (s *Store) Filter(pred Predicate) []Transaction {
	matched := make([]Transaction, 0)
	for _, tx := range s.transactions {
		if pred == nil || pred(tx) {
			matched = append(matched, tx)
		}
	}
	return matched
}

// All returns every transaction in ledger order
func (s *Store) All() []Transaction {
	return s.Filter(nil)
}

// Len returns the number of transactions in the ledger
func (s *Store) Len() int {
	return len(s.transactions)
}

// Categories returns the distinct category names present in the ledger, in
// first-seen order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, tx := range s.transactions {
		if !seen[tx.Category] {
			seen[tx.Category] = true
			categories = append(categories, tx.Category)
		}
	}
	return categories
}

// Span returns the earliest and latest transaction dates, and false when the
// ledger is empty.
func (s *Store) Span() (time.Time, time.Time, bool) {
	if len(s.transactions) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max := s.transactions[0].Date, s.transactions[0].Date
	for _, tx := range s.transactions[1:] {
		if tx.Date.Before(min) {
			min = tx.Date
		}
		if tx.Date.After(max) {
			max = tx.Date
		}
	}
	return min, max, true
}
