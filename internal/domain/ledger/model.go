package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	// Expense represents money leaving the account
	Expense TransactionType = "expense"
	// Income represents money entering the account
	Income TransactionType = "income"
	// Transfer represents money moved between accounts
	Transfer TransactionType = "transfer"
)

// ParseTransactionType parses a raw type label into a TransactionType
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case Expense, Income, Transfer:
		return TransactionType(s), true
	}
	return "", false
}

// Transaction is one ledger entry. Amount is always non-negative; direction
// is carried by Type, never by sign.
type Transaction struct {
	ID          string          `json:"transactionId"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Merchant    string          `json:"merchant"`
	Type        TransactionType `json:"transactionType"`
	Account     string          `json:"accountType,omitempty"`
}

// Record is a raw ledger record as delivered by an ingestion source, before
// dates and amounts are parsed. All fields are strings so sources (CSV,
// DynamoDB) stay format-agnostic; Load owns the validation.
type Record struct {
	ID          string `json:"transactionId"`
	Date        string `json:"date"` // YYYY-MM-DD
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Merchant    string `json:"merchant"`
	Type        string `json:"transactionType"`
	Account     string `json:"accountType,omitempty"`
}

// DateLayout is the calendar date format used across the ledger
const DateLayout = "2006-01-02"
