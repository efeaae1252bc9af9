package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/finwell/finwell-mcp/internal/domain/errors"
)

// FilterSpec is a declarative description of which transactions an analysis
// should cover. Zero values mean "no constraint on this dimension".
type FilterSpec struct {
	Category   string          `json:"category,omitempty"`
	Merchant   string          `json:"merchant,omitempty"`
	Type       TransactionType `json:"transactionType,omitempty"`
	Start      *time.Time      `json:"startDate,omitempty"`
	End        *time.Time      `json:"endDate,omitempty"`
	DatePhrase string          `json:"datePhrase,omitempty"`
}

// IsZero reports whether the spec constrains nothing
func (f FilterSpec) IsZero() bool {
	return f.Category == "" && f.Merchant == "" && f.Type == "" &&
		f.Start == nil && f.End == nil && f.DatePhrase == ""
}

// Resolve turns the spec into a predicate, anchoring any named date phrase to
// the reference date. Explicit Start/End bounds take precedence over the
// phrase; an unrecognized phrase contributes no date constraint. A resolved
// range with start after end is an InvalidFilterError, never a silent swap.
func (f FilterSpec) Resolve(ref time.Time) (Predicate, error) {
	start, end := f.Start, f.End

	if start == nil && end == nil && f.DatePhrase != "" {
		if r, ok := ResolveDatePhrase(f.DatePhrase, ref); ok {
			start, end = &r.Start, &r.End
		}
	}

	if start != nil && end != nil && start.After(*end) {
		return nil, errors.NewInvalidFilterError(fmt.Sprintf(
			"filter start date %s is after end date %s",
			start.Format(DateLayout), end.Format(DateLayout)))
	}

	var lo, hi time.Time
	if start != nil {
		lo = dateOnly(*start)
	}
	if end != nil {
		hi = dateOnly(*end)
	}

	category := normalize(f.Category)
	merchant := normalize(f.Merchant)
	txType := f.Type

	return func(tx Transaction) bool {
		if category != "" && normalize(tx.Category) != category {
			return false
		}
		if merchant != "" && !strings.Contains(normalize(tx.Merchant), merchant) {
			return false
		}
		if txType != "" && tx.Type != txType {
			return false
		}
		d := dateOnly(tx.Date)
		if start != nil && d.Before(lo) {
			return false
		}
		if end != nil && d.After(hi) {
			return false
		}
		return true
	}, nil
}

// Range returns the concrete date range the spec resolves to against the
// reference date, and false when the spec carries no date constraint. Used by
// analyses that need the period length (daily budgets, purchase frequency).
func (f FilterSpec) Range(ref time.Time) (DateRange, bool) {
	if f.Start != nil && f.End != nil {
		return DateRange{Start: dateOnly(*f.Start), End: dateOnly(*f.End)}, true
	}
	if f.Start == nil && f.End == nil && f.DatePhrase != "" {
		if r, ok := ResolveDatePhrase(f.DatePhrase, ref); ok {
			return r, true
		}
	}
	return DateRange{}, false
}

// Merge overlays the non-zero dimensions of other onto f and returns the
// result. Date dimensions travel together: if other carries any date
// constraint it replaces f's date constraint wholesale.
func (f FilterSpec) Merge(other FilterSpec) FilterSpec {
	out := f
	if other.Category != "" {
		out.Category = other.Category
	}
	if other.Merchant != "" {
		out.Merchant = other.Merchant
	}
	if other.Type != "" {
		out.Type = other.Type
	}
	if other.Start != nil || other.End != nil || other.DatePhrase != "" {
		out.Start = other.Start
		out.End = other.End
		out.DatePhrase = other.DatePhrase
	}
	return out
}
