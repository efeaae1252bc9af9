package query

import (
	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// Request is a fully interpreted query: the intent plus the effective filter
// after any carry-over from the session context.
type Request struct {
	Intent    Intent
	Filter    ledger.FilterSpec
	Interval  analysis.Interval
	ChartKind analysis.ChartKind
	Inherited bool
}

// Interpreter turns free text into Requests. It is stateless; all
// conversation state lives in the per-session Context passed to Interpret.
type Interpreter struct {
	extractor *extractor
}

// NewInterpreter creates an interpreter whose category tokens resolve
// against the given known category set.
func NewInterpreter(matcher *ledger.CategoryMatcher) *Interpreter {
	return &Interpreter{extractor: newExtractor(matcher)}
}

// Interpret resolves one query turn against the session context. The rules:
//
//  1. Extraction runs first; an explicitly named unknown category fails the
//     turn and leaves the context untouched.
//  2. A query with no intent markers inherits the previous turn's intent
//     ("and last month?" keeps analyzing what the last turn analyzed).
//  3. Carried-over filters merge only when the turn stays in the previous
//     intent's family; crossing families starts from this turn's filters
//     alone.
//  4. The resolved turn overwrites the context.
func (i *Interpreter) Interpret(text string, ctx *Context) (Request, error) {
	ext, err := i.extractor.extract(text)
	if err != nil {
		return Request{}, err
	}

	intent, matched := classify(text, ext)
	inherited := false
	if !matched && ctx.HasIntent {
		intent = ctx.Intent
		inherited = true
	}

	filter := ext.Filter
	if ctx.HasIntent && intent.Family() == ctx.Intent.Family() {
		filter = ctx.Filter.Merge(ext.Filter)
	}

	ctx.remember(intent, filter, text)

	return Request{
		Intent:    intent,
		Filter:    filter,
		Interval:  ext.Interval,
		ChartKind: ext.ChartKind,
		Inherited: inherited,
	}, nil
}
