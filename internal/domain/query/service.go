package query

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/finwell/finwell-mcp/internal/domain/advice"
	"github.com/finwell/finwell-mcp/internal/domain/analysis"
	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// Narrator renders a structured result as conversational prose. Narration is
// strictly presentational: the structured result is already complete before
// the narrator sees it, and a narration failure never fails the query.
type Narrator interface {
	Narrate(ctx context.Context, question string, result *Result) (string, error)
}

// Result is the structured answer to one query turn. Exactly one analysis
// payload is set, matching the intent.
type Result struct {
	Intent          Intent                  `json:"intent"`
	Filter          ledger.FilterSpec       `json:"filter"`
	Inherited       bool                    `json:"inheritedIntent,omitempty"`
	Summary         *analysis.Summary       `json:"summary,omitempty"`
	Transactions    []ledger.Transaction    `json:"transactions,omitempty"`
	Budget          []analysis.BudgetLine   `json:"budget,omitempty"`
	Recommendations []advice.Recommendation `json:"recommendations,omitempty"`
	Merchants       []analysis.MerchantStat `json:"merchants,omitempty"`
	Trend           *analysis.TrendAnalysis `json:"trend,omitempty"`
	Chart           *analysis.ChartData     `json:"chart,omitempty"`
	Narrative       string                  `json:"narrative,omitempty"`
}

// Service wires the interpreter, engine, and advisor into the conversational
// entry point used by both the MCP ask tool and the local client.
type Service struct {
	interpreter *Interpreter
	engine      *analysis.Engine
	advisor     *advice.Advisor
	sessions    *Sessions
	narrator    Narrator
	logger      *zap.Logger
}

// NewService creates the query service. narrator may be nil; results are
// then returned without prose.
func NewService(engine *analysis.Engine, advisor *advice.Advisor, narrator Narrator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		interpreter: NewInterpreter(ledger.NewCategoryMatcher(knownCategories(engine))),
		engine:      engine,
		advisor:     advisor,
		sessions:    NewSessions(),
		narrator:    narrator,
		logger:      logger,
	}
}

// knownCategories is the union of ledger categories and budgeted categories,
// so budget-only categories are still addressable by name.
func knownCategories(engine *analysis.Engine) []string {
	categories := engine.Store().Categories()
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		seen[c] = true
	}
	for c := range engine.Budgets() {
		if !seen[c] {
			categories = append(categories, c)
		}
	}
	return categories
}

// Sessions exposes the session registry
func (s *Service) Sessions() *Sessions {
	return s.sessions
}

// Ask interprets one query turn for a session and runs the matching
// analysis. ref anchors relative date phrases; pass the current date in
// production and a fixed date in tests.
func (s *Service) Ask(ctx context.Context, sessionID, text string, ref time.Time) (*Result, error) {
	session := s.sessions.Get(sessionID)

	req, err := s.interpreter.Interpret(text, session)
	if err != nil {
		s.logger.Warn("query interpretation failed",
			zap.String("sessionId", sessionID),
			zap.Error(err))
		return nil, err
	}

	result, err := s.Execute(req, ref)
	if err != nil {
		return nil, err
	}

	s.logger.Info("query resolved",
		zap.String("sessionId", sessionID),
		zap.String("intent", string(req.Intent)),
		zap.Bool("inherited", req.Inherited))

	if s.narrator != nil {
		narrative, err := s.narrator.Narrate(ctx, text, result)
		if err != nil {
			s.logger.Warn("narration failed", zap.Error(err))
		} else {
			result.Narrative = narrative
		}
	}
	return result, nil
}

// Execute runs the analysis a resolved request asks for. Exposed separately
// so the MCP tools can run direct (non-conversational) requests through the
// same dispatch.
func (s *Service) Execute(req Request, ref time.Time) (*Result, error) {
	pred, err := req.Filter.Resolve(ref)
	if err != nil {
		return nil, err
	}

	result := &Result{Intent: req.Intent, Filter: req.Filter, Inherited: req.Inherited}

	switch req.Intent {
	case TransactionLookup:
		result.Transactions = s.engine.Store().Filter(pred)
	case BudgetAnalysis:
		result.Budget = s.engine.BudgetReport(pred)
	case Recommendations:
		var period *ledger.DateRange
		if r, ok := req.Filter.Range(ref); ok {
			period = &r
		}
		result.Recommendations = s.advisor.Recommendations(pred, period)
	case MerchantAnalysis:
		result.Merchants = s.engine.Merchants(pred, 10)
	case TrendAnalysis:
		trend := s.engine.Trend(pred, req.Interval)
		result.Trend = &trend
	case ChartData:
		chart, err := s.engine.Chart(req.ChartKind, pred, req.Interval)
		if err != nil {
			return nil, err
		}
		result.Chart = &chart
	default:
		summary := s.engine.Summarize(pred)
		result.Summary = &summary
	}
	return result, nil
}
