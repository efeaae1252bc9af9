package query

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finwell/finwell-mcp/internal/domain/ledger"
)

// Context is one session's carried-over conversation state. Each resolved
// turn overwrites it; there is no history beyond the previous turn's intent
// and filter.
type Context struct {
	Intent    Intent
	HasIntent bool
	Filter    ledger.FilterSpec
	LastQuery string
	Turns     int
	UpdatedAt time.Time
}

// remember overwrites the context with the turn that just resolved. Turns
// that fail (unknown category, invalid filter) never reach here, so a bad
// query cannot poison the follow-up state.
func (c *Context) remember(intent Intent, filter ledger.FilterSpec, text string) {
	c.Intent = intent
	c.HasIntent = true
	c.Filter = filter
	c.LastQuery = text
	c.Turns++
	c.UpdatedAt = time.Now()
}

// Sessions holds per-session conversation contexts. Contexts are isolated:
// one session's carried filters never leak into another's.
type Sessions struct {
	mu       sync.Mutex
	contexts map[string]*Context
}

// NewSessions creates an empty session registry
func NewSessions() *Sessions {
	return &Sessions{contexts: make(map[string]*Context)}
}

// Get returns the context for a session, creating it on first use
func (s *Sessions) Get(sessionID string) *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.contexts[sessionID]
	if !ok {
		ctx = &Context{}
		s.contexts[sessionID] = ctx
	}
	return ctx
}

// Reset discards a session's context
func (s *Sessions) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, sessionID)
}

// NewSessionID mints a fresh session identifier
func NewSessionID() string {
	return uuid.NewString()
}
