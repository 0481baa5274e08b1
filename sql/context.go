package sql

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Context is threaded through planning, optimization and execution. It
// carries the query id, a logger, the shared cancellation token
// consulted at every Next() (§4.4, §5), and the per-query statistics
// accumulator (§6.3).
//
// Unlike the teacher's sql.Context (which also carries the current
// session/user), this Context has no session state: authentication
// and session variables are out of scope (§1).
type Context struct {
	context.Context

	QueryID string

	logger *logrus.Entry

	cancelled atomic.Bool
	deadline  time.Time

	stats *QueryStats
}

// NewContext builds a Context rooted in the standard library context
// and an empty QueryStats.
func NewContext(parent context.Context) *Context {
	if parent == nil {
		parent = context.Background()
	}
	return &Context{
		Context: parent,
		QueryID: uuid.NewString(),
		logger:  logrus.NewEntry(logrus.StandardLogger()),
		stats:   newQueryStats(),
	}
}

// NewEmptyContext is a convenience constructor mirroring the teacher's
// sql.NewEmptyContext, used pervasively by tests.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// Logger returns the per-query structured logger, tagged with the
// query id so optimizer warnings and connector errors can be
// correlated across a run.
func (c *Context) Logger() *logrus.Entry {
	return c.logger.WithField("query_id", c.QueryID)
}

// SetLogger overrides the base logger entry (e.g. to attach
// additional fields from a caller's request context).
func (c *Context) SetLogger(entry *logrus.Entry) {
	c.logger = entry
}

// Cancel flips the shared cancellation token; every operator's Next()
// checks IsCancelled at its top (§4.4).
func (c *Context) Cancel() {
	c.cancelled.Store(true)
}

// IsCancelled reports whether Cancel has been called, the parent
// context.Context has been cancelled or has passed its own deadline,
// or the configured deadline (if any) has passed — timeouts are
// implemented purely as a deadline-triggered cancellation (§4.4
// "Timeouts are implemented by the caller setting the cancellation
// token after a deadline").
func (c *Context) IsCancelled() bool {
	if c.cancelled.Load() {
		return true
	}
	if c.Context != nil && c.Context.Err() != nil {
		return true
	}
	if !c.deadline.IsZero() && time.Now().After(c.deadline) {
		return true
	}
	return false
}

// WithTimeout arranges for IsCancelled to report true once d has
// elapsed.
func (c *Context) WithTimeout(d time.Duration) {
	c.deadline = time.Now().Add(d)
}

// Stats returns the mutable per-query statistics accumulator.
func (c *Context) Stats() *QueryStats {
	return c.stats
}
