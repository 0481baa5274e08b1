// Package exec implements the physical, pull-based operator framework
// of §4.4: operators exchange columnar morsels through a Next()
// call, cooperative scheduling arises from a parent's Next() driving
// its children's, and a shared cancellation token is consulted at the
// top of every Next() (§5). Grounded on the teacher's sql/rowexec
// package shape (one file per physical operator, a builder.go
// compiling sql/plan nodes into the operator tree), generalized from
// row-at-a-time Row iteration to morsel-at-a-time Vector batches.
package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
)

// Operator is the physical pull interface every executor stage
// implements. Next returns io.EOF (not a sentinel error) once
// exhausted, matching Go's own iterator idiom; any other error aborts
// the query.
type Operator interface {
	// Next returns the next morsel, or io.EOF when the operator is
	// exhausted. Implementations must check ctx.IsCancelled() first
	// and return io.EOF without further work when set (§5
	// "Cancellation").
	Next(ctx *sql.Context) (*sql.Morsel, error)

	// Close releases any owned buffers (hash tables, sort runs,
	// t-digest state) ahead of garbage collection; it is always safe
	// to call more than once.
	Close() error
}

// checkCancelled is the one-line guard every operator's Next() opens
// with (§5).
func checkCancelled(ctx *sql.Context) error {
	if ctx.IsCancelled() {
		return io.EOF
	}
	return nil
}

// baseOperator carries the per-operator statistics every concrete
// operator embeds, grounded on the teacher's sql/stats Operator
// bookkeeping (§6.3 QueryStats.Operators).
type baseOperator struct {
	name string
}

func (b *baseOperator) recordRows(ctx *sql.Context, m *sql.Morsel) {
	if ctx.Stats() == nil || m == nil {
		return
	}
	ctx.Stats().RecordOperator(b.name, m.RowCount, m.RowCount, 0)
}
