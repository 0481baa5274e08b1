package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
)

// LimitOperator forwards up to Count rows and then signals EOF,
// streaming (§4.7 "streaming; counts rows ... then forwards up to
// limit rows and signals EOF").
type LimitOperator struct {
	baseOperator
	count     int64
	remaining int64
	child     Operator
	done      bool
}

// NewLimitOperator builds a LimitOperator.
func NewLimitOperator(count int64, child Operator) *LimitOperator {
	return &LimitOperator{baseOperator: baseOperator{name: "Limit"}, count: count, remaining: count, child: child}
}

func (l *LimitOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if l.done || l.remaining <= 0 {
		return nil, io.EOF
	}
	m, err := l.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	if int64(m.RowCount) <= l.remaining {
		l.remaining -= int64(m.RowCount)
		l.recordRows(ctx, m)
		return m, nil
	}
	out := m.Slice(0, int(l.remaining))
	l.remaining = 0
	l.done = true
	l.recordRows(ctx, out)
	return out, nil
}

func (l *LimitOperator) Close() error { return l.child.Close() }

// OffsetOperator skips a number of leading rows, then forwards the
// rest unchanged (§4.7).
type OffsetOperator struct {
	baseOperator
	skip  int64
	child Operator
}

// NewOffsetOperator builds an OffsetOperator.
func NewOffsetOperator(skip int64, child Operator) *OffsetOperator {
	return &OffsetOperator{baseOperator: baseOperator{name: "Offset"}, skip: skip, child: child}
}

func (o *OffsetOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	for {
		m, err := o.child.Next(ctx)
		if err != nil {
			return nil, err
		}
		if o.skip == 0 {
			o.recordRows(ctx, m)
			return m, nil
		}
		if int64(m.RowCount) <= o.skip {
			o.skip -= int64(m.RowCount)
			continue
		}
		out := m.Slice(int(o.skip), m.RowCount-int(o.skip))
		o.skip = 0
		o.recordRows(ctx, out)
		return out, nil
	}
}

func (o *OffsetOperator) Close() error { return o.child.Close() }
