package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
)

// cteBuffer materializes a compiled CTE subplan's morsels on first
// demand and caches them, so every CTERef compiled against the same
// CommonTableExpression replays the same sequence instead of
// re-running the subplan (§4.1 "multiple references share a single
// subplan node").
type cteBuffer struct {
	source  Operator
	morsels []*sql.Morsel
	done    bool
	closed  bool
}

// get returns morsel index i, pulling further morsels from source as
// needed. Returns io.EOF once the source is exhausted and i is past
// the end.
func (b *cteBuffer) get(ctx *sql.Context, i int) (*sql.Morsel, error) {
	for i >= len(b.morsels) {
		if b.done {
			return nil, io.EOF
		}
		m, err := b.source.Next(ctx)
		if err == io.EOF {
			b.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		b.morsels = append(b.morsels, m)
	}
	return b.morsels[i], nil
}

func (b *cteBuffer) close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.source.Close()
}

// cteCursorOperator is one reference site's independent read position
// over a shared cteBuffer.
type cteCursorOperator struct {
	baseOperator
	buf *cteBuffer
	idx int
}

func (c *cteCursorOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	m, err := c.buf.get(ctx, c.idx)
	if err != nil {
		return nil, err
	}
	c.idx++
	c.recordRows(ctx, m)
	return m, nil
}

// Close is a no-op per cursor: other cursors may still be reading
// from the shared buffer, so no cursor closes it or its source.
func (c *cteCursorOperator) Close() error { return nil }

func (b *Builder) compileCTE(n *plan.CommonTableExpression) (Operator, error) {
	buf, err := b.bufferFor(n)
	if err != nil {
		return nil, err
	}
	return &cteCursorOperator{baseOperator: baseOperator{name: "CommonTableExpression(" + n.Name + ")"}, buf: buf}, nil
}

func (b *Builder) compileCTERef(n *plan.CTERef) (Operator, error) {
	buf, err := b.bufferFor(n.CTE)
	if err != nil {
		return nil, err
	}
	return &cteCursorOperator{baseOperator: baseOperator{name: "CTERef(" + n.CTE.Name + ")"}, buf: buf}, nil
}

func (b *Builder) bufferFor(cte *plan.CommonTableExpression) (*cteBuffer, error) {
	if buf, ok := b.ctes[cte.ID()]; ok {
		return buf, nil
	}
	source, err := b.Compile(cte.Subplan)
	if err != nil {
		return nil, err
	}
	buf := &cteBuffer{source: source}
	b.ctes[cte.ID()] = buf
	return buf, nil
}
