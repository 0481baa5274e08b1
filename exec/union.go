package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
)

// UnionOperator fans the left child in to exhaustion, then the right,
// a sequential fan-in (§4.4 "data-parallel scan fan-out ... merged at
// Union-like fan-in"; UNION ALL semantics, no deduplication — callers
// wrap with DistinctOperator for plain UNION).
type UnionOperator struct {
	baseOperator
	left, right Operator
	leftDone    bool
}

// NewUnionOperator builds a UnionOperator.
func NewUnionOperator(left, right Operator) *UnionOperator {
	return &UnionOperator{baseOperator: baseOperator{name: "Union"}, left: left, right: right}
}

func (u *UnionOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if !u.leftDone {
		m, err := u.left.Next(ctx)
		if err == nil {
			u.recordRows(ctx, m)
			return m, nil
		}
		if err != io.EOF {
			return nil, err
		}
		u.leftDone = true
	}
	m, err := u.right.Next(ctx)
	if err != nil {
		return nil, err
	}
	u.recordRows(ctx, m)
	return m, nil
}

func (u *UnionOperator) Close() error {
	if err := u.left.Close(); err != nil {
		u.right.Close()
		return err
	}
	return u.right.Close()
}
