package expression

import (
	"fmt"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression/aggregation"
)

// Aggregate is the expression-tree form of an aggregate function call
// (§3.4 Aggregate(fn, arg)), wiring the per-group accumulators of
// sql/expression/aggregation into the Expression/Aggregation
// interface pair the planner and executor share. Arg is nil only for
// COUNT(*).
type Aggregate struct {
	kind       aggregation.Kind
	Arg        sql.Expression
	outputType sql.Type
	distinct   bool
}

// NewAggregate builds an Aggregate expression. outputType is the
// static result type (e.g. Int64 for COUNT, the argument's own type
// for SUM/MIN/MAX, Float64 for AVG/STDDEV/VARIANCE/APPROX_MEDIAN).
func NewAggregate(kind aggregation.Kind, arg sql.Expression, outputType sql.Type) *Aggregate {
	return &Aggregate{kind: kind, Arg: arg, outputType: outputType}
}

func (a *Aggregate) Kind() aggregation.Kind { return a.kind }
func (a *Aggregate) Type() sql.Type         { return a.outputType }
func (a *Aggregate) Nullable() bool         { return true }

func (a *Aggregate) Children() []sql.Expression {
	if a.Arg == nil {
		return nil
	}
	return []sql.Expression{a.Arg}
}

func (a *Aggregate) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if a.Arg == nil {
		if len(children) != 0 {
			return nil, ErrChildCount.New("Aggregate", 0, len(children))
		}
		return a, nil
	}
	if len(children) != 1 {
		return nil, ErrChildCount.New("Aggregate", 1, len(children))
	}
	return &Aggregate{kind: a.kind, Arg: children[0], outputType: a.outputType}, nil
}

func (a *Aggregate) String() string {
	return fmt.Sprintf("Aggregate(%d)", a.kind)
}

// Eval is never called directly against a full morsel in normal
// operation — AggregateOperator drives groups through NewBuffer/Update
// instead — but is provided so Aggregate satisfies sql.Expression for
// tree-rewrite passes that don't distinguish aggregate nodes. It
// reports the whole morsel as a single group.
func (a *Aggregate) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	buf := a.NewBuffer()
	rows, err := a.argRows(ctx, m)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := buf.Update(ctx, row); err != nil {
			return nil, err
		}
	}
	val, err := buf.Eval(ctx)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(a.outputType, m.RowCount)
	out.EnsureValidity()
	for i := 0; i < m.RowCount; i++ {
		if val == nil {
			out.SetNull(i)
			continue
		}
		if err := setScalar(out, i, val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NewBuffer allocates a fresh per-group accumulator (sql.Aggregation).
func (a *Aggregate) NewBuffer() sql.AggregationBuffer {
	argType := sql.Unknown
	if a.Arg != nil {
		argType = a.Arg.Type()
	}
	return aggregation.NewBuffer(a.kind, argType)
}

// argRows evaluates Arg (or a sentinel non-nil value for COUNT(*))
// against m and returns one []any row per input row, the shape
// AggregationBuffer.Update expects.
func (a *Aggregate) argRows(ctx *sql.Context, m *sql.Morsel) ([][]any, error) {
	out := make([][]any, m.RowCount)
	if a.Arg == nil {
		for i := range out {
			out[i] = []any{true}
		}
		return out, nil
	}
	v, err := a.Arg.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = []any{ValueAt(v, i)}
	}
	return out, nil
}
