package sql

// Expression is the common interface implemented by every node of the
// expression tree (§3.4: Literal, ColumnRef, UnaryOp, BinaryOp,
// FunctionCall, Aggregate, Case, InList, Subquery, Cast, ArrowGet,
// Any/All).
//
// Eval is the vectorized evaluation contract of §4.3: eval(expr,
// morsel) -> Vector, with len(result) == morsel.RowCount for every
// non-aggregate expression (§8 property 8). Errors are returned, not
// panicked (§9 "Exception-driven control flow -> result types");
// panics are reserved for invariant violations such as a malformed
// plan reaching evaluation (a programmer error, not a data error).
type Expression interface {
	// Type is the static semantic type this expression produces.
	Type() Type

	// Nullable reports whether this expression can produce a null
	// result for some input row.
	Nullable() bool

	// Eval evaluates this expression against every row of m.
	Eval(ctx *Context, m *Morsel) (*Vector, error)

	// Children returns the immediate sub-expressions.
	Children() []Expression

	// WithChildren returns a copy of this expression with its
	// children replaced by the given list, erroring if the count does
	// not match.
	WithChildren(children ...Expression) (Expression, error)

	// String renders a single-line description, used for EXPLAIN and
	// for expression-tree hashing inputs (§3.4 "hashable by
	// structure").
	String() string
}

// Aggregation is implemented by expressions that additionally support
// grouped, incremental evaluation (§4.6): NewBuffer allocates
// per-group accumulator state, the buffer's Update folds one input
// row (routed to its group by the caller) into that state, and its
// Eval converts the accumulator to its scalar output value.
type Aggregation interface {
	Expression

	// NewBuffer allocates a fresh per-group accumulator.
	NewBuffer() AggregationBuffer
}

// AggregationBuffer is one group's running accumulator state for an
// Aggregation.
type AggregationBuffer interface {
	// Update folds a single input row (given as a slice of the
	// argument vectors' values for that row, already pulled out of
	// their vectors by the caller) into the accumulator.
	Update(ctx *Context, row []any) error

	// Eval produces the finalized scalar value for this group.
	Eval(ctx *Context) (any, error)
}
