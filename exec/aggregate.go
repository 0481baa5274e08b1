package exec

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/hash"
)

// AggregateOperator performs two-phase group-by aggregation (§4.6):
// phase one materializes every input row's group key hash and feeds
// it into a per-group accumulator for each aggregate expression;
// phase two (triggered on the child's first EOF) finalizes every
// group's accumulators and emits one output row per group. An empty
// groupBy aggregates the whole input into a single group.
type AggregateOperator struct {
	baseOperator
	groupBy    []sql.Expression
	aggregates []*expression.Aggregate
	schema     sql.Schema
	child      Operator

	keyRows  [][]any // one row of group-key values per group, in first-seen order
	buffers  [][]sql.AggregationBuffer
	groupIdx map[uint64][]int // hash -> group ordinal(s), resolved by full key comparison

	order     []uint64 // group hashes in first-seen order, parallel to keyRows/buffers
	finalized bool
	emitted   int
}

// NewAggregateOperator builds an AggregateOperator.
func NewAggregateOperator(groupBy []sql.Expression, aggregates []*expression.Aggregate, schema sql.Schema, child Operator) *AggregateOperator {
	return &AggregateOperator{
		baseOperator: baseOperator{name: "AggregateAndGroup"},
		groupBy:      groupBy,
		aggregates:   aggregates,
		schema:       schema,
		child:        child,
		groupIdx:     make(map[uint64][]int),
	}
}

func (a *AggregateOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if !a.finalized {
		if err := a.consumeAll(ctx); err != nil {
			return nil, err
		}
		if len(a.groupBy) == 0 && len(a.order) == 0 {
			// No GROUP BY over empty input still yields the single
			// global group (COUNT 0, other aggregates NULL).
			a.groupOrdinal(0, []any{})
		}
		a.finalized = true
	}
	if a.emitted >= len(a.order) {
		return nil, io.EOF
	}
	out, err := a.emitBatch(ctx)
	if err != nil {
		return nil, err
	}
	a.recordRows(ctx, out)
	return out, nil
}

func (a *AggregateOperator) consumeAll(ctx *sql.Context) error {
	for {
		m, err := a.child.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := a.consumeMorsel(ctx, m); err != nil {
			return err
		}
	}
}

func (a *AggregateOperator) consumeMorsel(ctx *sql.Context, m *sql.Morsel) error {
	keyNames := make([]string, len(a.groupBy))
	keyVecs := make([]*sql.Vector, len(a.groupBy))
	for i, g := range a.groupBy {
		v, err := g.Eval(ctx, m)
		if err != nil {
			return err
		}
		keyVecs[i] = v
		keyNames[i] = a.schema[i].Name
	}
	argVecs := make([]*sql.Vector, len(a.aggregates))
	for i, agg := range a.aggregates {
		if agg.Arg == nil {
			continue
		}
		v, err := agg.Arg.Eval(ctx, m)
		if err != nil {
			return err
		}
		argVecs[i] = v
	}

	var rowHashes []uint64
	if len(a.groupBy) > 0 {
		h, err := hash.RowHashes(m, keyNames)
		if err != nil {
			return err
		}
		rowHashes = h
	} else {
		rowHashes = make([]uint64, m.RowCount) // all zero: single global group
	}

	for row := 0; row < m.RowCount; row++ {
		key := make([]any, len(keyVecs))
		for i, v := range keyVecs {
			key[i] = expression.ValueAt(v, row)
		}
		gi := a.groupOrdinal(rowHashes[row], key)
		for i, agg := range a.aggregates {
			argRow := []any{true}
			if agg.Arg != nil {
				argRow = []any{expression.ValueAt(argVecs[i], row)}
			}
			if err := a.buffers[gi][i].Update(ctx, argRow); err != nil {
				return err
			}
		}
	}
	return nil
}

// groupOrdinal finds or creates the ordinal for a group key, resolving
// hash collisions by full key equality the same way Distinct and the
// join engine do (§4.5, §4.6, §4.7).
func (a *AggregateOperator) groupOrdinal(h uint64, key []any) int {
	for _, gi := range a.groupIdx[h] {
		if keysEqual(a.keyRows[gi], key) {
			return gi
		}
	}
	gi := len(a.keyRows)
	a.keyRows = append(a.keyRows, key)
	bufs := make([]sql.AggregationBuffer, len(a.aggregates))
	for i, agg := range a.aggregates {
		bufs[i] = agg.NewBuffer()
	}
	a.buffers = append(a.buffers, bufs)
	a.groupIdx[h] = append(a.groupIdx[h], gi)
	a.order = append(a.order, h)
	return gi
}

// keysEqual compares group-key tuples value by value. decimal.Decimal
// wraps a *big.Int, so == would compare pointer identity rather than
// numeric value; every other boxed scalar type ValueAt produces is
// safely comparable with ==.
func keysEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		da, aIsDec := a[i].(decimal.Decimal)
		db, bIsDec := b[i].(decimal.Decimal)
		if aIsDec || bIsDec {
			if !aIsDec || !bIsDec || !da.Equal(db) {
				return false
			}
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// emitBatch finalizes up to sortOutputBatchSize not-yet-emitted groups
// into one output morsel.
func (a *AggregateOperator) emitBatch(ctx *sql.Context) (*sql.Morsel, error) {
	end := a.emitted + sortOutputBatchSize
	if end > len(a.order) {
		end = len(a.order)
	}
	n := end - a.emitted
	cols := make([]*sql.Vector, len(a.schema))
	for c := range a.schema {
		cols[c] = sql.NewVector(a.schema[c].Type, n)
		cols[c].EnsureValidity()
	}
	for r := 0; r < n; r++ {
		gi := a.emitted + r
		for i := range a.groupBy {
			if a.keyRows[gi][i] == nil {
				cols[i].SetNull(r)
				continue
			}
			if err := setScalarValue(cols[i], r, a.keyRows[gi][i]); err != nil {
				return nil, err
			}
		}
		for i := range a.aggregates {
			val, err := a.buffers[gi][i].Eval(ctx)
			if err != nil {
				return nil, err
			}
			if val == nil {
				cols[len(a.groupBy)+i].SetNull(r)
				continue
			}
			if err := setScalarValue(cols[len(a.groupBy)+i], r, val); err != nil {
				return nil, err
			}
		}
	}
	a.emitted = end
	return &sql.Morsel{Schema: a.schema, Columns: cols, RowCount: n}, nil
}

func (a *AggregateOperator) Close() error { return a.child.Close() }
