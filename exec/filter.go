package exec

import (
	"github.com/mabel-dev/opteryx/sql"
)

// FilterOperator evaluates a boolean predicate against each input
// morsel and forwards only the matching rows, compacting vectors so
// the output carries no gaps (§4.4).
type FilterOperator struct {
	baseOperator
	predicate sql.Expression
	child     Operator
}

// NewFilterOperator builds a FilterOperator.
func NewFilterOperator(predicate sql.Expression, child Operator) *FilterOperator {
	return &FilterOperator{baseOperator: baseOperator{name: "Filter"}, predicate: predicate, child: child}
}

func (f *FilterOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	for {
		m, err := f.child.Next(ctx)
		if err != nil {
			return nil, err
		}
		mask, err := f.predicate.Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		keep := make([]int, 0, m.RowCount)
		for i := 0; i < m.RowCount; i++ {
			if mask.IsValid(i) && mask.BoolData[i] {
				keep = append(keep, i)
			}
		}
		if len(keep) == 0 {
			continue
		}
		out := selectRows(m, keep)
		f.recordRows(ctx, out)
		return out, nil
	}
}

func (f *FilterOperator) Close() error { return f.child.Close() }

// selectRows builds a new morsel containing only the given row
// indices of m, used by Filter, Distinct (post-collision check), and
// Sort's batched re-emission.
func selectRows(m *sql.Morsel, rows []int) *sql.Morsel {
	cols := make([]*sql.Vector, len(m.Columns))
	for c, v := range m.Columns {
		cols[c] = gatherVector(v, rows)
	}
	return &sql.Morsel{Schema: m.Schema, Columns: cols, RowCount: len(rows)}
}

// gatherVector materialises a new vector containing v's values at the
// given row indices, in order (rows may repeat or be out of order,
// which Slice's contiguous-range semantics cannot express).
func gatherVector(v *sql.Vector, rows []int) *sql.Vector {
	out := sql.NewVector(v.Type, len(rows))
	out.EnsureValidity()
	for dst, src := range rows {
		if !v.IsValid(src) {
			out.SetNull(dst)
			continue
		}
		copyScalar(out, dst, v, src)
	}
	return out
}
