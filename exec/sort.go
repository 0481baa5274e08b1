package exec

import (
	"io"
	"sort"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
)

// sortOutputBatchSize bounds the size of morsels SortOperator re-emits
// after accumulating and sorting, keeping downstream operators working
// over the same vectorized batch granularity as everywhere else in the
// executor.
const sortOutputBatchSize = 4096

// SortOperator accumulates every input morsel, then sorts by its
// SortFields and re-emits in fixed-size batches. Sorting is stable, so
// ties break in the original (build-insertion) order, matching the
// tie-break rule used by the join and group-by operators (§4.7).
type SortOperator struct {
	baseOperator
	fields []plan.SortField
	child  Operator

	materialized *sql.Morsel // all input rows concatenated, built lazily on first Next
	rowOrder     []int       // materialized's rows in sorted order
	emitted      int
}

// NewSortOperator builds a SortOperator.
func NewSortOperator(fields []plan.SortField, child Operator) *SortOperator {
	return &SortOperator{baseOperator: baseOperator{name: "Order"}, fields: fields, child: child}
}

func (s *SortOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if s.materialized == nil {
		if err := s.materialize(ctx); err != nil {
			return nil, err
		}
	}
	if s.emitted >= len(s.rowOrder) {
		return nil, io.EOF
	}
	end := s.emitted + sortOutputBatchSize
	if end > len(s.rowOrder) {
		end = len(s.rowOrder)
	}
	out := selectRows(s.materialized, s.rowOrder[s.emitted:end])
	s.emitted = end
	s.recordRows(ctx, out)
	return out, nil
}

func (s *SortOperator) materialize(ctx *sql.Context) error {
	var all *sql.Morsel
	for {
		m, err := s.child.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if all == nil {
			all = m
			continue
		}
		all = concatRows(all, m)
	}
	if all == nil {
		all = &sql.Morsel{RowCount: 0}
	}
	s.materialized = all
	keyCols := make([]*sql.Vector, len(s.fields))
	for i, f := range s.fields {
		v, err := f.Expr.Eval(ctx, all)
		if err != nil {
			return err
		}
		keyCols[i] = v
	}
	order := make([]int, all.RowCount)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := order[a], order[b]
		for i, f := range s.fields {
			c := compareAt(keyCols[i], ra, keyCols[i], rb, f.NullsFirst)
			if f.Descending && keyCols[i].IsValid(ra) && keyCols[i].IsValid(rb) {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	s.rowOrder = order
	return nil
}

func (s *SortOperator) Close() error { return s.child.Close() }

// compareAt compares v[i] to w[j], returning -1/0/1. NULLs sort first
// or last per nullsFirst, independent of Descending (applied by the
// caller after this).
func compareAt(v *sql.Vector, i int, w *sql.Vector, j int, nullsFirst bool) int {
	vNull, wNull := !v.IsValid(i), !w.IsValid(j)
	if vNull && wNull {
		return 0
	}
	if vNull {
		if nullsFirst {
			return -1
		}
		return 1
	}
	if wNull {
		if nullsFirst {
			return 1
		}
		return -1
	}
	switch v.Type {
	case sql.Int8:
		return cmpInt64(int64(v.Int8Data[v.SliceOffset+i]), int64(w.Int8Data[w.SliceOffset+j]))
	case sql.Int16:
		return cmpInt64(int64(v.Int16Data[v.SliceOffset+i]), int64(w.Int16Data[w.SliceOffset+j]))
	case sql.Int32, sql.Date32:
		return cmpInt64(int64(v.Int32Data[v.SliceOffset+i]), int64(w.Int32Data[w.SliceOffset+j]))
	case sql.Int64, sql.Timestamp64:
		return cmpInt64(v.Int64Data[v.SliceOffset+i], w.Int64Data[w.SliceOffset+j])
	case sql.Float32:
		return cmpFloat64(float64(v.Float32Data[v.SliceOffset+i]), float64(w.Float32Data[w.SliceOffset+j]))
	case sql.Float64:
		return cmpFloat64(v.Float64Data[v.SliceOffset+i], w.Float64Data[w.SliceOffset+j])
	case sql.Bool:
		a, b := v.BoolData[v.SliceOffset+i], w.BoolData[w.SliceOffset+j]
		if a == b {
			return 0
		}
		if !a {
			return -1
		}
		return 1
	case sql.Decimal:
		return v.DecimalData[v.SliceOffset+i].Cmp(w.DecimalData[w.SliceOffset+j])
	case sql.String:
		a, b := v.StringAt(i), w.StringAt(j)
		switch {
		case string(a) < string(b):
			return -1
		case string(a) > string(b):
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
