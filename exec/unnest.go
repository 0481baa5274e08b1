package exec

import (
	"github.com/mabel-dev/opteryx/sql"
)

// UnnestOperator expands an array-valued column into one row per
// element, repeating every sibling column's value across that row's
// expansion (§4.7). A NULL or empty array produces zero output rows
// for that source row. When filterValues is non-empty (the `IN
// (value_set)` form), only elements equal to one of filterValues
// produce a row.
type UnnestOperator struct {
	baseOperator
	targetIdx    int // column index of the array being expanded, in the child's schema
	outputSchema sql.Schema
	filterRaw    []any
	child        Operator

	pending *sql.Morsel // source morsel currently being expanded
	srcRow  int         // next source row to expand within pending
}

// NewUnnestOperator builds an UnnestOperator. filterLiterals holds the
// evaluated IN (value_set) literal values, or nil for no filter.
func NewUnnestOperator(targetIdx int, outputSchema sql.Schema, filterLiterals []any, child Operator) *UnnestOperator {
	return &UnnestOperator{
		baseOperator: baseOperator{name: "UnnestFunction"},
		targetIdx:    targetIdx,
		outputSchema: outputSchema,
		filterRaw:    filterLiterals,
		child:        child,
	}
}

func (u *UnnestOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	for {
		if u.pending == nil {
			m, err := u.child.Next(ctx)
			if err != nil {
				return nil, err
			}
			u.pending = m
			u.srcRow = 0
		}
		out := u.expandOne(u.pending)
		u.srcRow++
		if u.srcRow >= u.pending.RowCount {
			u.pending = nil
		}
		if out == nil || out.RowCount == 0 {
			continue
		}
		u.recordRows(ctx, out)
		return out, nil
	}
}

// expandOne produces the output rows contributed by source row
// u.srcRow of m, or nil if that row contributes none (NULL/empty
// array, or every element filtered out).
func (u *UnnestOperator) expandOne(m *sql.Morsel) *sql.Morsel {
	arrayCol := m.Columns[u.targetIdx]
	if !arrayCol.IsValid(u.srcRow) {
		return nil
	}
	elems := arrayCol.ListData[arrayCol.SliceOffset+u.srcRow]
	if elems == nil || elems.Length == 0 {
		return nil
	}
	keep := make([]int, 0, elems.Length)
	for i := 0; i < elems.Length; i++ {
		if u.passesFilter(elems, i) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil
	}
	cols := make([]*sql.Vector, len(m.Columns))
	for c, v := range m.Columns {
		if c == u.targetIdx {
			cols[c] = gatherVector(elems, keep)
			continue
		}
		cols[c] = repeatScalar(v, u.srcRow, len(keep))
	}
	return &sql.Morsel{Schema: u.outputSchema, Columns: cols, RowCount: len(keep)}
}

// passesFilter reports whether element i of elems matches the IN
// (value_set) filter, or true unconditionally when no filter is set.
func (u *UnnestOperator) passesFilter(elems *sql.Vector, i int) bool {
	if len(u.filterRaw) == 0 {
		return true
	}
	if !elems.IsValid(i) {
		return false
	}
	for _, want := range u.filterRaw {
		if elementEquals(elems, i, want) {
			return true
		}
	}
	return false
}

func elementEquals(v *sql.Vector, row int, want any) bool {
	switch v.Type {
	case sql.String:
		s, ok := want.(string)
		return ok && string(v.StringAt(row)) == s
	case sql.Int64, sql.Timestamp64:
		n, ok := want.(int64)
		return ok && v.Int64Data[v.SliceOffset+row] == n
	case sql.Int32, sql.Date32:
		n, ok := want.(int32)
		return ok && v.Int32Data[v.SliceOffset+row] == n
	case sql.Float64:
		f, ok := want.(float64)
		return ok && v.Float64Data[v.SliceOffset+row] == f
	case sql.Bool:
		b, ok := want.(bool)
		return ok && v.BoolData[v.SliceOffset+row] == b
	default:
		return false
	}
}

// repeatScalar builds a length-n vector repeating v's value at row
// srow n times, used to broadcast sibling columns across an unnested
// row's expansion.
func repeatScalar(v *sql.Vector, srow, n int) *sql.Vector {
	out := sql.NewVector(v.Type, n)
	out.EnsureValidity()
	for i := 0; i < n; i++ {
		if !v.IsValid(srow) {
			out.SetNull(i)
			continue
		}
		copyScalar(out, i, v, srow)
	}
	return out
}

func (u *UnnestOperator) Close() error { return u.child.Close() }
