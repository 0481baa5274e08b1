package memtable

import (
	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
)

// buildMorsel materializes rows (row-major, one []any per row, column
// order matching schema) into a columnar Morsel. setScalarValue below
// is a package-local copy of sql/expression's unexported setScalar,
// duplicated rather than imported to avoid connector depending on the
// expression package (exec/vectorcopy.go does the same for the same
// reason).
func buildMorsel(schema sql.Schema, rows [][]any) (*sql.Morsel, error) {
	n := len(rows)
	cols := make([]*sql.Vector, len(schema))
	for c, col := range schema {
		cols[c] = sql.NewVector(col.Type, n)
		cols[c].EnsureValidity()
	}
	for r, row := range rows {
		for c, val := range row {
			if val == nil {
				cols[c].SetNull(r)
				continue
			}
			if err := setScalarValue(cols[c], r, val); err != nil {
				return nil, err
			}
		}
	}
	return &sql.Morsel{Schema: schema, Columns: cols, RowCount: n}, nil
}

func setScalarValue(v *sql.Vector, i int, value any) error {
	switch v.Type {
	case sql.Int64:
		v.Int64Data[i] = toInt64(value)
	case sql.Float64:
		v.Float64Data[i] = toFloat64(value)
	case sql.Bool:
		v.BoolData[i] = value.(bool)
	case sql.String:
		appendString(v, i, value.(string))
	case sql.Decimal:
		v.DecimalData[i] = toDecimal(value)
	default:
		return sql.ErrUnsupportedType.New(v.Type)
	}
	return nil
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case string:
		d, _ := decimal.NewFromString(n)
		return d
	case float64:
		return decimal.NewFromFloat(n)
	}
	return decimal.Zero
}

// appendString writes value as row i of v, requiring rows to be
// filled in increasing order (§3.2 monotonic Offsets).
func appendString(v *sql.Vector, i int, value string) {
	start := int32(len(v.StringData))
	v.StringData = append(v.StringData, value...)
	v.Offsets[i] = start
	v.Offsets[i+1] = start + int32(len(value))
}

// projectMorsel reorders/narrows m to exactly the named columns, in
// the order requested.
func projectMorsel(m *sql.Morsel, columns []string) *sql.Morsel {
	schema := make(sql.Schema, len(columns))
	cols := make([]*sql.Vector, len(columns))
	for i, name := range columns {
		idx := m.Schema.IndexOf(name)
		schema[i] = m.Schema[idx]
		cols[i] = m.Columns[idx]
	}
	return &sql.Morsel{Schema: schema, Columns: cols, RowCount: m.RowCount}
}

// applyPredicate evaluates predicate against m and keeps only the
// matching rows (the in-memory equivalent of exec.FilterOperator,
// duplicated here since this connector reports
// SupportsPredicatePushdown=true and must therefore apply the filter
// itself rather than rely on the executor's Filter operator, which
// the predicate-pushdown analyzer pass removes for pushdown-capable
// connectors).
func applyPredicate(ctx *sql.Context, predicate sql.Expression, m *sql.Morsel) (*sql.Morsel, error) {
	mask, err := predicate.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	keep := make([]int, 0, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		if mask.IsValid(i) && mask.BoolData[i] {
			keep = append(keep, i)
		}
	}
	cols := make([]*sql.Vector, len(m.Columns))
	for c, v := range m.Columns {
		out := sql.NewVector(v.Type, len(keep))
		out.EnsureValidity()
		for dst, src := range keep {
			if !v.IsValid(src) {
				out.SetNull(dst)
				continue
			}
			copyScalar(out, dst, v, src)
		}
		cols[c] = out
	}
	return &sql.Morsel{Schema: m.Schema, Columns: cols, RowCount: len(keep)}, nil
}

// copyScalar copies row src of src-vector v into row dst of a
// same-type destination vector, respecting the monotonic-Offsets
// invariant for variable-length types (duplicated from
// exec/vectorcopy.go for the same reason as setScalarValue above).
func copyScalar(dst *sql.Vector, d int, src *sql.Vector, s int) {
	switch dst.Type {
	case sql.Int64:
		dst.Int64Data[d] = src.Int64Data[s]
	case sql.Float64:
		dst.Float64Data[d] = src.Float64Data[s]
	case sql.Bool:
		dst.BoolData[d] = src.BoolData[s]
	case sql.String:
		appendString(dst, d, string(src.StringAt(s)))
	case sql.Decimal:
		dst.DecimalData[d] = src.DecimalData[s]
	}
}
