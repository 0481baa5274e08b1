package exec

import (
	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
)

// setScalarValue writes a boxed Go value (as produced by
// expression.ValueAt, or an AggregationBuffer.Eval result) into row i
// of dst, the exec-package counterpart of expression's unexported
// setScalar used when assembling Aggregate and group-key output
// columns directly from []any rather than from another Vector.
func setScalarValue(dst *sql.Vector, i int, value any) error {
	switch dst.Type {
	case sql.Int8:
		dst.Int8Data[i] = value.(int8)
	case sql.Int16:
		dst.Int16Data[i] = value.(int16)
	case sql.Int32, sql.Date32:
		dst.Int32Data[i] = value.(int32)
	case sql.Int64, sql.Timestamp64:
		dst.Int64Data[i] = toInt64Value(value)
	case sql.Float32:
		dst.Float32Data[i] = value.(float32)
	case sql.Float64:
		dst.Float64Data[i] = toFloat64Value(value)
	case sql.Bool:
		dst.BoolData[i] = value.(bool)
	case sql.String:
		b := toStringBytesValue(value)
		start := int32(len(dst.StringData))
		dst.StringData = append(dst.StringData, b...)
		dst.Offsets[i] = start
		dst.Offsets[i+1] = start + int32(len(b))
	case sql.Decimal:
		dst.DecimalData[i] = toDecimalValue(value)
	case sql.Interval:
		dst.IntervalData[i] = value.(sql.Interval)
	default:
		dst.ObjectData[i] = value
	}
	return nil
}

func toInt64Value(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	}
	return 0
}

func toFloat64Value(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}

func toStringBytesValue(v any) []byte {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	}
	return nil
}

func toDecimalValue(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case float64:
		return decimal.NewFromFloat(t)
	case int64:
		return decimal.NewFromInt(t)
	}
	return decimal.Zero
}

// concatRows stacks b's rows after a's, column by column, producing a
// single morsel of combined length. Used by operators (Sort, hash join
// builds) that must fully materialize a child before producing output,
// as opposed to sql.Concat which concatenates schemas side by side.
func concatRows(a, b *sql.Morsel) *sql.Morsel {
	cols := make([]*sql.Vector, len(a.Columns))
	for c := range a.Columns {
		av, bv := a.Columns[c], b.Columns[c]
		out := sql.NewVector(av.Type, av.Length+bv.Length)
		out.EnsureValidity()
		row := 0
		for i := 0; i < av.Length; i, row = i+1, row+1 {
			if !av.IsValid(i) {
				out.SetNull(row)
				continue
			}
			copyScalar(out, row, av, i)
		}
		for i := 0; i < bv.Length; i, row = i+1, row+1 {
			if !bv.IsValid(i) {
				out.SetNull(row)
				continue
			}
			copyScalar(out, row, bv, i)
		}
		cols[c] = out
	}
	return &sql.Morsel{Schema: a.Schema, Columns: cols, RowCount: a.RowCount + b.RowCount}
}

// copyScalar copies the value at src's logical row srow into dst's
// logical row drow. dst must be a freshly allocated vector (via
// sql.NewVector) being filled in strictly increasing drow order — the
// String/Array/Struct cases below append to the data buffer and rely
// on that ordering to keep Offsets monotonically non-decreasing
// (§3.2), the same invariant sql/expression's setScalar enforces on
// the expression-evaluation side.
func copyScalar(dst *sql.Vector, drow int, src *sql.Vector, srow int) {
	switch dst.Type {
	case sql.Int8:
		dst.Int8Data[drow] = src.Int8Data[src.SliceOffset+srow]
	case sql.Int16:
		dst.Int16Data[drow] = src.Int16Data[src.SliceOffset+srow]
	case sql.Int32, sql.Date32:
		dst.Int32Data[drow] = src.Int32Data[src.SliceOffset+srow]
	case sql.Int64, sql.Timestamp64:
		dst.Int64Data[drow] = src.Int64Data[src.SliceOffset+srow]
	case sql.Float32:
		dst.Float32Data[drow] = src.Float32Data[src.SliceOffset+srow]
	case sql.Float64:
		dst.Float64Data[drow] = src.Float64Data[src.SliceOffset+srow]
	case sql.Bool:
		dst.BoolData[drow] = src.BoolData[src.SliceOffset+srow]
	case sql.Decimal:
		dst.DecimalData[drow] = src.DecimalData[src.SliceOffset+srow]
	case sql.Interval:
		dst.IntervalData[drow] = src.IntervalData[src.SliceOffset+srow]
	case sql.String:
		b := src.StringAt(srow)
		dst.StringData = append(dst.StringData, b...)
		dst.Offsets[drow+1] = dst.Offsets[drow] + int32(len(b))
	case sql.Array, sql.Struct:
		dst.ListData[drow] = src.ListData[src.SliceOffset+srow]
		dst.Offsets[drow+1] = dst.Offsets[drow] + 1
	default:
		dst.ObjectData[drow] = src.ObjectData[src.SliceOffset+srow]
	}
}
