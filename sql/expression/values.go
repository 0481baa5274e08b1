package expression

import (
	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
)

// ValueAt extracts row i of v as a boxed Go value, or nil if the row
// is null. This is the row-wise escape hatch the vectorized kernels
// fall back to for scalar operations (CASE branches, aggregation
// Update, struct/list access); hot arithmetic/comparison paths index
// the typed slices directly instead.
func ValueAt(v *sql.Vector, i int) any {
	if !v.IsValid(i) {
		return nil
	}
	switch v.Type {
	case sql.Int8:
		return v.Int8Data[i]
	case sql.Int16:
		return v.Int16Data[i]
	case sql.Int32, sql.Date32:
		return v.Int32Data[i]
	case sql.Int64, sql.Timestamp64:
		return v.Int64Data[i]
	case sql.Float32:
		return v.Float32Data[i]
	case sql.Float64:
		return v.Float64Data[i]
	case sql.Bool:
		return v.BoolData[i]
	case sql.String:
		return string(v.StringAt(i))
	case sql.Decimal:
		return v.DecimalData[i]
	case sql.Interval:
		return v.IntervalData[i]
	case sql.Array, sql.Struct:
		return v.ListData[i]
	default:
		return v.ObjectData[i]
	}
}

// setScalar writes value into row i of v, dispatching on v.Type. It
// is the inverse of ValueAt, used to materialize a broadcast literal
// or a computed scalar back into a column.
func setScalar(v *sql.Vector, i int, value any) error {
	switch v.Type {
	case sql.Int8:
		v.Int8Data[i] = toInt8(value)
	case sql.Int16:
		v.Int16Data[i] = toInt16(value)
	case sql.Int32, sql.Date32:
		v.Int32Data[i] = toInt32(value)
	case sql.Int64, sql.Timestamp64:
		v.Int64Data[i] = toInt64(value)
	case sql.Float32:
		v.Float32Data[i] = toFloat32(value)
	case sql.Float64:
		v.Float64Data[i] = toFloat64(value)
	case sql.Bool:
		v.BoolData[i] = toBool(value)
	case sql.String:
		appendString(v, i, toStringBytes(value))
	case sql.Decimal:
		v.DecimalData[i] = toDecimal(value)
	case sql.Interval:
		v.IntervalData[i] = value.(sql.Interval)
	case sql.Array, sql.Struct:
		v.ListData[i], _ = value.(*sql.Vector)
	default:
		v.ObjectData[i] = value
	}
	return nil
}

// appendString writes bytes into a String vector's data buffer at
// logical row i, growing Offsets/StringData incrementally. Callers
// must set rows in increasing order (offsets are monotonic, §3.2).
func appendString(v *sql.Vector, i int, b []byte) {
	start := int32(len(v.StringData))
	v.StringData = append(v.StringData, b...)
	v.Offsets[i] = start
	v.Offsets[i+1] = start + int32(len(b))
}

func toInt8(v any) int8 {
	switch t := v.(type) {
	case int8:
		return t
	case int16:
		return int8(t)
	case int32:
		return int8(t)
	case int64:
		return int8(t)
	case int:
		return int8(t)
	case float64:
		return int8(t)
	}
	return 0
}

func toInt16(v any) int16 {
	switch t := v.(type) {
	case int16:
		return t
	case int8:
		return int16(t)
	case int32:
		return int16(t)
	case int64:
		return int16(t)
	case int:
		return int16(t)
	case float64:
		return int16(t)
	}
	return 0
}

func toInt32(v any) int32 {
	switch t := v.(type) {
	case int32:
		return t
	case int8:
		return int32(t)
	case int16:
		return int32(t)
	case int64:
		return int32(t)
	case int:
		return int32(t)
	case float64:
		return int32(t)
	}
	return 0
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float32:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}

func toFloat32(v any) float32 {
	switch t := v.(type) {
	case float32:
		return t
	case float64:
		return float32(t)
	case int64:
		return float32(t)
	case int32:
		return float32(t)
	case int:
		return float32(t)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int64:
		return float64(t)
	case int32:
		return float64(t)
	case int:
		return float64(t)
	case decimal.Decimal:
		f, _ := t.Float64()
		return f
	}
	return 0
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func toStringBytes(v any) []byte {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	default:
		return []byte(stringifyAny(v))
	}
}

func toDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case float64:
		return decimal.NewFromFloat(t)
	case int64:
		return decimal.NewFromInt(t)
	case string:
		d, _ := decimal.NewFromString(t)
		return d
	}
	return decimal.Zero
}

func stringifyAny(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}
	return ""
}
