package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/hash"
)

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

func toDecimal(v any) decimal.Decimal {
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

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}

// compare orders two non-null scalar values of the given static type,
// the same dispatch the expression package's Comparison kernel
// performs, duplicated narrowly here to keep this package free of an
// import cycle on sql/expression.
func compare(t sql.Type, a, b any) int {
	switch t {
	case sql.String:
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	case sql.Decimal:
		return toDecimal(a).Cmp(toDecimal(b))
	case sql.Float32, sql.Float64:
		af, bf := toFloat64(a), toFloat64(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	default:
		ai, bi := toInt64(a), toInt64(b)
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
}

// hashScalar hashes a single boxed value for COUNT(DISTINCT ...)'s
// per-group FlatHashSet (§4.6), reusing the column-hash kernels of
// sql/hash by wrapping the value in a length-1 vector.
func hashScalar(v any) uint64 {
	vec := sql.NewVector(inferType(v), 1)
	switch t := v.(type) {
	case int64:
		vec.Int64Data[0] = t
	case int32:
		vec.Int32Data[0] = t
	case float64:
		vec.Float64Data[0] = t
	case string:
		vec.Offsets = []int32{0, int32(len(t))}
		vec.StringData = []byte(t)
	case bool:
		vec.BoolData[0] = t
	case decimal.Decimal:
		vec.DecimalData[0] = t
	default:
		vec.ObjectData[0] = v
	}
	return hash.ColumnHash(vec)[0]
}

func inferType(v any) sql.Type {
	switch v.(type) {
	case int64, int32, int:
		return sql.Int64
	case float64, float32:
		return sql.Float64
	case string:
		return sql.String
	case bool:
		return sql.Bool
	case decimal.Decimal:
		return sql.Decimal
	default:
		return sql.NonNative
	}
}
