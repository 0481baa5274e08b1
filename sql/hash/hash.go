// Package hash implements the buffer-aware, null-respecting row
// hashing primitive used by the join engine (§4.5), the aggregation
// group table (§4.6) and Distinct (§4.7), plus the flat open-addressed
// containers (§3.5) those consumers build on.
//
// Hashing is grounded on xxHash3-64, via github.com/zeebo/xxh3 (the
// library the wider retrieval pack's vectorized columnar engine uses
// for the same purpose), mixed with the golden-ratio constant
// 0x9e3779b97f4a7c15 exactly as §4.5 specifies.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/mabel-dev/opteryx/sql"
)

// mixSeed is folded into every per-column hash before combining
// columns together, matching the SplitMix64-style mixer §4.5 calls
// for when folding element hashes of nested (list) columns.
const mixSeed uint64 = 0x9e3779b97f4a7c15

// nullSentinel is the fixed hash every join column contributes for a
// null value: the xxHash of a fixed "null" tag string. All NULLs share
// this hash; NULL != NULL in join semantics comes from the join's key
// comparison, which rejects NULL keys, not from the hash (§4.5 "NULL
// values map to a fixed sentinel hash... so that NULL != NULL in join
// semantics").
var nullSentinel = xxh3.HashString("\x00opteryx-null")

var (
	trueSentinel  = xxh3.HashString("\x01opteryx-bool-true")
	falseSentinel = xxh3.HashString("\x00opteryx-bool-false")
)

// mix combines an accumulator with a newly hashed column value the
// way SplitMix64 folds state, matching the "SplitMix64-like mixer"
// called for in §4.5.
func mix(acc, h uint64) uint64 {
	acc ^= h + mixSeed + (acc << 6) + (acc >> 2)
	return acc
}

// ColumnHash computes the per-row hash contribution of a single
// vector, for every row in [0, v.Length). NULL rows receive
// nullSentinel.
func ColumnHash(v *sql.Vector) []uint64 {
	out := make([]uint64, v.Length)
	switch v.Type {
	case sql.Int8:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return hashInt64(int64(v.Int8Data[i])) })
		}
	case sql.Int16:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return hashInt64(int64(v.Int16Data[i])) })
		}
	case sql.Int32, sql.Date32:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return hashInt64(int64(v.Int32Data[i])) })
		}
	case sql.Int64, sql.Timestamp64:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return hashInt64(v.Int64Data[i]) })
		}
	case sql.Float32:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return hashInt64(int64(math.Float32bits(v.Float32Data[i]))) })
		}
	case sql.Float64:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return hashInt64(int64(math.Float64bits(v.Float64Data[i]))) })
		}
	case sql.Bool:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 {
				if v.BoolData[i] {
					return trueSentinel
				}
				return falseSentinel
			})
		}
	case sql.String:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return xxh3.Hash(v.StringAt(i)) })
		}
	case sql.Decimal:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return xxh3.HashString(v.DecimalData[i].String()) })
		}
	case sql.Interval:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 {
				iv := v.IntervalData[i]
				acc := mix(0, hashInt64(int64(iv.Months)))
				acc = mix(acc, hashInt64(int64(iv.Days)))
				acc = mix(acc, hashInt64(iv.Nanoseconds))
				return acc
			})
		}
	case sql.Array, sql.Struct:
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return hashNested(v.ListData[i]) })
		}
	default:
		// NonNative and anything else falls back to the string
		// representation of the value, the canonical (if admittedly
		// inconsistent upstream) rule §9 Open Questions settles on.
		for i := range out {
			out[i] = hashOrNull(v, i, func() uint64 { return xxh3.HashString(stringify(v.ObjectData[i])) })
		}
	}
	return out
}

func hashOrNull(v *sql.Vector, i int, f func() uint64) uint64 {
	if !v.IsValid(i) {
		return nullSentinel
	}
	return f()
}

func hashInt64(n int64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	return xxh3.Hash(buf[:])
}

// hashNested folds a nested list/struct vector's per-row hashes into a
// single value, seeding with mixSeed per §4.5 ("lists: seed then fold
// element hashes with a SplitMix64-like mixer").
func hashNested(elem *sql.Vector) uint64 {
	if elem == nil {
		return nullSentinel
	}
	acc := mixSeed
	for _, h := range ColumnHash(elem) {
		acc = mix(acc, h)
	}
	return acc
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return sqlStringer(v)
}

func sqlStringer(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}
	return ""
}

// RowHashes combines the per-column hashes of the named columns into
// one hash per row, the tuple hash join keys, group-by keys and
// Distinct keys are built from.
func RowHashes(m *sql.Morsel, columns []string) ([]uint64, error) {
	out := make([]uint64, m.RowCount)
	for _, name := range columns {
		v := m.Column(name)
		if v == nil {
			return nil, sql.ErrUnknownColumn.New(name)
		}
		col := ColumnHash(v)
		for i := range out {
			out[i] = mix(out[i], col[i])
		}
	}
	return out, nil
}

// NullAvoidantIndices returns the indices of rows where every named
// column is non-null (§4.5 "Null-avoidant indices"), so a hash join
// or group-by build can skip per-probe null checks.
func NullAvoidantIndices(m *sql.Morsel, columns []string) ([]int, error) {
	vecs := make([]*sql.Vector, len(columns))
	for i, name := range columns {
		v := m.Column(name)
		if v == nil {
			return nil, sql.ErrUnknownColumn.New(name)
		}
		vecs[i] = v
	}
	idx := make([]int, 0, m.RowCount)
row:
	for r := 0; r < m.RowCount; r++ {
		for _, v := range vecs {
			if !v.IsValid(r) {
				continue row
			}
		}
		idx = append(idx, r)
	}
	return idx, nil
}
