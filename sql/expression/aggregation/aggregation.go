// Package aggregation implements the per-group accumulators for
// COUNT, SUM, MIN, MAX, AVG, COUNT_DISTINCT, ANY_VALUE,
// APPROX_MEDIAN, STDDEV, VARIANCE, PRODUCT, LIST and MIN_MAX (§4.6),
// grounded on the teacher's sql/expression/function/aggregation
// package boundary (the same split the teacher makes between scalar
// functions and aggregate functions) and on the Aggregation/
// AggregationBuffer contract of sql/expression.go.
package aggregation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/hash"
)

// Kind names the supported aggregate functions.
type Kind int

const (
	Count Kind = iota
	CountStar
	Sum
	Min
	Max
	Avg
	CountDistinct
	AnyValue
	ApproxMedian
	StdDev
	Variance
	Product
	List
	MinMax
)

// NewBuffer allocates a fresh per-group accumulator for the named
// aggregate kind. argType is the static type of the aggregate's
// single argument (ignored for CountStar).
func NewBuffer(kind Kind, argType sql.Type) sql.AggregationBuffer {
	switch kind {
	case Count:
		return &countBuffer{}
	case CountStar:
		return &countStarBuffer{}
	case Sum:
		return &sumBuffer{argType: argType}
	case Min:
		return &minMaxBuffer{argType: argType, wantMin: true}
	case Max:
		return &minMaxBuffer{argType: argType, wantMin: false}
	case Avg:
		return &avgBuffer{argType: argType}
	case CountDistinct:
		return &countDistinctBuffer{set: hash.NewFlatHashSet()}
	case AnyValue:
		return &anyValueBuffer{}
	case ApproxMedian:
		return &approxMedianBuffer{digest: newTDigest(100)}
	case StdDev:
		return &varianceBuffer{sampleStdDev: true}
	case Variance:
		return &varianceBuffer{}
	case Product:
		return &productBuffer{argType: argType}
	case List:
		return &listBuffer{}
	case MinMax:
		return &minMaxPairBuffer{argType: argType}
	}
	return &countBuffer{}
}

// --- COUNT / COUNT(*) -------------------------------------------------

type countBuffer struct{ n int64 }

// Update increments the running count for every non-null argument
// value (COUNT ignores NULLs, §4.6).
func (b *countBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] != nil {
		b.n++
	}
	return nil
}
func (b *countBuffer) Eval(ctx *sql.Context) (any, error) { return b.n, nil }

type countStarBuffer struct{ n int64 }

// Update increments unconditionally: COUNT(*) counts rows, not values
// (§4.6 "COUNT(*) increments unconditionally").
func (b *countStarBuffer) Update(ctx *sql.Context, row []any) error {
	b.n++
	return nil
}
func (b *countStarBuffer) Eval(ctx *sql.Context) (any, error) { return b.n, nil }

// --- SUM ---------------------------------------------------------------

type sumBuffer struct {
	argType  sql.Type
	intSum   int64
	floatSum float64
	decSum   decimal.Decimal
	any      bool
}

func (b *sumBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	b.any = true
	switch b.argType {
	case sql.Float32, sql.Float64:
		b.floatSum += toFloat64(row[0])
	case sql.Decimal:
		b.decSum = b.decSum.Add(toDecimal(row[0]))
	default:
		b.intSum += toInt64(row[0])
	}
	return nil
}

func (b *sumBuffer) Eval(ctx *sql.Context) (any, error) {
	if !b.any {
		return nil, nil // SUM over no rows is NULL, §4.6
	}
	switch b.argType {
	case sql.Float32, sql.Float64:
		return b.floatSum, nil
	case sql.Decimal:
		return b.decSum, nil
	default:
		return b.intSum, nil
	}
}

// --- MIN / MAX -----------------------------------------------------------

type minMaxBuffer struct {
	argType sql.Type
	value   any
	wantMin bool
	any     bool
}

func (b *minMaxBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	if !b.any {
		b.value = row[0]
		b.any = true
		return nil
	}
	cmp := compare(b.argType, row[0], b.value)
	if (b.wantMin && cmp < 0) || (!b.wantMin && cmp > 0) {
		b.value = row[0]
	}
	return nil
}

func (b *minMaxBuffer) Eval(ctx *sql.Context) (any, error) {
	if !b.any {
		return nil, nil
	}
	return b.value, nil
}

// --- AVG -------------------------------------------------------------

type avgBuffer struct {
	argType sql.Type
	sum     float64
	decSum  decimal.Decimal
	n       int64
}

func (b *avgBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	b.n++
	if b.argType == sql.Decimal {
		b.decSum = b.decSum.Add(toDecimal(row[0]))
	} else {
		b.sum += toFloat64(row[0])
	}
	return nil
}

func (b *avgBuffer) Eval(ctx *sql.Context) (any, error) {
	if b.n == 0 {
		return nil, nil
	}
	if b.argType == sql.Decimal {
		return b.decSum.Div(decimal.NewFromInt(b.n)), nil
	}
	return b.sum / float64(b.n), nil
}

// --- COUNT(DISTINCT ...) -----------------------------------------------

type countDistinctBuffer struct {
	set *hash.FlatHashSet
}

func (b *countDistinctBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	b.set.Insert(hashScalar(row[0]))
	return nil
}

func (b *countDistinctBuffer) Eval(ctx *sql.Context) (any, error) {
	return int64(b.set.Len()), nil
}

// --- ANY_VALUE -----------------------------------------------------------

type anyValueBuffer struct {
	value any
	any   bool
}

func (b *anyValueBuffer) Update(ctx *sql.Context, row []any) error {
	if b.any || row[0] == nil {
		return nil
	}
	b.value = row[0]
	b.any = true
	return nil
}

func (b *anyValueBuffer) Eval(ctx *sql.Context) (any, error) { return b.value, nil }

// --- APPROX_MEDIAN (t-digest) --------------------------------------------

type approxMedianBuffer struct {
	digest *tDigest
}

func (b *approxMedianBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	b.digest.Add(toFloat64(row[0]), 1)
	return nil
}

func (b *approxMedianBuffer) Eval(ctx *sql.Context) (any, error) {
	if b.digest.Empty() {
		return nil, nil
	}
	return b.digest.Quantile(0.5), nil
}

// --- STDDEV / VARIANCE (Welford's online algorithm) ----------------------

type varianceBuffer struct {
	n            int64
	mean         float64
	m2           float64
	sampleStdDev bool
}

func (b *varianceBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	x := toFloat64(row[0])
	b.n++
	delta := x - b.mean
	b.mean += delta / float64(b.n)
	delta2 := x - b.mean
	b.m2 += delta * delta2
	return nil
}

func (b *varianceBuffer) Eval(ctx *sql.Context) (any, error) {
	if b.n < 2 {
		if b.n == 1 {
			return 0.0, nil
		}
		return nil, nil
	}
	variance := b.m2 / float64(b.n-1)
	if b.sampleStdDev {
		return math.Sqrt(variance), nil
	}
	return variance, nil
}

// --- PRODUCT -------------------------------------------------------------

type productBuffer struct {
	argType sql.Type
	product float64
	intProd int64
	decProd decimal.Decimal
	any     bool
}

func (b *productBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	if !b.any {
		b.product = 1
		b.intProd = 1
		b.decProd = decimal.NewFromInt(1)
		b.any = true
	}
	switch b.argType {
	case sql.Decimal:
		b.decProd = b.decProd.Mul(toDecimal(row[0]))
	case sql.Int32, sql.Int64:
		b.intProd *= toInt64(row[0])
	default:
		b.product *= toFloat64(row[0])
	}
	return nil
}

func (b *productBuffer) Eval(ctx *sql.Context) (any, error) {
	if !b.any {
		return nil, nil
	}
	switch b.argType {
	case sql.Decimal:
		return b.decProd, nil
	case sql.Int32, sql.Int64:
		return b.intProd, nil
	}
	return b.product, nil
}

// --- LIST ----------------------------------------------------------------

type listBuffer struct {
	values []any
}

func (b *listBuffer) Update(ctx *sql.Context, row []any) error {
	b.values = append(b.values, row[0])
	return nil
}

func (b *listBuffer) Eval(ctx *sql.Context) (any, error) { return b.values, nil }

// --- MIN_MAX (both extremes as a two-element result) ----------------------

type minMaxPairBuffer struct {
	argType  sql.Type
	min, max any
	any      bool
}

func (b *minMaxPairBuffer) Update(ctx *sql.Context, row []any) error {
	if row[0] == nil {
		return nil
	}
	if !b.any {
		b.min, b.max = row[0], row[0]
		b.any = true
		return nil
	}
	if compare(b.argType, row[0], b.min) < 0 {
		b.min = row[0]
	}
	if compare(b.argType, row[0], b.max) > 0 {
		b.max = row[0]
	}
	return nil
}

func (b *minMaxPairBuffer) Eval(ctx *sql.Context) (any, error) {
	if !b.any {
		return nil, nil
	}
	return [2]any{b.min, b.max}, nil
}
