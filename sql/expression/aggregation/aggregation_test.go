package aggregation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression/aggregation"
)

func update(t *testing.T, buf sql.AggregationBuffer, values ...any) {
	t.Helper()
	ctx := sql.NewEmptyContext()
	for _, v := range values {
		require.NoError(t, buf.Update(ctx, []any{v}))
	}
}

func TestCountIgnoresNulls(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.Count, sql.Int64)
	update(t, buf, int64(1), nil, int64(2))

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(2), v)
}

func TestCountStarCountsRowsIncludingNulls(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.CountStar, sql.Int64)
	update(t, buf, int64(1), nil, int64(2))

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(3), v)
}

func TestSumOverNoRowsIsNull(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.Sum, sql.Int64)

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Nil(v)
}

func TestSumAccumulatesIntegers(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.Sum, sql.Int64)
	update(t, buf, int64(1), int64(2), int64(3))

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(6), v)
}

func TestMinMaxTrackExtremes(t *testing.T) {
	require := require.New(t)
	minBuf := aggregation.NewBuffer(aggregation.Min, sql.Int64)
	maxBuf := aggregation.NewBuffer(aggregation.Max, sql.Int64)
	update(t, minBuf, int64(5), int64(1), int64(3))
	update(t, maxBuf, int64(5), int64(1), int64(3))

	minV, err := minBuf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(1), minV)

	maxV, err := maxBuf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(5), maxV)
}

func TestAvgOverNoRowsIsNull(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.Avg, sql.Float64)

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Nil(v)
}

func TestCountDistinctDeduplicatesValues(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.CountDistinct, sql.Int64)
	update(t, buf, int64(1), int64(1), int64(2), nil)

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(2), v)
}

func TestAnyValueReturnsFirstNonNull(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.AnyValue, sql.Int64)
	update(t, buf, nil, int64(7), int64(9))

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(7), v)
}

func TestProductAccumulatesIntegers(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.Product, sql.Int64)
	update(t, buf, int64(2), int64(3), int64(4))

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal(int64(24), v)
}

func TestListCollectsAllValuesIncludingNulls(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.List, sql.Int64)
	update(t, buf, int64(1), nil, int64(2))

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal([]any{int64(1), nil, int64(2)}, v)
}

func TestMinMaxPairReturnsBothExtremes(t *testing.T) {
	require := require.New(t)
	buf := aggregation.NewBuffer(aggregation.MinMax, sql.Int64)
	update(t, buf, int64(5), int64(1), int64(3))

	v, err := buf.Eval(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal([2]any{int64(1), int64(5)}, v)
}
