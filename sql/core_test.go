package sql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/sql"
)

func TestVectorValidityBitmap(t *testing.T) {
	require := require.New(t)
	v := sql.NewVector(sql.Int64, 4)
	require.True(v.IsValid(0))
	v.SetNull(2)
	require.True(v.IsValid(0))
	require.True(v.IsValid(1))
	require.False(v.IsValid(2))
	require.True(v.IsValid(3))
}

func TestVectorSliceSharesBackingStorage(t *testing.T) {
	require := require.New(t)
	v := sql.NewVector(sql.Int64, 5)
	for i := range v.Int64Data {
		v.Int64Data[i] = int64(i)
	}
	s := v.Slice(2, 2)
	require.Equal(2, s.Length)
	require.Equal(int64(2), s.Int64Data[s.SliceOffset+0])
	require.Equal(int64(3), s.Int64Data[s.SliceOffset+1])
}

func TestVectorStringAtRespectsOffsets(t *testing.T) {
	require := require.New(t)
	v := sql.NewVector(sql.String, 2)
	v.StringData = append(v.StringData, "hello"...)
	v.StringData = append(v.StringData, "world"...)
	v.Offsets[0] = 0
	v.Offsets[1] = 5
	v.Offsets[2] = 10

	require.Equal("hello", string(v.StringAt(0)))
	require.Equal("world", string(v.StringAt(1)))
}

func TestSchemaIndexOfIsCaseInsensitive(t *testing.T) {
	require := require.New(t)
	schema := sql.Schema{
		{Name: "Name", Type: sql.String},
		{Name: "numberOfMoons", Type: sql.Int64},
	}
	require.Equal(0, schema.IndexOf("name"))
	require.Equal(1, schema.IndexOf("NUMBEROFMOONS"))
	require.Equal(-1, schema.IndexOf("nope"))
}

func TestSchemaConcatAndEqual(t *testing.T) {
	require := require.New(t)
	left := sql.Schema{{Name: "a", Type: sql.Int64}}
	right := sql.Schema{{Name: "b", Type: sql.String}}
	combined := left.Concat(right)
	require.Equal([]string{"a", "b"}, combined.Names())
	require.True(combined.Equal(sql.Schema{{Name: "a", Type: sql.Int64}, {Name: "b", Type: sql.String}}))
	require.False(combined.Equal(left))
}

func TestNewMorselRejectsSchemaMismatch(t *testing.T) {
	require := require.New(t)
	schema := sql.Schema{{Name: "a", Type: sql.Int64}, {Name: "b", Type: sql.Int64}}
	_, err := sql.NewMorsel(schema, []*sql.Vector{sql.NewVector(sql.Int64, 3)})
	require.Error(err)
	require.True(sql.ErrSchemaMismatch.Is(err))
}

func TestNewMorselRejectsRaggedColumns(t *testing.T) {
	require := require.New(t)
	schema := sql.Schema{{Name: "a", Type: sql.Int64}, {Name: "b", Type: sql.Int64}}
	_, err := sql.NewMorsel(schema, []*sql.Vector{sql.NewVector(sql.Int64, 3), sql.NewVector(sql.Int64, 2)})
	require.Error(err)
	require.True(sql.ErrRaggedMorsel.Is(err))
}

func TestMorselProjectAndColumn(t *testing.T) {
	require := require.New(t)
	schema := sql.Schema{{Name: "a", Type: sql.Int64}, {Name: "b", Type: sql.String}}
	a := sql.NewVector(sql.Int64, 2)
	b := sql.NewVector(sql.String, 2)
	m, err := sql.NewMorsel(schema, []*sql.Vector{a, b})
	require.NoError(err)

	require.Same(a, m.Column("a"))
	require.Nil(m.Column("nope"))

	projected, err := m.Project([]string{"b"})
	require.NoError(err)
	require.Equal([]string{"b"}, projected.Schema.Names())

	_, err = m.Project([]string{"nope"})
	require.Error(err)
	require.True(sql.ErrUnknownColumn.Is(err))
}

func TestConcatRejectsMismatchedRowCounts(t *testing.T) {
	require := require.New(t)
	left, err := sql.NewMorsel(sql.Schema{{Name: "a", Type: sql.Int64}}, []*sql.Vector{sql.NewVector(sql.Int64, 2)})
	require.NoError(err)
	right, err := sql.NewMorsel(sql.Schema{{Name: "b", Type: sql.Int64}}, []*sql.Vector{sql.NewVector(sql.Int64, 3)})
	require.NoError(err)

	_, err = sql.Concat(left, right)
	require.Error(err)
	require.True(sql.ErrRaggedMorsel.Is(err))
}

func TestConcatCombinesRows(t *testing.T) {
	require := require.New(t)
	left, err := sql.NewMorsel(sql.Schema{{Name: "a", Type: sql.Int64}}, []*sql.Vector{sql.NewVector(sql.Int64, 2)})
	require.NoError(err)
	right, err := sql.NewMorsel(sql.Schema{{Name: "b", Type: sql.Int64}}, []*sql.Vector{sql.NewVector(sql.Int64, 2)})
	require.NoError(err)

	combined, err := sql.Concat(left, right)
	require.NoError(err)
	require.Equal([]string{"a", "b"}, combined.Schema.Names())
	require.Equal(2, combined.RowCount)
}

func TestContextCancel(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()
	require.False(ctx.IsCancelled())
	ctx.Cancel()
	require.True(ctx.IsCancelled())
}

func TestContextWithTimeout(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewContext(context.Background())
	ctx.WithTimeout(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	require.True(ctx.IsCancelled())
}

func TestQueryStatsRecordOperator(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()
	stats := ctx.Stats()
	stats.RecordOperator("Filter", 10, 4, time.Millisecond)
	stats.RecordOperator("Filter", 5, 2, time.Millisecond)

	op := stats.Operators["Filter"]
	require.NotNil(op)
	require.Equal(int64(15), op.RowsIn)
	require.Equal(int64(6), op.RowsOut)
	require.Equal(int64(2), op.CallCount)
}

func TestQueryStatsFireFlagAndCache(t *testing.T) {
	require := require.New(t)
	stats := sql.NewEmptyContext().Stats()
	stats.FireFlag("PredicatePushdown")
	stats.RecordCacheHit()
	stats.RecordCacheMiss()

	require.Equal([]string{"PredicatePushdown"}, stats.OptimizerFlagsFired)
	require.Equal(int64(1), stats.CacheHits)
	require.Equal(int64(1), stats.CacheMisses)
}

func TestNextNodeIDIsMonotonic(t *testing.T) {
	require := require.New(t)
	a := sql.NextNodeID()
	b := sql.NextNodeID()
	require.Greater(b, a)
}
