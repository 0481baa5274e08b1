package hash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/hash"
)

func TestColumnHashIsDeterministic(t *testing.T) {
	require := require.New(t)
	v := sql.NewVector(sql.Int64, 3)
	v.Int64Data[0] = 1
	v.Int64Data[1] = 2
	v.Int64Data[2] = 1

	h1 := hash.ColumnHash(v)
	h2 := hash.ColumnHash(v)
	require.Equal(h1, h2)
	require.Equal(h1[0], h1[2])
	require.NotEqual(h1[0], h1[1])
}

func TestColumnHashNullsShareSentinelButNeverEqualValue(t *testing.T) {
	require := require.New(t)
	v := sql.NewVector(sql.Int64, 3)
	v.SetNull(0)
	v.SetNull(1)

	h := hash.ColumnHash(v)
	require.Equal(h[0], h[1])
	require.NotEqual(h[0], h[2])
}

func TestColumnHashStringUsesContent(t *testing.T) {
	require := require.New(t)
	v := sql.NewVector(sql.String, 2)
	v.StringData = append(v.StringData, "abc"...)
	v.StringData = append(v.StringData, "abc"...)
	v.Offsets[0] = 0
	v.Offsets[1] = 3
	v.Offsets[2] = 6

	h := hash.ColumnHash(v)
	require.Equal(h[0], h[1])
}

func TestRowHashesCombinesColumns(t *testing.T) {
	require := require.New(t)
	a := sql.NewVector(sql.Int64, 2)
	a.Int64Data[0], a.Int64Data[1] = 1, 1
	b := sql.NewVector(sql.Int64, 2)
	b.Int64Data[0], b.Int64Data[1] = 1, 2

	m, err := sql.NewMorsel(sql.Schema{{Name: "a", Type: sql.Int64}, {Name: "b", Type: sql.Int64}}, []*sql.Vector{a, b})
	require.NoError(err)

	hashes, err := hash.RowHashes(m, []string{"a", "b"})
	require.NoError(err)
	require.Len(hashes, 2)
	require.NotEqual(hashes[0], hashes[1])
}

func TestRowHashesUnknownColumnErrors(t *testing.T) {
	require := require.New(t)
	a := sql.NewVector(sql.Int64, 1)
	m, err := sql.NewMorsel(sql.Schema{{Name: "a", Type: sql.Int64}}, []*sql.Vector{a})
	require.NoError(err)

	_, err = hash.RowHashes(m, []string{"nope"})
	require.Error(err)
	require.True(sql.ErrUnknownColumn.Is(err))
}

func TestNullAvoidantIndicesSkipsRowsWithAnyNull(t *testing.T) {
	require := require.New(t)
	a := sql.NewVector(sql.Int64, 3)
	a.SetNull(1)
	m, err := sql.NewMorsel(sql.Schema{{Name: "a", Type: sql.Int64}}, []*sql.Vector{a})
	require.NoError(err)

	idx, err := hash.NullAvoidantIndices(m, []string{"a"})
	require.NoError(err)
	require.Equal([]int{0, 2}, idx)
}

func TestFlatHashSetInsertReportsNovelty(t *testing.T) {
	require := require.New(t)
	s := hash.NewFlatHashSet()
	require.True(s.Insert(42))
	require.False(s.Insert(42))
	require.Equal(1, s.Len())
	require.True(s.Contains(42))
	require.False(s.Contains(7))
}

func TestFlatHashSetGrowsPastInitialCapacity(t *testing.T) {
	require := require.New(t)
	s := hash.NewFlatHashSet()
	for i := uint64(0); i < 200; i++ {
		s.Insert(i)
	}
	require.Equal(200, s.Len())
	for i := uint64(0); i < 200; i++ {
		require.True(s.Contains(i))
	}
}

func TestFlatHashMapInsertAppendsToBucket(t *testing.T) {
	require := require.New(t)
	m := hash.NewFlatHashMap()
	m.Insert(1, 10)
	m.Insert(1, 11)
	m.Insert(2, 20)

	rows, ok := m.Get(1)
	require.True(ok)
	require.Equal([]int{10, 11}, rows)

	rows, ok = m.Get(2)
	require.True(ok)
	require.Equal([]int{20}, rows)

	_, ok = m.Get(99)
	require.False(ok)

	require.Equal(2, m.Len())
}

func TestFlatHashMapEachVisitsEveryBucket(t *testing.T) {
	require := require.New(t)
	m := hash.NewFlatHashMap()
	for i := uint64(0); i < 50; i++ {
		m.Insert(i, int(i))
	}
	seen := map[uint64]bool{}
	m.Each(func(h uint64, rows []int) {
		seen[h] = true
	})
	require.Len(seen, 50)
}
