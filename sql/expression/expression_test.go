package expression_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
)

func intMorsel(t *testing.T, name string, values []int64, nulls map[int]bool) *sql.Morsel {
	t.Helper()
	v := sql.NewVector(sql.Int64, len(values))
	for i, val := range values {
		v.Int64Data[i] = val
	}
	for i := range nulls {
		v.SetNull(i)
	}
	m, err := sql.NewMorsel(sql.Schema{{Name: name, Type: sql.Int64}}, []*sql.Vector{v})
	require.NoError(t, err)
	return m
}

func TestGetFieldEvalReturnsColumnByIndex(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{1, 2, 3}, nil)
	gf := expression.NewGetField(0, sql.Int64, "x", false)

	v, err := gf.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]int64{1, 2, 3}, v.Int64Data)
}

func TestGetFieldEvalOutOfRangeErrors(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{1}, nil)
	gf := expression.NewGetField(5, sql.Int64, "x", false)

	_, err := gf.Eval(sql.NewEmptyContext(), m)
	require.Error(err)
	require.True(sql.ErrUnknownColumn.Is(err))
}

func TestLiteralBroadcastsAcrossRows(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{1, 2, 3}, nil)
	lit := expression.NewLiteral(int64(42), sql.Int64)

	v, err := lit.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal(m.RowCount, v.Length)
	for i := 0; i < v.Length; i++ {
		require.Equal(int64(42), v.Int64Data[i])
	}
}

func TestArithmeticAddition(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{1, 2, 3}, nil)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	lit := expression.NewLiteral(int64(10), sql.Int64)
	add := expression.NewArithmetic(expression.Add, gf, lit)

	v, err := add.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]int64{11, 12, 13}, v.Int64Data)
}

func TestComparisonGreaterThan(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{1, 5, 10}, nil)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	lit := expression.NewLiteral(int64(4), sql.Int64)
	cmp := expression.NewComparison(expression.Gt, gf, lit)

	v, err := cmp.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]bool{false, true, true}, v.BoolData)
}

func TestLogicAndThreeValued(t *testing.T) {
	require := require.New(t)
	// Row 0 (x NULL): (x = 0) is NULL and (x IS NOT NULL) is FALSE, so
	// NULL AND FALSE == FALSE. Row 1 (x = 0): TRUE AND TRUE == TRUE.
	m := intMorsel(t, "x", []int64{0, 0}, map[int]bool{0: true})
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	isFalse := expression.NewComparison(expression.Eq, gf, expression.NewLiteral(int64(0), sql.Int64))
	isNotNull := expression.NewIsNull(gf, true)

	and := expression.NewAnd(isFalse, isNotNull)
	v, err := and.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal(2, v.Length)
	require.True(v.IsValid(0))
	require.False(v.BoolData[0])
	require.True(v.IsValid(1))
	require.True(v.BoolData[1])
}

func TestIsNullReportsValidity(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{0, 0}, map[int]bool{0: true})
	gf := expression.NewGetField(0, sql.Int64, "x", false)

	isNull := expression.NewIsNull(gf, false)
	v, err := isNull.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]bool{true, false}, v.BoolData)

	isNotNull := expression.NewIsNull(gf, true)
	v2, err := isNotNull.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]bool{false, true}, v2.BoolData)
}

func TestNegateFlipsSign(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{3, -4}, nil)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	neg := expression.NewNegate(gf)

	v, err := neg.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]int64{-3, 4}, v.Int64Data)
}

func TestInListMatchesAnyValue(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{1, 2, 3}, nil)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	list := expression.NewInList(gf, []sql.Expression{
		expression.NewLiteral(int64(1), sql.Int64),
		expression.NewLiteral(int64(3), sql.Int64),
	}, false)

	v, err := list.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]bool{true, false, true}, v.BoolData)
}

func TestCaseEvaluatesFirstMatchingBranch(t *testing.T) {
	require := require.New(t)
	m := intMorsel(t, "x", []int64{1, 2, 3}, nil)
	gf := expression.NewGetField(0, sql.Int64, "x", false)

	branches := []expression.CaseBranch{
		{
			When: expression.NewComparison(expression.Eq, gf, expression.NewLiteral(int64(1), sql.Int64)),
			Then: expression.NewLiteral(int64(100), sql.Int64),
		},
		{
			When: expression.NewComparison(expression.Eq, gf, expression.NewLiteral(int64(2), sql.Int64)),
			Then: expression.NewLiteral(int64(200), sql.Int64),
		},
	}
	c := expression.NewCase(branches, expression.NewLiteral(int64(-1), sql.Int64), sql.Int64)

	v, err := c.Eval(sql.NewEmptyContext(), m)
	require.NoError(err)
	require.Equal([]int64{100, 200, -1}, v.Int64Data)
}
