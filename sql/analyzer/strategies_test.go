package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
)

func TestBooleanSimplificationDoubleNegation(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	isNull := expression.NewIsNull(gf, false)
	doubleNot := expression.NewNot(expression.NewNot(isNull))

	f := plan.NewFilter(doubleNot, leaf)

	ctx := NewContext(nil, nil)
	rewritten, err := (&BooleanSimplification{}).Apply(ctx, f)
	require.NoError(err)

	result := rewritten.(*plan.Filter)
	require.Same(isNull, result.Predicate)
}

func TestBooleanSimplificationDeMorganAnd(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	a := expression.NewComparison(expression.Gt, gf, expression.NewLiteral(int64(1), sql.Int64))
	b := expression.NewComparison(expression.Lt, gf, expression.NewLiteral(int64(10), sql.Int64))
	notAndExpr := expression.NewNot(expression.NewAnd(a, b))

	f := plan.NewFilter(notAndExpr, leaf)

	ctx := NewContext(nil, nil)
	rewritten, err := (&BooleanSimplification{}).Apply(ctx, f)
	require.NoError(err)

	result := rewritten.(*plan.Filter)
	or, ok := result.Predicate.(*expression.Logic)
	require.True(ok)
	require.Equal(expression.Or, or.Op())
}

func TestLimitPushdownMovesLimitBelowProject(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	project := plan.NewProject([]sql.Expression{gf}, []string{"x"}, leaf)
	lim := plan.NewLimit(10, project)

	ctx := NewContext(nil, nil)
	rewritten, err := (&LimitPushdown{}).Apply(ctx, lim)
	require.NoError(err)

	outerProject, ok := rewritten.(*plan.Project)
	require.True(ok)
	innerLimit, ok := outerProject.Child.(*plan.Limit)
	require.True(ok)
	require.Equal(int64(10), innerLimit.Count)
	require.Same(leaf, innerLimit.Child)
}

func TestLimitPushdownLeavesLimitAboveOrderUntouched(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)
	gf := expression.NewGetField(0, sql.Int64, "x", false)
	order := plan.NewOrder([]plan.SortField{{Expr: gf}}, leaf)
	lim := plan.NewLimit(5, order)

	ctx := NewContext(nil, nil)
	rewritten, err := (&LimitPushdown{}).Apply(ctx, lim)
	require.NoError(err)
	require.Same(lim, rewritten)
}
