package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
)

type leafNode struct {
	id     int64
	schema sql.Schema
}

func newLeaf(schema sql.Schema) *leafNode {
	return &leafNode{id: sql.NextNodeID(), schema: schema}
}

func (l *leafNode) ID() int64            { return l.id }
func (l *leafNode) Children() []sql.Node { return nil }
func (l *leafNode) Schema() sql.Schema   { return l.schema }
func (l *leafNode) WithChildren(children ...sql.Node) (sql.Node, error) {
	return l, nil
}
func (l *leafNode) String() string { return "leafNode" }

var testSchema = sql.Schema{
	{Name: "x", Type: sql.Int64},
}

// TestRangeCompaction verifies §8 S8: `WHERE x > 5 AND x > 10`
// compacts to the single predicate `x > 10`.
func TestRangeCompaction(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)

	xGT5 := expression.NewComparison(expression.Gt,
		expression.NewGetField(0, sql.Int64, "x", false),
		expression.NewLiteral(int64(5), sql.Int64))
	xGT10 := expression.NewComparison(expression.Gt,
		expression.NewGetField(0, sql.Int64, "x", false),
		expression.NewLiteral(int64(10), sql.Int64))

	f := plan.NewFilter(expression.NewAnd(xGT5, xGT10), leaf)

	ctx := NewContext(nil, nil)
	rewritten, err := (&RedundantElimination{}).Apply(ctx, f)
	require.NoError(err)

	result, ok := rewritten.(*plan.Filter)
	require.True(ok)
	cmp, ok := result.Predicate.(*expression.Comparison)
	require.True(ok)
	lit, ok := cmp.Right().(*expression.Literal)
	require.True(ok)
	require.Equal(int64(10), lit.Value())
}

func TestConstantFoldingTrueAnd(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)

	xGT5 := expression.NewComparison(expression.Gt,
		expression.NewGetField(0, sql.Int64, "x", false),
		expression.NewLiteral(int64(5), sql.Int64))
	trueLit := expression.NewLiteral(true, sql.Bool)

	f := plan.NewFilter(expression.NewAnd(trueLit, xGT5), leaf)

	ctx := NewContext(nil, nil)
	rewritten, err := (&ConstantFolding{Pass: 1}).Apply(ctx, f)
	require.NoError(err)

	result := rewritten.(*plan.Filter)
	require.Equal(xGT5, result.Predicate)
}

func TestSplitConjunctivePredicates(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)

	a := expression.NewComparison(expression.Gt, expression.NewGetField(0, sql.Int64, "x", false), expression.NewLiteral(int64(1), sql.Int64))
	b := expression.NewComparison(expression.Lt, expression.NewGetField(0, sql.Int64, "x", false), expression.NewLiteral(int64(100), sql.Int64))

	f := plan.NewFilter(expression.NewAnd(a, b), leaf)

	ctx := NewContext(nil, nil)
	rewritten, err := (&SplitConjunctivePredicates{}).Apply(ctx, f)
	require.NoError(err)

	outer, ok := rewritten.(*plan.Filter)
	require.True(ok)
	inner, ok := outer.Child.(*plan.Filter)
	require.True(ok)
	require.Same(leaf, inner.Child)
}

func TestRedundantEliminationIdentityProjection(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)

	identity := plan.NewProject(
		[]sql.Expression{expression.NewGetField(0, sql.Int64, "x", false)},
		[]string{"x"},
		leaf,
	)

	ctx := NewContext(nil, nil)
	rewritten, err := (&RedundantElimination{}).Apply(ctx, identity)
	require.NoError(err)
	require.Same(leaf, rewritten)
}

func TestOptimizeFullPipelineDoesNotPanic(t *testing.T) {
	require := require.New(t)
	leaf := newLeaf(testSchema)

	xGT5 := expression.NewComparison(expression.Gt, expression.NewGetField(0, sql.Int64, "x", false), expression.NewLiteral(int64(5), sql.Int64))
	xGT10 := expression.NewComparison(expression.Gt, expression.NewGetField(0, sql.Int64, "x", false), expression.NewLiteral(int64(10), sql.Int64))
	f := plan.NewFilter(expression.NewAnd(xGT5, xGT10), leaf)

	ctx := NewContext(nil, nil)
	_, err := Optimize(ctx, f, DefaultPipeline())
	require.NoError(err)
}
