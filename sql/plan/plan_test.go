package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
)

// leafNode is a minimal sql.Node stub used to exercise plan nodes
// without pulling in a connector.
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
	if len(children) != 0 {
		return nil, ErrChildCount.New("leafNode", 0, len(children))
	}
	return l, nil
}
func (l *leafNode) String() string { return "leafNode" }

var lSchema = sql.Schema{
	{Name: "lcol1", Type: sql.String},
	{Name: "lcol2", Type: sql.Int64},
}

var rSchema = sql.Schema{
	{Name: "rcol1", Type: sql.String},
	{Name: "rcol2", Type: sql.Int64},
}

func TestProjectIdentity(t *testing.T) {
	require := require.New(t)
	left := newLeaf(lSchema)

	identity := NewProject(
		[]sql.Expression{
			expression.NewGetField(0, sql.String, "lcol1", false),
			expression.NewGetField(1, sql.Int64, "lcol2", false),
		},
		[]string{"lcol1", "lcol2"},
		left,
	)
	require.True(identity.IsIdentity())

	reordered := NewProject(
		[]sql.Expression{
			expression.NewGetField(1, sql.Int64, "lcol2", false),
			expression.NewGetField(0, sql.String, "lcol1", false),
		},
		[]string{"lcol2", "lcol1"},
		left,
	)
	require.False(reordered.IsIdentity())
}

func TestInnerJoinSchema(t *testing.T) {
	require := require.New(t)
	left := newLeaf(lSchema)
	right := newLeaf(rSchema)

	j := NewInnerJoin(left, right, expression.NewEquals(
		expression.NewGetField(0, sql.String, "lcol1", false),
		expression.NewGetField(0, sql.String, "rcol1", false),
	))

	require.Equal(InnerJoinType, j.Type)
	require.Len(j.Schema(), 4)
	require.Equal("lcol1", j.Schema()[0].Name)
	require.Equal("rcol1", j.Schema()[2].Name)
}

func TestSemiJoinProjectsLeftOnly(t *testing.T) {
	require := require.New(t)
	left := newLeaf(lSchema)
	right := newLeaf(rSchema)

	j := NewSemiJoin(left, right, expression.NewEquals(
		expression.NewGetField(0, sql.String, "lcol1", false),
		expression.NewGetField(0, sql.String, "rcol1", false),
	))

	require.Equal(lSchema, j.Schema())
}

func TestAntiJoinProjectsLeftOnly(t *testing.T) {
	require := require.New(t)
	left := newLeaf(lSchema)
	right := newLeaf(rSchema)

	j := NewAntiJoin(left, right, expression.NewEquals(
		expression.NewGetField(0, sql.String, "lcol1", false),
		expression.NewGetField(0, sql.String, "rcol1", false),
	))

	require.Equal(lSchema, j.Schema())
}

func TestWithChildrenPreservesID(t *testing.T) {
	require := require.New(t)
	left := newLeaf(lSchema)
	f := NewFilter(expression.NewIsNull(expression.NewGetField(0, sql.String, "lcol1", false), false), left)

	replaced, err := f.WithChildren(newLeaf(lSchema))
	require.NoError(err)
	require.Equal(f.ID(), replaced.(*Filter).ID())
}

func TestCTESharedAcrossReferences(t *testing.T) {
	require := require.New(t)
	sub := newLeaf(lSchema)
	cte := NewCommonTableExpression("t", sub)

	ref1 := cte.Reference()
	ref2 := cte.Reference()

	require.Equal(2, cte.RefCount)
	require.Same(cte, ref1.CTE)
	require.Same(cte, ref2.CTE)
	require.Equal(cte.Schema(), ref1.Schema())
}

func TestUnionSchemaIsLeftSchema(t *testing.T) {
	require := require.New(t)
	left := newLeaf(lSchema)
	right := newLeaf(lSchema)

	u := NewUnion(left, right)
	require.Equal(lSchema, u.Schema())
}

func TestAggregateAndGroupSchema(t *testing.T) {
	require := require.New(t)
	left := newLeaf(lSchema)

	agg := NewAggregateAndGroup(
		[]sql.Expression{expression.NewGetField(0, sql.String, "lcol1", false)},
		[]sql.Expression{expression.NewLiteral(int64(0), sql.Int64)},
		[]string{"lcol1", "total"},
		left,
	)
	require.Len(agg.Schema(), 2)
	require.Equal("lcol1", agg.Schema()[0].Name)
	require.Equal("total", agg.Schema()[1].Name)
}
