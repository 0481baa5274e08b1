package transform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/connector/memtable"
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

func scanPlanetsFilterProject(t *testing.T) sql.Node {
	t.Helper()
	conn, ok := memtable.NewCatalog().Get("$planets")
	require.True(t, ok)
	scan := plan.NewScan("$planets", conn)
	gf := expression.NewGetField(0, sql.Int64, "id", false)
	filter := plan.NewFilter(expression.NewComparison(expression.Gt, gf, expression.NewLiteral(int64(0), sql.Int64)), scan)
	return plan.NewProject([]sql.Expression{gf}, []string{"id"}, filter)
}

func TestTransformUpVisitsChildrenBeforeParent(t *testing.T) {
	require := require.New(t)
	root := scanPlanetsFilterProject(t)

	var order []string
	_, err := transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		order = append(order, nodeKind(n))
		return n, nil
	})
	require.NoError(err)
	require.Equal([]string{"Scan", "Filter", "Project"}, order)
}

func TestTransformDownVisitsParentBeforeChildren(t *testing.T) {
	require := require.New(t)
	root := scanPlanetsFilterProject(t)

	var order []string
	_, err := transform.TransformDown(root, func(n sql.Node) (sql.Node, error) {
		order = append(order, nodeKind(n))
		return n, nil
	})
	require.NoError(err)
	require.Equal([]string{"Project", "Filter", "Scan"}, order)
}

func TestTransformUpRebuildsOnlyChangedAncestors(t *testing.T) {
	require := require.New(t)
	root := scanPlanetsFilterProject(t)
	scan := root.Children()[0].Children()[0]

	rewritten, err := transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		if f, ok := n.(*plan.Filter); ok {
			return f.WithPredicate(expression.NewLiteral(true, sql.Bool)), nil
		}
		return n, nil
	})
	require.NoError(err)

	project := rewritten.(*plan.Project)
	filter := project.Children()[0].(*plan.Filter)
	require.Equal("true", filter.Predicate.String())
	require.NotSame(root, rewritten)
	require.Same(scan, filter.Children()[0])
}

func TestInspectVisitsEveryNode(t *testing.T) {
	require := require.New(t)
	root := scanPlanetsFilterProject(t)

	var kinds []string
	transform.Inspect(root, func(n sql.Node) bool {
		kinds = append(kinds, nodeKind(n))
		return true
	})
	require.Equal([]string{"Project", "Filter", "Scan"}, kinds)
}

func TestInspectStopsDescendingWhenFuncReturnsFalse(t *testing.T) {
	require := require.New(t)
	root := scanPlanetsFilterProject(t)

	var kinds []string
	transform.Inspect(root, func(n sql.Node) bool {
		kinds = append(kinds, nodeKind(n))
		return nodeKind(n) != "Project"
	})
	require.Equal([]string{"Project"}, kinds)
}

func TestTransformExprUpRewritesBottomUp(t *testing.T) {
	require := require.New(t)
	gf := expression.NewGetField(0, sql.Int64, "id", false)
	lit := expression.NewLiteral(int64(1), sql.Int64)
	add := expression.NewArithmetic(expression.Add, gf, lit)

	rewritten, err := transform.TransformExprUp(add, func(e sql.Expression) (sql.Expression, error) {
		if _, ok := e.(*expression.Literal); ok {
			return expression.NewLiteral(int64(99), sql.Int64), nil
		}
		return e, nil
	})
	require.NoError(err)
	require.Equal("GetField(0, id) + 99", rewritten.String())
}

func TestInspectExprVisitsEveryExpressionNode(t *testing.T) {
	require := require.New(t)
	gf := expression.NewGetField(0, sql.Int64, "id", false)
	lit := expression.NewLiteral(int64(1), sql.Int64)
	add := expression.NewArithmetic(expression.Add, gf, lit)

	count := 0
	transform.InspectExpr(add, func(e sql.Expression) bool {
		count++
		return true
	})
	require.Equal(3, count)
}

func nodeKind(n sql.Node) string {
	switch n.(type) {
	case *plan.Scan:
		return "Scan"
	case *plan.Filter:
		return "Filter"
	case *plan.Project:
		return "Project"
	default:
		return "Other"
	}
}
