package planner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/connector/memtable"
	"github.com/mabel-dev/opteryx/planner"
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
)

func TestBuildPlanScanFilterProject(t *testing.T) {
	require := require.New(t)
	catalog := memtable.NewCatalog()

	nameCol := expression.NewGetField(1, sql.String, "name", false)
	moonsCol := expression.NewGetField(19, sql.Int64, "numberOfMoons", false)
	pred := expression.NewComparison(expression.Gt, moonsCol, expression.NewLiteral(int64(0), sql.Int64))

	stmt := &planner.Statement{
		Select: &planner.SelectStatement{
			From: &planner.FromItem{Table: &planner.TableRef{Kind: planner.BaseTable, TableName: "$planets"}},
			Where: pred,
			Projections: []planner.ProjectionItem{
				{Expr: nameCol, Name: "name"},
			},
		},
	}

	node, err := planner.BuildPlan(stmt, catalog)
	require.NoError(err)

	project, ok := node.(*plan.Project)
	require.True(ok)
	require.Equal([]string{"name"}, project.Names)

	filter, ok := project.Child.(*plan.Filter)
	require.True(ok)

	scan, ok := filter.Child.(*plan.Scan)
	require.True(ok)
	require.Equal("$planets", scan.TableName)
}

func TestBuildPlanUnknownTable(t *testing.T) {
	require := require.New(t)
	catalog := memtable.NewCatalog()

	stmt := &planner.Statement{
		Select: &planner.SelectStatement{
			From: &planner.FromItem{Table: &planner.TableRef{Kind: planner.BaseTable, TableName: "$nope"}},
		},
	}

	_, err := planner.BuildPlan(stmt, catalog)
	require.Error(err)
	require.True(planner.ErrUnknownTable.Is(err))
}

func TestBuildPlanCTESharedAcrossReferences(t *testing.T) {
	require := require.New(t)
	catalog := memtable.NewCatalog()

	cteQuery := &planner.SelectStatement{
		From: &planner.FromItem{Table: &planner.TableRef{Kind: planner.BaseTable, TableName: "$planets"}},
	}

	left := &planner.FromItem{Table: &planner.TableRef{Kind: planner.CTETable, CTEName: "p"}}
	right := &planner.FromItem{Table: &planner.TableRef{Kind: planner.CTETable, CTEName: "p"}}

	stmt := &planner.Statement{
		With: []planner.CTEBinding{{Name: "p", Query: cteQuery}},
		Select: &planner.SelectStatement{
			From: &planner.FromItem{Join: &planner.JoinRef{
				Left:  left,
				Right: right,
				Type:  plan.CrossJoinType,
			}},
		},
	}

	node, err := planner.BuildPlan(stmt, catalog)
	require.NoError(err)

	join, ok := node.(*plan.Join)
	require.True(ok)

	leftRef, ok := join.Left.(*plan.CTERef)
	require.True(ok)
	rightRef, ok := join.Right.(*plan.CTERef)
	require.True(ok)
	require.Same(leftRef.CTE, rightRef.CTE)
	require.Equal(2, leftRef.CTE.RefCount)
}

func TestBuildPlanExplainWrapsRoot(t *testing.T) {
	require := require.New(t)
	catalog := memtable.NewCatalog()

	stmt := &planner.Statement{
		Select: &planner.SelectStatement{
			From: &planner.FromItem{Table: &planner.TableRef{Kind: planner.BaseTable, TableName: "$planets"}},
		},
		Explain: &planner.ExplainClause{Analyze: true},
	}

	node, err := planner.BuildPlan(stmt, catalog)
	require.NoError(err)

	explain, ok := node.(*plan.Explain)
	require.True(ok)
	require.True(explain.Analyze)
}
