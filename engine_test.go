package opteryx_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	opteryx "github.com/mabel-dev/opteryx"
	"github.com/mabel-dev/opteryx/connector/memtable"
	"github.com/mabel-dev/opteryx/planner"
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
)

func selectAllPlanets() *planner.Statement {
	return &planner.Statement{
		Select: &planner.SelectStatement{
			From: &planner.FromItem{Table: &planner.TableRef{Kind: planner.BaseTable, TableName: "$planets"}},
			Projections: []planner.ProjectionItem{
				{Expr: expression.NewGetField(1, sql.String, "name", false), Name: "name"},
			},
		},
	}
}

func TestEngineDrainReturnsNinePlanets(t *testing.T) {
	require := require.New(t)
	e := opteryx.New(memtable.NewCatalog(), opteryx.Config{})

	morsels, stats, err := e.Drain(context.Background(), selectAllPlanets())
	require.NoError(err)
	require.NotNil(stats)

	total := 0
	for _, m := range morsels {
		total += m.RowCount
	}
	require.Equal(9, total)
}

func TestEngineQueryStreamsViaNext(t *testing.T) {
	require := require.New(t)
	e := opteryx.New(memtable.NewCatalog(), opteryx.Config{})

	res, err := e.Query(context.Background(), selectAllPlanets())
	require.NoError(err)
	defer res.Close()

	rows := 0
	for {
		m, err := res.Next()
		if err == io.EOF {
			break
		}
		require.NoError(err)
		rows += m.RowCount
	}
	require.Equal(9, rows)
}

func TestEngineUnknownTableErrors(t *testing.T) {
	require := require.New(t)
	e := opteryx.New(memtable.NewCatalog(), opteryx.Config{})

	stmt := &planner.Statement{
		Select: &planner.SelectStatement{
			From: &planner.FromItem{Table: &planner.TableRef{Kind: planner.BaseTable, TableName: "$nope"}},
		},
	}

	_, err := e.Query(context.Background(), stmt)
	require.Error(err)
}

func TestNewDefaultUsesMemtableCatalog(t *testing.T) {
	require := require.New(t)
	e, err := opteryx.NewDefault()
	require.NoError(err)
	defer e.Close()

	morsels, _, err := e.Drain(context.Background(), selectAllPlanets())
	require.NoError(err)
	require.NotEmpty(morsels)
}
