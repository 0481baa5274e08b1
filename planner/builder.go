package planner

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
)

// builder holds the state threaded through one BuildPlan call: the
// catalog used to resolve base tables, and the CommonTableExpression
// nodes built so far for the statement's WITH bindings, keyed by
// name so every reference shares one subplan (§4.1).
type builder struct {
	catalog Catalog
	ctes    map[string]*plan.CommonTableExpression
}

// BuildPlan lowers a bound Statement into a logical plan tree rooted
// at the node sql/analyzer.Optimize and exec.Builder.Compile consume.
// stmt is assumed already bound: every sql.Expression it carries is
// built against its eventual child schema, as if by a pre-pass binder
// external to this package (§4.1).
func BuildPlan(stmt *Statement, catalog Catalog) (sql.Node, error) {
	b := &builder{catalog: catalog, ctes: map[string]*plan.CommonTableExpression{}}

	for _, binding := range stmt.With {
		sub, err := b.buildSelect(binding.Query)
		if err != nil {
			return nil, err
		}
		b.ctes[binding.Name] = plan.NewCommonTableExpression(binding.Name, sub)
	}

	root, err := b.buildSelect(stmt.Select)
	if err != nil {
		return nil, err
	}

	if stmt.Explain != nil {
		root = plan.NewExplain(root, stmt.Explain.Analyze)
	}
	return root, nil
}

// buildSelect lowers one SELECT body, applying clauses in their
// logical evaluation order: FROM, WHERE, GROUP BY/aggregates, HAVING,
// the projection, DISTINCT, ORDER BY, then OFFSET and LIMIT.
func (b *builder) buildSelect(sel *SelectStatement) (sql.Node, error) {
	var node sql.Node
	var err error

	if sel.From != nil {
		node, err = b.buildFromItem(sel.From)
		if err != nil {
			return nil, err
		}
	}

	if sel.Where != nil {
		node = plan.NewFilter(sel.Where, node)
	}

	if len(sel.Aggregates) > 0 || len(sel.GroupBy) > 0 {
		aggExprs := make([]sql.Expression, len(sel.Aggregates))
		names := make([]string, len(sel.Aggregates))
		for i, a := range sel.Aggregates {
			aggExprs[i] = a.Expr
			names[i] = a.Name
		}
		node = plan.NewAggregateAndGroup(sel.GroupBy, aggExprs, names, node)
	}

	if sel.Having != nil {
		node = plan.NewFilter(sel.Having, node)
	}

	if len(sel.Projections) > 0 {
		projExprs := make([]sql.Expression, len(sel.Projections))
		names := make([]string, len(sel.Projections))
		for i, p := range sel.Projections {
			projExprs[i] = p.Expr
			names[i] = p.Name
		}
		node = plan.NewProject(projExprs, names, node)
	}

	if sel.Distinct {
		if len(sel.DistinctOn) > 0 {
			node = plan.NewDistinctOn(sel.DistinctOn, node)
		} else {
			node = plan.NewDistinct(node)
		}
	}

	if len(sel.OrderBy) > 0 {
		fields := make([]plan.SortField, len(sel.OrderBy))
		for i, o := range sel.OrderBy {
			fields[i] = plan.SortField{Expr: o.Expr, Descending: o.Descending, NullsFirst: o.NullsFirst}
		}
		node = plan.NewOrder(fields, node)
	}

	if sel.Offset != nil {
		node = plan.NewOffset(*sel.Offset, node)
	}
	if sel.Limit != nil {
		node = plan.NewLimit(*sel.Limit, node)
	}

	return node, nil
}

// buildFromItem lowers one FROM tree node: either a leaf TableRef or
// a JoinRef combining two already-built FromItems.
func (b *builder) buildFromItem(item *FromItem) (sql.Node, error) {
	if item.Join != nil {
		return b.buildJoin(item.Join)
	}
	return b.buildTableRef(item.Table)
}

func (b *builder) buildJoin(j *JoinRef) (sql.Node, error) {
	left, err := b.buildFromItem(j.Left)
	if err != nil {
		return nil, err
	}
	right, err := b.buildFromItem(j.Right)
	if err != nil {
		return nil, err
	}
	return plan.NewJoin(j.Type, left, right, j.Condition, j.LeftKeys, j.RightKeys), nil
}

func (b *builder) buildTableRef(t *TableRef) (sql.Node, error) {
	switch t.Kind {
	case BaseTable:
		conn, ok := b.catalog.Get(t.TableName)
		if !ok {
			return nil, ErrUnknownTable.New(t.TableName)
		}
		scan := plan.NewScan(t.TableName, conn)
		if t.Temporal != nil {
			scan.TimeRange = t.Temporal
		}
		return scan, nil

	case SubqueryTable:
		target, err := b.buildSelect(t.Subquery)
		if err != nil {
			return nil, err
		}
		return plan.NewSubquery(t.Alias, target), nil

	case CTETable:
		cte, ok := b.ctes[t.CTEName]
		if !ok {
			return nil, ErrUnknownCTE.New(t.CTEName)
		}
		return cte.Reference(), nil

	case UnnestTable:
		outer, err := b.buildFromItem(t.Unnest.Outer)
		if err != nil {
			return nil, err
		}
		return plan.NewUnnestFunction(t.Unnest.Target, t.Unnest.OutputName, t.Unnest.ElemType, t.Unnest.Filter, outer), nil
	}
	return nil, ErrUnknownTable.New(t.TableName)
}
