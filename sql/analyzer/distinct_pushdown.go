package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// DistinctPushdown is strategy 10: push DISTINCT past pure
// projections and into UNION-combined branches (§4.2). Pushing past a
// Project is sound only when the projection is injective — this
// engine has no column-level cardinality analysis, so it restricts
// the Project case to an identity projection (plan.Project.IsIdentity
// — a reordering/renaming of columns, never a computed expression),
// which is always injective.
type DistinctPushdown struct{}

func (d *DistinctPushdown) Name() string { return "distinct_pushdown" }

func (d *DistinctPushdown) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		dist, ok := n.(*plan.Distinct)
		if !ok || dist.On != nil {
			return n, nil
		}
		switch child := dist.Child.(type) {
		case *plan.Project:
			if !child.IsIdentity() {
				return n, nil
			}
			return plan.NewProject(child.Projections, child.Names, plan.NewDistinct(child.Child)), nil
		case *plan.Union:
			// Distinct-ing each branch first cannot change the final
			// result (duplicates removed early were duplicates of a
			// row that survives regardless) but does not make the
			// outer Distinct redundant — the same row can still appear
			// once in each branch — so it stays, now over smaller
			// inputs.
			return plan.NewDistinct(plan.NewUnion(plan.NewDistinct(child.Left), plan.NewDistinct(child.Right))), nil
		default:
			return n, nil
		}
	})
}
