package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// ProjectionPushdown is strategy 7: compute the minimum column set
// needed at each node and prune reads (§4.2). Narrowing a Scan's
// column set changes its output schema's column *positions*, which
// would silently break any GetField further up the tree that still
// indexes by the old, wider schema — so this pass only fires on the
// one shape it can renumber soundly in the same step: a Project
// (optionally with a Filter between it and the scan, already handled
// by predicate pushdown folding the filter onto Scan.PushedPredicates
// by this point in the pipeline) sitting directly over a Scan. Any
// other shape is left unchanged rather than risk a silent
// misindexing.
type ProjectionPushdown struct{}

func (p *ProjectionPushdown) Name() string { return "projection_pushdown" }

func (p *ProjectionPushdown) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		proj, ok := n.(*plan.Project)
		if !ok {
			return n, nil
		}
		scan, ok := proj.Child.(*plan.Scan)
		if !ok || !scan.Conn.Capabilities().SupportsProjectionPushdown {
			return n, nil
		}

		refs := map[int]bool{}
		for _, e := range proj.Projections {
			columnIndices(e, refs)
		}
		if len(refs) == 0 || len(refs) >= len(scan.ProjectedColumns) {
			return n, nil
		}

		oldToNew := make(map[int]int, len(refs))
		names := make([]string, 0, len(refs))
		for idx := 0; idx < len(scan.ProjectedColumns); idx++ {
			if refs[idx] {
				oldToNew[idx] = len(names)
				names = append(names, scan.ProjectedColumns[idx])
			}
		}

		narrowedScan := scan.WithPushdown(nil, names, nil)
		newProjections := make([]sql.Expression, len(proj.Projections))
		for i, e := range proj.Projections {
			renumbered, err := transform.TransformExprUp(e, func(expr sql.Expression) (sql.Expression, error) {
				gf, isGF := expr.(*expression.GetField)
				if !isGF {
					return expr, nil
				}
				return expression.NewGetField(oldToNew[gf.Index()], gf.Type(), gf.Name(), gf.Nullable()), nil
			})
			if err != nil {
				ctx.Warn(p.Name(), err.Error())
				return n, nil
			}
			newProjections[i] = renumbered
		}
		return plan.NewProject(newProjections, proj.Names, narrowedScan), nil
	})
}
