package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// PredicatePushdown is strategy 6: propagate filters down through
// projections, joins (into the appropriate side by column
// provenance), and UNION-ALL branches, and expose capability-gated
// predicates to connectors (§4.2). It works top-down so a predicate
// pushed through one barrier is immediately eligible to be pushed
// through the next.
type PredicatePushdown struct{}

func (p *PredicatePushdown) Name() string { return "predicate_pushdown" }

func (p *PredicatePushdown) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformDown(root, func(n sql.Node) (sql.Node, error) {
		f, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		switch child := f.Child.(type) {
		case *plan.Project:
			// Push through a pure column-selecting projection by
			// rewriting the predicate's GetFields in terms of the
			// projection's own input expressions.
			rewritten, ok := rewriteThroughProject(f.Predicate, child)
			if !ok {
				return n, nil
			}
			return plan.NewProject(child.Projections, child.Names, plan.NewFilter(rewritten, child.Child)), nil
		case *plan.Union:
			// A filter above a UNION applies independently, and
			// identically, to both branches.
			return plan.NewUnion(
				plan.NewFilter(f.Predicate, child.Left),
				plan.NewFilter(f.Predicate, child.Right),
			), nil
		case *plan.Join:
			return pushIntoJoin(ctx, p.Name(), f.Predicate, child)
		case *plan.Scan:
			if !child.Conn.Capabilities().SupportsPredicatePushdown {
				return n, nil
			}
			pushed := append(append([]sql.Expression{}, child.PushedPredicates...), f.Predicate)
			return child.WithPushdown(pushed, nil, nil), nil
		default:
			return n, nil
		}
	})
}

// pushIntoJoin relocates a predicate into whichever side of a join
// provides every column it references, by GetField-index provenance;
// a predicate referencing columns from both sides stays above the
// join.
func pushIntoJoin(ctx *Context, strategyName string, predicate sql.Expression, join *plan.Join) (sql.Node, error) {
	leftWidth := len(join.Left.Schema())
	refs := map[int]bool{}
	columnIndices(predicate, refs)
	if len(refs) == 0 {
		return join, nil
	}
	allLeft, allRight := true, true
	for idx := range refs {
		if idx >= leftWidth {
			allLeft = false
		} else {
			allRight = false
		}
	}
	switch {
	case allLeft && join.Type != plan.RightOuterJoinType && join.Type != plan.FullOuterJoinType:
		nj, err := join.WithChildren(plan.NewFilter(predicate, join.Left), join.Right)
		if err != nil {
			ctx.Warn(strategyName, err.Error())
			return plan.NewFilter(predicate, join), nil
		}
		return nj, nil
	case allRight && join.Type != plan.LeftOuterJoinType && join.Type != plan.FullOuterJoinType:
		shifted, ok := shiftLeft(predicate, leftWidth)
		if !ok {
			return plan.NewFilter(predicate, join), nil
		}
		nj, err := join.WithChildren(join.Left, plan.NewFilter(shifted, join.Right))
		if err != nil {
			ctx.Warn(strategyName, err.Error())
			return plan.NewFilter(predicate, join), nil
		}
		return nj, nil
	default:
		return plan.NewFilter(predicate, join), nil
	}
}

// shiftLeft rewrites every GetField index in predicate down by
// leftWidth, for a predicate being relocated onto a join's right
// child (whose own schema starts at index 0, not leftWidth).
func shiftLeft(predicate sql.Expression, leftWidth int) (sql.Expression, bool) {
	ok := true
	shifted, err := transform.TransformExprUp(predicate, func(e sql.Expression) (sql.Expression, error) {
		gf, isGF := e.(*expression.GetField)
		if !isGF {
			return e, nil
		}
		if gf.Index() < leftWidth {
			ok = false
			return e, nil
		}
		return expression.NewGetField(gf.Index()-leftWidth, gf.Type(), gf.Name(), gf.Nullable()), nil
	})
	if err != nil || !ok {
		return predicate, false
	}
	return shifted, true
}

// rewriteThroughProject rewrites predicate's GetFields from
// project-output indices to project-input expressions, succeeding
// only when every referenced projection is itself a plain column
// reference (pushing a filter through a computed expression is not a
// pure relocation and is left to the optimizer's next pass, if any).
func rewriteThroughProject(predicate sql.Expression, project *plan.Project) (sql.Expression, bool) {
	ok := true
	rewritten, err := transform.TransformExprUp(predicate, func(e sql.Expression) (sql.Expression, error) {
		gf, isGF := e.(*expression.GetField)
		if !isGF {
			return e, nil
		}
		if gf.Index() >= len(project.Projections) {
			ok = false
			return e, nil
		}
		src, isGF2 := project.Projections[gf.Index()].(*expression.GetField)
		if !isGF2 {
			ok = false
			return e, nil
		}
		return src, nil
	})
	if err != nil || !ok {
		return predicate, false
	}
	return rewritten, true
}
