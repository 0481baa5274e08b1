package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// JoinOrdering is strategy 9: reorder pairwise joins using table-size
// heuristics, putting the smaller estimated side first as the hash
// build side (§4.2 "smaller build side first for hash joins").
// CrossJoin, Semi/Anti, and the outer join kinds keep their original
// side order: only InnerJoin's build side is a free choice (swapping
// an outer join's sides would change NULL-fill semantics, and
// semi/anti already define which side is "probe" vs "build" by their
// own structure).
type JoinOrdering struct{}

func (j *JoinOrdering) Name() string { return "join_ordering" }

func (j *JoinOrdering) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		join, ok := n.(*plan.Join)
		if !ok || join.Type != plan.InnerJoinType {
			return n, nil
		}
		leftSize := planRowEstimate(ctx, join.Left)
		rightSize := planRowEstimate(ctx, join.Right)
		if leftSize < 0 || rightSize < 0 || leftSize <= rightSize {
			return n, nil
		}
		swapped, err := swapJoinSides(join)
		if err != nil {
			ctx.Warn(j.Name(), err.Error())
			return n, nil
		}
		return swapped, nil
	})
}

// swapJoinSides builds an equivalent InnerJoin with left/right
// swapped so the executor's hash build phase sees the smaller side
// first; the join condition's GetFields are renumbered for the new
// column layout (right's columns now occupy the first len(right)
// slots).
func swapJoinSides(join *plan.Join) (*plan.Join, error) {
	leftWidth := len(join.Left.Schema())
	rightWidth := len(join.Right.Schema())
	renumbered, err := renumberSwappedSides(join.Condition, leftWidth, rightWidth)
	if err != nil {
		return nil, err
	}
	return plan.NewInnerJoin(join.Right, join.Left, renumbered), nil
}
