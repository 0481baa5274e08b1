package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// JoinRewrite is strategy 8 (§4.2): it promotes a Filter whose
// predicate is an equality between one column from each side of the
// CrossJoin directly beneath it to an InnerJoin on that equality.
// It does not rewrite outer joins whose other side is empty (a
// Limit(0) or Filter(FALSE) child): every join other than that
// Filter-over-CrossJoin shape is left unchanged.
type JoinRewrite struct{}

func (j *JoinRewrite) Name() string { return "join_rewrite" }

func (j *JoinRewrite) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		f, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		cj, ok := f.Child.(*plan.Join)
		if !ok || cj.Type != plan.CrossJoinType {
			return n, nil
		}
		cmp, ok := f.Predicate.(*expression.Comparison)
		if !ok || cmp.Op() != expression.Eq {
			return n, nil
		}
		leftGF, leftOK := cmp.Left().(*expression.GetField)
		rightGF, rightOK := cmp.Right().(*expression.GetField)
		if !leftOK || !rightOK {
			return n, nil
		}
		leftWidth := len(cj.Left.Schema())
		onDifferentSides := (leftGF.Index() < leftWidth) != (rightGF.Index() < leftWidth)
		if !onDifferentSides {
			return n, nil
		}
		return plan.NewInnerJoin(cj.Left, cj.Right, cmp), nil
	})
}
