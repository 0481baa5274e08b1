package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// CorrelatedFilterLifting is strategy 4: identify equality
// correlations across subqueries and surface them as join predicates
// where legal (§4.2). The shape this recognises is a Join whose
// condition is itself wrapped in an extra Filter above it — the
// planner's lowering of a correlated `EXISTS`/scalar subquery
// sometimes leaves the correlation predicate as a Filter sitting
// above a CrossJoin rather than folded into the join condition
// directly. When the Filter's predicate is a simple equality between
// one column from each side of the CrossJoin immediately beneath it,
// this strategy folds it into the join as an equi-join condition and
// drops the Filter, matching what join rewrite (strategy 8) would
// otherwise have to discover by itself. Any other shape — in
// particular a correlation that reaches through a plan.Subquery
// boundary where the outer relation is not a direct sibling — is left
// unchanged, per §4.2's failure semantics; only an equality over a
// CrossJoin whose operands are not both column references is also
// recorded as a warning. Deeper subquery decorrelation is not
// attempted by this pass.
type CorrelatedFilterLifting struct{}

func (c *CorrelatedFilterLifting) Name() string { return "correlated_filter_lifting" }

func (c *CorrelatedFilterLifting) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		f, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		join, ok := f.Child.(*plan.Join)
		if !ok || join.Type != plan.CrossJoinType {
			return n, nil
		}
		cmp, ok := f.Predicate.(*expression.Comparison)
		if !ok || cmp.Op() != expression.Eq {
			return n, nil
		}
		leftGF, leftOK := cmp.Left().(*expression.GetField)
		rightGF, rightOK := cmp.Right().(*expression.GetField)
		if !leftOK || !rightOK {
			ctx.Warn(c.Name(), "correlation predicate is not a simple column equality; left unlifted")
			return n, nil
		}
		leftWidth := len(join.Left.Schema())
		crossesSides := (leftGF.Index() < leftWidth) != (rightGF.Index() < leftWidth)
		if !crossesSides {
			return n, nil
		}
		return plan.NewInnerJoin(join.Left, join.Right, cmp), nil
	})
}
