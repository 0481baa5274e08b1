package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// LimitPushdown is strategy 12 (§4.2): a Limit directly above a
// Project is moved below that Project. A Limit above any other node —
// an Order, an aggregate, a join, a scan — stays where it is; this
// pass never crosses a blocking operator and does not push a limit
// into a connector's read.
type LimitPushdown struct{}

func (l *LimitPushdown) Name() string { return "limit_pushdown" }

func (l *LimitPushdown) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformDown(root, func(n sql.Node) (sql.Node, error) {
		lim, ok := n.(*plan.Limit)
		if !ok {
			return n, nil
		}
		child, ok := lim.Child.(*plan.Project)
		if !ok {
			// A Limit over anything but a Project (an Order included)
			// is left as-is; the sort operator still sorts its whole
			// input.
			return n, nil
		}
		return plan.NewProject(child.Projections, child.Names, plan.NewLimit(lim.Count, child.Child)), nil
	})
}
