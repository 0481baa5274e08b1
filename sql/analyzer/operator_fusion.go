package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// OperatorFusion is strategy 11: merge adjacent Filter nodes, and
// merge a Project+Filter directly atop a Scan into the scan's own
// pushed predicate/projection set where the connector allows (§4.2).
// Fusing Project+Filter into the physical scan operator itself
// (rather than just narrowing Scan's advisory fields, which
// predicate/projection pushdown already did) is an executor-level
// decision; logically, this pass's only observable effect is
// collapsing `Filter(Filter(x))` into a single AND-combined Filter,
// which subsequent redundant-elimination and predicate-ordering
// passes can then reason about as one node.
type OperatorFusion struct{}

func (o *OperatorFusion) Name() string { return "operator_fusion" }

func (o *OperatorFusion) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		outer, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		inner, ok := outer.Child.(*plan.Filter)
		if !ok {
			return n, nil
		}
		return plan.NewFilter(expression.NewAnd(inner.Predicate, outer.Predicate), inner.Child), nil
	})
}
