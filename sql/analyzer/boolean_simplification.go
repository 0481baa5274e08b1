package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// BooleanSimplification is strategy 2: De Morgan's normalization,
// double-negation removal, and flattening of nested AND/OR chains
// is implicit in how splitConjuncts/joinConjuncts treat the tree, so
// this strategy focuses on NOT(NOT x) = x and NOT(a AND b) = NOT a OR
// NOT b / NOT(a OR b) = NOT a AND NOT b (§4.2).
type BooleanSimplification struct{}

func (b *BooleanSimplification) Name() string { return "boolean_simplification" }

func (b *BooleanSimplification) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		if f, ok := n.(*plan.Filter); ok {
			simplified, err := transform.TransformExprUp(f.Predicate, simplifyBoolean)
			if err != nil {
				ctx.Warn(b.Name(), err.Error())
				return n, nil
			}
			return f.WithPredicate(simplified), nil
		}
		return n, nil
	})
}

func simplifyBoolean(e sql.Expression) (sql.Expression, error) {
	not, ok := e.(*expression.Not)
	if !ok {
		return e, nil
	}
	switch child := not.Child().(type) {
	case *expression.Not:
		// NOT(NOT x) = x
		return child.Child(), nil
	case *expression.Logic:
		// De Morgan's: NOT(a AND b) = NOT a OR NOT b, and the dual.
		negLeft := expression.NewNot(child.Left())
		negRight := expression.NewNot(child.Right())
		if child.Op() == expression.And {
			return expression.NewOr(negLeft, negRight), nil
		}
		return expression.NewAnd(negLeft, negRight), nil
	default:
		return e, nil
	}
}
