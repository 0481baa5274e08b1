package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// splitConjuncts flattens a right-leaning or left-leaning tree of AND
// expressions into its leaf conjuncts (§4.2 strategy 3).
func splitConjuncts(e sql.Expression) []sql.Expression {
	logic, ok := e.(*expression.Logic)
	if !ok || logic.Op() != expression.And {
		return []sql.Expression{e}
	}
	out := splitConjuncts(logic.Left())
	out = append(out, splitConjuncts(logic.Right())...)
	return out
}

// joinConjuncts rebuilds a single AND-expression from a conjunct list;
// it is the inverse of splitConjuncts, used by strategies that need to
// hand a connector (or a Filter node) one combined predicate.
func joinConjuncts(conjuncts []sql.Expression) sql.Expression {
	if len(conjuncts) == 0 {
		return nil
	}
	out := conjuncts[0]
	for _, c := range conjuncts[1:] {
		out = expression.NewAnd(out, c)
	}
	return out
}

// literalBool reports whether e is a boolean Literal and its value.
func literalBool(e sql.Expression) (value bool, isNull bool, ok bool) {
	lit, isLit := e.(*expression.Literal)
	if !isLit || lit.Type() != sql.Bool {
		return false, false, false
	}
	if lit.Value() == nil {
		return false, true, true
	}
	b, _ := lit.Value().(bool)
	return b, false, true
}

// columnIndices collects the set of GetField indices referenced
// anywhere in expr, used by projection pushdown to compute the
// minimum column set a node needs.
func columnIndices(expr sql.Expression, into map[int]bool) {
	if gf, ok := expr.(*expression.GetField); ok {
		into[gf.Index()] = true
		return
	}
	transform.InspectExpr(expr, func(e sql.Expression) bool {
		if gf, ok := e.(*expression.GetField); ok {
			into[gf.Index()] = true
		}
		return true
	})
}

// isAllLiterals reports whether every child of expr is a Literal,
// meaning expr itself is foldable by constant folding.
func isAllLiterals(expr sql.Expression) bool {
	for _, c := range expr.Children() {
		if _, ok := c.(*expression.Literal); !ok {
			return false
		}
	}
	return true
}

// renumberSwappedSides rewrites a join condition's GetField indices
// for a left/right side swap: old indices [0, leftWidth) (the former
// left side) move to [rightWidth, rightWidth+leftWidth), and old
// indices [leftWidth, leftWidth+rightWidth) (the former right side)
// move to [0, rightWidth).
func renumberSwappedSides(cond sql.Expression, leftWidth, rightWidth int) (sql.Expression, error) {
	return transform.TransformExprUp(cond, func(e sql.Expression) (sql.Expression, error) {
		gf, ok := e.(*expression.GetField)
		if !ok {
			return e, nil
		}
		var newIdx int
		if gf.Index() < leftWidth {
			newIdx = gf.Index() + rightWidth
		} else {
			newIdx = gf.Index() - leftWidth
		}
		return expression.NewGetField(newIdx, gf.Type(), gf.Name(), gf.Nullable()), nil
	})
}

// planRowEstimate returns a heuristic row-count estimate for a plan
// subtree, used by join ordering (§4.2 strategy 9). Scans look up
// ctx.TableRowCounts; anything else returns -1 (unknown).
func planRowEstimate(ctx *Context, node sql.Node) int64 {
	switch n := node.(type) {
	case *plan.Scan:
		if c, ok := ctx.TableRowCounts[n.TableName]; ok {
			return c
		}
		return -1
	default:
		return -1
	}
}
