package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// PredicateRewrite is strategy 5: canonicalise predicate shapes so
// every later strategy only has to reason about one normal form
// (§4.2): `col IN (v)` with a single value becomes `col = v`, `NOT (a
// = b)` becomes `a <> b`, and `col BETWEEN x AND y` — represented in
// this engine's expression tree as a pair of Comparisons already
// rather than a dedicated Between node — is left as-is since there is
// no separate node kind to canonicalise away.
type PredicateRewrite struct{}

func (p *PredicateRewrite) Name() string { return "predicate_rewrite" }

func (p *PredicateRewrite) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		f, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		rewritten, err := transform.TransformExprUp(f.Predicate, rewritePredicate)
		if err != nil {
			ctx.Warn(p.Name(), err.Error())
			return n, nil
		}
		return f.WithPredicate(rewritten), nil
	})
}

func rewritePredicate(e sql.Expression) (sql.Expression, error) {
	switch expr := e.(type) {
	case *expression.InList:
		// col IN (v) with exactly one value ⇒ col = v.
		if !expr.Negated() && len(expr.Values()) == 1 {
			return expression.NewEquals(expr.Target(), expr.Values()[0]), nil
		}
		if expr.Negated() && len(expr.Values()) == 1 {
			return expression.NewComparison(expression.Ne, expr.Target(), expr.Values()[0]), nil
		}
		return e, nil
	case *expression.Not:
		if cmp, ok := expr.Child().(*expression.Comparison); ok && cmp.Op() == expression.Eq {
			// NOT (a = b) ⇒ a <> b.
			return expression.NewComparison(expression.Ne, cmp.Left(), cmp.Right()), nil
		}
		return e, nil
	default:
		return e, nil
	}
}
