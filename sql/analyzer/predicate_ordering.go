package analyzer

import (
	"sort"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// PredicateOrdering is strategy 13: sort a Filter's conjuncts by
// estimated cost ascending, cheap/high-selectivity first (§4.2). Cost
// is a simple static heuristic over expression shape, since this
// engine carries no column histograms: an equality comparison is
// assumed cheapest (typically highly selective), then other
// comparisons, then IN lists, then everything else (function calls,
// IS NULL and the like), then LIKE/regex last (scans string bytes per
// row). NOT costs what its operand costs; an AND/OR costs the sum of
// its two sides.
type PredicateOrdering struct{}

func (p *PredicateOrdering) Name() string { return "predicate_ordering" }

func (p *PredicateOrdering) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		f, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		conjuncts := splitConjuncts(f.Predicate)
		if len(conjuncts) <= 1 {
			return n, nil
		}
		sort.SliceStable(conjuncts, func(i, j int) bool {
			return predicateCost(conjuncts[i]) < predicateCost(conjuncts[j])
		})
		return f.WithPredicate(joinConjuncts(conjuncts)), nil
	})
}

func predicateCost(e sql.Expression) int {
	switch expr := e.(type) {
	case *expression.Comparison:
		if expr.Op() == expression.Eq {
			return 1
		}
		return 2
	case *expression.InList:
		return 3
	case *expression.Like:
		return 5
	case *expression.Not:
		return predicateCost(expr.Child())
	case *expression.Logic:
		return predicateCost(expr.Left()) + predicateCost(expr.Right())
	default:
		return 4
	}
}
