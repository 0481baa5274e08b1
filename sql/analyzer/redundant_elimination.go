package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// RedundantElimination is strategy 14: remove identity projections,
// no-op sorts, empty unions, and duplicate distinct (§4.2).
type RedundantElimination struct{}

func (r *RedundantElimination) Name() string { return "redundant_elimination" }

func (r *RedundantElimination) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		switch node := n.(type) {
		case *plan.Project:
			if node.IsIdentity() {
				return node.Child, nil
			}
			return n, nil
		case *plan.Filter:
			if lit, ok := node.Predicate.(*expression.Literal); ok && lit.Type() == sql.Bool && lit.Value() == true {
				return node.Child, nil
			}
			if compacted := compactRedundantRanges(node.Predicate); compacted != node.Predicate {
				return node.WithPredicate(compacted), nil
			}
			return n, nil
		case *plan.Order:
			if len(node.Fields) == 0 {
				return node.Child, nil
			}
			return n, nil
		case *plan.Distinct:
			// Duplicate distinct: DISTINCT(DISTINCT(x)) = DISTINCT(x).
			if inner, ok := node.Child.(*plan.Distinct); ok && node.On == nil && inner.On == nil {
				return inner, nil
			}
			return n, nil
		case *plan.Union:
			if isEmptyRelation(node.Left) {
				return node.Right, nil
			}
			if isEmptyRelation(node.Right) {
				return node.Left, nil
			}
			return n, nil
		default:
			return n, nil
		}
	})
}

// isEmptyRelation recognises a Limit(0, ...) child as a provably
// empty relation, the shape constant folding or a degenerate query
// leaves behind.
func isEmptyRelation(n sql.Node) bool {
	lim, ok := n.(*plan.Limit)
	return ok && lim.Count == 0
}

// compactRedundantRanges implements §8 S8's range compaction: among a
// Filter's conjuncts, when two are the same comparison direction
// (both a lower bound or both an upper bound) against the same column
// and a literal, only the tighter bound can ever matter, so the
// looser one is dropped. `x > 5 AND x > 10` compacts to `x > 10`.
func compactRedundantRanges(predicate sql.Expression) sql.Expression {
	conjuncts := splitConjuncts(predicate)
	if len(conjuncts) <= 1 {
		return predicate
	}
	kept := make([]sql.Expression, 0, len(conjuncts))
	for _, c := range conjuncts {
		cmp, col, lit, ok := asColumnLiteralComparison(c)
		if !ok {
			kept = append(kept, c)
			continue
		}
		replacedExisting := false
		for i, k := range kept {
			ocmp, ocol, olit, oOK := asColumnLiteralComparison(k)
			if !oOK || ocol != col || !sameBoundDirection(cmp.Op(), ocmp.Op()) {
				continue
			}
			if tighterBound(cmp.Op(), lit, olit) {
				kept[i] = c
			}
			replacedExisting = true
			break
		}
		if !replacedExisting {
			kept = append(kept, c)
		}
	}
	return joinConjuncts(kept)
}

func asColumnLiteralComparison(e sql.Expression) (cmp *expression.Comparison, colIndex int, lit *expression.Literal, ok bool) {
	cmp, isCmp := e.(*expression.Comparison)
	if !isCmp {
		return nil, 0, nil, false
	}
	if gf, gfOK := cmp.Left().(*expression.GetField); gfOK {
		if l, litOK := cmp.Right().(*expression.Literal); litOK {
			return cmp, gf.Index(), l, true
		}
	}
	return nil, 0, nil, false
}

func sameBoundDirection(a, b expression.CompareOp) bool {
	lower := func(op expression.CompareOp) bool { return op == expression.Gt || op == expression.Gte }
	upper := func(op expression.CompareOp) bool { return op == expression.Lt || op == expression.Lte }
	return (lower(a) && lower(b)) || (upper(a) && upper(b))
}

// tighterBound reports whether candidate's literal bound is strictly
// tighter than existing's, for same-direction comparisons.
func tighterBound(op expression.CompareOp, candidate, existing *expression.Literal) bool {
	cv, cok := numericValue(candidate.Value())
	ev, eok := numericValue(existing.Value())
	if !cok || !eok {
		return false
	}
	if op == expression.Gt || op == expression.Gte {
		return cv > ev
	}
	return cv < ev
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
