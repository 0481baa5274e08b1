package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// SplitConjunctivePredicates is strategy 3: break `A AND B` at filter
// boundaries into a chain of two Filters, maximising how far each
// conjunct can individually be pushed down later in the pipeline
// (§4.2). It is the mechanical inverse of the later
// redundant-elimination pass, which never re-merges split filters —
// the chain survives to execution and operator fusion (strategy 11)
// may re-fuse adjacent Filters into one physical check.
type SplitConjunctivePredicates struct{}

func (s *SplitConjunctivePredicates) Name() string { return "split_conjunctive_predicates" }

func (s *SplitConjunctivePredicates) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		f, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		conjuncts := splitConjuncts(f.Predicate)
		if len(conjuncts) <= 1 {
			return n, nil
		}
		// Rebuild as a chain, innermost (closest to the child) first,
		// so later pushdown strategies can independently relocate each
		// conjunct's Filter.
		current := f.Child
		for _, c := range conjuncts {
			current = plan.NewFilter(c, current)
		}
		return current, nil
	})
}
