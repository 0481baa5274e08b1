package plan

import "github.com/mabel-dev/opteryx/sql"

// Filter applies a boolean predicate to its child's rows (§3.3). The
// optimizer's split-conjunctive-predicates strategy (§4.2 strategy 3)
// may turn one Filter with an AND-predicate into a chain of two
// Filters to maximise pushdown, and its redundant-elimination
// strategy (§4.2 strategy 14) removes a Filter whose predicate has
// folded to the literal TRUE.
type Filter struct {
	id        int64
	Predicate sql.Expression
	Child     sql.Node
}

// NewFilter builds a Filter node.
func NewFilter(predicate sql.Expression, child sql.Node) *Filter {
	return &Filter{id: sql.NextNodeID(), Predicate: predicate, Child: child}
}

func (f *Filter) ID() int64            { return f.id }
func (f *Filter) Children() []sql.Node { return []sql.Node{f.Child} }
func (f *Filter) Schema() sql.Schema   { return f.Child.Schema() }

func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Filter", 1, len(children))
	}
	return &Filter{id: f.id, Predicate: f.Predicate, Child: children[0]}, nil
}

// WithPredicate returns a copy of f with a different predicate,
// preserving its node id — used by constant-folding and
// predicate-rewrite strategies that replace the predicate in place.
func (f *Filter) WithPredicate(predicate sql.Expression) *Filter {
	return &Filter{id: f.id, Predicate: predicate, Child: f.Child}
}

func (f *Filter) String() string {
	return "Filter(" + f.Predicate.String() + ")"
}
