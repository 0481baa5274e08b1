package plan

import "github.com/mabel-dev/opteryx/sql"

// Distinct removes duplicate rows from its child, keyed by the hash of
// every output column unless On is set (the `DISTINCT ON` form), in
// which case only those expressions participate in the key (§3.3).
// The optimizer's distinct-pushdown strategy (§4.2 strategy 10) may
// move a Distinct below a Project when the projection is injective on
// the pushed columns.
type Distinct struct {
	id    int64
	On    []sql.Expression // nil means "all columns"
	Child sql.Node
}

// NewDistinct builds a Distinct node over every output column of child.
func NewDistinct(child sql.Node) *Distinct {
	return &Distinct{id: sql.NextNodeID(), Child: child}
}

// NewDistinctOn builds a `DISTINCT ON (on...)` node.
func NewDistinctOn(on []sql.Expression, child sql.Node) *Distinct {
	return &Distinct{id: sql.NextNodeID(), On: on, Child: child}
}

func (d *Distinct) ID() int64            { return d.id }
func (d *Distinct) Children() []sql.Node { return []sql.Node{d.Child} }
func (d *Distinct) Schema() sql.Schema   { return d.Child.Schema() }

func (d *Distinct) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Distinct", 1, len(children))
	}
	return &Distinct{id: d.id, On: d.On, Child: children[0]}, nil
}

func (d *Distinct) String() string {
	if d.On != nil {
		return "DistinctOn(...)"
	}
	return "Distinct()"
}
