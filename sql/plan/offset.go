package plan

import "github.com/mabel-dev/opteryx/sql"

// Offset skips a number of leading rows from its child before any
// downstream Limit is applied (§3.3). Offset and Limit are kept as
// distinct node kinds rather than one node with two fields, so a plan
// can carry one without the other. No optimizer strategy moves an
// Offset.
type Offset struct {
	id    int64
	Count int64
	Child sql.Node
}

// NewOffset builds an Offset node.
func NewOffset(count int64, child sql.Node) *Offset {
	return &Offset{id: sql.NextNodeID(), Count: count, Child: child}
}

func (o *Offset) ID() int64            { return o.id }
func (o *Offset) Children() []sql.Node { return []sql.Node{o.Child} }
func (o *Offset) Schema() sql.Schema   { return o.Child.Schema() }

func (o *Offset) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Offset", 1, len(children))
	}
	return &Offset{id: o.id, Count: o.Count, Child: children[0]}, nil
}

func (o *Offset) String() string {
	return "Offset()"
}
