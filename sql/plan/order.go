package plan

import "github.com/mabel-dev/opteryx/sql"

// SortField is one ORDER BY term.
type SortField struct {
	Expr       sql.Expression
	Descending bool
	NullsFirst bool
}

// Order sorts its child's rows by a sequence of SortFields (§3.3).
// Ties are broken in the child's emission order (a stable sort),
// matching the build-insertion-order tie-break used elsewhere in the
// executor (§4.7).
type Order struct {
	id     int64
	Fields []SortField
	Child  sql.Node
}

// NewOrder builds an Order node.
func NewOrder(fields []SortField, child sql.Node) *Order {
	return &Order{id: sql.NextNodeID(), Fields: fields, Child: child}
}

func (o *Order) ID() int64            { return o.id }
func (o *Order) Children() []sql.Node { return []sql.Node{o.Child} }
func (o *Order) Schema() sql.Schema   { return o.Child.Schema() }

func (o *Order) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Order", 1, len(children))
	}
	return &Order{id: o.id, Fields: o.Fields, Child: children[0]}, nil
}

func (o *Order) String() string {
	return "Order(...)"
}
