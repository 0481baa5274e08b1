package plan

import "github.com/mabel-dev/opteryx/sql"

// Limit caps the number of rows its child emits (§3.3). The
// optimizer's limit-pushdown strategy (§4.2 strategy 12) may move a
// Limit below a Project. No strategy combines a Limit with an Order;
// the Order below a Limit still sorts its whole input.
type Limit struct {
	id    int64
	Count int64
	Child sql.Node
}

// NewLimit builds a Limit node.
func NewLimit(count int64, child sql.Node) *Limit {
	return &Limit{id: sql.NextNodeID(), Count: count, Child: child}
}

func (l *Limit) ID() int64            { return l.id }
func (l *Limit) Children() []sql.Node { return []sql.Node{l.Child} }
func (l *Limit) Schema() sql.Schema   { return l.Child.Schema() }

func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Limit", 1, len(children))
	}
	return &Limit{id: l.id, Count: l.Count, Child: children[0]}, nil
}

func (l *Limit) String() string {
	return "Limit()"
}
