package plan

import "github.com/mabel-dev/opteryx/sql"

// Union concatenates rows from two children with identical schemas
// (§3.3). Deduplication, if requested by `UNION` (as opposed to
// `UNION ALL`), is represented as a Distinct wrapping the Union rather
// than a flag on this node.
type Union struct {
	id    int64
	Left  sql.Node
	Right sql.Node
}

// NewUnion builds a Union node. Callers are responsible for ensuring
// Left and Right report compatible schemas; the analyzer's type
// checking pass does not currently widen mismatched column types
// across a Union.
func NewUnion(left, right sql.Node) *Union {
	return &Union{id: sql.NextNodeID(), Left: left, Right: right}
}

func (u *Union) ID() int64            { return u.id }
func (u *Union) Children() []sql.Node { return []sql.Node{u.Left, u.Right} }
func (u *Union) Schema() sql.Schema   { return u.Left.Schema() }

func (u *Union) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, ErrChildCount.New("Union", 2, len(children))
	}
	return &Union{id: u.id, Left: children[0], Right: children[1]}, nil
}

func (u *Union) String() string {
	return "Union(" + u.Left.String() + ", " + u.Right.String() + ")"
}
