package plan

import "github.com/mabel-dev/opteryx/sql"

// CommonTableExpression is a named, shared subplan (§4.1 "each WITH
// binding becomes a CommonTableExpression subplan whose reference
// count is tracked"). Multiple references to the same WITH binding
// share the single *CommonTableExpression instance — the plan is a
// DAG, not a tree — so the executor's builder must compile it once
// and fan its output out, rather than re-executing it per reference.
type CommonTableExpression struct {
	id          int64
	Name        string
	Subplan     sql.Node
	RefCount    int
}

// NewCommonTableExpression builds a CTE node wrapping subplan.
func NewCommonTableExpression(name string, subplan sql.Node) *CommonTableExpression {
	return &CommonTableExpression{id: sql.NextNodeID(), Name: name, Subplan: subplan, RefCount: 0}
}

// Reference records one more use of this CTE within the statement and
// returns a lightweight CTERef node pointing back at it; it does not
// copy the subplan.
func (c *CommonTableExpression) Reference() *CTERef {
	c.RefCount++
	return &CTERef{id: sql.NextNodeID(), CTE: c}
}

func (c *CommonTableExpression) ID() int64            { return c.id }
func (c *CommonTableExpression) Children() []sql.Node { return []sql.Node{c.Subplan} }
func (c *CommonTableExpression) Schema() sql.Schema   { return c.Subplan.Schema() }

func (c *CommonTableExpression) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("CommonTableExpression", 1, len(children))
	}
	return &CommonTableExpression{id: c.id, Name: c.Name, Subplan: children[0], RefCount: c.RefCount}, nil
}

func (c *CommonTableExpression) String() string {
	return "CommonTableExpression(" + c.Name + ")"
}

// CTERef is a zero-child leaf pointing at a shared CommonTableExpression
// node. The rewrite framework in sql/transform treats it as a leaf
// (Children() returns nil), so a TransformUp/TransformDown/Inspect
// pass never descends into the CTE's subplan through a reference. The
// planner puts only CTERefs into the plan tree, not the
// CommonTableExpression itself, so those passes do not visit a CTE's
// subplan at all.
type CTERef struct {
	id  int64
	CTE *CommonTableExpression
}

func (r *CTERef) ID() int64            { return r.id }
func (r *CTERef) Children() []sql.Node { return nil }
func (r *CTERef) Schema() sql.Schema   { return r.CTE.Schema() }

func (r *CTERef) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, ErrChildCount.New("CTERef", 0, len(children))
	}
	return r, nil
}

func (r *CTERef) String() string {
	return "CTERef(" + r.CTE.Name + ")"
}
