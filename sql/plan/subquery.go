package plan

import "github.com/mabel-dev/opteryx/sql"

// Subquery wraps a plan used as a derived table in a FROM clause,
// exposing it under Alias (§3.3). Unlike CommonTableExpression it is
// not shared: each FROM-clause subquery gets its own Subquery node
// even if textually identical to another.
type Subquery struct {
	id     int64
	Alias  string
	Target sql.Node
	schema sql.Schema
}

// NewSubquery builds a Subquery node whose schema is a copy of
// target's output schema; column names are kept as they are and are
// not qualified with alias.
func NewSubquery(alias string, target sql.Node) *Subquery {
	childSchema := target.Schema()
	schema := make(sql.Schema, len(childSchema))
	for i, c := range childSchema {
		nc := *c
		schema[i] = &nc
	}
	return &Subquery{id: sql.NextNodeID(), Alias: alias, Target: target, schema: schema}
}

func (s *Subquery) ID() int64            { return s.id }
func (s *Subquery) Children() []sql.Node { return []sql.Node{s.Target} }
func (s *Subquery) Schema() sql.Schema   { return s.schema }

func (s *Subquery) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Subquery", 1, len(children))
	}
	ns := NewSubquery(s.Alias, children[0])
	ns.id = s.id
	return ns, nil
}

func (s *Subquery) String() string {
	return "Subquery(" + s.Alias + ")"
}
