package plan

import "github.com/mabel-dev/opteryx/sql"

// Explain wraps a plan and, instead of executing it for its rows,
// renders the plan tree (and, when Analyze is set, the per-operator
// statistics gathered by actually running it — §6.3 QueryStats) as a
// single text column (§5 EXPLAIN extension).
type Explain struct {
	id      int64
	Target  sql.Node
	Analyze bool
	schema  sql.Schema
}

var explainSchema = sql.Schema{{Name: "plan", Type: sql.String}}

// NewExplain builds an Explain node over target.
func NewExplain(target sql.Node, analyze bool) *Explain {
	return &Explain{id: sql.NextNodeID(), Target: target, Analyze: analyze, schema: explainSchema}
}

func (e *Explain) ID() int64            { return e.id }
func (e *Explain) Children() []sql.Node { return []sql.Node{e.Target} }
func (e *Explain) Schema() sql.Schema   { return e.schema }

func (e *Explain) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Explain", 1, len(children))
	}
	return &Explain{id: e.id, Target: children[0], Analyze: e.Analyze, schema: e.schema}, nil
}

func (e *Explain) String() string {
	if e.Analyze {
		return "Explain(Analyze, " + e.Target.String() + ")"
	}
	return "Explain(" + e.Target.String() + ")"
}
