package plan

import "github.com/mabel-dev/opteryx/sql"

// AggregateAndGroup performs two-phase group-by aggregation (§4.6):
// GroupBy partitions rows by the hash of its key expressions, and
// Aggregates evaluates one sql.Aggregation per output column against
// each group's rows. An empty GroupBy aggregates the whole morsel
// stream into a single group, matching standard SQL scalar aggregates.
type AggregateAndGroup struct {
	id         int64
	GroupBy    []sql.Expression
	Aggregates []sql.Expression // each must implement sql.Aggregation
	Names      []string         // parallel to append(GroupBy, Aggregates...)
	Child      sql.Node
	schema     sql.Schema
}

// NewAggregateAndGroup builds an AggregateAndGroup node. names must be
// parallel to the concatenation of groupBy and aggregates, in that
// order, and becomes the output schema's column names.
func NewAggregateAndGroup(groupBy, aggregates []sql.Expression, names []string, child sql.Node) *AggregateAndGroup {
	schema := make(sql.Schema, 0, len(groupBy)+len(aggregates))
	i := 0
	for _, g := range groupBy {
		schema = append(schema, &sql.Column{Name: names[i], Type: g.Type(), Nullable: g.Nullable()})
		i++
	}
	for _, a := range aggregates {
		schema = append(schema, &sql.Column{Name: names[i], Type: a.Type(), Nullable: true})
		i++
	}
	return &AggregateAndGroup{
		id:         sql.NextNodeID(),
		GroupBy:    groupBy,
		Aggregates: aggregates,
		Names:      names,
		Child:      child,
		schema:     schema,
	}
}

func (a *AggregateAndGroup) ID() int64            { return a.id }
func (a *AggregateAndGroup) Children() []sql.Node { return []sql.Node{a.Child} }
func (a *AggregateAndGroup) Schema() sql.Schema   { return a.schema }

func (a *AggregateAndGroup) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("AggregateAndGroup", 1, len(children))
	}
	na := NewAggregateAndGroup(a.GroupBy, a.Aggregates, a.Names, children[0])
	na.id = a.id
	return na, nil
}

func (a *AggregateAndGroup) String() string {
	return "AggregateAndGroup(" + joinNames(a.Names) + ")"
}
