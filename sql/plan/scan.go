package plan

import (
	"fmt"

	"github.com/mabel-dev/opteryx/connector"
	"github.com/mabel-dev/opteryx/sql"
)

// Scan is a leaf node reading from a connector (§3.3, §4.1). It
// carries the temporal clause as an immutable attribute (§4.1 "the
// optimizer may push it no further") and the predicates/projection
// the optimizer has (so far) decided to push to the connector.
type Scan struct {
	id        int64
	TableName string
	Conn      connector.Connector
	schema    sql.Schema

	PushedPredicates []sql.Expression
	ProjectedColumns []string
	TimeRange        *connector.TemporalRange
}

// NewScan builds a Scan over conn, initially projecting every column
// conn.Schema() reports and pushing no predicates — the optimizer's
// projection/predicate pushdown strategies (§4.2 strategies 6-7)
// narrow these in place.
func NewScan(tableName string, conn connector.Connector) *Scan {
	schema := conn.Schema()
	return &Scan{
		id:               sql.NextNodeID(),
		TableName:        tableName,
		Conn:             conn,
		schema:           schema,
		ProjectedColumns: schema.Names(),
	}
}

func (s *Scan) ID() int64        { return s.id }
func (s *Scan) Children() []sql.Node { return nil }
func (s *Scan) Schema() sql.Schema   { return s.schema }

func (s *Scan) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, ErrChildCount.New("Scan", 0, len(children))
	}
	return s, nil
}

// WithPushdown returns a copy of s with the given predicates,
// projected columns and/or time range applied — used exclusively by
// the optimizer's pushdown strategies, never at plan-build time.
func (s *Scan) WithPushdown(predicates []sql.Expression, columns []string, timeRange *connector.TemporalRange) *Scan {
	cp := *s
	if predicates != nil {
		cp.PushedPredicates = predicates
	}
	if columns != nil {
		cp.ProjectedColumns = columns
		cp.schema = projectSchema(s.schema, columns)
	}
	if timeRange != nil {
		cp.TimeRange = timeRange
	}
	return &cp
}

func projectSchema(schema sql.Schema, names []string) sql.Schema {
	out := make(sql.Schema, 0, len(names))
	for _, name := range names {
		if idx := schema.IndexOf(name); idx >= 0 {
			out = append(out, schema[idx])
		}
	}
	return out
}

func (s *Scan) String() string {
	return fmt.Sprintf("Scan(%s, cols=%v)", s.TableName, s.ProjectedColumns)
}
