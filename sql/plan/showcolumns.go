package plan

import "github.com/mabel-dev/opteryx/sql"

// ShowColumns reports the schema of a table or subplan as rows rather
// than executing it (§3.3, SHOW COLUMNS extension of §5).
type ShowColumns struct {
	id          int64
	TableName   string
	TableSchema sql.Schema
	schema      sql.Schema
}

var showColumnsSchema = sql.Schema{
	{Name: "column_name", Type: sql.String},
	{Name: "type", Type: sql.String},
	{Name: "nullable", Type: sql.Bool},
}

// NewShowColumns builds a ShowColumns node over tableSchema.
func NewShowColumns(tableName string, tableSchema sql.Schema) *ShowColumns {
	return &ShowColumns{
		id:          sql.NextNodeID(),
		TableName:   tableName,
		TableSchema: tableSchema,
		schema:      showColumnsSchema,
	}
}

func (s *ShowColumns) ID() int64            { return s.id }
func (s *ShowColumns) Children() []sql.Node { return nil }
func (s *ShowColumns) Schema() sql.Schema   { return s.schema }

func (s *ShowColumns) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, ErrChildCount.New("ShowColumns", 0, len(children))
	}
	return s, nil
}

func (s *ShowColumns) String() string {
	return "ShowColumns(" + s.TableName + ")"
}
