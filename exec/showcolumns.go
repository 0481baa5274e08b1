package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
)

// ShowColumnsOperator reports a schema as rows rather than reading
// from a connector (§5 SHOW COLUMNS extension): one row per column,
// with its name, type name and nullability.
type ShowColumnsOperator struct {
	baseOperator
	schema  sql.Schema
	emitted bool
}

// NewShowColumnsOperator builds a ShowColumnsOperator over schema.
func NewShowColumnsOperator(schema sql.Schema) *ShowColumnsOperator {
	return &ShowColumnsOperator{baseOperator: baseOperator{name: "ShowColumns"}, schema: schema}
}

func (s *ShowColumnsOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if s.emitted {
		return nil, io.EOF
	}
	s.emitted = true
	n := len(s.schema)
	nameCol := sql.NewVector(sql.String, n)
	typeCol := sql.NewVector(sql.String, n)
	nullCol := sql.NewVector(sql.Bool, n)
	for i, col := range s.schema {
		writeStringAt(nameCol, i, col.Name)
		writeStringAt(typeCol, i, col.Type.String())
		nullCol.BoolData[i] = col.Nullable
	}
	out := &sql.Morsel{
		Schema: sql.Schema{
			{Name: "column_name", Type: sql.String},
			{Name: "type", Type: sql.String},
			{Name: "nullable", Type: sql.Bool},
		},
		Columns:  []*sql.Vector{nameCol, typeCol, nullCol},
		RowCount: n,
	}
	s.recordRows(ctx, out)
	return out, nil
}

// writeStringAt appends s as row i of a freshly allocated String
// vector being filled in increasing-row order (§3.2 monotonic
// Offsets).
func writeStringAt(v *sql.Vector, i int, s string) {
	start := int32(len(v.StringData))
	v.StringData = append(v.StringData, s...)
	v.Offsets[i] = start
	v.Offsets[i+1] = start + int32(len(s))
}

func (s *ShowColumnsOperator) Close() error { return nil }
