package sql

// Morsel is a columnar batch: the unit of data movement between
// operators (§3.1). Columns holds the vectors in the order of the
// owning Schema; Column finds a name by scanning that Schema.
type Morsel struct {
	Schema   Schema
	Columns  []*Vector
	RowCount int
}

// NewMorsel builds a Morsel from a schema and a matching slice of
// vectors, validating that there is one vector per schema column and
// that all vectors share the batch's row count (§3.1). Column name
// uniqueness is not checked, here or by Schema.
func NewMorsel(schema Schema, columns []*Vector) (*Morsel, error) {
	if len(schema) != len(columns) {
		return nil, ErrSchemaMismatch.New(len(schema), len(columns))
	}
	rowCount := 0
	if len(columns) > 0 {
		rowCount = columns[0].Length
	}
	for i, c := range columns {
		if c.Length != rowCount {
			return nil, ErrRaggedMorsel.New(schema[i].Name, rowCount, c.Length)
		}
	}
	return &Morsel{Schema: schema, Columns: columns, RowCount: rowCount}, nil
}

// Column returns the vector for the named column, or nil if absent.
func (m *Morsel) Column(name string) *Vector {
	idx := m.Schema.IndexOf(name)
	if idx < 0 {
		return nil
	}
	return m.Columns[idx]
}

// Project returns a new Morsel containing only the named columns, in
// the order requested; vector storage is shared (§3.1 copy-on-write).
func (m *Morsel) Project(names []string) (*Morsel, error) {
	schema := make(Schema, len(names))
	cols := make([]*Vector, len(names))
	for i, name := range names {
		idx := m.Schema.IndexOf(name)
		if idx < 0 {
			return nil, ErrUnknownColumn.New(name)
		}
		schema[i] = m.Schema[idx]
		cols[i] = m.Columns[idx]
	}
	return &Morsel{Schema: schema, Columns: cols, RowCount: m.RowCount}, nil
}

// Slice returns the sub-morsel covering rows [start, start+length),
// sharing backing storage via Vector.Slice.
func (m *Morsel) Slice(start, length int) *Morsel {
	cols := make([]*Vector, len(m.Columns))
	for i, c := range m.Columns {
		cols[i] = c.Slice(start, length)
	}
	return &Morsel{Schema: m.Schema, Columns: cols, RowCount: length}
}

// Concat horizontally combines two morsels with the same row count,
// used to assemble a join's output row (left columns ++ right
// columns, §4.5).
func Concat(left, right *Morsel) (*Morsel, error) {
	if left.RowCount != right.RowCount {
		return nil, ErrRaggedMorsel.New("<concat>", left.RowCount, right.RowCount)
	}
	schema := left.Schema.Concat(right.Schema)
	cols := make([]*Vector, 0, len(left.Columns)+len(right.Columns))
	cols = append(cols, left.Columns...)
	cols = append(cols, right.Columns...)
	return &Morsel{Schema: schema, Columns: cols, RowCount: left.RowCount}, nil
}
