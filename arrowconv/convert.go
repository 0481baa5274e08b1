// Package arrowconv converts between this engine's native Morsel/
// Vector representation and Apache Arrow records (§6.4), the wire
// format used when morsels cross a process boundary (a client driver,
// a Flight/Arrow-IPC transport layer) rather than flowing operator to
// operator in-process.
package arrowconv

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/mabel-dev/opteryx/sql"
)

// ToArrowRecord converts m into an arrow.Record, preserving validity
// and (for String columns) the byte offsets bit-for-bit against
// §3.2's invariants: a null row in m is a null row in the record, and
// string bytes are copied verbatim rather than re-encoded.
func ToArrowRecord(m *sql.Morsel) (arrow.Record, error) {
	mem := memory.NewGoAllocator()
	fields := make([]arrow.Field, len(m.Schema))
	cols := make([]arrow.Array, len(m.Schema))
	for c, col := range m.Schema {
		arrowType, err := toArrowType(col.Type)
		if err != nil {
			return nil, err
		}
		fields[c] = arrow.Field{Name: col.Name, Type: arrowType, Nullable: col.Nullable}
		arr, err := buildArray(mem, m.Columns[c])
		if err != nil {
			return nil, err
		}
		cols[c] = arr
	}
	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, cols, int64(m.RowCount)), nil
}

func toArrowType(t sql.Type) (arrow.DataType, error) {
	switch t {
	case sql.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case sql.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case sql.Int32, sql.Date32:
		return arrow.PrimitiveTypes.Int32, nil
	case sql.Int64, sql.Timestamp64:
		return arrow.PrimitiveTypes.Int64, nil
	case sql.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case sql.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case sql.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case sql.String:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, fmt.Errorf("arrowconv: unsupported vector type %s", t)
	}
}

func buildArray(mem memory.Allocator, v *sql.Vector) (arrow.Array, error) {
	switch v.Type {
	case sql.Int8:
		b := array.NewInt8Builder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(v.Int8Data[i])
		}
		return b.NewArray(), nil
	case sql.Int16:
		b := array.NewInt16Builder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(v.Int16Data[i])
		}
		return b.NewArray(), nil
	case sql.Int32, sql.Date32:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(v.Int32Data[i])
		}
		return b.NewArray(), nil
	case sql.Int64, sql.Timestamp64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(v.Int64Data[i])
		}
		return b.NewArray(), nil
	case sql.Float32:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(v.Float32Data[i])
		}
		return b.NewArray(), nil
	case sql.Float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(v.Float64Data[i])
		}
		return b.NewArray(), nil
	case sql.Bool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(v.BoolData[i])
		}
		return b.NewArray(), nil
	case sql.String:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for i := 0; i < v.Length; i++ {
			if !v.IsValid(i) {
				b.AppendNull()
				continue
			}
			b.Append(string(v.StringAt(i)))
		}
		return b.NewArray(), nil
	default:
		return nil, fmt.Errorf("arrowconv: unsupported vector type %s", v.Type)
	}
}

// FromArrowRecord converts rec back into a Morsel, one Vector per
// column, rebuilding the validity bitmap and (for strings) Offsets
// from the record's own null bitmap and value layout.
func FromArrowRecord(rec arrow.Record) (*sql.Morsel, error) {
	n := int(rec.NumRows())
	schema := make(sql.Schema, rec.NumCols())
	cols := make([]*sql.Vector, rec.NumCols())
	for c := 0; c < int(rec.NumCols()); c++ {
		field := rec.Schema().Field(c)
		arr := rec.Column(c)
		vt, err := fromArrowType(field.Type)
		if err != nil {
			return nil, err
		}
		schema[c] = &sql.Column{Name: field.Name, Type: vt, Nullable: field.Nullable}
		v, err := readArray(vt, arr, n)
		if err != nil {
			return nil, err
		}
		cols[c] = v
	}
	return &sql.Morsel{Schema: schema, Columns: cols, RowCount: n}, nil
}

func fromArrowType(t arrow.DataType) (sql.Type, error) {
	switch t.ID() {
	case arrow.INT8:
		return sql.Int8, nil
	case arrow.INT16:
		return sql.Int16, nil
	case arrow.INT32:
		return sql.Int32, nil
	case arrow.INT64:
		return sql.Int64, nil
	case arrow.FLOAT32:
		return sql.Float32, nil
	case arrow.FLOAT64:
		return sql.Float64, nil
	case arrow.BOOL:
		return sql.Bool, nil
	case arrow.STRING:
		return sql.String, nil
	default:
		return sql.Unknown, fmt.Errorf("arrowconv: unsupported arrow type %s", t)
	}
}

func readArray(vt sql.Type, arr arrow.Array, n int) (*sql.Vector, error) {
	v := sql.NewVector(vt, n)
	v.EnsureValidity()
	switch a := arr.(type) {
	case *array.Int8:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			v.Int8Data[i] = a.Value(i)
		}
	case *array.Int16:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			v.Int16Data[i] = a.Value(i)
		}
	case *array.Int32:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			v.Int32Data[i] = a.Value(i)
		}
	case *array.Int64:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			v.Int64Data[i] = a.Value(i)
		}
	case *array.Float32:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			v.Float32Data[i] = a.Value(i)
		}
	case *array.Float64:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			v.Float64Data[i] = a.Value(i)
		}
	case *array.Boolean:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			v.BoolData[i] = a.Value(i)
		}
	case *array.String:
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				v.SetNull(i)
				continue
			}
			s := a.Value(i)
			start := int32(len(v.StringData))
			v.StringData = append(v.StringData, s...)
			v.Offsets[i] = start
			v.Offsets[i+1] = start + int32(len(s))
		}
	default:
		return nil, fmt.Errorf("arrowconv: unsupported arrow array type %T", arr)
	}
	return v, nil
}
