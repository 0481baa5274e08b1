package parquet

import (
	"github.com/parquet-go/parquet-go"

	"github.com/mabel-dev/opteryx/sql"
)

// convertSchema maps a Parquet footer schema's leaf fields to this
// engine's columnar type set (§3.1). Nested groups/repeated fields
// are out of scope for this connector: analytical Parquet exports in
// the wild are overwhelmingly flat, and the engine's Array/Struct
// vector representation models its own UNNEST/arrow-get semantics
// (§4.7, §5), not Parquet's repetition/definition levels.
func convertSchema(ps *parquet.Schema) (sql.Schema, error) {
	fields := ps.Fields()
	schema := make(sql.Schema, 0, len(fields))
	for _, f := range fields {
		if len(f.Fields()) > 0 {
			return nil, sql.ErrUnsupportedType.New("nested group column " + f.Name())
		}
		schema = append(schema, &sql.Column{
			Name:     f.Name(),
			Type:     convertKind(f.Type().Kind()),
			Nullable: f.Optional(),
		})
	}
	return schema, nil
}

func convertKind(k parquet.Kind) sql.Type {
	switch k {
	case parquet.Boolean:
		return sql.Bool
	case parquet.Int32:
		return sql.Int32
	case parquet.Int64:
		return sql.Int64
	case parquet.Float:
		return sql.Float32
	case parquet.Double:
		return sql.Float64
	case parquet.Int96:
		return sql.Timestamp64
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return sql.String
	default:
		return sql.String
	}
}

// rowsToMorsel converts a batch of flat Parquet rows into a Morsel
// over outSchema (a subset/reorder of fullSchema when projection
// pushdown narrowed the read). parquet.Value.Column() gives each
// value's leaf-column index into fullSchema regardless of how
// ReadRows happened to order them.
func rowsToMorsel(rows []parquet.Row, fullSchema, outSchema sql.Schema) (*sql.Morsel, error) {
	n := len(rows)
	cols := make([]*sql.Vector, len(outSchema))
	for c, col := range outSchema {
		cols[c] = sql.NewVector(col.Type, n)
		cols[c].EnsureValidity()
	}
	// map from fullSchema column index to outSchema slot, -1 if not projected
	slot := make([]int, len(fullSchema))
	for i := range slot {
		slot[i] = -1
	}
	for c, col := range outSchema {
		idx := fullSchema.IndexOf(col.Name)
		if idx >= 0 {
			slot[idx] = c
		}
	}

	for r, row := range rows {
		for _, v := range row {
			fc := v.Column()
			if fc < 0 || fc >= len(slot) {
				continue
			}
			oc := slot[fc]
			if oc < 0 {
				continue
			}
			if v.IsNull() {
				cols[oc].SetNull(r)
				continue
			}
			if err := writeParquetValue(cols[oc], r, v); err != nil {
				return nil, err
			}
		}
	}
	return &sql.Morsel{Schema: outSchema, Columns: cols, RowCount: n}, nil
}

func writeParquetValue(v *sql.Vector, i int, val parquet.Value) error {
	switch v.Type {
	case sql.Bool:
		v.BoolData[i] = val.Boolean()
	case sql.Int32:
		v.Int32Data[i] = val.Int32()
	case sql.Int64:
		v.Int64Data[i] = val.Int64()
	case sql.Float32:
		v.Float32Data[i] = val.Float()
	case sql.Float64:
		v.Float64Data[i] = val.Double()
	case sql.Timestamp64:
		v.Int64Data[i] = val.Int64()
	case sql.String:
		writeString(v, i, val.ByteArray())
	default:
		return sql.ErrUnsupportedType.New(v.Type)
	}
	return nil
}

func writeString(v *sql.Vector, i int, b []byte) {
	start := int32(len(v.StringData))
	v.StringData = append(v.StringData, b...)
	v.Offsets[i] = start
	v.Offsets[i+1] = start + int32(len(b))
}
