package exec

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/hash"
)

// DistinctOperator maintains a FlatHashSet of combined row hashes
// across the distinct columns, emitting a row the first time its hash
// is seen; hash collisions are resolved by a full tuple comparison
// before a row is suppressed (§4.7).
type DistinctOperator struct {
	baseOperator
	columns []string // nil means "all columns"
	child   Operator

	seen    *hash.FlatHashSet
	rawRows [][]byte // raw encoded tuple bytes for collision verification, parallel to seen's insertion order
}

// NewDistinctOperator builds a DistinctOperator over the named
// columns, or every column in the schema if columns is nil.
func NewDistinctOperator(columns []string, child Operator) *DistinctOperator {
	return &DistinctOperator{
		baseOperator: baseOperator{name: "Distinct"},
		columns:      columns,
		child:        child,
		seen:         hash.NewFlatHashSet(),
	}
}

func (d *DistinctOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	for {
		m, err := d.child.Next(ctx)
		if err != nil {
			return nil, err
		}
		cols := d.columns
		if cols == nil {
			cols = m.Schema.Names()
		}
		hashes, err := hash.RowHashes(m, cols)
		if err != nil {
			return nil, err
		}
		keep := make([]int, 0, m.RowCount)
		for i, h := range hashes {
			encoded := encodeRowTuple(m, cols, i)
			if d.isDuplicate(h, encoded) {
				continue
			}
			d.seen.Insert(h)
			d.rawRows = append(d.rawRows, encoded)
			keep = append(keep, i)
		}
		if len(keep) == 0 {
			continue
		}
		out := selectRows(m, keep)
		d.recordRows(ctx, out)
		return out, nil
	}
}

// isDuplicate checks the hash set first, then a full tuple comparison
// against every previously accepted row, whatever its hash (collision
// resolution, §4.7).
func (d *DistinctOperator) isDuplicate(h uint64, encoded []byte) bool {
	if !d.seen.Contains(h) {
		return false
	}
	for _, prior := range d.rawRows {
		if bytes.Equal(prior, encoded) {
			return true
		}
	}
	return false
}

// encodeRowTuple renders row i's values for the given columns as a
// comparable byte sequence, used only for the post-hash collision
// check (never for the hash itself, which is hash.RowHashes).
func encodeRowTuple(m *sql.Morsel, columns []string, row int) []byte {
	var buf bytes.Buffer
	var scratch [8]byte
	for _, name := range columns {
		v := m.Column(name)
		if v == nil || !v.IsValid(row) {
			buf.WriteByte(0)
			continue
		}
		buf.WriteByte(1)
		switch v.Type {
		case sql.Int8:
			buf.WriteByte(byte(v.Int8Data[v.SliceOffset+row]))
		case sql.Int16:
			binary.LittleEndian.PutUint16(scratch[:2], uint16(v.Int16Data[v.SliceOffset+row]))
			buf.Write(scratch[:2])
		case sql.Int32, sql.Date32:
			binary.LittleEndian.PutUint32(scratch[:4], uint32(v.Int32Data[v.SliceOffset+row]))
			buf.Write(scratch[:4])
		case sql.Int64, sql.Timestamp64:
			binary.LittleEndian.PutUint64(scratch[:8], uint64(v.Int64Data[v.SliceOffset+row]))
			buf.Write(scratch[:8])
		case sql.Float32:
			binary.LittleEndian.PutUint32(scratch[:4], math.Float32bits(v.Float32Data[v.SliceOffset+row]))
			buf.Write(scratch[:4])
		case sql.Float64:
			binary.LittleEndian.PutUint64(scratch[:8], math.Float64bits(v.Float64Data[v.SliceOffset+row]))
			buf.Write(scratch[:8])
		case sql.Bool:
			if v.BoolData[v.SliceOffset+row] {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		case sql.Decimal:
			buf.WriteString(v.DecimalData[v.SliceOffset+row].String())
		case sql.Interval:
			iv := v.IntervalData[v.SliceOffset+row]
			binary.LittleEndian.PutUint32(scratch[:4], uint32(iv.Months))
			buf.Write(scratch[:4])
			binary.LittleEndian.PutUint32(scratch[:4], uint32(iv.Days))
			buf.Write(scratch[:4])
			binary.LittleEndian.PutUint64(scratch[:8], uint64(iv.Nanoseconds))
			buf.Write(scratch[:8])
		case sql.String:
			buf.Write(v.StringAt(row))
			buf.WriteByte(0xFF)
		default:
			buf.WriteString(stringifyObject(v.ObjectData[v.SliceOffset+row]))
		}
	}
	return buf.Bytes()
}

// stringifyObject mirrors sql/hash's fallback encoding for NonNative
// columns: the value's own String() where it implements fmt.Stringer,
// empty otherwise.
func stringifyObject(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func (d *DistinctOperator) Close() error { return d.child.Close() }
