// Package parquet is a connector.Connector backed by
// github.com/parquet-go/parquet-go, reading row groups into morsels
// (§6.2). It reports projection pushdown and partition metadata as
// supported (column selection and row-group boundaries are native to
// the format) but not predicate or aggregate pushdown: this core
// never translates a predicate into the Parquet statistics/dictionary
// filtering the library exposes, so the executor always re-applies
// filters itself.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/mabel-dev/opteryx/connector"
	"github.com/mabel-dev/opteryx/sql"
)

const defaultBatchSize = 4096

// Connector reads a single Parquet file, one scan partition per row
// group (§6.2, grounded on the format's own physical grouping rather
// than an arbitrary split like memtable's).
type Connector struct {
	path   string
	file   *os.File
	pqFile *parquet.File
	schema sql.Schema
}

// Open opens the Parquet file at path and reads its footer schema.
// The file descriptor stays open for the Connector's lifetime (row
// groups are read lazily per partition); call Close when the query
// using it has finished.
func Open(path string) (*Connector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sql.ErrIO.New(0, err.Error())
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, sql.ErrIO.New(0, err.Error())
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, sql.ErrCorruptData.New(0, err.Error())
	}
	schema, err := convertSchema(pf.Schema())
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Connector{path: path, file: f, pqFile: pf, schema: schema}, nil
}

func (c *Connector) Close() error { return c.file.Close() }

func (c *Connector) Schema() sql.Schema { return c.schema }

func (c *Connector) Partitions() ([]connector.Partition, error) {
	groups := c.pqFile.RowGroups()
	parts := make([]connector.Partition, len(groups))
	for i, rg := range groups {
		parts[i] = connector.Partition{ID: strconv.Itoa(i), Size: rg.NumRows()}
	}
	return parts, nil
}

func (c *Connector) Capabilities() connector.Capabilities {
	return connector.Capabilities{
		SupportsProjectionPushdown: true,
		SupportsPredicatePushdown:  false,
		SupportsAggregatePushdown:  false,
		SupportsPartitionMetadata:  true,
	}
}

func (c *Connector) Read(ctx *sql.Context, partition connector.Partition, projectedColumns []string, pushedPredicates []sql.Expression, timeRange *connector.TemporalRange) (connector.MorselIterator, error) {
	idx, err := strconv.Atoi(partition.ID)
	if err != nil {
		return nil, fmt.Errorf("parquet: invalid partition id %q", partition.ID)
	}
	groups := c.pqFile.RowGroups()
	if idx < 0 || idx >= len(groups) {
		return nil, fmt.Errorf("parquet: partition id %q out of range", partition.ID)
	}
	outSchema := c.schema
	if len(projectedColumns) > 0 {
		outSchema = projectSchema(c.schema, projectedColumns)
	}
	return &rowGroupIterator{
		rows:       groups[idx].Rows(),
		fullSchema: c.schema,
		outSchema:  outSchema,
		batchSize:  defaultBatchSize,
	}, nil
}

// rowGroupIterator drains one row group in defaultBatchSize chunks,
// each becoming one morsel.
type rowGroupIterator struct {
	rows       parquet.Rows
	fullSchema sql.Schema
	outSchema  sql.Schema
	batchSize  int
	closed     bool
}

func (it *rowGroupIterator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if it.closed {
		return nil, io.EOF
	}
	buf := make([]parquet.Row, it.batchSize)
	n, err := it.rows.ReadRows(buf)
	if n == 0 {
		it.closed = true
		it.rows.Close()
		if err != nil && err != io.EOF {
			return nil, sql.ErrCorruptData.New(0, err.Error())
		}
		return nil, io.EOF
	}
	buf = buf[:n]
	m, convErr := rowsToMorsel(buf, it.fullSchema, it.outSchema)
	if convErr != nil {
		return nil, convErr
	}
	if err != nil && err != io.EOF {
		return nil, sql.ErrCorruptData.New(0, err.Error())
	}
	return m, nil
}

// projectSchema narrows schema to the named columns, in the order
// requested.
func projectSchema(schema sql.Schema, columns []string) sql.Schema {
	out := make(sql.Schema, len(columns))
	for i, name := range columns {
		idx := schema.IndexOf(name)
		out[i] = schema[idx]
	}
	return out
}
