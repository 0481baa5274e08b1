// Package memtable is an in-memory connector.Connector grounded on
// the teacher's mem.Table/mem.NewPartitionedTable (a schema plus a
// row slice, partitioned for scan fan-out, §6.2). It backs the
// built-in $planets/$satellites sample tables (§8.1) and is suitable
// for any caller that wants to register small, static row sets
// without a real storage backend.
package memtable

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mabel-dev/opteryx/connector"
	"github.com/mabel-dev/opteryx/sql"
)

// Table is a schema plus a row slice, split into numPartitions equal
// slices for Partitions/Read (mirroring the teacher's
// mem.NewPartitionedTable rather than mem.NewTable's single implicit
// partition).
type Table struct {
	name          string
	schema        sql.Schema
	rows          [][]any
	numPartitions int
}

// NewTable builds a single-partition Table.
func NewTable(name string, schema sql.Schema, rows [][]any) *Table {
	return NewPartitionedTable(name, schema, rows, 1)
}

// NewPartitionedTable builds a Table split into numPartitions scan
// partitions (clamped to at least 1 and at most len(rows)).
func NewPartitionedTable(name string, schema sql.Schema, rows [][]any, numPartitions int) *Table {
	if numPartitions < 1 {
		numPartitions = 1
	}
	return &Table{name: name, schema: schema, rows: rows, numPartitions: numPartitions}
}

func (t *Table) Name() string       { return t.name }
func (t *Table) Schema() sql.Schema { return t.schema }

// Insert appends row to the table (grounded on mem.Table.Insert).
func (t *Table) Insert(row []any) error {
	if len(row) != len(t.schema) {
		return sql.ErrSchemaMismatch.New(len(t.schema), len(row))
	}
	t.rows = append(t.rows, row)
	return nil
}

func (t *Table) Partitions() ([]connector.Partition, error) {
	n := t.clampedPartitions()
	parts := make([]connector.Partition, n)
	for i := 0; i < n; i++ {
		_, size := t.partitionBounds(i)
		parts[i] = connector.Partition{ID: strconv.Itoa(i), Size: int64(size)}
	}
	return parts, nil
}

func (t *Table) clampedPartitions() int {
	n := t.numPartitions
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 1 {
		n = 1
	}
	return n
}

// partitionBounds returns the [start, start+size) row range partition
// i owns, dividing len(rows) as evenly as possible (first rem
// partitions get one extra row).
func (t *Table) partitionBounds(i int) (start, size int) {
	n := t.clampedPartitions()
	base := len(t.rows) / n
	rem := len(t.rows) % n
	for j := 0; j < i; j++ {
		s := base
		if j < rem {
			s++
		}
		start += s
	}
	size = base
	if i < rem {
		size++
	}
	return start, size
}

// Read builds the morsel for partition, applying any pushed-down
// projection and predicates itself (§6.2, since Capabilities reports
// both as supported).
func (t *Table) Read(ctx *sql.Context, partition connector.Partition, projectedColumns []string, pushedPredicates []sql.Expression, timeRange *connector.TemporalRange) (connector.MorselIterator, error) {
	idx, err := strconv.Atoi(partition.ID)
	if err != nil {
		return nil, fmt.Errorf("memtable: invalid partition id %q", partition.ID)
	}
	start, size := t.partitionBounds(idx)
	rows := t.rows[start : start+size]

	morsel, err := buildMorsel(t.schema, rows)
	if err != nil {
		return nil, err
	}
	// Pushed predicates address the table's full schema, so they run
	// before the projection narrows the columns.
	for _, pred := range pushedPredicates {
		morsel, err = applyPredicate(ctx, pred, morsel)
		if err != nil {
			return nil, err
		}
	}
	if len(projectedColumns) > 0 {
		morsel = projectMorsel(morsel, projectedColumns)
	}
	// timeRange is ignored: the sample fixtures have no temporal
	// dimension to slice by.
	return &singleMorselIterator{morsel: morsel}, nil
}

// Capabilities reports every pushdown supported, since filtering and
// projecting an in-memory row slice is trivial (§6.2).
func (t *Table) Capabilities() connector.Capabilities {
	return connector.Capabilities{
		SupportsProjectionPushdown: true,
		SupportsPredicatePushdown:  true,
		SupportsAggregatePushdown:  false,
		SupportsPartitionMetadata:  true,
	}
}

// singleMorselIterator hands back one morsel, then io.EOF. A
// zero-row morsel is skipped entirely so callers never see an empty
// batch.
type singleMorselIterator struct {
	morsel *sql.Morsel
	done   bool
}

func (it *singleMorselIterator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if it.done || it.morsel.RowCount == 0 {
		it.done = true
		return nil, io.EOF
	}
	it.done = true
	return it.morsel, nil
}
