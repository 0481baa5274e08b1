// Package connector defines the boundary the logical planner and
// physical scan operator consume (§6.2): storage backends are
// external collaborators (§1) and this package is the only interface
// this module has on them.
package connector

import (
	"time"

	"github.com/mabel-dev/opteryx/sql"
)

// Partition names one independently readable slice of a table — a
// file, a row-group, a remote shard listing — the unit parallel scan
// fan-out (§4.4, §5) reads concurrently.
type Partition struct {
	ID   string
	Size int64
}

// TemporalRange models the `FOR …` clause (§4.1, §6.1): a single date,
// or a [Start, End] range.
type TemporalRange struct {
	Start time.Time
	End   time.Time
}

// MorselIterator is what Connector.Read hands back: successive
// morsels until exhausted, mirroring the pull-based Operator contract
// (§4.4) at the connector boundary.
type MorselIterator interface {
	Next(ctx *sql.Context) (*sql.Morsel, error)
}

// Capabilities are the flags the optimizer's pushdown strategies gate
// on (§4.2 strategy 6, §6.2). A connector that does not report a
// capability is always treated as not supporting it (§9 Open
// Questions: "Capability absence should be treated as the safe
// default").
type Capabilities struct {
	SupportsProjectionPushdown bool
	SupportsPredicatePushdown  bool
	SupportsAggregatePushdown  bool
	SupportsPartitionMetadata  bool
}

// Connector is the storage backend interface consumed by a Scan
// (§6.2).
type Connector interface {
	Schema() sql.Schema
	Partitions() ([]Partition, error)
	Read(ctx *sql.Context, partition Partition, projectedColumns []string, pushedPredicates []sql.Expression, timeRange *TemporalRange) (MorselIterator, error)
	Capabilities() Capabilities
}
