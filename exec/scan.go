package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/connector"
	"github.com/mabel-dev/opteryx/sql"
)

// ScanOperator drives one or more connector.MorselIterator instances,
// one per partition (§4.4 "data-parallel at the scan/morsel level").
// This core executes partitions sequentially; opt-in concurrent
// partition reads (§5) are a caller-side concern layered over
// multiple ScanOperator instances feeding a Union-like fan-in, not a
// behavior internal to a single ScanOperator.
type ScanOperator struct {
	baseOperator

	conn       connector.Connector
	partitions []connector.Partition
	predicates []sql.Expression
	projection []string
	timeRange  *connector.TemporalRange

	partitionIdx int
	current      connector.MorselIterator
}

// NewScanOperator builds a ScanOperator over every partition conn
// reports, applying the pushdown already decided by the optimizer.
func NewScanOperator(conn connector.Connector, predicates []sql.Expression, projection []string, timeRange *connector.TemporalRange) (*ScanOperator, error) {
	partitions, err := conn.Partitions()
	if err != nil {
		return nil, err
	}
	return &ScanOperator{
		baseOperator: baseOperator{name: "Scan"},
		conn:         conn,
		partitions:   partitions,
		predicates:   predicates,
		projection:   projection,
		timeRange:    timeRange,
	}, nil
}

func (s *ScanOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	for {
		if s.current == nil {
			if s.partitionIdx >= len(s.partitions) {
				return nil, io.EOF
			}
			it, err := s.conn.Read(ctx, s.partitions[s.partitionIdx], s.projection, s.predicates, s.timeRange)
			if err != nil {
				return nil, err
			}
			s.partitionIdx++
			s.current = it
		}
		m, err := s.current.Next(ctx)
		if err == io.EOF {
			s.current = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		s.recordRows(ctx, m)
		return m, nil
	}
}

func (s *ScanOperator) Close() error { return nil }
