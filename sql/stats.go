package sql

import (
	"sync"
	"time"
)

// OperatorStats holds the per-operator counters exposed by
// QueryStats (§6.3).
type OperatorStats struct {
	Name      string
	RowsIn    int64
	RowsOut   int64
	BytesOut  int64
	CallCount int64
	Wall      time.Duration
}

// QueryStats is the per-query statistics struct returned by
// Executor.Statistics() (§6.3). The source repository keeps these
// counters as module-level globals; here they are scoped to a single
// Context, re-architected as the design notes (§9 "Global module
// state") direct.
type QueryStats struct {
	mu sync.Mutex

	StartedAt time.Time
	Operators map[string]*OperatorStats

	OptimizerFlagsFired []string
	CacheHits           int64
	CacheMisses         int64
}

func newQueryStats() *QueryStats {
	return &QueryStats{
		StartedAt: time.Time{},
		Operators: make(map[string]*OperatorStats),
	}
}

// RecordOperator accumulates counters for a named operator instance.
// Multiple operators of the same kind within a plan (e.g. two Filters)
// share a bucket keyed by name; callers that need per-node granularity
// should key by "name#nodeID" instead.
func (s *QueryStats) RecordOperator(name string, rowsIn, rowsOut int, wall time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.Operators[name]
	if !ok {
		op = &OperatorStats{Name: name}
		s.Operators[name] = op
	}
	op.RowsIn += int64(rowsIn)
	op.RowsOut += int64(rowsOut)
	op.CallCount++
	op.Wall += wall
}

// FireFlag records that an optimizer strategy rewrote the plan.
func (s *QueryStats) FireFlag(strategy string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OptimizerFlagsFired = append(s.OptimizerFlagsFired, strategy)
}

// RecordCacheHit and RecordCacheMiss track the cache-hit counters
// surfaced by QueryStats; the cache layer itself is out of scope
// (§1) and reports into these counters from outside this module.
func (s *QueryStats) RecordCacheHit() {
	s.mu.Lock()
	s.CacheHits++
	s.mu.Unlock()
}

func (s *QueryStats) RecordCacheMiss() {
	s.mu.Lock()
	s.CacheMisses++
	s.mu.Unlock()
}
