// Package opteryx is the top-level entry point: it wires the
// planner, the optimizer and the physical executor together behind a
// single Engine type, mirroring the teacher's own root-package
// Engine (engine.go) — a Config struct, a New/NewDefault pair, and a
// Query method a caller drives to completion — generalized from the
// teacher's session/transaction-carrying MySQL engine down to this
// engine's narrower contract (§1 Non-goals: no sessions, no DML, no
// transactions): Query plans, optimizes and compiles a bound
// Statement, handing back a pull-based morsel iterator plus the
// per-query QueryStats the run accumulated (§6.3).
package opteryx

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mabel-dev/opteryx/config"
	"github.com/mabel-dev/opteryx/connector/memtable"
	"github.com/mabel-dev/opteryx/exec"
	"github.com/mabel-dev/opteryx/planner"
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/analyzer"
)

// Config mirrors the teacher's Config shape (named settings read once
// at Engine construction) narrowed to what this engine actually uses.
type Config struct {
	// Settings is used as given when non-nil; nil means
	// config.Default(). NewDefault passes config.FromEnvironment().
	Settings *config.Config

	// Pipeline overrides the optimizer strategy order; nil means
	// analyzer.DefaultPipeline().
	Pipeline []analyzer.Strategy

	// Logger is the base logger every query Context derives its
	// per-query entry from; nil means logrus.StandardLogger().
	Logger *logrus.Logger
}

// Engine holds the catalog and settings shared by every query, the
// same role the teacher's Engine plays for its Analyzer/
// ProcessList/MemoryManager bundle.
type Engine struct {
	catalog  planner.Catalog
	settings *config.Config
	pipeline []analyzer.Strategy
	logger   *logrus.Logger

	mu          sync.Mutex
	statementID uint64
}

// New builds an Engine over catalog using the given Config.
func New(catalog planner.Catalog, cfg Config) *Engine {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	pipeline := cfg.Pipeline
	if pipeline == nil {
		pipeline = analyzer.DefaultPipeline()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{catalog: catalog, settings: settings, pipeline: pipeline, logger: logger}
}

// NewDefault builds an Engine over the in-memory $planets/$satellites
// catalog (§8.1), reading settings from the process environment the
// way the teacher's ExperimentalGMS flag does.
func NewDefault() (*Engine, error) {
	settings, err := config.FromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("opteryx: %w", err)
	}
	return New(memtable.NewCatalog(), Config{Settings: settings}), nil
}

// Result is the handle Query hands back: a pull-based morsel stream
// plus the statistics accumulator the run populates as it drains.
type Result struct {
	op   exec.Operator
	ctx  *sql.Context
}

// Next returns the next morsel, or io.EOF once the query is
// exhausted, mirroring exec.Operator.Next's own contract.
func (r *Result) Next() (*sql.Morsel, error) {
	return r.op.Next(r.ctx)
}

// Close releases the operator tree's buffers (hash tables, sort runs)
// ahead of garbage collection.
func (r *Result) Close() error {
	return r.op.Close()
}

// Stats returns the statistics this run has accumulated so far; it is
// safe to call before the result is fully drained.
func (r *Result) Stats() *sql.QueryStats {
	return r.ctx.Stats()
}

// Query plans, optimizes and compiles stmt, returning a Result ready
// to be pulled via Next. parent supplies cancellation/deadline
// propagation into the query's *sql.Context (§5).
func (e *Engine) Query(parent context.Context, stmt *planner.Statement) (*Result, error) {
	root, err := planner.BuildPlan(stmt, e.catalog)
	if err != nil {
		return nil, fmt.Errorf("opteryx: plan: %w", err)
	}

	qctx := sql.NewContext(parent)
	qctx.SetLogger(e.logger.WithField("query_id", qctx.QueryID))

	actx := analyzer.NewContext(qctx.Stats(), e.logger.WithField("query_id", qctx.QueryID))
	optimized, err := analyzer.Optimize(actx, root, e.pipeline)
	if err != nil {
		return nil, fmt.Errorf("opteryx: optimize: %w", err)
	}

	builder := exec.NewBuilder(e.settings.MaxLocalBufferCapacity)
	op, err := builder.Compile(optimized)
	if err != nil {
		return nil, fmt.Errorf("opteryx: compile: %w", err)
	}

	return &Result{op: op, ctx: qctx}, nil
}

// Drain runs stmt to completion, collecting every morsel into a
// single slice — a convenience wrapper over Query/Next for callers
// (tests, the CLI) that don't need streaming.
func (e *Engine) Drain(parent context.Context, stmt *planner.Statement) ([]*sql.Morsel, *sql.QueryStats, error) {
	res, err := e.Query(parent, stmt)
	if err != nil {
		return nil, nil, err
	}
	defer res.Close()

	var morsels []*sql.Morsel
	for {
		m, err := res.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("opteryx: %w", err)
		}
		morsels = append(morsels, m)
	}
	return morsels, res.Stats(), nil
}

// NextStatementID hands out this Engine's own counter a caller can use
// to correlate a prepared statement with later executions of it —
// this engine has no prepared-statement cache of its own (§1
// Non-goals), but callers building one on top still need stable ids.
func (e *Engine) NextStatementID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statementID++
	return e.statementID
}

// Close releases any resources the Engine's catalog holds open (e.g.
// a parquet.Connector's underlying file handles).
func (e *Engine) Close() error {
	type closer interface{ Close() error }
	if c, ok := e.catalog.(closer); ok {
		return c.Close()
	}
	return nil
}
