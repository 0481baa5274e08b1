// Package analyzer implements the optimizer of §4.2: a fixed,
// ordered sequence of idempotent, locally-reasoning rewrite
// strategies applied to a logical plan exactly once (never iterated
// to a fixpoint across the list), grounded on the teacher's
// sql/analyzer package shape (a Batch of Rules run in order, each
// Rule a function from (ctx, node) to a possibly-rewritten node).
package analyzer

import (
	"github.com/sirupsen/logrus"

	"github.com/mabel-dev/opteryx/sql"
)

// Strategy is one rewrite pass in the catalog (§4.2 table). It
// receives the optimizer Context and the plan root and returns a
// (possibly identical) rewritten plan. A strategy that does not
// recognise a node shape must return it unchanged rather than error;
// Context.Warn records the decision instead of aborting (§4.2
// "Failure semantics").
type Strategy interface {
	Name() string
	Apply(ctx *Context, root sql.Node) (sql.Node, error)
}

// Context is the optimizer context threaded through every strategy:
// collected predicates, table-size statistics used by join ordering,
// and warnings raised by strategies that decline to act (§4.2).
type Context struct {
	Stats    *sql.QueryStats
	Log      *logrus.Entry
	Warnings []string

	// TableRowCounts feeds the join-ordering strategy's size
	// heuristic; absent entries are treated as unknown, and a join
	// with an unknown side keeps its original side order.
	TableRowCounts map[string]int64
}

// NewContext builds an optimizer Context.
func NewContext(stats *sql.QueryStats, log *logrus.Entry) *Context {
	return &Context{Stats: stats, Log: log, TableRowCounts: map[string]int64{}}
}

// Warn records a warning without aborting the rewrite (§4.2).
func (c *Context) Warn(strategy, message string) {
	c.Warnings = append(c.Warnings, strategy+": "+message)
	if c.Log != nil {
		c.Log.WithField("strategy", strategy).Warn(message)
	}
	if c.Stats != nil {
		c.Stats.FireFlag(strategy)
	}
}

// DefaultPipeline returns the fifteen strategies of §4.2's table, in
// their fixed order.
func DefaultPipeline() []Strategy {
	return []Strategy{
		&ConstantFolding{Pass: 1},
		&BooleanSimplification{},
		&SplitConjunctivePredicates{},
		&CorrelatedFilterLifting{},
		&PredicateRewrite{},
		&PredicatePushdown{},
		&ProjectionPushdown{},
		&JoinRewrite{},
		&JoinOrdering{},
		&DistinctPushdown{},
		&OperatorFusion{},
		&LimitPushdown{},
		&PredicateOrdering{},
		&RedundantElimination{},
		&ConstantFolding{Pass: 2},
	}
}

// Optimize runs the pipeline once, in order, over root (§4.2 "The
// optimizer iterates the list once; it does not reach a fixpoint").
func Optimize(ctx *Context, root sql.Node, pipeline []Strategy) (sql.Node, error) {
	current := root
	for _, strategy := range pipeline {
		rewritten, err := strategy.Apply(ctx, current)
		if err != nil {
			// A strategy erroring outright (as opposed to declining a
			// node shape via Warn) is itself turned into a warning;
			// production runs keep the unoptimized node for this pass.
			ctx.Warn(strategy.Name(), err.Error())
			continue
		}
		current = rewritten
		if ctx.Stats != nil {
			ctx.Stats.FireFlag(strategy.Name())
		}
	}
	return current, nil
}
