package sql

import "sync/atomic"

// Node is the common interface implemented by every logical plan node
// kind (§3.3: Scan, Filter, Project, Join variants, Union, Aggregate,
// Distinct, Order, Limit, Offset, UnnestFunction, ShowColumns,
// Explain, CommonTableExpression). The plan is a DAG of Nodes stored
// by reference (§9 "arena + node-id indirection" is realised here by
// each CommonTableExpression node being shared by pointer rather than
// duplicated, since Go's GC makes an explicit arena unnecessary).
type Node interface {
	// ID is a unique identifier assigned at construction, stable
	// across optimizer rewrites that replace the node wholesale (the
	// replacement copies the original ID), used to correlate
	// per-operator statistics and error annotations back to a plan
	// location.
	ID() int64

	// Children returns this node's immediate children in the DAG.
	Children() []Node

	// WithChildren returns a copy of this node with its children
	// replaced, used by the transform package's rewrite visitors.
	// It errors if len(children) doesn't match what this node kind
	// expects.
	WithChildren(children ...Node) (Node, error)

	// Schema is the output schema this node produces.
	Schema() Schema

	// String renders a single-line, human-readable description used
	// by EXPLAIN (§4.1 "EXPLAIN").
	String() string
}

var nodeIDSeq atomic.Int64

// NextNodeID hands out a process-wide unique plan node id. Plan node
// constructors call this once per node, including those the optimizer
// calls when it builds a new node; WithChildren copies keep the
// original id.
func NextNodeID() int64 {
	return nodeIDSeq.Add(1)
}
