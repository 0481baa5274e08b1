// Package plan implements the logical plan node kinds of §3.3 (Scan,
// Filter, Project, Subquery, the six join kinds, Union,
// AggregateAndGroup, Distinct, Order, Limit, Offset, UnnestFunction,
// ShowColumns, Explain, CommonTableExpression), grounded on the
// teacher's sql/plan package (one file per node kind, a WithChildren
// used by the rewrite framework in sql/transform, schema carried on
// the node itself).
package plan

import errorkind "gopkg.in/src-d/go-errors.v1"

// Error kinds raised while building or rewriting a plan (§7).
var (
	ErrUnresolvedIdentifier = errorkind.NewKind("unresolved identifier: %s")
	ErrTypeMismatch         = errorkind.NewKind("type mismatch: %s")
	ErrAmbiguousColumn      = errorkind.NewKind("ambiguous column: %s")
	ErrUnsupportedSyntax    = errorkind.NewKind("unsupported syntax: %s")
	ErrUnsupportedType      = errorkind.NewKind("unsupported type: %s")
	ErrChildCount           = errorkind.NewKind("%s expects %d children, got %d")
)
