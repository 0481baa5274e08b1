// Package planner translates an already-bound statement into the
// logical plan tree of sql/plan (§4.1). The SQL lexer/parser and the
// identifier binder are out-of-scope external collaborators (§4.1:
// "the binder that resolves column identifiers against catalogs is
// described as a pre-pass; its output schema is assumed available at
// planning time") — every sql.Expression reachable from the types in
// this file is expected to already be built against its eventual
// child schema (expression.NewGetField(index, ...) for a column
// reference), the same contract sql/plan's own node constructors
// assume.
package planner

import (
	"github.com/mabel-dev/opteryx/connector"
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
)

// Catalog resolves an unqualified or schema-qualified table name to
// the connector.Connector that serves it. connector/memtable.Catalog
// and a future catalog backed by config.DataCatalogProvider both
// satisfy this.
type Catalog interface {
	Get(name string) (connector.Connector, bool)
}

// TableRefKind enumerates what a FromItem's leaf names.
type TableRefKind int

const (
	// BaseTable scans TableName through the Catalog.
	BaseTable TableRefKind = iota
	// SubqueryTable plans Subquery as a Subquery node.
	SubqueryTable
	// CTETable references a WITH binding by name; every reference
	// shares one CommonTableExpression subplan (§4.1).
	CTETable
	// UnnestTable expands an array expression evaluated against the
	// containing FROM source named by Unnest.Outer.
	UnnestTable
)

// UnnestRef describes a bound UNNEST(expr) call. Outer is the
// containing FROM source Target is evaluated against — §4.1's
// "UNNEST(arr): becomes an UnnestFunction child of the containing
// From" — so `FROM planets, UNNEST(planets.ring_elements)` binds
// Outer to the planets TableRef and Target to a GetField resolved
// against planets' schema.
type UnnestRef struct {
	Outer      *FromItem
	Target     sql.Expression
	OutputName string
	ElemType   sql.Type
	Filter     []sql.Expression // bound IN (value_set) list, nil if none
}

// TableRef is one leaf source of a FROM clause.
type TableRef struct {
	Kind      TableRefKind
	TableName string           // BaseTable
	Alias     string           // every kind
	Subquery  *SelectStatement // SubqueryTable
	CTEName   string           // CTETable
	Unnest    *UnnestRef       // UnnestTable
	Temporal  *connector.TemporalRange // BaseTable's `FOR …` clause (§4.1)
}

// JoinRef combines two FromItems with an explicit join. A bare comma
// in the FROM list (no ON/USING) is represented by the binder as a
// JoinRef of Type plan.CrossJoinType with a nil Condition — §4.1's
// "joins are always explicit" rule means the bound AST never carries
// an implicit N-way FROM list, only this left-deep chain.
type JoinRef struct {
	Left, Right         *FromItem
	Type                plan.JoinType
	Condition           sql.Expression
	LeftKeys, RightKeys []sql.Expression
}

// FromItem is either a leaf TableRef or a JoinRef combining two
// FromItems; exactly one of Table/Join is non-nil.
type FromItem struct {
	Table *TableRef
	Join  *JoinRef
}

// AggregateItem is one SELECT-list aggregate term: Expr is a built
// *expression.Aggregate (or an expression tree containing one),
// Name its output column name.
type AggregateItem struct {
	Expr sql.Expression
	Name string
}

// OrderItem is one ORDER BY term.
type OrderItem struct {
	Expr       sql.Expression
	Descending bool
	NullsFirst bool
}

// ProjectionItem is one SELECT-list output column.
type ProjectionItem struct {
	Expr sql.Expression
	Name string
}

// SelectStatement is a single bound SELECT, already resolved against
// its FROM sources' schemas (§4.1). Subqueries and CTE bodies are
// themselves *SelectStatement values nested inside TableRef/CTEBinding.
type SelectStatement struct {
	Projections []ProjectionItem
	From        *FromItem // nil for a FROM-less SELECT (e.g. SELECT 1)
	Where       sql.Expression
	GroupBy     []sql.Expression
	Aggregates  []AggregateItem
	Having      sql.Expression
	OrderBy     []OrderItem
	Limit       *int64
	Offset      *int64
	Distinct    bool
	DistinctOn  []sql.Expression
}

// CTEBinding is one WITH name AS (query) binding.
type CTEBinding struct {
	Name  string
	Query *SelectStatement
}

// Statement is the root of a bound statement: zero or more WITH
// bindings, a single SELECT body, and an optional EXPLAIN wrapper
// (§4.1 "EXPLAIN: captured as a root wrapper").
type Statement struct {
	With    []CTEBinding
	Select  *SelectStatement
	Explain *ExplainClause
}

// ExplainClause marks that Statement should be wrapped in a
// *plan.Explain rather than planned as a directly executable query.
type ExplainClause struct {
	Analyze bool
}
