package exec

import (
	"fmt"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
)

// Builder compiles a logical plan (sql/plan) into a tree of physical
// Operators (§4.1 "the executor's builder walks the optimized plan and
// instantiates one operator per node"). It is not safe for concurrent
// use across independent Compile calls, since CTE fan-out state is
// scoped to a single builder instance.
type Builder struct {
	maxBuildRows int // passed to every join operator; 0 uses defaultMaxBuildRows
	ctes         map[int64]*cteBuffer
}

// NewBuilder builds a Builder. maxBuildRows bounds every join's build
// side (§4.5); 0 uses the package default.
func NewBuilder(maxBuildRows int) *Builder {
	return &Builder{maxBuildRows: maxBuildRows, ctes: make(map[int64]*cteBuffer)}
}

// Compile walks root and returns the matching physical operator tree.
func (b *Builder) Compile(root sql.Node) (Operator, error) {
	switch n := root.(type) {
	case *plan.Scan:
		return NewScanOperator(n.Conn, n.PushedPredicates, n.ProjectedColumns, n.TimeRange)
	case *plan.Filter:
		child, err := b.Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return NewFilterOperator(n.Predicate, child), nil
	case *plan.Project:
		child, err := b.Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return NewProjectOperator(n.Projections, n.Schema(), child), nil
	case *plan.Join:
		return b.compileJoin(n)
	case *plan.Union:
		left, err := b.Compile(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.Compile(n.Right)
		if err != nil {
			return nil, err
		}
		return NewUnionOperator(left, right), nil
	case *plan.AggregateAndGroup:
		return b.compileAggregate(n)
	case *plan.Distinct:
		child, err := b.Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return NewDistinctOperator(distinctColumnNames(n), child), nil
	case *plan.Order:
		child, err := b.Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return NewSortOperator(n.Fields, child), nil
	case *plan.Limit:
		child, err := b.Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return NewLimitOperator(n.Count, child), nil
	case *plan.Offset:
		child, err := b.Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return NewOffsetOperator(n.Count, child), nil
	case *plan.UnnestFunction:
		return b.compileUnnest(n)
	case *plan.ShowColumns:
		return NewShowColumnsOperator(n.TableSchema), nil
	case *plan.Explain:
		target, err := b.Compile(n.Target)
		if err != nil {
			return nil, err
		}
		var compiled Operator
		if n.Analyze {
			compiled = target
		}
		return NewExplainOperator(n.Target, n.Analyze, compiled), nil
	case *plan.Subquery:
		return b.Compile(n.Target)
	case *plan.CommonTableExpression:
		return b.compileCTE(n)
	case *plan.CTERef:
		return b.compileCTERef(n)
	default:
		return nil, fmt.Errorf("exec: no physical operator for plan node %T", root)
	}
}

func (b *Builder) compileJoin(n *plan.Join) (Operator, error) {
	left, err := b.Compile(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := b.Compile(n.Right)
	if err != nil {
		return nil, err
	}
	schema := n.Schema()
	if n.Type == plan.CrossJoinType {
		return NewCrossJoinOperator(schema, left, right, b.maxBuildRows), nil
	}
	if len(n.LeftKeys) > 0 && len(n.RightKeys) > 0 {
		return NewHashJoinOperator(n.Type, n.LeftKeys, n.RightKeys, n.Condition, schema, left, right, b.maxBuildRows), nil
	}
	return NewNestedLoopJoinOperator(n.Type, n.Condition, schema, left, right, b.maxBuildRows), nil
}

func (b *Builder) compileAggregate(n *plan.AggregateAndGroup) (Operator, error) {
	child, err := b.Compile(n.Child)
	if err != nil {
		return nil, err
	}
	aggs := make([]*expression.Aggregate, len(n.Aggregates))
	for i, e := range n.Aggregates {
		agg, ok := e.(*expression.Aggregate)
		if !ok {
			return nil, fmt.Errorf("exec: aggregate expression %T does not implement sql.Aggregation", e)
		}
		aggs[i] = agg
	}
	return NewAggregateOperator(n.GroupBy, aggs, n.Schema(), child), nil
}

// distinctColumnNames extracts the output column names Distinct.On
// refers to, or nil (meaning "every column") when On is unset.
func distinctColumnNames(n *plan.Distinct) []string {
	if n.On == nil {
		return nil
	}
	names := make([]string, len(n.On))
	for i, e := range n.On {
		if gf, ok := e.(*expression.GetField); ok {
			names[i] = gf.Name()
			continue
		}
		names[i] = fmt.Sprintf("_distinct_on_%d", i)
	}
	return names
}

func (b *Builder) compileUnnest(n *plan.UnnestFunction) (Operator, error) {
	child, err := b.Compile(n.Child)
	if err != nil {
		return nil, err
	}
	gf, ok := n.Target.(*expression.GetField)
	if !ok {
		return nil, fmt.Errorf("exec: UnnestFunction target must resolve to a column reference, got %T", n.Target)
	}
	var literals []any
	for _, f := range n.Filter {
		lit, ok := f.(*expression.Literal)
		if !ok {
			return nil, fmt.Errorf("exec: UnnestFunction filter entries must be literals, got %T", f)
		}
		literals = append(literals, lit.Value())
	}
	return NewUnnestOperator(gf.Index(), n.Schema(), literals, child), nil
}
