package plan

import "github.com/mabel-dev/opteryx/sql"

// JoinType enumerates the six join kinds of §4.5.
type JoinType int

const (
	InnerJoinType JoinType = iota
	LeftOuterJoinType
	RightOuterJoinType
	FullOuterJoinType
	CrossJoinType
	SemiJoinType
	AntiJoinType
)

func (t JoinType) String() string {
	switch t {
	case InnerJoinType:
		return "InnerJoin"
	case LeftOuterJoinType:
		return "LeftOuterJoin"
	case RightOuterJoinType:
		return "RightOuterJoin"
	case FullOuterJoinType:
		return "FullOuterJoin"
	case CrossJoinType:
		return "CrossJoin"
	case SemiJoinType:
		return "SemiJoin"
	case AntiJoinType:
		return "AntiJoin"
	}
	return "Join"
}

// Join is the single node kind backing all six join kinds in §3.3;
// JoinType selects which physical strategy the executor's builder
// compiles it to (§4.5). Condition is nil for CrossJoin and for a
// non-equi join it holds an arbitrary boolean expression rather than
// an equality list.
type Join struct {
	id         int64
	Type       JoinType
	Left       sql.Node
	Right      sql.Node
	Condition  sql.Expression // nil for CrossJoin
	LeftKeys   []sql.Expression
	RightKeys  []sql.Expression
	schema     sql.Schema
}

// NewJoin builds a Join node of the given type. For equi-joins,
// leftKeys/rightKeys carry the parallel equality key lists the hash
// join build/probe phases use (§4.5); condition may additionally carry
// residual non-equi predicate terms evaluated after a hash match.
func NewJoin(t JoinType, left, right sql.Node, condition sql.Expression, leftKeys, rightKeys []sql.Expression) *Join {
	return &Join{
		id:        sql.NextNodeID(),
		Type:      t,
		Left:      left,
		Right:     right,
		Condition: condition,
		LeftKeys:  leftKeys,
		RightKeys: rightKeys,
		schema:    joinSchema(t, left, right),
	}
}

func joinSchema(t JoinType, left, right sql.Node) sql.Schema {
	switch t {
	case SemiJoinType, AntiJoinType:
		// Right-side columns are not projected (GLOSSARY "Semi/anti
		// join: ... right-side columns are not projected").
		return left.Schema()
	default:
		return left.Schema().Concat(right.Schema())
	}
}

func (j *Join) ID() int64            { return j.id }
func (j *Join) Children() []sql.Node { return []sql.Node{j.Left, j.Right} }
func (j *Join) Schema() sql.Schema   { return j.schema }

func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, ErrChildCount.New("Join", 2, len(children))
	}
	nj := NewJoin(j.Type, children[0], children[1], j.Condition, j.LeftKeys, j.RightKeys)
	nj.id = j.id
	return nj, nil
}

func (j *Join) String() string {
	return j.Type.String() + "(" + j.Left.String() + ", " + j.Right.String() + ")"
}

// Convenience constructors matching the teacher's NewInnerJoin /
// NewCrossJoin idiom (sql/plan/innerjoin_test.go).

// NewInnerJoin builds an equi inner join.
func NewInnerJoin(left, right sql.Node, condition sql.Expression) *Join {
	return NewJoin(InnerJoinType, left, right, condition, nil, nil)
}

// NewLeftOuterJoin builds a left outer join.
func NewLeftOuterJoin(left, right sql.Node, condition sql.Expression) *Join {
	return NewJoin(LeftOuterJoinType, left, right, condition, nil, nil)
}

// NewRightOuterJoin builds a right outer join.
func NewRightOuterJoin(left, right sql.Node, condition sql.Expression) *Join {
	return NewJoin(RightOuterJoinType, left, right, condition, nil, nil)
}

// NewFullOuterJoin builds a full outer join.
func NewFullOuterJoin(left, right sql.Node, condition sql.Expression) *Join {
	return NewJoin(FullOuterJoinType, left, right, condition, nil, nil)
}

// NewCrossJoin builds a cross join (§4.5 "Fatal if one side is
// unbounded").
func NewCrossJoin(left, right sql.Node) *Join {
	return NewJoin(CrossJoinType, left, right, nil, nil, nil)
}

// NewSemiJoin builds a semi join, also used for `IN` subqueries (§4.5).
func NewSemiJoin(left, right sql.Node, condition sql.Expression) *Join {
	return NewJoin(SemiJoinType, left, right, condition, nil, nil)
}

// NewAntiJoin builds an anti join, also used for `NOT IN` subqueries
// (§4.5).
func NewAntiJoin(left, right sql.Node, condition sql.Expression) *Join {
	return NewJoin(AntiJoinType, left, right, condition, nil, nil)
}
