package expression

import "github.com/mabel-dev/opteryx/sql"

// LogicOp enumerates the boolean BinaryOp/UnaryOp operators.
type LogicOp int

const (
	And LogicOp = iota
	Or
)

// And/Or/Not follow SQL three-valued logic exactly (§4.3, §8 S7):
// NULL AND FALSE = FALSE; NULL OR TRUE = TRUE; any other combination
// involving a NULL operand is NULL.

// Logic is a vectorized AND/OR BinaryOp.
type Logic struct {
	op          LogicOp
	left, right sql.Expression
}

// NewAnd builds a three-valued-logic AND.
func NewAnd(left, right sql.Expression) *Logic { return &Logic{op: And, left: left, right: right} }

// NewOr builds a three-valued-logic OR.
func NewOr(left, right sql.Expression) *Logic { return &Logic{op: Or, left: left, right: right} }

func (l *Logic) Type() sql.Type { return sql.Bool }
func (l *Logic) Nullable() bool { return true }
func (l *Logic) Op() LogicOp    { return l.op }
func (l *Logic) Left() sql.Expression  { return l.left }
func (l *Logic) Right() sql.Expression { return l.right }

func (l *Logic) Children() []sql.Expression { return []sql.Expression{l.left, l.right} }

func (l *Logic) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrChildCount.New("Logic", 2, len(children))
	}
	if l.op == And {
		return NewAnd(children[0], children[1]), nil
	}
	return NewOr(children[0], children[1]), nil
}

func (l *Logic) String() string {
	op := "AND"
	if l.op == Or {
		op = "OR"
	}
	return l.left.String() + " " + op + " " + l.right.String()
}

func (l *Logic) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	lv, err := l.left.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	rv, err := l.right.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(sql.Bool, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		lval, lnull := boolOrNull(lv, i)
		rval, rnull := boolOrNull(rv, i)
		var res *bool
		if l.op == And {
			res = threeValuedAnd(lval, lnull, rval, rnull)
		} else {
			res = threeValuedOr(lval, lnull, rval, rnull)
		}
		if res == nil {
			out.SetNull(i)
		} else {
			out.BoolData[i] = *res
		}
	}
	return out, nil
}

func boolOrNull(v *sql.Vector, i int) (bool, bool) {
	if !v.IsValid(i) {
		return false, true
	}
	return v.BoolData[i], false
}

func threeValuedAnd(l bool, lnull bool, r bool, rnull bool) *bool {
	f := false
	t := true
	if !lnull && !l {
		return &f
	}
	if !rnull && !r {
		return &f
	}
	if lnull || rnull {
		return nil
	}
	return &t
}

func threeValuedOr(l bool, lnull bool, r bool, rnull bool) *bool {
	f := false
	t := true
	if !lnull && l {
		return &t
	}
	if !rnull && r {
		return &t
	}
	if lnull || rnull {
		return nil
	}
	return &f
}

// Not is the three-valued-logic NOT UnaryOp: NOT NULL = NULL.
type Not struct {
	child sql.Expression
}

// NewNot builds a NOT expression.
func NewNot(child sql.Expression) *Not { return &Not{child: child} }

func (n *Not) Type() sql.Type             { return sql.Bool }
func (n *Not) Nullable() bool             { return true }
func (n *Not) Children() []sql.Expression { return []sql.Expression{n.child} }
func (n *Not) Child() sql.Expression      { return n.child }

func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Not", 1, len(children))
	}
	return NewNot(children[0]), nil
}

func (n *Not) String() string { return "NOT " + n.child.String() }

func (n *Not) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	cv, err := n.child.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(sql.Bool, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		if !cv.IsValid(i) {
			out.SetNull(i)
			continue
		}
		out.BoolData[i] = !cv.BoolData[i]
	}
	return out, nil
}
