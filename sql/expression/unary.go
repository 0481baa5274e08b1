package expression

import "github.com/mabel-dev/opteryx/sql"

// IsNull implements `e IS NULL` / `e IS NOT NULL` (a UnaryOp, §3.4).
type IsNull struct {
	child  sql.Expression
	negate bool
}

// NewIsNull builds `child IS NULL`; negate=true builds `IS NOT NULL`.
func NewIsNull(child sql.Expression, negate bool) *IsNull {
	return &IsNull{child: child, negate: negate}
}

func (n *IsNull) Type() sql.Type             { return sql.Bool }
func (n *IsNull) Nullable() bool             { return false }
func (n *IsNull) Children() []sql.Expression { return []sql.Expression{n.child} }

func (n *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("IsNull", 1, len(children))
	}
	return NewIsNull(children[0], n.negate), nil
}

func (n *IsNull) String() string {
	if n.negate {
		return n.child.String() + " IS NOT NULL"
	}
	return n.child.String() + " IS NULL"
}

func (n *IsNull) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	cv, err := n.child.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(sql.Bool, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		isNull := !cv.IsValid(i)
		out.BoolData[i] = isNull != n.negate
	}
	return out, nil
}

// Negate implements unary minus.
type Negate struct {
	child sql.Expression
}

// NewNegate builds unary minus.
func NewNegate(child sql.Expression) *Negate { return &Negate{child: child} }

func (n *Negate) Type() sql.Type             { return n.child.Type() }
func (n *Negate) Nullable() bool             { return n.child.Nullable() }
func (n *Negate) Children() []sql.Expression { return []sql.Expression{n.child} }

func (n *Negate) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Negate", 1, len(children))
	}
	return NewNegate(children[0]), nil
}

func (n *Negate) String() string { return "-" + n.child.String() }

func (n *Negate) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	cv, err := n.child.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(n.Type(), m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		if !cv.IsValid(i) {
			out.SetNull(i)
			continue
		}
		switch n.Type() {
		case sql.Decimal:
			out.DecimalData[i] = toDecimal(ValueAt(cv, i)).Neg()
		case sql.Float32, sql.Float64:
			if err := setScalar(out, i, -toFloat64(ValueAt(cv, i))); err != nil {
				return nil, err
			}
		default:
			if err := setScalar(out, i, -toInt64(ValueAt(cv, i))); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
