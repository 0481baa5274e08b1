package expression

import (
	"github.com/mabel-dev/opteryx/sql"
)

// ArithOp enumerates the arithmetic BinaryOp operators (§3.4
// BinaryOp(op, l, r)).
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

func (op ArithOp) String() string {
	return [...]string{"+", "-", "*", "/", "%"}[op]
}

// Arithmetic is a vectorized arithmetic BinaryOp. Type coercion
// follows §4.3: integer + floating -> floating, date + interval ->
// date, timestamp - timestamp -> interval, decimal promotes to the
// wider operand.
type Arithmetic struct {
	op          ArithOp
	left, right sql.Expression
	resultType  sql.Type
}

// NewArithmetic builds an arithmetic expression, computing the result
// type once via sql.Coerce so Type() never has to re-derive it.
func NewArithmetic(op ArithOp, left, right sql.Expression) *Arithmetic {
	return &Arithmetic{op: op, left: left, right: right, resultType: sql.Coerce(left.Type(), right.Type())}
}

func (a *Arithmetic) Type() sql.Type { return a.resultType }
func (a *Arithmetic) Nullable() bool { return a.left.Nullable() || a.right.Nullable() }

func (a *Arithmetic) Children() []sql.Expression { return []sql.Expression{a.left, a.right} }

func (a *Arithmetic) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrChildCount.New("Arithmetic", 2, len(children))
	}
	return NewArithmetic(a.op, children[0], children[1]), nil
}

func (a *Arithmetic) String() string {
	return a.left.String() + " " + a.op.String() + " " + a.right.String()
}

func (a *Arithmetic) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	lv, err := a.left.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	rv, err := a.right.Eval(ctx, m)
	if err != nil {
		return nil, err
	}

	out := sql.NewVector(a.resultType, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		if !lv.IsValid(i) || !rv.IsValid(i) {
			out.SetNull(i)
			continue
		}
		lval := ValueAt(lv, i)
		rval := ValueAt(rv, i)
		result, err := applyArith(a.op, a.resultType, lval, rval)
		if err != nil {
			return nil, err
		}
		if result == nil {
			out.SetNull(i)
			continue
		}
		if err := setScalar(out, i, result); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func applyArith(op ArithOp, t sql.Type, l, r any) (any, error) {
	if t == sql.Date32 {
		// date +/- interval: only the whole-day component applies to a
		// 32-bit day count (§4.3 "date + interval -> date").
		if iv, ok := r.(sql.Interval); ok {
			days := toInt32(l)
			if op == Add {
				return days + iv.Days + iv.Months*30, nil
			}
			return days - iv.Days - iv.Months*30, nil
		}
	}
	if t == sql.Interval {
		// timestamp - timestamp -> interval, expressed purely in
		// nanoseconds (§4.3).
		lt, lok := l.(int64)
		rt, rok := r.(int64)
		if lok && rok && op == Sub {
			return sql.Interval{Nanoseconds: (lt - rt) * 1000}, nil
		}
	}
	if t == sql.Decimal {
		ld, rd := toDecimal(l), toDecimal(r)
		switch op {
		case Add:
			return ld.Add(rd), nil
		case Sub:
			return ld.Sub(rd), nil
		case Mul:
			return ld.Mul(rd), nil
		case Div:
			if rd.IsZero() {
				return nil, ErrDivisionByZero.New()
			}
			return ld.Div(rd), nil
		case Mod:
			if rd.IsZero() {
				return nil, ErrDivisionByZero.New()
			}
			return ld.Mod(rd), nil
		}
	}
	if t.IsFloating() {
		lf, rf := toFloat64(l), toFloat64(r)
		switch op {
		case Add:
			return lf + rf, nil
		case Sub:
			return lf - rf, nil
		case Mul:
			return lf * rf, nil
		case Div:
			if rf == 0 {
				return nil, ErrDivisionByZero.New()
			}
			return lf / rf, nil
		case Mod:
			if rf == 0 {
				return nil, ErrDivisionByZero.New()
			}
			return float64(int64(lf) % int64(rf)), nil
		}
	}
	li, ri := toInt64(l), toInt64(r)
	switch op {
	case Add:
		return li + ri, nil
	case Sub:
		return li - ri, nil
	case Mul:
		return li * ri, nil
	case Div:
		if ri == 0 {
			return nil, ErrDivisionByZero.New()
		}
		return li / ri, nil
	case Mod:
		if ri == 0 {
			return nil, ErrDivisionByZero.New()
		}
		return li % ri, nil
	}
	return nil, ErrTypeMismatch.New("unknown arithmetic operator")
}
