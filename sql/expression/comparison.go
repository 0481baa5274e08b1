package expression

import (
	"bytes"

	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
)

// CompareOp enumerates the comparison BinaryOp operators.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Lte
	Gt
	Gte
)

func (op CompareOp) String() string {
	return [...]string{"=", "<>", "<", "<=", ">", ">="}[op]
}

// Comparison is a vectorized comparison BinaryOp. Its result follows
// SQL three-valued logic: if either operand is null the row's result
// is null (handled by the logical layer, not a boolean), not false.
type Comparison struct {
	op          CompareOp
	left, right sql.Expression
}

// NewComparison builds a comparison expression.
func NewComparison(op CompareOp, left, right sql.Expression) *Comparison {
	return &Comparison{op: op, left: left, right: right}
}

// NewEquals is a convenience constructor mirroring the teacher's
// expression.NewEquals, used pervasively to build equi-join keys.
func NewEquals(left, right sql.Expression) *Comparison {
	return NewComparison(Eq, left, right)
}

func (c *Comparison) Type() sql.Type { return sql.Bool }
func (c *Comparison) Nullable() bool { return true }

func (c *Comparison) Children() []sql.Expression { return []sql.Expression{c.left, c.right} }

func (c *Comparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrChildCount.New("Comparison", 2, len(children))
	}
	return NewComparison(c.op, children[0], children[1]), nil
}

func (c *Comparison) Op() CompareOp { return c.op }
func (c *Comparison) Left() sql.Expression  { return c.left }
func (c *Comparison) Right() sql.Expression { return c.right }

func (c *Comparison) String() string {
	return c.left.String() + " " + c.op.String() + " " + c.right.String()
}

func (c *Comparison) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	lv, err := c.left.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	rv, err := c.right.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(sql.Bool, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		if !lv.IsValid(i) || !rv.IsValid(i) {
			out.SetNull(i)
			continue
		}
		cmp := compareValues(lv.Type, ValueAt(lv, i), ValueAt(rv, i))
		out.BoolData[i] = evalCompareOp(c.op, cmp)
	}
	return out, nil
}

func evalCompareOp(op CompareOp, cmp int) bool {
	switch op {
	case Eq:
		return cmp == 0
	case Ne:
		return cmp != 0
	case Lt:
		return cmp < 0
	case Lte:
		return cmp <= 0
	case Gt:
		return cmp > 0
	case Gte:
		return cmp >= 0
	}
	return false
}

// compareValues returns -1/0/1 comparing two non-null scalar values of
// (roughly) the same family, coercing numeric types as needed.
func compareValues(t sql.Type, l, r any) int {
	switch lt := l.(type) {
	case string:
		return bytes.Compare([]byte(lt), []byte(r.(string)))
	case decimal.Decimal:
		return lt.Cmp(toDecimal(r))
	case bool:
		rb := r.(bool)
		if lt == rb {
			return 0
		}
		if !lt && rb {
			return -1
		}
		return 1
	case float32, float64:
		lf, rf := toFloat64(l), toFloat64(r)
		switch {
		case lf < rf:
			return -1
		case lf > rf:
			return 1
		default:
			return 0
		}
	default:
		li, ri := toInt64(l), toInt64(r)
		switch {
		case li < ri:
			return -1
		case li > ri:
			return 1
		default:
			return 0
		}
	}
}
