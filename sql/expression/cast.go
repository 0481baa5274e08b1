package expression

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mabel-dev/opteryx/sql"
)

// Cast converts its child to targetType (§3.4 Cast(e, target_type,
// safe)). When safe is false (CAST), an impossible conversion raises
// ErrCast; when safe is true (TRY_CAST/SAFE_CAST) the same failure
// produces NULL instead (§4.3, §7 "TRY_CAST and SAFE_CAST are the
// only sites that convert a CastError into a NULL locally").
type Cast struct {
	child      sql.Expression
	targetType sql.Type
	safe       bool
}

// NewCast builds a CAST (safe=false) or TRY_CAST/SAFE_CAST (safe=true)
// expression.
func NewCast(child sql.Expression, targetType sql.Type, safe bool) *Cast {
	return &Cast{child: child, targetType: targetType, safe: safe}
}

func (c *Cast) Type() sql.Type             { return c.targetType }
func (c *Cast) Nullable() bool             { return true }
func (c *Cast) Children() []sql.Expression { return []sql.Expression{c.child} }
func (c *Cast) Safe() bool                 { return c.safe }

func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Cast", 1, len(children))
	}
	return NewCast(children[0], c.targetType, c.safe), nil
}

func (c *Cast) String() string {
	name := "CAST"
	if c.safe {
		name = "TRY_CAST"
	}
	return name + "(" + c.child.String() + " AS " + c.targetType.String() + ")"
}

func (c *Cast) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	cv, err := c.child.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(c.targetType, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		if !cv.IsValid(i) {
			if err := setScalar(out, i, nil); err != nil {
				return nil, err
			}
			out.SetNull(i)
			continue
		}
		converted, ok := convert(ValueAt(cv, i), c.targetType)
		if !ok {
			if c.safe {
				if err := setScalar(out, i, nil); err != nil {
					return nil, err
				}
				out.SetNull(i)
				continue
			}
			return nil, ErrCast.New(ValueAt(cv, i), c.targetType)
		}
		if err := setScalar(out, i, converted); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// convert performs the scalar conversion underlying CAST/TRY_CAST. It
// returns ok=false on an impossible conversion (e.g. "abc" -> INTEGER)
// rather than erroring itself, so the caller can apply the CAST vs.
// TRY_CAST failure policy once in one place.
func convert(v any, target sql.Type) (any, bool) {
	switch target {
	case sql.Int8, sql.Int16, sql.Int32, sql.Int64:
		switch t := v.(type) {
		case string:
			n, err := strconv.ParseInt(t, 10, 64)
			if err != nil {
				return nil, false
			}
			return n, true
		case float64:
			return int64(t), true
		case bool:
			if t {
				return int64(1), true
			}
			return int64(0), true
		default:
			return toInt64(v), true
		}
	case sql.Float32, sql.Float64:
		switch t := v.(type) {
		case string:
			f, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, false
			}
			return f, true
		default:
			return toFloat64(v), true
		}
	case sql.Decimal:
		switch t := v.(type) {
		case string:
			d, err := decimal.NewFromString(t)
			if err != nil {
				return nil, false
			}
			return d, true
		default:
			return toDecimal(v), true
		}
	case sql.String:
		return toStringBytes(v), true
	case sql.Bool:
		switch t := v.(type) {
		case string:
			b, err := strconv.ParseBool(t)
			if err != nil {
				return nil, false
			}
			return b, true
		case bool:
			return t, true
		default:
			return toInt64(v) != 0, true
		}
	default:
		return v, true
	}
}
