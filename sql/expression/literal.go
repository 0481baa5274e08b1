package expression

import (
	"fmt"

	"github.com/mabel-dev/opteryx/sql"
)

// Literal is a constant value known at plan time (§3.4 Literal(value,
// type)). Evaluating a Literal against a morsel broadcasts the single
// value to every row, satisfying §8 property 8 (len(eval) ==
// m.RowCount) even though the value itself does not vary per row.
type Literal struct {
	value    any
	fieldType sql.Type
}

// NewLiteral wraps a Go value with its semantic type. value == nil
// denotes SQL NULL.
func NewLiteral(value any, t sql.Type) *Literal {
	return &Literal{value: value, fieldType: t}
}

func (l *Literal) Type() sql.Type    { return l.fieldType }
func (l *Literal) Nullable() bool    { return l.value == nil }
func (l *Literal) Value() any        { return l.value }
func (l *Literal) Children() []sql.Expression { return nil }

func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrChildCount.New("Literal", 0, len(children))
	}
	return l, nil
}

func (l *Literal) String() string {
	if l.value == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", l.value)
}

// Eval broadcasts the literal's value to m.RowCount rows.
func (l *Literal) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	v := sql.NewVector(l.fieldType, m.RowCount)
	if l.value == nil {
		v.EnsureValidity()
		for i := 0; i < m.RowCount; i++ {
			v.SetNull(i)
		}
		return v, nil
	}
	for i := 0; i < m.RowCount; i++ {
		if err := setScalar(v, i, l.value); err != nil {
			return nil, err
		}
	}
	return v, nil
}
