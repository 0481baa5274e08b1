package expression

import "github.com/mabel-dev/opteryx/sql"

// InList evaluates `e IN (values...)` (§3.4 InList(e, values)). SQL
// null-sensitive semantics apply: if e is null the result is null;
// if e is non-null and no value matches but at least one value is
// null, the result is null (it might have matched the unknown value);
// otherwise the result is the straightforward membership test.
type InList struct {
	target sql.Expression
	values []sql.Expression
	negate bool
}

// NewInList builds `target IN (values...)`; negate=true builds `NOT
// IN`.
func NewInList(target sql.Expression, values []sql.Expression, negate bool) *InList {
	return &InList{target: target, values: values, negate: negate}
}

func (l *InList) Type() sql.Type           { return sql.Bool }
func (l *InList) Nullable() bool           { return true }
func (l *InList) Target() sql.Expression   { return l.target }
func (l *InList) Values() []sql.Expression { return l.values }
func (l *InList) Negated() bool            { return l.negate }

func (l *InList) Children() []sql.Expression {
	children := make([]sql.Expression, 0, len(l.values)+1)
	children = append(children, l.target)
	children = append(children, l.values...)
	return children
}

func (l *InList) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) < 1 {
		return nil, ErrChildCount.New("InList", len(l.values)+1, len(children))
	}
	return NewInList(children[0], children[1:], l.negate), nil
}

func (l *InList) String() string {
	s := l.target.String()
	if l.negate {
		s += " NOT IN ("
	} else {
		s += " IN ("
	}
	for i, v := range l.values {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + ")"
}

func (l *InList) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	tv, err := l.target.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	valVecs := make([]*sql.Vector, len(l.values))
	for i, v := range l.values {
		vv, err := v.Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		valVecs[i] = vv
	}

	out := sql.NewVector(sql.Bool, m.RowCount)
	for row := 0; row < m.RowCount; row++ {
		if !tv.IsValid(row) {
			out.SetNull(row)
			continue
		}
		target := ValueAt(tv, row)
		matched := false
		sawNull := false
		for _, vv := range valVecs {
			if !vv.IsValid(row) {
				sawNull = true
				continue
			}
			if compareValues(tv.Type, target, ValueAt(vv, row)) == 0 {
				matched = true
				break
			}
		}
		switch {
		case matched:
			out.BoolData[row] = !l.negate
		case sawNull:
			out.SetNull(row)
		default:
			out.BoolData[row] = l.negate
		}
	}
	return out, nil
}
