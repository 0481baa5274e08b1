package expression

import "github.com/mabel-dev/opteryx/sql"

// ArrowGet implements struct/list element access (§3.4 ArrowGet(e,
// key)): `a[i]` on a list, `s -> 'key'` / `s ->> 'key'` on a struct.
// Both return NULL when the index is out of range or the key is
// absent — never an error (§4.3 "Subscript... returns NULL when index
// is out of range or key is absent (no error)").
type ArrowGet struct {
	target   sql.Expression
	key      any // int for list index, string for struct key
	asText   bool
	elemType sql.Type
}

// NewArrowGet builds a subscript/arrow-access expression. asText
// mirrors the `->>` variant, which always produces String.
func NewArrowGet(target sql.Expression, key any, asText bool, elemType sql.Type) *ArrowGet {
	return &ArrowGet{target: target, key: key, asText: asText, elemType: elemType}
}

func (a *ArrowGet) Type() sql.Type {
	if a.asText {
		return sql.String
	}
	return a.elemType
}

func (a *ArrowGet) Nullable() bool             { return true }
func (a *ArrowGet) Children() []sql.Expression { return []sql.Expression{a.target} }

func (a *ArrowGet) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("ArrowGet", 1, len(children))
	}
	return NewArrowGet(children[0], a.key, a.asText, a.elemType), nil
}

func (a *ArrowGet) String() string {
	if _, ok := a.key.(int); ok {
		return a.target.String() + "[...]"
	}
	if a.asText {
		return a.target.String() + " ->> ..."
	}
	return a.target.String() + " -> ..."
}

func (a *ArrowGet) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	tv, err := a.target.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(a.Type(), m.RowCount)
	for row := 0; row < m.RowCount; row++ {
		if !tv.IsValid(row) {
			if err := setScalar(out, row, nil); err != nil {
				return nil, err
			}
			out.SetNull(row)
			continue
		}
		nested := tv.ListData[row]
		value, ok := a.lookup(nested)
		if !ok {
			if err := setScalar(out, row, nil); err != nil {
				return nil, err
			}
			out.SetNull(row)
			continue
		}
		if a.asText {
			value = stringifyValue(value)
		}
		if err := setScalar(out, row, value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// lookup resolves a.key against a single row's nested vector: an int
// key indexes a list (Array), a string key scans the nested vector's
// rows for the structField whose key matches.
func (a *ArrowGet) lookup(nested *sql.Vector) (any, bool) {
	if nested == nil {
		return nil, false
	}
	switch k := a.key.(type) {
	case int:
		if k < 0 || k >= nested.Length {
			return nil, false
		}
		if !nested.IsValid(k) {
			return nil, false
		}
		return ValueAt(nested, k), true
	case string:
		for i := 0; i < nested.Length; i++ {
			if name, ok := ValueAt(nested, i).(structField); ok && name.key == k {
				if !name.valid {
					return nil, false
				}
				return name.value, true
			}
		}
		return nil, false
	}
	return nil, false
}

// structField is the element representation used by NonNative struct
// vectors: each row of the nested vector holds one field.
type structField struct {
	key   string
	value any
	valid bool
}

func stringifyValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return stringifyAny(v)
}
