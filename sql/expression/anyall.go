package expression

import "github.com/mabel-dev/opteryx/sql"

// AnyAll implements `e op ANY (list)` / `e op ALL (list)` over an
// array-valued expression (§3.4 Any/All(e, op, subquery_or_list)).
//
// Null handling follows the SQL ANY/ALL rules (§4.3): for ANY, a
// single definitive TRUE comparison makes the whole expression TRUE
// regardless of other elements being NULL; otherwise, if any
// comparison is NULL the result is NULL; otherwise FALSE. ALL is the
// dual: a single definitive FALSE makes the whole expression FALSE;
// otherwise NULL if any comparison is NULL; otherwise TRUE.
type AnyAll struct {
	target sql.Expression
	op     CompareOp
	list   sql.Expression // Array-typed
	all    bool
}

// NewAny builds `target op ANY (list)`.
func NewAny(target sql.Expression, op CompareOp, list sql.Expression) *AnyAll {
	return &AnyAll{target: target, op: op, list: list}
}

// NewAll builds `target op ALL (list)`.
func NewAll(target sql.Expression, op CompareOp, list sql.Expression) *AnyAll {
	return &AnyAll{target: target, op: op, list: list, all: true}
}

func (a *AnyAll) Type() sql.Type             { return sql.Bool }
func (a *AnyAll) Nullable() bool             { return true }
func (a *AnyAll) Children() []sql.Expression { return []sql.Expression{a.target, a.list} }

func (a *AnyAll) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrChildCount.New("AnyAll", 2, len(children))
	}
	if a.all {
		return NewAll(children[0], a.op, children[1]), nil
	}
	return NewAny(children[0], a.op, children[1]), nil
}

func (a *AnyAll) String() string {
	kw := "ANY"
	if a.all {
		kw = "ALL"
	}
	return a.target.String() + " " + a.op.String() + " " + kw + "(" + a.list.String() + ")"
}

func (a *AnyAll) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	tv, err := a.target.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	lv, err := a.list.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(sql.Bool, m.RowCount)
	for row := 0; row < m.RowCount; row++ {
		if !tv.IsValid(row) || !lv.IsValid(row) {
			out.SetNull(row)
			continue
		}
		nested := lv.ListData[row]
		result := evalAnyAll(a.op, a.all, tv.Type, ValueAt(tv, row), nested)
		if result == nil {
			out.SetNull(row)
		} else {
			out.BoolData[row] = *result
		}
	}
	return out, nil
}

func evalAnyAll(op CompareOp, all bool, t sql.Type, target any, list *sql.Vector) *bool {
	trueVal := true
	falseVal := false
	if list == nil || list.Length == 0 {
		if all {
			return &trueVal // vacuous truth: ALL of an empty set holds
		}
		return &falseVal // ANY of an empty set never holds
	}
	sawNull := false
	for i := 0; i < list.Length; i++ {
		if !list.IsValid(i) {
			sawNull = true
			continue
		}
		cmp := compareValues(t, target, ValueAt(list, i))
		hit := evalCompareOp(op, cmp)
		if !all && hit {
			return &trueVal
		}
		if all && !hit {
			return &falseVal
		}
	}
	if sawNull {
		return nil
	}
	if all {
		return &trueVal
	}
	return &falseVal
}
