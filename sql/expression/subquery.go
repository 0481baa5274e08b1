package expression

import "github.com/mabel-dev/opteryx/sql"

// PlanExecutor is the minimal capability a Subquery expression needs
// from the executor (§4.3): run a compiled plan to completion and
// hand back its single scalar result column, broadcast to every row
// of the morsel that triggered it. The executor package implements
// this; expression stays free of an import cycle on it.
type PlanExecutor interface {
	ExecuteScalar(ctx *sql.Context, planID int64) (any, sql.Type, error)
}

// Subquery wraps an uncorrelated scalar subquery (§3.4
// Subquery(plan_id)). Correlated subqueries are rewritten by the
// analyzer's correlated-filter-lifting strategy (§4.2 strategy 4) into
// joins before reaching evaluation; by the time a Subquery expression
// is evaluated it is guaranteed scalar and parameter-free.
type Subquery struct {
	planID   int64
	executor PlanExecutor
	fieldType sql.Type
}

// NewSubquery builds a scalar subquery expression bound to a compiled
// plan id.
func NewSubquery(planID int64, executor PlanExecutor, fieldType sql.Type) *Subquery {
	return &Subquery{planID: planID, executor: executor, fieldType: fieldType}
}

func (s *Subquery) Type() sql.Type             { return s.fieldType }
func (s *Subquery) Nullable() bool             { return true }
func (s *Subquery) Children() []sql.Expression { return nil }

func (s *Subquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrChildCount.New("Subquery", 0, len(children))
	}
	return s, nil
}

func (s *Subquery) String() string { return "(subquery)" }

func (s *Subquery) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	value, t, err := s.executor.ExecuteScalar(ctx, s.planID)
	if err != nil {
		return nil, err
	}
	out := sql.NewVector(t, m.RowCount)
	for i := 0; i < m.RowCount; i++ {
		if value == nil {
			if err := setScalar(out, i, nil); err != nil {
				return nil, err
			}
			out.SetNull(i)
			continue
		}
		if err := setScalar(out, i, value); err != nil {
			return nil, err
		}
	}
	return out, nil
}
