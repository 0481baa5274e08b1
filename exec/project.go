package exec

import "github.com/mabel-dev/opteryx/sql"

// ProjectOperator evaluates a list of expressions against each input
// morsel, producing a new morsel with the projected schema (§4.4).
type ProjectOperator struct {
	baseOperator
	projections []sql.Expression
	schema      sql.Schema
	child       Operator
}

// NewProjectOperator builds a ProjectOperator.
func NewProjectOperator(projections []sql.Expression, schema sql.Schema, child Operator) *ProjectOperator {
	return &ProjectOperator{baseOperator: baseOperator{name: "Project"}, projections: projections, schema: schema, child: child}
}

func (p *ProjectOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	m, err := p.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	cols := make([]*sql.Vector, len(p.projections))
	for i, e := range p.projections {
		v, err := e.Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		cols[i] = v
	}
	out := &sql.Morsel{Schema: p.schema, Columns: cols, RowCount: m.RowCount}
	p.recordRows(ctx, out)
	return out, nil
}

func (p *ProjectOperator) Close() error { return p.child.Close() }
