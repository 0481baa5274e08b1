package plan

import "github.com/mabel-dev/opteryx/sql"

// Project evaluates a list of expressions against its child's rows,
// producing the named output schema (§3.3). The optimizer's
// projection-pushdown (§4.2 strategy 7) and redundant-elimination
// (§4.2 strategy 14, "identity projections") strategies both operate
// on this node.
type Project struct {
	id          int64
	Projections []sql.Expression
	Names       []string
	Child       sql.Node
	schema      sql.Schema
}

// NewProject builds a Project node; names must be parallel to
// projections and becomes the output schema's column names.
func NewProject(projections []sql.Expression, names []string, child sql.Node) *Project {
	schema := make(sql.Schema, len(projections))
	for i, p := range projections {
		schema[i] = &sql.Column{Name: names[i], Type: p.Type(), Nullable: p.Nullable()}
	}
	return &Project{id: sql.NextNodeID(), Projections: projections, Names: names, Child: child, schema: schema}
}

func (p *Project) ID() int64            { return p.id }
func (p *Project) Children() []sql.Node { return []sql.Node{p.Child} }
func (p *Project) Schema() sql.Schema   { return p.schema }

func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("Project", 1, len(children))
	}
	np := NewProject(p.Projections, p.Names, children[0])
	np.id = p.id
	return np, nil
}

// IsIdentity reports whether this Project selects its child's columns
// unchanged, in order — the shape the redundant-elimination strategy
// removes.
func (p *Project) IsIdentity() bool {
	childSchema := p.Child.Schema()
	if len(p.Projections) != len(childSchema) {
		return false
	}
	for i, proj := range p.Projections {
		gf, ok := proj.(interface{ Index() int })
		if !ok || gf.Index() != i {
			return false
		}
	}
	return true
}

func (p *Project) String() string {
	return "Project(" + joinNames(p.Names) + ")"
}

func joinNames(names []string) string {
	s := ""
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s
}
