package plan

import "github.com/mabel-dev/opteryx/sql"

// UnnestFunction expands an array-valued column into one row per
// element, replacing the target column with the scalar element while
// preserving every sibling column verbatim (§4.7). If Filter is set
// (the `IN (value_set)` form), only matching elements produce rows.
type UnnestFunction struct {
	id         int64
	Target     sql.Expression // the array-typed column or expression to expand
	OutputName string
	Filter     []sql.Expression // optional IN (value_set) match list, nil means "no filter"
	Child      sql.Node
	schema     sql.Schema
}

// NewUnnestFunction builds an UnnestFunction node. The target column
// is replaced in the output schema by a scalar column named
// outputName, typed elemType.
func NewUnnestFunction(target sql.Expression, outputName string, elemType sql.Type, filter []sql.Expression, child sql.Node) *UnnestFunction {
	childSchema := child.Schema()
	schema := make(sql.Schema, 0, len(childSchema))
	replaced := false
	gf, isCol := target.(interface{ Name() string })
	for _, col := range childSchema {
		if isCol && col.Name == gf.Name() && !replaced {
			schema = append(schema, &sql.Column{Name: outputName, Type: elemType, Nullable: true})
			replaced = true
			continue
		}
		schema = append(schema, col)
	}
	if !replaced {
		schema = append(schema, &sql.Column{Name: outputName, Type: elemType, Nullable: true})
	}
	return &UnnestFunction{
		id:         sql.NextNodeID(),
		Target:     target,
		OutputName: outputName,
		Filter:     filter,
		Child:      child,
		schema:     schema,
	}
}

func (u *UnnestFunction) ID() int64            { return u.id }
func (u *UnnestFunction) Children() []sql.Node { return []sql.Node{u.Child} }
func (u *UnnestFunction) Schema() sql.Schema   { return u.schema }

func (u *UnnestFunction) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, ErrChildCount.New("UnnestFunction", 1, len(children))
	}
	nu := &UnnestFunction{id: u.id, Target: u.Target, OutputName: u.OutputName, Filter: u.Filter, Child: children[0]}
	nu.schema = u.schema
	return nu, nil
}

func (u *UnnestFunction) String() string {
	return "UnnestFunction(" + u.OutputName + ")"
}
