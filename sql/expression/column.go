package expression

import (
	"fmt"

	"github.com/mabel-dev/opteryx/sql"
)

// GetField is the resolved column reference (§3.4 ColumnRef(id)),
// named after the teacher's expression.GetField: by the time the
// planner constructs one, the binder pre-pass (§1, out of scope) has
// already resolved an identifier to a schema index, so GetField reads
// entirely by position and never re-resolves a name at evaluation
// time.
type GetField struct {
	index      int
	fieldType  sql.Type
	name       string
	nullable   bool
}

// NewGetField constructs a resolved column reference.
func NewGetField(index int, fieldType sql.Type, name string, nullable bool) *GetField {
	return &GetField{index: index, fieldType: fieldType, name: name, nullable: nullable}
}

func (g *GetField) Type() sql.Type             { return g.fieldType }
func (g *GetField) Nullable() bool             { return g.nullable }
func (g *GetField) Index() int                 { return g.index }
func (g *GetField) Name() string               { return g.name }
func (g *GetField) Children() []sql.Expression { return nil }

func (g *GetField) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrChildCount.New("GetField", 0, len(children))
	}
	return g, nil
}

func (g *GetField) String() string {
	return fmt.Sprintf("GetField(%d, %s)", g.index, g.name)
}

// Eval returns the morsel's column at g.index unchanged: GetField is
// the one expression kind whose Eval is a pure lookup rather than a
// computation.
func (g *GetField) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	if g.index < 0 || g.index >= len(m.Columns) {
		return nil, sql.ErrUnknownColumn.New(g.name)
	}
	return m.Columns[g.index], nil
}
