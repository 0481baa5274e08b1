package expression

import "github.com/mabel-dev/opteryx/sql"

// CaseBranch is one WHEN/THEN pair of a Case expression (§3.4
// Case(branches, else)).
type CaseBranch struct {
	When sql.Expression
	Then sql.Expression
}

// Case evaluates its branches row by row: the first branch whose
// When is true for a given row supplies that row's value; if none
// match, Else supplies it (or NULL if Else is nil).
type Case struct {
	branches []CaseBranch
	elseExpr sql.Expression
	outType  sql.Type
}

// NewCase builds a CASE expression; outType is the declared result
// type (the binder pre-pass has already reconciled branch types).
func NewCase(branches []CaseBranch, elseExpr sql.Expression, outType sql.Type) *Case {
	return &Case{branches: branches, elseExpr: elseExpr, outType: outType}
}

func (c *Case) Type() sql.Type { return c.outType }
func (c *Case) Nullable() bool { return true }

func (c *Case) Children() []sql.Expression {
	children := make([]sql.Expression, 0, len(c.branches)*2+1)
	for _, b := range c.branches {
		children = append(children, b.When, b.Then)
	}
	if c.elseExpr != nil {
		children = append(children, c.elseExpr)
	}
	return children
}

func (c *Case) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	want := len(c.branches) * 2
	hasElse := c.elseExpr != nil
	if hasElse {
		want++
	}
	if len(children) != want {
		return nil, ErrChildCount.New("Case", want, len(children))
	}
	branches := make([]CaseBranch, len(c.branches))
	for i := range branches {
		branches[i] = CaseBranch{When: children[i*2], Then: children[i*2+1]}
	}
	var elseExpr sql.Expression
	if hasElse {
		elseExpr = children[len(children)-1]
	}
	return NewCase(branches, elseExpr, c.outType), nil
}

func (c *Case) String() string {
	s := "CASE"
	for _, b := range c.branches {
		s += " WHEN " + b.When.String() + " THEN " + b.Then.String()
	}
	if c.elseExpr != nil {
		s += " ELSE " + c.elseExpr.String()
	}
	return s + " END"
}

func (c *Case) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	whenVecs := make([]*sql.Vector, len(c.branches))
	thenVecs := make([]*sql.Vector, len(c.branches))
	for i, b := range c.branches {
		wv, err := b.When.Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		tv, err := b.Then.Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		whenVecs[i] = wv
		thenVecs[i] = tv
	}
	var elseVec *sql.Vector
	if c.elseExpr != nil {
		ev, err := c.elseExpr.Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		elseVec = ev
	}

	out := sql.NewVector(c.outType, m.RowCount)
	for row := 0; row < m.RowCount; row++ {
		matched := false
		for b := range c.branches {
			if whenVecs[b].IsValid(row) && whenVecs[b].BoolData[row] {
				if err := setScalar(out, row, ValueAt(thenVecs[b], row)); err != nil {
					return nil, err
				}
				if !thenVecs[b].IsValid(row) {
					out.SetNull(row)
				}
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if elseVec != nil {
			if err := setScalar(out, row, ValueAt(elseVec, row)); err != nil {
				return nil, err
			}
			if !elseVec.IsValid(row) {
				out.SetNull(row)
			}
		} else {
			if err := setScalar(out, row, nil); err != nil {
				return nil, err
			}
			out.SetNull(row)
		}
	}
	return out, nil
}
