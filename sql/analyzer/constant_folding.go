package analyzer

import (
	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/expression"
	"github.com/mabel-dev/opteryx/sql/plan"
	"github.com/mabel-dev/opteryx/sql/transform"
)

// ConstantFolding is strategy 1 (and, re-run, strategy 15): evaluate
// expressions whose inputs are all literals, and propagate identity
// and absorber shortcuts for AND/OR without needing to evaluate the
// other operand (§4.2: "TRUE AND x", "FALSE OR x", arithmetic with
// identity/absorber). Pass records which catalog entry an instance
// is; neither Name nor the rewrite logic depends on it.
type ConstantFolding struct {
	Pass int
}

func (c *ConstantFolding) Name() string { return "constant_folding" }

func (c *ConstantFolding) Apply(ctx *Context, root sql.Node) (sql.Node, error) {
	return transform.TransformUp(root, func(n sql.Node) (sql.Node, error) {
		switch node := n.(type) {
		case *plan.Filter:
			folded, err := transform.TransformExprUp(node.Predicate, foldExpr)
			if err != nil {
				ctx.Warn(c.Name(), err.Error())
				return n, nil
			}
			return node.WithPredicate(folded), nil
		case *plan.Project:
			changed := false
			newProjections := make([]sql.Expression, len(node.Projections))
			for i, p := range node.Projections {
				folded, err := transform.TransformExprUp(p, foldExpr)
				if err != nil {
					ctx.Warn(c.Name(), err.Error())
					newProjections[i] = p
					continue
				}
				newProjections[i] = folded
				if folded != p {
					changed = true
				}
			}
			if !changed {
				return n, nil
			}
			return plan.NewProject(newProjections, node.Names, node.Child), nil
		default:
			return n, nil
		}
	})
}

// foldExpr applies one level of constant-folding rewrite. It never
// errors on a shape it doesn't recognise; it just returns e unchanged.
func foldExpr(e sql.Expression) (sql.Expression, error) {
	switch expr := e.(type) {
	case *expression.Logic:
		return foldLogic(expr), nil
	case *expression.Not:
		if lit, isNull, ok := literalBool(expr.Child()); ok && !isNull {
			return expression.NewLiteral(!lit, sql.Bool), nil
		}
		return expr, nil
	default:
		if isAllLiterals(e) && len(e.Children()) > 0 {
			return foldByEval(e), nil
		}
		return e, nil
	}
}

func foldLogic(l *expression.Logic) sql.Expression {
	lv, lnull, lok := literalBool(l.Left())
	rv, rnull, rok := literalBool(l.Right())

	if l.Op() == expression.And {
		if lok && !lnull && !lv {
			return expression.NewLiteral(false, sql.Bool) // FALSE AND x = FALSE
		}
		if rok && !rnull && !rv {
			return expression.NewLiteral(false, sql.Bool) // x AND FALSE = FALSE
		}
		if lok && !lnull && lv {
			return l.Right() // TRUE AND x = x
		}
		if rok && !rnull && rv {
			return l.Left() // x AND TRUE = x
		}
	} else {
		if lok && !lnull && lv {
			return expression.NewLiteral(true, sql.Bool) // TRUE OR x = TRUE
		}
		if rok && !rnull && rv {
			return expression.NewLiteral(true, sql.Bool) // x OR TRUE = TRUE
		}
		if lok && !lnull && !lv {
			return l.Right() // FALSE OR x = x
		}
		if rok && !rnull && !rv {
			return l.Left() // x OR FALSE = x
		}
	}
	return l
}

// foldByEval evaluates an all-literal expression against a single
// synthetic one-row morsel and replaces it with the resulting Literal.
// On any evaluation error the original expression is returned
// unchanged; constant folding never fails a query.
func foldByEval(e sql.Expression) sql.Expression {
	m := &sql.Morsel{Schema: sql.Schema{}, RowCount: 1}
	ctx := sql.NewEmptyContext()
	v, err := e.Eval(ctx, m)
	if err != nil {
		return e
	}
	if !v.IsValid(0) {
		return expression.NewLiteral(nil, e.Type())
	}
	return expression.NewLiteral(expression.ValueAt(v, 0), e.Type())
}
