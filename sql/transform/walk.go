// Package transform implements the visitor-driven rewrite framework
// the optimizer's strategies are built on (§4.2), grounded on the
// teacher's sql/transform package (TransformUp/TransformDown over
// sql.Node) and extended with the Expression-tree equivalent the
// columnar core also needs for CASE/predicate rewrites.
package transform

import "github.com/mabel-dev/opteryx/sql"

// NodeFunc is applied to a node after (TransformUp) or before
// (TransformDown) its children have been rewritten.
type NodeFunc func(sql.Node) (sql.Node, error)

// TransformUp rewrites n bottom-up: children are transformed first,
// then n itself is rebuilt from the (possibly rewritten) children and
// handed to f. Each optimizer strategy in §4.2 is expressed as one
// TransformUp or TransformDown pass with a strategy-specific NodeFunc.
func TransformUp(n sql.Node, f NodeFunc) (sql.Node, error) {
	children := n.Children()
	if len(children) > 0 {
		newChildren := make([]sql.Node, len(children))
		changed := false
		for i, c := range children {
			nc, err := TransformUp(c, f)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if changed {
			rebuilt, err := n.WithChildren(newChildren...)
			if err != nil {
				return nil, err
			}
			n = rebuilt
		}
	}
	return f(n)
}

// TransformDown rewrites n top-down: f is applied to n first, then
// its (possibly replaced) children are each transformed the same way.
func TransformDown(n sql.Node, f NodeFunc) (sql.Node, error) {
	n, err := f(n)
	if err != nil {
		return nil, err
	}
	children := n.Children()
	if len(children) == 0 {
		return n, nil
	}
	newChildren := make([]sql.Node, len(children))
	changed := false
	for i, c := range children {
		nc, err := TransformDown(c, f)
		if err != nil {
			return nil, err
		}
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return n, nil
	}
	return n.WithChildren(newChildren...)
}

// Inspect walks every node reachable through Children() (the tree
// shape as given, matching TransformUp/Down's own traversal; a CTERef
// is a leaf, so a CTE's subplan is not entered through it) calling f
// for its side effects; traversal does not stop on error paths since
// Inspect has no way to report one — use TransformUp/Down when an
// error needs to propagate.
func Inspect(n sql.Node, f func(sql.Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}

// ExprFunc is applied to an expression node after its children have
// been rewritten.
type ExprFunc func(sql.Expression) (sql.Expression, error)

// TransformExprUp rewrites an expression tree bottom-up, the
// expression-tree counterpart of TransformUp.
func TransformExprUp(e sql.Expression, f ExprFunc) (sql.Expression, error) {
	children := e.Children()
	if len(children) > 0 {
		newChildren := make([]sql.Expression, len(children))
		changed := false
		for i, c := range children {
			nc, err := TransformExprUp(c, f)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if changed {
			rebuilt, err := e.WithChildren(newChildren...)
			if err != nil {
				return nil, err
			}
			e = rebuilt
		}
	}
	return f(e)
}

// InspectExpr walks every expression node for side effects.
func InspectExpr(e sql.Expression, f func(sql.Expression) bool) {
	if !f(e) {
		return
	}
	for _, c := range e.Children() {
		InspectExpr(c, f)
	}
}
