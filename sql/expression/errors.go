// Package expression implements the vectorized expression evaluator
// (§4.3): the expression tree node kinds of §3.4 and the arithmetic,
// comparison, logical, string, date, struct/list-access, IN, ANY/ALL,
// CASE, CAST/TRY_CAST kernels that evaluate them against a morsel.
package expression

import errorkind "gopkg.in/src-d/go-errors.v1"

// Error kinds raised by the evaluator (§7).
var (
	ErrTypeMismatch   = errorkind.NewKind("type mismatch: %s")
	ErrCast           = errorkind.NewKind("cannot cast %q to %s")
	ErrDivisionByZero = errorkind.NewKind("division by zero")
	ErrInvalidPattern = errorkind.NewKind("invalid pattern: %s")
	ErrChildCount     = errorkind.NewKind("%s expects %d children, got %d")
)
