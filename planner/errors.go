package planner

import errorkind "gopkg.in/src-d/go-errors.v1"

// Error kinds raised while lowering a bound Statement into a plan
// tree, following the same errorkind.NewKind idiom as sql/errors.go.
var (
	ErrUnknownTable = errorkind.NewKind("unknown table %q")
	ErrUnknownCTE   = errorkind.NewKind("undefined CTE %q")
)
