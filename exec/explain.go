package exec

import (
	"fmt"
	"io"
	"strings"

	"github.com/mabel-dev/opteryx/sql"
)

// ExplainOperator renders a plan tree as a single text column (§5
// EXPLAIN extension). When analyze is true it first drains the
// compiled operator tree to completion so the rendered text can
// include the per-operator row counts QueryStats accumulated.
type ExplainOperator struct {
	baseOperator
	target   sql.Node
	analyze  bool
	compiled Operator // the compiled target, only run when analyze is set
	emitted  bool
}

// NewExplainOperator builds an ExplainOperator. compiled may be nil
// when analyze is false (the plan is rendered without running it).
func NewExplainOperator(target sql.Node, analyze bool, compiled Operator) *ExplainOperator {
	return &ExplainOperator{baseOperator: baseOperator{name: "Explain"}, target: target, analyze: analyze, compiled: compiled}
}

func (e *ExplainOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if e.emitted {
		return nil, io.EOF
	}
	e.emitted = true
	if e.analyze && e.compiled != nil {
		for {
			_, err := e.compiled.Next(ctx)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}
	}
	text := renderPlan(e.target, 0)
	if e.analyze {
		text += "\n\n" + renderStats(ctx.Stats())
	}
	out := sql.NewVector(sql.String, 1)
	out.Offsets = []int32{0, int32(len(text))}
	out.StringData = []byte(text)
	return &sql.Morsel{Schema: sql.Schema{{Name: "plan", Type: sql.String}}, Columns: []*sql.Vector{out}, RowCount: 1}, nil
}

// renderPlan renders node and its children as an indented tree using
// each node's own String() (every plan node already implements a
// one-line String per §3.3).
func renderPlan(node sql.Node, depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(node.String())
	b.WriteByte('\n')
	for _, c := range node.Children() {
		b.WriteString(renderPlan(c, depth+1))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStats(stats *sql.QueryStats) string {
	var b strings.Builder
	for name, op := range stats.Operators {
		fmt.Fprintf(&b, "%s: rows_in=%d rows_out=%d calls=%d wall=%s\n", name, op.RowsIn, op.RowsOut, op.CallCount, op.Wall)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *ExplainOperator) Close() error {
	if e.compiled != nil {
		return e.compiled.Close()
	}
	return nil
}
