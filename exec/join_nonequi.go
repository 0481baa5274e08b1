package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/plan"
)

// NestedLoopJoinOperator evaluates an arbitrary boolean condition
// (<>, <, <=, >, >=, or any predicate not expressible as an equality
// key list) by comparing every left row against every materialized
// right row (§4.5 "non-equi joins fall back to nested-loop"). Like
// HashJoinOperator its build (right) side is fully materialized,
// capped by maxBuildRows.
type NestedLoopJoinOperator struct {
	baseOperator
	joinType     plan.JoinType
	condition    sql.Expression
	schema       sql.Schema
	left, right  Operator
	maxBuildRows int

	built        bool
	buildMorsel  *sql.Morsel
	buildMatched []bool

	pendingOut []outRow
	probeDone  bool
}

// NewNestedLoopJoinOperator builds a NestedLoopJoinOperator.
// maxBuildRows<=0 uses defaultMaxBuildRows.
func NewNestedLoopJoinOperator(t plan.JoinType, condition sql.Expression, schema sql.Schema, left, right Operator, maxBuildRows int) *NestedLoopJoinOperator {
	if maxBuildRows <= 0 {
		maxBuildRows = defaultMaxBuildRows
	}
	return &NestedLoopJoinOperator{
		baseOperator: baseOperator{name: t.String()},
		joinType:     t,
		condition:    condition,
		schema:       schema,
		left:         left,
		right:        right,
		maxBuildRows: maxBuildRows,
	}
}

func (j *NestedLoopJoinOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if !j.built {
		if err := j.build(ctx); err != nil {
			return nil, err
		}
		j.built = true
	}
	for len(j.pendingOut) == 0 {
		if j.probeDone {
			return nil, io.EOF
		}
		if err := j.probeNext(ctx); err != nil {
			return nil, err
		}
	}
	out := j.assembleRows(j.pendingOut)
	j.pendingOut = nil
	j.recordRows(ctx, out)
	return out, nil
}

func (j *NestedLoopJoinOperator) build(ctx *sql.Context) error {
	var all *sql.Morsel
	for {
		m, err := j.right.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if all == nil {
			all = m
		} else {
			all = concatRows(all, m)
		}
		if all.RowCount > j.maxBuildRows {
			return sql.ErrResourceExhausted.New("join build side exceeded configured row limit")
		}
	}
	if all == nil {
		all = &sql.Morsel{RowCount: 0}
	}
	j.buildMorsel = all
	j.buildMatched = make([]bool, all.RowCount)
	return nil
}

func (j *NestedLoopJoinOperator) probeNext(ctx *sql.Context) error {
	m, err := j.left.Next(ctx)
	if err == io.EOF {
		j.probeDone = true
		if j.joinType == plan.RightOuterJoinType || j.joinType == plan.FullOuterJoinType {
			for bi, matched := range j.buildMatched {
				if !matched {
					j.pendingOut = append(j.pendingOut, outRow{nil, -1, bi})
				}
			}
		}
		return nil
	}
	if err != nil {
		return err
	}
rowLoop:
	for row := 0; row < m.RowCount; row++ {
		matched := false
		for bi := 0; bi < j.buildMorsel.RowCount; bi++ {
			if !j.residualHolds(ctx, m, row, bi) {
				continue
			}
			matched = true
			j.buildMatched[bi] = true
			switch j.joinType {
			case plan.SemiJoinType:
				j.pendingOut = append(j.pendingOut, outRow{m, row, -1})
				continue rowLoop
			case plan.AntiJoinType:
			default:
				j.pendingOut = append(j.pendingOut, outRow{m, row, bi})
			}
		}
		if !matched {
			switch j.joinType {
			case plan.InnerJoinType, plan.SemiJoinType:
			case plan.AntiJoinType:
				j.pendingOut = append(j.pendingOut, outRow{m, row, -1})
			case plan.LeftOuterJoinType, plan.FullOuterJoinType:
				j.pendingOut = append(j.pendingOut, outRow{m, row, -1})
			}
		}
	}
	return nil
}

func (j *NestedLoopJoinOperator) residualHolds(ctx *sql.Context, leftMorsel *sql.Morsel, leftRow, buildRow int) bool {
	combined := concatSingleRow(leftMorsel, leftRow, j.buildMorsel, buildRow)
	v, err := j.condition.Eval(ctx, combined)
	if err != nil || !v.IsValid(0) {
		return false
	}
	return v.BoolData[0]
}

// assembleRows is identical in shape to HashJoinOperator.assemble but
// kept as its own method since the two operators don't share a struct.
func (j *NestedLoopJoinOperator) assembleRows(rows []outRow) *sql.Morsel {
	n := len(rows)
	cols := make([]*sql.Vector, len(j.schema))
	for c := range j.schema {
		cols[c] = sql.NewVector(j.schema[c].Type, n)
		cols[c].EnsureValidity()
	}
	for r, row := range rows {
		var leftCols, rightCols []*sql.Vector
		if row.leftMorsel != nil {
			leftCols = row.leftMorsel.Columns
		}
		if j.buildMorsel != nil {
			rightCols = j.buildMorsel.Columns
		}
		nLeft := len(leftCols)
		for c := 0; c < len(j.schema); c++ {
			if c < nLeft {
				if row.leftRow < 0 || !leftCols[c].IsValid(row.leftRow) {
					cols[c].SetNull(r)
				} else {
					copyScalar(cols[c], r, leftCols[c], row.leftRow)
				}
				continue
			}
			rc := c - nLeft
			if row.rightRow < 0 || rc >= len(rightCols) || !rightCols[rc].IsValid(row.rightRow) {
				cols[c].SetNull(r)
				continue
			}
			copyScalar(cols[c], r, rightCols[rc], row.rightRow)
		}
	}
	return &sql.Morsel{Schema: j.schema, Columns: cols, RowCount: n}
}

func (j *NestedLoopJoinOperator) Close() error {
	if err := j.left.Close(); err != nil {
		j.right.Close()
		return err
	}
	return j.right.Close()
}
