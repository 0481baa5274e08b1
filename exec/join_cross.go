package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
)

// crossJoinBatchSize bounds how many (left row, right row) pairs a
// single CrossJoinOperator.Next call enumerates, keeping the Cartesian
// expansion within the vectorized batch granularity used elsewhere
// (§4.5 "Cartesian enumeration in batches").
const crossJoinBatchSize = sortOutputBatchSize

// CrossJoinOperator enumerates every (left row, right row) pair with
// no condition (§4.5). Like the other join operators it fully
// materializes its build (right) side, capped by maxBuildRows; it
// does not support an unbounded right side (§4.5 "Fatal if one side is
// unbounded" — callers must ensure the right child terminates).
type CrossJoinOperator struct {
	baseOperator
	schema       sql.Schema
	left, right  Operator
	maxBuildRows int

	built       bool
	buildMorsel *sql.Morsel

	leftMorsel *sql.Morsel // current left morsel being cross-joined against buildMorsel
	leftRow    int
	rightRow   int
}

// NewCrossJoinOperator builds a CrossJoinOperator. maxBuildRows<=0
// uses defaultMaxBuildRows.
func NewCrossJoinOperator(schema sql.Schema, left, right Operator, maxBuildRows int) *CrossJoinOperator {
	if maxBuildRows <= 0 {
		maxBuildRows = defaultMaxBuildRows
	}
	return &CrossJoinOperator{baseOperator: baseOperator{name: "CrossJoin"}, schema: schema, left: left, right: right, maxBuildRows: maxBuildRows}
}

func (j *CrossJoinOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if !j.built {
		if err := j.build(ctx); err != nil {
			return nil, err
		}
		j.built = true
	}
	if j.buildMorsel.RowCount == 0 {
		return nil, io.EOF
	}
	var pairs []outRow
	for len(pairs) < crossJoinBatchSize {
		if j.leftMorsel == nil {
			m, err := j.left.Next(ctx)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			j.leftMorsel = m
			j.leftRow, j.rightRow = 0, 0
		}
		pairs = append(pairs, outRow{j.leftMorsel, j.leftRow, j.rightRow})
		j.rightRow++
		if j.rightRow >= j.buildMorsel.RowCount {
			j.rightRow = 0
			j.leftRow++
			if j.leftRow >= j.leftMorsel.RowCount {
				j.leftMorsel = nil
			}
		}
	}
	if len(pairs) == 0 {
		return nil, io.EOF
	}
	out := j.assemble(pairs)
	j.recordRows(ctx, out)
	return out, nil
}

func (j *CrossJoinOperator) build(ctx *sql.Context) error {
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
			return sql.ErrResourceExhausted.New("cross join build side exceeded configured row limit")
		}
	}
	if all == nil {
		all = &sql.Morsel{RowCount: 0}
	}
	j.buildMorsel = all
	return nil
}

func (j *CrossJoinOperator) assemble(pairs []outRow) *sql.Morsel {
	n := len(pairs)
	cols := make([]*sql.Vector, len(j.schema))
	for c := range j.schema {
		cols[c] = sql.NewVector(j.schema[c].Type, n)
		cols[c].EnsureValidity()
	}
	nLeft := len(pairs[0].leftMorsel.Columns)
	for r, p := range pairs {
		for c := 0; c < nLeft; c++ {
			v := p.leftMorsel.Columns[c]
			if v.IsValid(p.leftRow) {
				copyScalar(cols[c], r, v, p.leftRow)
			} else {
				cols[c].SetNull(r)
			}
		}
		for c := nLeft; c < len(j.schema); c++ {
			v := j.buildMorsel.Columns[c-nLeft]
			if v.IsValid(p.rightRow) {
				copyScalar(cols[c], r, v, p.rightRow)
			} else {
				cols[c].SetNull(r)
			}
		}
	}
	return &sql.Morsel{Schema: j.schema, Columns: cols, RowCount: n}
}

func (j *CrossJoinOperator) Close() error {
	if err := j.left.Close(); err != nil {
		j.right.Close()
		return err
	}
	return j.right.Close()
}
