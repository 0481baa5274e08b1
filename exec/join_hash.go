package exec

import (
	"io"

	"github.com/mabel-dev/opteryx/sql"
	"github.com/mabel-dev/opteryx/sql/hash"
	"github.com/mabel-dev/opteryx/sql/plan"
)

// defaultMaxBuildRows bounds how many rows a join's build side may
// materialize before the operator fails with sql.ErrResourceExhausted
// rather than spilling to disk (§4.5 "no spilling; exceeding the
// configured memory bound fails the query"). A builder that knows the
// configured limit overrides this via NewHashJoinOperator.
const defaultMaxBuildRows = 5_000_000

// HashJoinOperator implements Inner/Left/Right/Full equi-joins with a
// single shared build-side hash table (§4.5): the right child is fully
// materialized and hashed once, then the left child is streamed and
// probed against it. Ties (multiple build rows matching one probe row,
// or vice versa for outer fill) are produced in build-insertion order.
type HashJoinOperator struct {
	baseOperator
	joinType    plan.JoinType
	leftKeys    []sql.Expression
	rightKeys   []sql.Expression
	residual    sql.Expression // extra non-equi condition evaluated after a key match, nil if none
	schema      sql.Schema
	left, right Operator
	maxBuildRows int

	built        bool
	buildMorsel  *sql.Morsel
	buildMap     *hash.FlatHashMap
	buildMatched []bool // per build row, has it been matched by any probe row

	pendingOut []outRow // queued output rows awaiting batching into a morsel
	probeDone  bool
}

// outRow names a single assembled join output row: leftRow/rightRow
// are row indices into leftMorsel/buildMorsel, -1 meaning
// "emit NULLs for this side" (outer-join fill).
type outRow struct {
	leftMorsel *sql.Morsel
	leftRow    int
	rightRow   int
}

// NewHashJoinOperator builds a HashJoinOperator. maxBuildRows<=0 uses
// defaultMaxBuildRows.
func NewHashJoinOperator(t plan.JoinType, leftKeys, rightKeys []sql.Expression, residual sql.Expression, schema sql.Schema, left, right Operator, maxBuildRows int) *HashJoinOperator {
	if maxBuildRows <= 0 {
		maxBuildRows = defaultMaxBuildRows
	}
	return &HashJoinOperator{
		baseOperator: baseOperator{name: t.String()},
		joinType:     t,
		leftKeys:     leftKeys,
		rightKeys:    rightKeys,
		residual:     residual,
		schema:       schema,
		left:         left,
		right:        right,
		maxBuildRows: maxBuildRows,
		buildMap:     hash.NewFlatHashMap(),
	}
}

func (j *HashJoinOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
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
	out := j.assemble(j.pendingOut)
	j.pendingOut = nil
	j.recordRows(ctx, out)
	return out, nil
}

func (j *HashJoinOperator) build(ctx *sql.Context) error {
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
	if len(j.rightKeys) == 0 {
		return nil
	}
	keyVecs := make([]*sql.Vector, len(j.rightKeys))
	for i, k := range j.rightKeys {
		v, err := k.Eval(ctx, all)
		if err != nil {
			return err
		}
		keyVecs[i] = v
	}
	hashes := combineKeyHashes(keyVecs, all.RowCount)
	for i, h := range hashes {
		j.buildMap.Insert(h, i)
	}
	return nil
}

// probeNext pulls one left morsel and queues its matched (and, for
// Left/Full outer, unmatched) output rows.
func (j *HashJoinOperator) probeNext(ctx *sql.Context) error {
	m, err := j.left.Next(ctx)
	if err == io.EOF {
		j.probeDone = true
		if j.joinType == plan.RightOuterJoinType || j.joinType == plan.FullOuterJoinType {
			j.queueUnmatchedBuildRows()
		}
		return nil
	}
	if err != nil {
		return err
	}
	keyVecs := make([]*sql.Vector, len(j.leftKeys))
	for i, k := range j.leftKeys {
		v, err := k.Eval(ctx, m)
		if err != nil {
			return err
		}
		keyVecs[i] = v
	}
	probeHashes := combineKeyHashes(keyVecs, m.RowCount)

rowLoop:
	for row := 0; row < m.RowCount; row++ {
		candidates, _ := j.buildMap.Get(probeHashes[row])
		matched := false
		for _, bi := range candidates {
			if !j.keysMatch(m, row, bi) {
				continue
			}
			if j.residual != nil && !j.residualHolds(ctx, m, row, bi) {
				continue
			}
			matched = true
			j.buildMatched[bi] = true
			switch j.joinType {
			case plan.SemiJoinType:
				j.pendingOut = append(j.pendingOut, outRow{m, row, -1})
				continue rowLoop // semi join emits the left row at most once
			case plan.AntiJoinType:
				// matched: anti join suppresses this row entirely.
			default:
				j.pendingOut = append(j.pendingOut, outRow{m, row, bi})
			}
		}
		if !matched {
			switch j.joinType {
			case plan.InnerJoinType, plan.SemiJoinType:
				// no output row
			case plan.AntiJoinType:
				j.pendingOut = append(j.pendingOut, outRow{m, row, -1})
			case plan.LeftOuterJoinType, plan.FullOuterJoinType:
				j.pendingOut = append(j.pendingOut, outRow{m, row, -1})
			}
		}
	}
	return nil
}

// queueUnmatchedBuildRows emits the Right/Full-outer NULL-left fill
// rows, in build-insertion order, once the left side is exhausted.
func (j *HashJoinOperator) queueUnmatchedBuildRows() {
	for bi, matched := range j.buildMatched {
		if !matched {
			j.pendingOut = append(j.pendingOut, outRow{nil, -1, bi})
		}
	}
}

func (j *HashJoinOperator) keysMatch(leftMorsel *sql.Morsel, leftRow, buildRow int) bool {
	for i := range j.leftKeys {
		lv, err := j.leftKeys[i].Eval(sql.NewEmptyContext(), leftMorsel)
		if err != nil {
			return false
		}
		rv, err := j.rightKeys[i].Eval(sql.NewEmptyContext(), j.buildMorsel)
		if err != nil {
			return false
		}
		if lv.IsValid(leftRow) != rv.IsValid(buildRow) {
			return false
		}
		if !lv.IsValid(leftRow) {
			return false // NULL never equals NULL in join semantics (§4.5)
		}
		if compareAt(lv, leftRow, rv, buildRow, false) != 0 {
			return false
		}
	}
	return true
}

func (j *HashJoinOperator) residualHolds(ctx *sql.Context, leftMorsel *sql.Morsel, leftRow, buildRow int) bool {
	combined := concatSingleRow(leftMorsel, leftRow, j.buildMorsel, buildRow)
	v, err := j.residual.Eval(ctx, combined)
	if err != nil || !v.IsValid(0) {
		return false
	}
	return v.BoolData[0]
}

// assemble splices the queued (leftMorsel, leftRow, rightRow) triples
// into one output morsel matching j.schema, filling NULLs for the -1
// side of outer-join rows.
func (j *HashJoinOperator) assemble(rows []outRow) *sql.Morsel {
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
				if row.leftRow < 0 {
					cols[c].SetNull(r)
				} else if leftCols[c].IsValid(row.leftRow) {
					copyScalar(cols[c], r, leftCols[c], row.leftRow)
				} else {
					cols[c].SetNull(r)
				}
				continue
			}
			rc := c - nLeft
			if row.rightRow < 0 || rc >= len(rightCols) {
				cols[c].SetNull(r)
				continue
			}
			if rightCols[rc].IsValid(row.rightRow) {
				copyScalar(cols[c], r, rightCols[rc], row.rightRow)
			} else {
				cols[c].SetNull(r)
			}
		}
	}
	return &sql.Morsel{Schema: j.schema, Columns: cols, RowCount: n}
}

func (j *HashJoinOperator) Close() error {
	if err := j.left.Close(); err != nil {
		j.right.Close()
		return err
	}
	return j.right.Close()
}

// combineKeyHashes mixes the per-column hashes of keyVecs into one
// hash per row using the same golden-ratio mixer sql/hash uses
// internally, so equi-join keys hash consistently with Distinct and
// group-by keys built from the same columns.
func combineKeyHashes(keyVecs []*sql.Vector, rowCount int) []uint64 {
	out := make([]uint64, rowCount)
	for _, v := range keyVecs {
		col := hash.ColumnHash(v)
		for i := range out {
			out[i] = mixHash(out[i], col[i])
		}
	}
	return out
}

const hashMixSeed uint64 = 0x9e3779b97f4a7c15

func mixHash(acc, h uint64) uint64 {
	acc ^= h + hashMixSeed + (acc << 6) + (acc >> 2)
	return acc
}

// concatSingleRow builds a one-row morsel pairing left's leftRow with
// right's rightRow, for residual-condition evaluation (whose
// expression tree references GetFields spanning both sides).
func concatSingleRow(left *sql.Morsel, leftRow int, right *sql.Morsel, rightRow int) *sql.Morsel {
	schema := left.Schema.Concat(right.Schema)
	cols := make([]*sql.Vector, 0, len(left.Columns)+len(right.Columns))
	for _, v := range left.Columns {
		out := sql.NewVector(v.Type, 1)
		out.EnsureValidity()
		if v.IsValid(leftRow) {
			copyScalar(out, 0, v, leftRow)
		} else {
			out.SetNull(0)
		}
		cols = append(cols, out)
	}
	for _, v := range right.Columns {
		out := sql.NewVector(v.Type, 1)
		out.EnsureValidity()
		if v.IsValid(rightRow) {
			copyScalar(out, 0, v, rightRow)
		} else {
			out.SetNull(0)
		}
		cols = append(cols, out)
	}
	return &sql.Morsel{Schema: schema, Columns: cols, RowCount: 1}
}
