package sql

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Vector is a single typed column (§3.2). It is deliberately a
// monomorphic struct with typed slot slices rather than an
// interface-per-element design: hot loops switch once on Type and
// then index a concrete slice, the same dispatch shape the teacher
// uses for sql.Type.Compare but applied at the column rather than the
// value level (§9 "Dynamic typing -> tagged variants").
//
// A Vector is immutable once constructed; kernels that need to change
// values produce a new Vector.
type Vector struct {
	Type Type

	// Length is the logical row count of this vector, independent of
	// how much backing capacity the buffers below hold.
	Length int

	// SliceOffset is a row offset into the buffers below: readers must
	// add it to a logical row index before touching Validity, Offsets
	// or any data buffer (§3.2, §9 "borrowed slices").
	SliceOffset int

	// Validity is the packed validity bitmap. A nil Validity means
	// "all rows valid" (§3.2).
	Validity []byte

	// Offsets holds len(Length)+1 monotonically non-decreasing values
	// for variable-length types (String, Array); nil otherwise.
	Offsets []int32

	// Exactly one of the following backs Type's data, selected by a
	// single switch at construction and at every kernel boundary.
	Int8Data     []int8
	Int16Data    []int16
	Int32Data    []int32
	Int64Data    []int64
	Float32Data  []float32
	Float64Data  []float64
	BoolData     []bool
	StringData   []byte // raw bytes addressed via Offsets
	DecimalData  []decimal.Decimal
	IntervalData []Interval
	ListData     []*Vector // one nested Vector per row for Array/Struct
	ObjectData   []any     // NonNative fallback
}

// Interval is the month/day/nanosecond triple (§3.2).
type Interval struct {
	Months      int32
	Days        int32
	Nanoseconds int64
}

// NewVector allocates a zero-valued vector of the given type and
// length with an all-valid bitmap (nil Validity).
func NewVector(t Type, length int) *Vector {
	v := &Vector{Type: t, Length: length}
	switch t {
	case Int8:
		v.Int8Data = make([]int8, length)
	case Int16:
		v.Int16Data = make([]int16, length)
	case Int32, Date32:
		v.Int32Data = make([]int32, length)
	case Int64, Timestamp64:
		v.Int64Data = make([]int64, length)
	case Float32:
		v.Float32Data = make([]float32, length)
	case Float64:
		v.Float64Data = make([]float64, length)
	case Bool:
		v.BoolData = make([]bool, length)
	case Decimal:
		v.DecimalData = make([]decimal.Decimal, length)
	case Interval:
		v.IntervalData = make([]Interval, length)
	case String:
		v.Offsets = make([]int32, length+1)
	case Array, Struct:
		v.Offsets = make([]int32, length+1)
		v.ListData = make([]*Vector, length)
	default:
		v.ObjectData = make([]any, length)
	}
	return v
}

// IsValid reports whether row i (a logical index, not adjusted for
// SliceOffset by the caller) is non-null, respecting the vector's
// slice offset exactly as §3.2 specifies:
// byte index = (slice_offset + i) >> 3, bit index = (slice_offset + i) & 7.
func (v *Vector) IsValid(i int) bool {
	if v.Validity == nil {
		return true
	}
	idx := v.SliceOffset + i
	byteIdx := idx >> 3
	bitIdx := uint(idx) & 7
	return v.Validity[byteIdx]&(1<<bitIdx) != 0
}

// EnsureValidity allocates a validity bitmap (all rows valid) if the
// vector currently has none, so a kernel can then clear individual
// bits.
func (v *Vector) EnsureValidity() {
	if v.Validity != nil {
		return
	}
	nbytes := (v.SliceOffset + v.Length + 7) / 8
	bm := make([]byte, nbytes)
	for i := range bm {
		bm[i] = 0xFF
	}
	v.Validity = bm
}

// SetNull marks logical row i as null, allocating a validity bitmap
// first if needed.
func (v *Vector) SetNull(i int) {
	v.EnsureValidity()
	idx := v.SliceOffset + i
	byteIdx := idx >> 3
	bitIdx := uint(idx) & 7
	v.Validity[byteIdx] &^= 1 << bitIdx
}

// StringAt returns the bytes of element i of a String vector,
// respecting SliceOffset: Offsets is indexed at SliceOffset+i and
// SliceOffset+i+1, and StringData is addressed by those offsets as
// stored, without any further shift.
func (v *Vector) StringAt(i int) []byte {
	off := v.SliceOffset + i
	start := v.Offsets[off]
	end := v.Offsets[off+1]
	return v.StringData[start:end]
}

// Slice returns a new Vector describing rows [start, start+length) of
// v without copying any backing buffer — only SliceOffset and Length
// change, matching §9's "borrowed slices" design note.
func (v *Vector) Slice(start, length int) *Vector {
	out := *v
	out.SliceOffset = v.SliceOffset + start
	out.Length = length
	return &out
}

// String implements fmt.Stringer for debugging/EXPLAIN output.
func (v *Vector) String() string {
	return fmt.Sprintf("Vector(%s, len=%d)", v.Type, v.Length)
}
