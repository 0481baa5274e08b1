package sql

// Type identifies the semantic type carried by a Vector. These are the
// engine's own type tags, independent of how a given backend encodes
// the underlying bytes.
type Type int

const (
	Unknown Type = iota
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Bool
	Date32
	Timestamp64
	Time32
	Time64
	Interval
	Decimal
	String
	Array
	Struct
	NonNative
)

func (t Type) String() string {
	switch t {
	case Int8:
		return "INT8"
	case Int16:
		return "INT16"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float32:
		return "FLOAT32"
	case Float64:
		return "FLOAT64"
	case Bool:
		return "BOOLEAN"
	case Date32:
		return "DATE"
	case Timestamp64:
		return "TIMESTAMP"
	case Time32:
		return "TIME32"
	case Time64:
		return "TIME64"
	case Interval:
		return "INTERVAL"
	case Decimal:
		return "DECIMAL"
	case String:
		return "VARCHAR"
	case Array:
		return "ARRAY"
	case Struct:
		return "STRUCT"
	case NonNative:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// IsNumeric reports whether values of t participate in arithmetic
// coercion (§4.3).
func (t Type) IsNumeric() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64, Decimal:
		return true
	default:
		return false
	}
}

// IsFloating reports whether t is a binary floating point type.
func (t Type) IsFloating() bool {
	return t == Float32 || t == Float64
}

// IsVariableLength reports whether vectors of this type carry an
// offsets array (§3.2).
func (t Type) IsVariableLength() bool {
	return t == String || t == Array
}

// FixedWidth returns the byte width of a single element for
// fixed-width native types, and 0 for variable-length or nested types.
func (t Type) FixedWidth() int {
	switch t {
	case Int8, Bool:
		return 1
	case Int16:
		return 2
	case Int32, Float32, Date32, Time32:
		return 4
	case Int64, Float64, Timestamp64, Time64:
		return 8
	case Interval:
		return 16
	default:
		return 0
	}
}

// Coerce determines the common type two operands are promoted to for
// arithmetic, per §4.3: integer + floating -> floating, date +
// interval -> date, timestamp - timestamp -> interval, decimal
// promotes to the wider of the two precisions (modelled here simply
// as Decimal absorbing any other numeric).
func Coerce(a, b Type) Type {
	if a == b {
		return a
	}
	if a == Decimal || b == Decimal {
		return Decimal
	}
	if a.IsFloating() || b.IsFloating() {
		return Float64
	}
	if a.IsNumeric() && b.IsNumeric() {
		return Int64
	}
	if (a == Date32 && b == Interval) || (a == Interval && b == Date32) {
		return Date32
	}
	if a == Timestamp64 && b == Timestamp64 {
		return Interval
	}
	return a
}
