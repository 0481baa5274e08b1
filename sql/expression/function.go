package expression

import (
	"strings"

	"github.com/mabel-dev/opteryx/sql"
)

// ScalarFunc is the signature every built-in scalar function kernel
// implements: given the already-evaluated argument vectors and the
// batch's row count, produce the result vector.
type ScalarFunc func(ctx *sql.Context, args []*sql.Vector, rowCount int) (*sql.Vector, error)

// functionRegistry is the static dispatch table built once at process
// startup (§9 "Global module state... re-architect as... a static
// function dispatch table built at startup"), replacing the teacher's
// module-level Python function registry.
var functionRegistry = map[string]struct {
	fn      ScalarFunc
	outType sql.Type
}{
	"UPPER":    {fn: fnUpper, outType: sql.String},
	"LOWER":    {fn: fnLower, outType: sql.String},
	"LENGTH":   {fn: fnLength, outType: sql.Int64},
	"CONCAT":   {fn: fnConcat, outType: sql.String},
	"COALESCE": {fn: fnCoalesce, outType: sql.NonNative},
	"ABS":      {fn: fnAbs, outType: sql.NonNative},
}

// RegisterFunction allows the connector/embedding layer to extend the
// dispatch table with additional scalar functions beyond the built-in
// set, mirroring the teacher's FunctionRegistry.Register.
func RegisterFunction(name string, outType sql.Type, fn ScalarFunc) {
	functionRegistry[strings.ToUpper(name)] = struct {
		fn      ScalarFunc
		outType sql.Type
	}{fn: fn, outType: outType}
}

// FunctionCall is a resolved scalar FunctionCall (§3.4). Name
// resolution itself — matching a call site to one of several
// overloaded signatures — is the binder's job (§1); by construction
// time FunctionCall already names a single registered entry.
type FunctionCall struct {
	name string
	args []sql.Expression
}

// NewFunctionCall builds a resolved call to a registered scalar
// function. It panics if name is unregistered: that is a planner
// invariant violation, not a data error (§9 "panics... reserved for
// invariant violations").
func NewFunctionCall(name string, args []sql.Expression) *FunctionCall {
	if _, ok := functionRegistry[strings.ToUpper(name)]; !ok {
		panic("opteryx: unregistered function " + name)
	}
	return &FunctionCall{name: strings.ToUpper(name), args: args}
}

func (f *FunctionCall) Type() sql.Type { return functionRegistry[f.name].outType }
func (f *FunctionCall) Nullable() bool { return true }
func (f *FunctionCall) Name() string   { return f.name }

func (f *FunctionCall) Children() []sql.Expression { return f.args }

func (f *FunctionCall) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return &FunctionCall{name: f.name, args: children}, nil
}

func (f *FunctionCall) String() string {
	s := f.name + "("
	for i, a := range f.args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

func (f *FunctionCall) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	argVecs := make([]*sql.Vector, len(f.args))
	for i, a := range f.args {
		v, err := a.Eval(ctx, m)
		if err != nil {
			return nil, err
		}
		argVecs[i] = v
	}
	return functionRegistry[f.name].fn(ctx, argVecs, m.RowCount)
}

func fnUpper(ctx *sql.Context, args []*sql.Vector, rowCount int) (*sql.Vector, error) {
	return mapString(args[0], rowCount, strings.ToUpper)
}

func fnLower(ctx *sql.Context, args []*sql.Vector, rowCount int) (*sql.Vector, error) {
	return mapString(args[0], rowCount, strings.ToLower)
}

func mapString(v *sql.Vector, rowCount int, f func(string) string) (*sql.Vector, error) {
	out := sql.NewVector(sql.String, rowCount)
	for i := 0; i < rowCount; i++ {
		if !v.IsValid(i) {
			appendString(out, i, nil)
			out.SetNull(i)
			continue
		}
		appendString(out, i, []byte(f(string(v.StringAt(i)))))
	}
	return out, nil
}

func fnLength(ctx *sql.Context, args []*sql.Vector, rowCount int) (*sql.Vector, error) {
	out := sql.NewVector(sql.Int64, rowCount)
	v := args[0]
	for i := 0; i < rowCount; i++ {
		if !v.IsValid(i) {
			out.SetNull(i)
			continue
		}
		out.Int64Data[i] = int64(len(v.StringAt(i)))
	}
	return out, nil
}

func fnConcat(ctx *sql.Context, args []*sql.Vector, rowCount int) (*sql.Vector, error) {
	out := sql.NewVector(sql.String, rowCount)
	for i := 0; i < rowCount; i++ {
		var sb strings.Builder
		null := false
		for _, v := range args {
			if !v.IsValid(i) {
				null = true
				break
			}
			sb.Write(v.StringAt(i))
		}
		if null {
			appendString(out, i, nil)
			out.SetNull(i)
			continue
		}
		appendString(out, i, []byte(sb.String()))
	}
	return out, nil
}

func fnCoalesce(ctx *sql.Context, args []*sql.Vector, rowCount int) (*sql.Vector, error) {
	resultType := sql.NonNative
	for _, v := range args {
		if v.Type != sql.NonNative {
			resultType = v.Type
			break
		}
	}
	out := sql.NewVector(resultType, rowCount)
	for i := 0; i < rowCount; i++ {
		set := false
		for _, v := range args {
			if v.IsValid(i) {
				if err := setScalar(out, i, ValueAt(v, i)); err != nil {
					return nil, err
				}
				set = true
				break
			}
		}
		if !set {
			if err := setScalar(out, i, nil); err != nil {
				return nil, err
			}
			out.SetNull(i)
		}
	}
	return out, nil
}

func fnAbs(ctx *sql.Context, args []*sql.Vector, rowCount int) (*sql.Vector, error) {
	v := args[0]
	out := sql.NewVector(v.Type, rowCount)
	for i := 0; i < rowCount; i++ {
		if !v.IsValid(i) {
			out.SetNull(i)
			continue
		}
		switch v.Type {
		case sql.Float32, sql.Float64:
			f := toFloat64(ValueAt(v, i))
			if f < 0 {
				f = -f
			}
			if err := setScalar(out, i, f); err != nil {
				return nil, err
			}
		case sql.Decimal:
			out.DecimalData[i] = toDecimal(ValueAt(v, i)).Abs()
		default:
			n := toInt64(ValueAt(v, i))
			if n < 0 {
				n = -n
			}
			if err := setScalar(out, i, n); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
