package perseid

import (
	"math"
	"strconv"

	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// Kind is the declared scalar type of a property or table column, matching
// the native library's closed scalar enum.
type Kind = native.ValKind

// Scalar kinds.
const (
	KindBool          = native.ValBool
	KindChar          = native.ValChar
	KindInt           = native.ValInt
	KindLong          = native.ValLong
	KindLongLong      = native.ValLongLong
	KindFloat         = native.ValFloat
	KindDouble        = native.ValDouble
	KindFloatComplex  = native.ValFloatComplex
	KindDoubleComplex = native.ValDoubleComplex
	KindString        = native.ValString
)

// Value is a scalar tagged by one of the closed kinds. The host side is
// dynamically typed while native storage is strongly and narrowly typed;
// Value carries the runtime tag so assignment can decide between preserving
// a slot's declared type and widening it.
//
// Storage is canonical and wide (int64, float64, complex128); the tag pins
// the declared width, and narrowing casts are validated by reversing the
// cast and comparing.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	c    complex128
	s    string
}

// Constructors, one per scalar kind.

// BoolValue returns a bool-tagged value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// CharValue returns a char-tagged value.
func CharValue(c int8) Value { return Value{kind: KindChar, i: int64(c)} }

// IntValue returns an int-tagged value.
func IntValue(i int32) Value { return Value{kind: KindInt, i: int64(i)} }

// LongValue returns a long-tagged value.
func LongValue(i int64) Value { return Value{kind: KindLong, i: i} }

// LongLongValue returns a long-long-tagged value.
func LongLongValue(i int64) Value { return Value{kind: KindLongLong, i: i} }

// FloatValue returns a float-tagged value.
func FloatValue(f float32) Value { return Value{kind: KindFloat, f: float64(f)} }

// DoubleValue returns a double-tagged value.
func DoubleValue(f float64) Value { return Value{kind: KindDouble, f: f} }

// FloatComplexValue returns a float-complex-tagged value.
func FloatComplexValue(c complex64) Value { return Value{kind: KindFloatComplex, c: complex128(c)} }

// DoubleComplexValue returns a double-complex-tagged value.
func DoubleComplexValue(c complex128) Value { return Value{kind: KindDoubleComplex, c: c} }

// StringValue returns a string-tagged value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the value's runtime tag.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the stored bool. Meaningful only for KindBool.
func (v Value) Bool() bool { return v.b }

// Int64 returns the stored integer in canonical width. Meaningful for the
// integer kinds.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the stored floating-point value in canonical width.
func (v Value) Float64() float64 { return v.f }

// Complex128 returns the stored complex value in canonical width.
func (v Value) Complex128() complex128 { return v.c }

// Text returns the stored string. Meaningful only for KindString.
func (v Value) Text() string { return v.s }

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindChar, KindInt, KindLong, KindLongLong:
		return strconv.FormatInt(v.i, 10)
	case KindFloat, KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindFloatComplex, KindDoubleComplex:
		return strconv.FormatComplex(v.c, 'g', -1, 128)
	case KindString:
		return v.s
	default:
		return "<invalid>"
	}
}

// canonical returns the value in the wide form the native boundary accepts.
func (v Value) canonical() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindChar, KindInt, KindLong, KindLongLong:
		return v.i
	case KindFloat, KindDouble:
		return v.f
	case KindFloatComplex, KindDoubleComplex:
		return v.c
	case KindString:
		return v.s
	default:
		return nil
	}
}

// valueFromCanonical rebuilds a Value from the native boundary's canonical
// form.
func valueFromCanonical(kind Kind, raw any) Value {
	v := Value{kind: kind}
	switch kind {
	case KindBool:
		v.b = raw.(bool)
	case KindChar, KindInt, KindLong, KindLongLong:
		v.i = raw.(int64)
	case KindFloat, KindDouble:
		v.f = raw.(float64)
	case KindFloatComplex, KindDoubleComplex:
		v.c = raw.(complex128)
	case KindString:
		v.s = raw.(string)
	}
	return v
}

// convRule says how a source kind reaches a target kind.
type convRule int

const (
	convNever convRule = iota // no lossless path exists for any value
	convAlways                // every value converts losslessly
	convCheck                 // convert, then reverse and compare
)

// convMatrix is the closed source-kind by target-kind conversion table.
// Missing entries are convNever: bool and string never mix with the numeric
// kinds, and a complex value never narrows to a real kind.
var convMatrix = map[Kind]map[Kind]convRule{
	KindBool: {KindBool: convAlways},
	KindChar: {
		KindChar: convAlways, KindInt: convAlways, KindLong: convAlways, KindLongLong: convAlways,
		KindFloat: convAlways, KindDouble: convAlways,
		KindFloatComplex: convAlways, KindDoubleComplex: convAlways,
	},
	KindInt: {
		KindChar: convCheck, KindInt: convAlways, KindLong: convAlways, KindLongLong: convAlways,
		KindFloat: convCheck, KindDouble: convAlways,
		KindFloatComplex: convCheck, KindDoubleComplex: convAlways,
	},
	KindLong: {
		KindChar: convCheck, KindInt: convCheck, KindLong: convAlways, KindLongLong: convAlways,
		KindFloat: convCheck, KindDouble: convCheck,
		KindFloatComplex: convCheck, KindDoubleComplex: convCheck,
	},
	KindLongLong: {
		KindChar: convCheck, KindInt: convCheck, KindLong: convAlways, KindLongLong: convAlways,
		KindFloat: convCheck, KindDouble: convCheck,
		KindFloatComplex: convCheck, KindDoubleComplex: convCheck,
	},
	KindFloat: {
		KindChar: convCheck, KindInt: convCheck, KindLong: convCheck, KindLongLong: convCheck,
		KindFloat: convAlways, KindDouble: convAlways,
		KindFloatComplex: convAlways, KindDoubleComplex: convAlways,
	},
	KindDouble: {
		KindChar: convCheck, KindInt: convCheck, KindLong: convCheck, KindLongLong: convCheck,
		KindFloat: convCheck, KindDouble: convAlways,
		KindFloatComplex: convCheck, KindDoubleComplex: convAlways,
	},
	KindFloatComplex: {
		KindFloatComplex: convAlways, KindDoubleComplex: convAlways,
	},
	KindDoubleComplex: {
		KindFloatComplex: convCheck, KindDoubleComplex: convAlways,
	},
	KindString: {KindString: convAlways},
}

// Convert casts v into the target kind, rejecting any conversion that would
// not round-trip bit-for-bit. The failure kind is always InvalidType.
func Convert(v Value, to Kind) (Value, error) {
	rule := convMatrix[v.kind][to]
	if rule == convNever {
		return Value{}, raise(perr.CodeInvalidType, "value_cast",
			"no lossless conversion from %s to %s", v.kind, to)
	}
	out, ok := castValue(v, to, rule == convCheck)
	if !ok {
		return Value{}, raise(perr.CodeInvalidType, "value_cast",
			"value %s does not fit kind %s without loss", v, to)
	}
	return out, nil
}

// castValue performs the cast, applying the reverse-and-compare narrowing
// check when the matrix demands one.
func castValue(v Value, to Kind, check bool) (Value, bool) {
	switch to {
	case KindBool:
		return Value{kind: KindBool, b: v.b}, true
	case KindString:
		return Value{kind: KindString, s: v.s}, true
	case KindChar, KindInt, KindLong, KindLongLong:
		i, ok := v.intRepresentation()
		if !ok {
			return Value{}, false
		}
		if check && !fitsInt(i, to) {
			return Value{}, false
		}
		return Value{kind: to, i: i}, true
	case KindFloat:
		f := float64(float32(v.floatRepresentation()))
		if check && !v.reverseMatches(f) {
			return Value{}, false
		}
		return Value{kind: KindFloat, f: f}, true
	case KindDouble:
		f := v.floatRepresentation()
		if check && !v.reverseMatches(f) {
			return Value{}, false
		}
		return Value{kind: KindDouble, f: f}, true
	case KindFloatComplex:
		c := complex128(complex64(v.complexRepresentation()))
		if check && !v.complexReverseMatches(c) {
			return Value{}, false
		}
		return Value{kind: KindFloatComplex, c: c}, true
	case KindDoubleComplex:
		c := v.complexRepresentation()
		if check && !v.complexReverseMatches(c) {
			return Value{}, false
		}
		return Value{kind: KindDoubleComplex, c: c}, true
	default:
		return Value{}, false
	}
}

// intRepresentation projects the value onto int64. Floating sources must be
// integral and in range; the matrix guarantees no other source reaches
// here.
func (v Value) intRepresentation() (int64, bool) {
	switch v.kind {
	case KindChar, KindInt, KindLong, KindLongLong:
		return v.i, true
	case KindFloat, KindDouble:
		if v.f != math.Trunc(v.f) || v.f < math.MinInt64 || v.f >= math.MaxInt64 {
			return 0, false
		}
		return int64(v.f), true
	default:
		return 0, false
	}
}

// floatRepresentation projects the value onto float64.
func (v Value) floatRepresentation() float64 {
	switch v.kind {
	case KindChar, KindInt, KindLong, KindLongLong:
		return float64(v.i)
	default:
		return v.f
	}
}

// complexRepresentation projects the value onto complex128.
func (v Value) complexRepresentation() complex128 {
	switch v.kind {
	case KindFloatComplex, KindDoubleComplex:
		return v.c
	default:
		return complex(v.floatRepresentation(), 0)
	}
}

// reverseMatches reverses a real-valued cast and compares against the
// source, detecting any narrowing loss.
func (v Value) reverseMatches(f float64) bool {
	switch v.kind {
	case KindChar, KindInt, KindLong, KindLongLong:
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return false
		}
		return int64(f) == v.i
	case KindFloat, KindDouble:
		return f == v.f
	default:
		return false
	}
}

// complexReverseMatches reverses a complex-valued cast and compares against
// the source.
func (v Value) complexReverseMatches(c complex128) bool {
	switch v.kind {
	case KindFloatComplex, KindDoubleComplex:
		return c == v.c
	default:
		if imag(c) != 0 {
			return false
		}
		return v.reverseMatches(real(c))
	}
}

// fitsInt reports whether i survives the target integer width.
func fitsInt(i int64, to Kind) bool {
	switch to {
	case KindChar:
		return int64(int8(i)) == i
	case KindInt:
		return int64(int32(i)) == i
	default:
		return true
	}
}

// ParseKind maps a stable kind name (as used in snapshot files and the CLI)
// to its Kind.
func ParseKind(name string) (Kind, bool) {
	return native.ParseValKind(name)
}
