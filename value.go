package exprel

import (
	"strconv"
	"strings"
)

// ValueKind names the runtime type of a Value.
type ValueKind string

const (
	KindNumber  ValueKind = "number"
	KindString  ValueKind = "string"
	KindBoolean ValueKind = "boolean"
	KindArray   ValueKind = "array"
	KindNil     ValueKind = "nil"
)

// Value is a runtime datum produced by evaluation. The set of
// implementations is closed: Number, String, Boolean, Array, and Nil.
type Value interface {
	Kind() ValueKind

	// String renders the value for display, not as wire format.
	String() string
}

// Number is a double-precision floating point value.
type Number float64

// String is a text value.
type String string

// Boolean is a true/false value.
type Boolean bool

// Array is an ordered sequence of values.
type Array []Value

// Nil is the absence of a value.
type Nil struct{}

func (Number) Kind() ValueKind  { return KindNumber }
func (String) Kind() ValueKind  { return KindString }
func (Boolean) Kind() ValueKind { return KindBoolean }
func (Array) Kind() ValueKind   { return KindArray }
func (Nil) Kind() ValueKind     { return KindNil }

func (v Number) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

func (v String) String() string { return string(v) }

func (v Boolean) String() string {
	return strconv.FormatBool(bool(v))
}

func (v Array) String() string {
	parts := make([]string, len(v))
	for i, item := range v {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (Nil) String() string { return "nil" }

// Equal reports deep structural equality. Values of different kinds are
// unequal, never an error.
func Equal(left, right Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case Number:
		return l == right.(Number)
	case String:
		return l == right.(String)
	case Boolean:
		return l == right.(Boolean)
	case Array:
		r := right.(Array)
		if len(l) != len(r) {
			return false
		}
		for i := range l {
			if !Equal(l[i], r[i]) {
				return false
			}
		}
		return true
	case Nil:
		return true
	}
	return false
}

// CompareValues orders two values of the same kind: numeric order for
// numbers, lexicographic for strings, false < true for booleans. The
// second return is false for arrays, nil, and mismatched kinds, which
// have no defined ordering.
func CompareValues(left, right Value) (int, bool) {
	switch l := left.(type) {
	case Number:
		if r, ok := right.(Number); ok {
			switch {
			case l < r:
				return -1, true
			case l > r:
				return 1, true
			}
			return 0, true
		}
	case String:
		if r, ok := right.(String); ok {
			return strings.Compare(string(l), string(r)), true
		}
	case Boolean:
		if r, ok := right.(Boolean); ok {
			switch {
			case !bool(l) && bool(r):
				return -1, true
			case bool(l) && !bool(r):
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

// Truthy returns the boolean interpretation of any value. Booleans are
// used as is; every other kind is true when not empty.
func Truthy(v Value) bool {
	if b, ok := v.(Boolean); ok {
		return bool(b)
	}
	return !IsEmpty(v)
}

// IsEmpty reports whether a value equals the empty value of its kind.
func IsEmpty(v Value) bool {
	return Equal(v, Empty(v))
}

// Empty returns the zero value of the same kind as v: 0, "", false, []
// or nil.
func Empty(v Value) Value {
	switch v.(type) {
	case Number:
		return Number(0)
	case String:
		return String("")
	case Boolean:
		return Boolean(false)
	case Array:
		return Array{}
	}
	return Nil{}
}

// Length returns the element count of an array or the byte length of a
// string. All other kinds have length zero.
func Length(v Value) int {
	switch l := v.(type) {
	case String:
		return len(l)
	case Array:
		return len(l)
	}
	return 0
}

func add(left, right Value) (Value, *RuntimeError) {
	switch l := left.(type) {
	case Number:
		if r, ok := right.(Number); ok {
			return l + r, nil
		}
	case String:
		if r, ok := right.(String); ok {
			return l + r, nil
		}
	case Array:
		if r, ok := right.(Array); ok {
			out := make(Array, 0, len(l)+len(r))
			out = append(out, l...)
			return append(out, r...), nil
		}
	}
	return nil, errBinaryMismatch(OpPlus, left, right)
}

func subtract(left, right Value) (Value, *RuntimeError) {
	l, r, ok := bothNumbers(left, right)
	if !ok {
		return nil, errBinaryMismatch(OpMinus, left, right)
	}
	return Number(l - r), nil
}

func multiply(left, right Value) (Value, *RuntimeError) {
	l, r, ok := bothNumbers(left, right)
	if !ok {
		return nil, errBinaryMismatch(OpMultiply, left, right)
	}
	return Number(l * r), nil
}

func divide(left, right Value) (Value, *RuntimeError) {
	l, r, ok := bothNumbers(left, right)
	if !ok {
		return nil, errBinaryMismatch(OpDivide, left, right)
	}
	if r == 0 {
		return nil, errDivisionByZero(OpDivide)
	}
	return Number(l / r), nil
}

// intDivide implements `div`: truncating integer division on the
// integral parts of both operands.
func intDivide(left, right Value) (Value, *RuntimeError) {
	l, r, ok := bothNumbers(left, right)
	if !ok {
		return nil, errBinaryMismatch(OpDiv, left, right)
	}
	li, ri := int64(l), int64(r)
	if ri == 0 {
		return nil, errDivisionByZero(OpDiv)
	}
	return Number(li / ri), nil
}

// modulo implements `mod`: the truncating remainder, keeping the sign of
// the dividend.
func modulo(left, right Value) (Value, *RuntimeError) {
	l, r, ok := bothNumbers(left, right)
	if !ok {
		return nil, errBinaryMismatch(OpMod, left, right)
	}
	li, ri := int64(l), int64(r)
	if ri == 0 {
		return nil, errDivisionByZero(OpMod)
	}
	return Number(li % ri), nil
}

func negate(right Value) (Value, *RuntimeError) {
	if r, ok := right.(Number); ok {
		return -r, nil
	}
	return nil, errUnaryMismatch(OpMinus, right)
}

func bothNumbers(left, right Value) (float64, float64, bool) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	return float64(l), float64(r), lok && rok
}
