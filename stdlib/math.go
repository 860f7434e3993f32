package stdlib

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/exprel/exprel"
)

func mathFunctions() []exprel.Function {
	return []exprel.Function{
		exprel.NewFunction(numberFn(math.Abs), exprel.RequiredArity(1), "abs(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Atan), exprel.RequiredArity(1), "arc_tan(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Cos), exprel.RequiredArity(1), "cos(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Exp), exprel.RequiredArity(1), "exp(value: Number): Number"),
		exprel.NewFunction(numberFn(frac), exprel.RequiredArity(1), "frac(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Log), exprel.RequiredArity(1), "ln(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Round), exprel.RequiredArity(1), "round(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Sin), exprel.RequiredArity(1), "sin(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Sqrt), exprel.RequiredArity(1), "sqrt(value: Number): Number"),
		exprel.NewFunction(numberFn(math.Trunc), exprel.RequiredArity(1), "trunc(value: Number): Number"),
		exprel.NewFunction(intToHex, exprel.RequiredArity(1), "int_to_hex(value: Number): String"),
		exprel.NewFunction(even, exprel.RequiredArity(1), "even(value: Number): Boolean"),
		exprel.NewFunction(odd, exprel.RequiredArity(1), "odd(value: Number): Boolean"),
		exprel.NewFunction(pow, exprel.OptionalArity(1, 1), "pow(value: Number, exponent: Number = 2): Number"),
		exprel.ImpureFunction(random, exprel.OptionalArity(0, 1), "random(range: Number = 1): Number"),
		exprel.ImpureFunction(choice, exprel.VariadicArity(), "choice(...): Any"),
	}
}

// numberFn lifts a float64 function into a single-number native
// function.
func numberFn(fn func(float64) float64) exprel.NativeFunction {
	return func(args []exprel.Value) (exprel.Value, error) {
		v, ok := args[0].(exprel.Number)
		if !ok {
			return nil, errWrongType
		}
		return exprel.Number(fn(float64(v))), nil
	}
}

// frac returns the fractional part of a number, keeping its sign.
func frac(v float64) float64 {
	return v - math.Trunc(v)
}

// intToHex renders the integral part of a number as uppercase hex.
func intToHex(args []exprel.Value) (exprel.Value, error) {
	v, ok := args[0].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}
	return exprel.String(fmt.Sprintf("%X", int64(v))), nil
}

func even(args []exprel.Value) (exprel.Value, error) {
	v, ok := args[0].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}
	return exprel.Boolean(int64(v)%2 == 0), nil
}

func odd(args []exprel.Value) (exprel.Value, error) {
	v, ok := args[0].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}
	return exprel.Boolean(int64(v)%2 != 0), nil
}

// pow raises a number to an exponent, squaring by default.
func pow(args []exprel.Value) (exprel.Value, error) {
	base, ok := args[0].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}
	exponent, err := defaultNumber(args, 1, 2)
	if err != nil {
		return nil, err
	}
	return exprel.Number(math.Pow(float64(base), exponent)), nil
}

func randomUint64() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// random returns a number in [0, range) using the operating system's
// entropy source.
func random(args []exprel.Value) (exprel.Value, error) {
	limit, err := defaultNumber(args, 0, 1)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return exprel.Number(0), nil
	}
	raw, err := randomUint64()
	if err != nil {
		return nil, err
	}
	return exprel.Number(float64(raw) / float64(math.MaxUint64) * limit), nil
}

// choice returns one of its arguments at random. A single array
// argument is picked from element-wise.
func choice(args []exprel.Value) (exprel.Value, error) {
	choices := smartList(args)
	if len(choices) == 0 {
		return nil, errWrongType
	}
	raw, err := randomUint64()
	if err != nil {
		return nil, err
	}
	return choices[raw%uint64(len(choices))], nil
}
