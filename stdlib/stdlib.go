// Package stdlib provides the built-in function library: conversions,
// array and string helpers, math, datetime and regular expression
// functions that a host can register into an environment in one call.
package stdlib

import (
	"errors"
	"fmt"

	"github.com/exprel/exprel"
)

// String indices are 1-based: the first character of a string is at
// index 1. Array indices stay 0-based.
const stringOffset = 1

// Builtins returns every standard function.
func Builtins() []exprel.Function {
	var fns []exprel.Function
	fns = append(fns, commonFunctions()...)
	fns = append(fns, mathFunctions()...)
	fns = append(fns, stringFunctions()...)
	fns = append(fns, timeFunctions()...)
	fns = append(fns, regexFunctions()...)
	return fns
}

// Register adds all standard functions to the environment.
func Register(env *exprel.StaticEnvironment) {
	env.AddFunctions(Builtins())
}

var (
	errWrongType     = errors.New("wrong argument type")
	errNotComparable = errors.New("values are not comparable")
)

// smartList unwraps a single array argument so that variadic functions
// can be called either as f(1, 2, 3) or as f([1, 2, 3]).
func smartList(args []exprel.Value) []exprel.Value {
	if len(args) == 1 {
		if values, ok := args[0].(exprel.Array); ok {
			return values
		}
	}
	return args
}

func arrayIndex(n exprel.Number) (int, error) {
	if n < 0 {
		return 0, errors.New("index must not be negative")
	}
	return int(n), nil
}

func stringIndex(n exprel.Number) (int, error) {
	index, err := arrayIndex(n)
	if err != nil {
		return 0, err
	}
	return index - stringOffset, nil
}

func errIndexOutOfBounds(index int) error {
	return fmt.Errorf("index %d out of bounds", index)
}

// defaultString returns the string argument at the index, or the
// fallback when the argument is absent.
func defaultString(args []exprel.Value, index int, fallback string) (string, error) {
	if index >= len(args) {
		return fallback, nil
	}
	s, ok := args[index].(exprel.String)
	if !ok {
		return "", errWrongType
	}
	return string(s), nil
}

// defaultNumber returns the number argument at the index, or the
// fallback when the argument is absent.
func defaultNumber(args []exprel.Value, index int, fallback float64) (float64, error) {
	if index >= len(args) {
		return fallback, nil
	}
	n, ok := args[index].(exprel.Number)
	if !ok {
		return 0, errWrongType
	}
	return float64(n), nil
}
