package exprel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, Equal(Number(1), Number(1)))
	assert.False(t, Equal(Number(1), Number(2)))
	assert.True(t, Equal(String("a"), String("a")))
	assert.True(t, Equal(Boolean(true), Boolean(true)))
	assert.True(t, Equal(Nil{}, Nil{}))

	// Deep array comparison.
	assert.True(t, Equal(
		Array{Number(1), Array{String("x")}},
		Array{Number(1), Array{String("x")}},
	))
	assert.False(t, Equal(Array{Number(1)}, Array{Number(2)}))
	assert.False(t, Equal(Array{Number(1)}, Array{Number(1), Number(1)}))

	// Mismatched kinds are unequal, not an error.
	assert.False(t, Equal(Number(1), String("1")))
	assert.False(t, Equal(Boolean(false), Nil{}))
}

func TestValueCompare(t *testing.T) {
	order, ok := CompareValues(Number(1), Number(2))
	assert.True(t, ok)
	assert.Equal(t, -1, order)

	order, ok = CompareValues(String("b"), String("a"))
	assert.True(t, ok)
	assert.Equal(t, 1, order)

	order, ok = CompareValues(Boolean(false), Boolean(true))
	assert.True(t, ok)
	assert.Equal(t, -1, order)

	// Arrays, nil and mismatched kinds have no ordering.
	_, ok = CompareValues(Array{}, Array{})
	assert.False(t, ok)
	_, ok = CompareValues(Nil{}, Nil{})
	assert.False(t, ok)
	_, ok = CompareValues(Number(1), String("1"))
	assert.False(t, ok)
}

func TestValueTruthy(t *testing.T) {
	assert.True(t, Truthy(Boolean(true)))
	assert.False(t, Truthy(Boolean(false)))
	assert.True(t, Truthy(Number(1)))
	assert.False(t, Truthy(Number(0)))
	assert.True(t, Truthy(String("x")))
	assert.False(t, Truthy(String("")))
	assert.True(t, Truthy(Array{Number(0)}))
	assert.False(t, Truthy(Array{}))
	assert.False(t, Truthy(Nil{}))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "42", Number(42).String())
	assert.Equal(t, "3.14", Number(3.14).String())
	assert.Equal(t, "true", Boolean(true).String())
	assert.Equal(t, "nil", Nil{}.String())
	assert.Equal(t, "[1, a, [true]]", Array{Number(1), String("a"), Array{Boolean(true)}}.String())
}

func TestIntegerDivision(t *testing.T) {
	cases := []struct {
		left, right float64
		div, mod    float64
	}{
		{10, 3, 3, 1},
		{10, 2, 5, 0},
		{-10, 3, -3, -1},
		{10, -3, -3, 1},
		{10.9, 3.9, 3, 1},
	}
	for _, tc := range cases {
		div, err := intDivide(Number(tc.left), Number(tc.right))
		assert.Nil(t, err)
		assert.Equal(t, Number(tc.div), div, "%v div %v", tc.left, tc.right)

		mod, err := modulo(Number(tc.left), Number(tc.right))
		assert.Nil(t, err)
		assert.Equal(t, Number(tc.mod), mod, "%v mod %v", tc.left, tc.right)
	}

	_, err := intDivide(Number(1), Number(0.9))
	assert.Equal(t, DivisionByZero, err.Kind)
	_, err = modulo(Number(1), Number(0))
	assert.Equal(t, DivisionByZero, err.Kind)
}
