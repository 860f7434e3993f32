package exprel

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnvironment() *StaticEnvironment {
	env := NewStaticEnvironment()
	env.AddVariable("x", Number(5))
	env.AddVariable("name", String("world"))
	env.AddVariable("flag", Boolean(true))
	env.AddVariable("list", Array{Number(1), Number(2)})
	env.AddVariable("nothing", Nil{})
	env.AddFunction(NewFunction(func(args []Value) (Value, error) {
		a, b := args[0].(Number), args[1].(Number)
		if a > b {
			return a, nil
		}
		return b, nil
	}, RequiredArity(2), "max(left: Number, right: Number): Number"))
	env.AddFunction(NewFunction(func(args []Value) (Value, error) {
		return nil, errors.New("boom")
	}, VariadicArity(), "explode(...): Any"))
	return env
}

func TestInterpreter(t *testing.T) {
	type test struct {
		expr    string
		output  Value
		err     string
		errKind RuntimeErrorKind
	}
	cases := []test{
		// Arithmetic
		{expr: "1 + 2 - 3", output: Number(0)},
		{expr: "1 + 2 * 3", output: Number(7)},
		{expr: "(1 + 2) * 3", output: Number(9)},
		{expr: "6 / 3 + 2 * 5", output: Number(12)},
		{expr: "0.5 + 0.25", output: Number(0.75)},
		{expr: "-2 * 3", output: Number(-6)},
		{expr: "10 / 4", output: Number(2.5)},
		{expr: "10 div 3", output: Number(3)},
		{expr: "-10 div 3", output: Number(-3)},
		{expr: "10 mod 3", output: Number(1)},
		{expr: "-10 mod 3", output: Number(-1)},
		{expr: "10.9 div 2.9", output: Number(5)},
		{expr: "x * 2", output: Number(10)},
		// Division by zero
		{expr: "1 / 0", err: "cannot / by zero", errKind: DivisionByZero},
		{expr: "1 div 0", err: "cannot div by zero", errKind: DivisionByZero},
		{expr: "1 mod 0", err: "cannot mod by zero", errKind: DivisionByZero},
		// Concatenation
		{expr: "'ab' + 'c'", output: String("abc")},
		{expr: `"ab" + 'c'`, output: String("abc")},
		{expr: "[1, 2] + [3]", output: Array{Number(1), Number(2), Number(3)}},
		{expr: "[] + []", output: Array{}},
		{expr: "'hello ' + name", output: String("hello world")},
		// Type mismatches
		{expr: "1 + 'a'", err: "operator + is not defined for number and string", errKind: TypeMismatch},
		{expr: "'a' - 'b'", errKind: TypeMismatch},
		{expr: "[1] * 2", errKind: TypeMismatch},
		{expr: "true + true", errKind: TypeMismatch},
		{expr: "nil + 1", errKind: TypeMismatch},
		{expr: "-'a'", err: "operator - is not defined for string", errKind: TypeMismatch},
		// Equality
		{expr: "50 + 50 = 100", output: Boolean(true)},
		{expr: "1 = 2", output: Boolean(false)},
		{expr: "1 <> 2", output: Boolean(true)},
		{expr: "'a' = 'a'", output: Boolean(true)},
		{expr: "'a' = 1", output: Boolean(false)},
		{expr: "[1, [2]] = [1, [2]]", output: Boolean(true)},
		{expr: "[1, 2] = [1, 3]", output: Boolean(false)},
		{expr: "[1] = [1, 1]", output: Boolean(false)},
		{expr: "nil = nil", output: Boolean(true)},
		{expr: "nil <> 0", output: Boolean(true)},
		// Ordering
		{expr: "1 < 2", output: Boolean(true)},
		{expr: "2 <= 2", output: Boolean(true)},
		{expr: "3 > 4", output: Boolean(false)},
		{expr: "'a' < 'b'", output: Boolean(true)},
		{expr: "'b' >= 'b'", output: Boolean(true)},
		{expr: "false < true", output: Boolean(true)},
		{expr: "1 < 'a'", err: "operator < is not defined for number and string", errKind: TypeMismatch},
		{expr: "[1] < [2]", errKind: TypeMismatch},
		{expr: "nil < 1", errKind: TypeMismatch},
		// Comparison chain binds left to right
		{expr: "1 < 2 = true", output: Boolean(true)},
		// Boolean logic
		{expr: "true and false", output: Boolean(false)},
		{expr: "true and true", output: Boolean(true)},
		{expr: "false or true", output: Boolean(true)},
		{expr: "false or false", output: Boolean(false)},
		{expr: "not true", output: Boolean(false)},
		{expr: "not (1 < 2)", output: Boolean(false)},
		{expr: "not 1 = 2", output: Boolean(true)},
		{expr: "false and true or true", output: Boolean(true)},
		// Truthiness
		{expr: "1 and 'a'", output: Boolean(true)},
		{expr: "0 or ''", output: Boolean(false)},
		{expr: "not nil", output: Boolean(true)},
		{expr: "[1] and 1", output: Boolean(true)},
		// Short circuit: the right side never runs
		{expr: "false and (1 div 0 = 0)", output: Boolean(false)},
		{expr: "true or (1 div 0 = 0)", output: Boolean(true)},
		{expr: "false and explode()", output: Boolean(false)},
		{expr: "true and (1 div 0 = 0)", errKind: DivisionByZero},
		// Case insensitivity
		{expr: "TRUE AND NOT FALSE", output: Boolean(true)},
		{expr: "X + 1", output: Number(6)},
		{expr: "MAX(1, 2)", output: Number(2)},
		{expr: "10 DIV 3", output: Number(3)},
		// Variables
		{expr: "flag", output: Boolean(true)},
		{expr: "list + [3]", output: Array{Number(1), Number(2), Number(3)}},
		{expr: "nothing", output: Nil{}},
		{expr: "unknown_var", err: `undefined variable "unknown_var"`, errKind: UndefinedVariable},
		// Functions
		{expr: "max(1, 2)", output: Number(2)},
		{expr: "max(x, 2) + 1", output: Number(6)},
		{expr: "max(1, 2, 3)", err: `expects 2 argument(s) but got 3`, errKind: ArityMismatch},
		{expr: "missing(1)", err: `undefined function "missing"`, errKind: UndefinedFunction},
		{expr: "explode(1)", err: `function "explode": boom`, errKind: FunctionError},
		// Arrays
		{expr: "[1, 1 + 1, 'three']", output: Array{Number(1), Number(2), String("three")}},
		{expr: "[x, nil]", output: Array{Number(5), Nil{}}},
		{expr: "[]", output: Array{}},
		// Comments
		{expr: "1 + 2 // plus three", output: Number(3)},
	}

	env := testEnvironment()
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			result, err := Eval(tc.expr, env)
			if tc.err != "" || tc.errKind != "" {
				require.Error(t, err)
				var rerr *RuntimeError
				require.True(t, errors.As(err, &rerr), "expected a runtime error, got %T", err)
				if tc.errKind != "" {
					assert.Equal(t, tc.errKind, rerr.Kind)
				}
				if tc.err != "" {
					assert.True(t, strings.Contains(err.Error(), tc.err), "error %q does not contain %q", err.Error(), tc.err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.output, result)
		})
	}
}

func TestExecuteDoesNotMutate(t *testing.T) {
	expr, err := Compile("x + 1 = 6")
	require.NoError(t, err)

	env := testEnvironment()
	first, err := Execute(env, expr)
	require.NoError(t, err)
	second, err := Execute(env, expr)
	require.NoError(t, err)

	assert.Equal(t, Boolean(true), first)
	assert.Equal(t, first, second)
}

func TestExecuteNilEnvironment(t *testing.T) {
	expr, err := Compile("1 + 2")
	require.NoError(t, err)

	result, err := Execute(nil, expr)
	require.NoError(t, err)
	assert.Equal(t, Number(3), result)
}

// unknownNode is an expression type the interpreter has no case for.
type unknownNode struct{}

func (unknownNode) isExpression() {}

func TestExecuteUnknownNode(t *testing.T) {
	_, err := Execute(nil, unknownNode{})
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, InternalError, rerr.Kind)
}

func FuzzEval(f *testing.F) {
	f.Add("1 + 2 * 3")
	f.Add("'a' + 'b' = 'ab'")
	f.Add("[1, 2] + [3]")
	f.Add("max(1, x)")
	f.Fuzz(func(t *testing.T, s string) {
		env := testEnvironment()
		Eval(s, env)
	})
}

func Benchmark(b *testing.B) {
	benchmarks := []struct {
		name   string
		expr   string
		result Value
	}{
		{"comparison", "x * 2 > 5", Boolean(true)},
		{"logical", "1 > 2 or 3 > 4", Boolean(false)},
		{"string", "'hello ' + name = 'hello world'", Boolean(true)},
		{"call", "max(x, 10)", Number(10)},
	}

	env := testEnvironment()
	var r Value

	for _, bm := range benchmarks {
		b.Run(bm.name+"-slow", func(b *testing.B) {
			b.ReportAllocs()
			for n := 0; n < b.N; n++ {
				r, _ = Eval(bm.expr, env)
			}
			assert.Equal(b, bm.result, r)
		})
	}

	for _, bm := range benchmarks {
		b.Run(bm.name+"-cached", func(b *testing.B) {
			b.ReportAllocs()
			expr, err := Compile(bm.expr)
			assert.NoError(b, err)
			i := NewInterpreter(expr)
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				r, _ = i.Run(env)
			}
			assert.Equal(b, bm.result, r)
		})
	}
}
