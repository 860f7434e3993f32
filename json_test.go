package exprel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalExpression(t *testing.T) {
	cases := []struct {
		source   string
		expected string
	}{
		{
			source:   "1 + 2",
			expected: `{"type":"binary","left":{"type":"literal","value":1},"right":{"type":"literal","value":2},"operator":"plus"}`,
		},
		{
			source:   "not flag",
			expected: `{"type":"unary","right":{"type":"variable","name":"flag"},"operator":"not"}`,
		},
		{
			source:   "max(10, 20) > 5",
			expected: `{"type":"binary","left":{"type":"call","name":"max","params":[{"type":"literal","value":10},{"type":"literal","value":20}]},"right":{"type":"literal","value":5},"operator":"greater"}`,
		},
		{
			source:   "['a', true, nil]",
			expected: `{"type":"array","expressions":[{"type":"literal","value":"a"},{"type":"literal","value":true},{"type":"literal","value":null}]}`,
		},
		{
			source:   "1 <> 2",
			expected: `{"type":"binary","left":{"type":"literal","value":1},"right":{"type":"literal","value":2},"operator":"notEqual"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			data, err := MarshalExpression(mustCompile(t, tc.source))
			require.NoError(t, err)
			assert.JSONEq(t, tc.expected, string(data))
		})
	}
}

func TestExpressionRoundTrip(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		"true and not false",
		"10 + 20 - 30 < 50 * 5 / 25",
		"10 div 3 <= 10 mod 3",
		"max(['hello', 1, true]) > x",
		"'Apple' + 'Pen' = 'ApplePen'",
		"[1, [2, nil], 'three']",
		"-(x + 1)",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			original := mustCompile(t, source)
			data, err := MarshalExpression(original)
			require.NoError(t, err)

			decoded, err := UnmarshalExpression(data)
			require.NoError(t, err)
			assert.Equal(t, original, decoded)
		})
	}
}

func TestRoundTripEvaluatesIdentically(t *testing.T) {
	env := testEnvironment()
	sources := []string{
		"x * 2 + 1",
		"max(x, 10) = 10",
		"'hello ' + name",
		"list + [3, nil]",
		"false and explode()",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			original := mustCompile(t, source)
			expected, err := Execute(env, original)
			require.NoError(t, err)

			data, err := MarshalExpression(original)
			require.NoError(t, err)
			decoded, err := UnmarshalExpression(data)
			require.NoError(t, err)

			actual, err := Execute(env, decoded)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestOptimizedTreeRoundTrip(t *testing.T) {
	expr := mustCompile(t, "1 + 2 * 3 = 7 and x > 0")
	require.NoError(t, Optimize(&expr))

	data, err := MarshalExpression(expr)
	require.NoError(t, err)
	decoded, err := UnmarshalExpression(data)
	require.NoError(t, err)
	assert.Equal(t, expr, decoded)
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []string{
		`{"type":"mystery"}`,
		`{"type":"unary","right":{"type":"literal","value":1},"operator":"nope"}`,
		`{"type":"literal","value":{"an":"object"}}`,
		`[]`,
	}
	for _, data := range cases {
		t.Run(data, func(t *testing.T) {
			_, err := UnmarshalExpression([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestValueMarshalling(t *testing.T) {
	data, err := json.Marshal(Array{Number(1), String("a"), Boolean(false), Nil{}})
	require.NoError(t, err)
	assert.JSONEq(t, `[1, "a", false, null]`, string(data))

	value, err := UnmarshalValue([]byte(`[1, "a", false, null]`))
	require.NoError(t, err)
	assert.Equal(t, Array{Number(1), String("a"), Boolean(false), Nil{}}, value)
}
