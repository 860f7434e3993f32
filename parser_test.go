package exprel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, source string) Expression {
	t.Helper()
	expr, err := Compile(source)
	require.NoError(t, err)
	return expr
}

func TestParserTreeShapes(t *testing.T) {
	cases := []struct {
		source   string
		expected Expression
	}{
		{
			source:   "true",
			expected: &Literal{Value: Boolean(true)},
		},
		{
			source:   "some_var",
			expected: &Variable{Name: "some_var"},
		},
		{
			source:   "(42)",
			expected: &Literal{Value: Number(42)},
		},
		{
			source: "-42",
			expected: &Unary{
				Operator: OpMinus,
				Right:    &Literal{Value: Number(42)},
			},
		},
		{
			source: "1 + 2 * 3",
			expected: &Binary{
				Operator: OpPlus,
				Left:     &Literal{Value: Number(1)},
				Right: &Binary{
					Operator: OpMultiply,
					Left:     &Literal{Value: Number(2)},
					Right:    &Literal{Value: Number(3)},
				},
			},
		},
		{
			source: "(1 + 2) * 3",
			expected: &Binary{
				Operator: OpMultiply,
				Left: &Binary{
					Operator: OpPlus,
					Left:     &Literal{Value: Number(1)},
					Right:    &Literal{Value: Number(2)},
				},
				Right: &Literal{Value: Number(3)},
			},
		},
		{
			// Same level, left associative.
			source: "1 - 2 + 3",
			expected: &Binary{
				Operator: OpPlus,
				Left: &Binary{
					Operator: OpMinus,
					Left:     &Literal{Value: Number(1)},
					Right:    &Literal{Value: Number(2)},
				},
				Right: &Literal{Value: Number(3)},
			},
		},
		{
			// Equality and ordering share one level, left to right.
			source: "1 = 2 < 3",
			expected: &Binary{
				Operator: OpLess,
				Left: &Binary{
					Operator: OpEqual,
					Left:     &Literal{Value: Number(1)},
					Right:    &Literal{Value: Number(2)},
				},
				Right: &Literal{Value: Number(3)},
			},
		},
		{
			// Comparison binds tighter than and, and tighter than or.
			source: "1 < 2 and x or flag",
			expected: &Binary{
				Operator: OpOr,
				Left: &Binary{
					Operator: OpAnd,
					Left: &Binary{
						Operator: OpLess,
						Left:     &Literal{Value: Number(1)},
						Right:    &Literal{Value: Number(2)},
					},
					Right: &Variable{Name: "x"},
				},
				Right: &Variable{Name: "flag"},
			},
		},
		{
			// not sits between and and the comparisons.
			source: "x and not 1 = 2",
			expected: &Binary{
				Operator: OpAnd,
				Left:     &Variable{Name: "x"},
				Right: &Unary{
					Operator: OpNot,
					Right: &Binary{
						Operator: OpEqual,
						Left:     &Literal{Value: Number(1)},
						Right:    &Literal{Value: Number(2)},
					},
				},
			},
		},
		{
			// Unary minus binds tighter than multiplication.
			source: "-2 * 3",
			expected: &Binary{
				Operator: OpMultiply,
				Left: &Unary{
					Operator: OpMinus,
					Right:    &Literal{Value: Number(2)},
				},
				Right: &Literal{Value: Number(3)},
			},
		},
		{
			source: "10 div 3 mod 2",
			expected: &Binary{
				Operator: OpMod,
				Left: &Binary{
					Operator: OpDiv,
					Left:     &Literal{Value: Number(10)},
					Right:    &Literal{Value: Number(3)},
				},
				Right: &Literal{Value: Number(2)},
			},
		},
		{
			source:   "[]",
			expected: &ArrayLiteral{Expressions: []Expression{}},
		},
		{
			source: "[1, 'two', x]",
			expected: &ArrayLiteral{Expressions: []Expression{
				&Literal{Value: Number(1)},
				&Literal{Value: String("two")},
				&Variable{Name: "x"},
			}},
		},
		{
			source:   "max()",
			expected: &Call{Name: "max", Params: []Expression{}},
		},
		{
			source: "max(1, 2 + 3)",
			expected: &Call{Name: "max", Params: []Expression{
				&Literal{Value: Number(1)},
				&Binary{
					Operator: OpPlus,
					Left:     &Literal{Value: Number(2)},
					Right:    &Literal{Value: Number(3)},
				},
			}},
		},
		{
			source:   "nil",
			expected: &Literal{Value: Nil{}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			assert.Equal(t, tc.expected, mustCompile(t, tc.source))
		})
	}
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		source string
		kind   SyntaxErrorKind
	}{
		{source: "", kind: UnexpectedEndOfInput},
		{source: "1 +", kind: UnexpectedEndOfInput},
		{source: "1 <", kind: UnexpectedEndOfInput},
		{source: "not", kind: UnexpectedEndOfInput},
		{source: "(1 + 2", kind: MismatchedParenthesis},
		{source: "[1, 2", kind: MismatchedParenthesis},
		{source: "max(1, 2", kind: MismatchedParenthesis},
		{source: ")", kind: MismatchedParenthesis},
		{source: "]", kind: MismatchedParenthesis},
		{source: "1 ]", kind: UnexpectedToken},
		{source: "1 2", kind: UnexpectedToken},
		{source: "1 + 2)", kind: UnexpectedToken},
		{source: "(1)(2)", kind: UnexpectedToken},
		{source: "+ 1", kind: ExpectedExpression},
		{source: "1 + and", kind: ExpectedExpression},
		{source: "1 + ,", kind: ExpectedExpression},
		{source: "max(1,)", kind: ExpectedExpression},
		{source: "max(1, 2,)", kind: ExpectedExpression},
		{source: "[1,]", kind: ExpectedExpression},
		{source: "'open", kind: UnterminatedString},
		{source: "2 ~ 2", kind: UnexpectedCharacter},
	}

	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			_, err := Compile(tc.source)
			require.Error(t, err)
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tc.kind, serr.Kind)
		})
	}
}

func TestParserErrorOffsets(t *testing.T) {
	_, err := Compile("1 + $")
	require.Error(t, err)
	serr := err.(*SyntaxError)
	assert.Equal(t, 4, serr.Offset)
	assert.Contains(t, serr.Pretty("1 + $"), "....^")
}
