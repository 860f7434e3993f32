package exprel

import "fmt"

// Operator is one of the closed set of unary and binary operators.
type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpDiv
	OpMod
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpAnd
	OpOr
	OpNot
)

var operatorSymbols = map[Operator]string{
	OpPlus:         "+",
	OpMinus:        "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpDiv:          "div",
	OpMod:          "mod",
	OpEqual:        "=",
	OpNotEqual:     "<>",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpAnd:          "and",
	OpOr:           "or",
	OpNot:          "not",
}

func (op Operator) String() string {
	if s, ok := operatorSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("operator(%d)", int(op))
}

// Expression is a node of the abstract syntax tree. The set of
// implementations is closed: Literal, Variable, Unary, Binary,
// ArrayLiteral, and Call. A tree is finite and acyclic, each node
// exclusively owns its children, and every leaf is a Literal or a
// Variable.
type Expression interface {
	isExpression()
}

// Literal holds a constant value.
type Literal struct {
	Value Value
}

// Variable references a named value supplied by the Environment.
type Variable struct {
	Name string
}

// Unary applies a prefix operator (minus or not) to a single operand.
type Unary struct {
	Operator Operator
	Right    Expression
}

// Binary applies an infix operator to two operands.
type Binary struct {
	Operator Operator
	Left     Expression
	Right    Expression
}

// ArrayLiteral builds an array from an ordered element list.
type ArrayLiteral struct {
	Expressions []Expression
}

// Call invokes a named host function with an ordered argument list.
type Call struct {
	Name   string
	Params []Expression
}

func (*Literal) isExpression()      {}
func (*Variable) isExpression()     {}
func (*Unary) isExpression()        {}
func (*Binary) isExpression()       {}
func (*ArrayLiteral) isExpression() {}
func (*Call) isExpression()         {}
