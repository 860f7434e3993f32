package exprel

import "fmt"

// SyntaxErrorKind classifies failures during lexing and parsing.
type SyntaxErrorKind string

const (
	UnexpectedCharacter   SyntaxErrorKind = "unexpected-character"
	UnterminatedString    SyntaxErrorKind = "unterminated-string"
	UnexpectedToken       SyntaxErrorKind = "unexpected-token"
	UnexpectedEndOfInput  SyntaxErrorKind = "unexpected-end-of-input"
	ExpectedExpression    SyntaxErrorKind = "expected-expression"
	MismatchedParenthesis SyntaxErrorKind = "mismatched-parenthesis"
)

// SyntaxError is a compile-time error at a specific location. Compilation
// stops at the first error; no recovery is attempted.
type SyntaxError struct {
	Kind    SyntaxErrorKind
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return e.Message
}

// Pretty prints out the message with a pointer to the source location of
// the error.
func (e *SyntaxError) Pretty(source string) string {
	msg := e.Message + "\n" + source + "\n"
	for i := 0; i < e.Offset; i++ {
		msg += "."
	}
	return msg + "^"
}

// NewSyntaxError creates a new syntax error at a specific location.
func NewSyntaxError(kind SyntaxErrorKind, offset int, format string, a ...interface{}) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, a...),
	}
}

// RuntimeErrorKind classifies failures during evaluation.
type RuntimeErrorKind string

const (
	UndefinedVariable RuntimeErrorKind = "undefined-variable"
	UndefinedFunction RuntimeErrorKind = "undefined-function"
	TypeMismatch      RuntimeErrorKind = "type-mismatch"
	DivisionByZero    RuntimeErrorKind = "division-by-zero"
	FunctionError     RuntimeErrorKind = "function-error"
	ArityMismatch     RuntimeErrorKind = "arity-mismatch"

	// InternalError reports an expression tree the interpreter does not
	// recognize, such as a node type from outside this package.
	InternalError RuntimeErrorKind = "internal-error"
)

// RuntimeError is an evaluation error. Name is set for undefined-variable,
// undefined-function, function-error, and arity-mismatch kinds.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Name    string
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// NewRuntimeError creates a new runtime error of the given kind.
func NewRuntimeError(kind RuntimeErrorKind, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
	}
}

func errUndefinedVariable(name string) *RuntimeError {
	return &RuntimeError{
		Kind:    UndefinedVariable,
		Name:    name,
		Message: fmt.Sprintf("undefined variable %q", name),
	}
}

func errUndefinedFunction(name string) *RuntimeError {
	return &RuntimeError{
		Kind:    UndefinedFunction,
		Name:    name,
		Message: fmt.Sprintf("undefined function %q", name),
	}
}

func errUnaryMismatch(op Operator, right Value) *RuntimeError {
	return NewRuntimeError(TypeMismatch, "operator %s is not defined for %s", op, right.Kind())
}

func errBinaryMismatch(op Operator, left, right Value) *RuntimeError {
	return NewRuntimeError(TypeMismatch, "operator %s is not defined for %s and %s", op, left.Kind(), right.Kind())
}

func errDivisionByZero(op Operator) *RuntimeError {
	return NewRuntimeError(DivisionByZero, "cannot %s by zero", op)
}

func errFunction(name string, err error) *RuntimeError {
	return &RuntimeError{
		Kind:    FunctionError,
		Name:    name,
		Message: fmt.Sprintf("function %q: %s", name, err),
	}
}

func errArity(name string, expected string, got int) *RuntimeError {
	return &RuntimeError{
		Kind:    ArityMismatch,
		Name:    name,
		Message: fmt.Sprintf("function %q expects %s argument(s) but got %d", name, expected, got),
	}
}

// OptimizeError reports a constant subexpression that would fail at
// runtime, e.g. a literal division by zero. It wraps the underlying
// runtime error instead of silently leaving the subtree unfolded.
type OptimizeError struct {
	Inner *RuntimeError
}

func (e *OptimizeError) Error() string {
	return "constant folding: " + e.Inner.Error()
}

func (e *OptimizeError) Unwrap() error {
	return e.Inner
}
