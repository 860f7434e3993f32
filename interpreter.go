package exprel

// Interpreter executes a compiled expression tree against an
// Environment. Evaluation is pure structural recursion: it never
// mutates the tree or the environment, so one tree may be evaluated
// many times, concurrently if desired.
type Interpreter interface {
	Run(env Environment) (Value, error)
}

// NewInterpreter returns an interpreter for the given tree.
func NewInterpreter(expr Expression) Interpreter {
	return &interpreter{expr: expr}
}

type interpreter struct {
	expr Expression
}

func (i *interpreter) Run(env Environment) (Value, error) {
	if env == nil {
		env = emptyEnvironment
	}
	v, err := eval(env, i.expr)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Execute evaluates a single expression tree against an environment.
func Execute(env Environment, expr Expression) (Value, error) {
	return NewInterpreter(expr).Run(env)
}

var emptyEnvironment = NewStaticEnvironment()

func eval(env Environment, expr Expression) (Value, *RuntimeError) {
	switch e := expr.(type) {
	case *Literal:
		return e.Value, nil
	case *Variable:
		v, ok := env.Variable(e.Name)
		if !ok {
			return nil, errUndefinedVariable(e.Name)
		}
		return v, nil
	case *Unary:
		right, err := eval(env, e.Right)
		if err != nil {
			return nil, err
		}
		if e.Operator == OpNot {
			return Boolean(!Truthy(right)), nil
		}
		return negate(right)
	case *Binary:
		return evalBinary(env, e)
	case *ArrayLiteral:
		values, err := evalAll(env, e.Expressions)
		if err != nil {
			return nil, err
		}
		return Array(values), nil
	case *Call:
		return evalCall(env, e)
	}
	return nil, NewRuntimeError(InternalError, "unknown expression node %T", expr)
}

func evalBinary(env Environment, e *Binary) (Value, *RuntimeError) {
	left, err := eval(env, e.Left)
	if err != nil {
		return nil, err
	}

	// and/or short-circuit: the right side only runs when the left does
	// not already determine the result. Both always yield a boolean.
	switch e.Operator {
	case OpAnd:
		if !Truthy(left) {
			return Boolean(false), nil
		}
		right, err := eval(env, e.Right)
		if err != nil {
			return nil, err
		}
		return Boolean(Truthy(right)), nil
	case OpOr:
		if Truthy(left) {
			return Boolean(true), nil
		}
		right, err := eval(env, e.Right)
		if err != nil {
			return nil, err
		}
		return Boolean(Truthy(right)), nil
	}

	right, err := eval(env, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case OpPlus:
		return add(left, right)
	case OpMinus:
		return subtract(left, right)
	case OpMultiply:
		return multiply(left, right)
	case OpDivide:
		return divide(left, right)
	case OpDiv:
		return intDivide(left, right)
	case OpMod:
		return modulo(left, right)
	case OpEqual:
		return Boolean(Equal(left, right)), nil
	case OpNotEqual:
		return Boolean(!Equal(left, right)), nil
	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		order, ok := CompareValues(left, right)
		if !ok {
			return nil, errBinaryMismatch(e.Operator, left, right)
		}
		switch e.Operator {
		case OpGreater:
			return Boolean(order > 0), nil
		case OpGreaterEqual:
			return Boolean(order >= 0), nil
		case OpLess:
			return Boolean(order < 0), nil
		default:
			return Boolean(order <= 0), nil
		}
	}
	return nil, errBinaryMismatch(e.Operator, left, right)
}

func evalCall(env Environment, e *Call) (Value, *RuntimeError) {
	fn, ok := env.Function(e.Name)
	if !ok {
		return nil, errUndefinedFunction(e.Name)
	}
	args, err := evalAll(env, e.Params)
	if err != nil {
		return nil, err
	}
	if !fn.Arity.Accepts(len(args)) {
		return nil, errArity(e.Name, fn.Arity.String(), len(args))
	}
	result, callErr := fn.Func(args)
	if callErr != nil {
		return nil, errFunction(e.Name, callErr)
	}
	return result, nil
}

func evalAll(env Environment, expressions []Expression) ([]Value, *RuntimeError) {
	values := make([]Value, len(expressions))
	for i, expr := range expressions {
		v, err := eval(env, expr)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
