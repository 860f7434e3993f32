package exprel

// Validate walks the tree and reports the first variable or function
// reference the environment cannot satisfy, including declared-arity
// mismatches, without evaluating anything. Hosts can use it to reject
// a rule at authoring time instead of at execution time.
func Validate(env Environment, expr Expression) error {
	if err := validate(env, expr); err != nil {
		return err
	}
	return nil
}

func validate(env Environment, expr Expression) *RuntimeError {
	switch e := expr.(type) {
	case *Unary:
		return validate(env, e.Right)
	case *Binary:
		if err := validate(env, e.Left); err != nil {
			return err
		}
		return validate(env, e.Right)
	case *ArrayLiteral:
		return validateAll(env, e.Expressions)
	case *Variable:
		if _, ok := env.Variable(e.Name); !ok {
			return errUndefinedVariable(e.Name)
		}
	case *Call:
		fn, ok := env.Function(e.Name)
		if !ok {
			return errUndefinedFunction(e.Name)
		}
		if !fn.Arity.Accepts(len(e.Params)) {
			return errArity(e.Name, fn.Arity.String(), len(e.Params))
		}
		return validateAll(env, e.Params)
	}
	return nil
}

func validateAll(env Environment, expressions []Expression) *RuntimeError {
	for _, expr := range expressions {
		if err := validate(env, expr); err != nil {
			return err
		}
	}
	return nil
}

// CheckBooleanResult reports whether the top level expression can only
// produce a boolean. Variables and calls pass, their type being
// unknown until execution.
func CheckBooleanResult(expr Expression) error {
	switch e := expr.(type) {
	case *Unary:
		if e.Operator == OpNot {
			return nil
		}
		return NewRuntimeError(TypeMismatch, "operator %s does not produce a boolean", e.Operator)
	case *Binary:
		switch e.Operator {
		case OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpAnd, OpOr:
			return nil
		}
		return NewRuntimeError(TypeMismatch, "operator %s does not produce a boolean", e.Operator)
	case *Literal:
		if _, ok := e.Value.(Boolean); ok {
			return nil
		}
		return NewRuntimeError(TypeMismatch, "literal %s is not a boolean", e.Value)
	case *ArrayLiteral:
		return NewRuntimeError(TypeMismatch, "an array is not a boolean")
	}
	return nil
}
