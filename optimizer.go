package exprel

// Optimize rewrites the tree in place, bottom-up, replacing every
// subtree built only from literals with a single literal holding its
// evaluated result, using the regular interpreter semantics against an
// empty environment. Short-circuit operators with a deciding constant
// left side drop their dead right side. Variables and function calls
// are never folded, so the rewrite preserves error behavior and is
// idempotent: optimizing an already optimized tree changes nothing.
//
// A constant subtree that would fail at runtime, such as a literal
// division by zero, surfaces as an *OptimizeError rather than being
// left unfolded.
func Optimize(expr *Expression) error {
	if err := fold(expr); err != nil {
		return err
	}
	return nil
}

func fold(expr *Expression) *OptimizeError {
	switch e := (*expr).(type) {
	case *Unary:
		if err := fold(&e.Right); err != nil {
			return err
		}
		if isLiteral(e.Right) {
			return replaceWithResult(expr)
		}
	case *Binary:
		if err := fold(&e.Left); err != nil {
			return err
		}
		// A deciding constant left side makes the right side dead:
		// `false and x` is false and `1 or x` is true, with or without x.
		// The dead side is dropped unfolded so that a constant error in
		// it, which evaluation would never reach, stays unreported.
		if left, ok := e.Left.(*Literal); ok {
			if e.Operator == OpAnd && !Truthy(left.Value) {
				*expr = &Literal{Value: Boolean(false)}
				return nil
			}
			if e.Operator == OpOr && Truthy(left.Value) {
				*expr = &Literal{Value: Boolean(true)}
				return nil
			}
		}
		if err := fold(&e.Right); err != nil {
			return err
		}
		if isLiteral(e.Left) && isLiteral(e.Right) {
			return replaceWithResult(expr)
		}
	case *ArrayLiteral:
		constant := true
		for i := range e.Expressions {
			if err := fold(&e.Expressions[i]); err != nil {
				return err
			}
			constant = constant && isLiteral(e.Expressions[i])
		}
		if constant {
			return replaceWithResult(expr)
		}
	case *Call:
		// Calls are never folded, but their arguments still shrink.
		for i := range e.Params {
			if err := fold(&e.Params[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func isLiteral(expr Expression) bool {
	_, ok := expr.(*Literal)
	return ok
}

func replaceWithResult(expr *Expression) *OptimizeError {
	value, err := eval(emptyEnvironment, *expr)
	if err != nil {
		return &OptimizeError{Inner: err}
	}
	*expr = &Literal{Value: value}
	return nil
}
