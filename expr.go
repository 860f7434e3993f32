// Package exprel compiles a single Pascal-like expression into an
// abstract syntax tree, optionally folds its constant subtrees, and
// evaluates the tree against host-supplied variables and functions. It
// is meant for embedding a small, sandboxed rule language: business
// rules, configurable validation, formula fields. There are no
// statements, loops or assignments; an expression always produces one
// value.
package exprel

// Compile lexes and parses an expression and returns the abstract
// syntax tree. The tree may be evaluated any number of times, against
// different environments.
func Compile(expression string) (Expression, error) {
	p := NewParser(NewLexer(expression))
	expr, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// Eval is a convenience function which compiles and executes an
// expression in one call. If you plan to execute the expression
// multiple times cache the output of Compile instead.
func Eval(expression string, env Environment) (Value, error) {
	expr, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return Execute(env, expr)
}
