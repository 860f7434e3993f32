package exprel

import (
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NativeFunction is a host function callable from an expression. All
// arguments arrive fully evaluated, in order. A returned error is
// surfaced to the evaluation caller as a function-error.
type NativeFunction func(args []Value) (Value, error)

// Arity declares how many arguments a function accepts.
type Arity struct {
	Required int
	Optional int
	Variadic bool
}

// RequiredArity declares a fixed number of arguments.
func RequiredArity(n int) Arity {
	return Arity{Required: n}
}

// OptionalArity declares required arguments plus a number of trailing
// optional ones.
func OptionalArity(required, optional int) Arity {
	return Arity{Required: required, Optional: optional}
}

// VariadicArity accepts any number of arguments.
func VariadicArity() Arity {
	return Arity{Variadic: true}
}

// Accepts reports whether a call with n arguments satisfies the arity.
func (a Arity) Accepts(n int) bool {
	if a.Variadic {
		return true
	}
	return n >= a.Required && n <= a.Required+a.Optional
}

func (a Arity) String() string {
	if a.Variadic {
		return "any number of"
	}
	if a.Optional == 0 {
		return strconv.Itoa(a.Required)
	}
	return strconv.Itoa(a.Required) + ".." + strconv.Itoa(a.Required+a.Optional)
}

// Function wraps a native callable with its name, arity policy, and
// purity flag. Pure functions always return the same value for the same
// arguments; impure ones (e.g. random) are exempt from the referential
// transparency guarantee.
type Function struct {
	Name   string
	Func   NativeFunction
	Arity  Arity
	Params string
	Pure   bool
}

// NewFunction creates a pure Function from a declaration such as
// "max(left: Number, right: Number): Number". If the declaration has no
// opening parenthesis the whole string is the name and Params is empty.
func NewFunction(fn NativeFunction, arity Arity, declaration string) Function {
	name, params := parseDeclaration(declaration)
	return Function{
		Name:   name,
		Func:   fn,
		Arity:  arity,
		Params: params,
		Pure:   true,
	}
}

// ImpureFunction creates a Function whose results may differ between
// calls with identical arguments.
func ImpureFunction(fn NativeFunction, arity Arity, declaration string) Function {
	f := NewFunction(fn, arity, declaration)
	f.Pure = false
	return f
}

func parseDeclaration(declaration string) (string, string) {
	name, params, found := strings.Cut(declaration, "(")
	if !found {
		return strings.TrimSpace(declaration), ""
	}
	return strings.TrimSpace(name), "(" + params
}

// Environment binds names to values and native functions. It is built
// by the host before evaluation and never mutated by the interpreter.
type Environment interface {
	// Variable returns the value bound to a name.
	Variable(name string) (Value, bool)

	// Function returns the function bound to a name.
	Function(name string) (*Function, bool)
}

// StaticEnvironment is an Environment in which all variables and
// functions are known ahead of execution. Names are case-insensitive.
type StaticEnvironment struct {
	variables map[string]Value
	functions map[string]*Function
}

// NewStaticEnvironment creates an empty environment.
func NewStaticEnvironment() *StaticEnvironment {
	return &StaticEnvironment{
		variables: map[string]Value{},
		functions: map[string]*Function{},
	}
}

// AddVariable adds or replaces a variable binding.
func (e *StaticEnvironment) AddVariable(name string, value Value) {
	e.variables[strings.ToLower(name)] = value
}

// AddFunction adds or replaces a function binding under the function's
// declared name.
func (e *StaticEnvironment) AddFunction(fn Function) {
	e.functions[strings.ToLower(fn.Name)] = &fn
}

// AddFunctions adds every function in the list.
func (e *StaticEnvironment) AddFunctions(fns []Function) {
	for _, fn := range fns {
		e.AddFunction(fn)
	}
}

func (e *StaticEnvironment) Variable(name string) (Value, bool) {
	v, ok := e.variables[strings.ToLower(name)]
	return v, ok
}

func (e *StaticEnvironment) Function(name string) (*Function, bool) {
	fn, ok := e.functions[strings.ToLower(name)]
	return fn, ok
}

// Functions lists all registered functions sorted by name.
func (e *StaticEnvironment) Functions() []*Function {
	names := maps.Keys(e.functions)
	slices.Sort(names)
	fns := make([]*Function, len(names))
	for i, name := range names {
		fns[i] = e.functions[name]
	}
	return fns
}
