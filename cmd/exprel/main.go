// Command exprel evaluates expressions from the command line. Variables
// come from an optional YAML file, functions from the standard library.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/exprel/exprel"
	"github.com/exprel/exprel/stdlib"
)

type cli struct {
	Eval      evalCmd      `cmd:"" default:"withargs" help:"Evaluate an expression and print the result."`
	AST       astCmd       `cmd:"" name:"ast" help:"Print the syntax tree of an expression as JSON."`
	Functions functionsCmd `cmd:"" help:"List the built-in functions."`
}

type evalCmd struct {
	Expression string `arg:"" help:"Expression to evaluate."`
	Vars       string `short:"v" type:"existingfile" help:"YAML file with variable bindings."`
	Optimize   bool   `short:"O" help:"Fold constant subtrees before evaluation."`
}

type astCmd struct {
	Expression string `arg:"" help:"Expression to parse."`
	Optimize   bool   `short:"O" help:"Fold constant subtrees before printing."`
}

type functionsCmd struct{}

func main() {
	var c cli
	ktx := kong.Parse(&c,
		kong.Name("exprel"),
		kong.Description("Compile and evaluate expressions against variable bindings."),
		kong.UsageOnError(),
	)
	ktx.FatalIfErrorf(ktx.Run())
}

func (c *evalCmd) Run() error {
	env := exprel.NewStaticEnvironment()
	stdlib.Register(env)
	if c.Vars != "" {
		if err := loadVars(env, c.Vars); err != nil {
			return err
		}
	}

	expr, err := compile(c.Expression)
	if err != nil {
		return err
	}
	if err := exprel.Validate(env, expr); err != nil {
		return err
	}
	if c.Optimize {
		if err := exprel.Optimize(&expr); err != nil {
			return err
		}
	}

	result, err := exprel.Execute(env, expr)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}

func (c *astCmd) Run() error {
	expr, err := compile(c.Expression)
	if err != nil {
		return err
	}
	if c.Optimize {
		if err := exprel.Optimize(&expr); err != nil {
			return err
		}
	}

	data, err := exprel.MarshalExpression(expr)
	if err != nil {
		return err
	}
	var out json.RawMessage = data
	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

func (c *functionsCmd) Run() error {
	env := exprel.NewStaticEnvironment()
	stdlib.Register(env)
	for _, fn := range env.Functions() {
		fmt.Printf("function %s%s\n", fn.Name, fn.Params)
	}
	return nil
}

// compile wraps Compile and renders syntax errors with a caret under
// the offending position.
func compile(expression string) (exprel.Expression, error) {
	expr, err := exprel.Compile(expression)
	if err != nil {
		var serr *exprel.SyntaxError
		if errors.As(err, &serr) {
			return nil, errors.New(serr.Pretty(expression))
		}
		return nil, err
	}
	return expr, nil
}

// loadVars reads a YAML mapping of variable names to scalar or list
// values and adds each binding to the environment.
func loadVars(env *exprel.StaticEnvironment, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var bindings map[string]interface{}
	if err := yaml.Unmarshal(data, &bindings); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for name, raw := range bindings {
		value, err := valueFromYAML(raw)
		if err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
		env.AddVariable(name, value)
	}
	return nil
}

func valueFromYAML(raw interface{}) (exprel.Value, error) {
	switch v := raw.(type) {
	case nil:
		return exprel.Nil{}, nil
	case bool:
		return exprel.Boolean(v), nil
	case string:
		return exprel.String(v), nil
	case int:
		return exprel.Number(v), nil
	case int64:
		return exprel.Number(v), nil
	case uint64:
		return exprel.Number(v), nil
	case float64:
		return exprel.Number(v), nil
	case []interface{}:
		items := make(exprel.Array, len(v))
		for i, item := range v {
			value, err := valueFromYAML(item)
			if err != nil {
				return nil, err
			}
			items[i] = value
		}
		return items, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", raw)
}
