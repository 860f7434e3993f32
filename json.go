package exprel

import (
	"encoding/json"
	"fmt"
)

// The wire format is a self-describing tagged union: every node is an
// object with a "type" discriminator, operators are camelCase strings,
// and values are plain JSON scalars and arrays with null for nil. A
// tree compiled and optimized by one process can be shipped to and
// evaluated by another without re-parsing.

var operatorWireNames = map[Operator]string{
	OpPlus:         "plus",
	OpMinus:        "minus",
	OpMultiply:     "multiply",
	OpDivide:       "divide",
	OpDiv:          "div",
	OpMod:          "mod",
	OpEqual:        "equal",
	OpNotEqual:     "notEqual",
	OpGreater:      "greater",
	OpGreaterEqual: "greaterEqual",
	OpLess:         "less",
	OpLessEqual:    "lessEqual",
	OpAnd:          "and",
	OpOr:           "or",
	OpNot:          "not",
}

var operatorsByWireName = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorWireNames))
	for op, name := range operatorWireNames {
		m[name] = op
	}
	return m
}()

// MarshalJSON encodes the operator as its stable wire name.
func (op Operator) MarshalJSON() ([]byte, error) {
	name, ok := operatorWireNames[op]
	if !ok {
		return nil, fmt.Errorf("unknown operator %d", int(op))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes an operator from its wire name.
func (op *Operator) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	decoded, ok := operatorsByWireName[name]
	if !ok {
		return fmt.Errorf("unknown operator %q", name)
	}
	*op = decoded
	return nil
}

// MarshalJSON encodes Nil as null. The other value kinds marshal
// natively.
func (Nil) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// UnmarshalValue decodes a runtime value from its plain JSON form.
func UnmarshalValue(data []byte) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return valueFromAny(raw)
}

func valueFromAny(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Nil{}, nil
	case bool:
		return Boolean(v), nil
	case float64:
		return Number(v), nil
	case string:
		return String(v), nil
	case []interface{}:
		items := make(Array, len(v))
		for i, item := range v {
			value, err := valueFromAny(item)
			if err != nil {
				return nil, err
			}
			items[i] = value
		}
		return items, nil
	}
	return nil, fmt.Errorf("cannot decode %T as a value", raw)
}

type literalJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type variableJSON struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type unaryJSON struct {
	Type     string          `json:"type"`
	Right    json.RawMessage `json:"right"`
	Operator Operator        `json:"operator"`
}

type binaryJSON struct {
	Type     string          `json:"type"`
	Left     json.RawMessage `json:"left"`
	Right    json.RawMessage `json:"right"`
	Operator Operator        `json:"operator"`
}

type arrayJSON struct {
	Type        string            `json:"type"`
	Expressions []json.RawMessage `json:"expressions"`
}

type callJSON struct {
	Type   string            `json:"type"`
	Name   string            `json:"name"`
	Params []json.RawMessage `json:"params"`
}

func (e *Literal) MarshalJSON() ([]byte, error) {
	value, err := json.Marshal(e.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(literalJSON{Type: "literal", Value: value})
}

func (e *Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(variableJSON{Type: "variable", Name: e.Name})
}

func (e *Unary) MarshalJSON() ([]byte, error) {
	right, err := json.Marshal(e.Right)
	if err != nil {
		return nil, err
	}
	return json.Marshal(unaryJSON{Type: "unary", Right: right, Operator: e.Operator})
}

func (e *Binary) MarshalJSON() ([]byte, error) {
	left, err := json.Marshal(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := json.Marshal(e.Right)
	if err != nil {
		return nil, err
	}
	return json.Marshal(binaryJSON{Type: "binary", Left: left, Right: right, Operator: e.Operator})
}

func (e *ArrayLiteral) MarshalJSON() ([]byte, error) {
	expressions, err := marshalList(e.Expressions)
	if err != nil {
		return nil, err
	}
	return json.Marshal(arrayJSON{Type: "array", Expressions: expressions})
}

func (e *Call) MarshalJSON() ([]byte, error) {
	params, err := marshalList(e.Params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(callJSON{Type: "call", Name: e.Name, Params: params})
}

func marshalList(expressions []Expression) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(expressions))
	for i, expr := range expressions {
		data, err := json.Marshal(expr)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// MarshalExpression encodes a tree into the wire format.
func MarshalExpression(expr Expression) ([]byte, error) {
	return json.Marshal(expr)
}

// UnmarshalExpression decodes a tree from the wire format.
func UnmarshalExpression(data []byte) (Expression, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	switch tag.Type {
	case "literal":
		var raw literalJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		value, err := UnmarshalValue(raw.Value)
		if err != nil {
			return nil, err
		}
		return &Literal{Value: value}, nil
	case "variable":
		var raw variableJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Variable{Name: raw.Name}, nil
	case "unary":
		var raw unaryJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		right, err := UnmarshalExpression(raw.Right)
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: raw.Operator, Right: right}, nil
	case "binary":
		var raw binaryJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		left, err := UnmarshalExpression(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := UnmarshalExpression(raw.Right)
		if err != nil {
			return nil, err
		}
		return &Binary{Operator: raw.Operator, Left: left, Right: right}, nil
	case "array":
		var raw arrayJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		expressions, err := unmarshalList(raw.Expressions)
		if err != nil {
			return nil, err
		}
		return &ArrayLiteral{Expressions: expressions}, nil
	case "call":
		var raw callJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		params, err := unmarshalList(raw.Params)
		if err != nil {
			return nil, err
		}
		return &Call{Name: raw.Name, Params: params}, nil
	}
	return nil, fmt.Errorf("unknown expression type %q", tag.Type)
}

func unmarshalList(raw []json.RawMessage) ([]Expression, error) {
	out := make([]Expression, len(raw))
	for i, data := range raw {
		expr, err := UnmarshalExpression(data)
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}
