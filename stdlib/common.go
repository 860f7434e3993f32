package stdlib

import (
	"strconv"
	"strings"

	"github.com/exprel/exprel"
)

func commonFunctions() []exprel.Function {
	return []exprel.Function{
		exprel.NewFunction(all, exprel.VariadicArity(), "all(...): Boolean"),
		exprel.NewFunction(anyTrue, exprel.VariadicArity(), "any(...): Boolean"),
		exprel.NewFunction(at, exprel.RequiredArity(2), "at(values: [String|Array], index: Number): Any"),
		exprel.NewFunction(between, exprel.RequiredArity(3), "between(value: Any, lower: Any, upper: Any): Boolean"),
		exprel.NewFunction(toBool, exprel.RequiredArity(1), "bool(value: Any): Boolean"),
		exprel.NewFunction(compare, exprel.RequiredArity(2), "compare(left: Any, right: Any): Number"),
		exprel.NewFunction(contains, exprel.RequiredArity(2), "contains(haystack: [String|Array], needle: [String|Any]): Boolean"),
		exprel.NewFunction(copyRange, exprel.RequiredArity(3), "copy(source: [String|Array], start: Number, count: Number): [String|Array]"),
		exprel.NewFunction(empty, exprel.RequiredArity(1), "empty(value: Any): Boolean"),
		exprel.NewFunction(find, exprel.RequiredArity(2), "find(haystack: [String|Array], needle: [String|Any]): Number"),
		exprel.NewFunction(toFloat, exprel.RequiredArity(1), "float(value: Any): Number"),
		exprel.NewFunction(ifThen, exprel.OptionalArity(2, 1), "if_then(condition: Boolean, first: Any, second: Any): Any"),
		exprel.NewFunction(insert, exprel.RequiredArity(3), "insert(target: [String|Array], source: [String|Any], index: Number): Any"),
		exprel.NewFunction(toInt, exprel.RequiredArity(1), "int(value: Any): Number"),
		exprel.NewFunction(length, exprel.RequiredArity(1), "length(value: [String|Array]): Number"),
		exprel.NewFunction(max, exprel.VariadicArity(), "max(...): Any"),
		exprel.NewFunction(min, exprel.VariadicArity(), "min(...): Any"),
		exprel.NewFunction(replace, exprel.OptionalArity(2, 1), "replace(value: [String|Array], from: [String|Any], to: [String|Any]): [String|Array]"),
		// replace with two arguments removes every match.
		exprel.NewFunction(replace, exprel.RequiredArity(2), "remove(value: [String|Array], from: [String|Any]): [String|Array]"),
		exprel.NewFunction(reverse, exprel.RequiredArity(1), "reverse(value: [Array|String]): [Array|String]"),
		exprel.NewFunction(toStr, exprel.RequiredArity(1), "str(value: Any): String"),
	}
}

// all reports whether every argument is the boolean true. A single
// array argument is checked element-wise.
func all(args []exprel.Value) (exprel.Value, error) {
	for _, v := range smartList(args) {
		if !exprel.Equal(v, exprel.Boolean(true)) {
			return exprel.Boolean(false), nil
		}
	}
	return exprel.Boolean(true), nil
}

// anyTrue reports whether at least one argument is the boolean true. A
// single array argument is checked element-wise.
func anyTrue(args []exprel.Value) (exprel.Value, error) {
	for _, v := range smartList(args) {
		if exprel.Equal(v, exprel.Boolean(true)) {
			return exprel.Boolean(true), nil
		}
	}
	return exprel.Boolean(false), nil
}

// at returns the element at an index: characters for strings (1-based),
// elements for arrays (0-based).
func at(args []exprel.Value) (exprel.Value, error) {
	index, ok := args[1].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}

	switch values := args[0].(type) {
	case exprel.String:
		i, err := stringIndex(index)
		if err != nil {
			return nil, err
		}
		runes := []rune(string(values))
		if i < 0 || i >= len(runes) {
			return nil, errIndexOutOfBounds(i + stringOffset)
		}
		return exprel.String(runes[i]), nil
	case exprel.Array:
		i, err := arrayIndex(index)
		if err != nil {
			return nil, err
		}
		if i >= len(values) {
			return nil, errIndexOutOfBounds(i)
		}
		return values[i], nil
	}
	return nil, errWrongType
}

// between reports whether a value falls inside an inclusive range.
func between(args []exprel.Value) (exprel.Value, error) {
	lower, ok := exprel.CompareValues(args[0], args[1])
	if !ok {
		return nil, errNotComparable
	}
	upper, ok := exprel.CompareValues(args[0], args[2])
	if !ok {
		return nil, errNotComparable
	}
	return exprel.Boolean(lower >= 0 && upper <= 0), nil
}

// toBool converts a value to a boolean: numbers equal to 1, the string
// "true" in any case, non-empty arrays, and nil is false.
func toBool(args []exprel.Value) (exprel.Value, error) {
	switch v := args[0].(type) {
	case exprel.Boolean:
		return v, nil
	case exprel.Number:
		return exprel.Boolean(v == 1), nil
	case exprel.String:
		return exprel.Boolean(strings.EqualFold(string(v), "true")), nil
	case exprel.Array:
		return exprel.Boolean(len(v) > 0), nil
	case exprel.Nil:
		return exprel.Boolean(false), nil
	}
	return nil, errWrongType
}

// compare orders two values and returns -1, 0 or 1.
func compare(args []exprel.Value) (exprel.Value, error) {
	order, ok := exprel.CompareValues(args[0], args[1])
	if !ok {
		return nil, errNotComparable
	}
	return exprel.Number(order), nil
}

// contains reports whether a substring occurs in a string, or whether
// any element of an array equals the needle.
func contains(args []exprel.Value) (exprel.Value, error) {
	switch haystack := args[0].(type) {
	case exprel.String:
		needle, ok := args[1].(exprel.String)
		if !ok {
			return nil, errWrongType
		}
		return exprel.Boolean(strings.Contains(string(haystack), string(needle))), nil
	case exprel.Array:
		for _, v := range haystack {
			if exprel.Equal(v, args[1]) {
				return exprel.Boolean(true), nil
			}
		}
		return exprel.Boolean(false), nil
	}
	return nil, errWrongType
}

// copyRange extracts count elements starting at an index: characters
// for strings (1-based), elements for arrays (0-based). Ranges past the
// end are clipped.
func copyRange(args []exprel.Value) (exprel.Value, error) {
	start, ok := args[1].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}
	count, ok := args[2].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}
	n := int(count)
	if n < 0 {
		n = 0
	}

	switch source := args[0].(type) {
	case exprel.String:
		i, err := stringIndex(start)
		if err != nil {
			return nil, err
		}
		runes := []rune(string(source))
		if i < 0 || i >= len(runes) {
			return exprel.String(""), nil
		}
		if i+n > len(runes) {
			n = len(runes) - i
		}
		return exprel.String(runes[i : i+n]), nil
	case exprel.Array:
		i, err := arrayIndex(start)
		if err != nil {
			return nil, err
		}
		if i >= len(source) {
			return exprel.Array{}, nil
		}
		if i+n > len(source) {
			n = len(source) - i
		}
		out := make(exprel.Array, n)
		copy(out, source[i:i+n])
		return out, nil
	}
	return nil, errWrongType
}

// empty reports whether a value equals the empty value of its kind.
func empty(args []exprel.Value) (exprel.Value, error) {
	return exprel.Boolean(exprel.IsEmpty(args[0])), nil
}

// find returns the position of a substring in a string (1-based, 0 when
// absent) or the index of an element in an array (0-based, -1 when
// absent).
func find(args []exprel.Value) (exprel.Value, error) {
	switch haystack := args[0].(type) {
	case exprel.String:
		needle, ok := args[1].(exprel.String)
		if !ok {
			return nil, errWrongType
		}
		index := strings.Index(string(haystack), string(needle))
		if index < 0 {
			return exprel.Number(-1 + stringOffset), nil
		}
		return exprel.Number(index + stringOffset), nil
	case exprel.Array:
		for i, v := range haystack {
			if exprel.Equal(v, args[1]) {
				return exprel.Number(i), nil
			}
		}
		return exprel.Number(-1), nil
	}
	return nil, errWrongType
}

// toFloat converts a boolean or a numeric string to a number. Numbers
// pass through unchanged.
func toFloat(args []exprel.Value) (exprel.Value, error) {
	switch v := args[0].(type) {
	case exprel.Number:
		return v, nil
	case exprel.Boolean:
		if v {
			return exprel.Number(1), nil
		}
		return exprel.Number(0), nil
	case exprel.String:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, err
		}
		return exprel.Number(f), nil
	}
	return nil, errWrongType
}

// ifThen returns the second argument when the condition is true and the
// third otherwise. Without a third argument the false branch yields the
// empty value of the second argument's kind.
func ifThen(args []exprel.Value) (exprel.Value, error) {
	condition, ok := args[0].(exprel.Boolean)
	if !ok {
		return nil, errWrongType
	}
	if condition {
		return args[1], nil
	}
	if len(args) > 2 {
		return args[2], nil
	}
	return exprel.Empty(args[1]), nil
}

// insert places a string into a string at a character index (1-based)
// or an element into an array at an index (0-based).
func insert(args []exprel.Value) (exprel.Value, error) {
	index, ok := args[2].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}

	switch target := args[0].(type) {
	case exprel.String:
		source, ok := args[1].(exprel.String)
		if !ok {
			return nil, errWrongType
		}
		i, err := stringIndex(index)
		if err != nil {
			return nil, err
		}
		runes := []rune(string(target))
		if i < 0 || i > len(runes) {
			return nil, errIndexOutOfBounds(i + stringOffset)
		}
		return exprel.String(string(runes[:i]) + string(source) + string(runes[i:])), nil
	case exprel.Array:
		i, err := arrayIndex(index)
		if err != nil {
			return nil, err
		}
		if i > len(target) {
			return nil, errIndexOutOfBounds(i)
		}
		out := make(exprel.Array, 0, len(target)+1)
		out = append(out, target[:i]...)
		out = append(out, args[1])
		out = append(out, target[i:]...)
		return out, nil
	}
	return nil, errWrongType
}

// toInt converts like float and truncates toward zero.
func toInt(args []exprel.Value) (exprel.Value, error) {
	value, err := toFloat(args)
	if err != nil {
		return nil, err
	}
	return exprel.Number(int64(value.(exprel.Number))), nil
}

// length returns the length of a string or array, zero for any other
// kind.
func length(args []exprel.Value) (exprel.Value, error) {
	return exprel.Number(exprel.Length(args[0])), nil
}

// max returns the largest argument. A single array argument is searched
// element-wise.
func max(args []exprel.Value) (exprel.Value, error) {
	return pick(smartList(args), 1)
}

// min returns the smallest argument. A single array argument is
// searched element-wise.
func min(args []exprel.Value) (exprel.Value, error) {
	return pick(smartList(args), -1)
}

func pick(values []exprel.Value, direction int) (exprel.Value, error) {
	if len(values) == 0 {
		return nil, errWrongType
	}
	best := values[0]
	for _, v := range values[1:] {
		order, ok := exprel.CompareValues(v, best)
		if !ok {
			return nil, errNotComparable
		}
		if order == direction {
			best = v
		}
	}
	return best, nil
}

// replace substitutes every match of a substring in a string, or every
// equal element of an array. Without a third argument the matches are
// removed.
func replace(args []exprel.Value) (exprel.Value, error) {
	switch value := args[0].(type) {
	case exprel.String:
		from, ok := args[1].(exprel.String)
		if !ok {
			return nil, errWrongType
		}
		to, err := defaultString(args, 2, "")
		if err != nil {
			return nil, err
		}
		return exprel.String(strings.ReplaceAll(string(value), string(from), to)), nil
	case exprel.Array:
		out := make(exprel.Array, 0, len(value))
		for _, v := range value {
			if !exprel.Equal(v, args[1]) {
				out = append(out, v)
				continue
			}
			if len(args) > 2 {
				out = append(out, args[2])
			}
		}
		return out, nil
	}
	return nil, errWrongType
}

// reverse inverts the order of an array's elements or a string's
// characters.
func reverse(args []exprel.Value) (exprel.Value, error) {
	switch value := args[0].(type) {
	case exprel.String:
		runes := []rune(string(value))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return exprel.String(runes), nil
	case exprel.Array:
		out := make(exprel.Array, len(value))
		for i, v := range value {
			out[len(value)-1-i] = v
		}
		return out, nil
	}
	return nil, errWrongType
}

// toStr renders any value as its display string.
func toStr(args []exprel.Value) (exprel.Value, error) {
	return exprel.String(args[0].String()), nil
}
