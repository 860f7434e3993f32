package stdlib

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/exprel/exprel"
)

func stringFunctions() []exprel.Function {
	return []exprel.Function{
		exprel.NewFunction(chr, exprel.RequiredArity(1), "chr(ord: Number): String"),
		exprel.NewFunction(ord, exprel.RequiredArity(1), "ord(char: String): Number"),
		exprel.NewFunction(stringFn(strings.ToLower), exprel.RequiredArity(1), "lowercase(text: String): String"),
		exprel.NewFunction(stringFn(strings.ToUpper), exprel.RequiredArity(1), "uppercase(text: String): String"),
		exprel.NewFunction(sameText, exprel.RequiredArity(2), "same_text(left: String, right: String): Boolean"),
		exprel.NewFunction(split, exprel.RequiredArity(2), "split(line: String, separator: String): Array<String>"),
		exprel.NewFunction(splitCSV, exprel.OptionalArity(1, 1), "split_csv(line: String, separator: String = ';'): Array<String>"),
		exprel.NewFunction(stringFn(strings.TrimSpace), exprel.RequiredArity(1), "trim(text: String): String"),
		exprel.NewFunction(stringFn(trimLeft), exprel.RequiredArity(1), "trim_left(text: String): String"),
		exprel.NewFunction(stringFn(trimRight), exprel.RequiredArity(1), "trim_right(text: String): String"),
	}
}

// stringFn lifts a string transformation into a single-string native
// function.
func stringFn(fn func(string) string) exprel.NativeFunction {
	return func(args []exprel.Value) (exprel.Value, error) {
		s, ok := args[0].(exprel.String)
		if !ok {
			return nil, errWrongType
		}
		return exprel.String(fn(string(s))), nil
	}
}

func trimLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// chr converts an ASCII ordinal to a single character string.
func chr(args []exprel.Value) (exprel.Value, error) {
	v, ok := args[0].(exprel.Number)
	if !ok {
		return nil, errWrongType
	}
	if v < 0 || v >= 127 {
		return nil, errors.New("number is out of ASCII range")
	}
	return exprel.String(rune(v)), nil
}

// ord converts a single ASCII character to its ordinal value.
func ord(args []exprel.Value) (exprel.Value, error) {
	s, ok := args[0].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	if utf8.RuneCountInString(string(s)) != 1 {
		return nil, errors.New("string is too long")
	}
	r, _ := utf8.DecodeRuneInString(string(s))
	if r > unicode.MaxASCII {
		return nil, errors.New("character is out of ASCII range")
	}
	return exprel.Number(r), nil
}

// sameText compares two strings ignoring case.
func sameText(args []exprel.Value) (exprel.Value, error) {
	left, ok := args[0].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	right, ok := args[1].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	return exprel.Boolean(strings.EqualFold(string(left), string(right))), nil
}

// split divides a string at every separator into an array of strings.
func split(args []exprel.Value) (exprel.Value, error) {
	line, ok := args[0].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	separator, ok := args[1].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	parts := strings.Split(string(line), string(separator))
	out := make(exprel.Array, len(parts))
	for i, part := range parts {
		out[i] = exprel.String(part)
	}
	return out, nil
}

// splitCSV divides a delimiter-separated line into fields, honoring
// double quotes around fields that contain the separator.
func splitCSV(args []exprel.Value) (exprel.Value, error) {
	line, ok := args[0].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	separator := ';'
	if len(args) > 1 {
		s, ok := args[1].(exprel.String)
		if !ok || utf8.RuneCountInString(string(s)) != 1 {
			return nil, errWrongType
		}
		separator, _ = utf8.DecodeRuneInString(string(s))
	}

	var out exprel.Array
	var field strings.Builder
	inQuotes := false
	for _, c := range string(line) {
		switch {
		case c == separator && !inQuotes:
			out = append(out, exprel.String(field.String()))
			field.Reset()
		case c == '"':
			inQuotes = !inQuotes
		default:
			field.WriteRune(c)
		}
	}
	return append(out, exprel.String(field.String())), nil
}
