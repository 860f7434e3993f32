package stdlib

import (
	"regexp"
	"strings"

	"github.com/exprel/exprel"
)

func regexFunctions() []exprel.Function {
	return []exprel.Function{
		exprel.NewFunction(reIsMatch, exprel.RequiredArity(2), "re_is_match(haystack: String, pattern: String): Boolean"),
		exprel.NewFunction(reFind, exprel.RequiredArity(2), "re_find(haystack: String, pattern: String): Array"),
		exprel.NewFunction(reCapture, exprel.RequiredArity(2), "re_capture(haystack: String, pattern: String): Array"),
		exprel.NewFunction(reReplace, exprel.OptionalArity(2, 2), "re_replace(haystack: String, pattern: String, replacement: String = '', limit: Number = 0): String"),
	}
}

func compileArgs(args []exprel.Value) (string, *regexp.Regexp, error) {
	haystack, ok := args[0].(exprel.String)
	if !ok {
		return "", nil, errWrongType
	}
	pattern, ok := args[1].(exprel.String)
	if !ok {
		return "", nil, errWrongType
	}
	re, err := regexp.Compile(string(pattern))
	if err != nil {
		return "", nil, err
	}
	return string(haystack), re, nil
}

func reIsMatch(args []exprel.Value) (exprel.Value, error) {
	haystack, re, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	return exprel.Boolean(re.MatchString(haystack)), nil
}

// reFind returns every non-overlapping match of the pattern.
func reFind(args []exprel.Value) (exprel.Value, error) {
	haystack, re, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	matches := re.FindAllString(haystack, -1)
	found := make(exprel.Array, len(matches))
	for i, match := range matches {
		found[i] = exprel.String(match)
	}
	return found, nil
}

// reCapture returns the first match at index zero followed by its
// capture groups. Groups that did not participate come back as empty
// strings, as does the whole array when nothing matched.
func reCapture(args []exprel.Value) (exprel.Value, error) {
	haystack, re, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	groups := make(exprel.Array, re.NumSubexp()+1)
	for i := range groups {
		groups[i] = exprel.String("")
	}
	for i, group := range re.FindStringSubmatch(haystack) {
		groups[i] = exprel.String(group)
	}
	return groups, nil
}

// reReplace substitutes matches with the replacement, which may
// reference capture groups as $1, $2 and so on. A positive limit caps
// the number of substitutions; zero replaces them all.
func reReplace(args []exprel.Value) (exprel.Value, error) {
	haystack, re, err := compileArgs(args)
	if err != nil {
		return nil, err
	}
	replacement, err := defaultString(args, 2, "")
	if err != nil {
		return nil, err
	}
	limit, err := defaultNumber(args, 3, 0)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return exprel.String(re.ReplaceAllString(haystack, replacement)), nil
	}

	var replaced strings.Builder
	last := 0
	for _, match := range re.FindAllStringSubmatchIndex(haystack, int(limit)) {
		replaced.WriteString(haystack[last:match[0]])
		replaced.Write(re.ExpandString(nil, replacement, haystack, match))
		last = match[1]
	}
	replaced.WriteString(haystack[last:])
	return exprel.String(replaced.String()), nil
}
