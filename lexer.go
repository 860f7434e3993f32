package exprel

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType defines the type of token produced by the lexer.
type TokenType string

// Token types. Operators that share a precedence level share a type and
// are told apart by the token value.
const (
	TokenUnknown      TokenType = ""
	TokenIdentifier   TokenType = "identifier"
	TokenNumber       TokenType = "number"
	TokenString       TokenType = "string"
	TokenBoolean      TokenType = "boolean"
	TokenNil          TokenType = "nil"
	TokenLeftParen    TokenType = "left-paren"
	TokenRightParen   TokenType = "right-paren"
	TokenLeftBracket  TokenType = "left-bracket"
	TokenRightBracket TokenType = "right-bracket"
	TokenComma        TokenType = "comma"
	TokenAddSub       TokenType = "add-sub"
	TokenMulDiv       TokenType = "mul-div"
	TokenComparison   TokenType = "comparison"
	TokenAnd          TokenType = "and"
	TokenOr           TokenType = "or"
	TokenNot          TokenType = "not"
	TokenEOF          TokenType = "eof"
)

var punctuation = map[rune]TokenType{
	'(': TokenLeftParen,
	')': TokenRightParen,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	',': TokenComma,
	'+': TokenAddSub,
	'-': TokenAddSub,
	'*': TokenMulDiv,
	'/': TokenMulDiv,
	'=': TokenComparison,
}

// keywords are matched case-insensitively and win over identifier
// classification.
var keywords = map[string]TokenType{
	"and":   TokenAnd,
	"or":    TokenOr,
	"not":   TokenNot,
	"div":   TokenMulDiv,
	"mod":   TokenMulDiv,
	"true":  TokenBoolean,
	"false": TokenBoolean,
	"nil":   TokenNil,
}

// Token describes a single token produced by the lexer.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

// Lexer returns tokens from an input expression.
type Lexer interface {
	// Next returns the next token from the expression, ending with a
	// TokenEOF token. Re-lexing the same source yields identical tokens.
	Next() (Token, *SyntaxError)
}

// NewLexer creates a new lexer for the given expression.
func NewLexer(expression string) Lexer {
	return &lexer{expression: expression}
}

// Tokenize scans the entire expression up front and returns all tokens
// except the trailing EOF.
func Tokenize(expression string) ([]Token, *SyntaxError) {
	l := NewLexer(expression)
	var tokens []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		if t.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, t)
	}
}

type lexer struct {
	expression string
	pos        int
	lastWidth  int
}

// next returns the next rune in the expression at the current position.
func (l *lexer) next() rune {
	if l.pos >= len(l.expression) {
		l.lastWidth = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.expression[l.pos:])
	l.pos += w
	l.lastWidth = w
	return r
}

// back moves back one rune.
func (l *lexer) back() {
	l.pos -= l.lastWidth
}

// peek returns the next rune without moving the position forward.
func (l *lexer) peek() rune {
	r := l.next()
	if r != -1 {
		l.back()
	}
	return r
}

func (l *lexer) newToken(typ TokenType, value string) Token {
	return Token{
		Type:   typ,
		Value:  value,
		Offset: l.pos - len(value),
	}
}

// consumeNumber reads a decimal literal with an optional fractional
// part. A dot is only consumed when a digit follows it, so `1.foo`
// lexes as `1` `.` and fails on the dot.
func (l *lexer) consumeNumber() Token {
	start := l.pos - l.lastWidth
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' {
		mark := l.pos
		l.next()
		if !isDigit(l.peek()) {
			l.pos = mark
		} else {
			for isDigit(l.peek()) {
				l.next()
			}
		}
	}
	return l.newToken(TokenNumber, l.expression[start:l.pos])
}

// consumeIdentifier reads an identifier and maps the fixed keyword set,
// matched case-insensitively, onto operator and literal tokens.
func (l *lexer) consumeIdentifier() Token {
	start := l.pos - l.lastWidth
	for {
		r := l.peek()
		if !unicode.IsLetter(r) && !isDigit(r) && r != '_' {
			break
		}
		l.next()
	}
	value := l.expression[start:l.pos]
	if typ, ok := keywords[strings.ToLower(value)]; ok {
		return l.newToken(typ, strings.ToLower(value))
	}
	return l.newToken(TokenIdentifier, value)
}

// consumeString reads until the closing quote. No escape sequences are
// processed.
func (l *lexer) consumeString(quote rune) (Token, *SyntaxError) {
	open := l.pos - l.lastWidth
	start := l.pos
	for {
		r := l.next()
		if r == -1 {
			return Token{}, NewSyntaxError(UnterminatedString, open, "unterminated string")
		}
		if r == quote {
			break
		}
	}
	value := l.expression[start : l.pos-l.lastWidth]
	return Token{Type: TokenString, Value: value, Offset: open}, nil
}

func (l *lexer) skipWhitespaceAndComments() rune {
	for {
		r := l.next()
		for r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			r = l.next()
		}
		if r == '/' && l.peek() == '/' {
			for r != -1 && r != '\n' {
				r = l.next()
			}
			continue
		}
		return r
	}
}

func (l *lexer) Next() (Token, *SyntaxError) {
	r := l.skipWhitespaceAndComments()
	switch {
	case r == -1:
		return l.newToken(TokenEOF, ""), nil
	case punctuation[r] != TokenUnknown:
		return l.newToken(punctuation[r], l.expression[l.pos-l.lastWidth:l.pos]), nil
	case isDigit(r):
		return l.consumeNumber(), nil
	case r == '<':
		switch l.peek() {
		case '=':
			l.next()
			return l.newToken(TokenComparison, "<="), nil
		case '>':
			l.next()
			return l.newToken(TokenComparison, "<>"), nil
		}
		return l.newToken(TokenComparison, "<"), nil
	case r == '>':
		if l.peek() == '=' {
			l.next()
			return l.newToken(TokenComparison, ">="), nil
		}
		return l.newToken(TokenComparison, ">"), nil
	case r == '\'', r == '"':
		return l.consumeString(r)
	case unicode.IsLetter(r) || r == '_':
		return l.consumeIdentifier(), nil
	}
	return Token{}, NewSyntaxError(UnexpectedCharacter, l.pos-l.lastWidth, "unexpected character %q", r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
