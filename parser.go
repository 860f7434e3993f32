package exprel

import "strconv"

// bindingPowers for different tokens. Not listed means zero, which
// stops the parse loop. The higher the number, the tighter the token
// binds.
var bindingPowers = map[TokenType]int{
	TokenOr:         10,
	TokenAnd:        20,
	TokenNot:        25,
	TokenComparison: 30,
	TokenAddSub:     40,
	TokenMulDiv:     50,
	TokenLeftParen:  70,
}

// bindingPowerUnary is the binding power of prefix minus: tighter than
// any binary operator, looser than a call.
const bindingPowerUnary = 60

var binaryOperators = map[string]Operator{
	"+":   OpPlus,
	"-":   OpMinus,
	"*":   OpMultiply,
	"/":   OpDivide,
	"div": OpDiv,
	"mod": OpMod,
	"=":   OpEqual,
	"<>":  OpNotEqual,
	">":   OpGreater,
	">=":  OpGreaterEqual,
	"<":   OpLess,
	"<=":  OpLessEqual,
	"and": OpAnd,
	"or":  OpOr,
}

// Parser takes a lexer and parses its tokens into an abstract syntax
// tree.
type Parser interface {
	// Parse the expression and return the root node. The entire token
	// stream must be consumed; a dangling token after a well-formed
	// expression is a syntax error.
	Parse() (Expression, *SyntaxError)
}

// NewParser creates a new parser that uses the given lexer to get and
// process tokens into an abstract syntax tree.
func NewParser(lexer Lexer) Parser {
	return &parser{lexer: lexer}
}

// parser is an implementation of a Pratt or top-down operator
// precedence parser.
type parser struct {
	lexer Lexer
	token Token
}

func (p *parser) advance() *SyntaxError {
	t, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.token = t
	return nil
}

func (p *parser) parse(bindingPower int) (Expression, *SyntaxError) {
	leftToken := p.token
	if err := p.advance(); err != nil {
		return nil, err
	}
	leftNode, err := p.nud(leftToken)
	if err != nil {
		return nil, err
	}
	for bindingPower < bindingPowers[p.token.Type] {
		currentToken := p.token
		if err := p.advance(); err != nil {
			return nil, err
		}
		leftNode, err = p.led(currentToken, leftNode)
		if err != nil {
			return nil, err
		}
	}
	return leftNode, nil
}

// expect consumes the current token if it has the wanted type,
// otherwise fails with the given error kind.
func (p *parser) expect(typ TokenType, kind SyntaxErrorKind, what string) *SyntaxError {
	if p.token.Type != typ {
		return NewSyntaxError(kind, p.token.Offset, "expected %s but found %s", what, describe(p.token))
	}
	return p.advance()
}

// nud: null denotation. These tokens have no left context and only
// consume to the right: literals, variables, groups, array literals,
// and the prefix operators.
func (p *parser) nud(t Token) (Expression, *SyntaxError) {
	switch t.Type {
	case TokenNumber:
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, NewSyntaxError(UnexpectedToken, t.Offset, "invalid number %q", t.Value)
		}
		return &Literal{Value: Number(f)}, nil
	case TokenString:
		return &Literal{Value: String(t.Value)}, nil
	case TokenBoolean:
		return &Literal{Value: Boolean(t.Value == "true")}, nil
	case TokenNil:
		return &Literal{Value: Nil{}}, nil
	case TokenIdentifier:
		return &Variable{Name: t.Value}, nil
	case TokenLeftParen:
		result, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen, MismatchedParenthesis, "closing parenthesis"); err != nil {
			return nil, err
		}
		return result, nil
	case TokenLeftBracket:
		return p.arrayLiteral()
	case TokenNot:
		right, err := p.parse(bindingPowers[TokenNot])
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: OpNot, Right: right}, nil
	case TokenAddSub:
		if t.Value == "-" {
			right, err := p.parse(bindingPowerUnary)
			if err != nil {
				return nil, err
			}
			return &Unary{Operator: OpMinus, Right: right}, nil
		}
	case TokenEOF:
		return nil, NewSyntaxError(UnexpectedEndOfInput, t.Offset, "incomplete expression, end of input found")
	case TokenRightParen, TokenRightBracket:
		return nil, NewSyntaxError(MismatchedParenthesis, t.Offset, "unmatched %s", t.Value)
	}
	return nil, NewSyntaxError(ExpectedExpression, t.Offset, "expected expression but found %s", describe(t))
}

// led: left denotation. These tokens produce nodes that operate on a
// left and a right operand, plus the call suffix.
func (p *parser) led(t Token, left Expression) (Expression, *SyntaxError) {
	switch t.Type {
	case TokenAddSub, TokenMulDiv, TokenComparison, TokenAnd, TokenOr:
		right, err := p.parse(bindingPowers[t.Type])
		if err != nil {
			return nil, err
		}
		return &Binary{Operator: binaryOperators[t.Value], Left: left, Right: right}, nil
	case TokenLeftParen:
		variable, ok := left.(*Variable)
		if !ok {
			return nil, NewSyntaxError(UnexpectedToken, t.Offset, "expected a function name before the argument list")
		}
		params, err := p.arguments()
		if err != nil {
			return nil, err
		}
		return &Call{Name: variable.Name, Params: params}, nil
	}
	return nil, NewSyntaxError(UnexpectedToken, t.Offset, "unexpected %s", describe(t))
}

// arguments parses a comma separated list terminated by a right
// parenthesis, the opening parenthesis already consumed.
func (p *parser) arguments() ([]Expression, *SyntaxError) {
	params := []Expression{}
	if p.token.Type == TokenRightParen {
		return params, p.advance()
	}
	for {
		arg, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		params = append(params, arg)
		if p.token.Type != TokenComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.token.Type == TokenRightParen {
			return nil, NewSyntaxError(ExpectedExpression, p.token.Offset, "expected an argument after the comma")
		}
	}
	if err := p.expect(TokenRightParen, MismatchedParenthesis, "')' after argument list"); err != nil {
		return nil, err
	}
	return params, nil
}

// arrayLiteral parses a bracketed element list, the opening bracket
// already consumed.
func (p *parser) arrayLiteral() (Expression, *SyntaxError) {
	elements := []Expression{}
	if p.token.Type == TokenRightBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ArrayLiteral{Expressions: elements}, nil
	}
	for {
		element, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
		if p.token.Type != TokenComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.token.Type == TokenRightBracket {
			return nil, NewSyntaxError(ExpectedExpression, p.token.Offset, "expected an element after the comma")
		}
	}
	if err := p.expect(TokenRightBracket, MismatchedParenthesis, "']' after array elements"); err != nil {
		return nil, err
	}
	return &ArrayLiteral{Expressions: elements}, nil
}

func (p *parser) Parse() (Expression, *SyntaxError) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	result, err := p.parse(0)
	if err != nil {
		return nil, err
	}
	if p.token.Type != TokenEOF {
		return nil, NewSyntaxError(UnexpectedToken, p.token.Offset, "expected end of expression but found %s", describe(p.token))
	}
	return result, nil
}

func describe(t Token) string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return string(t.Type) + " " + strconv.Quote(t.Value)
}
