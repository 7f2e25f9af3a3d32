// Package formula evaluates the small arithmetic language used by system
// definitions for derived stats and health track maximums.
//
// The grammar is numbers, identifiers, + - * / and parentheses:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = number | identifier | "(" expr ")"
//
// Identifiers are resolved against an Env; nothing else is ever executed.
package formula

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrSyntax is returned for input that does not match the grammar
	ErrSyntax = errors.New("formula: syntax error")

	// ErrUnknownIdentifier is returned when an identifier has no value in the Env
	ErrUnknownIdentifier = errors.New("formula: unknown identifier")

	// ErrDivisionByZero is returned when a divisor evaluates to zero
	ErrDivisionByZero = errors.New("formula: division by zero")
)

// Env maps identifiers to values
type Env map[string]float64

// Evaluate parses and evaluates expr against env
func Evaluate(expr string, env Env) (float64, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens, env: env}
	value, err := p.expr()
	if err != nil {
		return 0, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: result is not finite", ErrSyntax)
	}

	return value, nil
}

// Identifiers returns the distinct identifiers referenced by expr in order of
// first appearance
func Identifiers(expr string) ([]string, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, tok := range tokens {
		if tok.kind == tokenIdent && !seen[tok.text] {
			seen[tok.text] = true
			out = append(out, tok.text)
		}
	}
	return out, nil
}

type parser struct {
	tokens []token
	pos    int
	env    Env
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}

	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()

		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if tok.text == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}

	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.next()

		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if tok.text == "*" {
			left *= right
			continue
		}
		if right == 0 {
			return 0, fmt.Errorf("%w at offset %d", ErrDivisionByZero, tok.pos)
		}
		left /= right
	}
}

func (p *parser) unary() (float64, error) {
	tok := p.peek()
	if tok.kind == tokenOp && (tok.text == "-" || tok.text == "+") {
		p.next()
		value, err := p.unary()
		if err != nil {
			return 0, err
		}
		if tok.text == "-" {
			return -value, nil
		}
		return value, nil
	}
	return p.primary()
}

func (p *parser) primary() (float64, error) {
	tok := p.next()

	switch tok.kind {
	case tokenNumber:
		value, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad number %q", ErrSyntax, tok.text)
		}
		return value, nil
	case tokenIdent:
		value, ok := p.env[tok.text]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrUnknownIdentifier, tok.text)
		}
		return value, nil
	case tokenLParen:
		value, err := p.expr()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return 0, fmt.Errorf("%w: expected ) at offset %d", ErrSyntax, closing.pos)
		}
		return value, nil
	case tokenEOF:
		return 0, fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	default:
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
}
