package formula

import (
	"fmt"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenize splits expr into tokens. Identifiers are scanned greedily, so
// con_mod is always a single token and never con followed by _mod.
func tokenize(expr string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(expr); {
		c := expr[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			start := i
			seenDot := false
			for i < len(expr) && (isDigit(expr[i]) || expr[i] == '.') {
				if expr[i] == '.' {
					if seenDot {
						return nil, fmt.Errorf("%w: bad number at offset %d", ErrSyntax, start)
					}
					seenDot = true
				}
				i++
			}
			if i < len(expr) && isIdentStart(expr[i]) {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, expr[start:i+1], start)
			}
			tokens = append(tokens, token{kind: tokenNumber, text: expr[start:i], pos: start})
		case isIdentStart(c):
			start := i
			for i < len(expr) && (isIdentStart(expr[i]) || isDigit(expr[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: expr[start:i], pos: start})
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{kind: tokenOp, text: string(c), pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, string(c), i)
		}
	}

	return append(tokens, token{kind: tokenEOF, pos: len(expr)}), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
