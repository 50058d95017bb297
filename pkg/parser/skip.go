package parser

import (
	"fmt"
	"strings"
)

// Bodies, types and expressions are not part of the declaration tree. The
// helpers below consume them by balancing brackets and by deciding where a
// newline ends the construct.

// closers maps opening brackets to their closing token type.
var closers = map[TokenType]TokenType{
	TOKEN_LPAREN:   TOKEN_RPAREN,
	TOKEN_LBRACKET: TOKEN_RBRACKET,
	TOKEN_LBRACE:   TOKEN_RBRACE,
}

// skipBalanced consumes a bracketed group starting at the current ( [ or {.
func (p *Parser) skipBalanced() {
	open := p.token
	if _, ok := closers[open.Type]; !ok {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "( [ or {"))
		return
	}

	var stack []TokenType
	for {
		switch {
		case p.check(TOKEN_EOF):
			p.errors = append(p.errors, &ParseError{Path: p.path, Pos: open.Pos, Message: fmt.Sprintf(ErrUnbalanced, open.Type)})
			return
		case isOpener(p.token.Type):
			stack = append(stack, closers[p.token.Type])
		case isCloser(p.token.Type):
			if len(stack) == 0 || stack[len(stack)-1] != p.token.Type {
				p.addError(fmt.Sprintf(ErrUnbalanced, p.token.Type))
				return
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

// skipAngles consumes a type parameter or argument list starting at "<".
func (p *Parser) skipAngles() {
	open := p.token
	depth := 0
	for {
		switch {
		case p.check(TOKEN_EOF):
			p.errors = append(p.errors, &ParseError{Path: p.path, Pos: open.Pos, Message: fmt.Sprintf(ErrUnbalanced, open.Type)})
			return
		case p.check(TOKEN_LT):
			depth++
		case p.check(TOKEN_GT):
			depth--
			if depth == 0 {
				p.nextToken()
				return
			}
		case isOpener(p.token.Type):
			p.skipBalanced()
			if p.failed() {
				return
			}
			continue
		}
		p.nextToken()
	}
}

// skipType consumes a type reference. It stops at a top-level , ) = { } ;
// or at a newline that ends the declaration, and before the soft keywords
// "by" and "where" or an accessor on the same line.
func (p *Parser) skipType() {
	for !p.failed() {
		switch {
		case p.check(TOKEN_EOF), p.check(TOKEN_COMMA), p.check(TOKEN_RPAREN), p.check(TOKEN_RBRACKET),
			p.check(TOKEN_EQ), p.check(TOKEN_LBRACE), p.check(TOKEN_RBRACE), p.check(TOKEN_SEMICOLON),
			p.check(TOKEN_GT):
			return
		case p.checkSoft("by"), p.checkSoft("where"):
			return
		case (p.checkSoft("get") || p.checkSoft("set")) && p.accessorFollows():
			return
		case p.check(TOKEN_NEWLINE):
			if !p.continuesAfterNewline() {
				return
			}
			p.skipNewlines()
		case p.check(TOKEN_LT):
			p.skipAngles()
		case p.check(TOKEN_LPAREN), p.check(TOKEN_LBRACKET):
			p.skipBalanced()
		default:
			p.nextToken()
		}
	}
}

// skipExpression consumes an expression. Nested brackets are skipped whole.
// It stops before a top-level ) ] } ; or EOF, before a newline that ends the
// statement and, when inList is set, before a top-level comma.
func (p *Parser) skipExpression(inList bool) {
	for !p.failed() {
		switch {
		case p.check(TOKEN_EOF), p.check(TOKEN_RPAREN), p.check(TOKEN_RBRACKET),
			p.check(TOKEN_RBRACE), p.check(TOKEN_SEMICOLON):
			return
		case p.check(TOKEN_COMMA) && inList:
			return
		case p.check(TOKEN_NEWLINE):
			if !p.continuesAfterNewline() {
				return
			}
			p.skipNewlines()
		case isOpener(p.token.Type):
			p.skipBalanced()
		default:
			p.nextToken()
		}
	}
}

// skipUntilBody consumes a supertype list or where clause, stopping before
// the class body or at the end of the declaration.
func (p *Parser) skipUntilBody() {
	for !p.failed() {
		switch {
		case p.check(TOKEN_EOF), p.check(TOKEN_LBRACE), p.check(TOKEN_RBRACE), p.check(TOKEN_SEMICOLON),
			p.check(TOKEN_EQ):
			return
		case p.check(TOKEN_NEWLINE):
			if !p.continuesAfterNewline() {
				return
			}
			p.skipNewlines()
		case p.check(TOKEN_LT):
			p.skipAngles()
		case p.check(TOKEN_LPAREN), p.check(TOKEN_LBRACKET):
			p.skipBalanced()
		default:
			p.nextToken()
		}
	}
}

// continuesAfterNewline decides, at a newline, whether the construct being
// skipped goes on to the next line: either the last token cannot end it or
// the next line starts with a continuation.
func (p *Parser) continuesAfterNewline() bool {
	switch p.lastSignificant().Type {
	case TOKEN_OPERATOR, TOKEN_EQ, TOKEN_DOT, TOKEN_COMMA, TOKEN_ARROW, TOKEN_COLON,
		TOKEN_COLONCOLON, TOKEN_AS, TOKEN_IS, TOKEN_IN, TOKEN_LT:
		return true
	}

	next := p.peekSignificant()
	switch next.Type {
	case TOKEN_DOT, TOKEN_ELSE, TOKEN_COLONCOLON, TOKEN_AS, TOKEN_ARROW:
		return true
	case TOKEN_OPERATOR:
		return strings.HasPrefix(next.Literal, "?") || strings.HasPrefix(next.Literal, "..") ||
			next.Literal == "&&" || next.Literal == "||"
	case TOKEN_IDENT:
		return next.Literal == "catch" || next.Literal == "finally"
	}
	return false
}

func isOpener(t TokenType) bool {
	return t == TOKEN_LPAREN || t == TOKEN_LBRACKET || t == TOKEN_LBRACE
}

func isCloser(t TokenType) bool {
	return t == TOKEN_RPAREN || t == TOKEN_RBRACKET || t == TOKEN_RBRACE
}
