// Package parser builds declaration trees from Kotlin source.
//
// # Usage
//
//	file, err := parser.Parse("Account.kt", src)
//	if err != nil {
//	    // handle error
//	}
//
// # Grammar Overview
//
// The parser is a recursive descent parser for the declaration structure of
// Kotlin files. Function bodies, initializers, default values and types are
// skipped with bracket balancing; only declarations become nodes.
//
//	file        → [package qualified] import* declaration*
//	declaration → modifiers (class | interface | object | fun | val | var | typealias
//	                         | constructor | init)
//	class       → ("class" | "interface") name [typeParams] [primaryCtor]
//	              [":" supertypes] [where] [classBody | enumBody]
//	primaryCtor → [modifiers "constructor"] "(" parameters ")"
//	object      → ["companion"] "object" [name] [":" supertypes] [classBody]
//
// See parser_decl.go and parser_member.go for the rest.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/token"
)

// Parser parses Kotlin source into a declaration tree.
type Parser struct {
	lexer  *Lexer
	tokens []Token
	pos    int
	token  Token // current token
	errors []error
	path   string
}

// NewParser creates a parser for src. path is used for error messages and
// the File node.
func NewParser(path, src string) *Parser {
	p := &Parser{
		lexer: NewLexer(src),
		path:  path,
	}
	for {
		tok := p.lexer.NextToken()
		p.tokens = append(p.tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	p.token = p.tokens[0]
	return p
}

// Parse parses one Kotlin source file.
func Parse(path string, src []byte) (*decl.File, error) {
	return ParseString(path, string(src))
}

// ParseString parses Kotlin source held in a string.
func ParseString(path, src string) (*decl.File, error) {
	p := NewParser(path, src)
	if errs := p.lexer.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, errs[0])
	}
	file := p.parseFile()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return file, nil
}

// Comments returns the comments found in the source.
func (p *Parser) Comments() []*token.Comment {
	return p.lexer.Comments
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.token = p.tokens[p.pos]
}

// peekAt returns the token n positions ahead, newlines included.
func (p *Parser) peekAt(n int) Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// peekSignificant returns the first token at or after the current one that
// is not a newline.
func (p *Parser) peekSignificant() Token {
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].Type != TOKEN_NEWLINE {
			return p.tokens[i]
		}
	}
	return p.tokens[len(p.tokens)-1]
}

// peekSignificantAfter returns the first non-newline token after the current one.
func (p *Parser) peekSignificantAfter() Token {
	for i := p.pos + 1; i < len(p.tokens); i++ {
		if p.tokens[i].Type != TOKEN_NEWLINE {
			return p.tokens[i]
		}
	}
	return p.tokens[len(p.tokens)-1]
}

// lastSignificant returns the last consumed token that is not a newline.
func (p *Parser) lastSignificant() Token {
	for i := p.pos - 1; i >= 0; i-- {
		if p.tokens[i].Type != TOKEN_NEWLINE {
			return p.tokens[i]
		}
	}
	return Token{}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkSoft returns true if the current token is the soft keyword word.
func (p *Parser) checkSoft(word string) bool {
	return p.token.Type == TOKEN_IDENT && p.token.Literal == word
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, t))
	return false
}

// expectName consumes an identifier and returns its text.
func (p *Parser) expectName() string {
	if p.check(TOKEN_IDENT) {
		name := p.token.Literal
		p.nextToken()
		return name
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "identifier"))
	return ""
}

// skipNewlines consumes newline tokens.
func (p *Parser) skipNewlines() {
	for p.check(TOKEN_NEWLINE) {
		p.nextToken()
	}
}

// skipTrivia consumes newlines and semicolons between declarations.
func (p *Parser) skipTrivia() {
	for p.check(TOKEN_NEWLINE) || p.check(TOKEN_SEMICOLON) {
		p.nextToken()
	}
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Path:    p.path,
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// failed reports whether parsing has hit an error. Loops stop on failure.
func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// mark is a saved parser position for backtracking.
type mark struct {
	pos  int
	errs int
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, errs: len(p.errors)}
}

func (p *Parser) reset(m mark) {
	p.pos = m.pos
	p.token = p.tokens[m.pos]
	p.errors = p.errors[:m.errs]
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start Position) token.Span {
	return token.Span{Start: start, End: p.lastSignificant().End}
}

// ---------- File ----------

// parseFile parses the whole token stream.
func (p *Parser) parseFile() *decl.File {
	start := p.peekSignificant().Pos

	// File annotations (@file:JvmName(...)) precede the package header.
	for {
		p.skipTrivia()
		if !p.check(TOKEN_AT) || p.failed() {
			break
		}
		p.skipAnnotation()
	}

	pkg := ""
	if p.match(TOKEN_PACKAGE) {
		pkg = p.parseQualifiedName()
	}

	for {
		p.skipTrivia()
		if !p.check(TOKEN_IMPORT) || p.failed() {
			break
		}
		p.skipLine()
	}

	decls := p.parseDeclarations(TOKEN_EOF, "")
	if !p.failed() && !p.check(TOKEN_EOF) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "declaration"))
	}
	return decl.NewFile(p.path, pkg, p.spanFrom(start), decls...)
}

// parseQualifiedName parses a dotted name such as com.example.app.
func (p *Parser) parseQualifiedName() string {
	name := p.expectName()
	for p.check(TOKEN_DOT) && p.peekAt(1).Type == TOKEN_IDENT {
		p.nextToken()
		name += "." + p.token.Literal
		p.nextToken()
	}
	return name
}

// skipLine consumes tokens up to the end of the line.
func (p *Parser) skipLine() {
	for !p.check(TOKEN_NEWLINE) && !p.check(TOKEN_SEMICOLON) && !p.check(TOKEN_EOF) {
		p.nextToken()
	}
}
