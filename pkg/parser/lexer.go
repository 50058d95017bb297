package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ktsmell/pkg/token"
)

const byteOrderMark = "\ufeff"

// Lexer tokenizes Kotlin source.
//
// Newlines are significant in Kotlin, so the lexer reports each one as a
// NEWLINE token and leaves it to the parser to decide whether it ends a
// declaration. Comments are collected rather than returned.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Comments collected during lexing
	Comments []*token.Comment

	errors []error
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	// A leading byte order mark is not part of the source
	if strings.HasPrefix(input, byteOrderMark) {
		l.readPos = len(byteOrderMark)
	}
	l.readChar()
	l.skipShebang()
	return l
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []error {
	return l.errors
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) && l.readPos > len(l.input) {
		return // already at EOF
	}
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekCharN returns the character n positions after the current one.
func (l *Lexer) peekCharN(n int) byte {
	i := l.pos + n
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) addError(pos Position, format string, args ...any) {
	l.errors = append(l.errors, &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.atEOF() {
		return Token{Type: TOKEN_EOF, Pos: pos, End: pos}
	}

	switch l.ch {
	case '\n':
		return l.single(TOKEN_NEWLINE, pos)
	case '(':
		return l.single(TOKEN_LPAREN, pos)
	case ')':
		return l.single(TOKEN_RPAREN, pos)
	case '{':
		return l.single(TOKEN_LBRACE, pos)
	case '}':
		return l.single(TOKEN_RBRACE, pos)
	case '[':
		return l.single(TOKEN_LBRACKET, pos)
	case ']':
		return l.single(TOKEN_RBRACKET, pos)
	case ',':
		return l.single(TOKEN_COMMA, pos)
	case ';':
		return l.single(TOKEN_SEMICOLON, pos)
	case '@':
		return l.single(TOKEN_AT, pos)
	case '<':
		return l.single(TOKEN_LT, pos)
	case '>':
		return l.single(TOKEN_GT, pos)
	case '.':
		if l.peekChar() == '.' {
			if l.peekCharN(2) == '<' {
				return l.operator(pos, 3)
			}
			return l.operator(pos, 2)
		}
		return l.single(TOKEN_DOT, pos)
	case ':':
		if l.peekChar() == ':' {
			return l.fixed(TOKEN_COLONCOLON, pos, 2)
		}
		return l.single(TOKEN_COLON, pos)
	case '=':
		switch {
		case l.peekChar() == '=' && l.peekCharN(2) == '=':
			return l.operator(pos, 3)
		case l.peekChar() == '=':
			return l.operator(pos, 2)
		}
		return l.single(TOKEN_EQ, pos)
	case '-':
		if l.peekChar() == '>' {
			return l.fixed(TOKEN_ARROW, pos, 2)
		}
	case '?':
		if c := l.peekChar(); c == '.' || c == ':' {
			return l.operator(pos, 2)
		}
		return l.single(TOKEN_QUESTION, pos)
	case '*':
		if l.peekChar() != '=' {
			return l.single(TOKEN_STAR, pos)
		}
	case '"':
		return l.readString(pos)
	case '\'':
		return l.readCharLiteral(pos)
	case '`':
		return l.readQuotedIdentifier(pos)
	}

	switch {
	case isLetter(l.ch):
		ident := l.readIdentifier()
		return Token{Type: LookupIdent(ident), Literal: ident, Pos: pos, End: l.currentPos()}
	case isDigit(l.ch):
		num := l.readNumber()
		return Token{Type: TOKEN_NUMBER, Literal: num, Pos: pos, End: l.currentPos()}
	case isOperatorChar(l.ch):
		n := 1
		for isOperatorChar(l.peekCharN(n)) && !l.startsComment(n) {
			n++
		}
		return l.operator(pos, n)
	}

	l.addError(pos, "unexpected character %q", l.ch)
	return l.single(TOKEN_ILLEGAL, pos)
}

// single consumes one character as a token of type t.
func (l *Lexer) single(t TokenType, pos Position) Token {
	return l.fixed(t, pos, 1)
}

// fixed consumes n characters as a token of type t.
func (l *Lexer) fixed(t TokenType, pos Position, n int) Token {
	lit := l.input[l.pos : l.pos+n]
	for i := 0; i < n; i++ {
		l.readChar()
	}
	return Token{Type: t, Literal: lit, Pos: pos, End: l.currentPos()}
}

func (l *Lexer) operator(pos Position, n int) Token {
	return l.fixed(TOKEN_OPERATOR, pos, n)
}

func (l *Lexer) startsComment(n int) bool {
	return l.peekCharN(n) == '/' && (l.peekCharN(n+1) == '/' || l.peekCharN(n+1) == '*')
}

// skipShebang skips a leading "#!" line.
func (l *Lexer) skipShebang() {
	if l.ch == '#' && l.peekChar() == '!' {
		for l.ch != '\n' && !l.atEOF() {
			l.readChar()
		}
	}
}

// skipWhitespaceAndComments skips blanks and collects comments. Newlines are kept.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\f' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.collectLineComment()
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}

		break
	}
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a block comment. Kotlin block comments nest.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	startOffset := l.pos
	kind := token.BlockComment
	if l.peekCharN(2) == '*' && l.peekCharN(3) != '/' {
		kind = token.DocComment
	}

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	depth := 1
	for depth > 0 {
		if l.atEOF() {
			l.addError(startPos, ErrUnterminatedComment)
			break
		}
		switch {
		case l.ch == '*' && l.peekChar() == '/':
			depth--
			l.readChar()
			l.readChar()
		case l.ch == '/' && l.peekChar() == '*':
			depth++
			l.readChar()
			l.readChar()
		default:
			l.readChar()
		}
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: kind,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readString reads a string literal, raw ("""...""") or escaped ("...").
// Templates are kept in the literal; the token covers the whole source text.
func (l *Lexer) readString(pos Position) Token {
	start := l.pos
	var ok bool
	if l.peekChar() == '"' && l.peekCharN(2) == '"' {
		ok = l.scanRawString()
	} else {
		ok = l.scanString()
	}
	if !ok {
		l.addError(pos, ErrUnterminatedString)
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}
	return Token{Type: TOKEN_STRING, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
}

// scanString consumes "..." and reports whether it was terminated.
func (l *Lexer) scanString() bool {
	l.readChar() // skip opening quote
	for !l.atEOF() && l.ch != '\n' {
		switch {
		case l.ch == '\\':
			l.readChar()
			l.readChar()
		case l.ch == '$' && l.peekChar() == '{':
			if !l.scanTemplate() {
				return false
			}
		case l.ch == '"':
			l.readChar()
			return true
		default:
			l.readChar()
		}
	}
	return false
}

// scanRawString consumes """...""" and reports whether it was terminated.
func (l *Lexer) scanRawString() bool {
	l.readChar()
	l.readChar()
	l.readChar()
	for !l.atEOF() {
		switch {
		case l.ch == '$' && l.peekChar() == '{':
			if !l.scanTemplate() {
				return false
			}
		case l.ch == '"' && l.peekChar() == '"' && l.peekCharN(2) == '"':
			// Extra quotes before the closing delimiter belong to the string.
			for l.peekCharN(3) == '"' {
				l.readChar()
			}
			l.readChar()
			l.readChar()
			l.readChar()
			return true
		default:
			l.readChar()
		}
	}
	return false
}

// scanTemplate consumes a ${...} template, which may hold nested strings
// and braces.
func (l *Lexer) scanTemplate() bool {
	l.readChar() // skip '$'
	l.readChar() // skip '{'
	depth := 1
	for !l.atEOF() {
		switch {
		case l.ch == '{':
			depth++
			l.readChar()
		case l.ch == '}':
			depth--
			l.readChar()
			if depth == 0 {
				return true
			}
		case l.ch == '"':
			var ok bool
			if l.peekChar() == '"' && l.peekCharN(2) == '"' {
				ok = l.scanRawString()
			} else {
				ok = l.scanString()
			}
			if !ok {
				return false
			}
		case l.ch == '\'':
			l.scanCharLiteral()
		default:
			l.readChar()
		}
	}
	return false
}

// readCharLiteral reads a character literal such as 'a' or '\n'.
func (l *Lexer) readCharLiteral(pos Position) Token {
	start := l.pos
	if !l.scanCharLiteral() {
		l.addError(pos, ErrUnterminatedChar)
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
	}
	return Token{Type: TOKEN_CHAR, Literal: l.input[start:l.pos], Pos: pos, End: l.currentPos()}
}

func (l *Lexer) scanCharLiteral() bool {
	l.readChar() // skip opening quote
	for !l.atEOF() && l.ch != '\n' {
		switch l.ch {
		case '\\':
			l.readChar()
			l.readChar()
		case '\'':
			l.readChar()
			return true
		default:
			l.readChar()
		}
	}
	return false
}

// readQuotedIdentifier reads a backtick-quoted identifier. The literal
// excludes the backticks.
func (l *Lexer) readQuotedIdentifier(pos Position) Token {
	l.readChar() // skip opening backtick

	var result strings.Builder
	for l.ch != '`' {
		if l.atEOF() || l.ch == '\n' {
			l.addError(pos, ErrUnterminatedIdent)
			return Token{Type: TOKEN_ILLEGAL, Literal: result.String(), Pos: pos, End: l.currentPos()}
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing backtick
	return Token{Type: TOKEN_IDENT, Literal: result.String(), Pos: pos, End: l.currentPos()}
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal: decimal, hex, binary, with
// underscores, fractions, exponents and type suffixes.
func (l *Lexer) readNumber() string {
	start := l.pos
	hex := l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X')
	for {
		switch {
		case isLetter(l.ch) || isDigit(l.ch):
			prev := l.ch
			l.readChar()
			if !hex && (prev == 'e' || prev == 'E') && (l.ch == '+' || l.ch == '-') && isDigit(l.peekChar()) {
				l.readChar()
			}
		case l.ch == '.' && isDigit(l.peekChar()):
			l.readChar()
		default:
			return l.input[start:l.pos]
		}
	}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isOperatorChar(ch byte) bool {
	return strings.IndexByte("+-*/%&|!^~<>=", ch) >= 0
}
