// Package token defines the Kotlin token types and the source positions shared
// by the parser, the declaration tree and the lint findings.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	NEWLINE

	// Literals
	IDENT  // identifier, including soft keywords and `quoted` names
	NUMBER // 123, 0xFF, 1_000L, 2.5f
	STRING // "hello", """raw"""
	CHAR   // 'c'

	// Punctuation
	LPAREN     // (
	RPAREN     // )
	LBRACE     // {
	RBRACE     // }
	LBRACKET   // [
	RBRACKET   // ]
	COMMA      // ,
	DOT        // .
	COLON      // :
	COLONCOLON // ::
	SEMICOLON  // ;
	AT         // @
	EQ         // =
	LT         // <
	GT         // >
	QUESTION   // ?
	STAR       // *
	ARROW      // ->
	OPERATOR   // any other operator: + - == && ?. ?: ...

	// Hard keywords (alphabetical)
	AS
	BREAK
	CLASS
	CONTINUE
	DO
	ELSE
	FALSE
	FOR
	FUN
	IF
	IMPORT
	IN
	INTERFACE
	IS
	NULL
	OBJECT
	PACKAGE
	RETURN
	SUPER
	THIS
	THROW
	TRUE
	TRY
	TYPEALIAS
	TYPEOF
	VAL
	VAR
	WHEN
	WHILE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	CHAR:   "CHAR",

	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	LBRACKET:   "[",
	RBRACKET:   "]",
	COMMA:      ",",
	DOT:        ".",
	COLON:      ":",
	COLONCOLON: "::",
	SEMICOLON:  ";",
	AT:         "@",
	EQ:         "=",
	LT:         "<",
	GT:         ">",
	QUESTION:   "?",
	STAR:       "*",
	ARROW:      "->",
	OPERATOR:   "OPERATOR",

	AS:        "as",
	BREAK:     "break",
	CLASS:     "class",
	CONTINUE:  "continue",
	DO:        "do",
	ELSE:      "else",
	FALSE:     "false",
	FOR:       "for",
	FUN:       "fun",
	IF:        "if",
	IMPORT:    "import",
	IN:        "in",
	INTERFACE: "interface",
	IS:        "is",
	NULL:      "null",
	OBJECT:    "object",
	PACKAGE:   "package",
	RETURN:    "return",
	SUPER:     "super",
	THIS:      "this",
	THROW:     "throw",
	TRUE:      "true",
	TRY:       "try",
	TYPEALIAS: "typealias",
	TYPEOF:    "typeof",
	VAL:       "val",
	VAR:       "var",
	WHEN:      "when",
	WHILE:     "while",
}

// keywords maps hard keyword spellings to their token types. Soft keywords
// and modifiers (constructor, init, companion, open, ...) lex as IDENT.
var keywords = map[string]TokenType{
	"as":        AS,
	"break":     BREAK,
	"class":     CLASS,
	"continue":  CONTINUE,
	"do":        DO,
	"else":      ELSE,
	"false":     FALSE,
	"for":       FOR,
	"fun":       FUN,
	"if":        IF,
	"import":    IMPORT,
	"in":        IN,
	"interface": INTERFACE,
	"is":        IS,
	"null":      NULL,
	"object":    OBJECT,
	"package":   PACKAGE,
	"return":    RETURN,
	"super":     SUPER,
	"this":      THIS,
	"throw":     THROW,
	"true":      TRUE,
	"try":       TRY,
	"typealias": TYPEALIAS,
	"typeof":    TYPEOF,
	"val":       VAL,
	"var":       VAR,
	"when":      WHEN,
	"while":     WHILE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a hard keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a hard keyword.
func IsKeyword(t TokenType) bool {
	return t >= AS && t <= WHILE
}

// IsDeclarationKeyword reports whether t starts a declaration.
func IsDeclarationKeyword(t TokenType) bool {
	switch t {
	case CLASS, INTERFACE, OBJECT, FUN, VAL, VAR, TYPEALIAS:
		return true
	}
	return false
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position // first character
	End     Position // one past the last character
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER, STRING, CHAR, OPERATOR, ILLEGAL:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	}
	return t.Type.String()
}
