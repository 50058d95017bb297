package parser

import "github.com/leapstack-labs/ktsmell/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from token package.
var LookupIdent = token.LookupIdent

//nolint:revive // TOKEN_* names mirror the token package constants
const (
	// Special tokens
	TOKEN_EOF     = token.EOF
	TOKEN_ILLEGAL = token.ILLEGAL
	TOKEN_NEWLINE = token.NEWLINE

	// Literals
	TOKEN_IDENT  = token.IDENT
	TOKEN_NUMBER = token.NUMBER
	TOKEN_STRING = token.STRING
	TOKEN_CHAR   = token.CHAR

	// Punctuation
	TOKEN_LPAREN     = token.LPAREN
	TOKEN_RPAREN     = token.RPAREN
	TOKEN_LBRACE     = token.LBRACE
	TOKEN_RBRACE     = token.RBRACE
	TOKEN_LBRACKET   = token.LBRACKET
	TOKEN_RBRACKET   = token.RBRACKET
	TOKEN_COMMA      = token.COMMA
	TOKEN_DOT        = token.DOT
	TOKEN_COLON      = token.COLON
	TOKEN_COLONCOLON = token.COLONCOLON
	TOKEN_SEMICOLON  = token.SEMICOLON
	TOKEN_AT         = token.AT
	TOKEN_EQ         = token.EQ
	TOKEN_LT         = token.LT
	TOKEN_GT         = token.GT
	TOKEN_QUESTION   = token.QUESTION
	TOKEN_STAR       = token.STAR
	TOKEN_ARROW      = token.ARROW
	TOKEN_OPERATOR   = token.OPERATOR

	// Keywords used by the declaration parser
	TOKEN_AS        = token.AS
	TOKEN_CLASS     = token.CLASS
	TOKEN_ELSE      = token.ELSE
	TOKEN_FUN       = token.FUN
	TOKEN_IMPORT    = token.IMPORT
	TOKEN_IN        = token.IN
	TOKEN_INTERFACE = token.INTERFACE
	TOKEN_IS        = token.IS
	TOKEN_OBJECT    = token.OBJECT
	TOKEN_PACKAGE   = token.PACKAGE
	TOKEN_SUPER     = token.SUPER
	TOKEN_THIS      = token.THIS
	TOKEN_TYPEALIAS = token.TYPEALIAS
	TOKEN_VAL       = token.VAL
	TOKEN_VAR       = token.VAR
)
