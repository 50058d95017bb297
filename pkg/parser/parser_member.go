package parser

import (
	"github.com/leapstack-labs/ktsmell/pkg/decl"
)

// parseFunction parses a function declaration after its modifiers.
//
//	function → "fun" [typeParams] [receiver "."] name "(" parameters ")"
//	           [":" type] [where] [block | "=" expression]
func (p *Parser) parseFunction(start Position, mods decl.ModifierSet) decl.Node {
	p.nextToken() // fun
	if p.check(TOKEN_LT) {
		p.skipAngles()
	}

	name := p.parseReceiverAndName()
	if p.failed() {
		return nil
	}
	params := p.parseValueParameters()

	if p.match(TOKEN_COLON) {
		p.skipType()
	}
	if p.checkSoft("where") {
		p.nextToken()
		p.skipUntilBody()
	}
	p.parseFunctionBody()
	return decl.NewDecl(decl.KindFunction, name, mods, p.spanFrom(start), params...)
}

// parseReceiverAndName consumes an optional receiver type and the declared
// name. The name is the last identifier before the parameter list or type.
//
//	String.trimAll, Map<K, V>.merge, T?.orEmpty, ((Int) -> Unit).invokeTwice
func (p *Parser) parseReceiverAndName() string {
	name := ""
	for !p.failed() {
		switch {
		case p.check(TOKEN_IDENT):
			name = p.token.Literal
			p.nextToken()
		case p.check(TOKEN_DOT), p.check(TOKEN_QUESTION):
			p.nextToken()
		case p.check(TOKEN_LT):
			p.skipAngles()
		case p.check(TOKEN_LPAREN) && name == "":
			p.skipBalanced()
		default:
			if name == "" {
				p.expectName()
			}
			return name
		}
	}
	return name
}

// parseFunctionBody skips a block body or an expression body.
func (p *Parser) parseFunctionBody() {
	switch p.peekSignificant().Type {
	case TOKEN_LBRACE:
		p.skipNewlines()
		p.skipBalanced()
	case TOKEN_EQ:
		p.skipNewlines()
		p.nextToken()
		p.skipNewlines()
		p.skipExpression(false)
	}
}

// parseValueParameters parses a parenthesized parameter list.
//
//	parameters → "(" [parameter ("," parameter)* [","]] ")"
func (p *Parser) parseValueParameters() []decl.Node {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	var params []decl.Node
	for !p.failed() {
		p.skipNewlines()
		if p.check(TOKEN_RPAREN) {
			break
		}
		params = append(params, p.parseParameter())
		p.skipNewlines()
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	if !p.failed() {
		p.skipNewlines()
		p.expect(TOKEN_RPAREN)
	}
	return params
}

// parseParameter parses one value parameter. Constructor parameters may be
// properties (val/var) and carry visibility modifiers.
//
//	parameter → modifiers ["val" | "var"] name [":" type] ["=" expression]
func (p *Parser) parseParameter() decl.Node {
	start := p.token.Pos
	mods := p.parseModifiers(true)
	if p.check(TOKEN_VAL) || p.check(TOKEN_VAR) {
		p.nextToken()
	}
	name := p.expectName()
	if p.match(TOKEN_COLON) {
		p.skipType()
	}
	if p.match(TOKEN_EQ) {
		p.skipExpression(true)
	}
	return decl.NewDecl(decl.KindParameter, name, mods, p.spanFrom(start))
}

// parseProperty parses a property declaration after its modifiers.
//
//	property → ("val" | "var") [typeParams] [receiver "."] (name | "(" names ")")
//	           [":" type] [where] [("=" | "by") expression] [getter] [setter]
func (p *Parser) parseProperty(start Position, mods decl.ModifierSet) decl.Node {
	p.nextToken() // val / var
	if p.check(TOKEN_LT) {
		p.skipAngles()
	}

	var name string
	if p.check(TOKEN_LPAREN) {
		// Destructuring declaration
		begin := p.token.Pos.Offset
		p.skipBalanced()
		name = p.lexer.input[begin:p.lastSignificant().End.Offset]
	} else {
		name = p.parsePropertyName()
	}

	if p.match(TOKEN_COLON) {
		p.skipType()
	}
	if p.checkSoft("where") {
		p.nextToken()
		p.skipType()
	}
	switch {
	case p.match(TOKEN_EQ):
		p.skipNewlines()
		p.skipExpression(false)
	case p.checkSoft("by"):
		p.nextToken()
		p.skipNewlines()
		p.skipExpression(false)
	}
	p.parseAccessors()
	return decl.NewDecl(decl.KindProperty, name, mods, p.spanFrom(start))
}

// parsePropertyName consumes an optional receiver type and the property name.
func (p *Parser) parsePropertyName() string {
	name := ""
	for !p.failed() {
		switch {
		case p.check(TOKEN_IDENT):
			name = p.token.Literal
			p.nextToken()
			if !p.check(TOKEN_DOT) && !p.check(TOKEN_QUESTION) && !p.check(TOKEN_LT) {
				return name
			}
		case p.check(TOKEN_DOT), p.check(TOKEN_QUESTION):
			p.nextToken()
		case p.check(TOKEN_LT):
			p.skipAngles()
		default:
			if name == "" {
				p.expectName()
			}
			return name
		}
	}
	return name
}

// parseAccessors consumes up to two property accessors. They may sit on the
// following lines and carry their own modifiers.
//
//	accessor → modifiers ("get" | "set") ["(" ... ")"] [":" type] [block | "=" expression]
func (p *Parser) parseAccessors() {
	for i := 0; i < 2 && !p.failed(); i++ {
		m := p.mark()
		p.skipNewlines()
		if p.check(TOKEN_SEMICOLON) && p.peekSignificantAfter().Type == TOKEN_IDENT {
			p.nextToken()
			p.skipNewlines()
		}
		p.parseModifiers(false)
		if p.failed() || !(p.checkSoft("get") || p.checkSoft("set")) || !p.accessorFollows() {
			p.reset(m)
			return
		}
		p.nextToken() // get / set
		if p.check(TOKEN_LPAREN) {
			p.skipBalanced()
		}
		if p.match(TOKEN_COLON) {
			p.skipType()
		}
		p.parseFunctionBody()
	}
}

// accessorFollows reports whether the token after get/set fits an accessor.
func (p *Parser) accessorFollows() bool {
	switch p.peekAt(1).Type {
	case TOKEN_LPAREN, TOKEN_EQ, TOKEN_LBRACE, TOKEN_NEWLINE, TOKEN_SEMICOLON, TOKEN_RBRACE, TOKEN_EOF, TOKEN_COLON:
		return true
	}
	return false
}

// parseTypeAlias parses "typealias" name [typeParams] "=" type.
func (p *Parser) parseTypeAlias(start Position, mods decl.ModifierSet) decl.Node {
	p.nextToken() // typealias
	name := p.expectName()
	if p.check(TOKEN_LT) {
		p.skipAngles()
	}
	if p.expect(TOKEN_EQ) {
		p.skipType()
	}
	return decl.NewDecl(decl.KindTypeAlias, name, mods, p.spanFrom(start))
}

// parseSecondaryConstructor parses a constructor declared in a class body.
//
//	secondaryCtor → "constructor" "(" parameters ")" [":" ("this" | "super") "(" ... ")"] [block]
func (p *Parser) parseSecondaryConstructor(start Position, mods decl.ModifierSet, owner string) decl.Node {
	p.nextToken() // constructor
	params := p.parseValueParameters()

	if !p.failed() && p.peekSignificant().Type == TOKEN_COLON {
		p.skipNewlines()
		p.nextToken() // :
		p.skipNewlines()
		if !p.match(TOKEN_THIS) && !p.match(TOKEN_SUPER) {
			p.addError("expected this or super in constructor delegation")
			return nil
		}
		if p.check(TOKEN_LPAREN) {
			p.skipBalanced()
		}
	}
	if !p.failed() && p.peekSignificant().Type == TOKEN_LBRACE {
		p.skipNewlines()
		p.skipBalanced()
	}
	return decl.NewDecl(decl.KindSecondaryConstructor, owner, mods, p.spanFrom(start), params...)
}

// parseInitializer parses "init" block.
func (p *Parser) parseInitializer(start Position, mods decl.ModifierSet) decl.Node {
	p.nextToken() // init
	p.skipNewlines()
	p.skipBalanced()
	return decl.NewDecl(decl.KindInitializer, "init", mods, p.spanFrom(start))
}
