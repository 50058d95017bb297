package parser

import (
	"fmt"

	"github.com/leapstack-labs/ktsmell/pkg/decl"
	"github.com/leapstack-labs/ktsmell/pkg/token"
)

// parseDeclarations parses declarations until end (not consumed).
// owner is the name of the enclosing class, used for constructors.
func (p *Parser) parseDeclarations(end TokenType, owner string) []decl.Node {
	var decls []decl.Node
	for {
		p.skipTrivia()
		if p.check(end) || p.check(TOKEN_EOF) || p.failed() {
			return decls
		}
		d := p.parseDeclaration(owner)
		if d == nil {
			return decls
		}
		decls = append(decls, d)
	}
}

// parseDeclaration parses one declaration with its modifiers.
//
//	declaration → modifiers (class | interface | object | fun | val | var
//	                         | typealias | constructor | init)
func (p *Parser) parseDeclaration(owner string) decl.Node {
	start := p.token.Pos
	mods := p.parseModifiers(true)
	if p.failed() {
		return nil
	}

	switch {
	case p.check(TOKEN_CLASS):
		return p.parseClass(start, mods, decl.KindClass)
	case p.check(TOKEN_INTERFACE):
		return p.parseClass(start, mods, decl.KindInterface)
	case p.check(TOKEN_FUN) && p.peekSignificantAfter().Type == TOKEN_INTERFACE:
		p.nextToken() // fun interface
		p.skipNewlines()
		return p.parseClass(start, mods, decl.KindInterface)
	case p.check(TOKEN_OBJECT):
		if mods.Has(decl.Companion) {
			return p.parseObject(start, mods, decl.KindCompanionObject)
		}
		return p.parseObject(start, mods, decl.KindObject)
	case p.check(TOKEN_FUN):
		return p.parseFunction(start, mods)
	case p.check(TOKEN_VAL), p.check(TOKEN_VAR):
		return p.parseProperty(start, mods)
	case p.check(TOKEN_TYPEALIAS):
		return p.parseTypeAlias(start, mods)
	case p.checkSoft("constructor"):
		return p.parseSecondaryConstructor(start, mods, owner)
	case p.checkSoft("init") && p.peekSignificantAfter().Type == TOKEN_LBRACE:
		return p.parseInitializer(start, mods)
	}

	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, "declaration"))
	return nil
}

// parseModifiers consumes modifier keywords and annotations. A word only
// counts as a modifier when a declaration follows it, so soft keywords stay
// usable as names. With crossLines, newlines between modifiers are allowed.
func (p *Parser) parseModifiers(crossLines bool) decl.ModifierSet {
	var mods decl.ModifierSet
	for !p.failed() {
		switch {
		case p.check(TOKEN_AT):
			p.skipAnnotation()
		case p.check(TOKEN_IDENT):
			m, ok := decl.ParseModifier(p.token.Literal)
			if !ok || !p.modifierFollows(crossLines) {
				return mods
			}
			mods = mods.With(m)
			p.nextToken()
		default:
			return mods
		}
		if crossLines {
			p.skipNewlines()
		}
	}
	return mods
}

// modifierFollows reports whether the token after the current one continues
// a modifier list.
func (p *Parser) modifierFollows(crossLines bool) bool {
	next := p.peekAt(1)
	if crossLines {
		next = p.peekSignificantAfter()
	}
	switch next.Type {
	case TOKEN_IDENT, TOKEN_AT:
		return true
	}
	return token.IsDeclarationKeyword(next.Type)
}

// skipAnnotation consumes one annotation.
//
//	annotation → "@" [target ":"] ("[" ... "]" | name [typeArgs] ["(" ... ")"])
func (p *Parser) skipAnnotation() {
	p.expect(TOKEN_AT)
	if p.check(TOKEN_IDENT) && p.peekAt(1).Type == TOKEN_COLON {
		p.nextToken() // use-site target
		p.nextToken()
	}
	if p.check(TOKEN_LBRACKET) {
		p.skipBalanced()
		return
	}
	p.parseQualifiedName()
	if p.check(TOKEN_LT) && p.adjacent() {
		p.skipAngles()
	}
	if p.check(TOKEN_LPAREN) && p.adjacent() {
		p.skipBalanced()
	}
}

// adjacent reports whether the current token touches the previous one.
func (p *Parser) adjacent() bool {
	return p.pos > 0 && p.tokens[p.pos-1].End.Offset == p.token.Pos.Offset
}

// parseClass parses a class or interface after its modifiers.
//
//	class → ("class" | "interface") name [typeParams] [primaryCtor]
//	        [":" supertypes] [where] [classBody | enumBody]
func (p *Parser) parseClass(start Position, mods decl.ModifierSet, kind decl.Kind) decl.Node {
	p.nextToken() // class / interface
	name := p.expectName()
	if p.check(TOKEN_LT) {
		p.skipAngles()
	}

	var primary decl.Node
	if kind == decl.KindClass {
		primary = p.parsePrimaryConstructor(name)
	}
	p.parseSupertypes()

	var body []decl.Node
	if !p.failed() && p.peekSignificant().Type == TOKEN_LBRACE {
		p.skipNewlines()
		if kind == decl.KindClass && mods.Has(decl.Enum) {
			body = p.parseEnumBody(name)
		} else {
			body = p.parseClassBody(name)
		}
	}
	return decl.NewClass(kind, name, mods, p.spanFrom(start), primary, body)
}

// parsePrimaryConstructor parses an optional primary constructor.
//
//	primaryCtor → [modifiers "constructor"] "(" parameters ")"
func (p *Parser) parsePrimaryConstructor(className string) decl.Node {
	start := p.token.Pos
	if p.check(TOKEN_LPAREN) {
		params := p.parseValueParameters()
		return decl.NewDecl(decl.KindPrimaryConstructor, className, 0, p.spanFrom(start), params...)
	}

	m := p.mark()
	mods := p.parseModifiers(false)
	if !p.checkSoft("constructor") || p.failed() {
		p.reset(m)
		return nil
	}
	p.nextToken() // constructor
	params := p.parseValueParameters()
	return decl.NewDecl(decl.KindPrimaryConstructor, className, mods, p.spanFrom(start), params...)
}

// parseSupertypes skips an optional supertype list and where clause.
func (p *Parser) parseSupertypes() {
	if p.peekSignificant().Type == TOKEN_COLON {
		p.skipNewlines()
		p.nextToken() // :
		p.skipNewlines()
		p.skipUntilBody()
	}
	if p.checkSoft("where") {
		p.nextToken()
		p.skipUntilBody()
	}
}

// parseClassBody parses "{" declarations "}".
func (p *Parser) parseClassBody(owner string) []decl.Node {
	p.expect(TOKEN_LBRACE)
	members := p.parseDeclarations(TOKEN_RBRACE, owner)
	if !p.failed() {
		p.expect(TOKEN_RBRACE)
	}
	return members
}

// parseEnumBody parses the body of an enum class.
//
//	enumBody  → "{" [enumEntry ("," enumEntry)* [","]] [";" declarations] "}"
//	enumEntry → annotations name ["(" arguments ")"] [classBody]
func (p *Parser) parseEnumBody(owner string) []decl.Node {
	p.expect(TOKEN_LBRACE)

	var members []decl.Node
	for !p.failed() {
		p.skipNewlines()
		if p.check(TOKEN_RBRACE) || p.check(TOKEN_SEMICOLON) || p.check(TOKEN_EOF) {
			break
		}
		members = append(members, p.parseEnumEntry())
		p.skipNewlines()
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	p.skipNewlines()
	if p.match(TOKEN_SEMICOLON) {
		members = append(members, p.parseDeclarations(TOKEN_RBRACE, owner)...)
	}
	if !p.failed() {
		p.expect(TOKEN_RBRACE)
	}
	return members
}

func (p *Parser) parseEnumEntry() decl.Node {
	start := p.token.Pos
	mods := p.parseModifiers(true)
	name := p.expectName()
	if p.check(TOKEN_LPAREN) {
		p.skipBalanced()
	}
	var body []decl.Node
	if !p.failed() && p.peekSignificant().Type == TOKEN_LBRACE {
		p.skipNewlines()
		body = p.parseClassBody(name)
	}
	return decl.NewClass(decl.KindEnumEntry, name, mods, p.spanFrom(start), nil, body)
}

// parseObject parses an object or companion object declaration.
//
//	object → ["companion"] "object" [name] [":" supertypes] [classBody]
func (p *Parser) parseObject(start Position, mods decl.ModifierSet, kind decl.Kind) decl.Node {
	p.nextToken() // object
	name := "Companion"
	if kind == decl.KindObject || p.check(TOKEN_IDENT) {
		name = p.expectName()
	}
	p.parseSupertypes()

	var body []decl.Node
	if !p.failed() && p.peekSignificant().Type == TOKEN_LBRACE {
		p.skipNewlines()
		body = p.parseClassBody(name)
	}
	return decl.NewClass(kind, name, mods, p.spanFrom(start), nil, body)
}
