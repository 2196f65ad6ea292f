package parser

import (
	"fmt"

	"github.com/lhaig/helium/internal/ast"
	"github.com/lhaig/helium/internal/diagnostic"
	"github.com/lhaig/helium/internal/interner"
	"github.com/lhaig/helium/internal/lexer"
	"github.com/lhaig/helium/internal/types"
)

// New creates a new parser over source. Lexical and syntax errors go to
// diags; declared type names are interned into in.
func New(source string, diags *diagnostic.Diagnostics, in *interner.Interner) *Parser {
	p := &Parser{
		diags: diags,
		in:    in,
	}
	p.lex = lexer.New(source, func(line, col int, msg string) {
		diags.ErrorAt(msg, line, col)
	})
	return p
}

// Parse is a shorthand for New(source, diags, in).Parse()
func Parse(source string, diags *diagnostic.Diagnostics, in *interner.Interner) []ast.Node {
	return New(source, diags, in).Parse()
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Incomplete reports whether parsing failed because the input ended too
// early, e.g. inside an open block or group
func (p *Parser) Incomplete() bool {
	return p.incomplete
}

// Parse parses the whole source as a newline separated statement list.
// When diagnostics were reported the returned tree may be partial.
func (p *Parser) Parse() []ast.Node {
	return p.sequence(lexer.EOL, lexer.EOF, p.parseStatement)
}

// sequence parses elements separated by separator up to closing. Blank
// lines are skipped; failed elements contribute no node.
func (p *Parser) sequence(separator, closing lexer.TokenType, element func() ast.Node) []ast.Node {
	if p.matchSkipping(closing) {
		return nil
	}
	if p.check(lexer.EOF) {
		p.errorAt(p.current(), "Missing closing token")
		return nil
	}

	var nodes []ast.Node
	for {
		if node := element(); node != nil {
			nodes = append(nodes, node)
		}

		hasSeparator := p.match(separator)
		if p.matchSkipping(closing) {
			break
		}
		if p.check(lexer.EOF) {
			p.errorAt(p.current(), "Missing closing token")
			break
		}
		if !hasSeparator {
			p.errorAt(p.current(), "Missing separator in a sequence")
			p.synchronize(separator, closing)
			if p.matchSkipping(closing) {
				break
			}
			if p.check(lexer.EOF) {
				p.errorAt(p.current(), "Missing closing token")
				break
			}
		}
	}
	return nodes
}

// parseStatement parses a var declaration or an expression. Panic mode is
// cleared here so errors in one statement don't hide the next.
func (p *Parser) parseStatement() ast.Node {
	p.panicking = false
	if p.matchSkipping(lexer.VAR) {
		return p.parseVarDecl()
	}
	if expr := p.parseExpression(precAssign); expr != nil {
		return expr
	}
	return nil
}

// parseVarDecl parses: var <pattern> = <expr>
// Newlines are allowed anywhere between 'var' and the initializer.
func (p *Parser) parseVarDecl() ast.Node {
	tok := p.previous

	restore := p.ignoreNewlines(true)
	pattern := p.parsePattern()
	if pattern == nil {
		restore()
		return nil
	}
	if !p.expect(lexer.ASSIGN, "Initializer expected") {
		restore()
		return nil
	}
	restore()

	p.skipNewlines()
	value := p.parseExpression(precAssign)
	if value == nil {
		return nil
	}
	return &ast.VarDecl{Token: tok, Pattern: pattern, Value: value}
}

// parsePattern parses: <ident> [: <type>]
func (p *Parser) parsePattern() ast.Pattern {
	if !p.match(lexer.IDENT) {
		p.errorAt(p.current(), "Unexpected token: invalid pattern")
		return nil
	}
	pat := &ast.TypedPattern{Name: p.previous}
	if p.match(lexer.COLON) {
		declared := p.parseType()
		if declared == nil {
			return nil
		}
		pat.Declared = declared
		pat.TypeName = p.previous
	}
	return pat
}

func (p *Parser) parseType() types.Type {
	if !p.expect(lexer.IDENT, "Invalid type syntax") {
		return nil
	}
	return types.NewSingle(p.in.Intern(p.previous.Lexeme))
}

// Precedence levels
type precedence int

const (
	precNone precedence = iota
	precAssign
	precAdditive
	precMulti
	precUnary
)

type prefixKind int

const (
	noPrefix prefixKind = iota
	prefixLiteral
	prefixIdentifier
	prefixUnary
	prefixGrouping
	prefixBlock
	prefixIf
	prefixWhile
)

type infixKind int

const (
	noInfix infixKind = iota
	infixBinary
)

type parseRule struct {
	prefix prefixKind
	infix  infixKind
	prec   precedence
}

func rule(tt lexer.TokenType) parseRule {
	switch tt {
	case lexer.INT_LIT, lexer.REAL_LIT, lexer.CHAR_LIT, lexer.STRING_LIT,
		lexer.TRUE, lexer.FALSE, lexer.UNIT:
		return parseRule{prefix: prefixLiteral}
	case lexer.IDENT:
		return parseRule{prefix: prefixIdentifier}
	case lexer.PLUS, lexer.MINUS:
		return parseRule{prefix: prefixUnary, infix: infixBinary, prec: precAdditive}
	case lexer.STAR, lexer.SLASH:
		return parseRule{infix: infixBinary, prec: precMulti}
	case lexer.LPAREN:
		return parseRule{prefix: prefixGrouping}
	case lexer.LBRACE:
		return parseRule{prefix: prefixBlock}
	case lexer.IF:
		return parseRule{prefix: prefixIf}
	case lexer.WHILE:
		return parseRule{prefix: prefixWhile}
	default:
		return parseRule{}
	}
}

// parseExpression parses an expression whose operators bind at least as
// tightly as prec. It returns nil once the parser is panicking.
func (p *Parser) parseExpression(prec precedence) ast.Expression {
	tok := p.advance()
	r := rule(tok.Type)
	if r.prefix == noPrefix {
		p.errorAt(tok, "Unexpected token")
		return nil
	}

	canAssign := prec <= precAssign
	left := p.parsePrefix(r.prefix, canAssign)
	if p.panicking {
		return nil
	}

	for prec <= rule(p.current().Type).prec {
		p.advance()
		left = p.parseBinary(left)
		if p.panicking {
			return nil
		}
	}

	if canAssign && p.match(lexer.ASSIGN) {
		p.errorAt(p.previous, "Invalid assignment target")
		return nil
	}
	return left
}

func (p *Parser) parsePrefix(kind prefixKind, canAssign bool) ast.Expression {
	switch kind {
	case prefixLiteral:
		return &ast.Literal{Token: p.previous}
	case prefixIdentifier:
		return p.parseIdentifier(canAssign)
	case prefixUnary:
		return p.parseUnary()
	case prefixGrouping:
		return p.parseGrouping()
	case prefixBlock:
		return p.parseBlock()
	case prefixIf:
		return p.parseIf()
	case prefixWhile:
		return p.parseWhile()
	default:
		panic(fmt.Sprintf("parser: unhandled prefix rule %d", kind))
	}
}

// parseIdentifier parses a name, or an assignment to it when allowed
func (p *Parser) parseIdentifier(canAssign bool) ast.Expression {
	name := p.previous
	if canAssign && p.match(lexer.ASSIGN) {
		value := p.parseExpression(precAssign)
		if value == nil {
			return nil
		}
		return &ast.Assign{Name: name, Value: value}
	}
	return &ast.Identifier{Token: name, Depth: -1}
}

func (p *Parser) parseUnary() ast.Expression {
	op := p.previous
	operand := p.parseExpression(precUnary)
	if operand == nil {
		return nil
	}
	return &ast.Unary{Op: op, Operand: operand}
}

// parseBinary parses the right operand one level tighter than the
// operator, making all binary operators left associative
func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	op := p.previous
	right := p.parseExpression(rule(op.Type).prec + 1)
	if right == nil {
		return nil
	}
	return &ast.Binary{Left: left, Op: op, Right: right}
}

// parseGrouping parses: ( <expr> )
// Newlines inside the parentheses are ignored.
func (p *Parser) parseGrouping() ast.Expression {
	restore := p.ignoreNewlines(true)
	defer restore()

	expr := p.parseExpression(precAssign)
	if expr == nil {
		return nil
	}
	if !p.expect(lexer.RPAREN, "Missing closing )") {
		return nil
	}
	return expr
}

// parseBlock parses: { <stmt> (EOL <stmt>)* }
func (p *Parser) parseBlock() ast.Expression {
	lbrace := p.previous

	restore := p.ignoreNewlines(false)
	defer restore()

	elements := p.sequence(lexer.EOL, lexer.RBRACE, p.parseStatement)
	if p.panicking {
		return nil
	}
	return &ast.Block{LBrace: lbrace, Elements: elements}
}

// parseCondition parses the parenthesized condition of if and while
func (p *Parser) parseCondition(keyword string) ast.Expression {
	if !p.expect(lexer.LPAREN, fmt.Sprintf("Missing ( before condition in '%s' expression", keyword)) {
		return nil
	}

	restore := p.ignoreNewlines(true)
	defer restore()

	cond := p.parseExpression(precAssign)
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.RPAREN, fmt.Sprintf("Missing ) after condition in '%s' expression", keyword)) {
		return nil
	}
	return cond
}

// parseIf parses: if ( <cond> ) <expr> [else <expr>]
// The else may start on a following line.
func (p *Parser) parseIf() ast.Expression {
	tok := p.previous

	cond := p.parseCondition("if")
	if cond == nil {
		return nil
	}

	p.skipNewlines()
	then := p.parseExpression(precAssign)
	if then == nil {
		return nil
	}
	node := &ast.If{Token: tok, Cond: cond, Then: then}

	if p.peekPastNewlines() == lexer.ELSE {
		p.skipNewlines()
		p.advance()
		p.skipNewlines()
		otherwise := p.parseExpression(precAssign)
		if otherwise == nil {
			return nil
		}
		node.Else = otherwise
	}
	return node
}

// parseWhile parses: while ( <cond> ) <expr>
func (p *Parser) parseWhile() ast.Expression {
	tok := p.previous

	cond := p.parseCondition("while")
	if cond == nil {
		return nil
	}

	p.skipNewlines()
	body := p.parseExpression(precAssign)
	if body == nil {
		return nil
	}
	return &ast.While{Token: tok, Cond: cond, Body: body}
}
