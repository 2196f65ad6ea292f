package parser

import (
	"github.com/lhaig/helium/internal/diagnostic"
	"github.com/lhaig/helium/internal/interner"
	"github.com/lhaig/helium/internal/lexer"
)

// Parser holds the parser state. Tokens are pulled from the lexer on
// demand; ahead buffers the ones scanned but not yet consumed.
type Parser struct {
	lex      *lexer.Lexer
	ahead    []lexer.Token
	previous lexer.Token

	// panicking suppresses further diagnostics until the next statement
	panicking bool
	// skipEOL makes end-of-line tokens invisible, inside groups
	skipEOL bool
	// incomplete is set when an error was reported at end of input
	incomplete bool

	diags *diagnostic.Diagnostics
	in    *interner.Interner
}

// peek returns the i-th unconsumed token without skipping anything
func (p *Parser) peek(i int) lexer.Token {
	for len(p.ahead) <= i {
		p.ahead = append(p.ahead, p.lex.NextToken())
	}
	return p.ahead[i]
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.skipEOL {
		p.skipNewlines()
	}
	return p.peek(0)
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if tok.Type != lexer.EOF {
		p.ahead = p.ahead[1:]
	}
	p.previous = tok
	return tok
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// matchSkipping is match after discarding any end-of-line tokens
func (p *Parser) matchSkipping(tt lexer.TokenType) bool {
	p.skipNewlines()
	return p.match(tt)
}

// expect consumes a token of the given type or reports msg at the current
// token
func (p *Parser) expect(tt lexer.TokenType, msg string) bool {
	if p.match(tt) {
		return true
	}
	p.errorAt(p.current(), msg)
	return false
}

func (p *Parser) skipNewlines() {
	for p.peek(0).Type == lexer.EOL {
		p.ahead = p.ahead[1:]
	}
}

// peekPastNewlines returns the type of the first token that is not an
// end of line, without consuming anything
func (p *Parser) peekPastNewlines() lexer.TokenType {
	i := 0
	for p.peek(i).Type == lexer.EOL {
		i++
	}
	return p.peek(i).Type
}

// ignoreNewlines switches end-of-line sensitivity and returns a function
// restoring the previous mode
func (p *Parser) ignoreNewlines(on bool) (restore func()) {
	prev := p.skipEOL
	p.skipEOL = on
	return func() { p.skipEOL = prev }
}

// errorAt reports msg at tok unless the parser is already panicking. Error
// tokens enter panic mode silently since the lexer has reported them.
func (p *Parser) errorAt(tok lexer.Token, msg string) {
	if p.panicking {
		return
	}
	p.panicking = true
	if tok.Type == lexer.EOF {
		p.incomplete = true
	}
	if tok.Type == lexer.ILLEGAL {
		return
	}
	p.diags.ErrorAtToken(msg, tok)
}

// synchronize skips the rest of a broken sequence element. It stops before
// closing or end of input, or just after a separator, at nesting depth 0.
func (p *Parser) synchronize(separator, closing lexer.TokenType) {
	depth := 0
	for {
		tok := p.current()
		switch {
		case tok.Type == lexer.EOF:
			return
		case depth == 0 && tok.Type == closing:
			return
		case depth == 0 && tok.Type == separator:
			p.advance()
			return
		case tok.Type == lexer.LBRACE || tok.Type == lexer.LPAREN:
			depth++
		case (tok.Type == lexer.RBRACE || tok.Type == lexer.RPAREN) && depth > 0:
			depth--
		}
		p.advance()
	}
}
