package lexer

import "unicode/utf8"

// ErrorHandler receives lexical errors. line and col locate the first
// character of the offending literal.
type ErrorHandler func(line, col int, msg string)

// Lexer scans Helium source code and produces tokens on demand
type Lexer struct {
	input string
	start int // offset of the token being scanned
	pos   int // offset of the next unread byte
	line  int // current line number
	col   int // column of the next unread byte
	errh  ErrorHandler
}

// New creates a new Lexer instance. errh may be nil.
func New(input string, errh ErrorHandler) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
		errh:  errh,
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// readChar consumes one byte. It returns 0 at end of input.
func (l *Lexer) readChar() byte {
	if l.atEnd() {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 0
	}
	l.col++
	return ch
}

func (l *Lexer) peekChar() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNextChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// skipWhitespace skips blanks and a trailing line comment. Newlines are
// significant and left in place.
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.peekChar() {
		case ' ', '\t', '\r':
			l.readChar()
		case '/':
			if l.peekNextChar() == '/' {
				l.skipSingleLineComment()
			}
			return
		default:
			return
		}
	}
}

func (l *Lexer) skipSingleLineComment() {
	for !l.atEnd() && l.peekChar() != '\n' {
		l.readChar()
	}
}

func (l *Lexer) makeToken(tt TokenType) Token {
	return Token{
		Type:   tt,
		Lexeme: l.input[l.start:l.pos],
		Line:   l.line,
		Column: l.col,
	}
}

// errorToken reports msg at line:col and returns an ILLEGAL token covering
// everything consumed for the literal.
func (l *Lexer) errorToken(msg string, line, col int) Token {
	if l.errh != nil {
		l.errh(line, col, msg)
	}
	return l.makeToken(ILLEGAL)
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	l.start = l.pos

	if l.atEnd() {
		return l.makeToken(EOF)
	}

	ch := l.readChar()
	switch ch {
	case '\n':
		return l.makeToken(EOL)
	case '{':
		return l.makeToken(LBRACE)
	case '}':
		return l.makeToken(RBRACE)
	case '(':
		return l.makeToken(LPAREN)
	case ')':
		return l.makeToken(RPAREN)
	case '+':
		return l.makeToken(PLUS)
	case '-':
		return l.makeToken(MINUS)
	case '*':
		return l.makeToken(STAR)
	case '/':
		return l.makeToken(SLASH)
	case '=':
		return l.makeToken(ASSIGN)
	case ':':
		return l.makeToken(COLON)
	case '"':
		return l.readString()
	case '\'':
		return l.readCharLit()
	}

	switch {
	case isLetter(ch):
		return l.readIdentifier()
	case isDigit(ch):
		return l.readNumber()
	}

	line, col := l.line, l.col-1
	// swallow the rest of a multi-byte character so it yields one error
	if ch >= utf8.RuneSelf {
		_, size := utf8.DecodeRuneInString(l.input[l.start:])
		for i := 1; i < size; i++ {
			l.readChar()
		}
	}
	return l.errorToken("Unexpected symbol", line, col)
}

func (l *Lexer) readIdentifier() Token {
	for isLetter(l.peekChar()) || isDigit(l.peekChar()) {
		l.readChar()
	}
	return l.makeToken(LookupIdent(l.input[l.start:l.pos]))
}

// readNumber reads an integer or real literal. The first digit has already
// been consumed.
func (l *Lexer) readNumber() Token {
	line, col := l.line, l.col-1

	for isDigit(l.peekChar()) {
		l.readChar()
	}

	tt := INT_LIT
	if l.peekChar() == '.' {
		tt = REAL_LIT
		l.readChar()
		for isDigit(l.peekChar()) {
			l.readChar()
		}
	}

	lexeme := l.input[l.start:l.pos]
	if lexeme[0] == '0' && len(lexeme) > 1 && isDigit(lexeme[1]) {
		return l.errorToken("Invalid number literal", line, col)
	}

	return l.makeToken(tt)
}

// validSymbol consumes one character (or an escape pair) allowed inside a
// literal and reports whether it was valid.
func (l *Lexer) validSymbol() bool {
	switch l.readChar() {
	case '\n', '\t', '\r', '\'', '"':
		return false
	case '\\':
		return l.escape()
	default:
		return true
	}
}

// escape handles the character following a backslash
func (l *Lexer) escape() bool {
	switch l.peekChar() {
	case '\'', '"', '\\':
		l.readChar()
		return true
	default:
		return l.validSymbol()
	}
}

// readCharLit reads a character literal. The opening quote has already been
// consumed. An unescaped double quote is accepted. A malformed literal is
// consumed up to its closing quote so that it yields a single error.
func (l *Lexer) readCharLit() Token {
	line, col := l.line, l.col-1

	var valid bool
	if l.peekChar() == '"' {
		l.readChar()
		valid = true
	} else {
		valid = l.validSymbol()
	}

	if valid && l.peekChar() == '\'' {
		l.readChar()
		return l.makeToken(CHAR_LIT)
	}

	// a rejected quote or newline already ends the literal
	if last := l.input[l.pos-1]; valid || (last != '\'' && last != '\n') {
		l.skipToQuote()
	}
	return l.errorToken("Invalid character literal", line, col)
}

// skipToQuote consumes input up to and including the next quote, stopping
// before a newline
func (l *Lexer) skipToQuote() {
	for !l.atEnd() && l.peekChar() != '\n' {
		if l.readChar() == '\'' {
			return
		}
	}
}

// readString reads a string literal. The opening quote has already been
// consumed. Raw quotes, newlines, tabs and carriage returns are allowed.
func (l *Lexer) readString() Token {
	line, col := l.line, l.col-1

	valid := true
	for !l.atEnd() && l.peekChar() != '"' {
		switch l.peekChar() {
		case '\'', '\n', '\t', '\r':
			l.readChar()
		default:
			if !l.validSymbol() {
				valid = false
			}
		}
	}

	if l.atEnd() {
		return l.errorToken(`Missing closing "`, line, col)
	}
	l.readChar() // closing quote

	if !valid {
		return l.errorToken("Invalid string literal", line, col)
	}
	return l.makeToken(STRING_LIT)
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
