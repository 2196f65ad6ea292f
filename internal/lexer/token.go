package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	EOL
	ILLEGAL

	// Literals
	CHAR_LIT   // 'a'
	INT_LIT    // 123
	REAL_LIT   // 123.45
	STRING_LIT // "hello"
	IDENT      // x, y, myVariable
	TRUE
	FALSE
	UNIT

	// Keywords
	VAR
	WHILE
	IF
	ELSE

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	ASSIGN // =

	// Delimiters
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	COLON  // :
)

// Token represents a lexical token. Lexeme is a substring of the source and
// shares its memory.
//
// Column points one past the last character of the lexeme. For EOL tokens
// Line is already the following line.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

// String returns a debug representation of the token
func (t Token) String() string {
	lexeme := t.Lexeme
	if t.Type == EOL {
		lexeme = `\n`
	}
	return fmt.Sprintf("[%s <%s> at %d:%d]", t.Type, lexeme, t.Line, t.Column)
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case EOL:
		return "EOL"
	case ILLEGAL:
		return "ILLEGAL"
	case CHAR_LIT:
		return "CHAR_LIT"
	case INT_LIT:
		return "INT_LIT"
	case REAL_LIT:
		return "REAL_LIT"
	case STRING_LIT:
		return "STRING_LIT"
	case IDENT:
		return "IDENT"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case UNIT:
		return "UNIT"
	case VAR:
		return "VAR"
	case WHILE:
		return "WHILE"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case SLASH:
		return "SLASH"
	case ASSIGN:
		return "ASSIGN"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case COLON:
		return "COLON"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"var":   VAR,
	"while": WHILE,
	"if":    IF,
	"else":  ELSE,
	"true":  TRUE,
	"false": FALSE,
	"unit":  UNIT,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
