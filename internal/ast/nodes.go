package ast

import (
	"github.com/lhaig/helium/internal/lexer"
	"github.com/lhaig/helium/internal/types"
)

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes. Every expression carries a resolved type that stays
// nil until the checker annotates it.
type Expression interface {
	Node
	Type() types.Type
	SetType(t types.Type)
	exprNode()
}

// Pattern is the left-hand side of a declaration
type Pattern interface {
	Pos() (line, col int)
	patternNode()
}

// tokenPos returns the position of the first character of tok's lexeme
func tokenPos(tok lexer.Token) (int, int) {
	return tok.Line, tok.Column - len(tok.Lexeme)
}

// typed holds the annotation shared by all expressions
type typed struct {
	typ types.Type
}

func (t *typed) Type() types.Type       { return t.typ }
func (t *typed) SetType(typ types.Type) { t.typ = typ }

// Intrinsic identifies the concrete numeric operation an arithmetic node
// performs once its operand types are known
type Intrinsic int

const (
	NoIntrinsic Intrinsic = iota
	IntAdd
	IntSub
	IntMul
	IntDiv
	RealAdd
	RealSub
	RealMul
	RealDiv
	IntNeg
	RealNeg
)

// String returns the string representation of the intrinsic
func (i Intrinsic) String() string {
	switch i {
	case NoIntrinsic:
		return "none"
	case IntAdd:
		return "int.add"
	case IntSub:
		return "int.sub"
	case IntMul:
		return "int.mul"
	case IntDiv:
		return "int.div"
	case RealAdd:
		return "real.add"
	case RealSub:
		return "real.sub"
	case RealMul:
		return "real.mul"
	case RealDiv:
		return "real.div"
	case IntNeg:
		return "int.neg"
	case RealNeg:
		return "real.neg"
	default:
		return "unknown"
	}
}

// VarDecl represents `var pattern = value`
type VarDecl struct {
	Token   lexer.Token // the 'var' keyword
	Pattern Pattern
	Value   Expression
}

func (v *VarDecl) Pos() (int, int) { return tokenPos(v.Token) }
func (v *VarDecl) stmtNode()       {}

// TypedPattern binds a single name, optionally with a declared type
type TypedPattern struct {
	Name     lexer.Token
	Declared types.Type  // nil when no type was written
	TypeName lexer.Token // the written type name, zero when Declared is nil
}

func (p *TypedPattern) Pos() (int, int) { return tokenPos(p.Name) }
func (p *TypedPattern) patternNode()    {}

// Binary represents a binary arithmetic expression
type Binary struct {
	typed
	Left      Expression
	Op        lexer.Token
	Right     Expression
	Intrinsic Intrinsic
}

func (b *Binary) Pos() (int, int) { return tokenPos(b.Op) }
func (b *Binary) exprNode()       {}

// Unary represents a prefix `+` or `-`
type Unary struct {
	typed
	Op        lexer.Token
	Operand   Expression
	Intrinsic Intrinsic
}

func (u *Unary) Pos() (int, int) { return tokenPos(u.Op) }
func (u *Unary) exprNode()       {}

// Literal represents an int, real, char, string, boolean or unit literal
type Literal struct {
	typed
	Token lexer.Token
}

func (l *Literal) Pos() (int, int) { return tokenPos(l.Token) }
func (l *Literal) exprNode()       {}

// Identifier represents a name reference. Depth is the number of scopes
// between the use and its binding, or -1 while unresolved.
type Identifier struct {
	typed
	Token lexer.Token
	Depth int
}

func (i *Identifier) Pos() (int, int) { return tokenPos(i.Token) }
func (i *Identifier) exprNode()       {}

// Name returns the identifier's lexeme
func (i *Identifier) Name() string { return i.Token.Lexeme }

// Block represents `{ ... }`. Elements are statements or expressions.
type Block struct {
	typed
	LBrace   lexer.Token
	Elements []Node
}

func (b *Block) Pos() (int, int) { return tokenPos(b.LBrace) }
func (b *Block) exprNode()       {}

// If represents `if (cond) then [else otherwise]`
type If struct {
	typed
	Token lexer.Token
	Cond  Expression
	Then  Expression
	Else  Expression // nil when absent
}

func (i *If) Pos() (int, int) { return tokenPos(i.Token) }
func (i *If) exprNode()       {}

// While represents `while (cond) body`
type While struct {
	typed
	Token lexer.Token
	Cond  Expression
	Body  Expression
}

func (w *While) Pos() (int, int) { return tokenPos(w.Token) }
func (w *While) exprNode()       {}

// Assign represents `name = value`. Receiver is reserved for member
// targets and is always nil.
type Assign struct {
	typed
	Name     lexer.Token
	Receiver Expression
	Value    Expression
}

func (a *Assign) Pos() (int, int) { return tokenPos(a.Name) }
func (a *Assign) exprNode()       {}
