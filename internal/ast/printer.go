package ast

import (
	"strings"

	"github.com/lhaig/helium/internal/interner"
	"github.com/lhaig/helium/internal/lexer"
	"github.com/lhaig/helium/internal/types"
)

// Print renders each top-level node as an S-expression on its own line.
// With withTypes set, every annotated expression is followed by ` : Type`
// before its closing paren.
func Print(nodes []Node, in *interner.Interner, withTypes bool) string {
	p := NewPrinter(in, withTypes)
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, p.Print(n))
	}
	return strings.Join(lines, "\n")
}

// Printer is a Visitor producing the debug S-expression form of a tree
type Printer struct {
	in        *interner.Interner
	withTypes bool
	sb        strings.Builder
}

// NewPrinter creates a Printer. in resolves declared and annotated type
// names. It may be nil only when withTypes is false and no pattern declares
// a type; printing a type name without it panics.
func NewPrinter(in *interner.Interner, withTypes bool) *Printer {
	return &Printer{in: in, withTypes: withTypes}
}

// Print renders a single node
func (p *Printer) Print(node Node) string {
	p.sb.Reset()
	p.node(node)
	return p.sb.String()
}

func (p *Printer) node(node Node) {
	if node == nil {
		p.sb.WriteString("<nil>")
		return
	}
	Accept(node, p)
}

func (p *Printer) expr(e Expression) {
	if e == nil {
		p.sb.WriteString("<nil>")
		return
	}
	Accept(e, p)
}

// close writes the type annotation, if any, and the closing paren
func (p *Printer) close(e Expression) {
	if p.withTypes && e.Type() != nil {
		p.sb.WriteString(" : ")
		p.sb.WriteString(p.typeName(e.Type()))
	}
	p.sb.WriteByte(')')
}

func (p *Printer) typeName(t types.Type) string {
	if p.in == nil {
		panic("ast: printing a type requires an interner")
	}
	return types.Format(t, p.in)
}

func (p *Printer) VisitVarDecl(n *VarDecl) {
	p.sb.WriteString("(var ")
	if n.Pattern != nil {
		AcceptPattern(n.Pattern, p)
	}
	p.sb.WriteByte(' ')
	p.expr(n.Value)
	p.sb.WriteByte(')')
}

func (p *Printer) VisitTypedPattern(pat *TypedPattern) {
	p.sb.WriteString(pat.Name.Lexeme)
	if pat.Declared != nil {
		p.sb.WriteString(" : ")
		p.sb.WriteString(p.typeName(pat.Declared))
	}
}

func (p *Printer) VisitBinary(n *Binary) {
	p.sb.WriteByte('(')
	p.sb.WriteString(n.Op.Lexeme)
	p.sb.WriteByte(' ')
	p.expr(n.Left)
	p.sb.WriteByte(' ')
	p.expr(n.Right)
	p.close(n)
}

func (p *Printer) VisitUnary(n *Unary) {
	p.sb.WriteByte('(')
	p.sb.WriteString(n.Op.Lexeme)
	p.sb.WriteByte(' ')
	p.expr(n.Operand)
	p.close(n)
}

func (p *Printer) VisitLiteral(n *Literal) {
	p.sb.WriteByte('(')
	p.sb.WriteString(literalKind(n.Token.Type))
	p.sb.WriteByte(' ')
	p.sb.WriteString(n.Token.Lexeme)
	p.close(n)
}

func literalKind(tt lexer.TokenType) string {
	switch tt {
	case lexer.INT_LIT:
		return "int"
	case lexer.REAL_LIT:
		return "real"
	case lexer.CHAR_LIT:
		return "char"
	case lexer.STRING_LIT:
		return "string"
	default:
		return "lit"
	}
}

func (p *Printer) VisitIdentifier(n *Identifier) {
	p.sb.WriteString("(id ")
	p.sb.WriteString(n.Token.Lexeme)
	p.close(n)
}

func (p *Printer) VisitBlock(n *Block) {
	p.sb.WriteString("(block")
	for _, el := range n.Elements {
		p.sb.WriteByte(' ')
		p.node(el)
	}
	p.close(n)
}

func (p *Printer) VisitIf(n *If) {
	p.sb.WriteString("(if ")
	p.expr(n.Cond)
	p.sb.WriteString(" then ")
	p.expr(n.Then)
	if n.Else != nil {
		p.sb.WriteString(" else ")
		p.expr(n.Else)
	}
	p.close(n)
}

func (p *Printer) VisitWhile(n *While) {
	p.sb.WriteString("(while ")
	p.expr(n.Cond)
	p.sb.WriteString(" loop ")
	p.expr(n.Body)
	p.close(n)
}

func (p *Printer) VisitAssign(n *Assign) {
	p.sb.WriteString("(= (id ")
	p.sb.WriteString(n.Name.Lexeme)
	p.sb.WriteString(") ")
	p.expr(n.Value)
	p.close(n)
}
