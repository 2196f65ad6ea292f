package ast

import "fmt"

// Visitor has one method per node variant
type Visitor interface {
	VisitVarDecl(n *VarDecl)
	VisitBinary(n *Binary)
	VisitUnary(n *Unary)
	VisitLiteral(n *Literal)
	VisitIdentifier(n *Identifier)
	VisitBlock(n *Block)
	VisitIf(n *If)
	VisitWhile(n *While)
	VisitAssign(n *Assign)
}

// Accept calls the Visitor method matching node's variant. It panics on a
// node type it does not know.
func Accept(node Node, v Visitor) {
	switch n := node.(type) {
	case *VarDecl:
		v.VisitVarDecl(n)
	case *Binary:
		v.VisitBinary(n)
	case *Unary:
		v.VisitUnary(n)
	case *Literal:
		v.VisitLiteral(n)
	case *Identifier:
		v.VisitIdentifier(n)
	case *Block:
		v.VisitBlock(n)
	case *If:
		v.VisitIf(n)
	case *While:
		v.VisitWhile(n)
	case *Assign:
		v.VisitAssign(n)
	default:
		panic(fmt.Sprintf("ast: unhandled node variant %T", node))
	}
}

// PatternVisitor has one method per pattern variant
type PatternVisitor interface {
	VisitTypedPattern(p *TypedPattern)
}

// AcceptPattern calls the PatternVisitor method matching p's variant
func AcceptPattern(p Pattern, v PatternVisitor) {
	switch p := p.(type) {
	case *TypedPattern:
		v.VisitTypedPattern(p)
	default:
		panic(fmt.Sprintf("ast: unhandled pattern variant %T", p))
	}
}
