package checker

import (
	"github.com/lhaig/helium/internal/ast"
	"github.com/lhaig/helium/internal/lexer"
	"github.com/lhaig/helium/internal/types"
)

// binaryIntrinsic maps an arithmetic operator and its operand type to the
// operation it performs. NoIntrinsic is returned for non-numeric types.
func (c *Checker) binaryIntrinsic(op lexer.TokenType, t types.Type) ast.Intrinsic {
	isInt := c.builtins.Int.Match(t)
	isReal := c.builtins.Real.Match(t)
	if !isInt && !isReal {
		return ast.NoIntrinsic
	}

	switch op {
	case lexer.PLUS:
		return pick(isInt, ast.IntAdd, ast.RealAdd)
	case lexer.MINUS:
		return pick(isInt, ast.IntSub, ast.RealSub)
	case lexer.STAR:
		return pick(isInt, ast.IntMul, ast.RealMul)
	case lexer.SLASH:
		return pick(isInt, ast.IntDiv, ast.RealDiv)
	default:
		panic("checker: not a binary operator: " + op.String())
	}
}

// unaryIntrinsic is the unary counterpart of binaryIntrinsic. Unary plus
// is the identity and has no intrinsic.
func (c *Checker) unaryIntrinsic(op lexer.TokenType, t types.Type) ast.Intrinsic {
	switch op {
	case lexer.PLUS:
		return ast.NoIntrinsic
	case lexer.MINUS:
		switch {
		case c.builtins.Int.Match(t):
			return ast.IntNeg
		case c.builtins.Real.Match(t):
			return ast.RealNeg
		}
		return ast.NoIntrinsic
	default:
		panic("checker: not a unary operator: " + op.String())
	}
}

func pick(isInt bool, ifInt, ifReal ast.Intrinsic) ast.Intrinsic {
	if isInt {
		return ifInt
	}
	return ifReal
}

// literalType returns the well-known type of a literal token
func (c *Checker) literalType(tok lexer.Token) types.Type {
	switch tok.Type {
	case lexer.INT_LIT:
		return c.builtins.Int.Copy()
	case lexer.REAL_LIT:
		return c.builtins.Real.Copy()
	case lexer.CHAR_LIT:
		return c.builtins.Char.Copy()
	case lexer.TRUE, lexer.FALSE:
		return c.builtins.Bool.Copy()
	case lexer.UNIT:
		return c.builtins.Unit.Copy()
	case lexer.STRING_LIT:
		panic("checker: string literals are not implemented")
	default:
		panic("checker: invalid literal " + tok.String())
	}
}
