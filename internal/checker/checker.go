package checker

import (
	"github.com/lhaig/helium/internal/ast"
	"github.com/lhaig/helium/internal/diagnostic"
	"github.com/lhaig/helium/internal/interner"
	"github.com/lhaig/helium/internal/types"
)

// Checker performs semantic analysis on a parsed tree. It annotates every
// expression with its type in place and reports violations to diags.
//
// A violation degrades the offending node to ErrorType and the walk goes
// on. Any ErrorType input yields ErrorType without a further diagnostic.
type Checker struct {
	diag     *diagnostic.Diagnostics
	in       *interner.Interner
	builtins *types.Builtins
	scopes   *scopes

	// declOK records whether the last VarDecl checked succeeded
	declOK bool
}

// New creates a checker with an empty root scope. Declarations made by
// successive Check calls stay visible in that scope.
func New(diag *diagnostic.Diagnostics, in *interner.Interner) *Checker {
	return &Checker{
		diag:     diag,
		in:       in,
		builtins: types.NewBuiltins(in),
		scopes:   newScopes(),
	}
}

// Check type checks a tree with a fresh checker. Running it again on the
// same tree reproduces the same annotations.
func Check(nodes []ast.Node, diag *diagnostic.Diagnostics, in *interner.Interner) {
	New(diag, in).Check(nodes)
}

// Check walks the top-level nodes in the root scope
func (c *Checker) Check(nodes []ast.Node) {
	for _, n := range nodes {
		ast.Accept(n, c)
	}
}

// Reset forgets every declaration made so far
func (c *Checker) Reset() {
	c.scopes.reset()
}

// Diagnostics returns the collection violations are reported to
func (c *Checker) Diagnostics() *diagnostic.Diagnostics {
	return c.diag
}

// Builtins returns the well-known types used by this checker
func (c *Checker) Builtins() *types.Builtins {
	return c.builtins
}

// Lookup returns the type bound to name in the root scope. A poisoned
// name is reported as found with a nil type.
func (c *Checker) Lookup(name string) (types.Type, bool) {
	t, _, ok := c.scopes.lookup(c.in.Intern(name))
	return t, ok
}

func (c *Checker) check(e ast.Expression) types.Type {
	ast.Accept(e, c)
	return e.Type()
}

func (c *Checker) isBool(t types.Type) bool {
	return c.builtins.Bool.Match(t)
}

func (c *Checker) VisitLiteral(n *ast.Literal) {
	n.SetType(c.literalType(n.Token))
}

func (c *Checker) VisitIdentifier(n *ast.Identifier) {
	t, depth, ok := c.scopes.lookup(c.in.Intern(n.Name()))
	if !ok {
		c.diag.ErrorAtToken("Undeclared identifier", n.Token)
		n.Depth = -1
		n.SetType(types.NewError())
		return
	}

	n.Depth = depth
	if t == nil {
		n.SetType(types.NewError())
		return
	}
	n.SetType(t.Copy())
}

func (c *Checker) VisitUnary(n *ast.Unary) {
	t := c.check(n.Operand)
	if !types.IsError(t) && !c.builtins.IsNumeric(t) {
		c.diag.ErrorAtToken("Operand type must be Int or Real", n.Op)
	}

	n.SetType(t.Copy())
	n.Intrinsic = c.unaryIntrinsic(n.Op.Type, t)
}

func (c *Checker) VisitBinary(n *ast.Binary) {
	left := c.check(n.Left)
	right := c.check(n.Right)
	n.Intrinsic = ast.NoIntrinsic

	if types.IsError(left) || types.IsError(right) {
		n.SetType(types.NewError())
		return
	}

	var msg string
	switch {
	case !types.IsSingle(left) || !types.IsSingle(right):
		msg = "Wrong operand types for binary expr"
	case !left.Match(right):
		msg = "Operands must have the same type"
	case !c.builtins.IsNumeric(left):
		msg = "Operands must be either ints or reals"
	}
	if msg != "" {
		c.diag.ErrorAtToken(msg, n.Op)
		n.SetType(types.NewError())
		return
	}

	n.SetType(left.Copy())
	n.Intrinsic = c.binaryIntrinsic(n.Op.Type, left)
}

func (c *Checker) VisitVarDecl(n *ast.VarDecl) {
	inferred := c.check(n.Value)
	m := &patternMatcher{c: c, inferred: inferred}
	ast.AcceptPattern(n.Pattern, m)
	c.declOK = m.ok && !types.IsError(inferred)
}

// patternMatcher binds the names of a pattern against an inferred type
type patternMatcher struct {
	c        *Checker
	inferred types.Type
	ok       bool
}

func (m *patternMatcher) VisitTypedPattern(p *ast.TypedPattern) {
	c := m.c
	name := c.in.Intern(p.Name.Lexeme)

	var bound types.Type
	m.ok = true
	switch {
	case p.Declared != nil && types.IsError(m.inferred):
		bound = p.Declared.Copy()
	case p.Declared != nil && !p.Declared.Match(m.inferred):
		c.diag.ErrorAtToken("Incompatible type decl", p.Name)
		m.ok = false
	case p.Declared != nil:
		bound = p.Declared.Copy()
	case types.IsError(m.inferred):
		// poisoned: uses of the name stay silent
	default:
		bound = m.inferred.Copy()
	}

	if c.scopes.declaredLocally(name) {
		c.diag.ErrorAtToken("Redefinition of a name is not allowed", p.Name)
		m.ok = false
		return
	}
	c.scopes.define(name, bound)
}

func (c *Checker) VisitAssign(n *ast.Assign) {
	if n.Receiver != nil {
		panic("checker: member assignment is not implemented")
	}
	value := c.check(n.Value)

	dest, _, ok := c.scopes.lookup(c.in.Intern(n.Name.Lexeme))
	if !ok {
		c.diag.ErrorAtToken("Undefined name", n.Name)
		n.SetType(types.NewError())
		return
	}
	if dest == nil || types.IsError(value) {
		n.SetType(types.NewError())
		return
	}
	if !dest.Match(value) {
		c.diag.ErrorAtToken("Invalid assignment types", n.Name)
		n.SetType(types.NewError())
		return
	}
	n.SetType(c.builtins.Unit.Copy())
}

func (c *Checker) VisitBlock(n *ast.Block) {
	c.scopes.push()
	defer c.scopes.pop()

	var result types.Type = c.builtins.Unit
	failed := false
	for _, el := range n.Elements {
		ast.Accept(el, c)
		switch el := el.(type) {
		case ast.Expression:
			result = el.Type()
			failed = failed || types.IsError(result)
		default:
			result = c.builtins.Unit
			failed = failed || !c.declOK
		}
	}

	if failed {
		n.SetType(types.NewError())
		return
	}
	n.SetType(result.Copy())
}

func (c *Checker) VisitIf(n *ast.If) {
	cond := c.check(n.Cond)
	good := !types.IsError(cond)
	if good && !c.isBool(cond) {
		c.diag.ErrorAtToken("Type of condition must be Bool", n.Token)
		good = false
	}

	then := c.check(n.Then)
	if n.Else == nil {
		if good && !types.IsError(then) {
			n.SetType(c.builtins.Unit.Copy())
		} else {
			n.SetType(types.NewError())
		}
		return
	}

	otherwise := c.check(n.Else)
	if types.IsError(then) || types.IsError(otherwise) {
		n.SetType(types.NewError())
		return
	}
	if !then.Match(otherwise) {
		c.diag.ErrorAtToken("Two clauses of an 'if' expression have different types", n.Token)
		good = false
	}

	if !good {
		n.SetType(types.NewError())
		return
	}
	n.SetType(then.Copy())
}

func (c *Checker) VisitWhile(n *ast.While) {
	cond := c.check(n.Cond)
	good := !types.IsError(cond)
	if good && !c.isBool(cond) {
		c.diag.ErrorAtToken("Type of condition expression must be Bool", n.Token)
		good = false
	}

	body := c.check(n.Body)
	if good && !types.IsError(body) {
		n.SetType(c.builtins.Unit.Copy())
		return
	}
	n.SetType(types.NewError())
}
