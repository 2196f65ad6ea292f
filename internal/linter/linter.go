package linter

import (
	"strings"
	"unicode"

	"github.com/lhaig/helium/internal/ast"
	"github.com/lhaig/helium/internal/diagnostic"
)

// Linter performs style and best-practice checks on a parsed tree.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	diag   *diagnostic.Diagnostics
	scopes []*scope
}

// binding is a declared variable and whether anything read it
type binding struct {
	pattern *ast.TypedPattern
	used    bool
}

// scope holds the variables of one block in declaration order
type scope struct {
	names map[string]*binding
	order []*binding
}

// Lint runs all lint rules on the given tree and returns diagnostics.
// name is the source name warnings are reported against.
func Lint(name string, nodes []ast.Node) *diagnostic.Diagnostics {
	l := &Linter{
		diag: diagnostic.New(name),
	}

	l.push()
	for _, n := range nodes {
		l.lintNode(n)
	}
	l.pop()

	return l.diag
}

func (l *Linter) push() {
	l.scopes = append(l.scopes, &scope{names: make(map[string]*binding)})
}

// pop leaves the innermost scope and reports its unread variables
func (l *Linter) pop() {
	top := l.scopes[len(l.scopes)-1]
	l.scopes = l.scopes[:len(l.scopes)-1]
	l.checkUnusedVariables(top)
}

// resolve finds the innermost binding of name
func (l *Linter) resolve(name string) *binding {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if b, ok := l.scopes[i].names[name]; ok {
			return b
		}
	}
	return nil
}

func (l *Linter) declare(p *ast.TypedPattern) {
	name := p.Name.Lexeme
	for i := len(l.scopes) - 2; i >= 0; i-- {
		if _, ok := l.scopes[i].names[name]; ok {
			l.checkShadowing(p)
			break
		}
	}

	b := &binding{pattern: p}
	top := l.scopes[len(l.scopes)-1]
	top.names[name] = b
	top.order = append(top.order, b)
}

// --- Tree walk ---

func (l *Linter) lintNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.VarDecl:
		// the initializer is resolved before the name it declares
		l.lintExpr(n.Value)
		if p, ok := n.Pattern.(*ast.TypedPattern); ok {
			l.checkVariableNaming(p)
			l.checkTypeNaming(p)
			l.declare(p)
		}
	case ast.Expression:
		l.lintExpr(n)
	}
}

func (l *Linter) lintExpr(expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		if b := l.resolve(e.Name()); b != nil {
			b.used = true
		}
	case *ast.Binary:
		l.lintExpr(e.Left)
		l.lintExpr(e.Right)
	case *ast.Unary:
		l.checkRedundantPlus(e)
		l.lintExpr(e.Operand)
	case *ast.Assign:
		// the target is a write, only the value reads names
		l.lintExpr(e.Value)
	case *ast.Block:
		l.checkEmptyBlock(e)
		l.push()
		for _, el := range e.Elements {
			l.lintNode(el)
		}
		l.pop()
	case *ast.If:
		l.lintExpr(e.Cond)
		l.lintExpr(e.Then)
		l.lintExpr(e.Else)
	case *ast.While:
		l.lintExpr(e.Cond)
		l.lintExpr(e.Body)
	}
}

// --- Lint rules ---

// checkUnusedVariables warns about variables of a scope that are never read.
func (l *Linter) checkUnusedVariables(s *scope) {
	for _, b := range s.order {
		if !b.used {
			line, col := b.pattern.Pos()
			l.diag.Warningf(line, col,
				"variable '%s' is declared but never used", b.pattern.Name.Lexeme)
		}
	}
}

// checkEmptyBlock warns if a block has no elements.
func (l *Linter) checkEmptyBlock(b *ast.Block) {
	if len(b.Elements) == 0 {
		line, col := b.Pos()
		l.diag.Warningf(line, col, "block is empty")
	}
}

// checkRedundantPlus warns about unary plus, which never changes its operand.
func (l *Linter) checkRedundantPlus(u *ast.Unary) {
	if u.Op.Lexeme == "+" {
		line, col := u.Pos()
		l.diag.Warningf(line, col, "unary '+' has no effect")
	}
}

// checkShadowing warns if a declaration hides a variable of an enclosing block.
func (l *Linter) checkShadowing(p *ast.TypedPattern) {
	line, col := p.Pos()
	l.diag.Warningf(line, col,
		"variable '%s' shadows a declaration in an outer scope", p.Name.Lexeme)
}

// checkVariableNaming warns if a variable name is not snake_case.
func (l *Linter) checkVariableNaming(p *ast.TypedPattern) {
	if !isSnakeCase(p.Name.Lexeme) {
		line, col := p.Pos()
		l.diag.Warningf(line, col,
			"variable '%s' should use snake_case naming", p.Name.Lexeme)
	}
}

// checkTypeNaming warns if a declared type name is not PascalCase.
func (l *Linter) checkTypeNaming(p *ast.TypedPattern) {
	if p.Declared == nil || isPascalCase(p.TypeName.Lexeme) {
		return
	}
	line := p.TypeName.Line
	col := p.TypeName.Column - len(p.TypeName.Lexeme)
	l.diag.Warningf(line, col,
		"type '%s' should use PascalCase naming", p.TypeName.Lexeme)
}

// --- Naming convention helpers ---

// isSnakeCase returns true if the name follows snake_case conventions:
// lowercase letters, digits, and underscores only, not starting with a digit.
func isSnakeCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLower(r) && r != '_' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isPascalCase returns true if the name starts with an uppercase letter
// and contains no underscores.
func isPascalCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}
