package parser

import (
	"strings"
	"testing"

	"github.com/lhaig/helium/internal/ast"
	"github.com/lhaig/helium/internal/diagnostic"
	"github.com/lhaig/helium/internal/interner"
)

// parseSource parses input and returns the printed tree and diagnostics
func parseSource(input string) (string, *Parser) {
	diags := diagnostic.New("test")
	in := interner.New()
	p := New(input, diags, in)
	nodes := p.Parse()
	return ast.Print(nodes, in, false), p
}

func mustParse(t *testing.T, input string) string {
	t.Helper()
	out, p := parseSource(input)
	if p.Diagnostics().HadErrors() {
		t.Fatalf("unexpected errors for %q:\n%s", input, p.Diagnostics().GetErrors())
	}
	return out
}

func expectError(t *testing.T, input, msg string) *Parser {
	t.Helper()
	_, p := parseSource(input)
	diags := p.Diagnostics()
	if !diags.HadErrors() {
		t.Fatalf("expected error %q for %q, got none", msg, input)
	}
	found := false
	for _, d := range diags.Errors() {
		if strings.Contains(d.Message, msg) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error containing %q for %q, got:\n%s", msg, input, diags.GetErrors())
	}
	return p
}

func TestParseWhitespaceOnly(t *testing.T) {
	inputs := []string{"", "   ", " \n\n\t ", "// comment\n  // another", "\r\n\r\n"}
	for _, input := range inputs {
		_, p := parseSource(input)
		nodes := New(input, diagnostic.New("test"), interner.New()).Parse()
		if len(nodes) != 0 {
			t.Errorf("%q: expected no statements, got %d", input, len(nodes))
		}
		if p.Diagnostics().Count() != 0 {
			t.Errorf("%q: unexpected diagnostics:\n%s", input, p.Diagnostics().Format())
		}
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"precedence", "2 + 3 * 1", "(+ (int 2) (* (int 3) (int 1)))"},
		{"left associative", "3 / 1 - 2", "(- (/ (int 3) (int 1)) (int 2))"},
		{"subtraction chain", "1 - 2 - 3", "(- (- (int 1) (int 2)) (int 3))"},
		{"nested unary", "-+3", "(- (+ (int 3)))"},
		{"unary binds tighter", "-a+b", "(+ (- (id a)) (id b))"},
		{"unary before factor", "-a*b", "(* (- (id a)) (id b))"},
		{"grouping", "(1 + 2) * 3", "(* (+ (int 1) (int 2)) (int 3))"},
		{"literals", "'c'", "(char 'c')"},
		{"real literal", "234.", "(real 234.)"},
		{"string literal", `"hi"`, `(string "hi")`},
		{"bool literal", "false", "(lit false)"},
		{"unit literal", "unit", "(lit unit)"},
		{"zero", "0", "(int 0)"},
		{"assignment", "k = 1 + 2", "(= (id k) (+ (int 1) (int 2)))"},
		{"right associative assignment", "k = a = b", "(= (id k) (= (id a) (id b)))"},
		{"grouping ignores newlines", "(1\n+\n2\n)", "(+ (int 1) (int 2))"},
		{"assignment in group", "(k = 2)", "(= (id k) (int 2))"},
		{"multiple statements", "1\n2", "(int 1)\n(int 2)"},
		{"blank lines between statements", "\n\n1\n\n\n2\n\n", "(int 1)\n(int 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseInvalidAssignment(t *testing.T) {
	inputs := []string{"1 = a", "a + b = c", "(a) = 3", "-a = 3", "a * b = 1"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p := expectError(t, input, "Invalid assignment target")
			if n := p.Diagnostics().ErrorCount(); n != 1 {
				t.Errorf("expected 1 error, got %d", n)
			}
		})
	}
}

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{\n 3 \n\n 4 \n\n }", "(block (int 3) (int 4))"},
		{"{ 3 \n 4 \n\n }", "(block (int 3) (int 4))"},
		{"{}", "(block)"},
		{"{\n\n}", "(block)"},
		{"{ var k = 1 \n k }", "(block (var k (int 1)) (id k))"},
		{"{ { 1 } }", "(block (block (int 1)))"},
		{"({ 1 \n 2 })", "(block (int 1) (int 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseMissingSeparator(t *testing.T) {
	for _, input := range []string{"{\n 3  4 \n\n }", "1 2", "({ 1 2 })"} {
		t.Run(input, func(t *testing.T) {
			p := expectError(t, input, "Missing separator in a sequence")
			if n := p.Diagnostics().ErrorCount(); n != 1 {
				t.Errorf("expected 1 error, got %d:\n%s", n, p.Diagnostics().GetErrors())
			}
		})
	}
}

func TestParseVarDecl(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var k = 1", "(var k (int 1))"},
		{"var k : Int = 2 + 3", "(var k : Int (+ (int 2) (int 3)))"},
		{"var \n qw \n\n : \n q \n = \n 4", "(var qw : q (int 4))"},
		{"var k = { 1 }", "(var k (block (int 1)))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseVarDeclErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"var 34", "Unexpected token: invalid pattern"},
		{"var k", "Initializer expected"},
		{"var k 1", "Initializer expected"},
		{"var k : 3 = 1", "Invalid type syntax"},
		{"var k =", "Unexpected token"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectError(t, tt.input, tt.msg)
		})
	}
}

func TestParseIfWhile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"if else", "if (c) 1 else 2", "(if (id c) then (int 1) else (int 2))"},
		{"if without else", "if (c) {}", "(if (id c) then (block))"},
		{"else on next line", "if (c) 1\nelse 2", "(if (id c) then (int 1) else (int 2))"},
		{"no else keeps separator", "if (c) 1\n2", "(if (id c) then (int 1))\n(int 2)"},
		{"condition across lines", "if (\nc\n) {}", "(if (id c) then (block))"},
		{"branch on next line", "if (c)\n{ 1 }", "(if (id c) then (block (int 1)))"},
		{"if as operand", "1 + if (c) 2 else 3", "(+ (int 1) (if (id c) then (int 2) else (int 3)))"},
		{"while", "while (c) { k = k + 1 }", "(while (id c) loop (block (= (id k) (+ (id k) (int 1)))))"},
		{"assignment in branch", "if (c) k = 1", "(if (id c) then (= (id k) (int 1)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseIfWhileErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"if c 1", "Missing ( before condition in 'if' expression"},
		{"if (c 1", "Missing ) after condition in 'if' expression"},
		{"while c {}", "Missing ( before condition in 'while' expression"},
		{"while (c {}", "Missing ) after condition in 'while' expression"},
		{"(1 + 2", "Missing closing )"},
		{"{ 1", "Missing closing token"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectError(t, tt.input, tt.msg)
		})
	}
}

func TestParseUnexpectedToken(t *testing.T) {
	for _, input := range []string{")", "else", "*", "1 +\n2", ":"} {
		t.Run(input, func(t *testing.T) {
			expectError(t, input, "Unexpected token")
		})
	}
}

func TestParseRecoversAtStatementBoundary(t *testing.T) {
	input := "1 +\n2\n3 = 4\nvar = 5\nk = 6"
	out, p := parseSource(input)
	diags := p.Diagnostics()

	if n := diags.ErrorCount(); n != 3 {
		t.Fatalf("expected 3 errors, got %d:\n%s", n, diags.GetErrors())
	}
	errs := diags.Errors()
	expected := []string{"Unexpected token", "Invalid assignment target", "Unexpected token: invalid pattern"}
	for i, msg := range expected {
		if errs[i].Message != msg {
			t.Errorf("error %d: expected %q, got %q", i, msg, errs[i].Message)
		}
	}
	if out != "(= (id k) (int 6))" {
		t.Errorf("expected the last statement to survive, got %q", out)
	}
}

func TestParseOneErrorPerStatement(t *testing.T) {
	for _, input := range []string{"(1 + ) + )", "{ 1 2 3 4 }", "if (+) ) )"} {
		t.Run(input, func(t *testing.T) {
			_, p := parseSource(input)
			if n := p.Diagnostics().ErrorCount(); n != 1 {
				t.Errorf("expected 1 error, got %d:\n%s", n, p.Diagnostics().GetErrors())
			}
		})
	}
}

func TestParseLexErrorsAreNotRepeated(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"var k = 0024", "Invalid number literal"},
		{"'ab", "Invalid character literal"},
		{"1 + #", "Unexpected symbol"},
		{`"abc`, `Missing closing "`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, p := parseSource(tt.input)
			errs := p.Diagnostics().Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d:\n%s", len(errs), p.Diagnostics().GetErrors())
			}
			if errs[0].Message != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, errs[0].Message)
			}
		})
	}
}

func TestParseErrorFormatting(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 = a", "Error at '=' in test:1:3:\n\tInvalid assignment target\n"},
		{"1 +\n", "Error at end of line in test:1:\n\tUnexpected token\n"},
		{"1 +", "Error at end of file in test:\n\tUnexpected token\n"},
		{"x\n  0024", "Error at test:2:3:\n\tInvalid number literal\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, p := parseSource(tt.input)
			if got := p.Diagnostics().GetErrors(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseIncomplete(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"{", true},
		{"{ 1 \n", true},
		{"(1 +", true},
		{"if (c)", true},
		{"var k =", true},
		{"1 + 2", false},
		{"1 = 2", false},
		{"{ 1 2 }", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, p := parseSource(tt.input)
			if p.Incomplete() != tt.incomplete {
				t.Errorf("expected Incomplete()=%v", tt.incomplete)
			}
		})
	}
}

func TestParseIdentifierDepthUnresolved(t *testing.T) {
	nodes := Parse("abc", diagnostic.New("test"), interner.New())
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	id, ok := nodes[0].(*ast.Identifier)
	if !ok {
		t.Fatalf("expected *ast.Identifier, got %T", nodes[0])
	}
	if id.Depth != -1 {
		t.Errorf("expected depth -1, got %d", id.Depth)
	}
	if id.Type() != nil {
		t.Errorf("expected no type before checking, got %v", id.Type())
	}
}

func TestParseInternsDeclaredTypes(t *testing.T) {
	in := interner.New()
	Parse("var k : Real = 1.0", diagnostic.New("test"), in)
	if _, ok := in.LookUp(0); !ok {
		t.Fatal("expected the declared type name to be interned")
	}
	if name, _ := in.LookUp(0); name != "Real" {
		t.Errorf("expected Real, got %q", name)
	}
}

func TestParseKeepsDeclaredTypeToken(t *testing.T) {
	nodes := Parse("var k : Real = 1.0", diagnostic.New("test"), interner.New())
	if len(nodes) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(nodes))
	}
	pat := nodes[0].(*ast.VarDecl).Pattern.(*ast.TypedPattern)
	if pat.TypeName.Lexeme != "Real" || pat.TypeName.Line != 1 || pat.TypeName.Column != 13 {
		t.Errorf("unexpected type token %s", pat.TypeName)
	}
}
