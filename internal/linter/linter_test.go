package linter

import (
	"strings"
	"testing"

	"github.com/lhaig/helium/internal/diagnostic"
	"github.com/lhaig/helium/internal/interner"
	"github.com/lhaig/helium/internal/parser"
)

func parseAndLint(t *testing.T, source string) []string {
	t.Helper()
	diags := diagnostic.New("test")
	nodes := parser.Parse(source, diags, interner.New())

	if diags.HadErrors() {
		t.Fatalf("Parser errors: %s", diags.GetErrors())
	}

	diag := Lint("test", nodes)
	if diag.HadErrors() {
		t.Fatalf("linter must not report errors: %s", diag.GetErrors())
	}
	var warnings []string
	for _, d := range diag.All() {
		warnings = append(warnings, d.Message)
	}
	return warnings
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func countWarnings(warnings []string, substr string) int {
	n := 0
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			n++
		}
	}
	return n
}

// --- Unused variables ---

func TestUnusedVariables(t *testing.T) {
	tests := []struct {
		name   string
		source string
		unused []string
	}{
		{"read at top level", "var a = 1\na + 1", nil},
		{"never read", "var a = 1", []string{"'a'"}},
		{"only assigned", "var a = 1\na = 2", []string{"'a'"}},
		{"read in nested block", "var a = 1\n{ { a } }", nil},
		{"read in condition", "var a = true\nwhile (a) {\n 1 }", nil},
		{"unused in block", "{ var b = 2\n 3 }", []string{"'b'"}},
		{"initializer reads outer", "var a = 1\n{ var a = a\n a }", nil},
		{"read by assignment value", "var a = 1\nvar b = 2\nb = a\nb", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := parseAndLint(t, tt.source)
			if got := countWarnings(warnings, "never used"); got != len(tt.unused) {
				t.Fatalf("expected %d unused warnings, got %v", len(tt.unused), warnings)
			}
			for _, name := range tt.unused {
				if !containsWarning(warnings, "variable "+name+" is declared but never used") {
					t.Errorf("expected unused warning for %s, got %v", name, warnings)
				}
			}
		})
	}
}

func TestUnusedShadowedOuterVariable(t *testing.T) {
	warnings := parseAndLint(t, "var a = 1\n{ var a = 2\n a }")
	if countWarnings(warnings, "never used") != 1 {
		t.Errorf("expected the outer 'a' to be unused, got %v", warnings)
	}
}

// --- Shadowing ---

func TestShadowing(t *testing.T) {
	warnings := parseAndLint(t, "var a = 1\n{ var a = 2\n a }\na")
	if !containsWarning(warnings, "variable 'a' shadows a declaration in an outer scope") {
		t.Errorf("Expected shadowing warning, got: %v", warnings)
	}
}

func TestSiblingBlocksDoNotShadow(t *testing.T) {
	warnings := parseAndLint(t, "{ var a = 1\n a }\n{ var a = 2\n a }")
	if containsWarning(warnings, "shadows") {
		t.Errorf("Did not expect shadowing warning, got: %v", warnings)
	}
}

// --- Empty blocks ---

func TestEmptyBlock(t *testing.T) {
	warnings := parseAndLint(t, "while (false) {}")
	if !containsWarning(warnings, "block is empty") {
		t.Errorf("Expected empty block warning, got: %v", warnings)
	}
}

func TestNonEmptyBlockNoWarning(t *testing.T) {
	warnings := parseAndLint(t, "while (false) { 1 }")
	if containsWarning(warnings, "block is empty") {
		t.Errorf("Did not expect empty block warning, got: %v", warnings)
	}
}

// --- Unary plus ---

func TestRedundantUnaryPlus(t *testing.T) {
	tests := []struct {
		source string
		count  int
	}{
		{"+1", 1},
		{"-1", 0},
		{"+ +1", 2},
		{"1 + 2", 0},
		{"1 + +2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			warnings := parseAndLint(t, tt.source)
			if got := countWarnings(warnings, "unary '+' has no effect"); got != tt.count {
				t.Errorf("expected %d warnings, got %v", tt.count, warnings)
			}
		})
	}
}

// --- Naming ---

func TestVariableNaming(t *testing.T) {
	warnings := parseAndLint(t, "var myValue = 1\nmyValue")
	if !containsWarning(warnings, "variable 'myValue' should use snake_case naming") {
		t.Errorf("Expected naming warning, got: %v", warnings)
	}

	warnings = parseAndLint(t, "var my_value2 = 1\nmy_value2")
	if containsWarning(warnings, "snake_case") {
		t.Errorf("Did not expect naming warning, got: %v", warnings)
	}
}

func TestTypeNaming(t *testing.T) {
	warnings := parseAndLint(t, "var k : int = 1\nk")
	if !containsWarning(warnings, "type 'int' should use PascalCase naming") {
		t.Errorf("Expected type naming warning, got: %v", warnings)
	}

	warnings = parseAndLint(t, "var k : Int = 1\nk")
	if containsWarning(warnings, "PascalCase") {
		t.Errorf("Did not expect type naming warning, got: %v", warnings)
	}
}

func TestNamingHelpers(t *testing.T) {
	tests := []struct {
		name   string
		snake  bool
		pascal bool
	}{
		{"value", true, false},
		{"my_value", true, false},
		{"myValue", false, false},
		{"Value", false, true},
		{"My_Value", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSnakeCase(tt.name); got != tt.snake {
				t.Errorf("isSnakeCase(%q) = %v", tt.name, got)
			}
			if got := isPascalCase(tt.name); got != tt.pascal {
				t.Errorf("isPascalCase(%q) = %v", tt.name, got)
			}
		})
	}
}

func TestCleanProgramHasNoWarnings(t *testing.T) {
	source := `var total : Int = 0
var step = 2
while (true) {
    total = total + step
}
if (false) total else step`
	warnings := parseAndLint(t, source)
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestWarningPositions(t *testing.T) {
	diags := diagnostic.New("test")
	nodes := parser.Parse("{\n  var unused = 1\n}", diags, interner.New())
	if diags.HadErrors() {
		t.Fatalf("Parser errors: %s", diags.GetErrors())
	}

	got := Lint("test", nodes).Format()
	want := "Warning at test:2:7:\n\tvariable 'unused' is declared but never used\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
