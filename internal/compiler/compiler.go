package compiler

import (
	"os"

	"github.com/lhaig/helium/internal/ast"
	"github.com/lhaig/helium/internal/checker"
	"github.com/lhaig/helium/internal/diagnostic"
	"github.com/lhaig/helium/internal/interner"
	"github.com/lhaig/helium/internal/linter"
	"github.com/lhaig/helium/internal/parser"
)

// Result holds the output of a compilation
type Result struct {
	Name        string
	Tree        []ast.Node
	Diagnostics *diagnostic.Diagnostics
	Interner    *interner.Interner

	// Incomplete is set when parsing failed only because the input ended
	// inside an open group or block
	Incomplete bool
	// Parsed is set when parsing reported no errors
	Parsed bool
	// Checked is set when the tree went through type checking
	Checked bool
}

// Failed reports whether any error was reported
func (r *Result) Failed() bool {
	return r.Diagnostics.HadErrors()
}

// Print renders the tree, annotated with types when requested and the
// tree was checked
func (r *Result) Print(withTypes bool) string {
	return ast.Print(r.Tree, r.Interner, withTypes && r.Checked)
}

// Lint runs the linter over a tree that parsed cleanly, checked or not. The
// warnings are returned in their own collection, empty when parsing failed.
func (r *Result) Lint() *diagnostic.Diagnostics {
	if !r.Parsed {
		return diagnostic.New(r.Name)
	}
	return linter.Lint(r.Name, r.Tree)
}

// Compile runs the pipeline: parse -> check. name is the source name used
// in diagnostics. Checking only runs when parsing reported nothing, so a
// result never mixes syntax and type errors.
func Compile(name, source string) *Result {
	in := interner.New()
	return compile(name, source, in, checker.New(diagnostic.New(name), in))
}

func compile(name, source string, in *interner.Interner, chk *checker.Checker) *Result {
	res := parse(name, source, in, chk.Diagnostics())
	if !res.Parsed {
		return res
	}

	chk.Check(res.Tree)
	res.Checked = true
	return res
}

// Parse runs the parser alone. The tree is left unannotated, so source the
// checker cannot handle still yields a tree.
func Parse(name, source string) *Result {
	return parse(name, source, interner.New(), diagnostic.New(name))
}

func parse(name, source string, in *interner.Interner, diags *diagnostic.Diagnostics) *Result {
	p := parser.New(source, diags, in)
	res := &Result{
		Name:        name,
		Tree:        p.Parse(),
		Diagnostics: diags,
		Interner:    in,
	}

	if diags.HadErrors() {
		res.Incomplete = p.Incomplete()
		return res
	}
	res.Parsed = true
	return res
}

// CompileFile reads path and compiles its content. A file that cannot be
// read yields a result with a single positionless error.
func CompileFile(path string) *Result {
	return withFile(path, Compile)
}

// ParseFile reads path and parses its content without checking it
func ParseFile(path string) *Result {
	return withFile(path, Parse)
}

func withFile(path string, run func(name, source string) *Result) *Result {
	source, err := os.ReadFile(path)
	if err != nil {
		diags := diagnostic.New(path)
		diags.Error("Unable to read from file: " + path)
		return &Result{
			Name:        path,
			Diagnostics: diags,
			Interner:    interner.New(),
		}
	}
	return run(path, string(source))
}

// Session compiles successive chunks of one interactive program.
// Declarations from earlier chunks stay visible to later ones.
type Session struct {
	name    string
	in      *interner.Interner
	checker *checker.Checker
}

// NewSession creates a session whose diagnostics are reported against name
func NewSession(name string) *Session {
	in := interner.New()
	return &Session{
		name:    name,
		in:      in,
		checker: checker.New(diagnostic.New(name), in),
	}
}

// Compile compiles one chunk. Diagnostics of the previous chunk are
// discarded; declarations are kept even when the chunk had type errors.
func (s *Session) Compile(source string) *Result {
	s.checker.Diagnostics().Clear()
	return compile(s.name, source, s.in, s.checker)
}

// Reset forgets every declaration made in the session
func (s *Session) Reset() {
	s.checker.Reset()
}
