package diagnostic

import (
	"fmt"
	"strings"

	"github.com/lhaig/helium/internal/lexer"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

func (s Severity) label() string {
	switch s {
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// Placement describes how a diagnostic is anchored in the source
type Placement int

const (
	AtPosition  Placement = iota // explicit line and column
	AtToken                      // an ordinary token, quoted in the message
	AtEndOfLine                  // an end-of-line token
	AtEndOfFile                  // the end-of-input token
	Unplaced                     // no source position at all
)

// Diagnostic represents a single compiler error or warning
type Diagnostic struct {
	Severity  Severity
	Placement Placement
	Message   string
	Line      int
	Column    int
	Lexeme    string // offending lexeme for AtToken diagnostics
	File      string
}

// String renders the diagnostic in the reporter's text format. The result
// always ends with a newline.
func (d Diagnostic) String() string {
	label := d.Severity.label()
	switch d.Placement {
	case AtToken:
		return fmt.Sprintf("%s at '%s' in %s:%d:%d:\n\t%s\n", label, d.Lexeme, d.File, d.Line, d.Column, d.Message)
	case AtEndOfLine:
		return fmt.Sprintf("%s at end of line in %s:%d:\n\t%s\n", label, d.File, d.Line, d.Message)
	case AtEndOfFile:
		return fmt.Sprintf("%s at end of file in %s:\n\t%s\n", label, d.File, d.Message)
	case Unplaced:
		return fmt.Sprintf("%s in %s:\n\t%s\n", label, d.File, d.Message)
	default:
		return fmt.Sprintf("%s at %s:%d:%d:\n\t%s\n", label, d.File, d.Line, d.Column, d.Message)
	}
}

// Diagnostics accumulates the messages of one compilation unit. The parser
// and the checker write to it; drivers read it.
type Diagnostics struct {
	name  string
	items []Diagnostic
}

// New creates an empty Diagnostics collection for the source called name
func New(name string) *Diagnostics {
	return &Diagnostics{
		name:  name,
		items: make([]Diagnostic, 0),
	}
}

func (d *Diagnostics) add(item Diagnostic) {
	item.File = d.name
	d.items = append(d.items, item)
}

// ErrorAt adds an error at an explicit position
func (d *Diagnostics) ErrorAt(msg string, line, col int) {
	d.add(Diagnostic{
		Severity:  Error,
		Placement: AtPosition,
		Message:   msg,
		Line:      line,
		Column:    col,
	})
}

// ErrorAtToken adds an error anchored at tok. Token columns point one past
// the lexeme, so the reported column is moved back to its first character.
// End-of-line tokens are reported against the line they terminate.
func (d *Diagnostics) ErrorAtToken(msg string, tok lexer.Token) {
	item := Diagnostic{
		Severity: Error,
		Message:  msg,
		Line:     tok.Line,
		Column:   tok.Column,
	}
	switch tok.Type {
	case lexer.EOL:
		item.Placement = AtEndOfLine
		item.Line = tok.Line - 1
		item.Column = 0
	case lexer.EOF:
		item.Placement = AtEndOfFile
	default:
		item.Placement = AtToken
		item.Lexeme = tok.Lexeme
		item.Column = tok.Column - len(tok.Lexeme)
	}
	d.add(item)
}

// Error adds an error with no source position
func (d *Diagnostics) Error(msg string) {
	d.add(Diagnostic{
		Severity:  Error,
		Placement: Unplaced,
		Message:   msg,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.add(Diagnostic{
		Severity:  Warning,
		Placement: AtPosition,
		Message:   fmt.Sprintf(format, args...),
		Line:      line,
		Column:    col,
	})
}

// HadErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HadErrors() bool {
	return d.ErrorCount() > 0
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	errors := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == Error {
			errors = append(errors, item)
		}
	}
	return errors
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	return d.count(Error)
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	return d.count(Warning)
}

func (d *Diagnostics) count(s Severity) int {
	count := 0
	for _, item := range d.items {
		if item.Severity == s {
			count++
		}
	}
	return count
}

// GetErrors returns the accumulated text of every error, in report order
func (d *Diagnostics) GetErrors() string {
	var builder strings.Builder
	for _, item := range d.Errors() {
		builder.WriteString(item.String())
	}
	return builder.String()
}

// Format returns every diagnostic, errors and warnings alike, in report
// order. Output format:
//
//	Error at 'x' in main.he:3:10:
//		Undeclared identifier
//	Warning at main.he:5:5:
//		variable 'z' is declared but never used
func (d *Diagnostics) Format() string {
	var builder strings.Builder
	for _, item := range d.items {
		builder.WriteString(item.String())
	}
	return builder.String()
}

// Clear removes all diagnostics from the collection
func (d *Diagnostics) Clear() {
	d.items = make([]Diagnostic, 0)
}
