package types

import "github.com/lhaig/helium/internal/interner"

// Builtins holds the well-known nominal types. It is built once per
// compilation and shared read-only by every scope.
type Builtins struct {
	Int  *SingleType
	Real *SingleType
	Unit *SingleType
	Char *SingleType
	Bool *SingleType
}

// NewBuiltins interns the well-known type names and returns the registry
func NewBuiltins(in *interner.Interner) *Builtins {
	return &Builtins{
		Int:  NewSingle(in.Intern("Int")),
		Real: NewSingle(in.Intern("Real")),
		Unit: NewSingle(in.Intern("Unit")),
		Char: NewSingle(in.Intern("Char")),
		Bool: NewSingle(in.Intern("Bool")),
	}
}

// IsNumeric reports whether t is Int or Real
func (b *Builtins) IsNumeric(t Type) bool {
	return b.Int.Match(t) || b.Real.Match(t)
}
