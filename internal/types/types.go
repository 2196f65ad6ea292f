package types

import (
	"fmt"

	"github.com/lhaig/helium/internal/interner"
)

// Type is a resolved type. The set of variants is closed: SingleType and
// ErrorType. Types are values and are never mutated after construction.
type Type interface {
	// Match reports whether the receiver and other denote the same type
	Match(other Type) bool
	// Copy returns an independent instance of the same type
	Copy() Type
	typeNode()
}

// SingleType is a nominal type identified by its interned name
type SingleType struct {
	Name interner.ID
}

// NewSingle creates a SingleType for the given interned name
func NewSingle(name interner.ID) *SingleType {
	return &SingleType{Name: name}
}

func (s *SingleType) Match(other Type) bool {
	o, ok := other.(*SingleType)
	return ok && o != nil && o.Name == s.Name
}

func (s *SingleType) Copy() Type { return &SingleType{Name: s.Name} }
func (s *SingleType) typeNode()  {}

// ErrorType is the poison type assigned after a diagnosed violation. It only
// matches itself.
type ErrorType struct{}

// NewError creates an ErrorType
func NewError() *ErrorType {
	return &ErrorType{}
}

func (e *ErrorType) Match(other Type) bool {
	_, ok := other.(*ErrorType)
	return ok
}

func (e *ErrorType) Copy() Type { return &ErrorType{} }
func (e *ErrorType) typeNode()  {}

// IsError reports whether t is the poison type. A nil type is not an error.
func IsError(t Type) bool {
	_, ok := t.(*ErrorType)
	return ok
}

// IsSingle reports whether t is a nominal type
func IsSingle(t Type) bool {
	_, ok := t.(*SingleType)
	return ok
}

// Visitor dispatches over the Type variants
type Visitor interface {
	VisitSingle(t *SingleType)
	VisitError(t *ErrorType)
}

// Accept calls the Visitor method matching t's variant
func Accept(t Type, v Visitor) {
	switch t := t.(type) {
	case *SingleType:
		v.VisitSingle(t)
	case *ErrorType:
		v.VisitError(t)
	default:
		panic(fmt.Sprintf("types: unhandled type variant %T", t))
	}
}

// Format renders t using the interner for nominal names
func Format(t Type, in *interner.Interner) string {
	f := &formatter{in: in}
	if t == nil {
		return "<nil>"
	}
	Accept(t, f)
	return f.out
}

type formatter struct {
	in  *interner.Interner
	out string
}

func (f *formatter) VisitSingle(t *SingleType) {
	if name, ok := f.in.LookUp(t.Name); ok {
		f.out = name
		return
	}
	f.out = fmt.Sprintf("<type#%d>", t.Name)
}

func (f *formatter) VisitError(t *ErrorType) {
	f.out = "<error>"
}
