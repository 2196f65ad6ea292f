package types

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/lhaig/helium/internal/interner"
)

func TestMatch(t *testing.T) {
	in := interner.New()
	b := NewBuiltins(in)

	tests := []struct {
		name     string
		a, b     Type
		expected bool
	}{
		{"same single", b.Int, NewSingle(in.Intern("Int")), true},
		{"different single", b.Int, b.Real, false},
		{"single vs error", b.Int, NewError(), false},
		{"error vs single", NewError(), b.Int, false},
		{"error vs error", NewError(), NewError(), true},
		{"single vs nil", b.Int, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.a.Match(tt.b), tt.expected)
		})
	}
}

func TestCopyIsIndependent(t *testing.T) {
	in := interner.New()
	orig := NewSingle(in.Intern("Char"))
	cp := orig.Copy()

	be.True(t, cp.Match(orig))
	be.True(t, cp != Type(orig))
	be.True(t, IsError(NewError().Copy()))
}

func TestFormat(t *testing.T) {
	in := interner.New()
	b := NewBuiltins(in)

	be.Equal(t, Format(b.Bool, in), "Bool")
	be.Equal(t, Format(NewError(), in), "<error>")
	be.Equal(t, Format(NewSingle(interner.ID(99)), in), "<type#99>")
	be.Equal(t, Format(nil, in), "<nil>")
}

func TestIsNumeric(t *testing.T) {
	in := interner.New()
	b := NewBuiltins(in)

	be.True(t, b.IsNumeric(b.Int))
	be.True(t, b.IsNumeric(b.Real.Copy()))
	be.True(t, !b.IsNumeric(b.Unit))
	be.True(t, !b.IsNumeric(NewError()))
}
