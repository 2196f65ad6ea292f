package checker

import (
	"github.com/lhaig/helium/internal/interner"
	"github.com/lhaig/helium/internal/types"
)

const noParent = -1

// scope is one lexical environment. A nil entry in locals marks a name
// whose declaration failed; uses of it resolve silently to ErrorType.
type scope struct {
	parent int
	locals map[interner.ID]types.Type
}

// scopes is an arena of environments addressed by index. Blocks nest
// strictly, so leaving a scope truncates the arena back to it.
type scopes struct {
	records []scope
	current int
}

func newScopes() *scopes {
	s := &scopes{}
	s.reset()
	return s
}

// reset discards every scope and starts over with an empty root
func (s *scopes) reset() {
	s.records = []scope{{parent: noParent, locals: make(map[interner.ID]types.Type)}}
	s.current = 0
}

// push enters a new child of the current scope
func (s *scopes) push() {
	s.records = append(s.records, scope{
		parent: s.current,
		locals: make(map[interner.ID]types.Type),
	})
	s.current = len(s.records) - 1
}

// pop leaves the current scope and discards it
func (s *scopes) pop() {
	if s.current == 0 {
		panic("checker: cannot pop the root scope")
	}
	parent := s.records[s.current].parent
	s.records = s.records[:s.current]
	s.current = parent
}

// declaredLocally reports whether name is bound in the innermost scope
func (s *scopes) declaredLocally(name interner.ID) bool {
	_, ok := s.records[s.current].locals[name]
	return ok
}

// define binds name in the innermost scope. t may be nil to poison it.
func (s *scopes) define(name interner.ID, t types.Type) {
	s.records[s.current].locals[name] = t
}

// lookup resolves name innermost first. depth is the number of scopes
// walked outward before the binding was found.
func (s *scopes) lookup(name interner.ID) (t types.Type, depth int, ok bool) {
	for i := s.current; i != noParent; i = s.records[i].parent {
		if typ, found := s.records[i].locals[name]; found {
			return typ, depth, true
		}
		depth++
	}
	return nil, -1, false
}
