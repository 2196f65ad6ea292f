package interner

// ID is a stable handle for an interned string. IDs are assigned densely in
// interning order, starting at 0.
type ID int

// Interner maps strings to stable IDs and back. It is append-only: once a
// string is interned its ID never changes and is never reused.
type Interner struct {
	ids     map[string]ID
	strings []string
}

// New creates an empty Interner
func New() *Interner {
	return &Interner{
		ids: make(map[string]ID),
	}
}

// Intern returns the ID for s, assigning a new one on first sight
func (in *Interner) Intern(s string) ID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := ID(len(in.strings))
	in.ids[s] = id
	in.strings = append(in.strings, s)
	return id
}

// LookUp returns the string for id. The boolean is false for ids that were
// never issued.
func (in *Interner) LookUp(id ID) (string, bool) {
	if id < 0 || int(id) >= len(in.strings) {
		return "", false
	}
	return in.strings[id], true
}

// Len returns the number of interned strings
func (in *Interner) Len() int {
	return len(in.strings)
}
