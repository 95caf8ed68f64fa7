// Package pplname provides the case-insensitive identifier type shared by
// every symbol table in the workspace (datatypes, functions, selectors,
// variables, statement labels).
package pplname

import "strings"

// Name is a case-insensitive identifier. Two Names are equal iff their
// lowercased spellings match. The original spelling is preserved for
// display purposes (error messages, workspace dumps).
type Name struct {
	spelling string
}

// New creates a Name from its originally-typed spelling.
func New(spelling string) Name {
	return Name{spelling: spelling}
}

// String returns the name as originally spelled.
func (n Name) String() string {
	return n.spelling
}

// Key returns the normalized (lowercased) form used as a map key in every
// symbol table. Two identifiers differing only in case share a Key.
func (n Name) Key() string {
	return strings.ToLower(n.spelling)
}

// Equal reports whether two Names denote the same identifier, ignoring case.
func (n Name) Equal(o Name) bool {
	return n.Key() == o.Key()
}

// IsZero reports whether this Name was never assigned a spelling.
func (n Name) IsZero() bool {
	return n.spelling == ""
}

// IsValidIdentifier reports whether s is lexically a legal PPL identifier:
// alpha-initial, alpha/digit/'.' continuation (a trailing '.' is not part
// of the identifier; it is consumed only when followed by alpha/digit).
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if !isAlpha(runes[0]) {
		return false
	}
	for i := 1; i < len(runes); i++ {
		r := runes[i]
		if isAlpha(r) || isDigit(r) {
			continue
		}
		if r == '.' && i+1 < len(runes) && (isAlpha(runes[i+1]) || isDigit(runes[i+1])) {
			continue
		}
		return false
	}
	return true
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Table is a case-insensitive, single-valued symbol table mapping Name to V.
// It is the backing store for datatypes, selectors, and global/local
// variables — every table in the workspace where a name resolves to at
// most one binding.
type Table[V any] struct {
	entries map[string]tableEntry[V]
}

type tableEntry[V any] struct {
	name  Name
	value V
}

// NewTable creates an empty Table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{entries: make(map[string]tableEntry[V])}
}

// Get looks up name, returning the stored value and whether it was present.
func (t *Table[V]) Get(name Name) (V, bool) {
	e, ok := t.entries[name.Key()]
	return e.value, ok
}

// Has reports whether name is bound.
func (t *Table[V]) Has(name Name) bool {
	_, ok := t.entries[name.Key()]
	return ok
}

// Set binds name to value, overwriting any prior binding.
func (t *Table[V]) Set(name Name, value V) {
	t.entries[name.Key()] = tableEntry[V]{name: name, value: value}
}

// Delete removes name's binding, if any.
func (t *Table[V]) Delete(name Name) {
	delete(t.entries, name.Key())
}

// Len returns the number of bound names.
func (t *Table[V]) Len() int {
	return len(t.entries)
}

// Names returns every bound Name, in unspecified order.
func (t *Table[V]) Names() []Name {
	out := make([]Name, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.name)
	}
	return out
}

// Range calls f for every binding, stopping early if f returns false.
func (t *Table[V]) Range(f func(name Name, value V) bool) {
	for _, e := range t.entries {
		if !f(e.name, e.value) {
			return
		}
	}
}
