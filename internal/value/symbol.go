package value

// ResolutionKind classifies what an identifier spelling resolved to at
// the moment it was looked up (spec.md §3 Symbol, §9 "Symbol resolution
// timing").
type ResolutionKind int

const (
	Unresolved ResolutionKind = iota
	ResolvedDatatype
	ResolvedFunction
	ResolvedSelector
	ResolvedVariable
)

// Symbol is a symbolic reference: an identifier's original spelling plus
// a snapshot of what it resolved to when looked up. It is the raw output
// of identifier lookup (IdentifierByValue/IdentifierByReference
// dispatch, spec.md §4.5); most call sites immediately re-resolve it
// into a concrete Value rather than holding onto the Symbol itself.
type Symbol struct {
	Spelling string
	Kind     ResolutionKind
	// Cell is populated when Kind == ResolvedVariable: the variable's
	// cell, so ResolveParameter/evaluate_identifier_by_value can fetch
	// or rebind its envelope without a second lookup.
	Cell *Cell
}

func (Symbol) TypeName() string { return "symbol" }

func (s Symbol) String() string {
	return s.Spelling
}
