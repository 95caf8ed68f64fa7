package value

import "strings"

// Selector is a first-class field name (spec.md §3), usable with
// `value[selector]` indexing syntax. The admitting-structures set is
// shared and mutable: when a later structure declaration reuses the
// field name, the same Selector's admitting set grows (spec.md
// Invariant 4). SelectorSet is the shared mutable backing for that set,
// owned by the workspace's selector table and referenced (not copied)
// by every Selector value sampled from it.
type SelectorSet struct {
	FieldName  string
	Structures []string // datatype names admitting this field, in declaration order
}

// Admits reports whether structTypeName is in the admitting set.
func (s *SelectorSet) Admits(structTypeName string) bool {
	for _, n := range s.Structures {
		if equalFold(n, structTypeName) {
			return true
		}
	}
	return false
}

// AddStructure appends structTypeName to the admitting set if not
// already present.
func (s *SelectorSet) AddStructure(structTypeName string) {
	if s.Admits(structTypeName) {
		return
	}
	s.Structures = append(s.Structures, structTypeName)
}

// Selector is the runtime value produced when an identifier resolves to
// a selector binding: a snapshot reference to the shared SelectorSet at
// the time it was sampled (spec.md Invariant 4 — later structure
// declarations are observed through the same *SelectorSet pointer).
type Selector struct {
	Set *SelectorSet
}

func (Selector) TypeName() string { return "selector" }

func (s Selector) String() string {
	if s.Set == nil {
		return "<selector>"
	}
	return s.Set.FieldName + "(" + strings.Join(s.Set.Structures, ",") + ")"
}
