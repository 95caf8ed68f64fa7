package metadata

import "github.com/jeffreyeast/go-ppl/internal/pplname"

// OverloadSet holds every FunctionDescription registered under one name.
// System functions may have several (distinguished by arity); user
// functions hold exactly one.
type OverloadSet struct {
	Descriptions []*FunctionDescription
}

// ByArity returns the first overload accepting argCount arguments, and
// whether one was found (spec.md §4.6 arity dispatch).
func (o *OverloadSet) ByArity(argCount int) (*FunctionDescription, bool) {
	for _, d := range o.Descriptions {
		if d.MatchesArity(argCount) {
			return d, true
		}
	}
	return nil, false
}

// HasArity reports whether any overload accepts n arguments (a fixed
// overload with exactly n, or any variadic overload) — used by the parser to decide monadic/diadic/nullary
// operator parses (spec.md §4.2 "Operator resolution").
func (o *OverloadSet) HasArity(n int) bool {
	_, ok := o.ByArity(n)
	return ok
}

// SystemFunctionTable is the workspace's multi-valued system-function
// symbol table (spec.md §3 Workspace).
type SystemFunctionTable struct {
	byName *pplname.Table[*OverloadSet]
}

// NewSystemFunctionTable creates an empty table.
func NewSystemFunctionTable() *SystemFunctionTable {
	return &SystemFunctionTable{byName: pplname.NewTable[*OverloadSet]()}
}

// Register adds a system function overload under name.
func (t *SystemFunctionTable) Register(name pplname.Name, desc *FunctionDescription) {
	set, ok := t.byName.Get(name)
	if !ok {
		set = &OverloadSet{}
		t.byName.Set(name, set)
	}
	set.Descriptions = append(set.Descriptions, desc)
}

// Lookup returns the overload set bound to name, if any.
func (t *SystemFunctionTable) Lookup(name pplname.Name) (*OverloadSet, bool) {
	return t.byName.Get(name)
}

// Has reports whether any system function is registered under name.
func (t *SystemFunctionTable) Has(name pplname.Name) bool {
	return t.byName.Has(name)
}

// Names returns every registered system function name, in unspecified
// order (used by `help` with no arguments and by workspace dumps).
func (t *SystemFunctionTable) Names() []pplname.Name {
	return t.byName.Names()
}
