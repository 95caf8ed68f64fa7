// Package workspace implements the PPL workspace (spec.md §3): the five
// independent symbol tables (datatypes, system functions, user
// functions, selectors, globals), the invocation/value stacks, the
// interrupt flag, and the feature/debug flag sets. It also implements
// parser.Resolver, so the parser can query live operator arity during a
// parse.
//
// Grounded on the teacher's (github.com/cwbudde/go-dws) split between a
// compile-time SymbolTable (internal/ast/symbol_table.go) and a runtime
// Environment (internal/interp/runtime/environment.go); PPL generalizes
// this into five parallel name-keyed tables (spec.md §3 Invariant 1: no
// name collides across datatypes/user-functions/selectors/globals)
// rather than one nested lexical-scope chain, since PPL has no block
// scoping — only workspace globals and one flat per-invocation locals
// table (§4.6).
package workspace

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/graphics"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

// Workspace is the interpreter's entire mutable state (spec.md §3
// "Workspace owns five independent symbol tables...").
type Workspace struct {
	Datatypes   *pplname.Table[*metadata.MetaDataType]
	SystemFuncs *metadata.SystemFunctionTable
	UserFuncs   *pplname.Table[*metadata.FunctionDescription]
	Selectors   *pplname.Table[*value.SelectorSet]
	Globals     *pplname.Table[*value.Cell]

	InvocationStack    []*exec.Invocation
	ValueStack         []value.Value
	LastStatementValue value.Value

	interrupt atomic.Bool

	Features map[string]bool
	Debug    map[string]bool

	// Output is the alternate print destination (spec.md §3); defaults
	// to os.Stdout. The `%` relocate built-in redirects it.
	Output io.Writer

	// Graphics is the workspace's graphics-context handle (spec.md §3);
	// defaults to graphics.NoOpDispatcher so a headless workspace never
	// blocks on an absent worker thread.
	Graphics graphics.Dispatcher
}

// New creates an empty Workspace with the seven builtin datatypes (the
// five scalars, string and general) pre-registered (every other
// datatype is created by `$name =
// ...` definitions, spec.md §4.7).
func New() *Workspace {
	ws := &Workspace{
		Datatypes:   pplname.NewTable[*metadata.MetaDataType](),
		SystemFuncs: metadata.NewSystemFunctionTable(),
		UserFuncs:   pplname.NewTable[*metadata.FunctionDescription](),
		Selectors:   pplname.NewTable[*value.SelectorSet](),
		Globals:     pplname.NewTable[*value.Cell](),
		Features:    make(map[string]bool),
		Debug:       make(map[string]bool),
		Output:      os.Stdout,
		Graphics:    graphics.NoOpDispatcher{},
	}
	for _, m := range builtinScalarDatatypes() {
		ws.Datatypes.Set(pplname.New(m.Name), m)
	}
	return ws
}

func builtinScalarDatatypes() []*metadata.MetaDataType {
	return []*metadata.MetaDataType{
		{Name: "int", Kind: metadata.RootInt},
		{Name: "real", Kind: metadata.RootReal},
		{Name: "double", Kind: metadata.RootDbl},
		{Name: "bool", Kind: metadata.RootBool},
		{Name: "char", Kind: metadata.RootChar},
		{Name: "string", Kind: metadata.RootSequence, SeqElementType: "char", SeqLower: 1},
		{Name: "general", Kind: metadata.RootBuiltinAlternate, Builtin: metadata.BuiltinGeneral},
	}
}

// HasArity implements parser.Resolver: a name is usable at the given
// arity if a system-function overload, a matching user function, or (at
// arity 0) a datatype/global/selector binding exists (spec.md §4.2
// "Operator resolution").
func (ws *Workspace) HasArity(name string, arity int) bool {
	key := pplname.New(name)
	if set, ok := ws.SystemFuncs.Lookup(key); ok && set.HasArity(arity) {
		return true
	}
	if fn, ok := ws.UserFuncs.Get(key); ok && fn.MatchesArity(arity) {
		return true
	}
	if arity == 0 {
		if ws.Datatypes.Has(key) || ws.Globals.Has(key) || ws.Selectors.Has(key) {
			return true
		}
	}
	return false
}

// SetInterrupt is called by an external SIGINT handler (spec.md §5).
func (ws *Workspace) SetInterrupt() {
	ws.interrupt.Store(true)
}

// TestAndClearInterrupt reads-and-clears the interrupt flag, as done
// once per node dispatch (spec.md §4.4/§5 "Suspension points").
func (ws *Workspace) TestAndClearInterrupt() bool {
	return ws.interrupt.Swap(false)
}

// CurrentInvocation returns the top of the invocation stack, or nil.
func (ws *Workspace) CurrentInvocation() *exec.Invocation {
	if len(ws.InvocationStack) == 0 {
		return nil
	}
	return ws.InvocationStack[len(ws.InvocationStack)-1]
}

// PushInvocation pushes a new frame.
func (ws *Workspace) PushInvocation(inv *exec.Invocation) {
	ws.InvocationStack = append(ws.InvocationStack, inv)
}

// PopInvocation pops and returns the top frame.
func (ws *Workspace) PopInvocation() *exec.Invocation {
	n := len(ws.InvocationStack)
	if n == 0 {
		return nil
	}
	inv := ws.InvocationStack[n-1]
	ws.InvocationStack = ws.InvocationStack[:n-1]
	return inv
}

// PushValue pushes v onto the operand stack.
func (ws *Workspace) PushValue(v value.Value) {
	ws.ValueStack = append(ws.ValueStack, v)
}

// PopValue pops and returns the top of the operand stack.
func (ws *Workspace) PopValue() (value.Value, bool) {
	n := len(ws.ValueStack)
	if n == 0 {
		return nil, false
	}
	v := ws.ValueStack[n-1]
	ws.ValueStack = ws.ValueStack[:n-1]
	return v, true
}

// TruncateValueStack pops down to depth (spec.md §4.5 StatementEnd:
// "pop until stack depth matches the entry depth").
func (ws *Workspace) TruncateValueStack(depth int) {
	if depth < len(ws.ValueStack) {
		ws.ValueStack = ws.ValueStack[:depth]
	}
}

// LookupVariable resolves name against the current invocation's FIB
// locals first, then the workspace globals (spec.md §4.5
// IdentifierByValue resolution order).
func (ws *Workspace) LookupVariable(name string) (*value.Cell, bool) {
	key := pplname.New(name)
	if inv := ws.CurrentInvocation(); inv != nil && inv.FIB != nil {
		if cell, ok := inv.FIB.Locals.Get(key); ok {
			return cell, true
		}
	}
	return ws.Globals.Get(key)
}

// ResolveIdentifier looks an identifier spelling up in locals-then-
// globals kind order (variable, datatype, selector, user function,
// system function) and returns the Symbol dispatch pushes (spec.md
// §4.5 IdentifierByValue / IdentifierByReference).
func (ws *Workspace) ResolveIdentifier(name string) value.Symbol {
	key := pplname.New(name)
	if cell, ok := ws.LookupVariable(name); ok {
		return value.Symbol{Spelling: name, Kind: value.ResolvedVariable, Cell: cell}
	}
	if ws.Datatypes.Has(key) {
		return value.Symbol{Spelling: name, Kind: value.ResolvedDatatype}
	}
	if _, ok := ws.Selectors.Get(key); ok {
		return value.Symbol{Spelling: name, Kind: value.ResolvedSelector}
	}
	if ws.UserFuncs.Has(key) {
		return value.Symbol{Spelling: name, Kind: value.ResolvedFunction}
	}
	if ws.SystemFuncs.Has(key) {
		return value.Symbol{Spelling: name, Kind: value.ResolvedFunction}
	}
	return value.Symbol{Spelling: name, Kind: value.Unresolved}
}
