// Package sequencer implements the single-threaded, cooperative node
// dispatch loop (spec.md §4.4) that walks a workspace's invocation
// stack, plus the per-node-kind dispatch rules (§4.5), user-function
// invocation (§4.6), Definition-node installation (§4.7), and
// Typename(args) construction (§4.8).
//
// ExecString is the workspace's entry point (spec.md §6): rather than a
// method on *workspace.Workspace, it lives here as a free function, so
// that workspace (which parser.Resolver and builtins.Register both
// depend on) never has to import sequencer or builtins itself — keeping
// the dependency graph one-directional (workspace <- parser <-
// sequencer <- builtins/cmd). This mirrors the teacher's layering of a
// standalone internal/interp/runtime.Run driving an internal/ast tree
// the compiler builds independently of it.
package sequencer

import (
	"fmt"

	"github.com/jeffreyeast/go-ppl/internal/coerce"
	"github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/parser"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// ExecString parses source against ws's live resolver, pushes a new
// top-level invocation, and runs it to completion, returning the value
// of the last statement executed (spec.md §6).
func ExecString(ws *workspace.Workspace, source string) (value.Value, error) {
	exe, err := parser.Parse(source, ws)
	if err != nil {
		return nil, err
	}
	ws.PushInvocation(exec.NewInvocation(exe, nil, len(ws.ValueStack)))
	if err := runUntil(ws, len(ws.InvocationStack)-1); err != nil {
		return nil, err
	}
	return ws.LastStatementValue, nil
}

// Run drains the entire invocation stack (used by a caller that pushed
// one or more invocations itself, e.g. a REPL resuming a Stopped frame).
func Run(ws *workspace.Workspace) (value.Value, error) {
	if err := runUntil(ws, 0); err != nil {
		return nil, err
	}
	return ws.LastStatementValue, nil
}

// runUntil drives dispatch until the invocation stack's depth is no
// greater than targetDepth (spec.md §4.4's "while there is a current
// invocation" loop, parameterized so a nested nullary call — spec.md
// §4.5 StatementEnd's "function name as its own last value" rule — can
// recurse into the same loop without re-entering ExecString).
func runUntil(ws *workspace.Workspace, targetDepth int) error {
	for len(ws.InvocationStack) > targetDepth {
		inv := ws.CurrentInvocation()
		if inv == nil {
			break
		}
		if inv.State == exec.Stopped {
			return pplerr.New(pplerr.Control, "Stop requested")
		}
		if ws.TestAndClearInterrupt() {
			inv.State = exec.Stopped
			return pplerr.New(pplerr.Control, "Interrupted")
		}
		if !inv.HasNext() {
			ws.PopInvocation()
			continue
		}

		k := inv.NextNode
		stmt, hasStmt := inv.Executable.StatementOf(k)
		if inv.State != exec.Resumed && hasStmt {
			if first, ok := stmt.FirstNodeIndex(); ok && k == first && stmt.StopFlag {
				inv.State = exec.Stopped
				return pplerr.New(pplerr.Control, "Stop requested")
			}
		}

		inv.State = exec.Executing
		if err := dispatch(ws, inv, k); err != nil {
			return err
		}
		if inv.State == exec.Executing {
			inv.State = exec.NotExecuting
		}

		if hasStmt && stmt.TraceFlag {
			if last, ok := stmt.LastNodeIndex(); ok && k == last {
				fmt.Fprintf(ws.Output, "[%d] %s\n", stmt.Line, ws.LastStatementValue.String())
			}
		}
	}
	return nil
}

// dispatch executes the single node at index k of inv's executable
// (spec.md §4.5), advancing inv.NextNode to its successor unless the
// node itself redirected control flow (branch, pending goto, return).
func dispatch(ws *workspace.Workspace, inv *exec.Invocation, k int) error {
	node := inv.Executable.Nodes[k]
	next := k + 1
	branched := false

	switch node.Kind {
	case exec.NodeValue:
		ws.PushValue(node.Literal)

	case exec.NodeIdentifierByValue:
		ws.PushValue(ws.ResolveIdentifier(node.Ref.Name))

	case exec.NodeIdentifierByReference:
		sym := ws.ResolveIdentifier(node.Ref.Name)
		if sym.Kind == value.ResolvedVariable {
			ws.PushValue(value.ValueByReference{Target: sym.Cell})
		} else {
			ws.PushValue(sym)
		}

	case exec.NodeIndex:
		idx, ok := ws.PopValue()
		if !ok {
			return pplerr.New(pplerr.Control, "value stack underflow in index")
		}
		base, ok := ws.PopValue()
		if !ok {
			return pplerr.New(pplerr.Control, "value stack underflow in index")
		}
		v, err := indexInto(ws, base, idx)
		if err != nil {
			return err
		}
		ws.PushValue(v)

	case exec.NodeOperation:
		if err := dispatchOperation(ws, node.Operation); err != nil {
			return err
		}

	case exec.NodeResolveParameter:
		// Never emitted by the current parser: argument resolution is
		// folded directly into dispatchOperation/invokeUser, since the
		// flat node array already evaluates every argument sub-expression
		// in order before the enclosing Operation node runs. Kept as a
		// dispatchable no-op so the node kind stays meaningful if a
		// future parser revision emits it explicitly.

	case exec.NodeStatementEnd:
		var last value.Value = value.Empty{}
		for len(ws.ValueStack) > inv.EntryStackDepth {
			v, _ := ws.PopValue()
			last = v
		}
		resolved, err := finalizeStatementValue(ws, last)
		if err != nil {
			return err
		}
		ws.LastStatementValue = resolved
		if inv.ApplyPendingGoto() {
			branched = true
		}

	case exec.NodeFunctionReturn:
		ret := value.Value(value.Empty{})
		if inv.FIB != nil {
			if cell, ok := inv.FIB.Locals.Get(pplname.New(inv.FIB.Descriptor.Name)); ok {
				ret = cell.Get()
			}
		}
		ws.PopInvocation()
		ws.PushValue(ret)
		branched = true // this frame is gone; nothing left to advance

	case exec.NodeDefinition:
		if err := installDefinition(ws, node.Definition); err != nil {
			return err
		}

	case exec.NodeStatementLabel, exec.NodeNoop:
		// no runtime effect

	case exec.NodeBranch:
		next = node.Target

	case exec.NodeCBranch:
		cond, ok := ws.PopValue()
		if !ok {
			return pplerr.New(pplerr.Control, "value stack underflow in conditional branch")
		}
		v, err := resolveToValue(ws, cond)
		if err != nil {
			return err
		}
		b, err := coerce.CoerceTo(v, "bool")
		if err != nil {
			return err
		}
		if !b.(value.Bool).Value {
			next = node.Target
		}

	default:
		return pplerr.New(pplerr.Control, "unhandled node kind %d", node.Kind)
	}

	if !branched {
		inv.NextNode = next
	}
	return nil
}

// resolveToValue turns a Symbol/ValueByReference/LogicalLink indirection
// into the concrete Value it denotes right now (spec.md §4.5
// "evaluate_identifier_by_value"); any other Value passes through
// unchanged.
func resolveToValue(ws *workspace.Workspace, v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Symbol:
		switch t.Kind {
		case value.ResolvedVariable:
			return t.Cell.Get(), nil
		case value.ResolvedFunction:
			return callNullary(ws, t.Spelling)
		case value.ResolvedDatatype:
			return value.NewString(t.Spelling), nil
		case value.ResolvedSelector:
			set, ok := ws.Selectors.Get(pplname.New(t.Spelling))
			if !ok {
				return nil, pplerr.New(pplerr.Resolution, "%s is not defined", t.Spelling)
			}
			return value.Selector{Set: set}, nil
		default:
			return nil, pplerr.New(pplerr.Resolution, "%s is not defined", t.Spelling)
		}
	case value.ValueByReference:
		return t.Deref(), nil
	case value.LogicalLink:
		return t.Deref(), nil
	default:
		return v, nil
	}
}

// finalizeStatementValue applies the StatementEnd-specific rule that a
// bare function name left as a statement's final value invokes that
// function with no arguments (spec.md §4.5 StatementEnd).
func finalizeStatementValue(ws *workspace.Workspace, v value.Value) (value.Value, error) {
	if sym, ok := v.(value.Symbol); ok && sym.Kind == value.ResolvedFunction {
		return callNullary(ws, sym.Spelling)
	}
	return resolveToValue(ws, v)
}

// callNullary invokes the function bound to name with zero arguments,
// driving a pushed user invocation to completion if needed.
func callNullary(ws *workspace.Workspace, name string) (value.Value, error) {
	key := pplname.New(name)
	if fn, ok := ws.UserFuncs.Get(key); ok && fn.MatchesArity(0) {
		depth := len(ws.InvocationStack)
		if err := invokeUser(ws, fn, nil); err != nil {
			return nil, err
		}
		if err := runUntil(ws, depth); err != nil {
			return nil, err
		}
		v, ok := ws.PopValue()
		if !ok {
			return value.Empty{}, nil
		}
		return v, nil
	}
	if set, ok := ws.SystemFuncs.Lookup(key); ok {
		if fn, ok := set.ByArity(0); ok {
			return invokeSystemResult(ws, fn, nil)
		}
	}
	return nil, pplerr.New(pplerr.Resolution, "%s is not defined", name)
}

// indexInto implements Index dispatch (spec.md §4.5): dereferencing
// through Symbol/ValueByReference/LogicalLink bases, then producing a
// ValueByReference into the addressed Sequence element or Structure
// field.
func indexInto(ws *workspace.Workspace, base, idx value.Value) (value.Value, error) {
	resolvedIdx, err := resolveToValue(ws, idx)
	if err != nil {
		return nil, err
	}

	switch b := base.(type) {
	case value.Symbol:
		if b.Kind != value.ResolvedVariable {
			return nil, pplerr.New(pplerr.Type, "%s cannot be indexed", b.Spelling)
		}
		return indexInto(ws, b.Cell.Get(), resolvedIdx)
	case value.ValueByReference:
		return indexInto(ws, b.Deref(), resolvedIdx)
	case value.LogicalLink:
		return indexInto(ws, b.Deref(), resolvedIdx)
	case *value.Sequence:
		n, err := coerce.ToInt64(resolvedIdx)
		if err != nil {
			return nil, err
		}
		i, ok := b.IndexOf(int32(n))
		if !ok {
			return nil, pplerr.New(pplerr.Domain, "index %d out of bounds", n)
		}
		return value.ValueByReference{ElementType: b.ElementType, Target: b.Cells[i]}, nil
	case *value.Structure:
		sel, ok := resolvedIdx.(value.Selector)
		if !ok {
			return nil, pplerr.New(pplerr.Type, "structure index must be a selector")
		}
		cell, ok := b.Field(sel.Set.FieldName)
		if !ok {
			return nil, pplerr.New(pplerr.Resolution, "%s has no field %s", b.DatatypeName, sel.Set.FieldName)
		}
		return value.ValueByReference{Target: cell}, nil
	default:
		return nil, pplerr.New(pplerr.Type, "%s is not indexable", base.TypeName())
	}
}

// dispatchOperation implements Operation dispatch (spec.md §4.6): pop
// the already-evaluated argument values (pushed, in order, by the nodes
// that preceded this one in the flat array), then resolve the callee by
// name as a datatype constructor, a selector-as-function, a user
// function, or a system function overload.
func dispatchOperation(ws *workspace.Workspace, op exec.OperationNode) error {
	n := len(op.ArgPositions)
	args := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, ok := ws.PopValue()
		if !ok {
			return pplerr.New(pplerr.Control, "value stack underflow evaluating %s", op.Name)
		}
		args[i] = v
	}

	key := pplname.New(op.Name)

	if mt, ok := ws.Datatypes.Get(key); ok {
		v, err := constructValue(ws, mt, args)
		if err != nil {
			return err
		}
		ws.PushValue(v)
		return nil
	}
	if set, ok := ws.Selectors.Get(key); ok && n == 1 {
		base, err := resolveToValue(ws, args[0])
		if err != nil {
			return err
		}
		v, err := evalSelectorCall(set, base)
		if err != nil {
			return err
		}
		ws.PushValue(v)
		return nil
	}
	if fn, ok := ws.UserFuncs.Get(key); ok && fn.MatchesArity(n) {
		return invokeUser(ws, fn, args)
	}
	if set, ok := ws.SystemFuncs.Lookup(key); ok {
		if fn, ok := set.ByArity(n); ok {
			return invokeSystem(ws, fn, args)
		}
	}
	return pplerr.New(pplerr.Resolution, "wrong number of arguments to %s", op.Name)
}

// evalSelectorCall implements "fieldname(structvalue)" — using a
// selector as a one-argument accessor function (spec.md §4.9 Selector).
func evalSelectorCall(set *value.SelectorSet, base value.Value) (value.Value, error) {
	s, ok := base.(*value.Structure)
	if !ok {
		return nil, pplerr.New(pplerr.Type, "%s is not a structure", base.TypeName())
	}
	if !set.Admits(s.DatatypeName) {
		return nil, pplerr.New(pplerr.Resolution, "%s has no field %s", s.DatatypeName, set.FieldName)
	}
	cell, ok := s.Field(set.FieldName)
	if !ok {
		return nil, pplerr.New(pplerr.Resolution, "%s has no field %s", s.DatatypeName, set.FieldName)
	}
	return cell.Get(), nil
}

// invokeSystem calls the native Go implementation with the raw,
// unresolved arguments (each system function resolves or coerces them
// itself) and — for a non-null result — pushes it (spec.md §4.6).
func invokeSystem(ws *workspace.Workspace, fn *metadata.FunctionDescription, args []value.Value) error {
	v, err := invokeSystemResult(ws, fn, args)
	if err != nil {
		return err
	}
	if v != nil {
		ws.PushValue(v)
	}
	return nil
}

func invokeSystemResult(ws *workspace.Workspace, fn *metadata.FunctionDescription, args []value.Value) (value.Value, error) {
	anyArgs := make([]any, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}
	result, err := fn.Fn(ws, anyArgs)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	v, ok := result.(value.Value)
	if !ok {
		return nil, pplerr.New(pplerr.Control, "system function %s returned a non-Value result", fn.Name)
	}
	return v, nil
}

// invokeUser implements the six-step user-function entry procedure
// (spec.md §4.6): a fresh FIB, the function's own name bound to an Empty
// return slot, each formal bound by its declared mechanism, each
// declared local pre-bound Empty, each statement label bound to its line
// number, and the interrupt flag cleared — then the new Invocation is
// pushed so the enclosing dispatch loop steps into it next.
func invokeUser(ws *workspace.Workspace, fn *metadata.FunctionDescription, args []value.Value) error {
	body, ok := fn.UserExecutable.(*exec.Executable)
	if !ok || body == nil {
		return pplerr.New(pplerr.Control, "%s has no body", fn.Name)
	}

	fib := exec.NewFIB(fn)
	fib.Locals.Set(pplname.New(fn.Name), value.NewCell(value.Empty{}))

	for i, formal := range fn.Args {
		var actual value.Value
		if i < len(args) {
			actual = args[i]
		} else {
			actual = value.Empty{}
		}
		if formal.Mechanism == metadata.ByReference || formal.Mechanism == metadata.ByReferenceCreateIfNeeded {
			if cell, ok := cellOf(actual); ok {
				fib.Locals.Set(pplname.New(formal.Name), cell)
				continue
			}
		}
		v, err := resolveToValue(ws, actual)
		if err != nil {
			return err
		}
		cv, err := assignCoerce(ws, v, formal.DeclaredType)
		if err != nil {
			return err
		}
		fib.Locals.Set(pplname.New(formal.Name), value.NewCell(cv))
	}

	for _, local := range fn.Locals {
		fib.Locals.Set(pplname.New(local), value.NewCell(value.Empty{}))
	}
	for label, line := range fn.Labels {
		fib.Locals.Set(pplname.New(label), value.NewCell(value.Int{Value: int32(line)}))
	}

	ws.TestAndClearInterrupt()
	ws.PushInvocation(exec.NewInvocation(body, fib, len(ws.ValueStack)))
	return nil
}

// cellOf extracts the addressable Cell behind a Symbol/ValueByReference
// actual argument, for ByReference/ByReferenceCreateIfNeeded binding.
func cellOf(v value.Value) (*value.Cell, bool) {
	switch t := v.(type) {
	case value.Symbol:
		if t.Kind == value.ResolvedVariable {
			return t.Cell, true
		}
	case value.ValueByReference:
		if t.Target != nil {
			return t.Target, true
		}
	}
	return nil, false
}

// assignCoerce applies spec.md §4.9's assignability table: scalar
// declared types go through coerce.CoerceTo; "general"/"" accept
// anything; any other declared type must name a datatype the actual
// value's own TypeName already matches (BuiltinAlternate accepts
// anything, per its definition).
func assignCoerce(ws *workspace.Workspace, v value.Value, declaredType string) (value.Value, error) {
	switch declaredType {
	case "", "general":
		return v, nil
	case "int", "real", "double", "bool", "char":
		return coerce.CoerceTo(v, declaredType)
	}
	mt, ok := ws.Datatypes.Get(pplname.New(declaredType))
	if !ok {
		return v, nil
	}
	if mt.Kind == metadata.RootBuiltinAlternate {
		return v, nil
	}
	if !pplname.New(v.TypeName()).Equal(pplname.New(declaredType)) {
		return nil, pplerr.New(pplerr.Type, "value of type %s is not assignable to %s", v.TypeName(), declaredType)
	}
	return v, nil
}

// constructValue implements "Typename(args)" construction (spec.md
// §4.8): each root kind has its own arity and coercion rule.
func constructValue(ws *workspace.Workspace, mt *metadata.MetaDataType, args []value.Value) (value.Value, error) {
	resolved := make([]value.Value, len(args))
	for i, a := range args {
		v, err := resolveToValue(ws, a)
		if err != nil {
			return nil, err
		}
		resolved[i] = v
	}

	switch mt.Kind {
	case metadata.RootInt, metadata.RootReal, metadata.RootDbl, metadata.RootBool, metadata.RootChar:
		if len(resolved) != 1 {
			return nil, pplerr.New(pplerr.Resolution, "wrong number of arguments to %s", mt.Name)
		}
		return coerce.CoerceTo(resolved[0], mt.Name)

	case metadata.RootSequence:
		return constructSequence(mt, resolved)

	case metadata.RootStructure:
		if len(resolved) != len(mt.StructFields) {
			return nil, pplerr.New(pplerr.Resolution, "wrong number of arguments to %s", mt.Name)
		}
		names := make([]string, len(mt.StructFields))
		for i, f := range mt.StructFields {
			names[i] = f.Name
		}
		s := value.NewStructure(mt.Name, names)
		for i, f := range mt.StructFields {
			cv, err := coerce.CoerceTo(resolved[i], f.TypeName)
			if err != nil {
				return nil, err
			}
			s.Members[i].Cell.SetValue(cv)
		}
		return s, nil

	case metadata.RootAlternate:
		if len(resolved) != 1 {
			return nil, pplerr.New(pplerr.Resolution, "wrong number of arguments to %s", mt.Name)
		}
		for _, member := range mt.AltMembers {
			memberMT, ok := ws.Datatypes.Get(pplname.New(member))
			if !ok {
				continue
			}
			if v, err := constructValue(ws, memberMT, resolved); err == nil {
				return v, nil
			}
		}
		return nil, pplerr.New(pplerr.Type, "no alternate member of %s accepts the given argument", mt.Name)

	case metadata.RootBuiltinAlternate:
		if len(resolved) != 1 {
			return nil, pplerr.New(pplerr.Resolution, "wrong number of arguments to %s", mt.Name)
		}
		return resolved[0], nil
	}
	return nil, pplerr.New(pplerr.Type, "cannot construct %s", mt.Name)
}

func constructSequence(mt *metadata.MetaDataType, resolved []value.Value) (value.Value, error) {
	if mt.SeqUpper != nil {
		want := int(*mt.SeqUpper-mt.SeqLower) + 1
		if len(resolved) != want {
			return nil, pplerr.New(pplerr.Resolution, "wrong number of arguments to %s", mt.Name)
		}
	}
	cells := make([]*value.Cell, len(resolved))
	for i, v := range resolved {
		cv, err := coerce.CoerceTo(v, mt.SeqElementType)
		if err != nil {
			return nil, err
		}
		cells[i] = value.NewCell(cv)
	}
	var upper *int32
	if mt.SeqUpper != nil {
		upper = mt.SeqUpper
	} else {
		u := mt.SeqLower + int32(len(resolved)) - 1
		upper = &u
	}
	return &value.Sequence{
		DatatypeName: mt.Name,
		ElementType:  mt.SeqElementType,
		Lower:        mt.SeqLower,
		Upper:        upper,
		Cells:        cells,
	}, nil
}

// installDefinition implements Definition-node installation (spec.md
// §4.7): each of the four forms registers into its symbol table,
// rejecting a name already bound in any of the four name-disjoint
// tables (spec.md Invariant 1).
func installDefinition(ws *workspace.Workspace, d exec.DefinitionNode) error {
	key := pplname.New(d.Name)
	nameInUse := ws.Datatypes.Has(key) || ws.UserFuncs.Has(key) || ws.Selectors.Has(key) || ws.Globals.Has(key)

	switch d.Kind {
	case exec.DefAlternate:
		if nameInUse {
			return pplerr.New(pplerr.Resolution, "%s is already defined", d.Name)
		}
		members := make([]string, d.AlternateMemberCount)
		for i := d.AlternateMemberCount - 1; i >= 0; i-- {
			v, ok := ws.PopValue()
			if !ok {
				return pplerr.New(pplerr.Control, "value stack underflow in alternate definition")
			}
			s, ok := v.(*value.Sequence)
			if !ok || !s.IsString() {
				return pplerr.New(pplerr.Type, "alternate member name must be a string")
			}
			members[i] = s.GoString()
		}
		ws.Datatypes.Set(key, &metadata.MetaDataType{Name: d.Name, Kind: metadata.RootAlternate, AltMembers: members})
		return nil

	case exec.DefSequence:
		if nameInUse {
			return pplerr.New(pplerr.Resolution, "%s is already defined", d.Name)
		}
		ws.Datatypes.Set(key, &metadata.MetaDataType{
			Name: d.Name, Kind: metadata.RootSequence,
			SeqElementType: d.SeqElementType, SeqLower: d.SeqLower, SeqUpper: d.SeqUpper,
		})
		return nil

	case exec.DefStructure:
		if nameInUse {
			return pplerr.New(pplerr.Resolution, "%s is already defined", d.Name)
		}
		ws.Datatypes.Set(key, &metadata.MetaDataType{Name: d.Name, Kind: metadata.RootStructure, StructFields: d.StructFields})
		for _, f := range d.StructFields {
			fkey := pplname.New(f.Name)
			set, ok := ws.Selectors.Get(fkey)
			if !ok {
				set = &value.SelectorSet{FieldName: f.Name}
				ws.Selectors.Set(fkey, set)
			}
			set.AddStructure(d.Name)
		}
		return nil

	case exec.DefFunction:
		if nameInUse {
			return pplerr.New(pplerr.Resolution, "%s is already defined", d.Name)
		}
		ws.UserFuncs.Set(key, d.Func)
		return nil
	}
	return pplerr.New(pplerr.Control, "unknown definition kind")
}

// ResolveToValue exports resolveToValue for internal/builtins: system
// functions receive raw, unresolved popped arguments (spec.md §4.6's
// NodeResolveParameter simplification, see package doc) and must resolve
// a Symbol/ValueByReference/LogicalLink to a concrete Value themselves
// wherever they don't need the underlying addressable Cell.
func ResolveToValue(ws *workspace.Workspace, v value.Value) (value.Value, error) {
	return resolveToValue(ws, v)
}

// CellOf exports cellOf for internal/builtins: the `_`/`__` assignment
// builtins need the addressable Cell behind an unresolved left-hand-side
// argument (a ResolvedVariable Symbol or a ValueByReference), not just
// its current value.
func CellOf(v value.Value) (*value.Cell, bool) {
	return cellOf(v)
}

// AssignCoerce exports assignCoerce for internal/builtins' `make` system
// function, which constructs a fresh variable of a declared datatype the
// same way a by-value parameter binding does (spec.md §4.6/§4.9).
func AssignCoerce(ws *workspace.Workspace, v value.Value, declaredType string) (value.Value, error) {
	return assignCoerce(ws, v, declaredType)
}

// ConstructValue exports constructValue for internal/builtins' `make`
// system function (spec.md §4.8 Typename(args) construction, reused
// outside of the NodeOperation datatype-call path).
func ConstructValue(ws *workspace.Workspace, mt *metadata.MetaDataType, args []value.Value) (value.Value, error) {
	return constructValue(ws, mt, args)
}
