// Package builtins implements the PPL built-in function surface (spec.md
// §2 Module I, §6 "Built-in function surface (minimum)"). Register wires
// every system function into a fresh workspace.
//
// Grounded on the teacher's internal/bytecode/vm_builtins.go: one
// Register entrypoint delegating to a handful of registerXBuiltins
// helpers, split one concern per file, each adding entries to a
// case-insensitive name table (here ws.SystemFuncs, there vm.builtins).
//
// System functions receive raw, unresolved arguments off the value stack
// (internal/sequencer's NodeResolveParameter is a no-op, see that
// package's doc) — a popped argument may be a value.Symbol or
// value.ValueByReference rather than a concrete value.Value. Builtins
// that only read their operands call sequencer.ResolveToValue first;
// builtins that write through their operand (the assignment family) call
// sequencer.CellOf instead.
package builtins

import (
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// Register installs the full built-in function surface into ws. Call it
// once, immediately after workspace.New, before parsing any source.
func Register(ws *workspace.Workspace) {
	registerArithmetic(ws)
	registerComparison(ws)
	registerAssignment(ws)
	registerControl(ws)
	registerIO(ws)
	registerMetadata(ws)
	registerDebug(ws)
	registerMisc(ws)
}

// reg is a tiny convenience wrapper around ws.SystemFuncs.Register that
// every registerXBuiltins helper uses, so call sites read as a flat list
// of name/description pairs.
func reg(ws *workspace.Workspace, name string, desc *metadata.FunctionDescription) {
	desc.Name = name
	ws.SystemFuncs.Register(pplname.New(name), desc)
}

// arity2 is shorthand for the common two-fixed-argument, general-typed
// shape most operators use.
func arity2() []metadata.Argument {
	return []metadata.Argument{{Name: "a"}, {Name: "b"}}
}

// arity1 is shorthand for a single general-typed argument.
func arity1() []metadata.Argument {
	return []metadata.Argument{{Name: "a"}}
}

// spellingOf extracts the identifier name an unresolved ByReference
// operand denotes, for builtins that take "the name of a thing" rather
// than its value (`binary`, `unary`, `erase`, `display`, `edit`, `help`).
// A Symbol carries its original spelling regardless of what it resolved
// to; a string literal is accepted directly so `erase("foo")` works too.
func spellingOf(v value.Value) (string, bool) {
	switch t := v.(type) {
	case value.Symbol:
		return t.Spelling, true
	case *value.Sequence:
		if t.IsString() {
			return t.GoString(), true
		}
	}
	return "", false
}

func spellingArg(v value.Value) (string, error) {
	s, ok := spellingOf(v)
	if !ok {
		return "", pplerr.New(pplerr.Type, "expected an identifier or a string naming one")
	}
	return s, nil
}
