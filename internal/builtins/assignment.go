package builtins

import (
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// registerAssignment installs `_` (copy) and `__` (noncopy/logical-link)
// (spec.md §6 "Assignment", §9 "Assignment operators").
func registerAssignment(ws *workspace.Workspace) {
	reg(ws, "_", &metadata.FunctionDescription{
		Args: []metadata.Argument{{Name: "target", Mechanism: metadata.ByReferenceCreateIfNeeded}, {Name: "value"}},
		Arity: metadata.Arity2, Fn: assign,
	})
	reg(ws, "__", &metadata.FunctionDescription{
		Args: []metadata.Argument{{Name: "target", Mechanism: metadata.ByReferenceCreateIfNeeded}, {Name: "source", Mechanism: metadata.ByReference}},
		Arity: metadata.Arity2, Fn: noncopy,
	})
}

// targetCellOf extracts an addressable Cell from an unresolved
// left-hand-side operand, creating a fresh global binding the first time
// a bare (Unresolved) identifier is assigned to (spec.md §4.5
// IdentifierByReference / §9 "new global on first assignment").
func targetCellOf(ws *workspace.Workspace, target value.Value) (*value.Cell, error) {
	if cell, ok := sequencer.CellOf(target); ok {
		return cell, nil
	}
	sym, ok := target.(value.Symbol)
	if !ok {
		return nil, pplerr.New(pplerr.Type, "left side of assignment must be a variable")
	}
	cell := value.NewCell(value.Empty{})
	ws.Globals.Set(pplname.New(sym.Spelling), cell)
	return cell, nil
}

func assign(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	cell, err := targetCellOf(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	rhs, err := sequencer.ResolveToValue(ws, args[1].(value.Value))
	if err != nil {
		return nil, err
	}
	cell.SetValue(rhs)
	return rhs, nil
}

// envelopeOf finds the Envelope an unresolved right-hand-side operand
// addresses, for `__` to alias (spec.md §8 scenario 6: binding a
// structure field's cell to share a caller's variable's envelope at call
// time, not its cell).
func envelopeOf(v value.Value) (*value.Envelope, bool) {
	switch t := v.(type) {
	case value.ValueByReference:
		if t.Target == nil {
			return nil, false
		}
		return t.Target.Envelope(), true
	case value.Symbol:
		if t.Kind == value.ResolvedVariable && t.Cell != nil {
			return t.Cell.Envelope(), true
		}
	case value.LogicalLink:
		return t.Envelope, true
	}
	return nil, false
}

// noncopy implements `__`: the value inside the target cell's envelope
// is replaced with a LogicalLink indirecting to the source's envelope.
// A later `_` assignment through the target cell overwrites that value
// (the link itself, ordinary copy semantics), so it does NOT write back
// through the link — matching spec.md §8 scenario 6's "x remains 1" outcome.
func noncopy(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	cell, err := targetCellOf(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	env, ok := envelopeOf(args[1].(value.Value))
	if !ok {
		return nil, pplerr.New(pplerr.Type, "right side of __ must be a variable")
	}
	link := value.LogicalLink{Envelope: env}
	cell.SetValue(link)
	return link, nil
}
