package builtins

import (
	"os"

	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// registerControl installs goto/-->/cgoto/cbranch/branch and the `%`
// statement-number/output-relocate overload (spec.md §6 "Control",
// "metadata/workspace"; §9 "labels as int-valued local variables";
// original_source/src/tests/tests/chapter7.rs's "-->%0"/"-->%3" idiom).
//
// A goto target, after resolution, is always a plain Int: either a
// literal statement number passed through `%`, or a label identifier
// resolved to the int-valued local invokeUser bound it to. Target 0 is
// reserved to mean "return from the current function" (every chapter7
// example uses "(...)-->%0" as its base case), routed through the
// enclosing function body's auto-appended FunctionReturn statement
// rather than duplicating sequencer's own return-dispatch logic.
func registerControl(ws *workspace.Workspace) {
	unconditional := metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: gotoUnconditional}
	conditional := metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: gotoConditional}

	for _, name := range []string{"goto", "-->", "branch"} {
		d := unconditional
		reg(ws, name, &d)
	}
	for _, name := range []string{"-->", "cgoto", "cbranch"} {
		d := conditional
		reg(ws, name, &d)
	}
	reg(ws, "%", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: percentOp})
}

func gotoUnconditional(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	target, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	return nil, gotoStatement(ws, target)
}

func gotoConditional(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	cond, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	b, ok := cond.(value.Bool)
	if !ok {
		return nil, pplerr.New(pplerr.Type, "goto condition must be a bool")
	}
	if !b.Value {
		return nil, nil
	}
	target, err := sequencer.ResolveToValue(ws, args[1].(value.Value))
	if err != nil {
		return nil, err
	}
	return nil, gotoStatement(ws, target)
}

func gotoStatement(ws *workspace.Workspace, target value.Value) error {
	n, ok := target.(value.Int)
	if !ok {
		return pplerr.New(pplerr.Type, "goto target must resolve to an int")
	}
	inv := ws.CurrentInvocation()
	if inv == nil {
		return pplerr.New(pplerr.Control, "goto outside any invocation")
	}
	line := int(n.Value)
	if n.Value == 0 {
		if inv.Executable.FunctionReturnLine == 0 {
			return pplerr.New(pplerr.Control, "goto 0 (return) used outside a function body")
		}
		line = inv.Executable.FunctionReturnLine
	}
	stmt, ok := inv.Executable.StatementAtLine(line)
	if !ok {
		return pplerr.New(pplerr.Control, "goto target %d out of range", n.Value)
	}
	first, ok := stmt.FirstNodeIndex()
	if !ok {
		return pplerr.New(pplerr.Control, "goto target %d has no nodes", n.Value)
	}
	inv.SetPendingGoto(first)
	return nil
}

// percentOp is the monadic `%` overload: applied to an int it is a pure
// passthrough (the statement-number sigil in "-->%3"); applied to a
// string it relocates the workspace's Output stream to that file (spec.md
// §6 "% (relocate)").
func percentOp(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	v, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	if i, ok := v.(value.Int); ok {
		return i, nil
	}
	seq, ok := v.(*value.Sequence)
	if !ok || !seq.IsString() {
		return nil, pplerr.New(pplerr.Type, "%% requires an int or a filename string")
	}
	f, err := os.Create(seq.GoString())
	if err != nil {
		return nil, pplerr.New(pplerr.IO, "%s", err.Error())
	}
	ws.Output = f
	return value.Empty{}, nil
}
