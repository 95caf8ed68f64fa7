package builtins

import (
	"fmt"

	pplexec "github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// registerDebug installs break/debug/stop/unstop/trace/untrace/
// stack.usage (spec.md §6 "Debug"; original_source's
// execution/system_functions/debug.rs).
func registerDebug(ws *workspace.Workspace) {
	reg(ws, "break", &metadata.FunctionDescription{Arity: metadata.Arity0, Fn: breakFn})
	reg(ws, "debug", &metadata.FunctionDescription{Arity: metadata.Arity0, Fn: showDebugFn})
	reg(ws, "debug", &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: debugFn})
	reg(ws, "stack.usage", &metadata.FunctionDescription{Arity: metadata.Arity0, Fn: stackUsageFn})

	toggles := []struct {
		name string
		set  bool
		trace bool
	}{
		{"stop", true, false},
		{"unstop", false, false},
		{"trace", true, true},
		{"untrace", false, true},
	}
	for _, t := range toggles {
		set, trace := t.set, t.trace
		reg(ws, t.name, &metadata.FunctionDescription{
			Variadic: true, Arity: metadata.ArityVariadic,
			Fn: func(ctx any, args []any) (any, error) {
				return statementToggle(ctx, args, set, trace)
			},
		})
	}
}

func breakFn(ctx any, args []any) (any, error) {
	return nil, pplerr.New(pplerr.Control, "Breakpoint")
}

func showDebugFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	var on []string
	for name, v := range ws.Debug {
		if v {
			on = append(on, name)
		}
	}
	return value.NewString(fmt.Sprint(on)), nil
}

func debugFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	op, err := stringArg(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	opt, err := stringArg(ws, args[1].(value.Value))
	if err != nil {
		return nil, err
	}
	switch op {
	case "on", "set", "ON", "SET":
		ws.Debug[opt] = true
	case "off", "clear", "OFF", "CLEAR":
		ws.Debug[opt] = false
	default:
		return nil, pplerr.New(pplerr.Type, "%s is not a valid debug operation", op)
	}
	return value.Empty{}, nil
}

func stackUsageFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	return value.Int{Value: int32(len(ws.InvocationStack))}, nil
}

// statementToggle implements stop/unstop/trace/untrace: the first
// argument names a user function; remaining arguments (if any) are line
// numbers within its body to toggle, otherwise every statement in the
// body is toggled (original_source's statement_internal).
func statementToggle(ctx any, args []any, value_ bool, isTrace bool) (any, error) {
	ws := ctx.(*workspace.Workspace)
	if len(args) == 0 {
		return nil, pplerr.New(pplerr.Parse, "requires a function name")
	}
	name, err := spellingArg(args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	fn, ok := ws.UserFuncs.Get(pplname.New(name))
	if !ok {
		return nil, pplerr.New(pplerr.Resolution, "%s not found", name)
	}
	exe, ok := fn.UserExecutable.(*pplexec.Executable)
	if !ok {
		return nil, pplerr.New(pplerr.Type, "system functions cannot be stopped")
	}

	apply := func(s *pplexec.Statement) {
		if isTrace {
			s.TraceFlag = value_
		} else {
			s.StopFlag = value_
		}
	}

	if len(args) == 1 {
		for _, s := range exe.Statements() {
			apply(s)
		}
		return nil, nil
	}
	for _, a := range args[1:] {
		lineV, err := sequencer.ResolveToValue(ws, a.(value.Value))
		if err != nil {
			return nil, err
		}
		n, ok := lineV.(value.Int)
		if !ok {
			return nil, pplerr.New(pplerr.Type, "line numbers must be ints")
		}
		stmt, ok := exe.StatementAtLine(int(n.Value))
		if !ok {
			return nil, pplerr.New(pplerr.Domain, "line %d not found", n.Value)
		}
		apply(stmt)
	}
	return nil, nil
}
