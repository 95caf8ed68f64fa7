package builtins

import (
	"os"

	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// registerMisc installs feature/exec/exit (spec.md §6 "Feature toggles",
// "exec (evaluate a string), exit") and `tuple`, the variadic
// constructor the parser's "[...]" bracket-literal syntax already emits
// (internal/parser/expressions.go's parseAtom, see DESIGN.md).
func registerMisc(ws *workspace.Workspace) {
	reg(ws, "feature", &metadata.FunctionDescription{Arity: metadata.Arity0, Fn: showFeaturesFn})
	reg(ws, "feature", &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: featureFn})
	reg(ws, "exec", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: execFn})
	reg(ws, "exit", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: exitFn})
	reg(ws, "tuple", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: tupleFn})
}

func showFeaturesFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	var on []string
	for name, v := range ws.Features {
		if v {
			on = append(on, name)
		}
	}
	s := ""
	for i, n := range on {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return value.NewString(s), nil
}

func featureFn(ctx any, args []any) (any, error) {
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
		ws.Features[opt] = true
	case "off", "clear", "OFF", "CLEAR":
		ws.Features[opt] = false
	default:
		return nil, pplerr.New(pplerr.Type, "%s is not a valid feature operation", op)
	}
	return value.NewString(""), nil
}

// execFn evaluates s as a fresh PPL source string within the current
// workspace (spec.md §6 "exec (evaluate a string)"), returning the
// string form of the result (original_source's exec).
func execFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	s, err := stringArg(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	result, err := sequencer.ExecString(ws, s)
	if err != nil {
		return nil, err
	}
	return value.NewString(result.String()), nil
}

func exitFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	code := 0
	if len(args) >= 1 {
		v, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
		if err != nil {
			return nil, err
		}
		n, ok := v.(value.Int)
		if !ok {
			return nil, pplerr.New(pplerr.Type, "exit's argument must be an int")
		}
		code = int(n.Value)
	}
	os.Exit(code)
	return nil, nil
}

// tupleFn builds a variadic general-element Sequence from a bracket
// literal's elements (spec.md §4.8 "tuple"); the parser already emits a
// "tuple" Operation node for "[...]" syntax, so this is the only piece
// still needed to make that syntax live.
func tupleFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	seq := value.NewSequence("general", "general", 1, nil)
	for _, a := range args {
		v, err := sequencer.ResolveToValue(ws, a.(value.Value))
		if err != nil {
			return nil, err
		}
		seq.Append(v)
	}
	return seq, nil
}
