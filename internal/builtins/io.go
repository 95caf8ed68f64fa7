package builtins

import (
	"fmt"

	"github.com/jeffreyeast/go-ppl/internal/formatter"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// registerIO installs print/iformat/format/pformat/?? (spec.md §6
// "I/O"). The `?` name is registered separately by registerMetadata as
// the arity-1 "display" alias (original_source registers `?` only once,
// at arity 1); keeping it there avoids two overloads of `?` racing in
// the same OverloadSet. `??` is the REPL's multi-line function-reader
// primitive; the REPL itself is out of spec.md §1's scope, so it is
// registered as an explicit "not supported" stub rather than silently
// absent.
func registerIO(ws *workspace.Workspace) {
	reg(ws, "print", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: printFn})
	reg(ws, "iformat", &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: iformatFn})
	reg(ws, "format", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: formatFn})
	reg(ws, "pformat", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: pformatFn})
	reg(ws, "??", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: replReadFn})
}

func resolveAll(ws *workspace.Workspace, args []any) ([]value.Value, error) {
	vs := make([]value.Value, len(args))
	for i, a := range args {
		v, err := sequencer.ResolveToValue(ws, a.(value.Value))
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

func printFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	vs, err := resolveAll(ws, args)
	if err != nil {
		return nil, err
	}
	for _, v := range vs {
		fmt.Fprint(ws.Output, value.Display(v))
	}
	fmt.Fprintln(ws.Output)
	return value.Empty{}, nil
}

func iformatFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	spec, v, err := resolveTwo(ws, args)
	if err != nil {
		return nil, err
	}
	seq, ok := spec.(*value.Sequence)
	if !ok || !seq.IsString() {
		return nil, pplerr.New(pplerr.Type, "iformat's first argument must be a format-spec string")
	}
	s, err := formatter.IFormat(seq.GoString(), v)
	if err != nil {
		return nil, err
	}
	return value.NewString(s), nil
}

func formatFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	vs, err := resolveAll(ws, args)
	if err != nil {
		return nil, err
	}
	s, err := formatter.Format(vs)
	if err != nil {
		return nil, err
	}
	return value.NewString(s), nil
}

func pformatFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	vs, err := resolveAll(ws, args)
	if err != nil {
		return nil, err
	}
	s, err := formatter.Format(vs)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(ws.Output, s)
	return value.Empty{}, nil
}

func replReadFn(ctx any, args []any) (any, error) {
	return nil, pplerr.New(pplerr.Control, "?? is a REPL primitive and is not available outside the interactive REPL")
}
