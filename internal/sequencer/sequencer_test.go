package sequencer

import (
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/coerce"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// The arithmetic/assignment system functions registered below are
// minimal test doubles standing in for internal/builtins (which imports
// this package): just enough of "+ - * < _" to exercise the dispatch loop's
// stack mechanics, branch/loop lowering, and user-function invocation
// end to end.

func binaryNumeric(name string, apply func(a, b float64) float64) *metadata.FunctionDescription {
	return &metadata.FunctionDescription{
		Name: name, Impl: metadata.ImplSystem, Arity: metadata.Arity2,
		Args: []metadata.Argument{{Name: "a"}, {Name: "b"}},
		Fn: func(ctx any, args []any) (any, error) {
			ws := ctx.(*workspace.Workspace)
			a, err := resolveToValue(ws, args[0].(value.Value))
			if err != nil {
				return nil, err
			}
			b, err := resolveToValue(ws, args[1].(value.Value))
			if err != nil {
				return nil, err
			}
			rank, err := coerce.StrongestOf(a, b)
			if err != nil {
				return nil, err
			}
			fa, _ := coerce.ToFloat64(a)
			fb, _ := coerce.ToFloat64(b)
			return coerce.FromRank(rank, apply(fa, fb)), nil
		},
	}
}

func lessThan() *metadata.FunctionDescription {
	return &metadata.FunctionDescription{
		Name: "<", Impl: metadata.ImplSystem, Arity: metadata.Arity2,
		Args: []metadata.Argument{{Name: "a"}, {Name: "b"}},
		Fn: func(ctx any, args []any) (any, error) {
			ws := ctx.(*workspace.Workspace)
			a, err := resolveToValue(ws, args[0].(value.Value))
			if err != nil {
				return nil, err
			}
			b, err := resolveToValue(ws, args[1].(value.Value))
			if err != nil {
				return nil, err
			}
			fa, _ := coerce.ToFloat64(a)
			fb, _ := coerce.ToFloat64(b)
			return value.Bool{Value: fa < fb}, nil
		},
	}
}

func assign() *metadata.FunctionDescription {
	return &metadata.FunctionDescription{
		Name: "_", Impl: metadata.ImplSystem, Arity: metadata.Arity2,
		Args: []metadata.Argument{{Name: "target", Mechanism: metadata.ByReference}, {Name: "value"}},
		Fn: func(ctx any, args []any) (any, error) {
			ws := ctx.(*workspace.Workspace)
			target := args[0].(value.Value)
			rhs, err := resolveToValue(ws, args[1].(value.Value))
			if err != nil {
				return nil, err
			}
			cell, ok := cellOf(target)
			if !ok {
				sym, ok := target.(value.Symbol)
				if !ok {
					return nil, pplerr.New(pplerr.Type, "left side of _ must be a variable")
				}
				cell = value.NewCell(value.Empty{})
				ws.Globals.Set(pplname.New(sym.Spelling), cell)
			}
			cell.SetValue(rhs)
			return rhs, nil
		},
	}
}

func newTestWorkspace() *workspace.Workspace {
	ws := workspace.New()
	ws.SystemFuncs.Register(pplname.New("+"), binaryNumeric("+", func(a, b float64) float64 { return a + b }))
	ws.SystemFuncs.Register(pplname.New("-"), binaryNumeric("-", func(a, b float64) float64 { return a - b }))
	ws.SystemFuncs.Register(pplname.New("*"), binaryNumeric("*", func(a, b float64) float64 { return a * b }))
	ws.SystemFuncs.Register(pplname.New("<"), lessThan())
	ws.SystemFuncs.Register(pplname.New("_"), assign())
	return ws
}

func TestExecStringAssignsAndEvaluatesArithmetic(t *testing.T) {
	ws := newTestWorkspace()
	v, err := ExecString(ws, "x _ (3 + 4)\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.(value.Int)
	if !ok || i.Value != 7 {
		t.Fatalf("expected 7, got %#v", v)
	}
	cell, ok := ws.Globals.Get(pplname.New("x"))
	if !ok {
		t.Fatalf("expected x to be bound as a global")
	}
	if gi, ok := cell.Get().(value.Int); !ok || gi.Value != 7 {
		t.Fatalf("expected global x=7, got %#v", cell.Get())
	}
}

func TestExecStringIfElseBranches(t *testing.T) {
	ws := newTestWorkspace()
	if _, err := ExecString(ws, "if 1 < 2\nx _ 1\nelse\nx _ 2\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cell, _ := ws.Globals.Get(pplname.New("x"))
	if i, ok := cell.Get().(value.Int); !ok || i.Value != 1 {
		t.Fatalf("expected x=1 (then branch taken), got %#v", cell.Get())
	}
}

func TestExecStringWhileLoopCountsToThree(t *testing.T) {
	ws := newTestWorkspace()
	if _, err := ExecString(ws, "x _ 0\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ExecString(ws, "while x < 3\nx _ (x + 1)\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cell, _ := ws.Globals.Get(pplname.New("x"))
	if i, ok := cell.Get().(value.Int); !ok || i.Value != 3 {
		t.Fatalf("expected x=3, got %#v", cell.Get())
	}
}

func TestExecStringUserFunctionCallReturnsSquare(t *testing.T) {
	ws := newTestWorkspace()
	if _, err := ExecString(ws, "$square (n)\nsquare _ (n * n)\n$\n"); err != nil {
		t.Fatalf("unexpected error defining function: %v", err)
	}
	v, err := ExecString(ws, "square(5)\n")
	if err != nil {
		t.Fatalf("unexpected error calling function: %v", err)
	}
	if i, ok := v.(value.Int); !ok || i.Value != 25 {
		t.Fatalf("expected 25, got %#v", v)
	}
}

func TestExecStringDuplicateDefinitionIsRejected(t *testing.T) {
	ws := newTestWorkspace()
	if _, err := ExecString(ws, "$point = [x:int, y:int]\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ExecString(ws, "$point = [a:int]\n"); err == nil {
		t.Fatalf("expected redefinition of point to be rejected")
	}
}

func TestExecStringStructureConstructionAndFieldAccess(t *testing.T) {
	ws := newTestWorkspace()
	if _, err := ExecString(ws, "$point = [x:int, y:int]\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := ExecString(ws, "point(1,2).y\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(value.Int); !ok || i.Value != 2 {
		t.Fatalf("expected field y=2, got %#v", v)
	}
}
