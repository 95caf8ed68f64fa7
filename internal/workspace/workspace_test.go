package workspace

import (
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

func TestNewRegistersScalarDatatypes(t *testing.T) {
	ws := New()
	for _, name := range []string{"int", "Real", "DOUBLE", "bool", "char", "string", "general"} {
		if !ws.Datatypes.Has(pplname.New(name)) {
			t.Fatalf("expected builtin datatype %q to be registered", name)
		}
	}
}

func TestHasArityChecksSystemFunctionOverloads(t *testing.T) {
	ws := New()
	ws.SystemFuncs.Register(pplname.New("+"), &metadata.FunctionDescription{
		Name: "+", Args: []metadata.Argument{{Name: "a"}, {Name: "b"}}, Impl: metadata.ImplSystem, Arity: metadata.Arity2,
	})
	if !ws.HasArity("+", 2) {
		t.Fatalf("expected + to be known at arity 2")
	}
	if ws.HasArity("+", 3) {
		t.Fatalf("did not expect + to be known at arity 3")
	}
}

func TestResolveIdentifierPrefersLocalsOverGlobals(t *testing.T) {
	ws := New()
	ws.Globals.Set(pplname.New("x"), value.NewCell(value.Int{Value: 1}))

	if sym := ws.ResolveIdentifier("x"); sym.Kind != value.ResolvedVariable {
		t.Fatalf("expected global x to resolve as variable, got %v", sym.Kind)
	}

	desc := &metadata.FunctionDescription{Name: "f", Impl: metadata.ImplUser}
	fib := exec.NewFIB(desc)
	fib.Locals.Set(pplname.New("x"), value.NewCell(value.Int{Value: 2}))
	ws.PushInvocation(exec.NewInvocation(exec.NewExecutable(""), fib, 0))

	cell, ok := ws.LookupVariable("x")
	if !ok {
		t.Fatalf("expected x to resolve")
	}
	if i, ok := cell.Get().(value.Int); !ok || i.Value != 2 {
		t.Fatalf("expected local x=2 to shadow global x=1, got %#v", cell.Get())
	}
}

func TestResolveIdentifierUnresolved(t *testing.T) {
	ws := New()
	if sym := ws.ResolveIdentifier("nosuchname"); sym.Kind != value.Unresolved {
		t.Fatalf("expected unresolved, got %v", sym.Kind)
	}
}
