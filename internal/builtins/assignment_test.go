package builtins

import (
	"bytes"
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

func TestAssignmentCreatesGlobalOnFirstUse(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, "x _ 42\n")
	cell, ok := ws.Globals.Get(pplname.New("x"))
	if !ok {
		t.Fatalf("expected x to be created as a global")
	}
	if i, ok := cell.Get().(value.Int); !ok || i.Value != 42 {
		t.Fatalf("got %#v", cell.Get())
	}
}

func TestAssignmentReturnsTheAssignedValue(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if v := exec(t, ws, "x _ 5\n"); v.String() != "5" {
		t.Fatalf("got %q", v.String())
	}
}

// `__` aliases the target's envelope to the source's: writing through
// either cell with `_` later is an ordinary in-place replace, observed
// by both names until one of them is rebound outright (spec.md §8
// scenario 6).
func TestNoncopyAssignmentSharesEnvelopeUntilRebound(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, "x _ 1\n")
	exec(t, ws, "y __ x\n")
	exec(t, ws, "x _ 2\n")

	yCell, ok := ws.Globals.Get(pplname.New("y"))
	if !ok {
		t.Fatalf("expected y to be bound as a global")
	}
	resolved, err := sequencer.ResolveToValue(ws, yCell.Get())
	if err != nil {
		t.Fatalf("unexpected error resolving y: %v", err)
	}
	if i, ok := resolved.(value.Int); !ok || i.Value != 2 {
		t.Fatalf("expected y to observe x's new value 2 through the shared envelope, got %#v", resolved)
	}
}

func TestNoncopyRejectsNonVariableSource(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if _, err := sequencer.ExecString(ws, "y __ 3\n"); err == nil {
		t.Fatalf("expected __ with a non-variable right side to fail")
	}
}
