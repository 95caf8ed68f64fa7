package builtins

import (
	"bytes"
	"testing"

	pplexec "github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
)

func TestBreakAlwaysFails(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if _, err := breakFn(ws, nil); err == nil {
		t.Fatalf("expected break() to always fail")
	}
}

func TestDebugToggleRejectsUnknownOperation(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if _, err := sequencer.ExecString(ws, `debug("bogus", "x")`+"\n"); err == nil {
		t.Fatalf("expected an unknown debug operation to fail")
	}
}

func TestStackUsageReflectsInvocationDepth(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, "stack.usage()\n")
	if v.String() != "0" {
		t.Fatalf("expected an empty invocation stack between top-level statements, got %q", v.String())
	}
}

func TestTraceTogglesFunctionBodyStatements(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, "$twice (x)\nx * 2\n$\n")
	exec(t, ws, "trace(twice)\n")

	fn, ok := ws.UserFuncs.Get(pplname.New("twice"))
	if !ok {
		t.Fatalf("expected twice to be defined")
	}
	body, ok := fn.UserExecutable.(*pplexec.Executable)
	if !ok {
		t.Fatalf("expected twice's body to be an *exec.Executable")
	}
	for _, s := range body.Statements() {
		if !s.TraceFlag {
			t.Fatalf("expected trace(twice) to set every statement's trace flag")
		}
	}

	exec(t, ws, "untrace(twice)\n")
	for _, s := range body.Statements() {
		if s.TraceFlag {
			t.Fatalf("expected untrace(twice) to clear every statement's trace flag")
		}
	}
}
