package builtins

import (
	"bytes"
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/sequencer"
)

// Grounded directly on original_source/src/tests/tests/chapter7.rs's
// "fact" example: a loop built from a conditional goto to the return
// target (%0) and an unconditional goto back to the loop test (%3),
// rather than a structured while.
func TestGotoBuildsAFactorialLoop(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, "$fact(n); i\n"+
		"fact _ 1.0\n"+
		"i _ n\n"+
		"(i<=0)-->%0\n"+
		"fact _ fact*i\n"+
		"i _ i-1\n"+
		"-->%3\n"+
		"$\n")

	if v := exec(t, ws, "fact(3)\n"); v.String() != "6." {
		t.Fatalf("fact(3): got %q", v.String())
	}
	if v := exec(t, ws, "fact(10)\n"); v.String() != "3628800." {
		t.Fatalf("fact(10): got %q", v.String())
	}
}

func TestGotoOutsideInvocationIsRejected(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if _, err := sequencer.ExecString(ws, "-->%0\n"); err == nil {
		t.Fatalf("expected a top-level goto to fail")
	}
}

// The monadic `%` overload is a pure passthrough on an int (the
// statement-number sigil in "-->%3") and relocates Output when applied
// to a filename string.
func TestPercentPassesThroughInt(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if v := exec(t, ws, "%3\n"); v.String() != "3" {
		t.Fatalf("got %q", v.String())
	}
}

func TestPercentRejectsNonIntNonStringOperand(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if _, err := sequencer.ExecString(ws, "%bool(1)\n"); err == nil {
		t.Fatalf("expected %% applied to a bool to fail")
	}
}
