package builtins

import (
	"bytes"
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/value"
)

func TestFeatureOnOffRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, `feature("on", "strict")`+"\n")
	if !ws.Features["strict"] {
		t.Fatalf("expected feature(\"on\", \"strict\") to set the flag")
	}
	exec(t, ws, `feature("off", "strict")`+"\n")
	if ws.Features["strict"] {
		t.Fatalf("expected feature(\"off\", \"strict\") to clear the flag")
	}
}

func TestFeatureRejectsUnknownOperation(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	args := []any{value.Value(value.NewString("bogus")), value.Value(value.NewString("strict"))}
	if _, err := featureFn(ws, args); err == nil {
		t.Fatalf("expected an unknown feature operation to fail")
	}
}

func TestExecEvaluatesNestedSourceInSameWorkspace(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, `exec("3 + 4")`+"\n")
	if v.String() != "7" {
		t.Fatalf("got %q", v.String())
	}
}

func TestTupleBuildsAGeneralVariadicSequence(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, "[1, 2, 3]\n")
	if v.String() != "[1, 2, 3]" {
		t.Fatalf("got %q", v.String())
	}
}
