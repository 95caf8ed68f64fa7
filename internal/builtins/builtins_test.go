package builtins

import (
	"bytes"
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// newTestWorkspace returns a fully-registered workspace with its Output
// redirected to buf, so tests can assert on print/pformat/symbol.table
// output exactly as the teacher's interp tests assert on *bytes.Buffer.
func newTestWorkspace(buf *bytes.Buffer) *workspace.Workspace {
	ws := workspace.New()
	ws.Output = buf
	Register(ws)
	return ws
}

func exec(t *testing.T, ws *workspace.Workspace, source string) value.Value {
	t.Helper()
	v, err := sequencer.ExecString(ws, source)
	if err != nil {
		t.Fatalf("ExecString(%q) failed: %v", source, err)
	}
	return v
}

func TestArithmeticAndAssignmentRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, "x _ 3 + 4\n")
	v := exec(t, ws, "x\n")
	if v.String() != "7" {
		t.Fatalf("expected 7, got %s", v.String())
	}
}
