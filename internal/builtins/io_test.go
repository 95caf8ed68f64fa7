package builtins

import (
	"bytes"
	"testing"
)

func TestPrintWritesToWorkspaceOutput(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, `print(1, " ", 2)` + "\n")
	if got := buf.String(); got != "1 2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestIFormatFreeMatchesDisplay(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, `iformat("f", 42)`+"\n")
	if v.String() != "42" {
		t.Fatalf("got %q", v.String())
	}
}

func TestFormatStatefulSpec(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, `format("f", 7)`+"\n")
	if v.String() != "7" {
		t.Fatalf("got %q", v.String())
	}
}

func TestPformatWritesDirectlyWithoutTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, `pformat("f", 7)`+"\n")
	if got := buf.String(); got != "7" {
		t.Fatalf("got %q", got)
	}
}

func TestReplReadIsUnsupportedOutsideRepl(t *testing.T) {
	if _, err := replReadFn(nil, nil); err == nil {
		t.Fatalf("expected ?? to fail outside a REPL")
	}
}
