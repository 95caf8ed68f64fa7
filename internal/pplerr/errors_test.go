package pplerr

import (
	"strings"
	"testing"
)

func TestFormatProducesCaretLine(t *testing.T) {
	err := New(Resolution, "foo not found").At(Position{Line: 2, Column: 5}, "x_1\nfoo+1", "")
	out := err.Format()
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %q", out)
	}
	if !strings.Contains(lines[len(lines)-1], "foo not found") {
		t.Fatalf("expected trailing message line, got %q", out)
	}
	// caret column 5 means 4 spaces before '^' plus the "NNNN | " prefix.
	caretLine := lines[2]
	if !strings.HasSuffix(strings.TrimRight(caretLine, "\n"), "^") {
		t.Fatalf("expected caret line to end in ^, got %q", caretLine)
	}
}

func TestIsKind(t *testing.T) {
	err := NotFound("bar")
	if !Is(err, Resolution) {
		t.Fatalf("expected Resolution kind")
	}
	if Is(err, Type) {
		t.Fatalf("expected not Type kind")
	}
}
