package builtins

import (
	"bytes"
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/sequencer"
)

func TestComparisonWordFormAliases(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	cases := []struct {
		source string
		want   string
	}{
		{"eq(3, 3)\n", "true"},
		{"noteq(3, 4)\n", "true"},
		{"less(3, 4)\n", "true"},
		{"lesseq(4, 4)\n", "true"},
		{"gr(5, 4)\n", "true"},
		{"greq(4, 4)\n", "true"},
		{"and(bool(1), bool(0))\n", "false"},
		{"or(bool(1), bool(0))\n", "true"},
	}
	for _, c := range cases {
		v := exec(t, ws, c.source)
		if v.String() != c.want {
			t.Fatalf("%s: got %q, want %q", c.source, v.String(), c.want)
		}
	}
}

// An incompatible-datatype comparison under `=`/`eq` is swallowed to
// false rather than propagated as an error.
func TestEqShimSwallowsIncompatibleDatatypes(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, `3 = "three"`+"\n")
	if v.String() != "false" {
		t.Fatalf("got %q", v.String())
	}
}

// Unlike eq/noteq, every other comparison propagates a type mismatch.
func TestOrderingPropagatesIncompatibleDatatypes(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if _, err := sequencer.ExecString(ws, `3 < "three"`+"\n"); err == nil {
		t.Fatalf("expected an incompatible-datatype error")
	}
}

func TestOrderingComparesStringsLexically(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if v := exec(t, ws, `"abc" < "abd"`+"\n"); v.String() != "true" {
		t.Fatalf("got %q", v.String())
	}
	if v := exec(t, ws, `"abc" < "abc"`+"\n"); v.String() != "false" {
		t.Fatalf("got %q", v.String())
	}
}

func TestInstanceOfMatchesDirectTypeName(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if v := exec(t, ws, `3==int`+"\n"); v.String() != "true" {
		t.Fatalf("got %q", v.String())
	}
	if v := exec(t, ws, `3==string`+"\n"); v.String() != "false" {
		t.Fatalf("got %q", v.String())
	}
}

func TestInstanceOfMatchesAlternateMembers(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	exec(t, ws, "$circle = [r:int]\n")
	exec(t, ws, "$square = [s:int]\n")
	exec(t, ws, "$shape = circle!square\n")
	v := exec(t, ws, "circle(1)==shape\n")
	if v.String() != "true" {
		t.Fatalf("got %q", v.String())
	}
}
