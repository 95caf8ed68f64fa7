package builtins

import (
	"bytes"
	"math"
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/value"
)

func TestArithmeticWordFormAliases(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	cases := []struct {
		source string
		want   string
	}{
		{"add(3, 4)\n", "7"},
		{"sub(10, 3)\n", "7"},
		{"mul(3, 4)\n", "12"},
		{"div(12, 4)\n", "3"},
		{"power(2, 10)\n", "1024"},
	}
	for _, c := range cases {
		v := exec(t, ws, c.source)
		if v.String() != c.want {
			t.Fatalf("%s: got %q, want %q", c.source, v.String(), c.want)
		}
	}
}

func TestArithmeticMonadicPlusAndMinus(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if v := exec(t, ws, "-5\n"); v.String() != "-5" {
		t.Fatalf("got %q", v.String())
	}
	if v := exec(t, ws, "+5\n"); v.String() != "5" {
		t.Fatalf("got %q", v.String())
	}
}

// Integer division by zero saturates to the dividend's sign rather than
// erroring (spec.md §8 boundary behavior).
func TestIntDivideByZeroSaturates(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	if v := exec(t, ws, "int(7) / int(0)\n"); v.(value.Int).Value != math.MaxInt32 {
		t.Fatalf("got %v", v)
	}
	if v := exec(t, ws, "int(-7) / int(0)\n"); v.(value.Int).Value != math.MinInt32 {
		t.Fatalf("got %v", v)
	}
}

func TestFloatDivideByZeroProducesInf(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, "real(7) / real(0)\n")
	r, ok := v.(value.Real)
	if !ok || !math.IsInf(float64(r.Value), 1) {
		t.Fatalf("expected +Inf, got %#v", v)
	}
}

func TestArithmeticStrongestRankPromotesToDouble(t *testing.T) {
	var buf bytes.Buffer
	ws := newTestWorkspace(&buf)
	v := exec(t, ws, "int(3) + double(0.5)\n")
	d, ok := v.(value.Double)
	if !ok {
		t.Fatalf("expected a double result, got %#v", v)
	}
	if d.Value != 3.5 {
		t.Fatalf("got %v", d.Value)
	}
}
