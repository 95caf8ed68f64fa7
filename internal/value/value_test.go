package value

import "testing"

func TestEnvelopeSharedAcrossAliasingCells(t *testing.T) {
	env := NewEnvelope(Int{Value: 1})
	a := &Cell{}
	a.Rebind(env)
	b := &Cell{}
	b.Rebind(env)

	a.SetValue(Int{Value: 99})

	got, ok := b.Get().(Int)
	if !ok || got.Value != 99 {
		t.Fatalf("expected aliasing cell to observe replacement, got %#v", b.Get())
	}
}

func TestSequenceBoundedLength(t *testing.T) {
	upper := int32(5)
	s := NewSequence("ints", "int", 1, &upper)
	if s.Len() != 5 {
		t.Fatalf("expected 5 cells, got %d", s.Len())
	}
	if _, ok := s.IndexOf(0); ok {
		t.Fatalf("expected index 0 (below lower bound 1) to be out of range")
	}
	if i, ok := s.IndexOf(5); !ok || i != 4 {
		t.Fatalf("expected index 5 -> slot 4, got %d %v", i, ok)
	}
	if _, ok := s.IndexOf(6); ok {
		t.Fatalf("expected index 6 to be out of range")
	}
}

func TestVariadicSequenceAllowsZeroLength(t *testing.T) {
	s := NewSequence("general", "general", 1, nil)
	if s.Len() != 0 {
		t.Fatalf("expected variadic sequence to start empty, got %d", s.Len())
	}
	s.Append(Int{Value: 1})
	if s.Len() != 1 {
		t.Fatalf("expected append to grow sequence")
	}
}

func TestDisplayTerminatesOnCycle(t *testing.T) {
	s := NewStructure("node", []string{"next"})
	cell, _ := s.Field("next")
	cell.SetValue(s) // self-reference via shared value (not envelope) still must terminate

	out := s.String()
	if !contains(out, "...") {
		t.Fatalf("expected cyclic display to contain '...', got %q", out)
	}
}

func TestEqualReflexive(t *testing.T) {
	upper := int32(2)
	a := NewSequence("ints", "int", 1, &upper)
	a.Cells[0].SetValue(Int{Value: 1})
	a.Cells[1].SetValue(Int{Value: 2})

	eq, err := Equal(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eq {
		t.Fatalf("expected a value to equal itself")
	}
}

func TestDisplayRendersStringSequenceAsText(t *testing.T) {
	s := NewString("hello")
	if got := Display(s); got != "hello" {
		t.Fatalf("expected Display of a string sequence to render plain text, got %q", got)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
