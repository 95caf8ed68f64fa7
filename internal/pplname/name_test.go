package pplname

import "testing"

func TestNameEqualIgnoresCase(t *testing.T) {
	a := New("FooBar")
	b := New("foobar")
	if !a.Equal(b) {
		t.Fatalf("expected %q to equal %q", a, b)
	}
	if a.String() != "FooBar" {
		t.Fatalf("expected original spelling preserved, got %q", a.String())
	}
}

func TestIsValidIdentifierAllowsDots(t *testing.T) {
	cases := map[string]bool{
		"fact":     true,
		"x.y":      true,
		"a.1":      true,
		".leading": false,
		"1abc":     false,
		"trailing.": false,
		"":         false,
	}
	for in, want := range cases {
		if got := IsValidIdentifier(in); got != want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTableCaseInsensitiveLookup(t *testing.T) {
	tbl := NewTable[int]()
	tbl.Set(New("Fact"), 1)
	if !tbl.Has(New("FACT")) {
		t.Fatalf("expected case-insensitive hit")
	}
	v, ok := tbl.Get(New("fact"))
	if !ok || v != 1 {
		t.Fatalf("got %v, %v", v, ok)
	}
	tbl.Delete(New("fAcT"))
	if tbl.Has(New("fact")) {
		t.Fatalf("expected delete to remove binding regardless of case")
	}
}

func TestIntSetOrderingAndDedup(t *testing.T) {
	s := NewIntSet(5, 1, 3, 1)
	if s.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", s.Len())
	}
	if got := s.Members(); got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Fatalf("expected sorted members, got %v", got)
	}
	if !s.Contains(3) || s.Contains(4) {
		t.Fatalf("Contains mismatch")
	}
	if mn, _ := s.Min(); mn != 1 {
		t.Fatalf("Min() = %d", mn)
	}
	if mx, _ := s.Max(); mx != 5 {
		t.Fatalf("Max() = %d", mx)
	}
}
