package coerce

import (
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/value"
)

func TestStrongestOfPromotes(t *testing.T) {
	r, err := StrongestOf(value.Int{Value: 1}, value.Real{Value: 2}, value.Double{Value: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != RankDouble {
		t.Fatalf("expected RankDouble, got %v", r)
	}
}

func TestStrongestCommutative(t *testing.T) {
	a := Strongest(RankInt, RankReal)
	b := Strongest(RankReal, RankInt)
	if a != b {
		t.Fatalf("expected commutative result")
	}
}

func TestStructureIncompatibleWithScalar(t *testing.T) {
	s := value.NewStructure("point", []string{"x"})
	_, err := StrongestOf(value.Int{Value: 1}, s)
	if err == nil {
		t.Fatalf("expected incompatible-datatype error")
	}
}

func TestCoerceBoolRejectsNonBinaryInt(t *testing.T) {
	if _, err := CoerceTo(value.Int{Value: 2}, "bool"); err == nil {
		t.Fatalf("expected error coercing 2 to bool")
	}
	v, err := CoerceTo(value.Int{Value: 1}, "bool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.(value.Bool); !ok || !b.Value {
		t.Fatalf("expected true, got %#v", v)
	}
}

func TestCoerceCharRequiresDigit(t *testing.T) {
	if _, err := CoerceTo(value.Char{Value: 'x'}, "int"); err == nil {
		t.Fatalf("expected error converting non-digit char to int")
	}
	v, err := CoerceTo(value.Char{Value: '7'}, "int")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(value.Int); !ok || i.Value != 7 {
		t.Fatalf("expected 7, got %#v", v)
	}
}
