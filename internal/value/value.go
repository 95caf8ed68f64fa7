// Package value implements the PPL runtime value model (spec.md §3): a
// tagged union of atoms, sequences, structures, selectors, symbolic
// references, by-reference values and logical links, plus the
// cell/envelope addressability layer and the recursion guard used by
// display and comparison.
//
// The design is grounded on the teacher's (github.com/cwbudde/go-dws)
// Value interface (internal/interp/value.go): a small interface
// implemented by one concrete struct per variant, rather than a Go
// interface{} union.
package value

import "fmt"

// Value is implemented by every PPL runtime value variant.
type Value interface {
	// TypeName returns the datatype name of the value (e.g. "int",
	// "string", or a user datatype name for structures/sequences).
	TypeName() string
	// String returns the display form of the value, as produced by
	// `print`/`display`.
	String() string
}

// Empty represents the absence of a value: a statement with no result,
// or an uninitialized local slot.
type Empty struct{}

func (Empty) TypeName() string { return "empty" }
func (Empty) String() string   { return "" }

// Bool is a boolean atom.
type Bool struct{ Value bool }

func (Bool) TypeName() string { return "bool" }
func (b Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Int is a 32-bit signed integer atom.
type Int struct{ Value int32 }

func (Int) TypeName() string { return "int" }
func (i Int) String() string { return fmt.Sprintf("%d", i.Value) }

// Real is a 32-bit float atom.
type Real struct{ Value float32 }

func (Real) TypeName() string { return "real" }
func (r Real) String() string { return formatPlainFloat(float64(r.Value)) }

// Double is a 64-bit float atom.
type Double struct{ Value float64 }

func (Double) TypeName() string { return "double" }
func (d Double) String() string { return formatPlainFloat(d.Value) }

// Char is a Unicode scalar atom.
type Char struct{ Value rune }

func (Char) TypeName() string  { return "char" }
func (c Char) String() string  { return string(c.Value) }

// formatPlainFloat renders a float the way an un-formatted PPL print
// does: trailing zeros trimmed, but always with a decimal point, per the
// spec.md §8 scenario `fact(10) -> "3628800."`.
func formatPlainFloat(f float64) string {
	s := trimFloat(f)
	return s
}
