package value

import "strings"

// Sequence is an ordered list of cells (spec.md §3): a 1-D array with an
// explicit lower bound, an optional upper bound (absent = variadic), and
// a declared element-datatype name. Strings are Sequences of Char with
// DatatypeName "string". Grounded on the teacher's NewArrayValue
// (internal/interp/array.go), generalized from a fixed Go slice of Value
// to a slice of *Cell so elements are independently addressable and
// aliasable, matching PPL's by-reference Index semantics (§4.5).
type Sequence struct {
	DatatypeName string
	ElementType  string
	Lower        int32
	Upper        *int32 // nil => variadic
	Cells        []*Cell
}

// NewSequence builds a Sequence of the given bounds, filling every cell
// with Empty{}. If upper is nil the sequence starts with zero cells
// (variadic sequences grow via append-style builtins).
func NewSequence(datatypeName, elementType string, lower int32, upper *int32) *Sequence {
	s := &Sequence{DatatypeName: datatypeName, ElementType: elementType, Lower: lower, Upper: upper}
	if upper != nil {
		n := int(*upper-lower) + 1
		if n < 0 {
			n = 0
		}
		s.Cells = make([]*Cell, n)
		for i := range s.Cells {
			s.Cells[i] = NewCell(Empty{})
		}
	}
	return s
}

// NewString builds the built-in "string" Sequence-of-Char from a Go string.
func NewString(s string) *Sequence {
	runes := []rune(s)
	upper := int32(len(runes))
	seq := &Sequence{DatatypeName: "string", ElementType: "char", Lower: 1, Upper: &upper}
	seq.Cells = make([]*Cell, len(runes))
	for i, r := range runes {
		seq.Cells[i] = NewCell(Char{Value: r})
	}
	return seq
}

// TypeName returns the Sequence's declared datatype name.
func (s *Sequence) TypeName() string { return s.DatatypeName }

// IsString reports whether this is the built-in Char sequence.
func (s *Sequence) IsString() bool { return s.DatatypeName == "string" }

// Len returns the current cell count.
func (s *Sequence) Len() int { return len(s.Cells) }

// IndexOf converts a 1-based-from-Lower subscript into a cell-slice
// index, reporting ok=false when the subscript is out of
// [Lower, Lower+Len) (spec.md §8 boundary behavior).
func (s *Sequence) IndexOf(subscript int32) (int, bool) {
	i := int(subscript - s.Lower)
	if i < 0 || i >= len(s.Cells) {
		return 0, false
	}
	return i, true
}

// Append grows a variadic sequence by one cell holding v. Callers must
// only call this on sequences with Upper == nil.
func (s *Sequence) Append(v Value) {
	s.Cells = append(s.Cells, NewCell(v))
	if s.Upper != nil {
		u := *s.Upper + 1
		s.Upper = &u
	}
}

// GoString materializes the Sequence's character cells as a Go string;
// only meaningful when IsString() is true.
func (s *Sequence) GoString() string {
	var sb strings.Builder
	for _, c := range s.Cells {
		if ch, ok := c.Get().(Char); ok {
			sb.WriteRune(ch.Value)
		}
	}
	return sb.String()
}

// String renders the display form: plain unquoted text for strings, bracketed
// comma-joined elements otherwise.
func (s *Sequence) String() string {
	if s.IsString() {
		return s.GoString()
	}
	return s.displayWithPass(NewPass())
}

func (s *Sequence) displayWithPass(pass int64) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, c := range s.Cells {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(DisplayCell(c, pass))
	}
	sb.WriteString("]")
	return sb.String()
}
