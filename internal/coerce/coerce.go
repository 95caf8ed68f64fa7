// Package coerce implements PPL's assignability/coercion rules and the
// "strongest datatype" promotion table (spec.md §4.9). Grounded on the
// teacher's internal/interp/runtime/conversion.go numeric tower
// (ToInteger/ToFloat/ToBoolean/AddNumeric), generalized from a two-level
// int64/float64 tower to PPL's three-level Int/Real/Double ladder.
package coerce

import (
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

// Rank orders the three numeric types for "strongest type" promotion:
// Int < Real < Double, with Char/Bool and string sequences treated as
// Int for arithmetic purposes (spec.md §4.9).
type Rank int

const (
	RankIncompatible Rank = iota
	RankInt
	RankReal
	RankDouble
)

// RankOf returns v's arithmetic rank.
func RankOf(v value.Value) Rank {
	switch t := v.(type) {
	case value.Int, value.Bool, value.Char:
		return RankInt
	case value.Real:
		return RankReal
	case value.Double:
		return RankDouble
	case *value.Sequence:
		if t.IsString() {
			return RankInt
		}
		return RankIncompatible
	default:
		return RankIncompatible
	}
}

// Strongest returns the stronger (commutative, associative) of two
// ranks, per the Int <= Real <= Double ladder.
func Strongest(a, b Rank) Rank {
	if a == RankIncompatible || b == RankIncompatible {
		return RankIncompatible
	}
	if a > b {
		return a
	}
	return b
}

// StrongestOf folds Strongest over every value's rank; Structures and
// non-string sequences are incompatible with scalars (spec.md §4.9).
func StrongestOf(vs ...value.Value) (Rank, error) {
	if len(vs) == 0 {
		return RankIncompatible, pplerr.New(pplerr.Type, "cannot determine strongest type of no values")
	}
	r := RankOf(vs[0])
	for _, v := range vs[1:] {
		r = Strongest(r, RankOf(v))
	}
	if r == RankIncompatible {
		return r, pplerr.New(pplerr.Type, "Incompatible datatype")
	}
	return r, nil
}

// ToInt64 extracts an int64 from a numeric-rank value, for use in
// arithmetic promoted to RankInt.
func ToInt64(v value.Value) (int64, error) {
	switch t := v.(type) {
	case value.Int:
		return int64(t.Value), nil
	case value.Bool:
		if t.Value {
			return 1, nil
		}
		return 0, nil
	case value.Char:
		return int64(t.Value), nil
	}
	return 0, pplerr.New(pplerr.Type, "Cannot convert to int")
}

// ToFloat64 extracts a float64 from any numeric-rank value.
func ToFloat64(v value.Value) (float64, error) {
	switch t := v.(type) {
	case value.Int:
		return float64(t.Value), nil
	case value.Real:
		return float64(t.Value), nil
	case value.Double:
		return t.Value, nil
	case value.Bool:
		if t.Value {
			return 1, nil
		}
		return 0, nil
	case value.Char:
		return float64(t.Value), nil
	}
	return 0, pplerr.New(pplerr.Type, "Cannot convert to float")
}

// FromRank builds a Value of the given rank from a float64 payload
// (used after promoting both operands of an arithmetic op to a common
// rank and computing in float64/int64).
func FromRank(r Rank, f float64) value.Value {
	switch r {
	case RankInt:
		return value.Int{Value: int32(f)}
	case RankReal:
		return value.Real{Value: float32(f)}
	default:
		return value.Double{Value: f}
	}
}

// CoerceTo converts v into the scalar datatype named t ("int", "real",
// "double", "bool", "char"), per the assignability table in spec.md
// §4.9. Structure/Sequence/Alternate/BuiltinAlternate assignability is
// metadata-driven and lives in internal/sequencer (it needs the
// datatype table this package does not have access to).
func CoerceTo(v value.Value, t string) (value.Value, error) {
	switch t {
	case "int":
		return coerceToInt(v)
	case "real":
		f, err := ToFloat64(v)
		if err != nil {
			return nil, err
		}
		return value.Real{Value: float32(f)}, nil
	case "double":
		f, err := ToFloat64(v)
		if err != nil {
			return nil, err
		}
		return value.Double{Value: f}, nil
	case "bool":
		return coerceToBool(v)
	case "char":
		return coerceToChar(v)
	case "general", "":
		return v, nil
	}
	return nil, pplerr.New(pplerr.Type, "Cannot convert")
}

func coerceToInt(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Int:
		return t, nil
	case value.Real:
		return value.Int{Value: int32(t.Value)}, nil
	case value.Double:
		return value.Int{Value: int32(t.Value)}, nil
	case value.Bool:
		if t.Value {
			return value.Int{Value: 1}, nil
		}
		return value.Int{Value: 0}, nil
	case value.Char:
		if t.Value < '0' || t.Value > '9' {
			return nil, pplerr.New(pplerr.Type, "Cannot convert")
		}
		return value.Int{Value: int32(t.Value - '0')}, nil
	}
	return nil, pplerr.New(pplerr.Type, "Cannot convert")
}

func coerceToBool(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Bool:
		return t, nil
	case value.Int:
		if t.Value == 0 || t.Value == 1 {
			return value.Bool{Value: t.Value == 1}, nil
		}
	case value.Real:
		if t.Value == 0 || t.Value == 1 {
			return value.Bool{Value: t.Value == 1}, nil
		}
	case value.Double:
		if t.Value == 0 || t.Value == 1 {
			return value.Bool{Value: t.Value == 1}, nil
		}
	case value.Char:
		switch t.Value {
		case 't', 'T':
			return value.Bool{Value: true}, nil
		case 'f', 'F':
			return value.Bool{Value: false}, nil
		}
	}
	return nil, pplerr.New(pplerr.Type, "Cannot convert")
}

func coerceToChar(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Char:
		return t, nil
	case value.Bool:
		if t.Value {
			return value.Char{Value: 'T'}, nil
		}
		return value.Char{Value: 'F'}, nil
	}
	return nil, pplerr.New(pplerr.Type, "Cannot convert")
}
