// Package formatter implements the iformat/format/pformat built-ins'
// engine (spec.md §2 Module K, §4.10): a float decomposer plus a
// format-spec parser and the padded/rounded/exponent rendering they
// drive.
//
// Grounded on original_source/src/execution/value/format/*.rs (the
// teacher repo has no formatter of its own — its diagnostics print via
// plain fmt.Sprintf, see DESIGN.md). The Rust original drives both
// parses through a generic character-at-a-time Rule/State engine
// (format/state_machine.rs); this port keeps the same state names and
// transition table but expresses them as a direct Go switch, since Go
// has no equivalent to cheaply sharing that generic engine across two
// unrelated grammars without an interface per rule.
package formatter

import "strconv"

import "github.com/jeffreyeast/go-ppl/internal/pplerr"

// ParsedFloat is a float64 decomposed into its sign and decimal digit
// string, with no leading zeros (spec.md §4.10 "float decomposer").
type ParsedFloat struct {
	IsNegative       bool
	Digits           string // decimal digits, int part then fraction part, no leading zeros
	FractionalDigits int    // how many of Digits' trailing characters are past the decimal point
}

// Decompose parses f the way original_source's floating_point.rs state
// machine does: strip a leading sign, concatenate the integer and
// fractional digit runs, and drop leading zeros (keeping "0" for the
// value zero). bitSize (32 for a Real, 64 for a Double) picks the
// shortest decimal that round-trips to f's original precision, the way
// Rust's f32/f64 Display impls each print their own type's shortest
// round-trip form rather than f64's once a float32 has been widened.
func Decompose(f float64, bitSize int) ParsedFloat {
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if dot := indexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}
	digits := intPart + fracPart
	fractionalDigits := len(fracPart)

	trimmed := trimLeadingZeros(digits)
	if trimmed == "" {
		return ParsedFloat{IsNegative: false, Digits: "0", FractionalDigits: 0}
	}
	return ParsedFloat{IsNegative: neg, Digits: trimmed, FractionalDigits: fractionalDigits}
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s) && s[i] == '0' {
		i++
	}
	return s[i:]
}

// invalidFormat mirrors the Rust engine's single error message, used
// whenever a state has no rule for the current character.
func invalidFormat() error {
	return pplerr.New(pplerr.Domain, "Invalid format specification")
}
