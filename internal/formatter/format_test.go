package formatter

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

func TestParseSpecGrammar(t *testing.T) {
	cases := []struct {
		spec string
		want FormatType
	}{
		{"f", FormatType{Kind: KindFree}},
		{"3d", FormatType{Kind: KindDefault, Control: Control{IntegerNonSuppressedDigits: 3}}},
		{"2z3d", FormatType{Kind: KindDefault, Control: Control{IntegerZeroSuppressDigits: 2, IntegerNonSuppressedDigits: 3}}},
		{"3d.2d", FormatType{Kind: KindDefault, Control: Control{IntegerNonSuppressedDigits: 3, DecimalRequired: true, FractionalNonSuppressed: 2}}},
		{"3d.2d1z", FormatType{Kind: KindDefault, Control: Control{IntegerNonSuppressedDigits: 3, DecimalRequired: true, FractionalNonSuppressed: 2, FractionalZeroSuppressed: 1}}},
		{"e2d", FormatType{Kind: KindReal, Control: Control{ExponentSymbol: 'e', IntegerNonSuppressedDigits: 2}}},
		{"d2d", FormatType{Kind: KindDouble, Control: Control{ExponentSymbol: 'd', IntegerNonSuppressedDigits: 2}}},
		{".3d", FormatType{Kind: KindDefault, Control: Control{DecimalRequired: true, FractionalNonSuppressed: 3}}},
	}
	for _, c := range cases {
		got, err := ParseSpec(c.spec)
		if err != nil {
			t.Fatalf("ParseSpec(%q): unexpected error: %v", c.spec, err)
		}
		if got != c.want {
			t.Fatalf("ParseSpec(%q) = %+v, want %+v", c.spec, got, c.want)
		}
	}
}

func TestParseSpecRejectsMalformedInput(t *testing.T) {
	cases := []string{"x", "3zz", "3d.", "3dd", "f3d"}
	for _, spec := range cases {
		if _, err := ParseSpec(spec); err == nil {
			t.Fatalf("ParseSpec(%q): expected an error", spec)
		}
	}
}

func TestFormatIntPadsToColumnWidth(t *testing.T) {
	got, err := FormatInt(7, Control{IntegerNonSuppressedDigits: 3, IntegerZeroSuppressDigits: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "  007" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatIntRejectsDigitsThatDoNotFit(t *testing.T) {
	if _, err := FormatInt(12345, Control{IntegerNonSuppressedDigits: 2}); err == nil {
		t.Fatalf("expected an overflow error")
	}
}

func TestFormatIntRejectsNegativeWithoutSuppressColumn(t *testing.T) {
	if _, err := FormatInt(-7, Control{IntegerNonSuppressedDigits: 1}); err == nil {
		t.Fatalf("expected negative numbers to require a zero-suppress column")
	}
}

func TestFormatFloatRoundsFractionalDigits(t *testing.T) {
	got, err := FormatFloat(3.14159, false, Control{IntegerNonSuppressedDigits: 1, DecimalRequired: true, FractionalNonSuppressed: 2}, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "3.14" {
		t.Fatalf("got %q", got)
	}
}

// FormatFloat's single-retry rounding path (nudge by one unit at the
// last displayed decimal, then reformat once) is only exercised here
// with a next-digit below the rounding threshold, so no actual carry is
// needed.
func TestFormatFloatDoesNotRoundWhenNextDigitIsLow(t *testing.T) {
	got, err := FormatFloat(3.141, false, Control{IntegerNonSuppressedDigits: 1, DecimalRequired: true, FractionalNonSuppressed: 2}, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "3.14" {
		t.Fatalf("got %q", got)
	}
}

func TestIFormatFreeUsesPlainDisplay(t *testing.T) {
	got, err := IFormat("f", value.Int{Value: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "42" {
		t.Fatalf("got %q", got)
	}
}

func TestIFormatRejectsNonNumericValue(t *testing.T) {
	if _, err := IFormat("3d", value.NewString("abc")); err == nil {
		t.Fatalf("expected formatting a string under a numeric spec to fail")
	}
}

// Format's running-spec state machine and its exponent rendering are
// exercised together here via go-snaps, the way the teacher's
// fixture_test.go snapshots rendered interpreter output rather than
// re-asserting every character inline.
func TestFormatRunningSpecState(t *testing.T) {
	cases := []struct {
		name string
		args []value.Value
	}{
		{"plain_int_after_free_spec", []value.Value{value.NewString("f"), value.Int{Value: 7}}},
		{"padded_int", []value.Value{value.NewString("3z2d"), value.Int{Value: 7}}},
		{"fixed_point_double", []value.Value{value.NewString("1d.3d"), value.Double{Value: 3.14159}}},
		{"scientific_real", []value.Value{value.NewString("e1d.2d"), value.Real{Value: 1234.5}}},
		{"spec_reused_across_values", []value.Value{value.NewString("2d"), value.Int{Value: 3}, value.Int{Value: 4}}},
	}
	for _, c := range cases {
		got, err := Format(c.args)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		snaps.MatchSnapshot(t, c.name, got)
	}
}

func TestFormatRejectsColumnOverflowMidStream(t *testing.T) {
	args := []value.Value{value.NewString("2d"), value.Int{Value: 12345}}
	if _, err := Format(args); err == nil {
		t.Fatalf("expected an overflow error")
	}
}
