package formatter

import (
	"strings"

	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

// FormatInt renders n under ctl's integer column rules (original_source's
// format_int, which delegates straight to formatInternal with no
// fractional part).
func FormatInt(n int32, ctl Control) (string, error) {
	sign := ' '
	digits := itoa(n)
	if n < 0 {
		sign = '-'
		digits = itoa(-n)
	}
	return formatInternal(sign, digits, "", ctl)
}

// FormatFloat renders f under ctl, honoring exponentSymbol only when
// ctl.ExponentSymbol is set (spec.md §4.10's zero-suppress/non-suppress
// column model; original_source's format_float). isRounded prevents the
// single recursive rounding pass from recursing a second time.
func FormatFloat(f float64, isRounded bool, ctl Control, bitSize int) (string, error) {
	parsed := Decompose(f, bitSize)

	if parsed.IsNegative && ctl.IntegerZeroSuppressDigits == 0 {
		return "", pplerr.New(pplerr.Domain, "Format does not support negative numbers")
	}
	availableSuppress := ctl.IntegerZeroSuppressDigits
	if parsed.IsNegative {
		availableSuppress--
	}

	digits := parsed.Digits
	integerDigits := len(digits) - parsed.FractionalDigits
	fractionalDigits := parsed.FractionalDigits
	exponent := 0
	exponentAllowed := ctl.ExponentSymbol != 0

	for exponentAllowed && integerDigits > ctl.IntegerNonSuppressedDigits+availableSuppress {
		integerDigits--
		fractionalDigits++
		exponent++
	}
	for exponentAllowed && integerDigits < ctl.IntegerNonSuppressedDigits && fractionalDigits > 0 {
		fractionalDigits--
		exponent--
		if len(digits) > 0 && digits[0] != '0' {
			integerDigits++
		} else if len(digits) > 0 {
			digits = digits[1:]
		}
	}
	if integerDigits > ctl.IntegerNonSuppressedDigits+availableSuppress {
		return "", pplerr.New(pplerr.Domain, "Significant high-order digits lost")
	}

	for len(digits) < ctl.IntegerNonSuppressedDigits+fractionalDigits {
		digits = "0" + digits
		integerDigits++
	}

	if parsed.IsNegative {
		digits = "-" + digits
		integerDigits++
	}
	for integerDigits < ctl.IntegerNonSuppressedDigits+availableSuppress {
		digits = " " + digits
		integerDigits++
	}

	pos := 0
	var out strings.Builder
	for i := 0; i < integerDigits; i++ {
		out.WriteByte(charAt(digits, pos))
		pos++
	}

	if ctl.DecimalRequired {
		out.WriteByte('.')
		emitted := 0
		limit := ctl.FractionalNonSuppressed + ctl.FractionalZeroSuppressed
		for emitted < limit && emitted < parsed.FractionalDigits {
			out.WriteByte(charAt(digits, pos))
			pos++
			emitted++
		}

		if !isRounded && pos < len(digits) {
			next := digits[pos]
			mustRound := next >= '6' || (next == '5' && !parsed.IsNegative)
			if mustRound {
				roundQuantity := pow10(exponent - emitted)
				if parsed.IsNegative {
					roundQuantity = -roundQuantity
				}
				return FormatFloat(f+roundQuantity, true, ctl, bitSize)
			}
		}

		result := out.String()
		for emitted < ctl.FractionalNonSuppressed {
			result += "0"
			emitted++
		}
		for emitted < limit {
			result += " "
			emitted++
		}

		trailingZeros := 0
		for i := len(result) - 1; i >= 0 && trailingZeros < ctl.FractionalZeroSuppressed && result[i] == '0'; i-- {
			trailingZeros++
		}
		if trailingZeros > 0 {
			b := []byte(result)
			for i := 0; i < trailingZeros; i++ {
				b[len(b)-1-i] = ' '
			}
			result = string(b)
		}
		out.Reset()
		out.WriteString(result)
	}

	if exponentAllowed {
		out.WriteRune(ctl.ExponentSymbol)
		e := exponent
		if e < 0 {
			out.WriteByte('-')
			e = -e
		} else {
			out.WriteByte(' ')
		}
		es := itoaU(e)
		switch {
		case len(es) == 1:
			out.WriteByte('0')
			out.WriteString(es)
		case len(es) == 2:
			out.WriteString(es)
		default:
			return "", pplerr.New(pplerr.Domain, "Significant high-order digits lost")
		}
	}

	return out.String(), nil
}

func formatInternal(sign rune, intPart, floatPart string, ctl Control) (string, error) {
	availableSuppress := ctl.IntegerZeroSuppressDigits
	if sign == '-' {
		availableSuppress--
		if availableSuppress < 0 {
			return "", pplerr.New(pplerr.Domain, "Format does not support negative numbers")
		}
	}
	if len(intPart) > ctl.IntegerNonSuppressedDigits+availableSuppress {
		return "", pplerr.New(pplerr.Domain, "Significant high-order digits lost")
	}
	for len(intPart) < ctl.IntegerNonSuppressedDigits {
		intPart = "0" + intPart
	}
	if sign == '-' {
		intPart = "-" + intPart
	}
	for len(intPart) < ctl.IntegerNonSuppressedDigits+availableSuppress+boolToInt(sign == '-') {
		intPart = " " + intPart
	}

	var out strings.Builder
	out.WriteString(intPart)
	if ctl.DecimalRequired || len(floatPart) > 0 {
		out.WriteByte('.')
		for i := 0; i < ctl.FractionalNonSuppressed; i++ {
			out.WriteByte('0')
		}
		for i := 0; i < ctl.FractionalZeroSuppressed; i++ {
			out.WriteByte(' ')
		}
	}
	return out.String(), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func charAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return '0'
	}
	return s[i]
}

func itoa(n int32) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

func itoaU(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func pow10(e int) float64 {
	r := 1.0
	if e >= 0 {
		for i := 0; i < e; i++ {
			r *= 10
		}
		return r
	}
	for i := 0; i > e; i-- {
		r /= 10
	}
	return r
}

// IFormat applies a single format-spec string to a single value (spec.md
// §6's `iformat`). The Default variant never emits an exponent: its
// Control.ExponentSymbol is always 0, and no exponent letter is chosen
// from the value's numeric type.
func IFormat(spec string, v value.Value) (string, error) {
	ft, err := ParseSpec(spec)
	if err != nil {
		return "", err
	}
	return applyFormat(v, ft)
}

func applyFormat(v value.Value, ft FormatType) (string, error) {
	if ft.Kind == KindFree {
		return value.Display(v), nil
	}
	switch t := v.(type) {
	case value.Int:
		if ft.Kind == KindFixedPoint {
			return FormatInt(t.Value, ft.Control)
		}
		if ft.Kind == KindDefault {
			return FormatInt(t.Value, ft.Control)
		}
		return FormatFloat(float64(t.Value), false, ft.Control, 64)
	case value.Real:
		if ft.Kind == KindFixedPoint {
			return FormatInt(int32(t.Value), ft.Control)
		}
		return FormatFloat(float64(t.Value), false, ft.Control, 32)
	case value.Double:
		if ft.Kind == KindFixedPoint {
			return FormatInt(int32(t.Value), ft.Control)
		}
		return FormatFloat(t.Value, false, ft.Control, 64)
	}
	return "", pplerr.New(pplerr.Type, "Value cannot be formatted")
}

// Format implements the stateful multi-argument `format` built-in
// (spec.md §6): a string argument re-parses the running format spec;
// every other argument is rendered under the most recently parsed spec,
// starting from Default (original_source's format.rs Value::format).
func Format(args []value.Value) (string, error) {
	current := FormatType{Kind: KindDefault}
	var out strings.Builder
	for _, v := range args {
		if seq, ok := v.(*value.Sequence); ok && seq.IsString() {
			ft, err := ParseSpec(seq.GoString())
			if err != nil {
				return "", err
			}
			current = ft
			continue
		}
		s, err := applyFormat(v, current)
		if err != nil {
			return "", err
		}
		out.WriteString(s)
	}
	return out.String(), nil
}
