package formatter

// Kind is which of the four format-spec grammars a spec string selected
// (spec.md §4.10; original_source's format_parser.rs FormatType enum).
type Kind int

const (
	KindDefault Kind = iota
	KindFixedPoint
	KindReal
	KindDouble
	KindFree
)

// Control holds the column-width/rounding knobs a parsed format spec
// carries (original_source's FormatControl). ExponentSymbol is 0 when
// the spec string never named one — this is what gates whether an
// exponent is ever emitted, independent of which Kind picked the value.
type Control struct {
	IntegerZeroSuppressDigits  int
	IntegerNonSuppressedDigits int
	DecimalRequired            bool
	FractionalNonSuppressed    int
	FractionalZeroSuppressed   int
	ExponentSymbol             rune
}

// FormatType pairs the selected grammar with its parsed column widths.
type FormatType struct {
	Kind    Kind
	Control Control
}

type specState int

const (
	specStart specState = iota
	specCheckingEd
	specEdnum
	specZDone
	specCheckingD
	specDDone
	specDecimal
	specCheckingD2
	specDDone2
	specCheckingZ2
	specZDone2
	specCheckingFull
)

// ParseSpec parses a format-spec string such as "e3z1d.2d" into a
// FormatType (spec.md §4.10; original_source's format_parser.rs grammar:
// [f | (e|d)] [<n>z] [<n>d] [. [<n>d] [<n>z]]).
func ParseSpec(spec string) (FormatType, error) {
	var ft FormatType
	ctl := Control{}
	state := specStart
	number := 0

	for _, c := range spec {
		switch state {
		case specStart:
			switch {
			case c == 'f' || c == 'F':
				ft = FormatType{Kind: KindFree}
				state = specCheckingFull
			case c == 'd' || c == 'D':
				ctl.ExponentSymbol = c
				ft.Kind = KindDouble
				state = specCheckingEd
			case c == 'e' || c == 'E':
				ctl.ExponentSymbol = c
				ft.Kind = KindReal
				state = specCheckingEd
			case isDigit(c):
				number = digitVal(c)
				state = specEdnum
			case c == '.':
				ctl.DecimalRequired = true
				state = specDecimal
			default:
				return ft, invalidFormat()
			}
		case specCheckingEd:
			switch {
			case isDigit(c):
				number = digitVal(c)
				state = specEdnum
			case c == '.':
				ctl.DecimalRequired = true
				state = specDecimal
			default:
				return ft, invalidFormat()
			}
		case specEdnum:
			switch {
			case isDigit(c):
				number = number*10 + digitVal(c)
			case c == 'z' || c == 'Z':
				ctl.IntegerZeroSuppressDigits = number
				state = specZDone
			case c == 'd' || c == 'D':
				ctl.IntegerNonSuppressedDigits = number
				state = specDDone
			default:
				return ft, invalidFormat()
			}
		case specZDone:
			switch {
			case isDigit(c):
				number = digitVal(c)
				state = specCheckingD
			case c == '.':
				ctl.DecimalRequired = true
				state = specDecimal
			default:
				return ft, invalidFormat()
			}
		case specCheckingD:
			switch {
			case isDigit(c):
				number = number*10 + digitVal(c)
			case c == 'd' || c == 'D':
				ctl.IntegerNonSuppressedDigits = number
				state = specDDone
			case c == '.':
				ctl.DecimalRequired = true
				state = specDecimal
			default:
				return ft, invalidFormat()
			}
		case specDDone:
			if c == '.' {
				ctl.DecimalRequired = true
				state = specDecimal
			} else {
				return ft, invalidFormat()
			}
		case specDecimal:
			if isDigit(c) {
				number = digitVal(c)
				state = specCheckingD2
			} else {
				return ft, invalidFormat()
			}
		case specCheckingD2:
			switch {
			case isDigit(c):
				number = number*10 + digitVal(c)
			case c == 'd' || c == 'D':
				ctl.FractionalNonSuppressed = number
				state = specDDone2
			case c == 'z' || c == 'Z':
				ctl.FractionalZeroSuppressed = number
				state = specZDone2
			default:
				return ft, invalidFormat()
			}
		case specDDone2:
			if isDigit(c) {
				number = digitVal(c)
				state = specCheckingZ2
			} else {
				return ft, invalidFormat()
			}
		case specCheckingZ2:
			switch {
			case isDigit(c):
				number = number*10 + digitVal(c)
			case c == 'z' || c == 'Z':
				ctl.FractionalZeroSuppressed = number
				state = specZDone2
			default:
				return ft, invalidFormat()
			}
		case specZDone2, specCheckingFull:
			return ft, invalidFormat()
		}
	}

	switch state {
	case specStart, specCheckingEd, specEdnum, specZDone, specCheckingD, specDDone,
		specCheckingD2, specDDone2, specCheckingZ2, specZDone2, specCheckingFull:
		// stoppable: every state but mid-number-after-a-bare-'.' (specDecimal).
	default:
		return ft, invalidFormat()
	}
	if ft.Kind != KindFree {
		ft.Control = ctl
	}
	return ft, nil
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func digitVal(c rune) int { return int(c - '0') }
