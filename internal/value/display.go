package value

// displayValue renders v for the current recursion pass, delegating to
// the container-aware String()-like renderers for Sequence/Structure so
// that cycles reached through shared Envelopes print "..." instead of
// looping forever (spec.md §4.11).
func displayValue(v Value, pass int64) string {
	switch t := v.(type) {
	case *Sequence:
		if t.IsString() {
			return t.GoString()
		}
		return t.displayWithPass(pass)
	case *Structure:
		return t.displayWithPass(pass)
	default:
		return v.String()
	}
}

// DisplayCell renders the value held by c for the given pass, marking
// c's envelope as visited first so a re-entrant cycle through the same
// Envelope short-circuits to "...".
func DisplayCell(c *Cell, pass int64) string {
	if c == nil {
		return "empty"
	}
	if Enter(c.Envelope(), pass) {
		return "..."
	}
	return displayValue(c.Get(), pass)
}

// Display renders v as a fresh top-level traversal (a new pass id).
func Display(v Value) string {
	if v == nil {
		return ""
	}
	return displayValue(v, NewPass())
}
