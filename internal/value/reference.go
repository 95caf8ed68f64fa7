package value

// ValueByReference is an addressable reference to a Cell, annotated with
// the reference's declared element type (spec.md §3). It is what
// Index dispatch pushes (§4.5) so the caller may assign into it, and
// what a ByReference formal parameter binds to when aliasing a caller's
// variable (§4.6).
type ValueByReference struct {
	ElementType string
	Target      *Cell
}

func (ValueByReference) TypeName() string { return "reference" }

func (r ValueByReference) String() string {
	if r.Target == nil {
		return "<dangling reference>"
	}
	return r.Target.Get().String()
}

// Deref returns the value currently held by the referenced cell.
func (r ValueByReference) Deref() Value {
	if r.Target == nil {
		return Empty{}
	}
	return r.Target.Get()
}

// LogicalLink is an indirection to a ValueEnvelope, used for non-copy
// (`__`) assignment: rather than copying a value, a LogicalLink makes
// its holder observe whatever the linked Envelope currently holds,
// including future replacements (spec.md §3).
type LogicalLink struct {
	Envelope *Envelope
}

func (LogicalLink) TypeName() string { return "link" }

func (l LogicalLink) String() string {
	if l.Envelope == nil {
		return "<dangling link>"
	}
	return l.Envelope.Get().String()
}

// Deref returns the value currently held by the linked envelope.
func (l LogicalLink) Deref() Value {
	if l.Envelope == nil {
		return Empty{}
	}
	return l.Envelope.Get()
}
