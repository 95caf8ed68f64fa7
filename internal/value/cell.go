package value

// Envelope owns exactly one Value and is the unit of replacement under
// by-reference ("noncopy") assignment: every Cell that shares an
// Envelope observes a replacement immediately. passToken records the
// last recursion-guard pass that visited this envelope (spec.md §4.11).
type Envelope struct {
	val       Value
	passToken int64
}

// NewEnvelope wraps v in a fresh Envelope.
func NewEnvelope(v Value) *Envelope {
	return &Envelope{val: v}
}

// Get returns the envelope's current value.
func (e *Envelope) Get() Value {
	if e.val == nil {
		return Empty{}
	}
	return e.val
}

// Replace installs v as the envelope's value, observed by every Cell
// sharing this Envelope (reached through Cell.SetValue by both `_` and
// `__`).
func (e *Envelope) Replace(v Value) {
	e.val = v
}

// Cell owns exactly one Envelope and is the unit of addressability: a
// Sequence's elements, a Structure's members, and every named variable
// slot are each one Cell. Assigning a new Value *into* a Cell's
// Envelope (the `_` copy operator's effect) does not disturb aliases
// that hold the same Cell by reference unless they also hold the same
// Envelope — which by-value assignment preserves and by-reference
// rebinding replaces.
type Cell struct {
	env *Envelope
}

// NewCell creates a Cell holding a fresh Envelope around v.
func NewCell(v Value) *Cell {
	return &Cell{env: NewEnvelope(v)}
}

// Envelope returns the Cell's current envelope.
func (c *Cell) Envelope() *Envelope {
	return c.env
}

// Get returns the value currently held by the cell's envelope.
func (c *Cell) Get() Value {
	return c.env.Get()
}

// SetValue replaces the value inside the cell's *current* envelope
// in place (copy assignment, `_`): any other Cell that was separately
// pointed at the same Envelope observes this change; a Cell that merely
// held an equal-but-distinct Envelope does not.
func (c *Cell) SetValue(v Value) {
	c.env.Replace(v)
}

// Rebind points this Cell at a different Envelope outright: the Cell now
// aliases whatever other Cells already share that Envelope, observing
// all of their future Replace calls too. The `__` operator does not use
// it; it stores a LogicalLink through SetValue instead.
func (c *Cell) Rebind(env *Envelope) {
	c.env = env
}
