package value

import "github.com/jeffreyeast/go-ppl/internal/pplerr"

// Equal compares two values for PPL `eq` semantics, guarding against
// cycles the same way Display does (spec.md §4.11): re-entering an
// already-visited envelope during a single comparison fails with
// "Invalid comparison" rather than looping.
func Equal(a, b Value) (bool, error) {
	return equalWithPass(a, b, NewPass())
}

func equalWithPass(a, b Value, pass int64) (bool, error) {
	switch av := a.(type) {
	case Empty:
		_, ok := b.(Empty)
		return ok, nil
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value, nil
	case Int:
		switch bv := b.(type) {
		case Int:
			return av.Value == bv.Value, nil
		case Real:
			return float64(av.Value) == float64(bv.Value), nil
		case Double:
			return float64(av.Value) == bv.Value, nil
		}
		return false, nil
	case Real:
		switch bv := b.(type) {
		case Int:
			return float64(av.Value) == float64(bv.Value), nil
		case Real:
			return av.Value == bv.Value, nil
		case Double:
			return float64(av.Value) == bv.Value, nil
		}
		return false, nil
	case Double:
		switch bv := b.(type) {
		case Int:
			return av.Value == float64(bv.Value), nil
		case Real:
			return av.Value == float64(bv.Value), nil
		case Double:
			return av.Value == bv.Value, nil
		}
		return false, nil
	case Char:
		bv, ok := b.(Char)
		return ok && av.Value == bv.Value, nil
	case *Sequence:
		bv, ok := b.(*Sequence)
		if !ok {
			return false, nil
		}
		return sequenceEqual(av, bv, pass)
	case *Structure:
		bv, ok := b.(*Structure)
		if !ok {
			return false, nil
		}
		return structureEqual(av, bv, pass)
	case Selector:
		bv, ok := b.(Selector)
		return ok && av.Set != nil && bv.Set != nil && equalFold(av.Set.FieldName, bv.Set.FieldName), nil
	}
	return false, pplerr.New(pplerr.Type, "unsupported datatype for comparison")
}

func sequenceEqual(a, b *Sequence, pass int64) (bool, error) {
	if len(a.Cells) != len(b.Cells) {
		return false, nil
	}
	for i := range a.Cells {
		envA, envB := a.Cells[i].Envelope(), b.Cells[i].Envelope()
		reentA := Enter(envA, pass)
		reentB := envB != envA && Enter(envB, pass)
		if reentA || reentB {
			return false, pplerr.New(pplerr.Type, "Invalid comparison")
		}
		eq, err := equalWithPass(a.Cells[i].Get(), b.Cells[i].Get(), pass)
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}

func structureEqual(a, b *Structure, pass int64) (bool, error) {
	if !equalFold(a.DatatypeName, b.DatatypeName) || len(a.Members) != len(b.Members) {
		return false, nil
	}
	for i := range a.Members {
		envA, envB := a.Members[i].Cell.Envelope(), b.Members[i].Cell.Envelope()
		reentA := Enter(envA, pass)
		reentB := envB != envA && Enter(envB, pass)
		if reentA || reentB {
			return false, pplerr.New(pplerr.Type, "Invalid comparison")
		}
		eq, err := equalWithPass(a.Members[i].Cell.Get(), b.Members[i].Cell.Get(), pass)
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}
