package builtins

import (
	"github.com/jeffreyeast/go-ppl/internal/coerce"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// registerComparison installs = # < <= > >= & ! and their word-form
// aliases, plus the is-an-instance-of operator == / instance (spec.md §6
// "Comparison").
func registerComparison(ws *workspace.Workspace) {
	for _, name := range []string{"=", "eq"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: eqShim})
	}
	for _, name := range []string{"#", "noteq"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: notEqShim})
	}
	for _, name := range []string{"<", "less"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: ordering(func(c int) bool { return c < 0 })})
	}
	for _, name := range []string{"<=", "lesseq"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: ordering(func(c int) bool { return c <= 0 })})
	}
	for _, name := range []string{">", "gr"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: ordering(func(c int) bool { return c > 0 })})
	}
	for _, name := range []string{">=", "greq"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: ordering(func(c int) bool { return c >= 0 })})
	}
	for _, name := range []string{"&", "and"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: logical(func(a, b bool) bool { return a && b })})
	}
	for _, name := range []string{"!", "or"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: logical(func(a, b bool) bool { return a || b })})
	}
	for _, name := range []string{"==", "instance"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: instanceOf})
	}
}

// eqShim implements spec.md §7's "eq shim": an incompatible-datatype
// comparison is swallowed to false rather than propagated, but every
// other failure (e.g. a cyclic structure re-entered mid-compare) still
// errors.
func eqShim(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	a, b, err := resolveTwo(ws, args)
	if err != nil {
		return nil, err
	}
	eq, err := value.Equal(a, b)
	if err != nil {
		if pplerr.Is(err, pplerr.Type) {
			return value.Bool{Value: false}, nil
		}
		return nil, err
	}
	return value.Bool{Value: eq}, nil
}

func notEqShim(ctx any, args []any) (any, error) {
	r, err := eqShim(ctx, args)
	if err != nil {
		return nil, err
	}
	return value.Bool{Value: !r.(value.Bool).Value}, nil
}

// ordering compares two numeric (or char/string) operands and reduces
// the result to a bool via test. Unlike eq/noteq, a type mismatch here
// propagates (spec.md §7: "all other comparisons propagate").
func ordering(test func(cmp int) bool) metadata.SystemFunc {
	return func(ctx any, args []any) (any, error) {
		ws := ctx.(*workspace.Workspace)
		a, b, err := resolveTwo(ws, args)
		if err != nil {
			return nil, err
		}
		if sa, ok := a.(*value.Sequence); ok && sa.IsString() {
			sb, ok := b.(*value.Sequence)
			if !ok || !sb.IsString() {
				return nil, pplerr.New(pplerr.Type, "Incompatible datatype")
			}
			as, bs := sa.GoString(), sb.GoString()
			switch {
			case as < bs:
				return value.Bool{Value: test(-1)}, nil
			case as > bs:
				return value.Bool{Value: test(1)}, nil
			default:
				return value.Bool{Value: test(0)}, nil
			}
		}
		if _, err := coerce.StrongestOf(a, b); err != nil {
			return nil, err
		}
		fa, err := coerce.ToFloat64(a)
		if err != nil {
			return nil, err
		}
		fb, err := coerce.ToFloat64(b)
		if err != nil {
			return nil, err
		}
		switch {
		case fa < fb:
			return value.Bool{Value: test(-1)}, nil
		case fa > fb:
			return value.Bool{Value: test(1)}, nil
		default:
			return value.Bool{Value: test(0)}, nil
		}
	}
}

func logical(apply func(a, b bool) bool) metadata.SystemFunc {
	return func(ctx any, args []any) (any, error) {
		ws := ctx.(*workspace.Workspace)
		a, b, err := resolveTwo(ws, args)
		if err != nil {
			return nil, err
		}
		ab, err := coerce.CoerceTo(a, "bool")
		if err != nil {
			return nil, err
		}
		bb, err := coerce.CoerceTo(b, "bool")
		if err != nil {
			return nil, err
		}
		return value.Bool{Value: apply(ab.(value.Bool).Value, bb.(value.Bool).Value)}, nil
	}
}

// instanceOf implements "x==complex" (spec.md §8 scenario 4): the right
// operand is a datatype name, resolved to a Symbol by
// NodeIdentifierByValue rather than a concrete value, so it is inspected
// before being passed through ResolveToValue.
func instanceOf(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	a, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	var typeName string
	switch t := args[1].(type) {
	case value.Symbol:
		typeName = t.Spelling
	default:
		b, err := sequencer.ResolveToValue(ws, args[1].(value.Value))
		if err != nil {
			return nil, err
		}
		seq, ok := b.(*value.Sequence)
		if !ok || !seq.IsString() {
			return nil, pplerr.New(pplerr.Type, "right side of == must be a datatype name")
		}
		typeName = seq.GoString()
	}
	return value.Bool{Value: isInstanceOf(ws, a, typeName)}, nil
}

func isInstanceOf(ws *workspace.Workspace, v value.Value, typeName string) bool {
	if v.TypeName() == typeName {
		return true
	}
	mt, ok := ws.Datatypes.Get(pplname.New(typeName))
	if !ok {
		return false
	}
	switch mt.Kind {
	case metadata.RootAlternate:
		for _, member := range mt.AltMembers {
			if isInstanceOf(ws, v, member) {
				return true
			}
		}
	case metadata.RootStructure:
		if s, ok := v.(*value.Structure); ok {
			return s.DatatypeName == typeName
		}
	case metadata.RootSequence:
		if s, ok := v.(*value.Sequence); ok {
			return s.DatatypeName == typeName
		}
	}
	return false
}
