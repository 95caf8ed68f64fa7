package builtins

import (
	"math"

	"github.com/jeffreyeast/go-ppl/internal/coerce"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

// registerArithmetic installs + - * / ^ and their word-form aliases
// (spec.md §6 "Arithmetic"). Each symbol also carries a monadic overload
// where the language allows one (+x, -x).
func registerArithmetic(ws *workspace.Workspace) {
	plus := binaryOp(func(a, b float64) float64 { return a + b })
	minus := binaryOp(func(a, b float64) float64 { return a - b })
	times := binaryOp(func(a, b float64) float64 { return a * b })
	power := binaryOp(math.Pow)

	for _, name := range []string{"+", "add", "plus"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: plus})
	}
	reg(ws, "+", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: identity})

	for _, name := range []string{"-", "sub", "minus"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: minus})
	}
	reg(ws, "-", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: negate})

	for _, name := range []string{"*", "mul"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: times})
	}
	for _, name := range []string{"/", "div"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: divide})
	}
	for _, name := range []string{"^", "power"} {
		reg(ws, name, &metadata.FunctionDescription{Args: arity2(), Arity: metadata.Arity2, Fn: power})
	}
}

func resolveTwo(ws *workspace.Workspace, args []any) (value.Value, value.Value, error) {
	a, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, nil, err
	}
	b, err := sequencer.ResolveToValue(ws, args[1].(value.Value))
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// binaryOp builds a SystemFunc computing apply(a,b) at the strongest of
// the two operands' ranks (spec.md §4.9 "strongest datatype").
func binaryOp(apply func(a, b float64) float64) metadata.SystemFunc {
	return func(ctx any, args []any) (any, error) {
		ws := ctx.(*workspace.Workspace)
		a, b, err := resolveTwo(ws, args)
		if err != nil {
			return nil, err
		}
		rank, err := coerce.StrongestOf(a, b)
		if err != nil {
			return nil, err
		}
		fa, _ := coerce.ToFloat64(a)
		fb, _ := coerce.ToFloat64(b)
		return coerce.FromRank(rank, apply(fa, fb)), nil
	}
}

func identity(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	return sequencer.ResolveToValue(ws, args[0].(value.Value))
}

func negate(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	a, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	rank := coerce.RankOf(a)
	if rank == coerce.RankIncompatible {
		return nil, pplerr.New(pplerr.Type, "Incompatible datatype")
	}
	fa, _ := coerce.ToFloat64(a)
	return coerce.FromRank(rank, -fa), nil
}

// divide implements integer division-by-zero saturation (spec.md §8
// boundary behavior: "i32::MAX/i32::MIN by sign of the dividend", NOT an
// error); float division follows IEEE (may produce Inf/NaN) via Go's own
// float64 divide.
func divide(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	a, b, err := resolveTwo(ws, args)
	if err != nil {
		return nil, err
	}
	rank, err := coerce.StrongestOf(a, b)
	if err != nil {
		return nil, err
	}
	if rank == coerce.RankInt {
		ai, _ := coerce.ToInt64(a)
		bi, _ := coerce.ToInt64(b)
		if bi == 0 {
			if ai < 0 {
				return value.Int{Value: math.MinInt32}, nil
			}
			return value.Int{Value: math.MaxInt32}, nil
		}
		return value.Int{Value: int32(ai / bi)}, nil
	}
	fa, _ := coerce.ToFloat64(a)
	fb, _ := coerce.ToFloat64(b)
	return coerce.FromRank(rank, fa/fb), nil
}
