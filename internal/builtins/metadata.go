package builtins

import (
	"fmt"
	"os"
	osexec "os/exec"
	"sort"
	"strings"

	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
	"github.com/jeffreyeast/go-ppl/internal/workspacefile"
)

// registerMetadata installs the workspace-introspection builtins
// (spec.md §6 "Metadata/workspace": display ? binary unary help length
// l.bound type make erase reset symbol.table read write version edit).
// `%` (relocate) lives in control.go since it shares an overload with
// the goto-target passthrough. Grounded on
// original_source/src/execution/system_functions/metadata.rs.
func registerMetadata(ws *workspace.Workspace) {
	displayDesc := metadata.FunctionDescription{
		Args:  []metadata.Argument{{Name: "function", Mechanism: metadata.ByReference}},
		Arity: metadata.Arity1, Fn: displayFn,
	}
	reg(ws, "display", &displayDesc)
	d2 := displayDesc
	reg(ws, "?", &d2)

	reg(ws, "binary", &metadata.FunctionDescription{
		Args:  []metadata.Argument{{Name: "operator"}, {Name: "function", Mechanism: metadata.ByReference}},
		Arity: metadata.Arity2, Fn: binaryFn,
	})
	reg(ws, "unary", &metadata.FunctionDescription{
		Args:  []metadata.Argument{{Name: "operator"}, {Name: "function", Mechanism: metadata.ByReference}},
		Arity: metadata.Arity2, Fn: unaryFn,
	})
	reg(ws, "help", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: helpFn})
	reg(ws, "length", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: lengthFn})
	reg(ws, "l.bound", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: lBoundFn})
	reg(ws, "type", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: typeFn})
	reg(ws, "make", &metadata.FunctionDescription{
		Args: []metadata.Argument{
			{Name: "sequence_type", Mechanism: metadata.ByReference},
			{Name: "count"},
			{Name: "value"},
		},
		Arity: metadata.Arity3, Fn: makeFn,
	})
	reg(ws, "erase", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: eraseFn})
	reg(ws, "reset", &metadata.FunctionDescription{Arity: metadata.Arity0, Fn: resetFn})
	reg(ws, "symbol.table", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: symbolTableFn})
	reg(ws, "read", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: readFn})
	reg(ws, "write", &metadata.FunctionDescription{Args: arity1(), Arity: metadata.Arity1, Fn: writeFn})
	reg(ws, "version", &metadata.FunctionDescription{Arity: metadata.Arity0, Fn: versionFn})
	reg(ws, "edit", &metadata.FunctionDescription{Variadic: true, Arity: metadata.ArityVariadic, Fn: editFn})
}

func displayFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	name, err := spellingArg(args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	text, ok := definitionSource(ws, name)
	if !ok {
		return nil, pplerr.New(pplerr.Resolution, "%s not found", name)
	}
	return value.NewString(text), nil
}

// definitionSource reconstructs the display/edit text for a named
// datatype or user function, in that lookup order.
func definitionSource(ws *workspace.Workspace, name string) (string, bool) {
	key := pplname.New(name)
	if mt, ok := ws.Datatypes.Get(key); ok {
		if text, ok := workspacefile.DatatypeDefinition(mt); ok {
			return text, true
		}
	}
	if fn, ok := ws.UserFuncs.Get(key); ok {
		return workspacefile.FunctionSource(name, fn), true
	}
	return "", false
}

func binaryFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	op, err := spellingArg(args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	fname, err := spellingArg(args[1].(value.Value))
	if err != nil {
		return nil, err
	}
	fn, ok := ws.UserFuncs.Get(pplname.New(fname))
	if !ok {
		return nil, pplerr.New(pplerr.Resolution, "%s not found", fname)
	}
	if fn.FixedArity() != 2 {
		return nil, pplerr.New(pplerr.Type, "%s is not a binary function", fname)
	}
	ws.UserFuncs.Set(pplname.New(op), fn)
	return value.Empty{}, nil
}

func unaryFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	op, err := spellingArg(args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	fname, err := spellingArg(args[1].(value.Value))
	if err != nil {
		return nil, err
	}
	fn, ok := ws.UserFuncs.Get(pplname.New(fname))
	if !ok {
		return nil, pplerr.New(pplerr.Resolution, "%s not found", fname)
	}
	if fn.FixedArity() != 1 {
		return nil, pplerr.New(pplerr.Type, "%s is not a unary function", fname)
	}
	ws.UserFuncs.Set(pplname.New(op), fn)
	return value.Empty{}, nil
}

func helpFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	if len(args) == 0 {
		return value.NewString(helpAll(ws)), nil
	}
	name, err := spellingArg(args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	return value.NewString(helpOne(ws, name)), nil
}

func helpAll(ws *workspace.Workspace) string {
	var lines []string
	for _, n := range ws.SystemFuncs.Names() {
		set, _ := ws.SystemFuncs.Lookup(n)
		for _, d := range set.Descriptions {
			if d.Help != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", n.String(), d.Help))
			}
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func helpOne(ws *workspace.Workspace, name string) string {
	key := pplname.New(name)
	if set, ok := ws.SystemFuncs.Lookup(key); ok {
		var lines []string
		for _, d := range set.Descriptions {
			lines = append(lines, d.Help)
		}
		return strings.Join(lines, "\n")
	}
	if fn, ok := ws.UserFuncs.Get(key); ok && fn.Help != "" {
		return fn.Help
	}
	return fmt.Sprintf(`Use HELP("<item>") for more information`)
}

func lengthFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	v, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case value.Empty:
		return value.Int{Value: 0}, nil
	case *value.Structure:
		return value.Int{Value: int32(len(t.Members))}, nil
	case *value.Sequence:
		return value.Int{Value: int32(t.Len())}, nil
	case value.Selector:
		return nil, pplerr.New(pplerr.Type, "length is undefined for selectors")
	default:
		return value.Int{Value: 1}, nil
	}
}

func lBoundFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	v, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	if seq, ok := v.(*value.Sequence); ok {
		return value.Int{Value: seq.Lower}, nil
	}
	return value.Int{Value: 1}, nil
}

func typeFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	v, err := sequencer.ResolveToValue(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	return value.NewString(v.TypeName()), nil
}

// makeFn constructs a sequence_type sequence containing count copies of
// value (original_source's metadata.rs `make`, distinct from a
// Typename(args) construction call).
func makeFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	tname, err := spellingArg(args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	mt, ok := ws.Datatypes.Get(pplname.New(tname))
	if !ok {
		return nil, pplerr.New(pplerr.Resolution, "%s not found", tname)
	}
	if mt.Kind != metadata.RootSequence {
		return nil, pplerr.New(pplerr.Type, "%s is not a sequence", tname)
	}
	countV, err := sequencer.ResolveToValue(ws, args[1].(value.Value))
	if err != nil {
		return nil, err
	}
	count, ok := countV.(value.Int)
	if !ok {
		return nil, pplerr.New(pplerr.Type, "make's count must be an int")
	}
	fill, err := sequencer.ResolveToValue(ws, args[2].(value.Value))
	if err != nil {
		return nil, err
	}
	fill, err = sequencer.AssignCoerce(ws, fill, mt.SeqElementType)
	if err != nil {
		return nil, err
	}
	upper := mt.SeqLower + count.Value - 1
	seq := value.NewSequence(mt.Name, mt.SeqElementType, mt.SeqLower, &upper)
	for i := range seq.Cells {
		seq.Cells[i] = value.NewCell(fill)
	}
	return seq, nil
}

func eraseFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	if len(args) == 0 {
		eraseAll(ws)
		return value.Empty{}, nil
	}
	for _, a := range args {
		name, err := spellingArg(a.(value.Value))
		if err != nil {
			return nil, err
		}
		eraseOne(ws, name)
	}
	return value.Empty{}, nil
}

func eraseAll(ws *workspace.Workspace) {
	for _, n := range ws.Datatypes.Names() {
		if !builtinDatatypeName(n.String()) {
			ws.Datatypes.Delete(n)
		}
	}
	for _, n := range ws.UserFuncs.Names() {
		ws.UserFuncs.Delete(n)
	}
	for _, n := range ws.Selectors.Names() {
		ws.Selectors.Delete(n)
	}
	for _, n := range ws.Globals.Names() {
		ws.Globals.Delete(n)
	}
}

func builtinDatatypeName(name string) bool {
	switch strings.ToLower(name) {
	case "int", "real", "double", "bool", "char", "string", "general":
		return true
	}
	return false
}

func eraseOne(ws *workspace.Workspace, name string) {
	key := pplname.New(name)
	if ws.Datatypes.Has(key) {
		ws.Datatypes.Delete(key)
		return
	}
	if ws.UserFuncs.Has(key) {
		ws.UserFuncs.Delete(key)
		return
	}
	if ws.Selectors.Has(key) {
		ws.Selectors.Delete(key)
		return
	}
	if ws.Globals.Has(key) {
		ws.Globals.Delete(key)
		return
	}
}

// resetFn discards every active invocation and operand, without
// touching the symbol tables (original_source's `reset`: "Erases all
// nests of function calls"). Wiping every symbol binding is `erase`'s
// job, not `reset`'s.
func resetFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	for ws.PopInvocation() != nil {
	}
	ws.TruncateValueStack(0)
	return value.Empty{}, nil
}

func symbolTableFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	fmt.Fprintln(ws.Output, dumpSymbolTable(ws))
	return nil, nil
}

func dumpSymbolTable(ws *workspace.Workspace) string {
	var sb strings.Builder
	names := ws.Datatypes.Names()
	sort.Slice(names, func(i, j int) bool { return names[i].Key() < names[j].Key() })
	for _, n := range names {
		if mt, ok := ws.Datatypes.Get(n); ok {
			if text, ok := workspacefile.DatatypeDefinition(mt); ok {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		}
	}
	gnames := ws.Globals.Names()
	sort.Slice(gnames, func(i, j int) bool { return gnames[i].Key() < gnames[j].Key() })
	for _, n := range gnames {
		if cell, ok := ws.Globals.Get(n); ok {
			fmt.Fprintf(&sb, "%s: %s\n", n.String(), cell.Get().String())
		}
	}
	fnames := ws.UserFuncs.Names()
	sort.Slice(fnames, func(i, j int) bool { return fnames[i].Key() < fnames[j].Key() })
	for _, n := range fnames {
		sb.WriteString(n.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func readFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	name, err := stringArg(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	return nil, workspacefile.Read(ws, name)
}

func writeFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	name, err := stringArg(ws, args[0].(value.Value))
	if err != nil {
		return nil, err
	}
	return nil, workspacefile.Write(ws, name)
}

func stringArg(ws *workspace.Workspace, v value.Value) (string, error) {
	resolved, err := sequencer.ResolveToValue(ws, v)
	if err != nil {
		return "", err
	}
	seq, ok := resolved.(*value.Sequence)
	if !ok || !seq.IsString() {
		return "", pplerr.New(pplerr.Type, "expected a string")
	}
	return seq.GoString(), nil
}

func versionFn(ctx any, args []any) (any, error) {
	return value.NewString("PPL T0.0"), nil
}

// editFn opens a named definition's source (or a fresh blank buffer) in
// $EDITOR, then re-evaluates the edited text as the new definition
// (original_source's `edit`, adapted from a hardcoded "notepad" spawn to
// the portable $EDITOR convention).
func editFn(ctx any, args []any) (any, error) {
	ws := ctx.(*workspace.Workspace)
	var name, text string
	switch len(args) {
	case 0:
	case 1:
		var err error
		name, err = spellingArg(args[0].(value.Value))
		if err != nil {
			return nil, err
		}
		text, _ = definitionSource(ws, name)
	default:
		return nil, pplerr.New(pplerr.Parse, "edit takes at most one argument")
	}

	f, err := os.CreateTemp("", "ppl-edit-*.ppl")
	if err != nil {
		return nil, pplerr.New(pplerr.IO, "%s", err.Error())
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath)
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return nil, pplerr.New(pplerr.IO, "%s", err.Error())
	}
	f.Close()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	cmd := osexec.Command(editor, tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, pplerr.New(pplerr.IO, "%s", err.Error())
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, pplerr.New(pplerr.IO, "%s", err.Error())
	}

	if name != "" {
		eraseOne(ws, name)
	}
	return sequencer.ExecString(ws, string(edited))
}
