// Package workspacefile implements the `write`/`read` built-ins' ASCII
// workspace-dump format (spec.md §6 "write/read"; spec.md §1 models the
// actual text format only via this narrow load/save interface, the full
// round-trip contract is not a REPL feature).
//
// Grounded on original_source/src/workspace/io.rs: a flat text file,
// one statement per line, with a function's body wrapped between bare
// "{"/"}" lines so Read can accumulate and replay it as a single
// multi-line definition the same way the parser itself consumes a
// function body.
package workspacefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/sequencer"
	"github.com/jeffreyeast/go-ppl/internal/value"
	"github.com/jeffreyeast/go-ppl/internal/workspace"
)

const openBracket = "{"
const closeBracket = "}"

// normalizeFilename appends ".ppl" when filename carries no extension
// (original_source's normalize_filename).
func normalizeFilename(filename string) string {
	if filepath.Ext(filename) == "" {
		return filename + ".ppl"
	}
	return filename
}

// Write dumps ws's datatypes, globals, and user functions to filename as
// replayable PPL source (original_source's workspace::io::write).
func Write(ws *workspace.Workspace, filename string) error {
	f, err := os.Create(normalizeFilename(filename))
	if err != nil {
		return pplerr.New(pplerr.IO, "%s", err.Error())
	}
	defer f.Close()

	if err := writeDatatypes(f, ws); err != nil {
		return pplerr.New(pplerr.IO, "%s", err.Error())
	}
	if err := writeGlobals(f, ws); err != nil {
		return pplerr.New(pplerr.IO, "%s", err.Error())
	}
	if err := writeUserFunctions(f, ws); err != nil {
		return pplerr.New(pplerr.IO, "%s", err.Error())
	}
	return nil
}

func builtinDatatypeNames() map[string]bool {
	return map[string]bool{
		"int": true, "real": true, "double": true, "bool": true,
		"char": true, "string": true, "general": true,
	}
}

// writeDatatypes emits every non-builtin datatype definition, sorted by
// name for a deterministic dump (original_source's write_datatypes).
func writeDatatypes(w io.Writer, ws *workspace.Workspace) error {
	processed := builtinDatatypeNames()
	var names []string
	for _, n := range ws.Datatypes.Names() {
		names = append(names, n.String())
	}
	sort.Strings(names)

	for _, name := range names {
		if processed[strings.ToLower(name)] {
			continue
		}
		processed[strings.ToLower(name)] = true
		mt, ok := ws.Datatypes.Get(pplname.New(name))
		if !ok {
			continue
		}
		def, ok := datatypeDefinition(mt)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, def); err != nil {
			return err
		}
	}
	return nil
}

// DatatypeDefinition renders mt's `$name=...` definition text, reused by
// the `display` built-in as well as `write` (original_source's
// write_structure_definition/write_sequence_definition/write_alternate).
func DatatypeDefinition(mt *metadata.MetaDataType) (string, bool) {
	return datatypeDefinition(mt)
}

func datatypeDefinition(mt *metadata.MetaDataType) (string, bool) {
	switch mt.Kind {
	case metadata.RootSequence:
		upper := "*"
		if mt.SeqUpper != nil {
			upper = fmt.Sprintf("%d", *mt.SeqUpper)
		}
		return fmt.Sprintf("$%s=[%d:%s]%s", mt.Name, mt.SeqLower, upper, mt.SeqElementType), true
	case metadata.RootStructure:
		var fields []string
		for _, f := range mt.StructFields {
			fields = append(fields, fmt.Sprintf("%s:%s", f.Name, f.TypeName))
		}
		return fmt.Sprintf("$%s=[%s]", mt.Name, strings.Join(fields, ",")), true
	case metadata.RootAlternate:
		return fmt.Sprintf("$%s=%s", mt.Name, strings.Join(mt.AltMembers, "!")), true
	default:
		return "", false
	}
}

func writeGlobals(w io.Writer, ws *workspace.Workspace) error {
	var err error
	ws.Globals.Range(func(name pplname.Name, cell *value.Cell) bool {
		line, ok := variableLine(name.String(), cell.Get())
		if !ok {
			return true
		}
		if _, werr := fmt.Fprintln(w, line); werr != nil {
			err = werr
			return false
		}
		return true
	})
	return err
}

// variableLine renders one global's assignment the way
// original_source's write_variable does (typed-constructor call syntax
// per Value variant), with the assignment operator and type-cast name
// each kept as their own whitespace-separated token: the lexer folds
// "_" and adjoining letters into a single identifier (internal/lexer's
// isAlpha treats '_' as a letter), so "g_int(5)" would lex as one
// identifier named "g_int" instead of the assignment "g _ int(5)".
func variableLine(name string, v value.Value) (string, bool) {
	switch t := v.(type) {
	case value.Bool:
		return fmt.Sprintf("%s _ bool(%v)", name, t.Value), true
	case value.Int:
		return fmt.Sprintf("%s _ int(%d)", name, t.Value), true
	case value.Real:
		return fmt.Sprintf("%s _ real(%s)", name, t.String()), true
	case value.Double:
		return fmt.Sprintf("%s _ double(%s)", name, t.String()), true
	case value.Char:
		return fmt.Sprintf("%s _ char('%c)", name, t.Value), true
	case *value.Structure:
		return fmt.Sprintf("%s _ %s", name, structureBody(t)), true
	case *value.Sequence:
		return fmt.Sprintf("%s _ %s", name, sequenceBody(t)), true
	default:
		return "", false
	}
}

func sequenceBody(s *value.Sequence) string {
	var parts []string
	for _, c := range s.Cells {
		parts = append(parts, valueBody(c.Get()))
	}
	return fmt.Sprintf("%s(%s)", s.DatatypeName, strings.Join(parts, ", "))
}

func structureBody(s *value.Structure) string {
	var parts []string
	for _, m := range s.Members {
		parts = append(parts, valueBody(m.Cell.Get()))
	}
	return fmt.Sprintf("%s(%s)", s.DatatypeName, strings.Join(parts, ", "))
}

func valueBody(v value.Value) string {
	switch t := v.(type) {
	case value.Bool:
		return fmt.Sprintf("bool(%v)", t.Value)
	case value.Int:
		return fmt.Sprintf("int(%d)", t.Value)
	case value.Real:
		return fmt.Sprintf("real(%s)", t.String())
	case value.Double:
		return fmt.Sprintf("double(%s)", t.String())
	case value.Char:
		return fmt.Sprintf("'%c", t.Value)
	case *value.Structure:
		return structureBody(t)
	case *value.Sequence:
		return sequenceBody(t)
	default:
		return v.String()
	}
}

func writeUserFunctions(w io.Writer, ws *workspace.Workspace) error {
	var err error
	ws.UserFuncs.Range(func(name pplname.Name, fn *metadata.FunctionDescription) bool {
		if _, werr := fmt.Fprintln(w, openBracket); werr != nil {
			err = werr
			return false
		}
		if _, werr := fmt.Fprint(w, FunctionSource(name.String(), fn)); werr != nil {
			err = werr
			return false
		}
		if _, werr := fmt.Fprintln(w, closeBracket); werr != nil {
			err = werr
			return false
		}
		return true
	})
	return err
}

// FunctionSource reconstructs a user function's definition text from its
// parsed signature and body statements (original_source's
// FunctionDescription::as_source), used by both `write` and the
// `display`/`edit` built-ins.
func FunctionSource(name string, fn *metadata.FunctionDescription) string {
	var sb strings.Builder
	sb.WriteString("$")
	sb.WriteString(name)
	sb.WriteString("(")
	for i, a := range fn.Args {
		if i > 0 {
			sb.WriteString(",")
		}
		if a.Mechanism == metadata.ByReference {
			sb.WriteString("$")
		}
		sb.WriteString(a.Name)
	}
	sb.WriteString(")")
	if len(fn.Locals) > 0 {
		sb.WriteString(";")
		sb.WriteString(strings.Join(fn.Locals, ","))
	}
	sb.WriteString("\n")

	if exe, ok := fn.UserExecutable.(*exec.Executable); ok {
		for _, stmt := range exe.Statements() {
			sb.WriteString(stmt.Source)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("$\n")
	return sb.String()
}

// Read replays filename's statements into ws (original_source's
// workspace::io::read): bare "{"/"}" lines bracket a multi-line function
// definition, accumulated and evaluated as a single unit; every other
// line is evaluated on its own.
func Read(ws *workspace.Workspace, filename string) error {
	f, err := os.Open(normalizeFilename(filename))
	if err != nil {
		return pplerr.New(pplerr.IO, "%s", err.Error())
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	inQuoted := false
	var body strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case openBracket:
			if inQuoted {
				return pplerr.New(pplerr.IO, "malformed file, encountered unexpected %s", openBracket)
			}
			inQuoted = true
			body.Reset()
		case closeBracket:
			if !inQuoted {
				return pplerr.New(pplerr.IO, "malformed file, encountered unexpected %s", closeBracket)
			}
			inQuoted = false
			if _, err := sequencer.ExecString(ws, body.String()); err != nil {
				return err
			}
		default:
			if inQuoted {
				body.WriteString(line)
				body.WriteString("\n")
			} else if _, err := sequencer.ExecString(ws, line); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return pplerr.New(pplerr.IO, "%s", err.Error())
	}
	return nil
}
