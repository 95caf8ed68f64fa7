// Package pplerr provides the PPL error taxonomy and source-context
// diagnostic formatting (spec.md §7, §6 "Diagnostics format").
package pplerr

import (
	"fmt"
	"strings"
)

// Kind classifies an EvalError by cause, not by Go type, matching the
// taxonomy in spec.md §7.
type Kind int

const (
	// Lex covers overflow, unterminated literal, bad escape.
	Lex Kind = iota
	// Parse covers unexpected token, missing delimiter, wrong arity,
	// duplicate label, definition name clash.
	Parse
	// Resolution covers "<name> not found", "<name> is not a value",
	// "<name> is not indexable".
	Resolution
	// Type covers "Incompatible datatype", "Cannot convert", unsupported
	// datatype for arithmetic/comparison.
	Type
	// Domain covers index out of bounds, sequence/structure arity mismatch.
	Domain
	// Control covers "Stop requested", "Breakpoint", "interrupt!".
	Control
	// IO covers filesystem errors, surfaced as the underlying message.
	IO
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Resolution:
		return "resolution error"
	case Type:
		return "type error"
	case Domain:
		return "domain error"
	case Control:
		return "control"
	case IO:
		return "I/O error"
	default:
		return "error"
	}
}

// Position locates a point in source text, matching the lexer's token
// position record.
type Position struct {
	Line   int
	Column int
}

// EvalError is the single error type every PPL operation returns. It
// bubbles unchanged from node dispatch up to the sequencer and from there
// to whatever embeds the workspace (spec.md §7 propagation policy).
type EvalError struct {
	Kind    Kind
	Message string
	Pos     Position
	Source  string // the full source text the position indexes into
	File    string // optional, empty for in-memory/REPL input
}

// New creates an EvalError with no position information (used for errors
// that are not tied to a specific source location, e.g. I/O errors).
func New(kind Kind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At attaches position and source context to the error and returns it,
// for chaining at the call site that has that context.
func (e *EvalError) At(pos Position, source, file string) *EvalError {
	e.Pos = pos
	e.Source = source
	e.File = file
	return e
}

// Error implements the error interface with the bare message (no caret
// context); use Format for the full REPL-style diagnostic.
func (e *EvalError) Error() string {
	return e.Message
}

// Format renders the spec.md §6 diagnostic: a location header line
// ("Error in file:line:col" or "Error at line line:col", omitted when
// there is no position), then one line of source context with a caret
// column pointing at the error (column 1-based), then the message.
func (e *EvalError) Format() string {
	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else if e.Pos.Line > 0 {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// NotFound builds the standard "<name> not found" resolution error.
func NotFound(name string) *EvalError {
	return New(Resolution, "%s not found", name)
}

// WrongArity builds the standard "Wrong number of arguments to <name>" error.
func WrongArity(name string) *EvalError {
	return New(Parse, "Wrong number of arguments to %s", name)
}

// Is reports whether err is an *EvalError of the given Kind, for callers
// that need to branch on taxonomy (e.g. the REPL's `eq` shim swallowing
// Type-kind comparison failures into `false`).
func Is(err error, kind Kind) bool {
	ee, ok := err.(*EvalError)
	return ok && ee.Kind == kind
}
