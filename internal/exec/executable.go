package exec

import (
	"sort"

	"github.com/jeffreyeast/go-ppl/internal/pplname"
)

// Statement is one parsed statement (spec.md §4.3): the source slice it
// came from, its line number, the set of node indices it produced, and
// the mutable stop/trace flags the `stop`/`unstop`/`trace`/`untrace`
// builtins toggle.
type Statement struct {
	Source string
	Line   int
	Nodes  *pplname.IntSet

	StopFlag  bool
	TraceFlag bool
}

// FirstNodeIndex returns the statement's lowest node index.
func (s *Statement) FirstNodeIndex() (int, bool) {
	return s.Nodes.Min()
}

// LastNodeIndex returns the statement's highest node index.
func (s *Statement) LastNodeIndex() (int, bool) {
	return s.Nodes.Max()
}

// Executable is the immutable-after-build record a parse produces
// (spec.md §4.3): the source text, the flat node array, the statement
// array, a node-index -> statement lookup, and — for a function body —
// the line number of its implicit/explicit return statement.
type Executable struct {
	Source string
	Nodes  []Node

	statements       []*Statement
	nodeToStatement  map[int]*Statement
	lineToStatement  map[int]*Statement

	FunctionReturnLine int // 0 if not a function body
}

// NewExecutable creates an Executable ready for AddStatement calls
// followed by Finalize.
func NewExecutable(source string) *Executable {
	return &Executable{
		Source:          source,
		nodeToStatement: make(map[int]*Statement),
		lineToStatement: make(map[int]*Statement),
	}
}

// AddStatement records a finished statement's source slice, line number
// and the set of node indices it produced.
func (e *Executable) AddStatement(source string, line int, nodeIndices *pplname.IntSet) *Statement {
	stmt := &Statement{Source: source, Line: line, Nodes: nodeIndices}
	e.statements = append(e.statements, stmt)
	for _, idx := range nodeIndices.Members() {
		e.nodeToStatement[idx] = stmt
	}
	e.lineToStatement[line] = stmt
	return stmt
}

// Finalize must be called once all statements and nodes are emitted. It
// is a no-op placeholder kept for symmetry with the teacher's two-phase
// build/finalize Executable lifecycle (internal/ast doc.go pattern);
// PPL's lookups are built incrementally in AddStatement so there is no
// deferred work, but keeping Finalize as an explicit step lets the
// parser signal "no more statements will be added" without the caller
// needing to know that detail.
func (e *Executable) Finalize() {}

// StatementOf returns the statement that produced node index k.
func (e *Executable) StatementOf(k int) (*Statement, bool) {
	s, ok := e.nodeToStatement[k]
	return s, ok
}

// StatementAtLine returns the statement whose source line equals line,
// using binary search over the sorted statement-line list (spec.md
// §4.3 "binary search on line number resolves goto targets").
func (e *Executable) StatementAtLine(line int) (*Statement, bool) {
	if s, ok := e.lineToStatement[line]; ok {
		return s, true
	}
	idx := sort.Search(len(e.statements), func(i int) bool {
		return e.statements[i].Line >= line
	})
	if idx < len(e.statements) && e.statements[idx].Line == line {
		return e.statements[idx], true
	}
	return nil, false
}

// Statements returns every statement in source order.
func (e *Executable) Statements() []*Statement {
	return e.statements
}
