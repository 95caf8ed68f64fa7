package exec

import (
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

// State is an Invocation's execution state (spec.md §4.3).
type State int

const (
	NotExecuting State = iota
	Executing
	Stopped
	Resumed
)

// FIB (Function Invocation Block) is the per-call container holding a
// user function's descriptor and its local variable symbol table
// (glossary "FIB"; spec.md §4.6 user-function entry steps 1-6).
type FIB struct {
	Descriptor *metadata.FunctionDescription
	Locals     *pplname.Table[*value.Cell]
}

// NewFIB creates a FIB for invoking desc, with an empty local table the
// sequencer populates per spec.md §4.6 steps 2-5.
func NewFIB(desc *metadata.FunctionDescription) *FIB {
	return &FIB{Descriptor: desc, Locals: pplname.NewTable[*value.Cell]()}
}

// Invocation is one frame on the sequencer's invocation stack (spec.md
// §4.3): the executable it is walking, the optional FIB (present iff
// this is a user-function call), the value-stack depth at entry, the
// current/next node indices, a pending-goto slot, and the execution
// state.
type Invocation struct {
	Executable *Executable
	FIB        *FIB // nil at top level (immediate-mode input)

	EntryStackDepth int
	CurrentNode     int
	NextNode        int
	PendingGoto     int // -1 means no pending goto
	State           State
}

// NewInvocation creates a frame ready to start executing exe's first
// node, with the value stack currently at entryStackDepth.
func NewInvocation(exe *Executable, fib *FIB, entryStackDepth int) *Invocation {
	return &Invocation{
		Executable:      exe,
		FIB:             fib,
		EntryStackDepth: entryStackDepth,
		NextNode:        0,
		PendingGoto:     -1,
		State:           NotExecuting,
	}
}

// HasNext reports whether there is a next node to dispatch.
func (inv *Invocation) HasNext() bool {
	return inv.NextNode >= 0 && inv.NextNode < len(inv.Executable.Nodes)
}

// SetPendingGoto records a not-yet-applied next-node index, applied at
// the following statement boundary (spec.md §4.5 StatementEnd, glossary
// "Pending goto").
func (inv *Invocation) SetPendingGoto(nodeIndex int) {
	inv.PendingGoto = nodeIndex
}

// ApplyPendingGoto, if a goto is pending, sets NextNode to it and clears
// the slot; reports whether one was applied.
func (inv *Invocation) ApplyPendingGoto() bool {
	if inv.PendingGoto < 0 {
		return false
	}
	inv.NextNode = inv.PendingGoto
	inv.PendingGoto = -1
	return true
}
