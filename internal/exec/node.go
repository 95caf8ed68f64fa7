// Package exec implements the runtime containers for parsed PPL code:
// the flat node graph plus statement index that the parser builds
// (spec.md §4.2, §4.3), and the per-call Invocation / FIB frames the
// sequencer drives (spec.md §4.3, §4.6).
//
// Grounded on the teacher's split between a compile-time AST
// (internal/ast) and a runtime call-stack (internal/interp/runtime/
// callstack.go); PPL's flat single-node-array representation (rather
// than a tree of typed AST nodes) is generalized directly from spec.md
// §4.2's explicit node-kind enumeration.
package exec

import (
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

// NodeKind tags which of the node variants in spec.md §4.2 a Node is.
type NodeKind int

const (
	NodeDefinition NodeKind = iota
	NodeFunctionReturn
	NodeIdentifierByReference
	NodeIdentifierByValue
	NodeIndex
	NodeNoop
	NodeOperation
	NodeStatementEnd
	NodeStatementLabel
	NodeValue
	NodeResolveParameter
	NodeBranch  // unconditional jump to Node.Target (node index)
	NodeCBranch // pop a condition; jump to Node.Target if it is false
)

// DefinitionKind distinguishes the four definition forms (spec.md §4.7).
type DefinitionKind int

const (
	DefAlternate DefinitionKind = iota
	DefSequence
	DefStructure
	DefFunction
)

// DefinitionNode carries whichever payload DefinitionKind selects.
type DefinitionNode struct {
	Kind DefinitionKind
	Name string

	AlternateMemberCount int // number of stack values to pop (DefAlternate)

	SeqElementType string
	SeqLower       int32
	SeqUpper       *int32

	StructFields []metadata.StructureField

	Func *metadata.FunctionDescription
}

// Ref names an identifier occurrence (spec.md §4.2 IdentifierByValue /
// IdentifierByReference payload).
type Ref struct {
	Name string
}

// IndexNode is the payload of an Index node: positions, within the same
// Executable's node array, of the base-value node and the
// subscript-value node.
type IndexNode struct {
	ValuePos int
	IndexPos int
}

// OperationNode is a function/selector/constructor call by name over a
// fixed list of already-emitted argument node positions.
type OperationNode struct {
	Name        string
	ArgPositions []int
}

// Node is one entry of an Executable's flat node array. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Node struct {
	Kind NodeKind

	Definition      DefinitionNode
	Ref             Ref
	Index           IndexNode
	Operation       OperationNode
	StatementEndPos int // root expression node position
	LabelName       string
	LabelStmtIndex  int
	Literal         value.Value
	ResolveArg      metadata.Argument
	Target          int // NodeBranch/NodeCBranch: node index to jump to
}
