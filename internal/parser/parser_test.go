package parser

import (
	"testing"

	"github.com/jeffreyeast/go-ppl/internal/exec"
)

// permissiveResolver treats a fixed set of common operator spellings as
// available at arity 1 or 2 (and nothing at arity 0), so the parser
// package's own tests can
// exercise the grammar without a live workspace's function tables.
type permissiveResolver struct {
	arity2 map[string]bool
	arity1 map[string]bool
}

func newPermissiveResolver() *permissiveResolver {
	return &permissiveResolver{
		arity2: map[string]bool{
			"+": true, "-": true, "*": true, "/": true, "_": true, "__": true,
			"<": true, ">": true, "<=": true, ">=": true, "==": true, "<>": true,
			"and": true, "or": true,
		},
		arity1: map[string]bool{"-": true, "not": true, "#": true},
	}
}

func (r *permissiveResolver) HasArity(name string, arity int) bool {
	switch arity {
	case 1:
		return r.arity1[name]
	case 2:
		return r.arity2[name]
	}
	return false
}

func kinds(exe *exec.Executable) []exec.NodeKind {
	var ks []exec.NodeKind
	for _, n := range exe.Nodes {
		ks = append(ks, n.Kind)
	}
	return ks
}

func TestParseSimpleAssignmentExpression(t *testing.T) {
	exe, err := Parse("x _ 5\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exe.Statements()) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(exe.Statements()))
	}
	ks := kinds(exe)
	foundOp, foundEnd := false, false
	for _, k := range ks {
		if k == exec.NodeOperation {
			foundOp = true
		}
		if k == exec.NodeStatementEnd {
			foundEnd = true
		}
	}
	if !foundOp || !foundEnd {
		t.Fatalf("expected an Operation and a StatementEnd node, got %+v", ks)
	}
}

func TestParseIfElseBackpatchesBranchTargets(t *testing.T) {
	exe, err := Parse("if x > 0\n1\nelse\n2\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var cbranchIdx, branchIdx = -1, -1
	for i, n := range exe.Nodes {
		if n.Kind == exec.NodeCBranch {
			cbranchIdx = i
		}
		if n.Kind == exec.NodeBranch {
			branchIdx = i
		}
	}
	if cbranchIdx < 0 || branchIdx < 0 {
		t.Fatalf("expected CBranch and Branch nodes, got %+v", kinds(exe))
	}
	if exe.Nodes[cbranchIdx].Target <= cbranchIdx {
		t.Fatalf("expected CBranch target past itself, got %d", exe.Nodes[cbranchIdx].Target)
	}
	if exe.Nodes[branchIdx].Target != len(exe.Nodes) {
		t.Fatalf("expected Branch target at end of node array, got %d want %d", exe.Nodes[branchIdx].Target, len(exe.Nodes))
	}
}

func TestParseWhileLoopsBackToCondition(t *testing.T) {
	exe, err := Parse("while x > 0\nx _ x - 1\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var branchIdx = -1
	for i, n := range exe.Nodes {
		if n.Kind == exec.NodeBranch {
			branchIdx = i
		}
	}
	if branchIdx < 0 {
		t.Fatalf("expected a Branch node, got %+v", kinds(exe))
	}
	if exe.Nodes[branchIdx].Target != 0 {
		t.Fatalf("expected while's Branch to target node 0, got %d", exe.Nodes[branchIdx].Target)
	}
}

func TestParseFieldAccessChain(t *testing.T) {
	exe, err := Parse("p.x\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, n := range exe.Nodes {
		if n.Kind == exec.NodeIndex {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Index node for field access, got %+v", kinds(exe))
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	src := "$square (x)\nx * x\n$\n"
	exe, err := Parse(src, newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var def *exec.DefinitionNode
	for i := range exe.Nodes {
		if exe.Nodes[i].Kind == exec.NodeDefinition {
			def = &exe.Nodes[i].Definition
		}
	}
	if def == nil {
		t.Fatalf("expected a Definition node")
	}
	if def.Kind != exec.DefFunction || def.Name != "square" {
		t.Fatalf("expected function definition named square, got %+v", def)
	}
	if def.Func == nil || len(def.Func.Args) != 1 || def.Func.Args[0].Name != "x" {
		t.Fatalf("expected single formal x, got %+v", def.Func)
	}
	body, ok := def.Func.UserExecutable.(*exec.Executable)
	if !ok || body == nil {
		t.Fatalf("expected a UserExecutable body")
	}
	foundReturn := false
	for _, n := range body.Nodes {
		if n.Kind == exec.NodeFunctionReturn {
			foundReturn = true
		}
	}
	if !foundReturn {
		t.Fatalf("expected an (implicit) FunctionReturn node in the body")
	}
}

func TestParseStructureDefinition(t *testing.T) {
	exe, err := Parse("$point = [x:int, y:int]\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, n := range exe.Nodes {
		if n.Kind == exec.NodeDefinition && n.Definition.Kind == exec.DefStructure {
			found = true
			if len(n.Definition.StructFields) != 2 {
				t.Fatalf("expected 2 fields, got %+v", n.Definition.StructFields)
			}
		}
	}
	if !found {
		t.Fatalf("expected a structure Definition node")
	}
}

func TestParseSequenceDefinition(t *testing.T) {
	exe, err := Parse("$v = [1:10] int\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, n := range exe.Nodes {
		if n.Kind == exec.NodeDefinition && n.Definition.Kind == exec.DefSequence {
			found = true
			if n.Definition.SeqLower != 1 || n.Definition.SeqUpper == nil || *n.Definition.SeqUpper != 10 {
				t.Fatalf("unexpected sequence bounds: %+v", n.Definition)
			}
		}
	}
	if !found {
		t.Fatalf("expected a sequence Definition node")
	}
}

func TestParseAlternateDefinition(t *testing.T) {
	exe, err := Parse("$num = int ! real ! double\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, n := range exe.Nodes {
		if n.Kind == exec.NodeDefinition && n.Definition.Kind == exec.DefAlternate {
			found = true
			if n.Definition.AlternateMemberCount != 3 {
				t.Fatalf("expected 3 alternate members, got %d", n.Definition.AlternateMemberCount)
			}
		}
	}
	if !found {
		t.Fatalf("expected an alternate Definition node")
	}
}

func TestParseByReferenceAtom(t *testing.T) {
	exe, err := Parse("$x\n", newPermissiveResolver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, n := range exe.Nodes {
		if n.Kind == exec.NodeIdentifierByReference && n.Ref.Name == "x" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an IdentifierByReference node for $x, got %+v", kinds(exe))
	}
}
