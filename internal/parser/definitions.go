package parser

import (
	"github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/lexer"
	"github.com/jeffreyeast/go-ppl/internal/metadata"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

// parseDollarStatement disambiguates the two statement-level uses of a
// leading "$" (spec.md §4.2): "$name = ..." / "$name (args) ..."
// definitions, versus "$" as the by-reference-atom prefix of an ordinary
// expression statement.
func (p *Parser) parseDollarStatement() error {
	mark := p.cur.Mark()
	saved := p.cur

	p.advance() // consume '$'
	if p.cur.IsKind(lexer.Identifier) {
		name := p.cur.Current().Text
		after := p.cur.Advance()
		if after.IsOperator("=") {
			p.cur = after.Advance()
			return p.parseDefinitionBody(name)
		}
		if after.IsPunct("(") {
			p.cur = after
			return p.parseFunctionDefinition(name)
		}
	}

	p.cur = saved.ResetTo(mark)
	return p.parseExpressionStatement()
}

func (p *Parser) parseDefinitionBody(name string) error {
	if p.cur.IsPunct("[") {
		p.advance()
		if p.cur.IsKind(lexer.Integer) {
			return p.parseSequenceDefinition(name)
		}
		return p.parseStructureDefinition(name)
	}
	return p.parseAlternateDefinition(name)
}

// parseSequenceDefinition parses the remainder of "[ low:high? ]
// elemtype" (spec.md §4.2); "[" has already been consumed and the
// cursor sits on the lower-bound integer.
func (p *Parser) parseSequenceDefinition(name string) error {
	lower := p.cur.Current().IntVal
	p.advance()

	var upper *int32
	if p.cur.IsOperator(":") {
		p.advance()
		if p.cur.IsKind(lexer.Integer) {
			u := p.cur.Current().IntVal
			upper = &u
			p.advance()
		}
	}
	if !p.cur.IsPunct("]") {
		return p.fail("missing close bracket in sequence definition")
	}
	p.advance()
	if !p.cur.IsKind(lexer.Identifier) {
		return p.fail("missing element type in sequence definition")
	}
	elemType := p.cur.Current().Text
	p.advance()

	p.emit(exec.Node{Kind: exec.NodeDefinition, Definition: exec.DefinitionNode{
		Kind: exec.DefSequence, Name: name,
		SeqElementType: elemType, SeqLower: lower, SeqUpper: upper,
	}})
	return nil
}

// parseStructureDefinition parses the remainder of "[ field:type, ... ]"
// (spec.md §4.2); "[" has already been consumed and the cursor sits on
// the first field-name identifier.
func (p *Parser) parseStructureDefinition(name string) error {
	var fields []metadata.StructureField
	for {
		if !p.cur.IsKind(lexer.Identifier) {
			return p.fail("expected field name in structure definition")
		}
		fname := p.cur.Current().Text
		p.advance()

		ftype := "general"
		if p.cur.IsOperator(":") {
			p.advance()
			if !p.cur.IsKind(lexer.Identifier) {
				return p.fail("expected field type in structure definition")
			}
			ftype = p.cur.Current().Text
			p.advance()
		}
		fields = append(fields, metadata.StructureField{Name: fname, TypeName: ftype})

		if p.cur.IsPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if !p.cur.IsPunct("]") {
		return p.fail("missing close bracket in structure definition")
	}
	p.advance()

	p.emit(exec.Node{Kind: exec.NodeDefinition, Definition: exec.DefinitionNode{
		Kind: exec.DefStructure, Name: name, StructFields: fields,
	}})
	return nil
}

// parseAlternateDefinition parses "a ! b ! c" (spec.md §4.2): each
// member datatype name is pushed as a string value; the Definition node
// pops AlternateMemberCount of them.
func (p *Parser) parseAlternateDefinition(name string) error {
	var members []string
	for {
		if !p.cur.IsKind(lexer.Identifier) {
			return p.fail("expected datatype name in alternate definition")
		}
		members = append(members, p.cur.Current().Text)
		p.advance()
		if p.cur.IsOperator("!") {
			p.advance()
			continue
		}
		break
	}
	for _, m := range members {
		p.emit(exec.Node{Kind: exec.NodeValue, Literal: value.NewString(m)})
	}
	p.emit(exec.Node{Kind: exec.NodeDefinition, Definition: exec.DefinitionNode{
		Kind: exec.DefAlternate, Name: name, AlternateMemberCount: len(members),
	}})
	return nil
}

// parseFunctionDefinition parses "(args) [; locals] <body> $" (spec.md
// §4.2); the cursor sits on the opening "(".
func (p *Parser) parseFunctionDefinition(name string) error {
	p.advance() // consume '('

	var args []metadata.Argument
	if !p.cur.IsPunct(")") {
		for {
			mech := metadata.ByValue
			if p.cur.IsOperator("$") {
				mech = metadata.ByReference
				p.advance()
			}
			if !p.cur.IsKind(lexer.Identifier) {
				return p.fail("expected parameter name")
			}
			pname := p.cur.Current().Text
			p.advance()

			ptype := "general"
			if p.cur.IsOperator(":") {
				p.advance()
				if !p.cur.IsKind(lexer.Identifier) {
					return p.fail("expected parameter type")
				}
				ptype = p.cur.Current().Text
				p.advance()
			}
			args = append(args, metadata.Argument{Name: pname, Mechanism: mech, DeclaredType: ptype})

			if p.cur.IsPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.cur.IsPunct(")") {
		return p.fail("missing close paren in function signature")
	}
	p.advance()

	var locals []string
	if p.cur.IsPunct(";") {
		p.advance()
		for p.cur.IsKind(lexer.Identifier) {
			locals = append(locals, p.cur.Current().Text)
			p.advance()
			if p.cur.IsPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}

	for p.cur.IsKind(lexer.EOL) {
		p.advance()
	}

	bodyExe, labels, err := p.parseFunctionBody()
	if err != nil {
		return err
	}

	desc := &metadata.FunctionDescription{
		Name: name, Args: args, Locals: locals, Impl: metadata.ImplUser,
		UserExecutable: bodyExe, Labels: labels,
	}
	p.emit(exec.Node{Kind: exec.NodeDefinition, Definition: exec.DefinitionNode{
		Kind: exec.DefFunction, Name: name, Func: desc,
	}})
	return nil
}

// parseFunctionBody parses a user function's body as its own
// sub-Executable, with line numbers normalized so the first body line
// is 1 (spec.md §4.2 "Line numbering inside function bodies is
// normalized..."). It consumes up to and including the lone "$" line
// that terminates the body, then resyncs the outer parser's cursor.
func (p *Parser) parseFunctionBody() (*exec.Executable, map[string]int, error) {
	sub := &Parser{
		cur:      p.cur,
		resolver: p.resolver,
		exe:      exec.NewExecutable(p.exe.Source),
		lineBase: p.currentLine() - 1,
	}

	for {
		for sub.cur.IsKind(lexer.EOL) {
			sub.advance()
		}
		if sub.cur.IsOperator("$") {
			next := sub.cur.Advance().Current()
			if next.Kind == lexer.EOL || next.Kind == lexer.EOS {
				sub.advance()
				break
			}
		}
		if sub.cur.IsKind(lexer.EOS) {
			return nil, nil, sub.fail("missing function terminator $")
		}
		if err := sub.parseLine(); err != nil {
			return nil, nil, err
		}
	}

	p.cur = sub.cur

	hasReturn := false
	for _, n := range sub.exe.Nodes {
		if n.Kind == exec.NodeFunctionReturn {
			hasReturn = true
			break
		}
	}
	if !hasReturn {
		idx := len(sub.exe.Nodes)
		sub.exe.Nodes = append(sub.exe.Nodes, exec.Node{Kind: exec.NodeFunctionReturn})
		nodes := pplname.NewIntSet()
		nodes.Add(idx)
		line := len(sub.exe.Statements()) + 1
		sub.exe.AddStatement("", line, nodes)
		sub.exe.FunctionReturnLine = line
	}
	sub.exe.Finalize()

	return sub.exe, sub.labels, nil
}
