package parser

import (
	"github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/lexer"
	"github.com/jeffreyeast/go-ppl/internal/value"
)

// parseExpression parses "an atom/indexed-value chain, optionally
// followed by a diadic operator and another expression (left-to-right
// by default)" (spec.md §4.2) and returns the node position of the
// resulting value. The right operand is itself a full expression, so an
// operator chain groups to the right ("x _ 3 + 4" assigns 7); operands
// are still emitted, and so evaluated, left to right.
func (p *Parser) parseExpression() (int, error) {
	left, err := p.parseIndexedAtom()
	if err != nil {
		return 0, err
	}
	if p.isDiadicOperatorNext() {
		opName := p.cur.Current().Text
		p.advance()
		right, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		left = p.emit(exec.Node{Kind: exec.NodeOperation, Operation: exec.OperationNode{
			Name: opName, ArgPositions: []int{left, right},
		}})
	}
	return left, nil
}

func (p *Parser) isDiadicOperatorNext() bool {
	t := p.cur.Current()
	switch t.Kind {
	case lexer.Operator:
		if t.Text == "$" {
			return false
		}
		return p.resolver.HasArity(t.Text, 2)
	case lexer.Identifier:
		return p.resolver.HasArity(t.Text, 2)
	}
	return false
}

func (p *Parser) isMonadicOperatorNext() bool {
	t := p.cur.Current()
	if t.Kind != lexer.Operator || t.Text == "$" {
		return false
	}
	return p.resolver.HasArity(t.Text, 1)
}

// parseIndexedAtom parses an atom then any trailing chain of ".field"
// references and "[...]" indexings (spec.md §4.2; "multi-dim [i,j] is
// shorthand for nested [i][j]").
func (p *Parser) parseIndexedAtom() (int, error) {
	base, err := p.parseAtom()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.cur.IsOperator("."):
			p.advance()
			if !p.cur.IsKind(lexer.Identifier) {
				return 0, p.fail("expected field name after '.'")
			}
			field := p.cur.Current().Text
			p.advance()
			selPos := p.emit(exec.Node{Kind: exec.NodeIdentifierByValue, Ref: exec.Ref{Name: field}})
			base = p.emit(exec.Node{Kind: exec.NodeIndex, Index: exec.IndexNode{ValuePos: base, IndexPos: selPos}})
		case p.cur.IsPunct("["):
			p.advance()
			for {
				idxPos, err := p.parseExpression()
				if err != nil {
					return 0, err
				}
				base = p.emit(exec.Node{Kind: exec.NodeIndex, Index: exec.IndexNode{ValuePos: base, IndexPos: idxPos}})
				if p.cur.IsPunct(",") {
					p.advance()
					continue
				}
				break
			}
			if !p.cur.IsPunct("]") {
				return 0, p.fail("missing close bracket")
			}
			p.advance()
		default:
			return base, nil
		}
	}
}

// parseAtom parses "literal | identifier | ( expression ) | [
// comma-expression-list ] (tuple) | monadic-operator expression | $
// identifier (by-reference) | function-call" (spec.md §4.2).
func (p *Parser) parseAtom() (int, error) {
	tok := p.cur.Current()

	switch {
	case p.cur.IsPunct("("):
		p.advance()
		pos, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if !p.cur.IsPunct(")") {
			return 0, p.fail("missing close paren")
		}
		p.advance()
		return pos, nil

	case p.cur.IsPunct("["):
		p.advance()
		var elems []int
		if !p.cur.IsPunct("]") {
			for {
				elemPos, err := p.parseExpression()
				if err != nil {
					return 0, err
				}
				elems = append(elems, elemPos)
				if p.cur.IsPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		if !p.cur.IsPunct("]") {
			return 0, p.fail("missing close bracket in tuple")
		}
		p.advance()
		return p.emit(exec.Node{Kind: exec.NodeOperation, Operation: exec.OperationNode{Name: "tuple", ArgPositions: elems}}), nil

	case p.cur.IsOperator("$"):
		p.advance()
		if !p.cur.IsKind(lexer.Identifier) {
			return 0, p.fail("expected identifier after '$'")
		}
		name := p.cur.Current().Text
		p.advance()
		return p.emit(exec.Node{Kind: exec.NodeIdentifierByReference, Ref: exec.Ref{Name: name}}), nil

	case p.isMonadicOperatorNext():
		name := tok.Text
		p.advance()
		operand, err := p.parseAtom()
		if err != nil {
			return 0, err
		}
		return p.emit(exec.Node{Kind: exec.NodeOperation, Operation: exec.OperationNode{Name: name, ArgPositions: []int{operand}}}), nil

	case tok.Kind == lexer.Identifier:
		p.advance()
		if p.cur.IsPunct("(") {
			p.advance()
			var args []int
			if !p.cur.IsPunct(")") {
				for {
					argPos, err := p.parseExpression()
					if err != nil {
						return 0, err
					}
					args = append(args, argPos)
					if p.cur.IsPunct(",") {
						p.advance()
						continue
					}
					break
				}
			}
			if !p.cur.IsPunct(")") {
				return 0, p.fail("missing close paren in call")
			}
			p.advance()
			return p.emit(exec.Node{Kind: exec.NodeOperation, Operation: exec.OperationNode{Name: tok.Text, ArgPositions: args}}), nil
		}
		return p.emit(exec.Node{Kind: exec.NodeIdentifierByValue, Ref: exec.Ref{Name: tok.Text}}), nil

	case tok.Kind == lexer.Integer:
		p.advance()
		return p.emit(exec.Node{Kind: exec.NodeValue, Literal: value.Int{Value: tok.IntVal}}), nil

	case tok.Kind == lexer.Real:
		p.advance()
		return p.emit(exec.Node{Kind: exec.NodeValue, Literal: value.Real{Value: tok.RealVal}}), nil

	case tok.Kind == lexer.Double:
		p.advance()
		return p.emit(exec.Node{Kind: exec.NodeValue, Literal: value.Double{Value: tok.DoubleVal}}), nil

	case tok.Kind == lexer.Character:
		p.advance()
		return p.emit(exec.Node{Kind: exec.NodeValue, Literal: value.Char{Value: tok.CharVal}}), nil

	case tok.Kind == lexer.String:
		p.advance()
		return p.emit(exec.Node{Kind: exec.NodeValue, Literal: value.NewString(tok.Text)}), nil
	}

	return 0, p.fail("unexpected token")
}
