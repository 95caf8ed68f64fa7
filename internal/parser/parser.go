package parser

import (
	"strings"

	"github.com/jeffreyeast/go-ppl/internal/exec"
	"github.com/jeffreyeast/go-ppl/internal/lexer"
	"github.com/jeffreyeast/go-ppl/internal/pplerr"
	"github.com/jeffreyeast/go-ppl/internal/pplname"
)

// Resolver answers the arity questions the parser needs to disambiguate
// monadic/diadic/nullary operator uses (spec.md §4.2 "Operator
// resolution"). The workspace implements this over its live function
// tables; permissiveResolver (parser_test.go) stands in for tests that
// parse fragments without a workspace.
type Resolver interface {
	HasArity(name string, arity int) bool
}

// Parser builds one exec.Executable (the top-level program, or a single
// user function's body) from a token stream.
type Parser struct {
	cur      *cursor
	resolver Resolver
	exe      *exec.Executable
	lineBase int // subtracted from token line numbers (function-body normalization)

	stmtNodes *pplname.IntSet
	stmtLine  int

	labels map[string]int
}

// Parse parses source as a top-level program (immediate-mode input or a
// whole script) and returns its Executable.
func Parse(source string, resolver Resolver) (*exec.Executable, error) {
	known := func(name string) bool {
		if len(name) == 1 {
			return true
		}
		return resolver.HasArity(name, 0) || resolver.HasArity(name, 1) || resolver.HasArity(name, 2)
	}
	l := lexer.New(source,
		lexer.WithSignMerging(true),
		lexer.WithEscapeConversion(true),
		lexer.WithKnownOperator(known))

	p := &Parser{cur: newCursor(l), resolver: resolver, exe: exec.NewExecutable(source)}
	if err := p.parseProgram(); err != nil {
		return nil, err
	}
	p.exe.Finalize()
	return p.exe, nil
}

func (p *Parser) advance() {
	p.cur = p.cur.Advance()
}

func (p *Parser) currentLine() int {
	return p.cur.Current().Pos.Line
}

func (p *Parser) currentByteOffset() int {
	return p.cur.Current().Pos.ByteOffset
}

func (p *Parser) emit(n exec.Node) int {
	idx := len(p.exe.Nodes)
	p.exe.Nodes = append(p.exe.Nodes, n)
	if p.stmtNodes != nil {
		p.stmtNodes.Add(idx)
	}
	return idx
}

func (p *Parser) fail(msg string) error {
	tok := p.cur.Current()
	return pplerr.New(pplerr.Parse, "%s", msg).At(pplerr.Position{Line: tok.Pos.Line, Column: tok.Pos.Column}, p.exe.Source, "")
}

// parseProgram consumes statements/blocks until end of input.
func (p *Parser) parseProgram() error {
	for !p.cur.IsKind(lexer.EOS) {
		if err := p.parseLine(); err != nil {
			return err
		}
	}
	return nil
}

// parseLine skips blank lines, then parses either a brace block (a pure
// grouping construct — every statement inside gets its own Executable
// statement entry, matching the rest of the language's line-oriented
// addressing) or a single statement.
func (p *Parser) parseLine() error {
	for p.cur.IsKind(lexer.EOL) {
		p.advance()
	}
	if p.cur.IsKind(lexer.EOS) {
		return nil
	}
	if p.cur.IsPunct("{") {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseBlock() error {
	p.advance() // consume {
	for {
		for p.cur.IsKind(lexer.EOL) {
			p.advance()
		}
		if p.cur.IsPunct("}") {
			p.advance()
			return nil
		}
		if p.cur.IsKind(lexer.EOS) {
			return p.fail("missing close brace")
		}
		if err := p.parseLine(); err != nil {
			return err
		}
	}
}

// parseStatement parses one statement and records it in the Executable
// (spec.md §4.2 "Statement accounting").
func (p *Parser) parseStatement() error {
	line := p.currentLine()
	startOffset := p.currentByteOffset()

	savedNodes, savedLine := p.stmtNodes, p.stmtLine
	p.stmtNodes = pplname.NewIntSet()
	p.stmtLine = line

	if err := p.parseStatementContent(); err != nil {
		return err
	}

	endOffset := p.currentByteOffset()
	source := ""
	if endOffset > startOffset && endOffset <= len(p.exe.Source) {
		source = p.exe.Source[startOffset:endOffset]
	}
	if p.stmtNodes.Len() == 0 {
		p.emit(exec.Node{Kind: exec.NodeNoop})
	}
	p.exe.AddStatement(strings.TrimRight(source, "\r\n"), line-p.lineBase, p.stmtNodes)

	for p.cur.IsKind(lexer.EOL) {
		p.advance()
	}

	p.stmtNodes, p.stmtLine = savedNodes, savedLine
	return nil
}

func (p *Parser) parseStatementContent() error {
	switch {
	case p.cur.IsKind(lexer.EOL) || p.cur.IsKind(lexer.EOS):
		return nil
	case p.cur.IsOperator("$"):
		return p.parseDollarStatement()
	case p.cur.IsIdentifier("if"):
		return p.parseIf()
	case p.cur.IsIdentifier("while"):
		return p.parseWhile()
	default:
		return p.parseLabelOrExpressionStatement()
	}
}

func (p *Parser) parseLabelOrExpressionStatement() error {
	if p.cur.IsKind(lexer.Identifier) && p.cur.Advance().IsOperator(":") {
		name := p.cur.Current().Text
		p.advance() // identifier
		p.advance() // ':'
		p.emit(exec.Node{Kind: exec.NodeStatementLabel, LabelName: name})
		if p.labels == nil {
			p.labels = map[string]int{}
		}
		p.labels[strings.ToLower(name)] = p.stmtLine - p.lineBase
		if p.cur.IsKind(lexer.EOL) || p.cur.IsKind(lexer.EOS) {
			return nil
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() error {
	rootPos, err := p.parseExpression()
	if err != nil {
		return err
	}
	p.emit(exec.Node{Kind: exec.NodeStatementEnd, StatementEndPos: rootPos})
	return nil
}

// parseIf lowers `if c t [else e]` per spec.md §4.2: compute(c);
// cbranch(c, elseOrEnd); <t>; [branch(end); elseOrEnd: <e>;] end:
func (p *Parser) parseIf() error {
	p.advance() // consume 'if'
	if _, err := p.parseExpression(); err != nil {
		return err
	}
	cbranch := p.emit(exec.Node{Kind: exec.NodeCBranch})

	for p.cur.IsKind(lexer.EOL) {
		p.advance()
	}
	if err := p.parseLine(); err != nil {
		return err
	}

	mark := p.cur.Mark()
	saved := p.cur
	for p.cur.IsKind(lexer.EOL) {
		p.advance()
	}
	if p.cur.IsIdentifier("else") {
		branchEnd := p.emit(exec.Node{Kind: exec.NodeBranch})
		p.exe.Nodes[cbranch].Target = len(p.exe.Nodes)
		p.advance() // consume 'else'
		if err := p.parseLine(); err != nil {
			return err
		}
		p.exe.Nodes[branchEnd].Target = len(p.exe.Nodes)
		return nil
	}
	p.cur = saved.ResetTo(mark)
	p.exe.Nodes[cbranch].Target = len(p.exe.Nodes)
	return nil
}

// parseWhile lowers `while c s` per spec.md §4.2: L: compute(c);
// cbranch(c, end); <s>; branch(L); end:
func (p *Parser) parseWhile() error {
	loopStart := len(p.exe.Nodes)
	p.advance() // consume 'while'
	if _, err := p.parseExpression(); err != nil {
		return err
	}
	cbranch := p.emit(exec.Node{Kind: exec.NodeCBranch})

	for p.cur.IsKind(lexer.EOL) {
		p.advance()
	}
	if err := p.parseLine(); err != nil {
		return err
	}

	p.emit(exec.Node{Kind: exec.NodeBranch, Target: loopStart})
	p.exe.Nodes[cbranch].Target = len(p.exe.Nodes)
	return nil
}
