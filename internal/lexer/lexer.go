// Package lexer implements the PPL tokenizer (spec.md §4.1): character
// classification, maximal-munch composable-operator shrinking, numeric
// literal composition (integer/real/double, auto-promotion past 8
// significant digits), and the two feature-gated post-processing passes
// (string escape conversion, numeric sign merging).
//
// Grounded on the teacher's (github.com/cwbudde/go-dws) rune-based
// Lexer (internal/lexer/lexer.go): UTF-8-aware readChar/peekChar,
// line/column position tracking, and the functional-options
// construction pattern (WithPreserveComments/WithTracing generalized
// here to WithSignMerging/WithEscapeConversion/WithKnownOperator). Exact
// composable-operator shrink and digit-count-promotes-to-double
// behavior follow original src/lexical.rs / src/lexical/context.rs.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jeffreyeast/go-ppl/internal/pplerr"
)

// composable is the set of characters a PPL operator lexeme may be built
// from (spec.md §4.1 "composable-operator" class), plus the sign/escape
// characters the grammar also folds into operator composition.
const composable = "*>=<^_&#/@:!~?%$-+\\."

func isComposable(r rune) bool {
	for _, c := range composable {
		if c == r {
			return true
		}
	}
	return false
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isPunct(r rune) bool {
	switch r {
	case '(', ')', '[', ']', ',', ';', '{', '}':
		return true
	}
	return false
}

// KnownOperatorFunc reports whether name is a registered operator
// (queried against the workspace's function tables during maximal-munch
// shrink, spec.md §4.1). Without a WithKnownOperator option, the lexer
// uses a default predicate that accepts every single-character
// composable lexeme and a conservative built-in set of common
// multi-character operators, enough to lex standalone PPL fragments in
// tests without a live workspace.
type KnownOperatorFunc func(name string) bool

var defaultKnownOperators = map[string]bool{
	"<=": true, ">=": true, "==": true, "<>": true,
	"-->": true, "__": true,
}

func defaultKnownOperator(name string) bool {
	if len(name) == 1 {
		return true
	}
	return defaultKnownOperators[name]
}

// Lexer tokenizes PPL source text.
type Lexer struct {
	input        string
	position     int
	readPosition int
	line         int
	column       int
	ch           rune

	tokenIndex int
	errors     []*pplerr.EvalError

	signMerging      bool
	escapeConversion bool
	knownOperator    KnownOperatorFunc
	lastEmitted      *Token
	pending          *Token // a token already scanned while peeking ahead, not yet returned
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithSignMerging enables post-processing pass 2 (spec.md §4.1):
// folding a leading +/- into an immediately-following numeric literal
// when the sign itself follows another operator/opening punctuation.
func WithSignMerging(enabled bool) Option {
	return func(l *Lexer) { l.signMerging = enabled }
}

// WithEscapeConversion enables post-processing pass 1: converting \n \r
// \t escapes inside string/character literals into control characters.
func WithEscapeConversion(enabled bool) Option {
	return func(l *Lexer) { l.escapeConversion = enabled }
}

// WithKnownOperator supplies the workspace's "is this spelling a
// registered operator" predicate, used while shrinking a maximal-munch
// composable-operator lexeme (spec.md §4.1).
func WithKnownOperator(fn KnownOperatorFunc) Option {
	return func(l *Lexer) { l.knownOperator = fn }
}

// New creates a Lexer over input with the given options applied.
func New(input string, opts ...Option) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, line: 1, column: 0, knownOperator: defaultKnownOperator}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Errors returns every LexError accumulated so far.
func (l *Lexer) Errors() []*pplerr.EvalError {
	return l.errors
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if r == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() Position {
	return Position{TokenIndex: l.tokenIndex, ByteOffset: l.position, Line: l.line, Column: l.column}
}

func (l *Lexer) addError(kind pplerr.Kind, msg string, pos Position) {
	l.errors = append(l.errors, pplerr.New(kind, "%s", msg).At(pplerr.Position{Line: pos.Line, Column: pos.Column}, l.input, ""))
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken scans and returns the next token, advancing the lexer.
func (l *Lexer) NextToken() Token {
	if l.pending != nil {
		tok := *l.pending
		l.pending = nil
		l.lastEmitted = &tok
		return tok
	}

	l.skipWhitespace()
	pos := l.currentPos()

	var tok Token
	switch {
	case l.ch == 0:
		tok = Token{Kind: EOS, Pos: pos}
	case l.ch == '\n':
		l.readChar()
		tok = Token{Kind: EOL, Pos: pos, Text: "\n"}
	case isAlpha(l.ch):
		tok = l.lexIdentifier(pos)
	case isDigit(l.ch):
		tok = l.lexNumber(pos)
	case l.ch == '.' && isDigit(l.peekChar()):
		tok = l.lexNumber(pos)
	case l.ch == '\'':
		tok = l.lexChar(pos)
	case l.ch == '"':
		tok = l.lexString(pos)
	case isPunct(l.ch):
		tok = Token{Kind: Punctuation, Pos: pos, Text: string(l.ch)}
		l.readChar()
	case isComposable(l.ch):
		tok = l.lexOperator(pos)
	default:
		tok = Token{Kind: Illegal, Pos: pos, Text: string(l.ch)}
		l.readChar()
	}

	tok.Pos.TokenIndex = l.tokenIndex
	l.tokenIndex++

	if l.signMerging {
		tok = l.maybeMergeSign(tok)
	}
	l.lastEmitted = &tok
	return tok
}

func (l *Lexer) lexIdentifier(pos Position) Token {
	// "." is deliberately excluded from identifier composition: it is a
	// separate composable-operator token, used by the parser to chain
	// ".field" structure references onto a preceding atom (spec.md
	// §4.2), never folded into the identifier's spelling.
	start := l.position
	for isAlpha(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return Token{Kind: Identifier, Pos: pos, Text: l.input[start:l.position]}
}

func (l *Lexer) lexNumber(pos Position) Token {
	start := l.position
	isRealLit := false
	isDbl := false

	if l.ch == '.' {
		isRealLit = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' && isDigit(l.peekChar()) {
			isRealLit = true
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	if l.ch == 'e' || l.ch == 'E' || l.ch == 'd' || l.ch == 'D' {
		if l.ch == 'd' || l.ch == 'D' {
			isDbl = true
		}
		isRealLit = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		expStart := l.position
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.position == expStart {
			l.addError(pplerr.Lex, "arithmetic overflow in exponent", pos)
		}
	}

	text := l.input[start:l.position]

	if !isRealLit {
		if countSignificantDigits(text) > 8 {
			isDbl = true
			isRealLit = true
		}
	}

	switch {
	case isDbl:
		f, err := strconv.ParseFloat(strings.NewReplacer("d", "e", "D", "e").Replace(text), 64)
		if err != nil {
			l.addError(pplerr.Lex, "arithmetic overflow in exponent", pos)
		}
		return Token{Kind: Double, Pos: pos, Text: text, DoubleVal: f}
	case isRealLit:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			l.addError(pplerr.Lex, "arithmetic overflow in exponent", pos)
		}
		return Token{Kind: Real, Pos: pos, Text: text, RealVal: float32(f)}
	default:
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			l.addError(pplerr.Lex, "integer overflow", pos)
			return Token{Kind: Illegal, Pos: pos, Text: text}
		}
		return Token{Kind: Integer, Pos: pos, Text: text, IntVal: int32(i)}
	}
}

func countSignificantDigits(s string) int {
	n := 0
	for _, r := range s {
		if isDigit(r) {
			n++
		}
	}
	return n
}

func (l *Lexer) lexChar(pos Position) Token {
	l.readChar() // consume opening '
	if l.ch == 0 || l.ch == '\n' {
		l.addError(pplerr.Lex, "missing character after '", pos)
		return Token{Kind: Illegal, Pos: pos, Text: "'"}
	}
	var r rune
	if l.ch == '\\' && l.escapeConversion {
		l.readChar()
		r = convertEscape(l.ch)
	} else {
		r = l.ch
	}
	l.readChar()
	if l.ch == '\'' {
		l.readChar()
	}
	return Token{Kind: Character, Pos: pos, Text: string(r), CharVal: r}
}

func (l *Lexer) lexString(pos Position) Token {
	l.readChar() // consume opening "
	var runes []rune
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.addError(pplerr.Lex, "unterminated string", pos)
			break
		}
		if l.ch == '"' {
			if l.peekChar() == '"' {
				runes = append(runes, '"')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		if l.ch == '\\' && l.escapeConversion {
			l.readChar()
			runes = append(runes, convertEscape(l.ch))
			l.readChar()
			continue
		}
		runes = append(runes, l.ch)
		l.readChar()
	}
	return Token{Kind: String, Pos: pos, Text: string(runes)}
}

func convertEscape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return r
	}
}

// lexOperator applies maximal munch over the composable character set,
// then shrinks from the right until the lexeme is a known operator (or
// length 1), matching spec.md §4.1. "..." triggers comment mode.
func (l *Lexer) lexOperator(pos Position) Token {
	start := l.position
	for isComposable(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]

	if lexeme == "..." {
		l.skipComment()
		return Token{Kind: Comment, Pos: pos, Text: lexeme}
	}

	runes := []rune(lexeme)
	for len(runes) > 1 && !l.knownOperator(string(runes)) {
		runes = runes[:len(runes)-1]
	}
	lexeme = string(runes)

	newPos := start + len(lexeme)
	l.position = newPos
	if newPos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[newPos:])
		l.ch = r
		l.readPosition = newPos + size
	} else {
		l.ch = 0
		l.readPosition = newPos
	}

	return Token{Kind: Operator, Pos: pos, Text: lexeme}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// maybeMergeSign implements post-processing pass 2 (spec.md §4.1): a
// +/- operator immediately preceded by another operator/opening
// punctuation and immediately followed by a numeric literal is merged
// into that literal.
func (l *Lexer) maybeMergeSign(tok Token) Token {
	if tok.Kind != Operator || (tok.Text != "+" && tok.Text != "-") {
		return tok
	}
	prev := l.lastEmitted
	if prev == nil {
		return tok
	}
	precededByOperatorOrOpen := prev.Kind == Operator ||
		(prev.Kind == Punctuation && (prev.Text == "(" || prev.Text == "[" || prev.Text == ","))
	if !precededByOperatorOrOpen {
		return tok
	}

	next := l.NextToken()
	if next.Kind != Integer && next.Kind != Real && next.Kind != Double {
		// Not a numeric literal: the sign stands on its own. Buffer the
		// token we already scanned so the next NextToken call returns it
		// instead of losing it.
		l.pending = &next
		l.lastEmitted = &tok
		return tok
	}

	sign := tok.Text
	merged := next
	merged.Pos = tok.Pos
	merged.Text = sign + next.Text
	if sign == "-" {
		switch merged.Kind {
		case Integer:
			merged.IntVal = -next.IntVal
		case Real:
			merged.RealVal = -next.RealVal
		case Double:
			merged.DoubleVal = -next.DoubleVal
		}
	}
	return merged
}
