// Package parser builds an exec.Executable from PPL source text
// (spec.md §4.2): a program/function body, recursive-descent over a
// small statement/expression grammar, with control-flow forms lowered
// to branch nodes and backpatched after their body is emitted.
//
// Grounded on the teacher's (github.com/cwbudde/go-dws) immutable
// TokenCursor abstraction (internal/parser/cursor.go): a buffered,
// backtrackable cursor over the token stream replacing manual
// cur/peek-token bookkeeping. Generalized here from pkg/token.Token to
// internal/lexer.Token, and from the teacher's Pascal-family grammar to
// PPL's own (spec.md §4.2 "Grammar (design level)").
package parser

import "github.com/jeffreyeast/go-ppl/internal/lexer"

// cursor is a buffered, rewindable view over a lexer's token stream.
// Comment and blank-line handling is folded in here so the grammar
// never has to skip them explicitly. Every cursor derived from one
// newCursor call shares the same token buffer, so a token fetched while
// peeking through one cursor is seen by all of them.
type cursor struct {
	l      *lexer.Lexer
	tokens *[]lexer.Token
	index  int
}

func newCursor(l *lexer.Lexer) *cursor {
	c := &cursor{l: l, tokens: &[]lexer.Token{}}
	c.fetchFiltered()
	return c
}

// fetchFiltered appends the next non-comment token to the buffer.
func (c *cursor) fetchFiltered() {
	for {
		tok := c.l.NextToken()
		if tok.Kind == lexer.Comment {
			continue
		}
		*c.tokens = append(*c.tokens, tok)
		return
	}
}

func (c *cursor) ensure(n int) {
	for len(*c.tokens) <= n {
		c.fetchFiltered()
	}
}

// Current returns the token at the cursor.
func (c *cursor) Current() lexer.Token {
	c.ensure(c.index)
	return (*c.tokens)[c.index]
}

// Peek looks ahead n tokens (0 == Current) without advancing.
func (c *cursor) Peek(n int) lexer.Token {
	c.ensure(c.index + n)
	return (*c.tokens)[c.index+n]
}

// Advance returns a cursor positioned one token further along.
func (c *cursor) Advance() *cursor {
	return &cursor{l: c.l, tokens: c.tokens, index: c.index + 1}
}

// Mark returns a token to later ResetTo.
func (c *cursor) Mark() int { return c.index }

func (c *cursor) ResetTo(mark int) *cursor {
	return &cursor{l: c.l, tokens: c.tokens, index: mark}
}

func (c *cursor) IsKind(k lexer.Kind) bool {
	return c.Current().Kind == k
}

func (c *cursor) IsOperator(text string) bool {
	t := c.Current()
	return t.Kind == lexer.Operator && t.Text == text
}

func (c *cursor) IsPunct(text string) bool {
	t := c.Current()
	return t.Kind == lexer.Punctuation && t.Text == text
}

func (c *cursor) IsIdentifier(name string) bool {
	t := c.Current()
	return t.Kind == lexer.Identifier && equalFold(t.Text, name)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
