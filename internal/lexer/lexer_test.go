package lexer

import (
	"strings"
	"testing"
)

func collect(l *Lexer) []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOS {
			return toks
		}
	}
}

func TestLexIdentifierAndPunctuation(t *testing.T) {
	l := New("foo(bar, baz)")
	toks := collect(l)
	want := []Kind{Identifier, Punctuation, Identifier, Punctuation, Identifier, Punctuation, EOS}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[0].Text != "foo" {
		t.Fatalf("expected identifier foo, got %q", toks[0].Text)
	}
}

func TestLexIntegerRealDouble(t *testing.T) {
	l := New("10 3.14 2.5d0 123456789")
	toks := collect(l)
	if toks[0].Kind != Integer || toks[0].IntVal != 10 {
		t.Fatalf("expected integer 10, got %+v", toks[0])
	}
	if toks[1].Kind != Real {
		t.Fatalf("expected real, got %+v", toks[1])
	}
	if toks[2].Kind != Double {
		t.Fatalf("expected double (d exponent), got %+v", toks[2])
	}
	if toks[3].Kind != Double {
		t.Fatalf("expected 9-digit integer auto-promoted to double, got %+v", toks[3])
	}
}

func TestLexCharacterLiteral(t *testing.T) {
	l := New("'a'")
	tok := l.NextToken()
	if tok.Kind != Character || tok.CharVal != 'a' {
		t.Fatalf("expected char 'a', got %+v", tok)
	}
}

func TestLexStringLiteralWithDoubledQuote(t *testing.T) {
	l := New(`"say ""hi"""`)
	tok := l.NextToken()
	if tok.Kind != String {
		t.Fatalf("expected string, got %+v", tok)
	}
	if tok.Text != `say "hi"` {
		t.Fatalf("expected unescaped doubled quotes, got %q", tok.Text)
	}
}

func TestLexStringEscapeConversion(t *testing.T) {
	l := New(`"a\nb"`, WithEscapeConversion(true))
	tok := l.NextToken()
	if tok.Text != "a\nb" {
		t.Fatalf("expected escape-converted newline, got %q", tok.Text)
	}
}

func TestLexUnterminatedStringReportsError(t *testing.T) {
	l := New(`"abc`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected an unterminated-string error")
	}
}

func TestLexMaximalMunchOperatorShrink(t *testing.T) {
	l := New("a<=b")
	toks := collect(l)
	if toks[1].Kind != Operator || toks[1].Text != "<=" {
		t.Fatalf("expected <= operator, got %+v", toks[1])
	}
}

func TestLexCommentSkipsToEndOfLine(t *testing.T) {
	l := New("a ... this is a comment\nb")
	toks := collect(l)
	var kinds []Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	foundComment := false
	for _, k := range kinds {
		if k == Comment {
			foundComment = true
		}
	}
	if !foundComment {
		t.Fatalf("expected a Comment token, got kinds %+v", kinds)
	}
}

func TestLexSignMergingFoldsNegativeIntoLiteral(t *testing.T) {
	l := New("(-5)", WithSignMerging(true))
	toks := collect(l)
	if toks[1].Kind != Integer || toks[1].IntVal != -5 {
		t.Fatalf("expected merged -5 integer, got %+v", toks[1])
	}
}

func TestLexSignMergingLeavesOperatorAloneWhenNotFollowedByNumber(t *testing.T) {
	l := New("(-a)", WithSignMerging(true))
	tok0 := l.NextToken()
	if tok0.Kind != Punctuation || tok0.Text != "(" {
		t.Fatalf("expected (, got %+v", tok0)
	}
	tok1 := l.NextToken()
	if tok1.Kind != Operator || tok1.Text != "-" {
		t.Fatalf("expected unmerged - operator, got %+v", tok1)
	}
}

func TestStringValueRoundTrip(t *testing.T) {
	src := "foo(10, 'a')"
	l := New(src)
	var out string
	for {
		tok := l.NextToken()
		if tok.Kind == EOS {
			break
		}
		out += tok.StringValue()
	}
	// Whitespace produces no token, so the round trip holds modulo spaces.
	if want := strings.ReplaceAll(src, " ", ""); out != want {
		t.Fatalf("round-trip mismatch: got %q, want %q", out, want)
	}
}
