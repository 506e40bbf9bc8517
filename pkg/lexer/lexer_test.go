package lexer_test

import (
	"testing"

	"minipl/interpreter-go/pkg/lexer"
	"minipl/interpreter-go/pkg/token"
)

func runTokenize(t *testing.T, source string) []token.Token {
	t.Helper()
	toks := lexer.New(source).Tokenize()
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("token stream for %q does not end in EOF: %v", source, toks)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Every token kind survives display-then-rescan as exactly one token.
func TestDisplayRoundTrip(t *testing.T) {
	tests := []token.Token{
		token.New(token.Identifier, "counter_2"),
		token.New(token.IntegerConstant, "42"),
		token.New(token.StringValue, "hello"),
		token.New(token.StringValue, "line\nbreak \"quoted\" back\\slash\ttab"),
		token.New(token.StringValue, ""),
		token.New(token.Plus, ""),
		token.New(token.Minus, ""),
		token.New(token.Multiply, ""),
		token.New(token.Divide, ""),
		token.New(token.Equals, ""),
		token.New(token.LessThan, ""),
		token.New(token.GreaterThan, ""),
		token.New(token.And, ""),
		token.New(token.Not, ""),
		token.New(token.Assign, ""),
		token.New(token.Colon, ""),
		token.New(token.Semicolon, ""),
		token.New(token.LeftParen, ""),
		token.New(token.RightParen, ""),
		token.New(token.Range, ""),
		token.New(token.Var, ""),
		token.New(token.Print, ""),
		token.New(token.For, ""),
		token.New(token.In, ""),
		token.New(token.Do, ""),
		token.New(token.End, ""),
		token.New(token.True, ""),
		token.New(token.False, ""),
		token.New(token.BoolType, ""),
		token.New(token.StringType, ""),
		token.New(token.IntType, ""),
		token.New(token.Assert, ""),
		token.New(token.Read, ""),
	}

	for _, want := range tests {
		t.Run(want.Kind.String(), func(t *testing.T) {
			toks := runTokenize(t, want.String())
			if len(toks) != 2 {
				t.Fatalf("expected [token, EOF] for %q, got %v", want.String(), toks)
			}
			got := toks[0]
			if got.Kind != want.Kind {
				t.Fatalf("expected kind %s, got %s", want.Kind, got.Kind)
			}
			switch want.Kind {
			case token.Identifier, token.IntegerConstant, token.StringValue:
				if got.Literal != want.Literal {
					t.Fatalf("expected literal %q, got %q", want.Literal, got.Literal)
				}
			}
		})
	}
}

func TestTokenizeStatement(t *testing.T) {
	toks := runTokenize(t, `var nTimes : int := 0; for i in 0..nTimes-1 do print "x"; end for;`)
	want := []token.Kind{
		token.Var, token.Identifier, token.Colon, token.IntType, token.Assign, token.IntegerConstant, token.Semicolon,
		token.For, token.Identifier, token.In, token.IntegerConstant, token.Range, token.Identifier, token.Minus, token.IntegerConstant, token.Do,
		token.Print, token.StringValue, token.Semicolon,
		token.End, token.For, token.Semicolon,
		token.EOF,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("unexpected kinds:\n got %v\nwant %v", got, want)
	}
}

func TestAdjacentTokensNeedNoWhitespace(t *testing.T) {
	toks := runTokenize(t, "x:=(1+2)*3;assert(!b&c<d>e=f);")
	want := []token.Kind{
		token.Identifier, token.Assign, token.LeftParen, token.IntegerConstant, token.Plus, token.IntegerConstant,
		token.RightParen, token.Multiply, token.IntegerConstant, token.Semicolon,
		token.Assert, token.LeftParen, token.Not, token.Identifier, token.And, token.Identifier, token.LessThan,
		token.Identifier, token.GreaterThan, token.Identifier, token.Equals, token.Identifier, token.RightParen,
		token.Semicolon, token.EOF,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("unexpected kinds:\n got %v\nwant %v", got, want)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := runTokenize(t, `"a\"b\\c\nd\te"`)
	if toks[0].Kind != token.StringValue {
		t.Fatalf("expected string, got %s", toks[0].Kind)
	}
	if want := "a\"b\\c\nd\te"; toks[0].Literal != want {
		t.Fatalf("expected %q, got %q", want, toks[0].Literal)
	}
}

func TestIllegalInput(t *testing.T) {
	tests := []struct {
		source  string
		literal string
	}{
		{`"bad \q escape"`, `"bad \q escape"`},
		{`"never closed`, `"never closed`},
		{"$", "$"},
		{".", "."},
		{"/* open", "/* open"},
	}
	for _, tc := range tests {
		toks := runTokenize(t, tc.source)
		if toks[0].Kind != token.Illegal {
			t.Fatalf("%q: expected illegal token, got %s", tc.source, toks[0].Kind)
		}
		if toks[0].Literal != tc.literal {
			t.Fatalf("%q: expected literal %q, got %q", tc.source, tc.literal, toks[0].Literal)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	source := "// leading\nprint /* inline /* nested */ still comment */ 1; // trailing"
	toks := runTokenize(t, source)
	want := []token.Kind{token.Print, token.IntegerConstant, token.Semicolon, token.EOF}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("unexpected kinds:\n got %v\nwant %v", got, want)
	}
	if toks[0].Pos.Line != 2 || toks[0].Pos.Column != 1 {
		t.Fatalf("expected print at 2:1, got %s", toks[0].Pos)
	}
}

func TestDivideIsNotComment(t *testing.T) {
	toks := runTokenize(t, "a / b")
	want := []token.Kind{token.Identifier, token.Divide, token.Identifier, token.EOF}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("unexpected kinds:\n got %v\nwant %v", got, want)
	}
}

func TestPositions(t *testing.T) {
	toks := runTokenize(t, "var x\n  : int;")
	tests := []struct {
		idx          int
		line, column int
		offset       int
	}{
		{0, 1, 1, 0},
		{1, 1, 5, 4},
		{2, 2, 3, 8},
		{3, 2, 5, 10},
		{4, 2, 8, 13},
	}
	for _, tc := range tests {
		pos := toks[tc.idx].Pos
		if pos.Line != tc.line || pos.Column != tc.column || pos.Offset != tc.offset {
			t.Fatalf("token %d (%s): expected %d:%d@%d, got %s@%d", tc.idx, toks[tc.idx], tc.line, tc.column, tc.offset, pos, pos.Offset)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := lexer.New("x")
	if tok := l.NextToken(); tok.Kind != token.Identifier {
		t.Fatalf("expected identifier, got %s", tok.Kind)
	}
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Kind)
		}
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	toks := runTokenize(t, "Var PRINT print")
	want := []token.Kind{token.Identifier, token.Identifier, token.Print, token.EOF}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("unexpected kinds:\n got %v\nwant %v", got, want)
	}
}
