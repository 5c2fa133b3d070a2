package lexer

import "testing"

func collect(l *Lexer) []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks
}

func TestHexIntegerLiteral(t *testing.T) {
	l := New("t.nilo", "0xFF")
	tok := l.NextToken()
	if tok.Kind != IntegerLiteral || tok.Image != "0xFF" || tok.IntValue != 255 {
		t.Fatalf("got %+v", tok)
	}
}

func TestBinaryIntegerLiteral(t *testing.T) {
	l := New("t.nilo", "0b1010")
	tok := l.NextToken()
	if tok.Kind != IntegerLiteral || tok.IntValue != 10 {
		t.Fatalf("got %+v", tok)
	}
}

func TestFloatFromExponent(t *testing.T) {
	l := New("t.nilo", "1.5e2")
	tok := l.NextToken()
	if tok.Kind != FloatLiteral || tok.FloatValue != 150.0 {
		t.Fatalf("got %+v", tok)
	}
}

func TestDecimalInteger(t *testing.T) {
	l := New("t.nilo", "42")
	tok := l.NextToken()
	if tok.Kind != IntegerLiteral || tok.IntValue != 42 {
		t.Fatalf("got %+v", tok)
	}
}

func TestIdentifierVsReserved(t *testing.T) {
	l := New("t.nilo", "func myFunc")
	first := l.NextToken()
	if first.Kind != Reserved || first.Image != "func" {
		t.Fatalf("got %+v", first)
	}
	second := l.NextToken()
	if second.Kind != Ident || second.Image != "myFunc" {
		t.Fatalf("got %+v", second)
	}
}

func TestFatArrow(t *testing.T) {
	l := New("t.nilo", "=>")
	tok := l.NextToken()
	if tok.Kind != Symbol || tok.Image != "=>" {
		t.Fatalf("got %+v", tok)
	}
}

func TestEqualsFollowedByOperatorCharBecomesOper(t *testing.T) {
	l := New("t.nilo", "==")
	tok := l.NextToken()
	if tok.Kind != Oper || tok.Image != "==" {
		t.Fatalf("got %+v", tok)
	}
}

func TestAngleBracketsAreSingleTokens(t *testing.T) {
	l := New("t.nilo", "<<")
	first := l.NextToken()
	second := l.NextToken()
	if first.Kind != Oper || first.Image != "<" {
		t.Fatalf("got %+v", first)
	}
	if second.Kind != Oper || second.Image != "<" {
		t.Fatalf("got %+v", second)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New("t.nilo", `"a\nb\x41B"`)
	tok := l.NextToken()
	if tok.Kind != StringLiteral {
		t.Fatalf("got %+v", tok)
	}
	if tok.StringValue != "a\nbAB" {
		t.Fatalf("decoded = %q", tok.StringValue)
	}
}

func TestCharacterLiteralRequiresOnePayload(t *testing.T) {
	l := New("t.nilo", "''")
	tok := l.NextToken()
	if tok.Kind != Illegal {
		t.Fatalf("expected illegal empty char literal, got %+v", tok)
	}
}

func TestUnterminatedBlockCommentIsFatal(t *testing.T) {
	l := New("t.nilo", "/* no end")
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one error, got %v", l.Errors())
	}
}

// P1: concatenating raw-mode token images reconstructs the source.
func TestLexRoundTrip(t *testing.T) {
	src := "func add(i32 a, i32 b) => a + b // comment\n"
	l := New("t.nilo", src, WithRawMode())
	var rebuilt string
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			break
		}
		rebuilt += tok.Image
	}
	if rebuilt != src {
		t.Fatalf("round trip mismatch:\n got: %q\nwant: %q", rebuilt, src)
	}
}

// P2: consecutive tokens never overlap in position.
func TestPositionMonotonicity(t *testing.T) {
	l := New("t.nilo", "func add(i32 a) => a + 1", WithRawMode())
	toks := collect(l)
	for i := 1; i < len(toks); i++ {
		if !toks[i-1].Range.End.LessEq(toks[i].Range.Start) {
			t.Fatalf("token %d starts before previous ends: %+v then %+v", i, toks[i-1], toks[i])
		}
	}
}
