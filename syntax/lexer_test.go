package syntax

import (
	"bufio"
	"strings"
	"testing"
)

// lexAll lexes a source string to EOF and returns the tokens (excluding the
// final EOF token).
func lexAll(t *testing.T, src string) []*Token {
	t.Helper()

	var toks []*Token
	l := NewLexer(bufio.NewReader(strings.NewReader(src)))
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %s", err)
		}

		if tok.Kind == TOK_EOF {
			return toks
		}

		toks = append(toks, tok)
	}
}

// lexOne lexes a source string expected to produce exactly one token.
func lexOne(t *testing.T, src string) *Token {
	t.Helper()

	toks := lexAll(t, src)
	if len(toks) != 1 {
		t.Fatalf("expected 1 token for %q, got %d", src, len(toks))
	}

	return toks[0]
}

func TestLexTokenKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind int
	}{
		{"module", TOK_MODULE},
		{"fn", TOK_FN},
		{"let", TOK_LET},
		{"priv", TOK_PRIV},
		{"use", TOK_USE},
		{"as", TOK_AS},
		{"if", TOK_IF},
		{"else", TOK_ELSE},
		{"while", TOK_WHILE},
		{"break", TOK_BREAK},
		{"continue", TOK_CONTINUE},
		{"return", TOK_RETURN},
		{"i32", TOK_I32},
		{"i64", TOK_I64},
		{"f64", TOK_F64},
		{"bool", TOK_BOOL},
		{"string", TOK_STRING},
		{"unit", TOK_UNIT},
		{"true", TOK_BOOLLIT},
		{"false", TOK_BOOLLIT},
		{"foo", TOK_IDENT},
		{"_bar2", TOK_IDENT},
		{"->", TOK_ARROW},
		{"-", TOK_MINUS},
		{"@", TOK_ATSIGN},
		{"==", TOK_EQ},
		{"=", TOK_ASSIGN},
		{"!=", TOK_NEQ},
		{"!", TOK_NOT},
		{"<=", TOK_LTEQ},
		{"<", TOK_LT},
		{">=", TOK_GTEQ},
		{">", TOK_GT},
		{"&&", TOK_LAND},
		{"||", TOK_LOR},
		{"/", TOK_DIV},
		{"%", TOK_MOD},
		{".", TOK_DOT},
		{";", TOK_SEMI},
		{"42", TOK_INTLIT},
		{"3.14", TOK_FLOATLIT},
		{`"hi"`, TOK_STRINGLIT},
	}

	for _, tc := range tests {
		if tok := lexOne(t, tc.src); tok.Kind != tc.kind {
			t.Errorf("%q: expected kind %d, got %d", tc.src, tc.kind, tok.Kind)
		}
	}
}

func TestLexNumericLiterals(t *testing.T) {
	tests := []struct {
		src   string
		kind  int
		value string
	}{
		{"0", TOK_INTLIT, "0"},
		{"1234", TOK_INTLIT, "1234"},
		{"1_000_000", TOK_INTLIT, "1000000"},
		{"3.14", TOK_FLOATLIT, "3.14"},
		{"1e10", TOK_FLOATLIT, "1e10"},
		{"2.5e-3", TOK_FLOATLIT, "2.5e-3"},
		{"2E+4", TOK_FLOATLIT, "2E+4"},
	}

	for _, tc := range tests {
		tok := lexOne(t, tc.src)
		if tok.Kind != tc.kind || tok.Value != tc.value {
			t.Errorf("%q: expected (%d, %q), got (%d, %q)", tc.src, tc.kind, tc.value, tok.Kind, tok.Value)
		}
	}
}

func TestLexMalformedNumericLiteral(t *testing.T) {
	for _, src := range []string{"1.", "1e", "2.5e+"} {
		l := NewLexer(bufio.NewReader(strings.NewReader(src)))
		if _, err := l.NextToken(); err == nil {
			t.Errorf("%q: expected a lex error", src)
		}
	}
}

func TestLexUnknownRune(t *testing.T) {
	// `&` and `|` are only valid doubled.
	for _, src := range []string{"#", "& ", "| "} {
		l := NewLexer(bufio.NewReader(strings.NewReader(src)))
		if _, err := l.NextToken(); err == nil {
			t.Errorf("%q: expected a lex error", src)
		}
	}
}

func TestLexStringLiterals(t *testing.T) {
	tests := []struct {
		src   string
		value string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a\nb"`, `a\nb`},
		{`"say \"hi\""`, `say \"hi\"`},
	}

	for _, tc := range tests {
		tok := lexOne(t, tc.src)
		if tok.Kind != TOK_STRINGLIT || tok.Value != tc.value {
			t.Errorf("%s: expected %q, got (%d, %q)", tc.src, tc.value, tok.Kind, tok.Value)
		}
	}
}

func TestLexStringErrors(t *testing.T) {
	for _, src := range []string{`"unclosed`, `"bad \q escape"`, "\"line\nbreak\""} {
		l := NewLexer(bufio.NewReader(strings.NewReader(src)))
		if _, err := l.NextToken(); err == nil {
			t.Errorf("%q: expected a lex error", src)
		}
	}
}

func TestLexComments(t *testing.T) {
	toks := lexAll(t, `
		// a line comment
		fn /* an inline comment */ main
		/* a
		   multiline comment */ ()
	`)

	want := []int{TOK_FN, TOK_IDENT, TOK_LPAREN, TOK_RPAREN}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}

	for i, kind := range want {
		if toks[i].Kind != kind {
			t.Errorf("token %d: expected kind %d, got %d", i, kind, toks[i].Kind)
		}
	}
}

func TestLexBlockCommentStarRuns(t *testing.T) {
	// A run of stars before the closing slash must still end the comment.
	tests := []struct {
		src  string
		want []int
	}{
		{"/* note **/ fn", []int{TOK_FN}},
		{"/* a *** b ****/ let", []int{TOK_LET}},
		{"/**/ if", []int{TOK_IF}},
		{"/* * / * */ x", []int{TOK_IDENT}},
	}

	for _, tc := range tests {
		toks := lexAll(t, tc.src)

		if len(toks) != len(tc.want) {
			t.Fatalf("%q: expected %d tokens, got %d", tc.src, len(tc.want), len(toks))
		}

		for i, kind := range tc.want {
			if toks[i].Kind != kind {
				t.Errorf("%q: token %d: expected kind %d, got %d", tc.src, i, kind, toks[i].Kind)
			}
		}
	}
}

func TestLexTokenStream(t *testing.T) {
	toks := lexAll(t, `fn add(a: i64) -> i64 { return a + 1; }`)

	want := []int{
		TOK_FN, TOK_IDENT, TOK_LPAREN, TOK_IDENT, TOK_COLON, TOK_I64,
		TOK_RPAREN, TOK_ARROW, TOK_I64, TOK_LBRACE, TOK_RETURN, TOK_IDENT,
		TOK_PLUS, TOK_INTLIT, TOK_SEMI, TOK_RBRACE,
	}

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}

	for i, kind := range want {
		if toks[i].Kind != kind {
			t.Errorf("token %d (%q): expected kind %d, got %d", i, toks[i].Value, kind, toks[i].Kind)
		}
	}
}

func TestLexSpans(t *testing.T) {
	toks := lexAll(t, "let x\n  = 5")

	// Positions are zero based; display adds one.
	x := toks[1]
	if x.Span.StartLine != 0 || x.Span.StartCol != 4 {
		t.Errorf("expected `x` at 0:4, got %d:%d", x.Span.StartLine, x.Span.StartCol)
	}

	eq := toks[2]
	if eq.Span.StartLine != 1 {
		t.Errorf("expected `=` on line 1, got line %d", eq.Span.StartLine)
	}
}
