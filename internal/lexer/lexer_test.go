package lexer_test

import (
	"strings"
	"testing"

	"svfmt/internal/diag"
	"svfmt/internal/lexer"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sv", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

type tk struct {
	kind token.Kind
	text string
}

func lexAll(t *testing.T, input string) []tk {
	t.Helper()
	lx, rep := makeTestLexer(input)
	var out []tk
	for _, tok := range lx.All() {
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tk{tok.Kind, tok.Text})
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %+v", input, rep.diagnostics)
	}
	return out
}

func expectTokens(t *testing.T, input string, want ...tk) {
	t.Helper()
	got := lexAll(t, input)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", input, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d = %v(%q), want %v(%q)", input, i, got[i].kind, got[i].text, want[i].kind, want[i].text)
		}
	}
}

func TestIdentsAndKeywords(t *testing.T) {
	expectTokens(t, "module top_1 endmodule",
		tk{token.Keyword, "module"},
		tk{token.Ident, "top_1"},
		tk{token.Keyword, "endmodule"},
	)
	expectTokens(t, `\bus+idx a$b $display`,
		tk{token.EscapedIdent, `\bus+idx`},
		tk{token.Ident, "a$b"},
		tk{token.SystemIdent, "$display"},
	)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"1_000", token.IntLit},
		{"4'b10x_z", token.IntLit},
		{"8'shFF", token.IntLit},
		{"'hDEAD", token.IntLit},
		{"'0", token.IntLit},
		{"'z", token.IntLit},
		{"1.5", token.RealLit},
		{"2e-3", token.RealLit},
		{"10ns", token.TimeLit},
		{"1.5ps", token.TimeLit},
	}
	for _, tc := range cases {
		expectTokens(t, tc.in, tk{tc.kind, tc.in})
	}
}

func TestCastApostropheIsPunct(t *testing.T) {
	expectTokens(t, "int'(x)",
		tk{token.Keyword, "int"},
		tk{token.Punct, "'"},
		tk{token.Punct, "("},
		tk{token.Ident, "x"},
		tk{token.Punct, ")"},
	)
	expectTokens(t, "'{1, 2}",
		tk{token.Punct, "'"},
		tk{token.Punct, "{"},
		tk{token.IntLit, "1"},
		tk{token.Punct, ","},
		tk{token.IntLit, "2"},
		tk{token.Punct, "}"},
	)
}

func TestOperatorsLongestMatch(t *testing.T) {
	expectTokens(t, "a <<<= b === c :: d",
		tk{token.Ident, "a"},
		tk{token.Punct, "<<<="},
		tk{token.Ident, "b"},
		tk{token.Punct, "==="},
		tk{token.Ident, "c"},
		tk{token.Punct, "::"},
		tk{token.Ident, "d"},
	)
	expectTokens(t, "x[i+:4]",
		tk{token.Ident, "x"},
		tk{token.Punct, "["},
		tk{token.Ident, "i"},
		tk{token.Punct, "+:"},
		tk{token.IntLit, "4"},
		tk{token.Punct, "]"},
	)
}

func TestStrings(t *testing.T) {
	expectTokens(t, `"a \"quoted\" b"`, tk{token.StringLit, `"a \"quoted\" b"`})

	lx, rep := makeTestLexer("\"open\nx")
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != `"open` {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string diagnostic, got %+v", rep.diagnostics)
	}
}

func TestDirectivesAndMacros(t *testing.T) {
	expectTokens(t, "`define W 8\nlogic [`W-1:0] x;",
		tk{token.Directive, "`define W 8"},
		tk{token.Keyword, "logic"},
		tk{token.Punct, "["},
		tk{token.MacroUsage, "`W"},
		tk{token.Punct, "-"},
		tk{token.IntLit, "1"},
		tk{token.Punct, ":"},
		tk{token.IntLit, "0"},
		tk{token.Punct, "]"},
		tk{token.Ident, "x"},
		tk{token.Punct, ";"},
	)
	expectTokens(t, "`define M(a) \\\n  (a+1)  \nm",
		tk{token.Directive, "`define M(a) \\\n  (a+1)"},
		tk{token.Ident, "m"},
	)
}

func TestTrivia(t *testing.T) {
	lx, rep := makeTestLexer("  // c1\n\n/* c2 */ a /* t */")
	tok := lx.Next()
	if tok.Text != "a" {
		t.Fatalf("got %q", tok.Text)
	}
	kinds := make([]token.TriviaKind, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaSpace, token.TriviaLineComment, token.TriviaSpace, token.TriviaBlockComment, token.TriviaSpace}
	if len(kinds) != len(want) {
		t.Fatalf("trivia kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("trivia kinds = %v, want %v", kinds, want)
		}
	}
	if tok.Leading[2].Text != "\n\n" {
		t.Errorf("whitespace run = %q", tok.Leading[2].Text)
	}

	eof := lx.Next()
	if eof.Kind != token.EOF || len(eof.Leading) != 2 {
		t.Fatalf("EOF trivia = %+v", eof.Leading)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", rep.diagnostics)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("a /* never closed")
	lx.All()
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
	if lx.Errors() != 1 {
		t.Fatalf("Errors() = %d", lx.Errors())
	}
}

func TestUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer("a é b")
	toks := lx.All()
	if toks[1].Kind != token.Invalid || toks[1].Text != "é" {
		t.Fatalf("token = %v %q", toks[1].Kind, toks[1].Text)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
}

func TestRoundTripConcat(t *testing.T) {
	input := "module m(input wire [3:0] a); // c\n  assign b = a<<1;\nendmodule\n"
	lx, _ := makeTestLexer(input)
	var sb strings.Builder
	for _, tok := range lx.All() {
		for _, tr := range tok.Leading {
			sb.WriteString(tr.Text)
		}
		sb.WriteString(tok.Text)
	}
	if sb.String() != input {
		t.Fatalf("concat mismatch:\n%q\n%q", sb.String(), input)
	}
}

func TestSeparable(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"a", "b", false},
		{"a", "$x", false},
		{"a", ";", true},
		{"(", "a", true},
		{"=", "=", false},
		{"<", "<=", false},
		{"/", "/", false},
		{"/", "*", false},
		{"4", "'b1", false},
		{"x", "[", true},
		{`\esc`, ";", false},
		{"+", "+", false},
		{"-", ">", false},
		{")", ";", true},
	}
	for _, tc := range cases {
		if got := lexer.Separable(tc.a, tc.b); got != tc.want {
			t.Errorf("Separable(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
