package token

import (
	"testing"
)

func TestLookupKeyword(t *testing.T) {
	for _, kw := range []string{"module", "endmodule", "begin", "always_ff", "input", "endclocking", "import"} {
		if !LookupKeyword(kw) {
			t.Errorf("LookupKeyword(%q) = false", kw)
		}
	}
	// регистр важен
	for _, ident := range []string{"Module", "BEGIN", "clk", "data_q", "define"} {
		if LookupKeyword(ident) {
			t.Errorf("LookupKeyword(%q) = true", ident)
		}
	}
}

func TestIsLineDirective(t *testing.T) {
	if !IsLineDirective("define") || !IsLineDirective("timescale") {
		t.Fatal("expected line directives")
	}
	if IsLineDirective("WIDTH") {
		t.Fatal("macro usage reported as directive")
	}
}

func TestTokenPredicates(t *testing.T) {
	kw := Token{Kind: Keyword, Text: "begin"}
	if !kw.IsKeyword("begin") || !kw.IsKeyword("") || kw.IsKeyword("end") {
		t.Fatal("IsKeyword mismatch")
	}
	semi := Token{Kind: Punct, Text: ";"}
	if !semi.IsPunct(";") || semi.IsPunct(",") {
		t.Fatal("IsPunct mismatch")
	}
	for _, k := range []Kind{IntLit, RealLit, TimeLit} {
		if !(Token{Kind: k}).IsNumber() {
			t.Errorf("%v should be a number", k)
		}
	}
	if (Token{Kind: StringLit}).IsNumber() || !(Token{Kind: StringLit}).IsLiteral() {
		t.Fatal("string literal predicates")
	}
	if !(Token{Kind: EscapedIdent}).IsIdent() || (Token{Kind: SystemIdent}).IsIdent() {
		t.Fatal("IsIdent mismatch")
	}
	if Punct.String() != "Punct" || Kind(200).String() != "Kind(?)" {
		t.Fatal("Kind.String mismatch")
	}
}
