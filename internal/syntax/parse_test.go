package syntax_test

import (
	"strings"
	"testing"

	"svfmt/internal/diag"
	"svfmt/internal/source"
	"svfmt/internal/syntax"
	"svfmt/internal/testkit"
)

func parse(t *testing.T, src string) (syntax.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sv", []byte(src))
	bag := diag.NewBag(100)
	res := syntax.Parse(fs.Get(id), syntax.Options{Reporter: diag.BagReporter{Bag: bag}})
	return res, bag
}

func mustParse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	res, bag := parse(t, src)
	if !res.OK() {
		t.Fatalf("parse failed for %q: %+v", src, bag.Items())
	}
	return res.Tree
}

func TestCoversEveryByte(t *testing.T) {
	src := "module m ( input wire [3:0] a ) ; // c\n\n  /* b */ assign x = 'h1;\nendmodule\n"
	tree := mustParse(t, src)
	var sb strings.Builder
	for n := range tree.Walk() {
		if n.Kind == syntax.KindLocate {
			sb.WriteString(tree.Text(n.Loc))
		}
	}
	if sb.String() != src {
		t.Fatalf("content nodes do not reproduce the file:\n%q\n%q", sb.String(), src)
	}
}

func TestTreeInvariantsHold(t *testing.T) {
	srcs := []string{
		"",
		"module m(input wire [3:0] a, output logic b);\n  always_comb begin\n    b = a[0];\n  end\nendmodule\n",
		"package p;\n  import q::*;\nendpackage\n",
		"`ifdef X\nwire a; /* multi\nline */\n`endif\n",
	}
	for _, src := range srcs {
		if err := testkit.CheckTreeInvariants(mustParse(t, src)); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestMarkersWrapLocate(t *testing.T) {
	tree := mustParse(t, "module m; endmodule")
	var kinds []syntax.Kind
	for n := range tree.Walk() {
		switch n.Kind {
		case syntax.KindStructural, syntax.KindLocate:
			continue
		}
		kinds = append(kinds, n.Kind)
		if len(n.Children) != 1 || n.Children[0].Kind != syntax.KindLocate {
			t.Fatalf("%v marker must own exactly one Locate", n.Kind)
		}
	}
	want := []syntax.Kind{
		syntax.KindKeyword, syntax.KindWhiteSpace, syntax.KindIdentifier,
		syntax.KindSymbol, syntax.KindWhiteSpace, syntax.KindKeyword,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestLocateLines(t *testing.T) {
	tree := mustParse(t, "a\n\nb /* x\ny */ c")
	lines := map[string]uint32{}
	for n := range tree.Walk() {
		if n.Kind == syntax.KindLocate {
			lines[tree.Text(n.Loc)] = n.Loc.Line
		}
	}
	if lines["a"] != 1 || lines["b"] != 3 || lines["c"] != 4 {
		t.Fatalf("lines = %v", lines)
	}
	for n := range tree.Walk() {
		if n.Kind == syntax.KindComment {
			loc, _ := n.Locate()
			if got := tree.EndLine(loc); got != 4 {
				t.Fatalf("comment end line = %d", got)
			}
		}
	}
}

func TestImportItems(t *testing.T) {
	tree := mustParse(t, "import pkg :: item, other::*;\nimport \"DPI-C\" function void f();\n")
	var items []string
	for n := range tree.Walk() {
		if n.Kind != syntax.KindQualifiedName {
			continue
		}
		var sb strings.Builder
		for c := range (&syntax.Tree{File: tree.File, Root: n}).Walk() {
			if c.Kind == syntax.KindLocate {
				sb.WriteString(tree.Text(c.Loc))
			}
		}
		items = append(items, sb.String())
	}
	if len(items) != 2 || items[0] != "pkg :: item" || items[1] != "other::*" {
		t.Fatalf("items = %q", items)
	}
}

func TestBadImportItem(t *testing.T) {
	res, bag := parse(t, "import pkg::;")
	if res.OK() {
		t.Fatal("expected failure")
	}
	if bag.Items()[0].Code != diag.SynBadImportItem {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
}

func TestBlockStructure(t *testing.T) {
	tree := mustParse(t, "module m; initial begin fork a; join case (x) 1: ; endcase end endmodule")
	var names []string
	for n := range tree.Walk() {
		if n.Kind == syntax.KindStructural {
			names = append(names, n.Name)
		}
	}
	want := "Source ModuleDeclaration SeqBlock ParBlock CaseStatement Paren"
	if got := strings.Join(names, " "); got != want {
		t.Fatalf("structure = %q, want %q", got, want)
	}
}

func TestWaitForkIsNotABlock(t *testing.T) {
	mustParse(t, "module m; initial begin wait fork; disable fork; end endmodule")
}

func TestStructuralErrors(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"module m; begin endmodule", diag.SynUnclosedBlock},
		{"module m; end endmodule", diag.SynUnmatchedBlockEnd},
		{"assign x = (a;", diag.SynUnclosedDelimiter},
		{"assign x = a);", diag.SynUnmatchedCloser},
		{"module m", diag.SynUnclosedBlock},
		{"x = ( module", diag.SynUnexpectedToken},
		{"a = \"open", diag.LexUnterminatedString},
	}
	for _, tc := range cases {
		res, bag := parse(t, tc.src)
		if res.OK() {
			t.Errorf("%q: expected parse failure", tc.src)
			continue
		}
		found := false
		for _, d := range bag.Items() {
			if d.Code == tc.code {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: missing %s in %+v", tc.src, tc.code.ID(), bag.Items())
		}
	}
}

func TestDump(t *testing.T) {
	tree := mustParse(t, "module m; endmodule")
	var sb strings.Builder
	if err := tree.Dump(&sb); err != nil {
		t.Fatal(err)
	}
	want := `Source
  ModuleDeclaration
    Keyword "module" @1:0+6
    WhiteSpace " " @1:6+1
    Identifier "m" @1:7+1
    Symbol ";" @1:8+1
    WhiteSpace " " @1:9+1
    Keyword "endmodule" @1:10+9
`
	if sb.String() != want {
		t.Fatalf("dump:\n%s\nwant:\n%s", sb.String(), want)
	}
}
