package testkit_test

import (
	"strings"
	"testing"

	"svfmt/internal/source"
	"svfmt/internal/syntax"
	"svfmt/internal/testkit"
)

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	fs := source.NewFileSet()
	return syntax.Parse(fs.Get(fs.AddVirtual("t.sv", []byte(src))), syntax.Options{}).Tree
}

func TestCheckTreeInvariants(t *testing.T) {
	srcs := []string{
		"",
		"module m(input [3:0] a); // c\nendmodule\n",
		"import p::*, q::x;\n/* multi\nline */ wire a;",
		"module m; begin", // незакрытый блок: дерево всё равно без потерь
	}
	for _, src := range srcs {
		if err := testkit.CheckTreeInvariants(parse(t, src)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTreeInvariantsDetectsGap(t *testing.T) {
	tree := parse(t, "wire a;")
	// drop the first content node
	tree.Root.Children = tree.Root.Children[1:]
	err := testkit.CheckTreeInvariants(tree)
	if err == nil || !strings.Contains(err.Error(), "gap") {
		t.Fatalf("expected gap error, got %v", err)
	}
}

func TestCheckTreeInvariantsNil(t *testing.T) {
	if err := testkit.CheckTreeInvariants(nil); err == nil {
		t.Fatal("expected error for nil tree")
	}
}
