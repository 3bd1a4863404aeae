package fuzztests

import (
	"testing"

	"svfmt/internal/diag"
	"svfmt/internal/lexer"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.sv", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var end uint32
		for {
			tok := lx.Next()
			for _, tr := range tok.Leading {
				end = tr.Span.End
			}
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Empty() {
				t.Fatalf("empty token %v at %d", tok.Kind, tok.Span.Start)
			}
			end = tok.Span.End
		}
		if int(end) != len(file.Content) {
			t.Fatalf("lexer stopped at %d of %d bytes", end, len(file.Content))
		}
	})
}
