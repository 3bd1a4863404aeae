package lexer

import (
	"svfmt/internal/source"
	"svfmt/internal/token"
)

// Separable reports whether the token texts a and b lex back to the same two
// tokens when written with nothing between them. When it returns false the
// printer has to keep a space so the tokens do not fuse (a + b, "4" "'b1",
// "/" "/").
func Separable(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("<join>", []byte(a+b))
	lx := New(fs.Get(id), Options{})

	first := lx.Next()
	if len(first.Leading) != 0 || first.Text != a {
		return false
	}
	second := lx.Next()
	if len(second.Leading) != 0 || second.Text != b {
		return false
	}
	return lx.Next().Kind == token.EOF && lx.Errors() == 0
}
