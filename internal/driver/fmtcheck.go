package driver

import (
	"fmt"
	"strings"

	"svfmt/internal/format"
	"svfmt/internal/lexer"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

// TokenMismatch locates the first difference found by CheckRoundTrip.
type TokenMismatch struct {
	Index    int
	Original string
	Output   string
}

func (m *TokenMismatch) Error() string {
	return fmt.Sprintf("%v: token #%d %q became %q", ErrRoundTrip, m.Index, m.Original, m.Output)
}

func (m *TokenMismatch) Unwrap() error { return ErrRoundTrip }

// CheckRoundTrip formats sf, re-lexes the output and verifies that the
// significant token sequence is unchanged. Comments count as significant.
func CheckRoundTrip(sf *source.File, maxDiagnostics int) error {
	fs := source.NewFileSet()
	orig := fs.Get(fs.Add(sf.Path, sf.Content, sf.Flags))
	res, bag := ParseFile(orig, maxDiagnostics)
	if !res.OK() {
		return &ParseError{Path: sf.Path, Bag: bag, Files: fs}
	}
	out, err := format.Format(res.Tree)
	if err != nil {
		return err
	}
	return compareTokens(orig, fs.Get(fs.AddVirtual(sf.Path, out)))
}

func compareTokens(a, b *source.File) error {
	left := significant(a)
	right := significant(b)
	n := min(len(left), len(right))
	for i := range n {
		if left[i] != right[i] {
			return &TokenMismatch{Index: i, Original: left[i], Output: right[i]}
		}
	}
	if len(left) != len(right) {
		m := &TokenMismatch{Index: n}
		if n < len(left) {
			m.Original = left[n]
		}
		if n < len(right) {
			m.Output = right[n]
		}
		return m
	}
	return nil
}

func significant(sf *source.File) []string {
	lx := lexer.New(sf, lexer.Options{})
	var out []string
	for _, tok := range lx.All() {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				out = append(out, strings.TrimRight(tr.Text, " \t"))
			}
		}
		if tok.Kind != token.EOF {
			out = append(out, tok.Text)
		}
	}
	return out
}
