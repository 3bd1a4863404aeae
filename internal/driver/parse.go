package driver

import (
	"svfmt/internal/diag"
	"svfmt/internal/format"
	"svfmt/internal/source"
	"svfmt/internal/syntax"
)

const defaultMaxDiagnostics = 256

// ParseFile builds the syntax tree of sf, collecting diagnostics into a bag.
func ParseFile(sf *source.File, maxDiagnostics int) (syntax.Result, *diag.Bag) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)
	res := syntax.Parse(sf, syntax.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return res, bag
}

// FormatSource formats src as if it were read from path. A parse failure
// returns a *ParseError; the formatter is not invoked in that case.
func FormatSource(path string, src []byte, maxDiagnostics int) ([]byte, error) {
	fs := source.NewFileSet()
	content, flags, err := source.Normalize(src)
	if err != nil {
		return nil, err
	}
	sf := fs.Get(fs.Add(path, content, flags))
	return formatFile(fs, sf, maxDiagnostics)
}

func formatFile(fs *source.FileSet, sf *source.File, maxDiagnostics int) ([]byte, error) {
	res, bag := ParseFile(sf, maxDiagnostics)
	if !res.OK() {
		return nil, &ParseError{Path: sf.Path, Bag: bag, Files: fs}
	}
	return format.Format(res.Tree)
}
