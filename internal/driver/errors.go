package driver

import (
	"errors"
	"fmt"

	"svfmt/internal/diag"
	"svfmt/internal/source"
)

var (
	// ErrParseFailed marks files whose grammar is invalid; they are never
	// formatted or written.
	ErrParseFailed = errors.New("parse failed")
	// ErrNoFiles is returned when path collection yields nothing.
	ErrNoFiles = errors.New("no source files found")
	// ErrRoundTrip is returned by CheckRoundTrip.
	ErrRoundTrip = errors.New("formatting changed the token stream")
)

// ParseError carries the diagnostics of a failed parse.
type ParseError struct {
	Path  string
	Bag   *diag.Bag
	Files *source.FileSet
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %v", e.Path, ErrParseFailed)
}

func (e *ParseError) Unwrap() error { return ErrParseFailed }

// Diagnostics renders the collected diagnostics in short form.
func (e *ParseError) Diagnostics(includeNotes bool) string {
	if e.Bag == nil || e.Files == nil {
		return ""
	}
	return diag.FormatShortDiagnostics(e.Bag.Items(), e.Files, includeNotes)
}
