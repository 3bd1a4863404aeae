package format

import (
	"errors"
	"fmt"

	"svfmt/internal/syntax"
)

// ErrIndentUnderflow is returned when a block-closing keyword has no opener.
var ErrIndentUnderflow = errors.New("indent level underflow")

// FormatError reports the keyword at which formatting stopped.
type FormatError struct {
	Line    uint32
	Keyword string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: '%s': %v", e.Line, e.Keyword, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Format renders the tree. The tree must come from a successful parse; it is
// only read. On error no partial output is returned.
func Format(tree *syntax.Tree) ([]byte, error) {
	if tree == nil || tree.File == nil || tree.Root == nil {
		return nil, errors.New("format: nil tree")
	}
	s := newState(tree)
	for n := range tree.Walk() {
		if n.Kind == syntax.KindLocate {
			s.emit(n.Loc)
			continue
		}
		if err := s.classify(n); err != nil {
			return nil, err
		}
	}
	return s.w.Bytes(), nil
}
