package format

import (
	"strings"

	"svfmt/internal/syntax"
)

var (
	blockOpeners = toSet(
		"begin", "module", "macromodule", "program", "class", "function", "package",
		"case", "casex", "casez", "randcase", "clocking", "covergroup",
	)
	blockClosers = toSet(
		"end", "endmodule", "endclocking", "endcase", "endgroup",
		"endclass", "endfunction", "endpackage",
	)
	portDirections = toSet("input", "output", "inout")
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func has(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

// classify updates the pending flags for a marker node. It never writes
// output; the only failure is an indent underflow.
func (s *state) classify(n *syntax.Node) error {
	switch n.Kind {
	case syntax.KindKeyword:
		return s.keyword(n)
	case syntax.KindSymbol:
		s.symbolMark(s.tree.Literal(n))
	case syntax.KindIdentifier:
		s.tail = true
		s.afterSymbol()
		if s.special {
			s.head = false
			s.tail = false
		}
	case syntax.KindNumber:
		s.afterSymbol()
	case syntax.KindQualifiedName:
		s.tail = false
		s.special = true
	case syntax.KindWhiteSpace:
		s.whitespace(s.tree.Literal(n))
	case syntax.KindComment:
		s.comment = true
	case syntax.KindStructural, syntax.KindLocate:
	}
	return nil
}

func (s *state) keyword(n *syntax.Node) error {
	text := s.tree.Literal(n)
	switch {
	case has(blockOpeners, text):
		s.indent++
		s.keepOldIndent = true
	case has(blockClosers, text):
		if s.indent == 0 {
			loc, _ := n.Locate()
			return &FormatError{Line: loc.Line, Keyword: text, Err: ErrIndentUnderflow}
		}
		s.indent--
		s.keepOldIndent = false
	case has(portDirections, text):
		s.port = true
		s.portStart = -1
	}
	s.tail = true
	s.afterSymbol()
	return nil
}

// a token right after a bare symbol gets a leading delimiter
func (s *state) afterSymbol() {
	if s.symbol {
		s.head = true
		s.symbol = false
	}
}

func (s *state) symbolMark(text string) {
	s.symbol = true
	if s.special {
		switch text {
		case ";":
			s.special = false
			return
		case ",":
			// конец элемента списка; следующий элемент снова включит режим
			s.special = false
			s.tail = true
			return
		}
		s.head = false
		s.tail = false
		return
	}
	switch text {
	case "}", ")", "]":
		s.tail = true
	case ":":
		if !s.port {
			s.tail = false
		}
	case ";":
		if !s.tail {
			s.head = false
		}
	}
}

// whitespace drops the run itself; a run spanning N blank lines leaves N-1
// of them, the line change of the next token supplies the last newline.
func (s *state) whitespace(text string) {
	s.skipNext = true
	blank := strings.Count(text, "\n") - 1
	for range blank - 1 {
		s.w.LineBreak()
	}
}
