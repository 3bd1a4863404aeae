package format

import (
	"svfmt/internal/lexer"
	"svfmt/internal/syntax"
)

// emit appends one content node using the flags collected since the previous
// one and then clears them.
func (s *state) emit(loc syntax.Locate) {
	defer s.clearOneShot()

	if s.skipNext {
		s.lastLine = loc.Line
		return
	}

	text := s.tree.Text(loc)
	if s.comment {
		// комментарий: без пробелов и выравнивания, но с новой строки, если он был на новой
		if !s.lineChange(loc) {
			s.guard(text)
		}
		s.w.WriteString(text)
		s.finish(loc, text)
		return
	}

	if s.head {
		s.w.Space()
	}
	if !s.lineChange(loc) {
		s.guard(text)
	}
	if s.port {
		s.writePort(text)
	} else {
		s.w.WriteString(text)
	}
	if s.tail {
		s.w.Space()
	}
	s.finish(loc, text)
}

// lineChange starts a new indented line when loc is below the last emitted
// line.
func (s *state) lineChange(loc syntax.Locate) bool {
	if loc.Line == s.lastLine {
		return false
	}
	s.w.LineBreak()
	level := s.indent
	if s.keepOldIndent {
		level--
	}
	s.w.Indent(max(level, 0))
	if s.port && s.portStart >= 0 {
		// объявление продолжается на новой строке: колонки считаем от отступа
		s.portStart = s.w.Len()
	}
	return true
}

// guard keeps a space between tokens that would otherwise fuse, e.g. "a" "b"
// or "-" "-".
func (s *state) guard(text string) {
	if s.w.EndsWithSpace() || s.prevText == "" {
		return
	}
	key := [2]string{s.prevText, text}
	ok, seen := s.separable[key]
	if !seen {
		ok = lexer.Separable(s.prevText, text)
		s.separable[key] = ok
	}
	if !ok {
		s.w.Space()
	}
}

func (s *state) finish(loc syntax.Locate, text string) {
	s.lastLine = s.tree.EndLine(loc)
	s.prevText = text
}
