package lexer

import (
	"svfmt/internal/token"
)

// scanBacktick handles compiler directives and macro usages. Directives such
// as `define or `include are taken up to the end of the line, following
// backslash-newline continuations. Anything else is a macro usage.
func (lx *Lexer) scanBacktick() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()

	if !isIdentStartByte(lx.cursor.Peek()) {
		// `` и `" встречаются только внутри тел макросов
		if !lx.cursor.EOF() && !isSpace(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.Punct, start)
	}

	nameStart := lx.cursor.Off
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	name := string(lx.file.Content[nameStart:lx.cursor.Off])
	if !token.IsLineDirective(name) {
		return lx.emit(token.MacroUsage, start)
	}

	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\n' {
			break
		}
		if ch == '\\' && lx.cursor.PeekAt(1) == '\n' {
			lx.cursor.BumpN(2)
			continue
		}
		lx.cursor.Bump()
	}
	// хвостовые пробелы — это trivia следующего токена
	for lx.cursor.Off > nameStart {
		prev := lx.file.Content[lx.cursor.Off-1]
		if prev != ' ' && prev != '\t' {
			break
		}
		lx.cursor.Off--
	}
	return lx.emit(token.Directive, start)
}
