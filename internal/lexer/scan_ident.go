package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if token.LookupKeyword(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}

// \name — всё до ближайшего пробельного символа
func (lx *Lexer) scanEscapedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && !isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.EscapedIdent, start)
	if len(tok.Text) == 1 {
		lx.errLex(diag.LexBadEscapedIdent, tok.Span, "empty escaped identifier")
		tok.Kind = token.Invalid
	}
	return tok
}

// $display, $clog2, $unit ...
func (lx *Lexer) scanSystemIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.SystemIdent, start)
}
