package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch ch {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\\':
			// escape: пропускаем следующий байт, включая перевод строки
			lx.cursor.BumpN(2)
		case '\n':
			tok := lx.emit(token.StringLit, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
			return tok
		default:
			lx.cursor.Bump()
		}
	}

	tok := lx.emit(token.StringLit, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
