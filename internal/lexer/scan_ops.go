package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

// operators longer than one byte, grouped by length; longest match wins.
var (
	ops4 = []string{"<<<=", ">>>="}
	ops3 = []string{
		"===", "!==", "==?", "!=?", "<<<", ">>>", "<<=", ">>=",
		"->>", "<->", "|->", "|=>", "&&&",
	}
	ops2 = []string{
		"::", "**", "++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
		"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "->", "~&", "~|", "~^",
		"^~", "+:", "-:", ":=", "##", "@@", ".*",
	}
)

const singles = "+-*/%=!<>&|^~?:;,.()[]{}#@'$"

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, group := range [][]string{ops4, ops3, ops2} {
		for _, op := range group {
			if lx.cursor.HasPrefix(op) {
				lx.cursor.BumpN(len(op))
				return lx.emit(token.Punct, start)
			}
		}
	}

	ch := lx.cursor.Bump()
	for i := range len(singles) {
		if singles[i] == ch {
			return lx.emit(token.Punct, start)
		}
	}

	// не ASCII: съедаем весь UTF-8 символ, чтобы не резать его посередине
	for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quote(tok.Text))
	return tok
}

func quote(s string) string {
	return "'" + s + "'"
}
