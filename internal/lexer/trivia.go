package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

// collectLeadingTrivia gathers whitespace runs and comments in front of the
// next token into lx.hold. Consecutive whitespace bytes form a single trivia.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case isSpace(ch):
			start := lx.cursor.Mark()
			for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			start := lx.cursor.Mark()
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaLineComment, start)
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment()
		default:
			return
		}
	}
}

// block comments do not nest: the first "*/" closes the comment.
func (lx *Lexer) scanBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.BumpN(2)
			lx.pushTrivia(token.TriviaBlockComment, start)
			return
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	lx.pushTrivia(token.TriviaBlockComment, start)
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
