package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

var timeUnits = []string{"ms", "us", "ns", "ps", "fs", "s"}

// isUnsizedNumber reports whether the apostrophe at the cursor starts a
// based literal ('hFF, 'sb1) or an unbased unsized one ('0, '1, 'x, 'z).
func (lx *Lexer) isUnsizedNumber() bool {
	next := lx.cursor.PeekAt(1)
	switch next {
	case '0', '1', 'x', 'X', 'z', 'Z':
		return !isIdentContinueByte(lx.cursor.PeekAt(2))
	case 's', 'S':
		return isBaseChar(lx.cursor.PeekAt(2))
	}
	return isBaseChar(next)
}

// scanNumber handles decimal, based, real and time literals.
//
//	12  4'b10x_z  'hFF  8'sd255  '1  1.5e-3  10ns
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '\'' {
		return lx.scanBased(start)
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// size prefix of a based literal
	if lx.cursor.Peek() == '\'' && lx.basedAhead() {
		return lx.scanBased(start)
	}

	kind := token.IntLit
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		kind = token.RealLit
	}
	if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			lx.cursor.BumpN(int(n))
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			kind = token.RealLit
		}
	}
	for _, unit := range timeUnits {
		if lx.cursor.HasPrefix(unit) && !isIdentContinueByte(lx.cursor.PeekAt(uint32(len(unit)))) {
			lx.cursor.BumpN(len(unit))
			kind = token.TimeLit
			break
		}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) basedAhead() bool {
	next := lx.cursor.PeekAt(1)
	if next == 's' || next == 'S' {
		return isBaseChar(lx.cursor.PeekAt(2))
	}
	return isBaseChar(next)
}

// scanBased expects the cursor at the apostrophe.
func (lx *Lexer) scanBased(start Mark) token.Token {
	lx.cursor.Bump() // '
	switch lx.cursor.Peek() {
	case '0', '1', 'x', 'X', 'z', 'Z':
		lx.cursor.Bump()
		return lx.emit(token.IntLit, start)
	}
	if c := lx.cursor.Peek(); c == 's' || c == 'S' {
		lx.cursor.Bump()
	}
	lx.cursor.Bump() // base char
	digits := 0
	for isBasedDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
		digits++
	}
	tok := lx.emit(token.IntLit, start)
	if digits == 0 {
		lx.errLex(diag.LexBadNumber, tok.Span, "based literal without digits")
	}
	return tok
}
