package lexer

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// SystemVerilog identifiers may contain '$' after the first character.
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b == '$'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func isBaseChar(b byte) bool {
	switch b {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	}
	return false
}

// digits allowed after a base specifier, including x/z/? and underscores.
func isBasedDigit(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') ||
		b == 'x' || b == 'X' || b == 'z' || b == 'Z' || b == '?' || b == '_'
}
