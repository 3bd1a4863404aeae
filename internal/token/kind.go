package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents a simple identifier.
	Ident
	// EscapedIdent represents an escaped identifier such as \bus+idx.
	EscapedIdent
	// SystemIdent represents a system task or function name such as $display.
	SystemIdent
	// MacroUsage represents a text macro reference such as `WIDTH.
	MacroUsage
	// Directive represents a whole-line compiler directive such as `define.
	Directive
	// Keyword represents an IEEE 1800 reserved word.
	Keyword

	// IntLit represents an integral literal (decimal, based or unbased).
	IntLit
	// RealLit represents a real literal.
	RealLit
	// TimeLit represents a time literal such as 10ns.
	TimeLit
	// StringLit represents a string literal.
	StringLit

	// Punct represents an operator or punctuation symbol.
	Punct
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	EscapedIdent: "EscapedIdent",
	SystemIdent:  "SystemIdent",
	MacroUsage:   "MacroUsage",
	Directive:    "Directive",
	Keyword:      "Keyword",
	IntLit:       "IntLit",
	RealLit:      "RealLit",
	TimeLit:      "TimeLit",
	StringLit:    "StringLit",
	Punct:        "Punct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
