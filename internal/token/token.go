package token

import (
	"svfmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, TimeLit, StringLit:
		return true
	default:
		return false
	}
}

// IsNumber reports whether the token is a numeric literal.
func (t Token) IsNumber() bool {
	switch t.Kind {
	case IntLit, RealLit, TimeLit:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is the given operator or punctuation.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// IsKeyword reports whether the token is the given reserved word. An empty
// text matches any keyword.
func (t Token) IsKeyword(text string) bool {
	return t.Kind == Keyword && (text == "" || t.Text == text)
}

// IsIdent reports whether the token is a simple or escaped identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident || t.Kind == EscapedIdent }
