// Package token defines lexical token kinds and trivia for SystemVerilog and
// Verilog sources.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Keywords are a single Kind; the literal lives in Text.
//   - Operators and punctuation are a single Kind (Punct); the literal lives in Text.
//   - Whitespace and comments never appear in the main token stream; they are
//     attached as leading Trivia to the following token (EOF included).
//   - Compiler directives that take the rest of the line (`define, `include,
//     `timescale, ...) are one Directive token; other backtick names are
//     MacroUsage tokens.
package token
