package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscapedIdent          Code = 1005

	// Структурные (дерево)
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynUnmatchedCloser   Code = 2003
	SynUnclosedBlock     Code = 2004
	SynUnmatchedBlockEnd Code = 2005
	SynBadImportItem     Code = 2006

	// Форматирование
	FmtInfo            Code = 3000
	FmtIndentUnderflow Code = 3001
	FmtRoundTrip       Code = 3002

	// Ввод-вывод
	IOLoadFileError  Code = 4001
	IOFileListError  Code = 4002
	IOIncludeMissing Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexBadEscapedIdent:          "Empty escaped identifier",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnmatchedCloser:          "Closing delimiter without opener",
	SynUnclosedBlock:            "Block is never closed",
	SynUnmatchedBlockEnd:        "Block end keyword without matching opener",
	SynBadImportItem:            "Malformed package import item",
	FmtInfo:                     "Formatter information",
	FmtIndentUnderflow:          "Indent level underflow",
	FmtRoundTrip:                "Formatting changed the token stream",
	IOLoadFileError:             "Failed to load file",
	IOFileListError:             "Malformed file list",
	IOIncludeMissing:            "Included file not found",
}

// ID returns the stable textual identifier, e.g. "LEX1003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
