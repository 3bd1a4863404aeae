package format

import "bytes"

const indentUnit = "  "

// Writer accumulates formatted output. Spaces are never doubled and trailing
// blanks never reach the end of a line.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with room for roughly sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// WriteString appends s verbatim.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Pad appends n spaces; unlike Space it may produce a run of blanks.
func (w *Writer) Pad(n int) {
	for range n {
		w.buf = append(w.buf, ' ')
	}
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if w.EndsWithSpace() {
		return
	}
	w.buf = append(w.buf, ' ')
}

// EndsWithSpace reports whether the output is empty or ends with a blank or
// a newline.
func (w *Writer) EndsWithSpace() bool {
	if len(w.buf) == 0 {
		return true
	}
	last := w.buf[len(w.buf)-1]
	return last == ' ' || last == '\t' || last == '\n'
}

// LineBreak trims trailing blanks and starts a new line.
func (w *Writer) LineBreak() {
	w.trimBlanks()
	w.buf = append(w.buf, '\n')
}

// Indent writes level indentation units.
func (w *Writer) Indent(level int) {
	for range level {
		w.buf = append(w.buf, indentUnit...)
	}
}

func (w *Writer) trimBlanks() {
	w.buf = bytes.TrimRight(w.buf, " \t")
}

// Bytes returns the output without leading blank lines and with exactly one
// terminating newline. Empty output stays empty.
func (w *Writer) Bytes() []byte {
	out := bytes.TrimRight(w.buf, " \t\n")
	out = bytes.TrimLeft(out, "\n")
	if len(out) == 0 {
		return []byte{}
	}
	return append(out, '\n')
}
