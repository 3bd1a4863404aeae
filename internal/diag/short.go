package diag

import (
	"fmt"
	"strings"

	"svfmt/internal/source"
)

// FormatShortDiagnostics renders diagnostics one per line as
// "path:line:col: SEVERITY CODE: message", notes indented underneath. Order
// follows the input; call Bag.Sort first for a stable order.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range diags {
		writeShort(&b, fs, d.Primary, fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), sanitizeMessage(d.Message)))
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			b.WriteString("  ")
			writeShort(&b, fs, note.Span, "note: "+sanitizeMessage(note.Msg))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeShort(b *strings.Builder, fs *source.FileSet, span source.Span, text string) {
	if int(span.File) >= fs.Len() {
		fmt.Fprintf(b, "%s\n", text)
		return
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	fmt.Fprintf(b, "%s:%d:%d: %s\n", file.Path, start.Line, start.Col, text)
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
