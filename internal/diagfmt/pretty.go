package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"svfmt/internal/diag"
	"svfmt/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
// Порядок — как в bag.Items() (ожидается bag.Sort() заранее).
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := printer{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *printer) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

func (p *printer) diagnostic(d diag.Diagnostic) {
	head := fmt.Sprintf("%s %s", d.Severity, d.Code.ID())
	p.location(d.Primary)
	fmt.Fprintf(p.w, "%s: %s\n", p.paint(severityColor(d.Severity), head), d.Message)
	p.snippet(d.Primary, severityColor(d.Severity))
	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprint(p.w, "  ")
		p.location(n.Span)
		fmt.Fprintf(p.w, "%s %s\n", p.paint(color.New(color.FgCyan), "note:"), n.Msg)
		p.snippet(n.Span, color.New(color.FgCyan))
	}
}

func (p *printer) location(sp source.Span) {
	if int(sp.File) >= p.fs.Len() {
		return
	}
	start, _ := p.fs.Resolve(sp)
	loc := fmt.Sprintf("%s:%d:%d:", p.fs.Get(sp.File).Path, start.Line, start.Col)
	fmt.Fprintf(p.w, "%s ", p.paint(color.New(color.Bold), loc))
}

// snippet prints the context lines and the primary line with a caret
// underline. Multi-line spans are underlined up to the end of the first line.
func (p *printer) snippet(sp source.Span, c *color.Color) {
	if int(sp.File) >= p.fs.Len() {
		return
	}
	f := p.fs.Get(sp.File)
	start, end := p.fs.Resolve(sp)
	gutter := len(fmt.Sprint(start.Line))

	first := start.Line
	for i := 0; i < p.opts.Context && first > 1; i++ {
		first--
	}
	for ln := first; ln < start.Line; ln++ {
		fmt.Fprintf(p.w, " %*d | %s\n", gutter, ln, expandTabs(f.GetLine(ln)))
	}
	line := f.GetLine(start.Line)
	fmt.Fprintf(p.w, " %*d | %s\n", gutter, start.Line, expandTabs(line))

	col := int(start.Col) - 1
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		width = max(len(line)-col, 1)
	}
	prefix := expandTabs(line[:min(col, len(line))])
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, " %s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", len(prefix)), p.paint(c, marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
