package syntax

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"svfmt/internal/source"
)

// Tree is a parsed file. It is never mutated after Parse returns.
type Tree struct {
	File *source.File
	Root *Node
}

// Walk yields every node in document (pre-)order.
func (t *Tree) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if t == nil || t.Root == nil {
			return
		}
		walk(t.Root, yield)
	}
}

func walk(n *Node, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// Text returns the exact source text addressed by loc.
func (t *Tree) Text(loc Locate) string {
	return string(t.File.Slice(loc.Offset, loc.Len))
}

// Literal returns the text of the first content node under n.
func (t *Tree) Literal(n *Node) string {
	loc, ok := n.Locate()
	if !ok {
		return ""
	}
	return t.Text(loc)
}

// EndLine is the line of the last byte of loc; multi-line comments and
// directives end below their start line.
func (t *Tree) EndLine(loc Locate) uint32 {
	nl, err := safecast.Conv[uint32](bytes.Count(t.File.Slice(loc.Offset, loc.Len), []byte{'\n'}))
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return loc.Line + nl
}

// Dump writes an indented outline of the tree, one node per line. Marker
// nodes are printed together with their text.
func (t *Tree) Dump(w io.Writer) error {
	var sb strings.Builder
	t.dump(&sb, t.Root, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Tree) dump(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	switch n.Kind {
	case KindStructural, KindQualifiedName:
		name := n.Name
		if name == "" {
			name = n.Kind.String()
		}
		sb.WriteString(name)
		sb.WriteByte('\n')
		for _, c := range n.Children {
			// Directive/Invalid wrap a single Locate — печатаем его вместе с именем
			if c.Kind == KindLocate {
				sb.WriteString(strings.Repeat("  ", depth+1))
				t.dumpLocate(sb, "Locate", c.Loc)
				continue
			}
			t.dump(sb, c, depth+1)
		}
	case KindLocate:
		t.dumpLocate(sb, "Locate", n.Loc)
	default:
		loc, _ := n.Locate()
		t.dumpLocate(sb, n.Kind.String(), loc)
	}
}

func (t *Tree) dumpLocate(sb *strings.Builder, label string, loc Locate) {
	fmt.Fprintf(sb, "%s %s @%d:%d+%d\n", label, strconv.Quote(t.Text(loc)), loc.Line, loc.Offset, loc.Len)
}
