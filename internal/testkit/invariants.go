// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"svfmt/internal/syntax"
)

// CheckTreeInvariants verifies that a syntax tree is lossless:
// 1) content nodes appear in document order and tile the file without gaps
// 2) every content node is non-empty and records the line of its offset
// 3) marker nodes wrap exactly one content node
func CheckTreeInvariants(tree *syntax.Tree) error {
	if tree == nil || tree.Root == nil || tree.File == nil {
		return fmt.Errorf("nil tree")
	}
	lenContent, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var next uint32
	for n := range tree.Walk() {
		switch {
		case n.Kind == syntax.KindLocate:
			loc := n.Loc
			if loc.Offset != next {
				return fmt.Errorf("content at %d, expected %d (gap or overlap)", loc.Offset, next)
			}
			if loc.Len == 0 {
				return fmt.Errorf("empty content node at %d", loc.Offset)
			}
			if loc.Offset+loc.Len > lenContent {
				return fmt.Errorf("content %d+%d beyond file end %d", loc.Offset, loc.Len, lenContent)
			}
			if want := tree.File.LineOf(loc.Offset); loc.Line != want {
				return fmt.Errorf("content at %d records line %d, want %d", loc.Offset, loc.Line, want)
			}
			next = loc.Offset + loc.Len
		case n.Kind != syntax.KindStructural:
			if len(n.Children) != 1 || n.Children[0].Kind != syntax.KindLocate {
				return fmt.Errorf("%s marker has %d children", n.Kind, len(n.Children))
			}
		}
	}
	if next != lenContent {
		return fmt.Errorf("content ends at %d, file has %d bytes", next, lenContent)
	}
	return nil
}
