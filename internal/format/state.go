package format

import "svfmt/internal/syntax"

// state is the flag bundle threaded through one traversal. classify sets the
// pending flags from marker nodes; emit consumes them on the next content node.
type state struct {
	tree *syntax.Tree
	w    *Writer

	lastLine uint32 // строка последнего выведенного (или пропущенного) Locate
	prevText string // последний напечатанный токен, для проверки слипания
	indent   int

	// одноразовые флаги: сбрасываются после каждого Locate
	keepOldIndent bool
	head          bool
	tail          bool
	skipNext      bool
	comment       bool

	// держатся между узлами
	port      bool
	portStart int // смещение в буфере начала объявления порта; -1 пока не начато
	symbol    bool // последний маркер — символ, ждущий следующий токен
	special   bool // внутри import-элемента pkg::item до ';'

	separable map[[2]string]bool
}

func newState(tree *syntax.Tree) *state {
	return &state{
		tree:      tree,
		w:         NewWriter(len(tree.File.Content) + len(tree.File.Content)/4),
		lastLine:  1,
		portStart: -1,
		separable: make(map[[2]string]bool),
	}
}

func (s *state) clearOneShot() {
	s.keepOldIndent = false
	s.head = false
	s.tail = false
	s.skipNext = false
	s.comment = false
}
