package syntax

// Kind is the closed set of node kinds the formatter dispatches on.
type Kind uint8

const (
	// KindLocate is a content node: it carries the span to print.
	KindLocate Kind = iota
	KindKeyword
	KindSymbol
	KindIdentifier
	// KindNumber covers numeric, time and string literals.
	KindNumber
	KindComment
	KindWhiteSpace
	// KindQualifiedName wraps one item of an import/export declaration.
	KindQualifiedName
	KindStructural
)

var kindNames = [...]string{
	KindLocate:        "Locate",
	KindKeyword:       "Keyword",
	KindSymbol:        "Symbol",
	KindIdentifier:    "Identifier",
	KindNumber:        "Number",
	KindComment:       "Comment",
	KindWhiteSpace:    "WhiteSpace",
	KindQualifiedName: "QualifiedName",
	KindStructural:    "Structural",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Locate addresses the exact source text of a content node.
type Locate struct {
	Offset uint32
	Line   uint32 // 1-based line of Offset
	Len    uint32
}

// Node is one tree node. Content nodes have Kind == KindLocate and no
// children; marker and structural nodes own their children in document order.
type Node struct {
	Kind     Kind
	Name     string // имя структурного узла: ModuleDeclaration, Paren, ...
	Loc      Locate
	Children []*Node
}

// Locate returns the first content node under n (n itself included).
func (n *Node) Locate() (Locate, bool) {
	if n == nil {
		return Locate{}, false
	}
	if n.Kind == KindLocate {
		return n.Loc, true
	}
	for _, c := range n.Children {
		if loc, ok := c.Locate(); ok {
			return loc, true
		}
	}
	return Locate{}, false
}

func newLocate(loc Locate) *Node {
	return &Node{Kind: KindLocate, Loc: loc}
}

// marker wraps a single content node.
func marker(kind Kind, loc Locate) *Node {
	return &Node{Kind: kind, Children: []*Node{newLocate(loc)}}
}

func structural(name string) *Node {
	return &Node{Kind: KindStructural, Name: name}
}

func (n *Node) add(child *Node) {
	n.Children = append(n.Children, child)
}
