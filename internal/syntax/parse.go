package syntax

import (
	"fmt"
	"slices"

	"svfmt/internal/diag"
	"svfmt/internal/lexer"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
}

type Result struct {
	Tree   *Tree
	Errors int // лексические + структурные ошибки
}

// OK reports whether the file parsed without errors. The formatter only runs
// on trees for which OK is true.
func (r Result) OK() bool {
	return r.Errors == 0
}

// blockSpec describes a keyword-delimited region checked for pairing.
type blockSpec struct {
	name    string
	closers []string
	// declarations only appear outside of brackets
	topLevel bool
}

var blocks = map[string]blockSpec{
	"begin":       {name: "SeqBlock", closers: []string{"end"}},
	"fork":        {name: "ParBlock", closers: []string{"join", "join_any", "join_none"}},
	"case":        {name: "CaseStatement", closers: []string{"endcase"}},
	"casex":       {name: "CaseStatement", closers: []string{"endcase"}},
	"casez":       {name: "CaseStatement", closers: []string{"endcase"}},
	"randcase":    {name: "RandcaseStatement", closers: []string{"endcase"}},
	"module":      {name: "ModuleDeclaration", closers: []string{"endmodule"}, topLevel: true},
	"macromodule": {name: "ModuleDeclaration", closers: []string{"endmodule"}, topLevel: true},
	"package":     {name: "PackageDeclaration", closers: []string{"endpackage"}, topLevel: true},
	"generate":    {name: "GenerateRegion", closers: []string{"endgenerate"}, topLevel: true},
}

var blockEnds = []string{"end", "join", "join_any", "join_none", "endcase", "endmodule", "endpackage", "endgenerate"}

var brackets = map[string]blockSpec{
	"(": {name: "Paren", closers: []string{")"}},
	"[": {name: "Bracket", closers: []string{"]"}},
	"{": {name: "Brace", closers: []string{"}"}},
}

type frame struct {
	node    *Node
	open    token.Token
	spec    blockSpec
	bracket bool
}

type builder struct {
	file   *source.File
	lx     *lexer.Lexer
	opts   Options
	root   *Node
	stack  []frame
	prev   token.Token // предыдущий значимый токен
	errors int

	// состояние import/export деклараций
	importMode  bool
	itemPending bool
	item        *Node
	itemLast    token.Token
}

// Parse lexes the file and builds its syntax tree. Diagnostics go to
// opts.Reporter; the tree is returned even when errors were found.
func Parse(file *source.File, opts Options) Result {
	b := builder{
		file: file,
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		opts: opts,
		root: structural("Source"),
	}

	for {
		tok := b.lx.Next()
		b.addTrivia(tok.Leading)
		if tok.Kind == token.EOF {
			break
		}
		b.addToken(tok)
		b.prev = tok
	}
	b.closeItem()
	for len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		b.reportUnclosed(top, source.Span{})
		b.stack = b.stack[:len(b.stack)-1]
	}

	return Result{
		Tree:   &Tree{File: file, Root: b.root},
		Errors: b.errors + b.lx.Errors(),
	}
}

// container is where the next node goes.
func (b *builder) container() *Node {
	if b.item != nil {
		return b.item
	}
	if len(b.stack) > 0 {
		return b.stack[len(b.stack)-1].node
	}
	return b.root
}

func (b *builder) addTrivia(trivia []token.Trivia) {
	for _, tr := range trivia {
		kind := KindWhiteSpace
		if tr.IsComment() {
			kind = KindComment
		}
		b.container().add(marker(kind, b.locate(tr.Span)))
	}
}

func (b *builder) addToken(tok token.Token) {
	b.trackImport(tok)
	n := b.tokenNode(tok)

	switch {
	case tok.Kind == token.Punct && brackets[tok.Text].name != "":
		b.open(tok, n, brackets[tok.Text], true)
	case tok.Kind == token.Punct && (tok.Text == ")" || tok.Text == "]" || tok.Text == "}"):
		b.close(tok, n, diag.SynUnmatchedCloser)
	case tok.Kind == token.Keyword && b.opensBlock(tok):
		spec := blocks[tok.Text]
		if spec.topLevel && b.insideBracket() {
			b.errSyn(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("'%s' is not allowed inside brackets", tok.Text)).Emit()
		}
		b.open(tok, n, spec, false)
	case tok.Kind == token.Keyword && slices.Contains(blockEnds, tok.Text):
		b.close(tok, n, diag.SynUnmatchedBlockEnd)
	default:
		b.container().add(n)
	}

	if tok.IsKeyword("import") || tok.IsKeyword("export") {
		b.importMode = true
		b.itemPending = true
	}
}

func (b *builder) opensBlock(tok token.Token) bool {
	if _, ok := blocks[tok.Text]; !ok {
		return false
	}
	switch tok.Text {
	case "fork":
		// wait fork; disable fork;
		return !b.prev.IsKeyword("wait") && !b.prev.IsKeyword("disable")
	case "module", "macromodule":
		return !b.prev.IsKeyword("extern")
	}
	return true
}

func (b *builder) insideBracket() bool {
	for _, f := range b.stack {
		if f.bracket {
			return true
		}
	}
	return false
}

func (b *builder) open(tok token.Token, n *Node, spec blockSpec, bracket bool) {
	f := frame{node: structural(spec.name), open: tok, spec: spec, bracket: bracket}
	b.container().add(f.node)
	f.node.add(n)
	b.stack = append(b.stack, f)
}

// close attaches the closer to the nearest frame that accepts it. Frames
// above that one were never closed and are reported.
func (b *builder) close(tok token.Token, n *Node, unmatched diag.Code) {
	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if slices.Contains(b.stack[i].spec.closers, tok.Text) {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.errSyn(unmatched, tok.Span, fmt.Sprintf("'%s' has no matching opener", tok.Text)).Emit()
		b.container().add(n)
		return
	}
	for len(b.stack)-1 > idx {
		b.reportUnclosed(b.stack[len(b.stack)-1], tok.Span)
		b.stack = b.stack[:len(b.stack)-1]
	}
	b.stack[idx].node.add(n)
	b.stack = b.stack[:idx]
}

func (b *builder) reportUnclosed(f frame, at source.Span) {
	code := diag.SynUnclosedBlock
	msg := fmt.Sprintf("'%s' is never closed", f.open.Text)
	if f.bracket {
		code = diag.SynUnclosedDelimiter
		msg = fmt.Sprintf("unclosed '%s'", f.open.Text)
	}
	rb := b.errSyn(code, f.open.Span, msg)
	if !at.Empty() {
		rb.WithNote(at, fmt.Sprintf("expected '%s' before this", f.spec.closers[0]))
	}
	rb.Emit()
}

// trackImport wraps every item of an import/export declaration into a
// qualified-name node: import a::x, b::*;
func (b *builder) trackImport(tok token.Token) {
	if !b.importMode {
		return
	}
	if b.item == nil {
		if !b.itemPending {
			return
		}
		b.itemPending = false
		if tok.IsIdent() || tok.IsPunct("*") {
			b.item = &Node{Kind: KindQualifiedName, Name: "PackageImportItem"}
			b.container().add(b.item)
			b.itemLast = tok
			return
		}
		// import "DPI-C" ..., modport (import task ...)
		b.importMode = false
		return
	}
	if tok.IsIdent() || tok.IsPunct("::") || tok.IsPunct("*") {
		b.itemLast = tok
		return
	}
	b.closeItem()
	if tok.IsPunct(",") {
		b.itemPending = true
		return
	}
	b.importMode = false
}

func (b *builder) closeItem() {
	if b.item == nil {
		return
	}
	if b.itemLast.IsPunct("::") {
		b.errSyn(diag.SynBadImportItem, b.itemLast.Span, "incomplete package import item").Emit()
	}
	b.item = nil
}

func (b *builder) tokenNode(tok token.Token) *Node {
	loc := b.locate(tok.Span)
	switch tok.Kind {
	case token.Keyword:
		return marker(KindKeyword, loc)
	case token.Punct:
		return marker(KindSymbol, loc)
	case token.Ident, token.EscapedIdent, token.SystemIdent, token.MacroUsage:
		return marker(KindIdentifier, loc)
	case token.IntLit, token.RealLit, token.TimeLit, token.StringLit:
		return marker(KindNumber, loc)
	case token.Directive:
		n := structural("Directive")
		n.add(newLocate(loc))
		return n
	default:
		n := structural("Invalid")
		n.add(newLocate(loc))
		return n
	}
}

func (b *builder) locate(sp source.Span) Locate {
	return Locate{
		Offset: sp.Start,
		Line:   b.file.LineOf(sp.Start),
		Len:    sp.Len(),
	}
}

func (b *builder) errSyn(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	b.errors++
	return diag.ReportError(b.opts.Reporter, code, sp, msg)
}
