package align

import (
	"fmt"

	"chainalign/internal/ast"
	"chainalign/internal/chain"
	"chainalign/internal/diag"
	"chainalign/internal/source"
	"chainalign/internal/token"
)

// Checker aligns the chains of one file and reports through a diag.Reporter.
// A Checker is not safe for concurrent use; create one per file.
type Checker struct {
	opts Options
	file *source.File
	toks *token.Stream
	rep  diag.Reporter
}

// NewChecker binds a checker to one analyzed file.
func NewChecker(file *source.File, tree *ast.File, opts Options, rep diag.Reporter) *Checker {
	return &Checker{
		opts: opts,
		file: file,
		toks: tree.Tokens,
		rep:  rep,
	}
}

// Check segments tree and checks every chain in it.
func Check(file *source.File, tree *ast.File, opts Options, rep diag.Reporter) {
	if file == nil || tree == nil || tree.Tokens.Len() == 0 {
		return
	}
	NewChecker(file, tree, opts, rep).CheckChains(chain.Segment(tree))
}

// frame is one chain being scanned. pending holds nested chains that must be
// scanned before the frame resumes at link.
type frame struct {
	chain   *chain.Chain
	state   *AnchorState
	link    int
	pending []*chain.Chain
}

// CheckChains scans chains with an explicit stack of anchor states: nested
// chains get a fresh state pushed on top and popped when they end, so the
// enclosing state is never touched by them.
func (c *Checker) CheckChains(chains []*chain.Chain) {
	for _, top := range chains {
		stack := []*frame{c.enter(top)}
		for len(stack) > 0 {
			fr := stack[len(stack)-1]
			if len(fr.pending) > 0 {
				next := fr.pending[0]
				fr.pending = fr.pending[1:]
				stack = append(stack, c.enter(next))
				continue
			}
			if fr.link >= len(fr.chain.Links) {
				stack = stack[:len(stack)-1]
				continue
			}
			l := fr.chain.Links[fr.link]
			fr.link++
			c.step(fr.state, l)
			fr.pending = l.Nested
		}
	}
}

func (c *Checker) enter(ch *chain.Chain) *frame {
	if err := ch.Validate(c.toks); err != nil {
		c.defect(ch, err)
		return &frame{chain: ch, link: len(ch.Links)}
	}
	base := c.toks.At(ch.BaseFirst)
	return &frame{
		chain:   ch,
		state:   newAnchorState(base.Column()),
		pending: ch.BaseNested,
	}
}

func (c *Checker) step(st *AnchorState, l chain.Link) {
	switch l.Kind {
	case chain.DotJoin:
		c.connector(st, l.Open, AlignDot)
		c.property(st, l.Open, l.Property)
	case chain.BracketJoin:
		open := c.connector(st, l.Open, AlignOpenBracket)
		if l.ContentFirst != ast.NoToken && c.leading(l.ContentFirst) {
			c.place(st, l.ContentFirst, open+c.opts.BracketIndent, AlignProperty)
		}
		if c.leading(l.Close) {
			c.place(st, l.Close, open, AlignCloseBracket)
		}
	case chain.CallLink:
		// atomic: anchors stay where the callee left them
	}
}

// connector resolves a '.' or '[' and returns its canonical column.
func (c *Checker) connector(st *AnchorState, idx int, target Target) int {
	var col int
	if c.leading(idx) {
		want, ok := st.LastConnector()
		if !ok {
			want = st.baseColumn + c.opts.IndentUnit
		}
		c.place(st, idx, want, target)
		col = want
	} else {
		col = st.canonical(c.toks.At(idx))
	}
	st.recordConnector(col)
	return col
}

// property resolves the name following the dot at dot.
func (c *Checker) property(st *AnchorState, dot, idx int) {
	if !c.leading(idx) {
		st.recordProperty(st.canonical(c.toks.At(idx)))
		return
	}
	want, ok := st.LastProperty()
	if !ok {
		want = c.inlineColumn(st, dot)
	}
	c.place(st, idx, want, AlignProperty)
	st.recordProperty(want)
}

// inlineColumn is where a property would start if written directly after the
// dot, with the dot directly after the code preceding it.
func (c *Checker) inlineColumn(st *AnchorState, dot int) int {
	prev, ok := c.toks.PrevCode(dot)
	if !ok {
		return st.canonical(c.toks.At(dot)) + 1
	}
	return st.canonicalEnd(prev) + 1
}

func (c *Checker) leading(idx int) bool {
	return c.toks.Position(idx).IsLeading()
}

// place moves the line-leading token idx to want, reporting when it is elsewhere.
func (c *Checker) place(st *AnchorState, idx, want int, target Target) {
	tok := c.toks.At(idx)
	actual := tok.Column()
	st.place(tok.Start.Line, actual, want)
	if actual != want {
		c.report(tok, want, target)
	}
}

func (c *Checker) defect(ch *chain.Chain, err error) {
	sp := source.Span{File: c.file.ID}
	if ch.BaseFirst >= 0 && ch.BaseFirst < c.toks.Len() {
		sp = c.toks.At(ch.BaseFirst).Span
	}
	diag.ReportError(c.rep, diag.InternalSegmenter, sp, fmt.Sprintf("internal error: chain skipped: %v", err)).Emit()
}
