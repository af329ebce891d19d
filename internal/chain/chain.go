package chain

import (
	"errors"
	"fmt"

	"chainalign/internal/ast"
	"chainalign/internal/token"
)

// ErrMalformed is returned by Validate when a chain's token indices do not
// match the token kinds its links require.
var ErrMalformed = errors.New("malformed chain")

// LinkKind classifies one continuation of a chain.
type LinkKind uint8

const (
	// DotJoin is `.property`.
	DotJoin LinkKind = iota
	// BracketJoin is `[content]`.
	BracketJoin
	// CallLink is `(args)`; it is atomic for anchoring.
	CallLink
)

func (k LinkKind) String() string {
	switch k {
	case DotJoin:
		return "dot"
	case BracketJoin:
		return "bracket"
	case CallLink:
		return "call"
	}
	return "unknown"
}

// Link is one continuation. Token fields are indices into the file stream;
// unused fields hold ast.NoToken.
type Link struct {
	Kind LinkKind

	// Open is the '.', '[' or '('.
	Open int
	// Property is the name after a dot.
	Property int
	// ContentFirst and ContentLast delimit the bracket content.
	ContentFirst, ContentLast int
	// Close is the ']' or ')'.
	Close int

	// Nested are the chains inside the bracket content or call arguments.
	Nested []*Chain
}

// IsJoin reports whether the link is a dot or bracket join.
func (l Link) IsJoin() bool {
	return l.Kind == DotJoin || l.Kind == BracketJoin
}

// Chain is a base expression with its links in source order.
type Chain struct {
	BaseFirst, BaseLast int
	// BaseNested are chains inside the base expression, e.g. `(a.b).c`.
	BaseNested []*Chain
	Links      []Link
}

// Joins counts dot and bracket joins.
func (c *Chain) Joins() int {
	n := 0
	for _, l := range c.Links {
		if l.IsJoin() {
			n++
		}
	}
	return n
}

// Validate checks that every token index is in range and has the kind the
// link requires.
func (c *Chain) Validate(s *token.Stream) error {
	expect := func(idx int, kinds ...token.Kind) error {
		if idx < 0 || idx >= s.Len() {
			return fmt.Errorf("%w: token index %d out of range", ErrMalformed, idx)
		}
		got := s.At(idx).Kind
		for _, k := range kinds {
			if got == k {
				return nil
			}
		}
		return fmt.Errorf("%w: token %d is %s, want %s", ErrMalformed, idx, got, kinds[0])
	}
	if err := expect(c.BaseFirst, anyKind...); err != nil {
		return err
	}
	for _, l := range c.Links {
		var err error
		switch l.Kind {
		case DotJoin:
			if err = expect(l.Open, token.Dot); err == nil {
				err = expect(l.Property, token.Identifier, token.Other)
			}
		case BracketJoin:
			if err = expect(l.Open, token.OpenBracket); err == nil {
				err = expect(l.Close, token.CloseBracket)
			}
			if err == nil && l.Close < l.Open {
				err = fmt.Errorf("%w: close bracket %d before open bracket %d", ErrMalformed, l.Close, l.Open)
			}
		case CallLink:
			if err = expect(l.Open, token.CallOpenParen); err == nil {
				err = expect(l.Close, token.CallCloseParen)
			}
		default:
			err = fmt.Errorf("%w: unknown link kind %d", ErrMalformed, l.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

var anyKind = []token.Kind{
	token.Other, token.Identifier, token.Dot, token.OpenBracket, token.CloseBracket,
	token.CallOpenParen, token.CallCloseParen, token.Comment,
}

// Walk visits c and all its nested chains, innermost first.
func Walk(chains []*Chain, fn func(*Chain)) {
	for _, c := range chains {
		Walk(c.BaseNested, fn)
		for _, l := range c.Links {
			Walk(l.Nested, fn)
		}
		fn(c)
	}
}

// Segment finds every chain in f. The result holds top-level chains; nested
// chains hang off their links.
func Segment(f *ast.File) []*Chain {
	if f == nil {
		return nil
	}
	var out []*Chain
	for _, root := range f.Roots {
		out = append(out, segment(root)...)
	}
	return out
}

// segment returns the chains rooted at n: the chain n starts, or, when n is
// not a usable chain top, every chain found below it.
func segment(n *ast.Node) []*Chain {
	if n == nil {
		return nil
	}
	if !n.IsAccess() {
		var out []*Chain
		for _, child := range n.Children {
			out = append(out, segment(child)...)
		}
		return out
	}

	// spine from the top access down to the base
	var spine []*ast.Node
	unmodeled := false
	cur := n
	for cur.IsAccess() {
		if cur.Unmodeled {
			unmodeled = true
		}
		spine = append(spine, cur)
		cur = cur.Object
		if cur == nil {
			unmodeled = true
			break
		}
	}
	base := cur

	c := &Chain{BaseFirst: ast.NoToken, BaseLast: ast.NoToken}
	if base != nil {
		c.BaseFirst, c.BaseLast = base.First, base.Last
		c.BaseNested = segment(base)
	}
	for i := len(spine) - 1; i >= 0; i-- {
		c.Links = append(c.Links, link(spine[i]))
	}

	if unmodeled || c.BaseFirst == ast.NoToken || c.Joins() == 0 {
		return lift(c)
	}
	return []*Chain{c}
}

func link(n *ast.Node) Link {
	l := Link{
		Open:         n.Open,
		Property:     ast.NoToken,
		ContentFirst: ast.NoToken,
		ContentLast:  ast.NoToken,
		Close:        ast.NoToken,
	}
	switch n.Kind {
	case ast.Member:
		l.Kind = DotJoin
		l.Property = n.Property
	case ast.Index:
		l.Kind = BracketJoin
		l.Close = n.Close
		if n.Content != nil {
			l.ContentFirst, l.ContentLast = n.Content.First, n.Content.Last
			l.Nested = segment(n.Content)
		}
	case ast.Call:
		l.Kind = CallLink
		l.Close = n.Close
		for _, arg := range n.Args {
			l.Nested = append(l.Nested, segment(arg)...)
		}
	}
	return l
}

// lift returns the nested chains of a chain that is itself dropped.
func lift(c *Chain) []*Chain {
	out := append([]*Chain(nil), c.BaseNested...)
	for _, l := range c.Links {
		out = append(out, l.Nested...)
	}
	return out
}
