package parser

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"chainalign/internal/ast"
	"chainalign/internal/source"
	"chainalign/internal/token"
)

// atomic node kinds are emitted as a single token even though tree-sitter
// gives them children (quotes, fragments, escape sequences).
var atomic = map[string]bool{
	"string": true,
	"regex":  true,
}

var identifierKinds = map[string]bool{
	"identifier":                    true,
	"property_identifier":           true,
	"private_property_identifier":   true,
	"shorthand_property_identifier": true,
	"this":                          true,
	"super":                         true,
}

type builder struct {
	file  *source.File
	toks  []token.Token
	index map[uint32]int // start offset -> token index
}

func newBuilder(f *source.File) *builder {
	return &builder{
		file:  f,
		toks:  make([]token.Token, 0, len(f.Content)/4+1),
		index: make(map[uint32]int),
	}
}

func (b *builder) collect(n *sitter.Node, parentKind, grandKind string) error {
	kind := n.Kind()
	count := n.ChildCount()
	if count == 0 || atomic[kind] {
		return b.addLeaf(n, classifyLeaf(kind, parentKind, grandKind))
	}
	for i := uint(0); i < count; i++ {
		if err := b.collect(n.Child(i), kind, parentKind); err != nil {
			return err
		}
	}
	return nil
}

func classifyLeaf(kind, parentKind, grandKind string) token.Kind {
	switch kind {
	case "comment", "html_comment":
		return token.Comment
	case ".":
		if parentKind == "member_expression" {
			return token.Dot
		}
	case "[":
		if parentKind == "subscript_expression" {
			return token.OpenBracket
		}
	case "]":
		if parentKind == "subscript_expression" {
			return token.CloseBracket
		}
	case "(":
		if parentKind == "arguments" && grandKind == "call_expression" {
			return token.CallOpenParen
		}
	case ")":
		if parentKind == "arguments" && grandKind == "call_expression" {
			return token.CallCloseParen
		}
	default:
		if identifierKinds[kind] {
			return token.Identifier
		}
	}
	return token.Other
}

func (b *builder) addLeaf(n *sitter.Node, kind token.Kind) error {
	start, err := safecast.Conv[uint32](n.StartByte())
	if err != nil {
		return fmt.Errorf("token start overflow: %w", err)
	}
	end, err := safecast.Conv[uint32](n.EndByte())
	if err != nil {
		return fmt.Errorf("token end overflow: %w", err)
	}
	if start == end {
		// MISSING nodes inserted by error recovery have no text
		return nil
	}
	b.index[start] = len(b.toks)
	b.toks = append(b.toks, token.Token{
		Kind:  kind,
		Span:  source.Span{File: b.file.ID, Start: start, End: end},
		Text:  string(b.file.Content[start:end]),
		Start: b.file.Position(start),
		End:   b.file.Position(end),

		StartCol: b.file.UnitColumn(start),
		EndCol:   b.file.UnitColumn(end),
	})
	return nil
}

// tokenAt returns the index of the token starting where n starts.
func (b *builder) tokenAt(n *sitter.Node) int {
	if n == nil {
		return ast.NoToken
	}
	start, err := safecast.Conv[uint32](n.StartByte())
	if err != nil {
		return ast.NoToken
	}
	if i, ok := b.index[start]; ok {
		return i
	}
	return ast.NoToken
}

// bounds finds the first and last non-comment tokens inside n.
func (b *builder) bounds(n *sitter.Node) (int, int) {
	start, end := n.StartByte(), n.EndByte()
	first := sort.Search(len(b.toks), func(i int) bool {
		return uint(b.toks[i].Span.Start) >= start
	})
	for first < len(b.toks) && b.toks[first].IsComment() {
		first++
	}
	last := sort.Search(len(b.toks), func(i int) bool {
		return uint(b.toks[i].Span.End) > end
	}) - 1
	for last >= 0 && b.toks[last].IsComment() {
		last--
	}
	if first >= len(b.toks) || last < first {
		return ast.NoToken, ast.NoToken
	}
	return first, last
}

func (b *builder) expr(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	var node *ast.Node
	switch n.Kind() {
	case "member_expression":
		node = b.member(n)
	case "subscript_expression":
		node = b.subscript(n)
	case "call_expression":
		node = b.call(n)
	default:
		node = &ast.Node{Kind: ast.Opaque, Open: ast.NoToken, Property: ast.NoToken, Close: ast.NoToken}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if child.IsExtra() {
				continue
			}
			if c := b.keep(b.expr(child)); c != nil {
				node.Children = append(node.Children, c)
			}
		}
	}
	node.First, node.Last = b.bounds(n)
	if node.IsAccess() && (n.HasError() || node.First == ast.NoToken) {
		node.Unmodeled = true
	}
	return node
}

// keep drops opaque leaves: only access expressions and opaque nodes that
// contain them are worth walking later.
func (b *builder) keep(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	if n.Kind == ast.Opaque && len(n.Children) == 0 {
		return nil
	}
	return n
}

func (b *builder) member(n *sitter.Node) *ast.Node {
	node := &ast.Node{
		Kind:     ast.Member,
		Open:     ast.NoToken,
		Property: b.tokenAt(n.ChildByFieldName("property")),
		Close:    ast.NoToken,
		Object:   b.expr(n.ChildByFieldName("object")),
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		switch child := n.Child(i); child.Kind() {
		case ".":
			node.Open = b.tokenAt(child)
		case "optional_chain":
			node.Unmodeled = true
		}
	}
	if node.Object == nil || node.Open == ast.NoToken || node.Property == ast.NoToken {
		node.Unmodeled = true
	}
	return node
}

func (b *builder) subscript(n *sitter.Node) *ast.Node {
	node := &ast.Node{
		Kind:     ast.Index,
		Open:     ast.NoToken,
		Property: ast.NoToken,
		Close:    ast.NoToken,
		Object:   b.expr(n.ChildByFieldName("object")),
	}
	if index := n.ChildByFieldName("index"); index != nil {
		node.Content = b.expr(index)
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		switch child := n.Child(i); child.Kind() {
		case "[":
			node.Open = b.tokenAt(child)
		case "]":
			node.Close = b.tokenAt(child)
		case "optional_chain":
			node.Unmodeled = true
		}
	}
	if node.Object == nil || node.Content == nil || node.Open == ast.NoToken || node.Close == ast.NoToken {
		node.Unmodeled = true
	}
	return node
}

func (b *builder) call(n *sitter.Node) *ast.Node {
	node := &ast.Node{
		Kind:     ast.Call,
		Open:     ast.NoToken,
		Property: ast.NoToken,
		Close:    ast.NoToken,
		Object:   b.expr(n.ChildByFieldName("function")),
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Kind() == "optional_chain" {
			node.Unmodeled = true
		}
	}
	args := n.ChildByFieldName("arguments")
	if args == nil || args.Kind() != "arguments" {
		// tagged template: foo`...`
		node.Unmodeled = true
		if args != nil {
			if c := b.keep(b.expr(args)); c != nil {
				node.Args = append(node.Args, c)
			}
		}
		return node
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(":
			node.Open = b.tokenAt(child)
		case ")":
			node.Close = b.tokenAt(child)
		default:
			if !child.IsNamed() || child.IsExtra() {
				continue
			}
			if c := b.keep(b.expr(child)); c != nil {
				node.Args = append(node.Args, c)
			}
		}
	}
	if node.Object == nil || node.Open == ast.NoToken || node.Close == ast.NoToken {
		node.Unmodeled = true
	}
	return node
}
