package ast

// Inspect traverses the tree rooted at n in depth-first order, calling fn
// for each node before its children. If fn returns false the children of
// that node are skipped.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.children() {
		Inspect(child, fn)
	}
}

func (n *Node) children() []*Node {
	switch n.Kind {
	case Member:
		return []*Node{n.Object}
	case Index:
		return []*Node{n.Object, n.Content}
	case Call:
		out := make([]*Node, 0, len(n.Args)+1)
		out = append(out, n.Object)
		return append(out, n.Args...)
	default:
		return n.Children
	}
}
