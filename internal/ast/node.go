package ast

import (
	"chainalign/internal/token"
)

// Kind classifies an expression node.
type Kind uint8

const (
	// Opaque is any expression that is not a member access or a call.
	Opaque Kind = iota
	// Member is `object.property`.
	Member
	// Index is `object[index]`.
	Index
	// Call is `callee(args...)`.
	Call
)

func (k Kind) String() string {
	switch k {
	case Opaque:
		return "Opaque"
	case Member:
		return "Member"
	case Index:
		return "Index"
	case Call:
		return "Call"
	}
	return "Unknown"
}

// NoToken marks an absent token index.
const NoToken = -1

// Node is one expression. Token fields are indices into the file's stream.
type Node struct {
	Kind Kind

	// First and Last are the first and last non-comment tokens of the node.
	First, Last int

	// Object is the accessed object (Member, Index) or the callee (Call).
	Object *Node

	// Open is the '.' (Member), '[' (Index) or '(' (Call) token.
	Open int
	// Property is the property token of a Member.
	Property int
	// Close is the ']' (Index) or ')' (Call) token.
	Close int

	// Content is the bracket content of an Index.
	Content *Node
	// Args are the call arguments of a Call.
	Args []*Node
	// Children are the sub-expressions of an Opaque node.
	Children []*Node

	// Unmodeled marks syntax the alignment rules do not cover (optional
	// chaining, tagged templates, error recovery). Chains containing such
	// a link are skipped.
	Unmodeled bool
}

// IsAccess reports whether the node is a Member, Index or Call.
func (n *Node) IsAccess() bool {
	return n != nil && n.Kind != Opaque
}

// File is the analyzed form of one source unit.
type File struct {
	Tokens *token.Stream
	Roots  []*Node
	// HasErrors is set when the analyzer recovered from syntax errors.
	HasErrors bool
}
