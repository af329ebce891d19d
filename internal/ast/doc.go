// Package ast holds the expression tree the source analyzer hands to the
// chain segmenter. It only models what member-access alignment needs:
// member access, computed member access, calls, and opaque expressions whose
// children may contain further chains. Every node refers to the token stream
// by index, so positions are always read from token.Token.
package ast
