// Package parser is the source analyzer: it runs a tree-sitter grammar over
// one file and converts the concrete syntax tree into the classified token
// stream (package token) and the member-access expression tree (package ast).
//
// Malformed input is not rejected. Access expressions that overlap a
// syntax error are marked Unmodeled so later phases stay silent about them.
package parser
