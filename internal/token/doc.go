// Package token defines the classified token stream the alignment checker
// reads from the source analyzer.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Tokens are ordered by Span.Start and never overlap.
//   - Comments are part of the stream (Kind: Comment); whitespace is not.
//   - Only connectors of member access and call argument lists get their own
//     kinds. Every other punctuation, keyword or literal is Other.
package token
