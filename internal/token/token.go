package token

import (
	"chainalign/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Start source.LineCol
	End   source.LineCol // position just past the last byte

	// StartCol and EndCol are 0-based columns in UTF-16 code units from
	// the start of the token's first and last line, the unit JavaScript
	// tools count columns in. Alignment works on these, never on bytes.
	StartCol int
	EndCol   int
}

// Line returns the 1-based line the token starts on.
func (t Token) Line() uint32 { return t.Start.Line }

// Column returns the 0-based start column.
func (t Token) Column() int { return t.StartCol }

// EndColumn returns the 0-based column just past the token on its last line.
func (t Token) EndColumn() int { return t.EndCol }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// Multiline reports whether the token spans more than one line
// (block comments, template literals).
func (t Token) Multiline() bool { return t.End.Line > t.Start.Line }
