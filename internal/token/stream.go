package token

// LinePosition describes where a token sits on its line relative to the
// neighbouring tokens (comments included).
type LinePosition uint8

const (
	// Inline tokens have other tokens before and after them on the same line.
	Inline LinePosition = iota
	// Leading tokens are the first non-whitespace token on their line.
	Leading
	// Trailing tokens are the last token on their line.
	Trailing
	// Isolated tokens are alone on their line.
	Isolated
)

func (p LinePosition) String() string {
	switch p {
	case Inline:
		return "inline"
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	case Isolated:
		return "isolated"
	}
	return "unknown"
}

// IsLeading reports whether nothing precedes the token on its line.
func (p LinePosition) IsLeading() bool { return p == Leading || p == Isolated }

// IsTrailing reports whether nothing follows the token on its line.
func (p LinePosition) IsTrailing() bool { return p == Trailing || p == Isolated }

// Classify computes the line position of cur from its immediate neighbours.
// A nil neighbour means cur is the first (or last) token of the file.
func Classify(prev *Token, cur Token, next *Token) LinePosition {
	leading := prev == nil || prev.End.Line < cur.Start.Line
	trailing := next == nil || next.Start.Line > cur.End.Line
	switch {
	case leading && trailing:
		return Isolated
	case leading:
		return Leading
	case trailing:
		return Trailing
	default:
		return Inline
	}
}

// Stream is a read-only view over the token slice of one source unit.
type Stream struct {
	toks []Token
}

// NewStream wraps toks; the slice must not be modified afterwards.
func NewStream(toks []Token) *Stream {
	return &Stream{toks: toks}
}

// Len returns the number of tokens.
func (s *Stream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.toks)
}

// At returns the token at index i.
func (s *Stream) At(i int) Token {
	return s.toks[i]
}

// Tokens returns the underlying slice. Do not modify it.
func (s *Stream) Tokens() []Token {
	return s.toks
}

// Prev returns the token immediately preceding i, comments included.
func (s *Stream) Prev(i int) (Token, bool) {
	if i <= 0 || i > len(s.toks) {
		return Token{}, false
	}
	return s.toks[i-1], true
}

// Next returns the token immediately following i, comments included.
func (s *Stream) Next(i int) (Token, bool) {
	if i < -1 || i+1 >= len(s.toks) {
		return Token{}, false
	}
	return s.toks[i+1], true
}

// PrevCode returns the nearest preceding token that is not a comment.
func (s *Stream) PrevCode(i int) (Token, bool) {
	for j := i - 1; j >= 0 && j < len(s.toks); j-- {
		if !s.toks[j].IsComment() {
			return s.toks[j], true
		}
	}
	return Token{}, false
}

// Position classifies token i against its neighbours.
func (s *Stream) Position(i int) LinePosition {
	var prev, next *Token
	if p, ok := s.Prev(i); ok {
		prev = &p
	}
	if n, ok := s.Next(i); ok {
		next = &n
	}
	return Classify(prev, s.toks[i], next)
}

// Walk calls fn for every token relevant to member-access structure, in
// source order: connectors, call parentheses, identifiers and comments.
// Returning false stops the walk.
func (s *Stream) Walk(fn func(i int, tok Token) bool) {
	for i, tok := range s.toks {
		if tok.Kind == Other {
			continue
		}
		if !fn(i, tok) {
			return
		}
	}
}
