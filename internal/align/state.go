package align

import "chainalign/internal/token"

// AnchorState is the per-chain scan state.
type AnchorState struct {
	lastConnector int
	hasConnector  bool
	lastProperty  int
	hasProperty   bool

	baseColumn int
	// shift[line] is how far the chain's fixes move that line.
	shift map[uint32]int
}

func newAnchorState(baseColumn int) *AnchorState {
	return &AnchorState{
		baseColumn: baseColumn,
		shift:      make(map[uint32]int),
	}
}

// LastConnector returns the canonical column of the latest connector.
func (s *AnchorState) LastConnector() (int, bool) {
	return s.lastConnector, s.hasConnector
}

// LastProperty returns the canonical column of the latest property.
func (s *AnchorState) LastProperty() (int, bool) {
	return s.lastProperty, s.hasProperty
}

func (s *AnchorState) recordConnector(col int) {
	s.lastConnector, s.hasConnector = col, true
}

func (s *AnchorState) recordProperty(col int) {
	s.lastProperty, s.hasProperty = col, true
}

// place registers that the leading token of line moves from actual to want.
func (s *AnchorState) place(line uint32, actual, want int) {
	if d := want - actual; d != 0 {
		s.shift[line] = d
	} else {
		delete(s.shift, line)
	}
}

// canonical is where tok starts once this chain's fixes are applied.
func (s *AnchorState) canonical(tok token.Token) int {
	return tok.Column() + s.shift[tok.Start.Line]
}

// canonicalEnd is the column just past tok once this chain's fixes are applied.
func (s *AnchorState) canonicalEnd(tok token.Token) int {
	return tok.EndColumn() + s.shift[tok.End.Line]
}
