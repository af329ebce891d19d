package align

import (
	"errors"
	"fmt"

	"chainalign/internal/diag"
)

// ErrBadOption is returned by Options.Validate.
var ErrBadOption = errors.New("bad alignment option")

const (
	DefaultIndentUnit    = 4
	DefaultBracketIndent = 4
)

// Options configures the checker.
type Options struct {
	// IndentUnit is added to the base column for the first leading connector.
	IndentUnit int
	// BracketIndent is added to the open bracket column for bracket content
	// on its own line (bracketPropertyIndent).
	BracketIndent int
	// Severity of emitted alignment diagnostics.
	Severity diag.Severity
}

// DefaultOptions returns the default layout: four-column indents, warnings.
func DefaultOptions() Options {
	return Options{
		IndentUnit:    DefaultIndentUnit,
		BracketIndent: DefaultBracketIndent,
		Severity:      diag.SevWarning,
	}
}

// Validate rejects non-positive indents.
func (o Options) Validate() error {
	if o.IndentUnit <= 0 {
		return fmt.Errorf("%w: indent unit must be positive, got %d", ErrBadOption, o.IndentUnit)
	}
	if o.BracketIndent <= 0 {
		return fmt.Errorf("%w: bracket property indent must be positive, got %d", ErrBadOption, o.BracketIndent)
	}
	return nil
}
