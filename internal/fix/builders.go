package fix

import (
	"strings"

	"chainalign/internal/diag"
	"chainalign/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func quickFix(title string, edits ...diag.TextEdit) diag.Fix {
	return diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
}

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text string, guard string, opts ...Option) diag.Fix {
	return applyOptions(quickFix(title, diag.TextEdit{
		Span:    at,
		NewText: text,
		OldText: guard,
	}), opts)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) diag.Fix {
	return applyOptions(quickFix(title, diag.TextEdit{
		Span:    span,
		NewText: "",
		OldText: expect,
	}), opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return applyOptions(quickFix(title, diag.TextEdit{
		Span:    span,
		NewText: newText,
		OldText: expect,
	}), opts)
}

// Reindent replaces the leading whitespace run ws (guarded by its current
// text) with width spaces.
func Reindent(title string, ws source.Span, current string, width int, opts ...Option) diag.Fix {
	if width < 0 {
		width = 0
	}
	return ReplaceSpan(title, ws, strings.Repeat(" ", width), current, opts...)
}
