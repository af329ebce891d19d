package align

import (
	"fmt"

	"chainalign/internal/diag"
	"chainalign/internal/fix"
	"chainalign/internal/source"
	"chainalign/internal/token"
)

// Target names the kind of token being placed.
type Target uint8

const (
	AlignDot Target = iota
	AlignOpenBracket
	AlignCloseBracket
	AlignProperty
)

// Message renders the diagnostic text for a token that belongs at col.
func (t Target) Message(col int) string {
	switch t {
	case AlignDot:
		return fmt.Sprintf("member dot operator should be at column %d", col)
	case AlignOpenBracket:
		return fmt.Sprintf("member open bracket should be at column %d", col)
	case AlignCloseBracket:
		return fmt.Sprintf("member close bracket should be at column %d", col)
	default:
		return fmt.Sprintf("property should start at column %d", col)
	}
}

// Code returns the diagnostic code reported for the target.
func (t Target) Code() diag.Code {
	switch t {
	case AlignDot:
		return diag.AlignDotColumn
	case AlignOpenBracket:
		return diag.AlignOpenBracketColumn
	case AlignCloseBracket:
		return diag.AlignCloseBracketColumn
	default:
		return diag.AlignPropertyColumn
	}
}

func (c *Checker) report(tok token.Token, col int, target Target) {
	b := diag.NewReportBuilder(c.rep, c.opts.Severity, target.Code(), tok.Span, target.Message(col))
	if ws, text, ok := c.indentRun(tok); ok {
		b.WithFix(fix.Reindent(fmt.Sprintf("move to column %d", col), ws, text, col, fix.Preferred()))
	}
	b.Emit()
}

// indentRun returns the run between the start of tok's line and tok. It is
// only usable for a fix when it holds nothing but blanks.
func (c *Checker) indentRun(tok token.Token) (source.Span, string, bool) {
	start := c.file.LineStart(tok.Start.Line)
	if start > tok.Span.Start {
		return source.Span{}, "", false
	}
	run := c.file.Content[start:tok.Span.Start]
	for _, b := range run {
		if b != ' ' && b != '\t' && b != '\f' && b != '\v' {
			return source.Span{}, "", false
		}
	}
	return source.Span{File: c.file.ID, Start: start, End: tok.Span.Start}, string(run), true
}
