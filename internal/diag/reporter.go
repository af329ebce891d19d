package diag

import "chainalign/internal/source"

// Reporter receives diagnostics from the checker and the driver.
// Implementations: BagReporter, DedupReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// ReportBuilder collects notes and fixes for one diagnostic and hands it to
// a Reporter on Emit. A nil builder ignores every call.
type ReportBuilder struct {
	reporter Reporter
	d        *Diagnostic
}

// NewReportBuilder starts a diagnostic bound to r.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, d: New(sev, code, primary, msg)}
}

// ReportError starts a SevError diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// WithNote attaches a secondary location.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil && b.d != nil {
		b.d.WithNote(sp, msg)
	}
	return b
}

// WithFix attaches a fix.
func (b *ReportBuilder) WithFix(fix Fix) *ReportBuilder {
	if b != nil && b.d != nil {
		b.d.WithFix(fix)
	}
	return b
}

// Emit forwards the diagnostic once; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.d == nil {
		return
	}
	d := b.d
	b.d = nil
	if b.reporter != nil {
		b.reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
}

// BagReporter складывает диагностики в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	d.Notes, d.Fixes = notes, fixes
	r.Bag.Add(d)
}
