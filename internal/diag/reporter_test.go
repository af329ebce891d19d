package diag

import (
	"testing"

	"chainalign/internal/source"
)

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rep := BagReporter{Bag: bag}
	sp := source.Span{Start: 4, End: 5}

	b := NewReportBuilder(rep, SevWarning, AlignDotColumn, sp, "member dot operator should be at column 4").
		WithNote(source.Span{Start: 0, End: 1}, "chain base").
		WithFix(Fix{Title: "realign", Edits: []TextEdit{{Span: source.Span{Start: 2, End: 4}, NewText: "    "}}})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevWarning || d.Code != AlignDotColumn || d.Primary != sp {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Fatalf("notes/fixes not carried: %+v", d)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}

	rep.Report(AlignDotColumn, SevWarning, sp, "should be at column 4", nil, nil)
	rep.Report(AlignDotColumn, SevWarning, sp, "should be at column 4", nil, nil)
	rep.Report(AlignDotColumn, SevWarning, sp, "should be at column 8", nil, nil)
	rep.Report(AlignPropertyColumn, SevWarning, sp, "should be at column 4", nil, nil)
	rep.Report(AlignDotColumn, SevWarning, source.Span{File: 1, Start: 1, End: 2}, "should be at column 4", nil, nil)

	if bag.Len() != 3 {
		t.Fatalf("expected 3 unique diagnostics, got %d", bag.Len())
	}
	if got := bag.Items()[0].Message; got != "should be at column 4" {
		t.Fatalf("first report must win, got %q", got)
	}
	if rep.Suppressed() != 2 {
		t.Fatalf("Suppressed() = %d, want 2", rep.Suppressed())
	}
}

func TestFixEnumsString(t *testing.T) {
	if FixKindQuickFix.String() != "quickfix" {
		t.Fatalf("unexpected kind: %s", FixKindQuickFix)
	}
	if FixApplicabilityAlwaysSafe.String() != "always-safe" {
		t.Fatalf("unexpected applicability: %s", FixApplicabilityAlwaysSafe)
	}
}
