package diag

import "chainalign/internal/source"

// tokenKey identifies one rule applied to one token.
type tokenKey struct {
	code  Code
	file  source.FileID
	start uint32
}

// DedupReporter forwards at most one diagnostic per code and primary start
// offset. A token reached through two overlapping chains keeps the first
// expected column reported for it.
type DedupReporter struct {
	next       Reporter
	seen       map[tokenKey]struct{}
	suppressed int
}

// NewDedupReporter wraps next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[tokenKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	key := tokenKey{code: code, file: primary.File, start: primary.Start}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed returns how many reports were dropped as duplicates.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
