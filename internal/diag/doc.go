// Package diag defines the diagnostic model shared by the analyzer, the
// alignment checker, the fix engine and the renderers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (ALN1001...).
//   - Message – human oriented text. Alignment messages are part of the
//     public contract and must not be reworded.
//   - Primary span – the misplaced token.
//   - Notes – optional secondary spans.
//   - Fixes – optional Fix records.
//
// # Fix suggestions
//
// A Fix is a titled list of TextEdits plus metadata (Kind, Applicability,
// IsPreferred, ID). Alignment fixes are always a single edit that replaces
// the leading whitespace of one line, so they are AlwaysSafe and never
// overlap each other.
//
// TextEdit spans are byte offsets in normalised file content; OldText is an
// optional guard the fix engine checks before applying.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. ReportBuilder accumulates notes and
// fixes before Emit; BagReporter collects into a Bag, which supports
// sorting, deduplication and severity queries.
//
// Package diag does not render or apply anything: see internal/diagfmt and
// internal/fix.
package diag
