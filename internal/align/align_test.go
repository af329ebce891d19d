package align

import (
	"fmt"
	"strings"
	"testing"

	"chainalign/internal/diag"
	"chainalign/internal/fix"
	"chainalign/internal/parser"
	"chainalign/internal/source"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

type want struct {
	msg                        string
	line, col, endLine, endCol uint32
}

func (w want) String() string {
	return fmt.Sprintf("%d:%d-%d:%d %s", w.line, w.col, w.endLine, w.endCol, w.msg)
}

func dot(col int, line, c uint32) want {
	return want{fmt.Sprintf("member dot operator should be at column %d", col), line, c, line, c + 1}
}

func open(col int, line, c uint32) want {
	return want{fmt.Sprintf("member open bracket should be at column %d", col), line, c, line, c + 1}
}

func closing(col int, line, c uint32) want {
	return want{fmt.Sprintf("member close bracket should be at column %d", col), line, c, line, c + 1}
}

func prop(col int, line, c, endC uint32) want {
	return want{fmt.Sprintf("property should start at column %d", col), line, c, line, endC}
}

type checked struct {
	fs    *source.FileSet
	file  *source.File
	diags []*diag.Diagnostic
}

func check(t *testing.T, src string, opts Options) checked {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("chain.js", []byte(src))
	file := fs.Get(id)
	tree, err := parser.New().Parse(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	bag := diag.NewBag(0)
	Check(file, tree, opts, diag.BagReporter{Bag: bag})
	bag.Sort()
	return checked{fs: fs, file: file, diags: bag.Items()}
}

func (c checked) rendered() []string {
	out := make([]string, 0, len(c.diags))
	for _, d := range c.diags {
		start, end := c.fs.Resolve(d.Primary)
		out = append(out, want{d.Message, start.Line, start.Col, end.Line, end.Col}.String())
	}
	return out
}

func (c checked) fixed(t *testing.T) string {
	t.Helper()
	var edits []diag.TextEdit
	for _, d := range c.diags {
		for _, f := range d.Fixes {
			edits = append(edits, f.Edits...)
		}
	}
	out, err := fix.ApplyToContent(c.file.Content, edits)
	if err != nil {
		t.Fatalf("apply fixes: %v", err)
	}
	return string(out)
}

var validCases = []struct {
	name          string
	code          string
	bracketIndent int
}{
	{"leading dot after inline join", lines(
		"root.first",
		"    .second = null;"), 0},
	{"several leading dots", lines(
		"root.first.second",
		"          .third.fourth",
		"                .fifth = null;"), 0},
	{"leading dot after base", lines(
		"root",
		"    .first = null;"), 0},
	{"dangling dot after join", lines(
		"root.first.",
		"     second = null;"), 0},
	{"dangling dot after base", lines(
		"root.",
		"     first = null;"), 0},
	{"dot alone on its line", lines(
		"root",
		"    .",
		"     first = null;"), 0},
	{"leading bracket after bracket", lines(
		"root['first']",
		"    ['second'] = null;"), 0},
	{"leading bracket after base", lines(
		"root",
		"    ['first'] = null;"), 0},
	{"bracket content on own line", lines(
		"root.first",
		"    [",
		"        'second'",
		"    ].",
		"     third = null;"), 0},
	{"bracket content with custom indent", lines(
		"root.first",
		"    [",
		"      'second'",
		"    ].",
		"     third = null;"), 2},
	{"call before leading dot", lines(
		"root.first.second()",
		"          .third = null;"), 0},
	{"call between joins", lines(
		"root.first().second",
		"            .third();"), 0},
	{"dangling dot after call", lines(
		"root.first().",
		"     second();"), 0},
	{"multiline call then inline join", lines(
		"root.first(",
		").second",
		" .third = null;"), 0},
	{"multiline call then leading dots", lines(
		"root.first(",
		")",
		"    .second",
		"    .third = null;"), 0},
	{"multiline call then dangling dot", lines(
		"root.first(",
		").second.",
		"  third = null;"), 0},
	{"multiline call then dangling dots", lines(
		"root.first(",
		").",
		"     second.",
		"     third = null;"), 0},
	{"call parenthesis leading line", lines(
		"root.first",
		"().second = null;"), 0},
	{"nested chain in arguments", lines(
		"outer.first(inner.first",
		"                 .second.third",
		"                        .fourth)",
		"     .second = null;"), 0},
	{"nested chain then outer join on same line", lines(
		"outer.first(inner.first",
		"                 .second.third",
		"                        .fourth).second",
		"                                .third = null;"), 0},
	{"blank lines", lines(
		"root.first",
		"",
		"    .second.third",
		"",
		"           .fourth = null;"), 0},
	{"comment before dot", lines(
		"root.first",
		"/* comment */.second",
		"             .third = null;"), 0},
	{"comment before close bracket", lines(
		"root['first'",
		"/* comment */] = null;"), 0},
	{"comment before property", lines(
		"root.",
		"/* comment */first = null;"), 0},
	{"comment inside base line", lines(
		"root/* comment */.first",
		"                 .second = null;"), 0},
	{"repeated calls", lines(
		"root.first()().second",
		"              .third = null;"), 0},
	{"single line chain", "root.first.second().third[0] = null;", 0},
	{"no chain at all", "const x = 1 + 2;", 0},
}

func TestValid(t *testing.T) {
	for _, tt := range validCases {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.bracketIndent > 0 {
				opts.BracketIndent = tt.bracketIndent
			}
			res := check(t, tt.code, opts)
			if len(res.diags) != 0 {
				t.Fatalf("expected no diagnostics, got:\n%s", strings.Join(res.rendered(), "\n"))
			}
		})
	}
}

var invalidCases = []struct {
	name   string
	code   string
	errors []want
	output string
}{
	{
		"leading dot too far right",
		lines("root.first.second", "           .third = null;"),
		[]want{dot(10, 2, 12)},
		lines("root.first.second", "          .third = null;"),
	},
	{
		"leading dot too far left",
		lines("root.first.second", "    .third = null;"),
		[]want{dot(10, 2, 5)},
		lines("root.first.second", "          .third = null;"),
	},
	{
		"first leading dot over-indented",
		lines("root", "     .first = null;"),
		[]want{dot(4, 2, 6)},
		lines("root", "    .first = null;"),
	},
	{
		"first leading dot under-indented",
		lines("root", "   .first = null;"),
		[]want{dot(4, 2, 4)},
		lines("root", "    .first = null;"),
	},
	{
		"shifted line moves later joins",
		lines("root", ".first", "      .second.third", "             .fourth = null;"),
		[]want{dot(4, 2, 1), dot(4, 3, 7), dot(11, 4, 14)},
		lines("root", "    .first", "    .second.third", "           .fourth = null;"),
	},
	{
		"dangling dot property too far left",
		lines("root.first.", "    second = null;"),
		[]want{prop(5, 2, 5, 11)},
		lines("root.first.", "     second = null;"),
	},
	{
		"dangling dot property far left",
		lines("root.first.", "  second = null;"),
		[]want{prop(5, 2, 3, 9)},
		lines("root.first.", "     second = null;"),
	},
	{
		"dangling dot after base",
		lines("root.", "  first = null;"),
		[]want{prop(5, 2, 3, 8)},
		lines("root.", "     first = null;"),
	},
	{
		"dot and property on own lines",
		lines("root", ".", "first = null;"),
		[]want{dot(4, 2, 1), prop(5, 3, 1, 6)},
		lines("root", "    .", "     first = null;"),
	},
	{
		"leading bracket over-indented",
		lines("root['first']", "        ['second'] = null;"),
		[]want{open(4, 2, 9)},
		lines("root['first']", "    ['second'] = null;"),
	},
	{
		"first leading bracket under-indented",
		lines("root", "  ['first'] = null;"),
		[]want{open(4, 2, 3)},
		lines("root", "    ['first'] = null;"),
	},
	{
		"bracket content and close",
		lines("root[", "     'first'", "] = null;"),
		[]want{prop(8, 2, 6, 13), closing(4, 3, 1)},
		lines("root[", "        'first'", "    ] = null;"),
	},
	{
		"bracket content under-indented",
		lines("root.first", "    [", "     'second'", "    ].", "     third = null;"),
		[]want{prop(8, 3, 6, 14)},
		lines("root.first", "    [", "        'second'", "    ].", "     third = null;"),
	},
	{
		"leading dot after call join",
		lines("root.first().second", ".third();"),
		[]want{dot(12, 2, 1)},
		lines("root.first().second", "            .third();"),
	},
	{
		"call does not move anchor",
		lines("root.first.second()", "                   .third = null;"),
		[]want{dot(10, 2, 20)},
		lines("root.first.second()", "          .third = null;"),
	},
	{
		"dangling dot after call",
		lines("root.first.second().", "                    third();"),
		[]want{prop(11, 2, 21, 26)},
		lines("root.first.second().", "           third();"),
	},
	{
		"inline join after multiline call",
		lines("root.first(", ").second", "      .third = null;"),
		[]want{dot(1, 3, 7)},
		lines("root.first(", ").second", " .third = null;"),
	},
	{
		"leading dot after multiline call",
		lines("root.first(", ")", " .third = null;"),
		[]want{dot(4, 3, 2)},
		lines("root.first(", ")", "    .third = null;"),
	},
	{
		"dangling dot after multiline call join",
		lines("root.first(", ").second.", "      third = null;"),
		[]want{prop(2, 3, 7, 12)},
		lines("root.first(", ").second.", "  third = null;"),
	},
	{
		"dangling dot after multiline call",
		lines("root.first(", ").", "  third = null;"),
		[]want{prop(5, 3, 3, 8)},
		lines("root.first(", ").", "     third = null;"),
	},
	{
		"call parenthesis leading line",
		lines("root.first", "().second", ".third = null;"),
		[]want{dot(2, 3, 1)},
		lines("root.first", "().second", "  .third = null;"),
	},
	{
		"nested and outer chains fixed independently",
		lines(
			"outer.first(inner.first",
			"     .second.third",
			"    .fourth)",
			"  .second();"),
		[]want{dot(17, 2, 6), dot(24, 3, 5), dot(5, 4, 3)},
		lines(
			"outer.first(inner.first",
			"                 .second.third",
			"                        .fourth)",
			"     .second();"),
	},
	{
		"outer join after nested chain uses actual columns",
		lines(
			"outer.first(inner.first",
			"     .second.third()",
			"    .fourth).second",
			"    .third();"),
		[]want{dot(17, 2, 6), dot(24, 3, 5), dot(12, 4, 5)},
		lines(
			"outer.first(inner.first",
			"                 .second.third()",
			"                        .fourth).second",
			"            .third();"),
	},
	{
		"outer join after aligned nested chain",
		lines(
			"outer.first(inner.first",
			"                 .second.third()",
			"                        .fourth).second",
			"            .third();"),
		[]want{dot(32, 4, 13)},
		lines(
			"outer.first(inner.first",
			"                 .second.third()",
			"                        .fourth).second",
			"                                .third();"),
	},
	{
		"nested dangling dots",
		lines(
			"outer.first(inner.first.",
			"      second.third.",
			"     fourth).",
			"   second();"),
		[]want{prop(18, 2, 7, 13), prop(25, 3, 6, 12), prop(6, 4, 4, 10)},
		lines(
			"outer.first(inner.first.",
			"                  second.third.",
			"                         fourth).",
			"      second();"),
	},
	{
		"outer dangling dot after nested chain uses actual columns",
		lines(
			"outer.first(inner.first.",
			"      second.third().",
			"     fourth).second.",
			"     third();"),
		[]want{prop(18, 2, 7, 13), prop(25, 3, 6, 12), prop(13, 4, 6, 11)},
		lines(
			"outer.first(inner.first.",
			"                  second.third().",
			"                         fourth).second.",
			"             third();"),
	},
	{
		"outer dangling dot after aligned nested chain",
		lines(
			"outer.first(inner.first.",
			"                  second.third().",
			"                         fourth).second.",
			"             third();"),
		[]want{prop(33, 4, 14, 19)},
		lines(
			"outer.first(inner.first.",
			"                  second.third().",
			"                         fourth).second.",
			"                                 third();"),
	},
	{
		"blank lines are transparent",
		lines("root.first", "", ".second.third", "", "    .fourth = null;"),
		[]want{dot(4, 3, 1), dot(11, 5, 5)},
		lines("root.first", "", "    .second.third", "", "           .fourth = null;"),
	},
	{
		"comment before inline dot",
		lines("root.first", "/* comment */.second", ".third = null;"),
		[]want{dot(13, 3, 1)},
		lines("root.first", "/* comment */.second", "             .third = null;"),
	},
	{
		"comment before dangling dot join",
		lines("root.first", "/* comment */.second.", "third = null;"),
		[]want{prop(14, 3, 1, 6)},
		lines("root.first", "/* comment */.second.", "              third = null;"),
	},
	{
		"comment inside base line",
		lines("root/* comment */.first", ".second = null;"),
		[]want{dot(17, 2, 1)},
		lines("root/* comment */.first", "                 .second = null;"),
	},
	{
		"repeated calls",
		lines("root.first()()", ".second", "                     .third = null;"),
		[]want{dot(4, 2, 1), dot(4, 3, 22)},
		lines("root.first()()", "    .second", "    .third = null;"),
	},
}

func TestInvalid(t *testing.T) {
	for _, tt := range invalidCases {
		t.Run(tt.name, func(t *testing.T) {
			res := check(t, tt.code, DefaultOptions())

			wantRendered := make([]string, 0, len(tt.errors))
			for _, w := range tt.errors {
				wantRendered = append(wantRendered, w.String())
			}
			got := res.rendered()
			if strings.Join(got, "\n") != strings.Join(wantRendered, "\n") {
				t.Fatalf("diagnostics mismatch:\nwant:\n%s\n\ngot:\n%s",
					strings.Join(wantRendered, "\n"), strings.Join(got, "\n"))
			}

			for _, d := range res.diags {
				if d.Severity != diag.SevWarning {
					t.Errorf("severity = %s, want warning", d.Severity)
				}
				if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
					t.Fatalf("expected exactly one single-edit fix, got %+v", d.Fixes)
				}
				if strings.Trim(d.Fixes[0].Edits[0].NewText, " ") != "" {
					t.Errorf("fix replacement is not whitespace: %q", d.Fixes[0].Edits[0].NewText)
				}
			}

			if out := res.fixed(t); out != tt.output {
				t.Fatalf("fix output mismatch:\nwant:\n%s\n\ngot:\n%s", tt.output, out)
			}
		})
	}
}

// Fixing converges: repeated passes end with no diagnostics and only blanks change.
func TestFixConverges(t *testing.T) {
	for _, tt := range invalidCases {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.code
			for pass := 0; ; pass++ {
				if pass == 10 {
					t.Fatalf("no fixpoint after 10 passes, last source:\n%s", src)
				}
				res := check(t, src, DefaultOptions())
				if len(res.diags) == 0 {
					break
				}
				src = res.fixed(t)
			}
			if squeeze(src) != squeeze(tt.code) {
				t.Fatalf("fixes changed more than whitespace:\n%s", src)
			}
			if strings.Count(src, "\n") != strings.Count(tt.code, "\n") {
				t.Fatal("fixes changed the line count")
			}
		})
	}
}

func squeeze(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}

func TestBracketIndentOption(t *testing.T) {
	opts := DefaultOptions()
	opts.BracketIndent = 2
	res := check(t, lines("root[", "        'first'", "    ] = null;"), opts)
	got := res.rendered()
	if len(got) != 1 || got[0] != prop(6, 2, 9, 16).String() {
		t.Fatalf("unexpected diagnostics: %v", got)
	}
}

func TestIndentUnitOption(t *testing.T) {
	opts := DefaultOptions()
	opts.IndentUnit = 2
	res := check(t, lines("root", "    .first", "    .second;"), opts)
	got := res.rendered()
	want := []string{dot(2, 2, 5).String(), dot(2, 3, 5).String()}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected diagnostics:\n%s", strings.Join(got, "\n"))
	}
}

func TestSeverityOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Severity = diag.SevError
	res := check(t, lines("root", ".first;"), opts)
	if len(res.diags) != 1 || res.diags[0].Severity != diag.SevError {
		t.Fatalf("expected one error, got %+v", res.diags)
	}
	if res.diags[0].Code != diag.AlignDotColumn {
		t.Fatalf("code = %s", res.diags[0].Code.ID())
	}
}

func TestTabsAreReplaced(t *testing.T) {
	res := check(t, lines("root", "\t.first;"), DefaultOptions())
	if len(res.diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(res.diags))
	}
	if out := res.fixed(t); out != lines("root", "    .first;") {
		t.Fatalf("unexpected fix output %q", out)
	}
}

// Columns count UTF-16 code units, so characters outside ASCII before an
// anchor do not push it to the right.
func TestNonASCIIColumns(t *testing.T) {
	for _, src := range []string{
		lines("ü.first.second", "       .third = null;"),
		lines("ü.", "  first = null;"),
		lines("'😀'.a.b", "      .c;"),
	} {
		if res := check(t, src, DefaultOptions()); len(res.diags) != 0 {
			t.Fatalf("expected %q to be aligned, got %v", src, res.rendered())
		}
	}

	res := check(t, lines("'😀'.a.b", "     .c;"), DefaultOptions())
	got := res.rendered()
	if len(got) != 1 || got[0] != dot(6, 2, 6).String() {
		t.Fatalf("unexpected diagnostics: %v", got)
	}
	if out := res.fixed(t); out != lines("'😀'.a.b", "      .c;") {
		t.Fatalf("unexpected fix output %q", out)
	}
}

func TestUnmodeledChainsAreSilent(t *testing.T) {
	for _, src := range []string{
		lines("root?.first", "  .second;"),
		lines("root.first`tpl`", "  .second;"),
	} {
		if res := check(t, src, DefaultOptions()); len(res.diags) != 0 {
			t.Fatalf("expected silence for %q, got %v", src, res.rendered())
		}
	}
}

func TestNestedChainInsideUnmodeledChainIsChecked(t *testing.T) {
	res := check(t, lines("root?.first(inner.a", "  .b);"), DefaultOptions())
	got := res.rendered()
	if len(got) != 1 || got[0] != dot(17, 2, 3).String() {
		t.Fatalf("unexpected diagnostics: %v", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options rejected: %v", err)
	}
	for _, opts := range []Options{
		{IndentUnit: 0, BracketIndent: 4},
		{IndentUnit: 4, BracketIndent: -1},
	} {
		if err := opts.Validate(); err == nil {
			t.Fatalf("expected error for %+v", opts)
		}
	}
}
