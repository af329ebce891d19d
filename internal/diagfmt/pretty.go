package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"chainalign/internal/diag"
	"chainalign/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	path, gutter, caret   *color.Color
	fix                   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	var b strings.Builder
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(&b, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", filePath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)
		writeExcerpt(&b, fs, d.Primary, p, tab)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				ns, _ := fs.Resolve(note.Span)
				fmt.Fprintf(&b, "  %s %s:%d:%d: %s\n",
					p.note.Sprint("note:"), filePath(fs, note.Span.File, opts.PathMode), ns.Line, ns.Col, note.Msg)
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				fmt.Fprintf(&b, "  %s %s (%s)\n", p.fix.Sprint("fix:"), f.Title, f.Applicability)
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeExcerpt prints the primary line and a caret run under the span.
func writeExcerpt(b *strings.Builder, fs *source.FileSet, span source.Span, p palette, tab int) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}

	col := min(int(start.Col)-1, len(line))
	if col < 0 {
		col = 0
	}
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	stop = max(stop, col)

	expanded := strings.ReplaceAll(line, "\t", strings.Repeat(" ", tab))
	pad := displayWidth(line[:col], tab)
	width := max(displayWidth(line[col:stop], tab), 1)

	gutter := fmt.Sprintf("%d", start.Line)
	blank := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(b, " %s %s %s\n", p.gutter.Sprint(gutter), p.gutter.Sprint("|"), expanded)
	fmt.Fprintf(b, " %s %s %s%s\n", blank, p.gutter.Sprint("|"), strings.Repeat(" ", pad),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func displayWidth(s string, tab int) int {
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", strings.Repeat(" ", tab)))
}
