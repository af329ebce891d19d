package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chainalign/internal/align"
	"chainalign/internal/diag"
	"chainalign/internal/observ"
	"chainalign/internal/parser"
	"chainalign/internal/source"
)

// DiagnoseResult is the outcome of checking one file.
type DiagnoseResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Cached bool
	Timing *observ.Report
}

// Analyzer runs the per-file pipeline. It is safe for concurrent use.
type Analyzer struct {
	parser *parser.Parser
	opts   Options
	log    *slog.Logger
}

// NewAnalyzer validates the alignment options and returns an Analyzer.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if err := opts.Align.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		parser: parser.New(),
		opts:   opts,
		log:    opts.logger(),
	}, nil
}

// CheckPath loads path into fs and checks it. Load failures become an
// IO4001 diagnostic rather than an error.
func (a *Analyzer) CheckPath(ctx context.Context, fs *source.FileSet, path string) (DiagnoseResult, error) {
	if err := ctx.Err(); err != nil {
		return DiagnoseResult{Path: path}, err
	}
	id, err := fs.Load(path)
	if err != nil {
		bag := diag.NewBag(a.opts.MaxDiagnostics)
		id = fs.AddVirtual(path, nil)
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: id},
			"failed to load file: "+err.Error()).Emit()
		a.log.Warn("skipping unreadable file", slog.String("path", path), slog.Any("error", err))
		return DiagnoseResult{Path: path, FileID: id, Bag: bag}, nil
	}
	return a.CheckFile(fs.Get(id), a.opts.MaxDiagnostics), nil
}

// CheckFile checks a file that is already part of a FileSet. maxDiagnostics
// caps the returned bag (0 = unlimited).
func (a *Analyzer) CheckFile(file *source.File, maxDiagnostics int) DiagnoseResult {
	var timer *observ.Timer
	if a.opts.EnableTimings {
		timer = observ.NewTimer()
	}
	res := DiagnoseResult{Path: file.Path, FileID: file.ID}

	var key CacheKey
	if a.opts.Cache != nil {
		key = a.opts.Cache.Key(file.Path, file.Content, a.opts.Align)
		lookup := timer.Track("cache")
		payload, ok, err := a.opts.Cache.Get(key)
		switch {
		case err != nil:
			lookup("error")
			a.log.Warn("cache read failed", slog.String("path", file.Path), slog.Any("error", err))
		case ok:
			lookup("hit")
			res.Bag = payload.Restore(file.ID, maxDiagnostics)
			res.Cached = true
			a.finish(&res, timer)
			return res
		default:
			lookup("miss")
		}
	}

	full := diag.NewBag(0)
	dedup := diag.NewDedupReporter(diag.BagReporter{Bag: full})
	a.analyze(file, dedup, timer)
	if n := dedup.Suppressed(); n > 0 {
		a.log.Debug("dropped duplicate diagnostics", slog.String("path", file.Path), slog.Int("count", n))
	}
	full.Sort()
	res.Bag = capBag(full, maxDiagnostics)

	if a.opts.Cache != nil {
		if err := a.opts.Cache.Put(key, NewPayload(full)); err != nil {
			a.log.Warn("cache write failed", slog.String("path", file.Path), slog.Any("error", err))
		}
	}
	a.finish(&res, timer)
	return res
}

func (a *Analyzer) analyze(file *source.File, rep diag.Reporter, timer *observ.Timer) {
	fileSpan := source.Span{File: file.ID}

	lang, ok := parser.DetectLanguage(file.Path)
	if !ok {
		diag.ReportError(rep, diag.ParseUnsupportedLanguage, fileSpan,
			fmt.Sprintf("no grammar for %q; supported extensions: %v", file.Path, parser.SupportedExtensions())).Emit()
		return
	}

	parsed := timer.Track("parse")
	tree, err := a.parser.ParseAs(lang, file)
	if err != nil {
		parsed("failed")
		code := diag.ParseSyntaxErrors
		if errors.Is(err, parser.ErrUnsupportedLanguage) {
			code = diag.ParseUnsupportedLanguage
		}
		diag.ReportError(rep, code, fileSpan, "analysis failed: "+err.Error()).Emit()
		return
	}
	parsed(string(lang))
	if tree.HasErrors {
		diag.NewReportBuilder(rep, diag.SevInfo, diag.ParseSyntaxErrors, fileSpan,
			"file contains syntax errors; chains overlapping them were not checked").Emit()
	}

	checked := timer.Track("align")
	align.Check(file, tree, a.opts.Align, rep)
	checked("")
}

func (a *Analyzer) finish(res *DiagnoseResult, timer *observ.Timer) {
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
	a.log.Debug("checked file",
		slog.String("path", res.Path),
		slog.Int("diagnostics", res.Bag.Len()),
		slog.Bool("cached", res.Cached))
}

// capBag copies the first max items of a sorted bag.
func capBag(full *diag.Bag, maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 || full.Len() <= maxDiagnostics {
		return full
	}
	out := diag.NewBag(maxDiagnostics)
	for _, d := range full.Items() {
		if !out.Add(d) {
			break
		}
	}
	return out
}
