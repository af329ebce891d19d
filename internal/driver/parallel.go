package driver

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"chainalign/internal/source"
)

// Check runs the pipeline over root, a file or a directory.
func Check(ctx context.Context, root string, opts Options) (*source.FileSet, []DiagnoseResult, error) {
	a, err := NewAnalyzer(opts)
	if err != nil {
		return nil, nil, err
	}
	return a.CheckTree(ctx, root)
}

func (a *Analyzer) workers(n int) int {
	jobs := a.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// CheckTree checks every selected file under root in parallel. Results are
// in path order; paths in the returned FileSet are relative to the working
// directory.
func (a *Analyzer) CheckTree(ctx context.Context, root string) (*source.FileSet, []DiagnoseResult, error) {
	m, err := a.opts.matcher()
	if err != nil {
		return nil, nil, err
	}
	files, err := ListFiles(root, m)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		a.log.Warn("no files selected", slog.String("root", root))
		return fileSet, nil, nil
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]DiagnoseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers(len(files)))
	for i, path := range files {
		g.Go(func() error {
			res, err := a.CheckPath(gctx, fileSet, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
