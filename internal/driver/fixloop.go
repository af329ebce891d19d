package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"chainalign/internal/diag"
	"chainalign/internal/fix"
	"chainalign/internal/source"
)

// DefaultMaxPasses bounds the fix loop. One pass can move a line that a later
// expectation depends on, so fixes are re-derived from fresh diagnostics
// until nothing applies.
const DefaultMaxPasses = 10

// FixOptions configures the fix loop.
type FixOptions struct {
	DryRun    bool
	MaxPasses int
}

// FixFileResult reports what the fix loop did to one file. Before and After
// are normalized contents (LF line endings, no BOM).
type FixFileResult struct {
	Path    string
	Before  []byte
	After   []byte
	Passes  int
	Applied int
	Skipped []fix.SkippedFix
	// Remaining holds the diagnostics of the final content; with a file that
	// reached MaxPasses it may still contain fixable entries.
	Remaining *diag.Bag
	FileSet   *source.FileSet
	Err       error
}

// Changed reports whether the loop modified the content.
func (r *FixFileResult) Changed() bool {
	return !bytes.Equal(r.Before, r.After)
}

// FixFile fixes one file until no fix applies or MaxPasses is reached, then
// writes the result back unless DryRun is set.
func (a *Analyzer) FixFile(ctx context.Context, path string, opts FixOptions) (*FixFileResult, error) {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("fix: %w", err)
	}
	file := fs.Get(id)
	res := &FixFileResult{Path: path, Before: file.Content, FileSet: fs}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		checked := a.CheckFile(file, 0)
		res.Remaining = checked.Bag
		if res.Passes == maxPasses {
			a.log.Warn("fix pass limit reached", slog.String("path", path), slog.Int("passes", res.Passes))
			break
		}
		applied, err := fix.Apply(fs, checked.Bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("fix %s: %w", path, err)
		}
		res.Passes++
		res.Applied += len(applied.Applied)
		res.Skipped = applied.Skipped
		for _, change := range applied.FileChanges {
			if change.File == file.ID {
				id = fs.Add(file.Path, change.After, file.Flags)
			}
		}
		file = fs.Get(id)
	}
	res.After = file.Content

	if !opts.DryRun && res.Changed() {
		if err := writeFile(path, source.Denormalize(res.After, file.Flags)); err != nil {
			return res, err
		}
	}
	a.log.Debug("fixed file",
		slog.String("path", path),
		slog.Int("passes", res.Passes),
		slog.Int("applied", res.Applied),
		slog.Int("remaining", res.Remaining.Len()))
	return res, nil
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FixTree runs FixFile over every selected file under root in parallel.
// Per-file failures are recorded in FixFileResult.Err; the returned error is
// reserved for listing failures and cancellation.
func (a *Analyzer) FixTree(ctx context.Context, root string, opts FixOptions) ([]*FixFileResult, error) {
	m, err := a.opts.matcher()
	if err != nil {
		return nil, err
	}
	files, err := ListFiles(root, m)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	results := make([]*FixFileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers(len(files)))
	for i, path := range files {
		g.Go(func() error {
			res, err := a.FixFile(gctx, path, opts)
			if err != nil && gctx.Err() != nil {
				return err
			}
			if res == nil {
				res = &FixFileResult{Path: path}
			}
			res.Err = err
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
