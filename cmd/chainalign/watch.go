package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"chainalign/internal/diag"
	"chainalign/internal/diagfmt"
	"chainalign/internal/driver"
	"chainalign/internal/source"
	"chainalign/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <directory>",
	Short: "Re-check files whenever they change",
	Long:  `Check the directory once, then re-check every selected file that is written, created or renamed until interrupted`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("format", "pretty", "output format (pretty|short)")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before re-checking a burst of changes")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "short" {
		return fmt.Errorf("unknown format: %s", format)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	global, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	if info, err := os.Stat(root); err != nil {
		return err
	} else if !info.IsDir() {
		return fmt.Errorf("watch: %s is not a directory", root)
	}

	opts, err := driverOptions(cmd, root)
	if err != nil {
		return err
	}
	analyzer, err := driver.NewAnalyzer(opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	render := func(bag *diag.Bag, fs *source.FileSet) error {
		bag = truncate(bag, global.maxDiagnostics)
		if format == "short" {
			return diagfmt.Short(out, bag, fs, false)
		}
		return diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{Color: global.color, PathMode: diagfmt.PathModeRelative})
	}

	fs, results, err := analyzer.CheckTree(ctx, root)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if err := render(collect(results), fs); err != nil {
		return err
	}
	if !global.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s; watching %s\n", summarize(results), root)
	}

	w, err := watch.NewWatcher(debounce, opts.Matcher, logger, func(paths []string) {
		started := time.Now()
		batch := source.NewFileSet()
		rechecked := make([]driver.DiagnoseResult, 0, len(paths))
		for _, path := range paths {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			res, err := analyzer.CheckPath(ctx, batch, path)
			if err != nil {
				logger.Warn("re-check failed", slog.String("path", path), slog.Any("error", err))
				continue
			}
			rechecked = append(rechecked, res)
		}
		if err := render(collect(rechecked), batch); err != nil {
			logger.Error("render failed", slog.Any("error", err))
		}
		if !global.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", time.Now().Format("15:04:05"), summarize(rechecked))
		}
		logger.Debug("re-checked", slog.Int("files", len(rechecked)), slog.Duration("took", time.Since(started)))
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Watch([]string{root}); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	return w.Close()
}
