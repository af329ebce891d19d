package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chainalign/internal/diag"
	"chainalign/internal/diagfmt"
	"chainalign/internal/driver"
	"chainalign/internal/observ"
	"chainalign/internal/source"
	"chainalign/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Report misaligned member access chains",
	Long:  `Check a JavaScript file, or every selected file under a directory, and report chain alignment violations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// init registers output, concurrency, cache and failure threshold flags.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("fail-on", "warning", "exit with status 1 on diagnostics at or above this severity (info|warning|error|none)")
	checkCmd.Flags().Bool("cache", false, "cache per-file results on disk")
	checkCmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

type checkFlags struct {
	format     string
	jobs       int
	failOn     string
	cache      bool
	clearCache bool
	withNotes  bool
	suggest    bool
	fullPath   bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.failOn, err = flags.GetString("fail-on"); err != nil {
		return f, fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	if f.cache, err = flags.GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if f.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = flags.GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	return f, nil
}

// runCheck checks the target, renders diagnostics in the chosen format and
// returns errViolations when any diagnostic reaches --fail-on.
func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	global, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	threshold, failEnabled, err := parseFailOn(flags.failOn)
	if err != nil {
		return err
	}
	switch flags.format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", flags.format)
	}

	var timer *observ.Timer
	if global.timings {
		timer = observ.NewTimer()
	}

	setup := timer.Track("setup")
	opts, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	opts.Jobs = flags.jobs
	if flags.cache || flags.clearCache {
		cache, err := driver.OpenDiskCache("chainalign")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		if flags.clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
		}
		if flags.cache {
			opts.Cache = cache
		}
	}
	analyzer, err := driver.NewAnalyzer(opts)
	if err != nil {
		return err
	}
	setup("")

	analyze := timer.Track("check")
	fs, results, err := analyzer.CheckTree(cmd.Context(), target)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	analyze(fmt.Sprintf("%d files", len(results)))

	all := collect(results)
	render := timer.Track("render")
	if err := renderDiagnostics(cmd.OutOrStdout(), flags, global, truncate(all, global.maxDiagnostics), fs, args); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	render(flags.format)

	if !global.quiet && flags.format == "pretty" {
		fmt.Fprintln(cmd.ErrOrStderr(), summarize(results))
	}
	if global.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if failEnabled && all.HasAtLeast(threshold) {
		return errViolations
	}
	return nil
}

func renderDiagnostics(w io.Writer, flags checkFlags, global globalFlags, bag *diag.Bag, fs *source.FileSet, args []string) error {
	pathMode := diagfmt.PathModeRelative
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch flags.format {
	case "pretty":
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     global.color,
			PathMode:  pathMode,
			ShowNotes: flags.withNotes,
			ShowFixes: flags.suggest,
		})
	case "short":
		return diagfmt.Short(w, bag, fs, flags.withNotes)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     flags.suggest,
			IncludePreviews:  flags.suggest,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "chainalign",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{"check"}, args...),
			PathMode:       pathMode,
		})
	}
	return fmt.Errorf("unknown format: %s", flags.format)
}
