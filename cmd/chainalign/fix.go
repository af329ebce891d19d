package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chainalign/internal/diag"
	"chainalign/internal/diagfmt"
	"chainalign/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Realign member access chains in place",
	Long:  "Check the target, apply the whitespace fixes and repeat until nothing changes; --dry-run prints the resulting diff instead of writing files.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "print a unified preview instead of writing files")
	fixCmd.Flags().Int("max-passes", driver.DefaultMaxPasses, "maximum check/apply passes per file")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	maxPasses, err := cmd.Flags().GetInt("max-passes")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	global, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	opts, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	opts.Jobs = jobs
	analyzer, err := driver.NewAnalyzer(opts)
	if err != nil {
		return err
	}

	results, err := analyzer.FixTree(cmd.Context(), target, driver.FixOptions{DryRun: dryRun, MaxPasses: maxPasses})
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	return reportFixes(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, dryRun, global)
}

// reportFixes prints previews or a per-file summary, then whatever could not
// be fixed. Unfixed warnings or errors turn into errViolations.
func reportFixes(out, errOut io.Writer, results []*driver.FixFileResult, dryRun bool, global globalFlags) error {
	var failed, changed, applied int
	remaining := diag.NewBag(0)
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(errOut, "%s: %v\n", displayPath(res.Path), res.Err)
			continue
		}
		if res.Changed() {
			changed++
			applied += res.Applied
			if dryRun {
				if err := diagfmt.FilePreview(out, displayPath(res.Path), res.Before, res.After); err != nil {
					return err
				}
			} else if !global.quiet {
				fmt.Fprintf(out, "fixed %s (%d edit(s), %d pass(es))\n", displayPath(res.Path), res.Applied, res.Passes)
			}
		}
		if res.Remaining == nil || res.Remaining.Len() == 0 {
			continue
		}
		// Remaining diagnostics refer to the FileSet of their own file.
		if err := diagfmt.Short(errOut, truncate(res.Remaining, global.maxDiagnostics), res.FileSet, false); err != nil {
			return err
		}
		remaining.Merge(res.Remaining)
	}

	if !global.quiet {
		verb := "fixed"
		if dryRun {
			verb = "would fix"
		}
		fmt.Fprintf(errOut, "%s %d edit(s) in %d of %d file(s)\n", verb, applied, changed, len(results))
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be fixed", failed)
	}
	if remaining.HasAtLeast(diag.SevWarning) {
		return errViolations
	}
	return nil
}
