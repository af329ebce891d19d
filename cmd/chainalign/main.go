package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chainalign/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "chainalign",
	Short: "Check and fix the alignment of multi-line member access chains",
	Long: `chainalign checks that the dots, brackets and properties of member access
chains split over several lines line up with each other, and rewrites the
leading whitespace of misaligned lines.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = all)")
	rootCmd.PersistentFlags().String("config", "", "path to "+configFileHint+" (default: discovered from the target upwards)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().Int("indent-unit", 0, "override [align].indent_unit")
	rootCmd.PersistentFlags().Int("bracket-property-indent", 0, "override [align].bracket_property_indent")
	rootCmd.PersistentFlags().String("severity", "", "override [align].severity (info|warning|error)")
}

// main executes the root command with a context cancelled on SIGINT/SIGTERM.
// Any error exits with status 1; violations are already reported by then.
func main() {
	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if profErr := profiling.Stop(); profErr != nil {
		fmt.Fprintln(os.Stderr, "chainalign: profile:", profErr)
	}
	if err != nil {
		if !errors.Is(err, errViolations) {
			fmt.Fprintln(os.Stderr, "chainalign:", err)
		}
		os.Exit(1)
	}
}
