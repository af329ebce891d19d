package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chainalign/internal/config"
	"chainalign/internal/diag"
	"chainalign/internal/driver"
	"chainalign/internal/prof"
	"chainalign/internal/source"
)

const configFileHint = config.FileName

// errViolations makes the process exit with status 1 after diagnostics at or
// above the failure threshold were printed.
var errViolations = errors.New("alignment violations found")

var logger = slog.New(slog.DiscardHandler)

var profiling *prof.Session

// prepare installs the stderr text logger at --log-level and starts the
// profiles requested on the command line.
func prepare(cmd *cobra.Command, _ []string) error {
	levelFlag, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelFlag)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", levelFlag, err)
	}
	logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)

	var paths prof.Paths
	if paths.CPU, err = cmd.Flags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if paths.Mem, err = cmd.Flags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if profiling, err = prof.Start(paths); err != nil {
		return err
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorMode resolves --color against the stream output goes to.
func colorMode(flag string, out io.Writer) (bool, error) {
	switch strings.ToLower(flag) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		f, ok := out.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, fmt.Errorf("unknown --color value %q (auto|on|off)", flag)
	}
}

// parseFailOn maps --fail-on to a severity threshold; ok is false for "none".
func parseFailOn(s string) (sev diag.Severity, ok bool, err error) {
	if strings.EqualFold(s, "none") {
		return 0, false, nil
	}
	sev, err = diag.ParseSeverity(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid --fail-on: %w", err)
	}
	return sev, true, nil
}

type globalFlags struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	var g globalFlags
	flags := cmd.Flags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	if g.color, err = colorMode(colorFlag, cmd.OutOrStdout()); err != nil {
		return g, err
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

// loadConfig reads --config, or discovers the file from target upwards, and
// applies the alignment overrides given on the command line.
func loadConfig(cmd *cobra.Command, target string) (*config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(target)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		logger.Debug("using configuration", slog.String("path", cfg.Path))
	}

	if flags.Changed("indent-unit") {
		if cfg.Align.IndentUnit, err = flags.GetInt("indent-unit"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("bracket-property-indent") {
		if cfg.Align.BracketPropertyIndent, err = flags.GetInt("bracket-property-indent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("severity") {
		if cfg.Align.Severity, err = flags.GetString("severity"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// driverOptions builds the driver configuration shared by every command.
func driverOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return driver.Options{}, err
	}
	alignOpts, err := cfg.AlignOptions()
	if err != nil {
		return driver.Options{}, err
	}
	matcher, err := cfg.Matcher()
	if err != nil {
		return driver.Options{}, err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return driver.Options{
		Align:         alignOpts,
		Matcher:       matcher,
		EnableTimings: timings,
		Logger:        logger,
	}, nil
}

// collect merges per-file bags in path order.
func collect(results []driver.DiagnoseResult) *diag.Bag {
	all := diag.NewBag(0)
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		all.Merge(r.Bag)
	}
	return all
}

// truncate keeps the first max diagnostics (0 = all).
func truncate(bag *diag.Bag, maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 || bag.Len() <= maxDiagnostics {
		return bag
	}
	out := diag.NewBag(maxDiagnostics)
	for _, d := range bag.Items() {
		out.Add(d)
	}
	return out
}

func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := source.RelativePath(path, wd); err == nil {
		return rel
	}
	return path
}

type summary struct {
	files, errors, warnings, infos int
}

func summarize(results []driver.DiagnoseResult) summary {
	s := summary{files: len(results)}
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				s.errors++
			case diag.SevWarning:
				s.warnings++
			default:
				s.infos++
			}
		}
	}
	return s
}

func (s summary) String() string {
	problems := s.errors + s.warnings
	return fmt.Sprintf("%d problem(s) (%d error(s), %d warning(s)) in %d file(s)", problems, s.errors, s.warnings, s.files)
}
