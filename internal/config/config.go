// Package config loads .chainalign.toml project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"chainalign/internal/align"
	"chainalign/internal/diag"
)

// FileName is the project configuration file looked up from the target upwards.
const FileName = ".chainalign.toml"

// ErrInvalidOption marks configuration values that fail validation.
var ErrInvalidOption = errors.New("invalid option")

// DefaultInclude selects JavaScript sources.
var DefaultInclude = []string{"**/*.js", "**/*.mjs", "**/*.cjs", "**/*.jsx"}

// DefaultExclude skips vendored dependencies.
var DefaultExclude = []string{"**/node_modules/**"}

// Config is the decoded configuration. Path and Root are empty when no file
// was found and defaults are in use.
type Config struct {
	Path string `toml:"-"`
	Root string `toml:"-"`

	Align AlignSection `toml:"align"`
	Files FilesSection `toml:"files"`
}

type AlignSection struct {
	IndentUnit            int    `toml:"indent_unit"`
	BracketPropertyIndent int    `toml:"bracket_property_indent"`
	Severity              string `toml:"severity"`
}

type FilesSection struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Align: AlignSection{
			IndentUnit:            align.DefaultIndentUnit,
			BracketPropertyIndent: align.DefaultBracketIndent,
			Severity:              "warning",
		},
		Files: FilesSection{
			Include: append([]string(nil), DefaultInclude...),
			Exclude: append([]string(nil), DefaultExclude...),
		},
	}
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidOption, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("files", "include") {
		cfg.Files.Include = append([]string(nil), DefaultInclude...)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest configuration above startDir, or the defaults.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks option ranges, severity names and glob syntax.
func (c *Config) Validate() error {
	if _, err := c.AlignOptions(); err != nil {
		return err
	}
	if _, err := c.Matcher(); err != nil {
		return err
	}
	return nil
}

// AlignOptions converts the [align] section.
func (c *Config) AlignOptions() (align.Options, error) {
	sev, err := diag.ParseSeverity(c.Align.Severity)
	if err != nil {
		return align.Options{}, fmt.Errorf("%w: [align].severity: %w", ErrInvalidOption, err)
	}
	opts := align.Options{
		IndentUnit:    c.Align.IndentUnit,
		BracketIndent: c.Align.BracketPropertyIndent,
		Severity:      sev,
	}
	if err := opts.Validate(); err != nil {
		return align.Options{}, fmt.Errorf("%w: [align]: %w", ErrInvalidOption, err)
	}
	return opts, nil
}
