package driver

import (
	"log/slog"

	"chainalign/internal/align"
	"chainalign/internal/config"
)

// Options configures a driver run.
type Options struct {
	Align align.Options
	// MaxDiagnostics caps each per-file bag (0 = unlimited). The fix loop
	// ignores it so that every fix is seen.
	MaxDiagnostics int
	// Jobs bounds parallel workers for directories (0 = GOMAXPROCS).
	Jobs int
	// Matcher selects files when walking directories; nil uses the defaults.
	Matcher *config.Matcher
	// Cache stores per-file results keyed by content and options; may be nil.
	Cache         *DiskCache
	EnableTimings bool
	Logger        *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o *Options) matcher() (*config.Matcher, error) {
	if o.Matcher != nil {
		return o.Matcher, nil
	}
	return config.Default().Matcher()
}
