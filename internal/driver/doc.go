// Package driver orchestrates the per-file pipeline: load, analyze, check
// chain alignment and collect diagnostics into a diag.Bag. Directories are
// processed in parallel, one file per worker, with optional on-disk caching
// of the results. The fix loop re-checks and re-applies whitespace fixes
// until a file stops changing.
package driver
