package preflight

import (
	"context"

	"wallpipe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config. Directory
// checks assume EnsureDirectories already ran; the scorer check is skipped
// when no URL is configured since only the filter stage needs the sidecar.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Download root", cfg.Paths.DownloadRoot),
		CheckDirectoryAccess("Curated directory", cfg.Paths.CuratedDir),
		CheckDirectoryAccess("Filtered directory", cfg.Paths.FilteredDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	if cfg.Filter.ScorerURL != "" {
		results = append(results, CheckScorer(ctx, cfg.Filter.ScorerURL))
	}

	return results
}
