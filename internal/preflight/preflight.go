package preflight

import (
	"context"
	"strings"

	"movconv/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Input directory", cfg.Paths.InputDir, AccessRead),
		CheckOutputDirectory("Output directory", cfg.Paths.OutputDir),
	}

	if strings.TrimSpace(cfg.Logging.Dir) != "" {
		results = append(results, CheckOutputDirectory("Log directory", cfg.Logging.Dir))
	}

	results = append(results, CheckEncoder(ctx, cfg.FFmpegBinary(), cfg.Paths.LocalBinDir))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
