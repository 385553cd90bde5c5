package aesthetics

import (
	"context"
	"os"
	"path/filepath"

	"log/slog"

	"wallpipe/internal/config"
	"wallpipe/internal/fileutil"
	"wallpipe/internal/imaging"
	"wallpipe/internal/logging"
	"wallpipe/internal/services"
	"wallpipe/internal/services/scorer"
)

// Decision records how the filter treated one image.
type Decision struct {
	File      string
	BlockedBy string
	Score     float64
	Scored    bool
	Kept      bool
}

// Result summarizes one filter run.
type Result struct {
	Decisions []Decision
	Scanned   int
	Kept      int
	Blocked   int
	Skipped   int
	Cleared   int
	DryRun    bool
}

// Filter manages the scoring workflow.
type Filter struct {
	cfg      *config.Config
	logger   *slog.Logger
	scorer   scorer.Service
	progress func(done, total int)
}

// Option configures the filter.
type Option func(*Filter)

// WithProgress registers a callback invoked after each evaluated image.
func WithProgress(fn func(done, total int)) Option {
	return func(f *Filter) {
		f.progress = fn
	}
}

// New constructs the filter handler using the configured scorer sidecar.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Filter {
	client, err := scorer.New(cfg.Filter.ScorerURL, cfg.Filter.RequestTimeout)
	if err != nil {
		logger.Warn("scorer client unavailable", logging.Error(err))
		return NewWithScorer(cfg, logger, nil, opts...)
	}
	return NewWithScorer(cfg, logger, client, opts...)
}

// NewWithScorer allows injecting the scoring service (used in tests).
func NewWithScorer(cfg *config.Config, logger *slog.Logger, svc scorer.Service, opts ...Option) *Filter {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "filter"))
	}
	filter := &Filter{cfg: cfg, logger: stageLogger, scorer: svc}
	for _, opt := range opts {
		opt(filter)
	}
	return filter
}

// Run evaluates every curated image and copies the keepers into the
// filtered directory. With dryRun set the decisions are computed and
// reported but nothing on disk changes.
func (f *Filter) Run(ctx context.Context, dryRun bool) (*Result, error) {
	logger := logging.WithContext(ctx, f.logger)

	if f.scorer == nil {
		return nil, services.Wrap(
			services.ErrConfiguration,
			"filter",
			"scorer client",
			"scorer sidecar unavailable; check filter.scorer_url",
			nil,
		)
	}

	sourceDir := f.cfg.Paths.CuratedDir
	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return nil, services.Wrap(
			services.ErrNotFound,
			"filter",
			"read curated dir",
			"curated directory missing; run curate before filter",
			err,
		)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "filter", "read curated dir", "", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !imaging.IsImagePath(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(sourceDir, entry.Name()))
	}

	destDir := f.cfg.Paths.FilteredDir
	result := &Result{Scanned: len(files), DryRun: dryRun}
	if !dryRun {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "filter", "create filtered dir", "", err)
		}
		if f.cfg.Filter.ClearDest {
			cleared, err := fileutil.ClearFiles(destDir)
			if err != nil {
				return nil, services.Wrap(services.ErrConfiguration, "filter", "clear filtered dir", "", err)
			}
			result.Cleared = cleared
			logger.Info("cleared filtered directory", logging.Int("removed", cleared))
		}
	}

	buckets := BucketsFromConfig(f.cfg)
	logger.Info("starting filter",
		logging.Int("images", len(files)),
		logging.Int("buckets", len(buckets)),
		logging.Float64("min_score", f.cfg.Filter.MinScore),
		logging.Bool("dry_run", dryRun))

	for done, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, services.Wrap(services.ErrTimeout, "filter", "evaluate images", "filter interrupted", err)
		}

		decision := f.evaluate(ctx, logger, path, buckets)
		result.Decisions = append(result.Decisions, decision)
		switch {
		case decision.BlockedBy != "":
			result.Blocked++
		case !decision.Scored:
			result.Skipped++
		case decision.Kept:
			result.Kept++
			if !dryRun {
				dest := filepath.Join(destDir, filepath.Base(path))
				if err := fileutil.CopyFileVerified(path, dest); err != nil {
					logger.Warn("copy to filtered failed",
						logging.String("file", path),
						logging.Error(err))
				}
			}
		}

		if f.progress != nil {
			f.progress(done+1, len(files))
		}
	}

	logger.Info("filter complete",
		logging.Int("kept", result.Kept),
		logging.Int("blocked", result.Blocked),
		logging.Int("skipped", result.Skipped))
	return result, nil
}

// evaluate runs one image through the keyword buckets and, when none
// block, the aesthetic scorer. A failed bucket check counts as not
// blocked; a failed score skips the image.
func (f *Filter) evaluate(ctx context.Context, logger *slog.Logger, path string, buckets []Bucket) Decision {
	decision := Decision{File: path}

	for _, bucket := range buckets {
		probability, err := f.scorer.MatchProbability(ctx, path, bucket.Prompts())
		if err != nil {
			logger.Warn("keyword check failed",
				logging.String("file", path),
				logging.String("bucket", bucket.Name),
				logging.Error(err))
			continue
		}
		if probability >= bucket.Threshold {
			logger.Info("blocked image",
				logging.String("file", filepath.Base(path)),
				logging.String("bucket", bucket.Name),
				logging.Float64("probability", probability))
			decision.BlockedBy = bucket.Name
			return decision
		}
	}

	score, err := f.scorer.Score(ctx, path)
	if err != nil {
		logger.Warn("scoring failed", logging.String("file", path), logging.Error(err))
		return decision
	}
	decision.Score = score
	decision.Scored = true
	if score >= f.cfg.Filter.MinScore {
		decision.Kept = true
		logger.Debug("keeping image",
			logging.String("file", filepath.Base(path)),
			logging.Float64("score", score))
	} else {
		logger.Debug("score below cutoff",
			logging.String("file", filepath.Base(path)),
			logging.Float64("score", score))
	}
	return decision
}
