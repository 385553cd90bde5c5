package curator

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"

	"log/slog"

	"github.com/corona10/goimagehash"

	"wallpipe/internal/config"
	"wallpipe/internal/fileutil"
	"wallpipe/internal/imaging"
	"wallpipe/internal/logging"
	"wallpipe/internal/services"
	"wallpipe/internal/textutil"
)

// RejectReason classifies why the curator dropped an image.
type RejectReason string

const (
	RejectUndecodable   RejectReason = "undecodable"
	RejectPortrait      RejectReason = "portrait"
	RejectTooSmall      RejectReason = "too_small"
	RejectLowSaturation RejectReason = "low_saturation"
	RejectDuplicate     RejectReason = "duplicate"
	RejectHashFailure   RejectReason = "hash_failure"
)

// ArtistResult records the curation outcome for a single artist.
type ArtistResult struct {
	Artist    string
	SourceDir string
	Scanned   int
	Kept      int
	Overflow  int
	Rejected  map[RejectReason]int
}

// Result summarizes one curation run.
type Result struct {
	Artists []ArtistResult
	Scanned int
	Curated int
	Cleared int
}

// Curator manages the image selection workflow.
type Curator struct {
	cfg      *config.Config
	logger   *slog.Logger
	shuffle  func(n int, swap func(i, j int))
	progress func(done, total int)
}

// Option configures the curator.
type Option func(*Curator)

// WithShuffle overrides the selection shuffle (used in tests for
// deterministic ordering).
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(c *Curator) {
		if fn != nil {
			c.shuffle = fn
		}
	}
}

// WithProgress registers a callback invoked after each scanned image.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Curator) {
		c.progress = fn
	}
}

// New constructs the curation handler.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Curator {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "curator"))
	}
	curator := &Curator{cfg: cfg, logger: stageLogger, shuffle: rand.Shuffle}
	for _, opt := range opts {
		opt(curator)
	}
	return curator
}

// Curate rebuilds the curated directory from the current downloads. The
// destination is cleared first so removed or re-evaluated images do not
// linger from earlier runs.
func (c *Curator) Curate(ctx context.Context) (*Result, error) {
	logger := logging.WithContext(ctx, c.logger)

	var hasher imaging.Hasher
	if c.cfg.Curate.DedupHamming > 0 {
		var err error
		hasher, err = imaging.HasherFor(c.cfg.Curate.HashAlgorithm)
		if err != nil {
			return nil, services.Wrap(
				services.ErrConfiguration,
				"curate",
				"configure hasher",
				"set curate.hash_algorithm to average, difference, or perception",
				err,
			)
		}
	}

	destDir := c.cfg.Paths.CuratedDir
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "curate", "create curated dir", "", err)
	}

	result := &Result{}
	if c.cfg.Curate.ClearDest {
		cleared, err := fileutil.ClearFiles(destDir)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "curate", "clear curated dir", "", err)
		}
		result.Cleared = cleared
		logger.Info("cleared curated directory", logging.Int("removed", cleared))
	}

	batches, total := c.collectBatches(logger)
	logger.Info("starting curation",
		logging.Int("artists", len(batches)),
		logging.Int("images", total))

	done := 0
	for _, batch := range batches {
		artistCtx := services.WithArtist(ctx, batch.artist)
		artistLogger := logging.WithContext(artistCtx, c.logger)

		artistResult := ArtistResult{
			Artist:    batch.artist,
			SourceDir: batch.sourceDir,
			Scanned:   len(batch.files),
			Rejected:  make(map[RejectReason]int),
		}

		var kept []string
		var hashes []*goimagehash.ImageHash
		for _, path := range batch.files {
			if err := ctx.Err(); err != nil {
				return nil, services.Wrap(services.ErrTimeout, "curate", "scan downloads", "curation interrupted", err)
			}

			reason, hash := c.evaluate(artistLogger, path, hasher, hashes)
			done++
			if c.progress != nil {
				c.progress(done, total)
			}
			if reason != "" {
				artistResult.Rejected[reason]++
				continue
			}
			kept = append(kept, path)
			if hash != nil {
				hashes = append(hashes, hash)
			}
		}

		c.shuffle(len(kept), func(i, j int) {
			kept[i], kept[j] = kept[j], kept[i]
		})
		if limit := c.cfg.Curate.MaxPerArtist; len(kept) > limit {
			artistResult.Overflow = len(kept) - limit
			kept = kept[:limit]
		}

		for _, path := range kept {
			destName := batch.artist + "__" + filepath.Base(path)
			if err := fileutil.CopyFile(path, filepath.Join(destDir, destName)); err != nil {
				artistLogger.Warn("copy to curated failed",
					logging.String("file", path),
					logging.Error(err))
				continue
			}
			artistResult.Kept++
		}

		artistLogger.Info("curated artist",
			logging.Int("kept", artistResult.Kept),
			logging.Int("scanned", artistResult.Scanned))

		result.Artists = append(result.Artists, artistResult)
		result.Scanned += artistResult.Scanned
		result.Curated += artistResult.Kept
	}

	logger.Info("curation complete",
		logging.Int("scanned", result.Scanned),
		logging.Int("curated", result.Curated))
	return result, nil
}

type artistBatch struct {
	artist    string
	sourceDir string
	files     []string
}

// collectBatches walks every artist download directory up front so progress
// reporting can work against a known total. Artists without a download
// directory are skipped with a warning.
func (c *Curator) collectBatches(logger *slog.Logger) ([]artistBatch, int) {
	roster := c.cfg.ArtistSources()
	names := make([]string, 0, len(roster))
	for name := range roster {
		names = append(names, name)
	}
	sort.Strings(names)

	var batches []artistBatch
	total := 0
	for _, name := range names {
		slug := textutil.Slugify(name)
		sourceDir := filepath.Join(c.cfg.Paths.DownloadRoot, slug)
		info, err := os.Stat(sourceDir)
		if err != nil || !info.IsDir() {
			logger.Warn("no downloads for artist", logging.String("artist", slug))
			continue
		}

		var files []string
		walkErr := filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("walk error", logging.String("path", path), logging.Error(err))
				return nil
			}
			if entry.IsDir() || !imaging.IsImagePath(path) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if walkErr != nil {
			logger.Warn("walk failed", logging.String("dir", sourceDir), logging.Error(walkErr))
		}

		batches = append(batches, artistBatch{artist: slug, sourceDir: sourceDir, files: files})
		total += len(files)
	}
	return batches, total
}

// evaluate runs one image through the curation gates. It returns the first
// rejection reason hit, or an empty reason plus the image hash when the
// image survives (the hash is nil when dedup is disabled).
func (c *Curator) evaluate(logger *slog.Logger, path string, hasher imaging.Hasher, seen []*goimagehash.ImageHash) (RejectReason, *goimagehash.ImageHash) {
	info, err := imaging.Probe(path)
	if err != nil {
		logger.Debug("rejecting undecodable image", logging.String("file", path), logging.Error(err))
		return RejectUndecodable, nil
	}
	if info.Width < info.Height {
		logger.Debug("rejecting portrait image",
			logging.String("file", path),
			logging.String("size", fmt.Sprintf("%dx%d", info.Width, info.Height)))
		return RejectPortrait, nil
	}
	if info.Width < c.cfg.Curate.MinWidth || info.Height < c.cfg.Curate.MinHeight {
		logger.Debug("rejecting small image",
			logging.String("file", path),
			logging.String("size", fmt.Sprintf("%dx%d", info.Width, info.Height)))
		return RejectTooSmall, nil
	}

	needSaturation := c.cfg.Curate.MinSaturation > 0
	if !needSaturation && hasher == nil {
		return "", nil
	}

	img, err := imaging.Load(path)
	if err != nil {
		logger.Debug("rejecting undecodable image", logging.String("file", path), logging.Error(err))
		return RejectUndecodable, nil
	}

	if needSaturation {
		saturation := imaging.MedianSaturation(img)
		if saturation < c.cfg.Curate.MinSaturation {
			logger.Debug("rejecting low-saturation image",
				logging.String("file", path),
				logging.Float64("saturation", saturation))
			return RejectLowSaturation, nil
		}
	}

	if hasher == nil {
		return "", nil
	}
	hash, err := hasher(img)
	if err != nil {
		logger.Warn("perceptual hash failed", logging.String("file", path), logging.Error(err))
		return RejectHashFailure, nil
	}
	for _, prev := range seen {
		distance, err := hash.Distance(prev)
		if err != nil {
			continue
		}
		if distance <= c.cfg.Curate.DedupHamming {
			logger.Debug("rejecting near-duplicate image",
				logging.String("file", path),
				logging.Int("distance", distance))
			return RejectDuplicate, nil
		}
	}
	return "", hash
}
