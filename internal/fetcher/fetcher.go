package fetcher

import (
	"context"
	"path/filepath"
	"sort"

	"log/slog"

	"wallpipe/internal/config"
	"wallpipe/internal/deps"
	"wallpipe/internal/logging"
	"wallpipe/internal/services"
	"wallpipe/internal/services/gallerydl"
	"wallpipe/internal/textutil"
)

// ArtistResult records the download outcome for a single artist.
type ArtistResult struct {
	Artist     string
	TargetDir  string
	Succeeded  int
	FailedURLs []string
}

// Result summarizes one fetch run.
type Result struct {
	Artists    []ArtistResult
	TotalURLs  int
	Downloaded int
	Failed     int
}

// Fetcher manages the gallery download workflow.
type Fetcher struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   gallerydl.Downloader
	progress func(done, total int)
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithProgress registers a callback invoked after each gallery URL
// completes, successful or not.
func WithProgress(fn func(done, total int)) Option {
	return func(f *Fetcher) {
		f.progress = fn
	}
}

// New constructs the fetch handler using default dependencies.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Fetcher {
	client, err := gallerydl.New(cfg.FetchBinary(), cfg.Fetch.TimeoutSeconds)
	if err != nil {
		logger.Warn("gallery-dl client unavailable", logging.Error(err))
	}
	return NewWithClient(cfg, logger, client, opts...)
}

// NewWithClient allows injecting the downloader (used in tests).
func NewWithClient(cfg *config.Config, logger *slog.Logger, client gallerydl.Downloader, opts ...Option) *Fetcher {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "fetcher"))
	}
	fetcher := &Fetcher{cfg: cfg, logger: stageLogger, client: client}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// Fetch downloads every configured gallery URL into per-artist directories
// under the download root. Artists without URLs are curate-only entries and
// are skipped.
func (f *Fetcher) Fetch(ctx context.Context) (*Result, error) {
	logger := logging.WithContext(ctx, f.logger)

	if _, err := deps.ResolveBinary(f.cfg.FetchBinary()); err != nil {
		return nil, services.Wrap(
			services.ErrExternalTool,
			"fetch",
			"resolve downloader",
			"gallery-dl not found; install it or point fetch.binary at the executable",
			err,
		)
	}
	if f.client == nil {
		return nil, services.Wrap(
			services.ErrConfiguration,
			"fetch",
			"downloader client",
			"downloader client unavailable",
			nil,
		)
	}

	artists := f.cfg.ArtistSources()
	names := make([]string, 0, len(artists))
	total := 0
	for name, urls := range artists {
		if len(urls) == 0 {
			continue
		}
		names = append(names, name)
		total += len(urls)
	}
	sort.Strings(names)

	logger.Info("starting fetch",
		logging.Int("artists", len(names)),
		logging.Int("urls", total),
		logging.String("download_root", f.cfg.Paths.DownloadRoot))

	result := &Result{TotalURLs: total}
	done := 0
	for _, name := range names {
		slug := textutil.Slugify(name)
		artistCtx := services.WithArtist(ctx, slug)
		artistLogger := logging.WithContext(artistCtx, f.logger)

		targetDir := filepath.Join(f.cfg.Paths.DownloadRoot, slug)
		artistResult := ArtistResult{Artist: slug, TargetDir: targetDir}
		urls := artists[name]
		artistLogger.Info("fetching artist galleries", logging.Int("urls", len(urls)))

		for _, url := range urls {
			if err := ctx.Err(); err != nil {
				return nil, services.Wrap(services.ErrTimeout, "fetch", "download galleries", "fetch interrupted", err)
			}
			err := f.client.Download(artistCtx, targetDir, url, f.cfg.Fetch.AbortAfter, func(line string) {
				artistLogger.Debug("gallery-dl", logging.String("line", line))
			})
			done++
			if f.progress != nil {
				f.progress(done, total)
			}
			if err != nil {
				artistLogger.Warn("gallery download failed",
					logging.String("url", url),
					logging.Error(err))
				artistResult.FailedURLs = append(artistResult.FailedURLs, url)
				result.Failed++
				continue
			}
			artistResult.Succeeded++
			result.Downloaded++
		}
		result.Artists = append(result.Artists, artistResult)
	}

	logger.Info("fetch complete",
		logging.Int("downloaded", result.Downloaded),
		logging.Int("failed", result.Failed))
	return result, nil
}
