package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/schollz/progressbar/v3"

	"wallpipe/internal/config"
	"wallpipe/internal/logging"
	"wallpipe/internal/textutil"
)

// newStageLogger builds the logger stage commands share: console output plus
// the append-mode log file under the configured log directory.
func newStageLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

// overridePath replaces a configured directory with a positional argument,
// applying the same tilde and relative-path expansion as the config loader.
func overridePath(target *string, arg string) error {
	expanded, err := config.ExpandPath(arg)
	if err != nil {
		return err
	}
	*target = expanded
	return nil
}

// restrictArtists narrows the configured roster to the named artists. Names
// are slugified before lookup so display names and slugs both match.
func restrictArtists(cfg *config.Config, names []string) error {
	if len(names) == 0 {
		return nil
	}
	sources := cfg.ArtistSources()
	selected := make(map[string][]string, len(names))
	for _, name := range names {
		slug := textutil.Slugify(name)
		urls, ok := sources[slug]
		if !ok {
			return fmt.Errorf("unknown artist %q (run `wallpipe artists` to list the roster)", name)
		}
		selected[slug] = urls
	}
	cfg.Artists = selected
	return nil
}

// sortedArtistSlugs returns the roster keys in stable order.
func sortedArtistSlugs(sources map[string][]string) []string {
	slugs := make([]string, 0, len(sources))
	for slug := range sources {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// newStageProgress returns a progress callback rendering a terminal progress
// bar, or nil when out is not a terminal. The bar is sized lazily from the
// total reported on the first tick.
func newStageProgress(out io.Writer, description, unit string) func(done, total int) {
	if !shouldColorize(out) {
		return nil
	}
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(description),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetItsString(unit),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionFullWidth(),
			)
		}
		bar.Set(done)
		if done >= total {
			bar.Finish()
			fmt.Fprintln(out)
		}
	}
}
