package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wallpipe/internal/textutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeArtists()
	c.normalizeFetch()
	c.normalizeCurate()
	c.normalizeFilter()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WallpaperRoot) == "" {
		c.Paths.WallpaperRoot = defaultWallpaperRoot
	}
	if c.Paths.WallpaperRoot, err = expandPath(c.Paths.WallpaperRoot); err != nil {
		return fmt.Errorf("paths.wallpaper_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.DownloadRoot) == "" {
		c.Paths.DownloadRoot = filepath.Join(c.Paths.WallpaperRoot, defaultDownloadSubdir)
	}
	if c.Paths.DownloadRoot, err = expandPath(c.Paths.DownloadRoot); err != nil {
		return fmt.Errorf("paths.download_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.CuratedDir) == "" {
		c.Paths.CuratedDir = filepath.Join(c.Paths.WallpaperRoot, defaultCuratedSubdir)
	}
	if c.Paths.CuratedDir, err = expandPath(c.Paths.CuratedDir); err != nil {
		return fmt.Errorf("paths.curated_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FilteredDir) == "" {
		c.Paths.FilteredDir = filepath.Join(c.Paths.WallpaperRoot, defaultFilteredSubdir)
	}
	if c.Paths.FilteredDir, err = expandPath(c.Paths.FilteredDir); err != nil {
		return fmt.Errorf("paths.filtered_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeArtists slugifies roster keys and drops blank URLs. Two keys that
// slugify identically have their URL lists merged.
func (c *Config) normalizeArtists() {
	if len(c.Artists) == 0 {
		return
	}
	normalized := make(map[string][]string, len(c.Artists))
	for name, urls := range c.Artists {
		slug := textutil.Slugify(name)
		seen := make(map[string]struct{}, len(urls))
		for _, existing := range normalized[slug] {
			seen[existing] = struct{}{}
		}
		for _, raw := range urls {
			url := strings.TrimSpace(raw)
			if url == "" {
				continue
			}
			if _, dup := seen[url]; dup {
				continue
			}
			seen[url] = struct{}{}
			normalized[slug] = append(normalized[slug], url)
		}
		if _, ok := normalized[slug]; !ok {
			normalized[slug] = nil
		}
	}
	c.Artists = normalized
}

func (c *Config) normalizeFetch() {
	c.Fetch.Binary = strings.TrimSpace(c.Fetch.Binary)
	if c.Fetch.Binary == "" {
		c.Fetch.Binary = defaultFetchBinary
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeout
	}
}

func (c *Config) normalizeCurate() {
	c.Curate.HashAlgorithm = strings.ToLower(strings.TrimSpace(c.Curate.HashAlgorithm))
	if c.Curate.HashAlgorithm == "" {
		c.Curate.HashAlgorithm = defaultHashAlgorithm
	}
}

func (c *Config) normalizeFilter() {
	c.Filter.ScorerURL = strings.TrimSpace(c.Filter.ScorerURL)
	if c.Filter.ScorerURL == "" {
		if value, ok := os.LookupEnv(EnvScorerURL); ok {
			c.Filter.ScorerURL = strings.TrimSpace(value)
		}
	}
	if c.Filter.ScorerURL == "" {
		c.Filter.ScorerURL = defaultScorerURL
	}
	c.Filter.BlockKeywords = trimKeywords(c.Filter.BlockKeywords)
	c.Filter.NSFWKeywords = trimKeywords(c.Filter.NSFWKeywords)
	if c.Filter.RequestTimeout <= 0 {
		c.Filter.RequestTimeout = defaultRequestTimeout
	}
}

// trimKeywords cleans entries while preserving the nil vs empty distinction.
func trimKeywords(keywords []string) []string {
	if keywords == nil {
		return nil
	}
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	return out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
