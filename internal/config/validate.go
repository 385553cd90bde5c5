package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// hashAlgorithms lists accepted values for curate.hash_algorithm.
var hashAlgorithms = map[string]struct{}{
	"average":    {},
	"difference": {},
	"perception": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateArtists(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateCurate(); err != nil {
		return err
	}
	if err := c.validateFilter(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DownloadRoot != "" && c.Paths.DownloadRoot == c.Paths.CuratedDir {
		return errors.New("paths.download_root and paths.curated_dir must differ")
	}
	if c.Paths.CuratedDir != "" && c.Paths.CuratedDir == c.Paths.FilteredDir {
		return errors.New("paths.curated_dir and paths.filtered_dir must differ")
	}
	return nil
}

func (c *Config) validateArtists() error {
	for slug, urls := range c.Artists {
		if len(urls) == 0 {
			return fmt.Errorf("artists.%s: at least one gallery url is required", slug)
		}
		for _, raw := range urls {
			parsed, err := url.Parse(raw)
			if err != nil {
				return fmt.Errorf("artists.%s: invalid url %q: %w", slug, raw, err)
			}
			if parsed.Scheme != "http" && parsed.Scheme != "https" {
				return fmt.Errorf("artists.%s: url %q must use http or https", slug, raw)
			}
			if parsed.Host == "" {
				return fmt.Errorf("artists.%s: url %q is missing a host", slug, raw)
			}
		}
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.AbortAfter < 0 {
		return errors.New("fetch.abort_after must be >= 0 (0 disables early abort)")
	}
	return ensurePositiveMap(map[string]int{
		"fetch.timeout_seconds": c.Fetch.TimeoutSeconds,
	})
}

func (c *Config) validateCurate() error {
	if err := ensurePositiveMap(map[string]int{
		"curate.min_width":      c.Curate.MinWidth,
		"curate.min_height":     c.Curate.MinHeight,
		"curate.max_per_artist": c.Curate.MaxPerArtist,
	}); err != nil {
		return err
	}
	if c.Curate.MinSaturation < 0 || c.Curate.MinSaturation > 1 {
		return errors.New("curate.min_saturation must be between 0 and 1")
	}
	if c.Curate.DedupHamming < 0 || c.Curate.DedupHamming > 64 {
		return errors.New("curate.dedup_hamming must be between 0 and 64 (0 disables dedup)")
	}
	if _, ok := hashAlgorithms[c.Curate.HashAlgorithm]; !ok {
		return fmt.Errorf("curate.hash_algorithm must be one of average, difference, perception (got %q)", c.Curate.HashAlgorithm)
	}
	return nil
}

func (c *Config) validateFilter() error {
	parsed, err := url.Parse(c.Filter.ScorerURL)
	if err != nil {
		return fmt.Errorf("filter.scorer_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("filter.scorer_url must use http or https (got %q)", c.Filter.ScorerURL)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return errors.New("filter.scorer_url is missing a host")
	}
	if c.Filter.MinScore < 0 || c.Filter.MinScore > 10 {
		return errors.New("filter.min_score must be between 0 and 10")
	}
	if c.Filter.BlockThreshold <= 0 || c.Filter.BlockThreshold > 1 {
		return errors.New("filter.block_threshold must be greater than 0 and at most 1")
	}
	if c.Filter.NSFWThreshold <= 0 || c.Filter.NSFWThreshold > 1 {
		return errors.New("filter.nsfw_threshold must be greater than 0 and at most 1")
	}
	return ensurePositiveMap(map[string]int{
		"filter.request_timeout": c.Filter.RequestTimeout,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
