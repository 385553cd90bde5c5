package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvConfigPath names the environment variable that points at an alternate
// configuration file. It takes precedence over the search locations but not
// over an explicit --config flag.
const EnvConfigPath = "WALLPIPE_CONFIG"

// EnvScorerURL names the environment variable that overrides the scorer
// sidecar base URL when filter.scorer_url is not set.
const EnvScorerURL = "WALLPIPE_SCORER_URL"

// Paths contains directory configuration for the pipeline stages.
// DownloadRoot, CuratedDir, and FilteredDir default to subdirectories of
// WallpaperRoot when left empty.
type Paths struct {
	WallpaperRoot string `toml:"wallpaper_root"`
	DownloadRoot  string `toml:"download_root"`
	CuratedDir    string `toml:"curated_dir"`
	FilteredDir   string `toml:"filtered_dir"`
	LogDir        string `toml:"log_dir"`
}

// Fetch contains configuration for downloading gallery images.
type Fetch struct {
	Binary         string `toml:"binary"`
	AbortAfter     int    `toml:"abort_after"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Curate contains the resolution, colour, duplicate, and balance gates
// applied when promoting downloads into the curated pool.
type Curate struct {
	MinWidth      int     `toml:"min_width"`
	MinHeight     int     `toml:"min_height"`
	MaxPerArtist  int     `toml:"max_per_artist"`
	MinSaturation float64 `toml:"min_saturation"`
	DedupHamming  int     `toml:"dedup_hamming"`
	HashAlgorithm string  `toml:"hash_algorithm"`
	ClearDest     bool    `toml:"clear_dest"`
}

// Filter contains configuration for the aesthetic scoring stage. The keyword
// slices distinguish "absent" (nil, use built-in lists) from "explicitly
// empty" (bucket disabled).
type Filter struct {
	ScorerURL      string   `toml:"scorer_url"`
	MinScore       float64  `toml:"min_score"`
	BlockKeywords  []string `toml:"block_keywords"`
	BlockThreshold float64  `toml:"block_threshold"`
	NSFWKeywords   []string `toml:"nsfw_keywords"`
	NSFWThreshold  float64  `toml:"nsfw_threshold"`
	RequestTimeout int      `toml:"request_timeout"`
	ClearDest      bool     `toml:"clear_dest"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the pipeline.
//
// Configuration sections by subsystem:
//   - Paths: wallpaper root plus derived stage directories
//   - Artists: slug -> gallery URL list, replacing the built-in roster
//   - Fetch: gallery-dl binary, abort behaviour, timeout
//   - Curate: resolution/saturation/dedup gates and per-artist balance
//   - Filter: scorer sidecar, aesthetics threshold, keyword blocklists
//   - Logging: log format and level
type Config struct {
	Paths   Paths               `toml:"paths"`
	Artists map[string][]string `toml:"artists"`
	Fetch   Fetch               `toml:"fetch"`
	Curate  Curate              `toml:"curate"`
	Filter  Filter              `toml:"filter"`
	Logging Logging             `toml:"logging"`
}

// DefaultConfigPath returns the XDG location of the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "wallpipe", "config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	if value := strings.TrimSpace(os.Getenv(EnvScorerURL)); value != "" {
		cfg.Filter.ScorerURL = value
	}

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the config file to read. An explicit path wins even
// when the file is missing. Otherwise the first existing candidate among
// $WALLPIPE_CONFIG, ./wallpipe.toml, and the XDG location is used, falling
// back to the XDG location when none exist.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	var candidates []string
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		expanded, err := expandPath(env)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, expanded)
	}

	projectPath, err := filepath.Abs("wallpipe.toml")
	if err != nil {
		return "", false, err
	}
	candidates = append(candidates, projectPath, DefaultConfigPath())

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}

	return DefaultConfigPath(), false, nil
}

// EnsureDirectories creates the stage directories and the log directory.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DownloadRoot, c.Paths.CuratedDir, c.Paths.FilteredDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FetchBinary returns the gallery-dl executable name or path.
func (c *Config) FetchBinary() string {
	return c.Fetch.Binary
}

// ArtistSources returns the artist roster as slug -> URL list. The [artists]
// config section replaces the built-in roster wholesale when present.
func (c *Config) ArtistSources() map[string][]string {
	source := c.Artists
	if len(source) == 0 {
		source = DefaultArtistSources()
	}
	out := make(map[string][]string, len(source))
	for slug, urls := range source {
		cp := make([]string, len(urls))
		copy(cp, urls)
		out[slug] = cp
	}
	return out
}

// GeneralKeywords resolves the general blocklist: the configured list when
// present (even if empty), otherwise the built-in default.
func (c *Config) GeneralKeywords() []string {
	if c.Filter.BlockKeywords == nil {
		return DefaultBlockKeywordsGeneral()
	}
	out := make([]string, len(c.Filter.BlockKeywords))
	copy(out, c.Filter.BlockKeywords)
	return out
}

// NSFWKeywords resolves the NSFW blocklist: the configured list when present
// (even if empty), otherwise the built-in default.
func (c *Config) NSFWKeywords() []string {
	if c.Filter.NSFWKeywords == nil {
		return DefaultBlockKeywordsNSFW()
	}
	out := make([]string, len(c.Filter.NSFWKeywords))
	copy(out, c.Filter.NSFWKeywords)
	return out
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
