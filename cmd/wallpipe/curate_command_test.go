package main

import (
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"wallpipe/internal/config"
	"wallpipe/internal/testsupport"
)

func TestCLICuratePromotesValidImages(t *testing.T) {
	cfg, configPath := setupCLIEnv(t, testsupport.WithArtists(map[string][]string{
		"vista": {"https://example.com/vista"},
	}))

	srcDir := filepath.Join(cfg.Paths.DownloadRoot, "vista")
	testsupport.WriteImage(t, filepath.Join(srcDir, "wide.png"), 1920, 1080, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(srcDir, "small.png"), 800, 600, testsupport.PatternVSplit)

	out, _, err := runCLI(t, configPath, "curate")
	if err != nil {
		t.Fatalf("curate: %v", err)
	}
	requireContains(t, out, "Curated 1 of 2 images")
	requireContains(t, out, "vista")

	files := listFiles(t, cfg.Paths.CuratedDir)
	if len(files) != 1 || files[0] != "vista__wide.png" {
		t.Fatalf("unexpected curated files: %v", files)
	}
}

func TestCLICurateFlagsOverrideConfig(t *testing.T) {
	cfg, configPath := setupCLIEnv(t, testsupport.WithArtists(map[string][]string{
		"vista": {"https://example.com/vista"},
	}))

	srcDir := filepath.Join(cfg.Paths.DownloadRoot, "vista")
	testsupport.WriteImage(t, filepath.Join(srcDir, "wide.png"), 1920, 1080, testsupport.PatternHSplit)

	out, _, err := runCLI(t, configPath, "curate", "--min-width", "2560")
	if err != nil {
		t.Fatalf("curate --min-width: %v", err)
	}
	requireContains(t, out, "Curated 0 of 1 images")

	if files := listFiles(t, cfg.Paths.CuratedDir); len(files) != 0 {
		t.Fatalf("expected empty curated dir, got %v", files)
	}
}

func TestCLICurateSkipBWDropsGrayImages(t *testing.T) {
	cfg, configPath := setupCLIEnv(t, testsupport.WithArtists(map[string][]string{
		"vista": {"https://example.com/vista"},
	}))

	srcDir := filepath.Join(cfg.Paths.DownloadRoot, "vista")
	testsupport.WriteFlatImage(t, filepath.Join(srcDir, "red.png"), 1920, 1080, color.RGBA{R: 220, G: 30, B: 30, A: 255})
	testsupport.WriteFlatImage(t, filepath.Join(srcDir, "gray.png"), 1920, 1080, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	out, _, err := runCLI(t, configPath, "curate", "--skip-bw")
	if err != nil {
		t.Fatalf("curate --skip-bw: %v", err)
	}
	requireContains(t, out, "Curated 1 of 2 images")
	requireContains(t, out, "low saturation")

	files := listFiles(t, cfg.Paths.CuratedDir)
	if len(files) != 1 || files[0] != "vista__red.png" {
		t.Fatalf("unexpected curated files: %v", files)
	}
}

func TestCLICuratePositionalDirectories(t *testing.T) {
	cfg, configPath := setupCLIEnv(t, testsupport.WithArtists(map[string][]string{
		"vista": {"https://example.com/vista"},
	}))

	altSrc := filepath.Join(testsupport.BaseDir(cfg), "alt-downloads")
	altDest := filepath.Join(testsupport.BaseDir(cfg), "alt-curated")
	testsupport.WriteImage(t, filepath.Join(altSrc, "vista", "wide.png"), 1920, 1080, testsupport.PatternHSplit)

	out, _, err := runCLI(t, configPath, "curate", altSrc, altDest)
	if err != nil {
		t.Fatalf("curate with positional dirs: %v", err)
	}
	requireContains(t, out, "Curated 1 of 1 images")
	requireContains(t, out, altDest)

	files := listFiles(t, altDest)
	if len(files) != 1 || files[0] != "vista__wide.png" {
		t.Fatalf("unexpected curated files: %v", files)
	}
}

func TestCLICurateRejectsOutOfRangeFlag(t *testing.T) {
	_, configPath := setupCLIEnv(t)

	_, _, err := runCLI(t, configPath, "curate", "--min-saturation", "1.5")
	if err == nil || !strings.Contains(err.Error(), "curate.min_saturation") {
		t.Fatalf("expected min_saturation validation error, got %v", err)
	}
}

func TestCLICurateUnknownArtist(t *testing.T) {
	_, configPath := setupCLIEnv(t, testsupport.WithArtists(map[string][]string{
		"vista": {"https://example.com/vista"},
	}))

	_, _, err := runCLI(t, configPath, "curate", "--artist", "nobody")
	if err == nil || !strings.Contains(err.Error(), "unknown artist") {
		t.Fatalf("expected unknown artist error, got %v", err)
	}
}

func TestCurateOptionsSkipBWShorthand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cmd := &cobra.Command{}
	opts := &curateOptions{}
	opts.bind(cmd)

	if err := cmd.ParseFlags([]string{"--skip-bw"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := opts.apply(cmd, cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Curate.MinSaturation != config.SkipBWMinSaturation {
		t.Fatalf("expected min saturation %v, got %v", config.SkipBWMinSaturation, cfg.Curate.MinSaturation)
	}
}

func TestCurateOptionsExplicitSaturationWinsOverSkipBW(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cmd := &cobra.Command{}
	opts := &curateOptions{}
	opts.bind(cmd)

	if err := cmd.ParseFlags([]string{"--skip-bw", "--min-saturation", "0.2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := opts.apply(cmd, cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Curate.MinSaturation != 0.2 {
		t.Fatalf("expected min saturation 0.2, got %v", cfg.Curate.MinSaturation)
	}
}

func TestCurateOptionsLeaveConfigAloneWhenUnset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Curate.MaxPerArtist = 7
	cfg.Curate.DedupHamming = 9

	cmd := &cobra.Command{}
	opts := &curateOptions{}
	opts.bind(cmd)

	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := opts.apply(cmd, cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Curate.MaxPerArtist != 7 || cfg.Curate.DedupHamming != 9 {
		t.Fatalf("config values clobbered: %+v", cfg.Curate)
	}
}
