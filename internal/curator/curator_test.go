package curator_test

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"wallpipe/internal/config"
	"wallpipe/internal/curator"
	"wallpipe/internal/logging"
	"wallpipe/internal/testsupport"
)

func noShuffle(int, func(i, j int)) {}

func curatedNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read curated dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func TestCurateSelectsValidLandscapes(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"ian_mcque": nil,
	}))
	cfg.Curate.DedupHamming = 5

	src := filepath.Join(cfg.Paths.DownloadRoot, "ian_mcque")
	testsupport.WriteImage(t, filepath.Join(src, "hsplit_a.png"), 1920, 1080, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(src, "hsplit_b.png"), 2560, 1440, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(src, "nested", "vsplit.png"), 1920, 1080, testsupport.PatternVSplit)
	testsupport.WriteImage(t, filepath.Join(src, "stripes.png"), 1920, 1080, testsupport.PatternVStripes)
	testsupport.WriteImage(t, filepath.Join(src, "small.png"), 800, 600, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(src, "portrait.png"), 1080, 1920, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(src, "short.png"), 1920, 900, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(src, "tiny.jpg"), 100, 100, testsupport.PatternHSplit)
	testsupport.WriteFile(t, filepath.Join(src, "corrupt.jpg"), 64)
	testsupport.WriteFile(t, filepath.Join(src, "notes.txt"), 10)

	if err := os.MkdirAll(cfg.Paths.CuratedDir, 0o755); err != nil {
		t.Fatalf("mkdir curated: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.CuratedDir, "stale.png"), 8)

	c := curator.New(cfg, logging.NewNop(), curator.WithShuffle(noShuffle))
	result, err := c.Curate(context.Background())
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}

	if result.Cleared != 1 {
		t.Fatalf("cleared = %d, want 1 stale file removed", result.Cleared)
	}
	if result.Scanned != 9 {
		t.Fatalf("scanned = %d, want 9 image files", result.Scanned)
	}
	if result.Curated != 3 {
		t.Fatalf("curated = %d, want 3", result.Curated)
	}

	names := curatedNames(t, cfg.Paths.CuratedDir)
	want := []string{"ian_mcque__hsplit_a.png", "ian_mcque__stripes.png", "ian_mcque__vsplit.png"}
	if len(names) != len(want) {
		t.Fatalf("curated files = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("curated files = %v, want %v", names, want)
		}
	}

	if len(result.Artists) != 1 {
		t.Fatalf("expected one artist result, got %d", len(result.Artists))
	}
	rejected := result.Artists[0].Rejected
	checks := map[curator.RejectReason]int{
		curator.RejectDuplicate:   1,
		curator.RejectPortrait:    1,
		curator.RejectTooSmall:    3,
		curator.RejectUndecodable: 1,
	}
	for reason, count := range checks {
		if rejected[reason] != count {
			t.Fatalf("rejected[%s] = %d, want %d (all: %v)", reason, rejected[reason], count, rejected)
		}
	}
}

func TestCurateCapsSelectionPerArtist(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"sparth": nil,
	}))
	cfg.Curate.MaxPerArtist = 2

	src := filepath.Join(cfg.Paths.DownloadRoot, "sparth")
	for _, name := range []string{"one.png", "two.png", "three.png", "four.png"} {
		testsupport.WriteImage(t, filepath.Join(src, name), 1920, 1080, testsupport.PatternHSplit)
	}

	c := curator.New(cfg, logging.NewNop(), curator.WithShuffle(noShuffle))
	result, err := c.Curate(context.Background())
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}

	if result.Curated != 2 {
		t.Fatalf("curated = %d, want cap of 2", result.Curated)
	}
	if result.Artists[0].Overflow != 2 {
		t.Fatalf("overflow = %d, want 2", result.Artists[0].Overflow)
	}
	if got := len(curatedNames(t, cfg.Paths.CuratedDir)); got != 2 {
		t.Fatalf("curated dir holds %d files, want 2", got)
	}
}

func TestCurateSaturationGate(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"moebius": nil,
	}))
	cfg.Curate.MinSaturation = config.SkipBWMinSaturation

	src := filepath.Join(cfg.Paths.DownloadRoot, "moebius")
	testsupport.WriteFlatImage(t, filepath.Join(src, "red.png"), 1920, 1080, color.RGBA{R: 255, A: 255})
	testsupport.WriteFlatImage(t, filepath.Join(src, "gray.png"), 1920, 1080, color.RGBA{R: 120, G: 120, B: 120, A: 255})

	c := curator.New(cfg, logging.NewNop(), curator.WithShuffle(noShuffle))
	result, err := c.Curate(context.Background())
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}

	if result.Curated != 1 {
		t.Fatalf("curated = %d, want only the saturated image", result.Curated)
	}
	names := curatedNames(t, cfg.Paths.CuratedDir)
	if len(names) != 1 || names[0] != "moebius__red.png" {
		t.Fatalf("curated files = %v, want [moebius__red.png]", names)
	}
	if result.Artists[0].Rejected[curator.RejectLowSaturation] != 1 {
		t.Fatalf("expected one low-saturation rejection, got %v", result.Artists[0].Rejected)
	}
}

func TestCurateDedupIsPerArtist(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"alpha": nil,
		"beta":  nil,
	}))
	cfg.Curate.DedupHamming = 5

	testsupport.WriteImage(t, filepath.Join(cfg.Paths.DownloadRoot, "alpha", "a.png"), 1920, 1080, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(cfg.Paths.DownloadRoot, "beta", "b.png"), 1920, 1080, testsupport.PatternHSplit)

	c := curator.New(cfg, logging.NewNop(), curator.WithShuffle(noShuffle))
	result, err := c.Curate(context.Background())
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}

	if result.Curated != 2 {
		t.Fatalf("curated = %d, identical images in different artists must both survive", result.Curated)
	}
}

func TestCurateSkipsArtistsWithoutDownloads(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"nobody": nil,
	}))

	c := curator.New(cfg, logging.NewNop())
	result, err := c.Curate(context.Background())
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	if len(result.Artists) != 0 || result.Curated != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestCuratePreservesDestWhenClearDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"keeper": nil,
	}))
	cfg.Curate.ClearDest = false

	src := filepath.Join(cfg.Paths.DownloadRoot, "keeper")
	testsupport.WriteImage(t, filepath.Join(src, "new.png"), 1920, 1080, testsupport.PatternHSplit)

	if err := os.MkdirAll(cfg.Paths.CuratedDir, 0o755); err != nil {
		t.Fatalf("mkdir curated: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.CuratedDir, "existing.png"), 8)

	c := curator.New(cfg, logging.NewNop(), curator.WithShuffle(noShuffle))
	result, err := c.Curate(context.Background())
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	if result.Cleared != 0 {
		t.Fatalf("cleared = %d, want 0", result.Cleared)
	}
	names := curatedNames(t, cfg.Paths.CuratedDir)
	if len(names) != 2 {
		t.Fatalf("curated dir = %v, want existing plus new", names)
	}
}

func TestCurateRejectsUnknownHashAlgorithm(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"anyone": nil,
	}))
	cfg.Curate.DedupHamming = 5
	cfg.Curate.HashAlgorithm = "crc32"

	c := curator.New(cfg, logging.NewNop())
	if _, err := c.Curate(context.Background()); err == nil {
		t.Fatal("expected error for unknown hash algorithm")
	}
}

func TestCurateReportsProgress(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"tracker": nil,
	}))

	src := filepath.Join(cfg.Paths.DownloadRoot, "tracker")
	testsupport.WriteImage(t, filepath.Join(src, "one.png"), 1920, 1080, testsupport.PatternHSplit)
	testsupport.WriteImage(t, filepath.Join(src, "two.png"), 1920, 1080, testsupport.PatternVSplit)

	var updates [][2]int
	c := curator.New(cfg, logging.NewNop(),
		curator.WithShuffle(noShuffle),
		curator.WithProgress(func(done, total int) {
			updates = append(updates, [2]int{done, total})
		}))

	if _, err := c.Curate(context.Background()); err != nil {
		t.Fatalf("Curate: %v", err)
	}
	if len(updates) != 2 || updates[1] != [2]int{2, 2} {
		t.Fatalf("unexpected progress updates %v", updates)
	}
}

func TestCurateStopsWhenCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArtists(map[string][]string{
		"cancelled": nil,
	}))
	testsupport.WriteImage(t, filepath.Join(cfg.Paths.DownloadRoot, "cancelled", "one.png"), 1920, 1080, testsupport.PatternHSplit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := curator.New(cfg, logging.NewNop())
	_, err := c.Curate(ctx)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !strings.Contains(err.Error(), "interrupted") {
		t.Fatalf("unexpected error: %v", err)
	}
}
