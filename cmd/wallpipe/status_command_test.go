package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"wallpipe/internal/testsupport"
)

func TestCLIStatusRendersSections(t *testing.T) {
	server := newScorerServer(t, nil, nil)
	cfg, configPath := setupCLIEnv(t,
		testsupport.WithArtists(map[string][]string{
			"vista": {"https://example.com/vista"},
		}),
		testsupport.WithStubbedBinaries(),
		testsupport.WithScorerURL(server.URL),
	)

	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DownloadRoot, "vista", "a.png"), 8)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DownloadRoot, "vista", "b.jpg"), 8)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.CuratedDir, "vista__a.png"), 8)

	out, _, err := runCLI(t, configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Configuration ==")
	requireContains(t, out, configPath)
	requireContains(t, out, "[INFO] 1 configured")
	requireContains(t, out, "== Directories ==")
	requireContains(t, out, "read/write ok")
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "Ready (command: gallery-dl)")
	requireContains(t, out, "API reachable")
	requireContains(t, out, "== Library ==")
	requireContains(t, out, "[INFO] 2 images")
	requireContains(t, out, "Ready to run")
}

func TestCLIStatusJSON(t *testing.T) {
	server := newScorerServer(t, nil, nil)
	cfg, configPath := setupCLIEnv(t,
		testsupport.WithArtists(map[string][]string{
			"vista": {"https://example.com/vista"},
		}),
		testsupport.WithStubbedBinaries(),
		testsupport.WithScorerURL(server.URL),
	)

	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DownloadRoot, "vista", "a.png"), 8)

	out, _, err := runCLI(t, configPath, "status", "--json")
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}

	var report statusReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode status json: %v\n%s", err, out)
	}
	if report.ConfigPath != configPath || !report.ConfigExists {
		t.Fatalf("unexpected config fields: %+v", report)
	}
	if report.Artists != 1 {
		t.Fatalf("artists = %d, want 1", report.Artists)
	}
	if report.Downloaded != 1 || report.Curated != 0 || report.Filtered != 0 {
		t.Fatalf("unexpected library counts: %+v", report)
	}
	if len(report.Directories) != 4 {
		t.Fatalf("expected 4 directory checks, got %d", len(report.Directories))
	}
	if len(report.Dependencies) != 1 || !report.Dependencies[0].Available {
		t.Fatalf("unexpected dependencies: %+v", report.Dependencies)
	}
	if !report.Scorer.Passed {
		t.Fatalf("scorer check failed: %+v", report.Scorer)
	}
}

func TestCLIStatusWarnsWhenScorerDown(t *testing.T) {
	server := newScorerServer(t, nil, nil)
	scorerURL := server.URL
	server.Close()

	_, configPath := setupCLIEnv(t,
		testsupport.WithStubbedBinaries(),
		testsupport.WithScorerURL(scorerURL),
	)

	out, _, err := runCLI(t, configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "[WARN]")
	requireContains(t, out, "Ready to run")
}

func TestCLIStatusCountsMissingDownloader(t *testing.T) {
	server := newScorerServer(t, nil, nil)
	cfg := testsupport.NewConfig(t, testsupport.WithScorerURL(server.URL))
	cfg.Fetch.Binary = filepath.Join(testsupport.BaseDir(cfg), "no-such-tool")
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	out, _, err := runCLI(t, configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "not found")
	requireContains(t, out, "1 check needs attention")
}

func TestCLIStatusMissingConfigUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	missing := filepath.Join(t.TempDir(), "nope.toml")
	out, _, err := runCLI(t, missing, "status")
	if err != nil {
		t.Fatalf("status with missing config: %v", err)
	}
	requireContains(t, out, "not found, defaults in use")
	requireContains(t, out, "[INFO] 8 configured")
	if !strings.Contains(out, "[WARN]") {
		t.Fatalf("expected WARN for missing config:\n%s", out)
	}
}
