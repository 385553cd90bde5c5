package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"wallpipe/internal/testsupport"
)

func TestCLIInspectReportsImageProperties(t *testing.T) {
	_, configPath := setupCLIEnv(t)

	imagePath := filepath.Join(t.TempDir(), "sample.png")
	testsupport.WriteImage(t, imagePath, 640, 480, testsupport.PatternHSplit)

	out, _, err := runCLI(t, configPath, "inspect", imagePath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, imagePath)
	requireContains(t, out, "resolution: 640x480 (png)")
	requireContains(t, out, "median saturation:")
	requireContains(t, out, "average hash:")
}

func TestCLIInspectJSON(t *testing.T) {
	_, configPath := setupCLIEnv(t)

	imagePath := filepath.Join(t.TempDir(), "sample.png")
	testsupport.WriteImage(t, imagePath, 640, 480, testsupport.PatternVStripes)

	out, _, err := runCLI(t, configPath, "inspect", "--json", imagePath)
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}

	var reports []inspectReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode inspect json: %v\n%s", err, out)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	report := reports[0]
	if report.Width != 640 || report.Height != 480 || report.Format != "png" {
		t.Fatalf("unexpected probe fields: %+v", report)
	}
	if report.Hash == "" {
		t.Fatalf("expected a hash, got %+v", report)
	}
	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
}

func TestCLIInspectContinuesPastBadFiles(t *testing.T) {
	_, configPath := setupCLIEnv(t)

	dir := t.TempDir()
	goodPath := filepath.Join(dir, "good.png")
	badPath := filepath.Join(dir, "bad.png")
	testsupport.WriteImage(t, goodPath, 320, 200, testsupport.PatternHSplit)
	testsupport.WriteFile(t, badPath, 16)

	out, _, err := runCLI(t, configPath, "inspect", goodPath, badPath)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 images could not be inspected") {
		t.Fatalf("expected partial failure, got %v", err)
	}
	requireContains(t, out, "resolution: 320x200 (png)")
	requireContains(t, out, "error:")
}

func TestCLIInspectMissingFile(t *testing.T) {
	_, configPath := setupCLIEnv(t)

	missing := filepath.Join(t.TempDir(), "gone.png")
	out, _, err := runCLI(t, configPath, "inspect", missing)
	if err == nil || !strings.Contains(err.Error(), "1 of 1 image could not be inspected") {
		t.Fatalf("expected failure for missing file, got %v", err)
	}
	requireContains(t, out, "error:")
}
