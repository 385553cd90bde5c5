package main

import (
	"strings"
	"testing"

	"wallpipe/internal/testsupport"
)

func TestCLIArtistsListsBuiltInRoster(t *testing.T) {
	_, configPath := setupCLIEnv(t)

	out, _, err := runCLI(t, configPath, "artists")
	if err != nil {
		t.Fatalf("artists: %v", err)
	}
	requireContains(t, out, "ian_mcque")
	requireContains(t, out, "sparth")
	requireContains(t, out, "https://www.artstation.com/sparth")
	requireContains(t, out, "8 artists configured")
}

func TestCLIArtistsListsConfiguredRoster(t *testing.T) {
	_, configPath := setupCLIEnv(t, testsupport.WithArtists(map[string][]string{
		"Vista Painter": {"https://example.com/vista", "https://example.com/vista2"},
		"skyline":       {"https://example.com/skyline"},
	}))

	out, _, err := runCLI(t, configPath, "artists")
	if err != nil {
		t.Fatalf("artists: %v", err)
	}
	requireContains(t, out, "vista_painter")
	requireContains(t, out, "skyline")
	requireContains(t, out, "2 artists configured")
	if strings.Contains(out, "ian_mcque") {
		t.Fatalf("built-in roster leaked into configured output:\n%s", out)
	}

	// The slugs sort, so skyline renders before vista_painter.
	if strings.Index(out, "skyline") > strings.Index(out, "vista_painter") {
		t.Fatalf("roster not sorted:\n%s", out)
	}
}
