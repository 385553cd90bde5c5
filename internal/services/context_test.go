package services_test

import (
	"context"
	"testing"

	"wallpipe/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "curate")
	ctx = services.WithArtist(ctx, "ian_mcque")
	ctx = services.WithRunID(ctx, "run-123")

	if stage, ok := services.StageFromContext(ctx); !ok || stage != "curate" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if artist, ok := services.ArtistFromContext(ctx); !ok || artist != "ian_mcque" {
		t.Fatalf("unexpected artist: %v %v", artist, ok)
	}
	if rid, ok := services.RunIDFromContext(ctx); !ok || rid != "run-123" {
		t.Fatalf("unexpected run id: %v %v", rid, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
