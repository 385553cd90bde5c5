package aesthetics_test

import (
	"testing"

	"wallpipe/internal/aesthetics"
	"wallpipe/internal/testsupport"
)

func TestExpandTemplates(t *testing.T) {
	prompts := aesthetics.ExpandTemplates(aesthetics.GeneralTemplates, []string{"car"})
	want := []string{
		"a photo of car",
		"an illustration of car",
		"a realistic render of car",
	}
	if len(prompts) != len(want) {
		t.Fatalf("prompts = %v, want %v", prompts, want)
	}
	for i := range want {
		if prompts[i] != want[i] {
			t.Fatalf("prompts[%d] = %q, want %q", i, prompts[i], want[i])
		}
	}
}

func TestBucketsFromConfigDefaults(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	buckets := aesthetics.BucketsFromConfig(cfg)
	if len(buckets) != 2 {
		t.Fatalf("expected general and nsfw buckets, got %d", len(buckets))
	}
	if buckets[0].Name != "general" || buckets[1].Name != "nsfw" {
		t.Fatalf("bucket order = [%s %s], want [general nsfw]", buckets[0].Name, buckets[1].Name)
	}
	if buckets[0].Threshold != cfg.Filter.BlockThreshold {
		t.Fatalf("general threshold = %v, want %v", buckets[0].Threshold, cfg.Filter.BlockThreshold)
	}
	if buckets[1].Threshold != cfg.Filter.NSFWThreshold {
		t.Fatalf("nsfw threshold = %v, want %v", buckets[1].Threshold, cfg.Filter.NSFWThreshold)
	}

	generalPrompts := buckets[0].Prompts()
	if len(generalPrompts) != len(buckets[0].Keywords)*len(aesthetics.GeneralTemplates) {
		t.Fatalf("general prompts = %d, want keywords x templates", len(generalPrompts))
	}
	nsfwPrompts := buckets[1].Prompts()
	if len(nsfwPrompts) != len(buckets[1].Keywords)*len(aesthetics.NSFWTemplates) {
		t.Fatalf("nsfw prompts = %d, want keywords x templates", len(nsfwPrompts))
	}
}

func TestBucketsFromConfigEmptyKeywordsDisableBucket(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Filter.BlockKeywords = []string{}

	buckets := aesthetics.BucketsFromConfig(cfg)
	if len(buckets) != 1 || buckets[0].Name != "nsfw" {
		t.Fatalf("expected only the nsfw bucket, got %+v", buckets)
	}

	cfg.Filter.NSFWKeywords = []string{}
	if buckets := aesthetics.BucketsFromConfig(cfg); len(buckets) != 0 {
		t.Fatalf("expected no buckets, got %+v", buckets)
	}
}

func TestBucketsFromConfigCustomKeywords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Filter.BlockKeywords = []string{"watermark"}

	buckets := aesthetics.BucketsFromConfig(cfg)
	if buckets[0].Name != "general" || len(buckets[0].Keywords) != 1 {
		t.Fatalf("unexpected general bucket %+v", buckets[0])
	}
	prompts := buckets[0].Prompts()
	if len(prompts) != 3 || prompts[0] != "a photo of watermark" {
		t.Fatalf("unexpected prompts %v", prompts)
	}
}
