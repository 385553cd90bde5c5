package aesthetics

import (
	"strings"

	"wallpipe/internal/config"
)

// GeneralTemplates phrase each blocked keyword the way CLIP expects to see
// captions. Multiple phrasings per keyword catch photos, drawings, and
// renders alike.
var GeneralTemplates = []string{
	"a photo of {}",
	"an illustration of {}",
	"a realistic render of {}",
}

// NSFWTemplates phrase the NSFW keyword list. These are intentionally more
// direct since the bucket exists to keep explicit material off the rotation.
var NSFWTemplates = []string{
	"an explicit photo of {}",
	"a pornographic image of {}",
	"an nsfw depiction of {}",
	"a nude photo of {}",
	"a naked person with {}",
}

// Bucket groups the prompts used for one blocking check. An image whose
// best prompt probability reaches Threshold is blocked by the bucket.
type Bucket struct {
	Name      string
	Keywords  []string
	Threshold float64
	Templates []string
}

// Prompts expands the bucket templates with every keyword.
func (b Bucket) Prompts() []string {
	return ExpandTemplates(b.Templates, b.Keywords)
}

// ExpandTemplates fills each template with each keyword, keyword-major.
func ExpandTemplates(templates, keywords []string) []string {
	prompts := make([]string, 0, len(templates)*len(keywords))
	for _, keyword := range keywords {
		for _, template := range templates {
			prompts = append(prompts, strings.ReplaceAll(template, "{}", keyword))
		}
	}
	return prompts
}

// BucketsFromConfig assembles the blocking buckets in evaluation order.
// A bucket whose keyword list resolves empty is disabled and omitted.
func BucketsFromConfig(cfg *config.Config) []Bucket {
	var buckets []Bucket
	if keywords := cfg.GeneralKeywords(); len(keywords) > 0 {
		buckets = append(buckets, Bucket{
			Name:      "general",
			Keywords:  keywords,
			Threshold: cfg.Filter.BlockThreshold,
			Templates: GeneralTemplates,
		})
	}
	if keywords := cfg.NSFWKeywords(); len(keywords) > 0 {
		buckets = append(buckets, Bucket{
			Name:      "nsfw",
			Keywords:  keywords,
			Threshold: cfg.Filter.NSFWThreshold,
			Templates: NSFWTemplates,
		})
	}
	return buckets
}
