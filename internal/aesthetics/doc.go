// Package aesthetics drives the filter stage of the pipeline.
//
// Curated images pass through two CLIP keyword buckets (general content
// blocks, then NSFW blocks) before receiving an aesthetic grade from the
// scorer sidecar. Images that survive both buckets and score at or above
// the configured cutoff are copied into the filtered directory. A dry run
// evaluates everything but leaves the filesystem untouched.
package aesthetics
