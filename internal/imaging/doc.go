// Package imaging wraps image decoding, saturation sampling, perceptual
// hashing, and metadata extraction behind small helpers shared by the
// curation stage and the inspect command.
//
// Decoding registers the jpeg, png, and webp formats, matching the
// extensions the pipeline accepts. Saturation uses a downscaled sample so
// the estimate stays cheap on large wallpapers.
package imaging
