// Package scorer talks to the CLIP sidecar that grades wallpapers during
// the filter stage.
//
// The sidecar exposes a small JSON API: /v1/score returns an aesthetic
// grade for an image and /v1/match returns per-prompt similarity
// probabilities used for keyword blocking. Images travel base64-encoded in
// the request body so the sidecar needs no filesystem access.
package scorer
