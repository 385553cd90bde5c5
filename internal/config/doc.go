// Package config loads, normalizes, and validates pipeline configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WALLPIPE_CONFIG and WALLPIPE_SCORER_URL. The Config type centralizes every
// knob the CLI needs, from the artist roster through the curation gates to
// the scorer sidecar address.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
