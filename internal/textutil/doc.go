// Package textutil provides small text helpers shared across the pipeline.
//
// Artist display names from configuration become directory slugs via Slugify.
// Slugs are stable across runs so that re-fetching an artist reuses the same
// download directory.
package textutil
