// Package curator selects wallpaper-worthy images from the raw downloads.
//
// For each artist it walks the per-artist download directory, discards
// files that fail the landscape and resolution gates, optionally drops
// low-saturation and near-duplicate images, then shuffles the survivors
// and copies a capped selection into the curated directory under a
// slug-prefixed name.
package curator
