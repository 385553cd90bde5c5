// Package fetcher drives the download stage of the pipeline.
//
// It walks the configured artist roster in a stable order and hands each
// gallery URL to gallery-dl, landing files under a per-artist directory
// below the download root. Individual URL failures are logged and counted
// but never abort the run; a missing downloader binary does.
package fetcher
