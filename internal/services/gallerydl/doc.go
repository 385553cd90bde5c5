// Package gallerydl mediates access to the gallery-dl CLI used during the
// fetch stage.
//
// It normalizes command invocation, streams process output back to the
// caller line by line, and exposes a testable executor seam so the fetch
// stage can run against a stub in tests.
//
// Prefer this package over ad-hoc exec.Command usage when downloading
// galleries so timeout handling and output capture remain consistent.
package gallerydl
