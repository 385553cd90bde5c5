// Package pipeline sequences the fetch, curate, and filter stages for a
// full run and enforces single-instance execution.
//
// The stages clear and rebuild their destination directories, so two
// concurrent runs would race each other; a file lock under the log
// directory prevents that. Every run carries a generated run ID in its
// context so all stage logs can be correlated.
package pipeline
