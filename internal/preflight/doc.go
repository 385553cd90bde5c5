// Package preflight provides readiness checks for the external services
// and filesystem paths the pipeline depends on.
//
// These checks run in two contexts:
//   - The run command calls RunAll before starting the stages so a doomed
//     run fails fast instead of partway through a long download pass.
//   - The CLI "wallpipe status" command uses individual check functions
//     (CheckScorer, CheckDirectoryAccess) to display service health.
package preflight
