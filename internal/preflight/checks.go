package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"wallpipe/internal/config"
	"wallpipe/internal/deps"
	"wallpipe/internal/services/scorer"
)

// CheckScorer verifies that the scorer sidecar is reachable. It uses a
// 5-second timeout and a single attempt.
func CheckScorer(ctx context.Context, url string) Result {
	const name = "Scorer sidecar"

	client, err := scorer.New(url, 5)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Health(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeScorerError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckScorerFromConfig evaluates scorer status from config and connectivity.
func CheckScorerFromConfig(cfg *config.Config) Result {
	const name = "Scorer sidecar"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if cfg.Filter.ScorerURL == "" {
		return Result{Name: name, Detail: "Missing URL"}
	}
	return CheckScorer(context.Background(), cfg.Filter.ScorerURL)
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external binaries the pipeline shells out
// to. The status command and the run preflight share this list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		deps.DownloaderRequirement(cfg.FetchBinary()),
	}
	return deps.CheckBinaries(requirements)
}

// summarizeScorerError produces a human-readable summary for scorer health
// check failures.
func summarizeScorerError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (scorer unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (scorer unreachable)"
	}
	return err.Error()
}
