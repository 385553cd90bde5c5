package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"wallpipe/internal/config"
	"wallpipe/internal/logging"
	"wallpipe/internal/services"
)

// Stage is one sequential step of a full pipeline run.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes pipeline stages in order under a single-instance lock.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	lockPath string
	lock     *flock.Flock
}

// New constructs a runner whose lock file lives under the log directory.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	runnerLogger := logger
	if runnerLogger != nil {
		runnerLogger = runnerLogger.With(logging.String("component", "pipeline"))
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "wallpipe.lock")
	return &Runner{
		cfg:      cfg,
		logger:   runnerLogger,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
}

// LockPath returns the lock file enforcing single-instance runs.
func (r *Runner) LockPath() string {
	return r.lockPath
}

// Run executes the given stages sequentially. The pipeline lock is held
// for the whole run so concurrent runs cannot clear directories out from
// under each other; a second invocation fails fast instead of queueing.
func (r *Runner) Run(ctx context.Context, stages []Stage) error {
	if err := os.MkdirAll(filepath.Dir(r.lockPath), 0o755); err != nil {
		return fmt.Errorf("prepare lock dir: %w", err)
	}
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another wallpipe run is already in progress")
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release pipeline lock", logging.Error(err))
		}
	}()

	runCtx := services.WithRunID(ctx, uuid.NewString())
	logger := logging.WithContext(runCtx, r.logger)
	logger.Info("pipeline run started",
		logging.Int("stages", len(stages)),
		logging.String("lock", r.lockPath))

	started := time.Now()
	for _, stage := range stages {
		if err := runCtx.Err(); err != nil {
			return err
		}
		stageCtx := services.WithStage(runCtx, stage.Name)
		stageLogger := logging.WithContext(stageCtx, r.logger)

		stageLogger.Info("stage started")
		stageStarted := time.Now()
		if err := stage.Run(stageCtx); err != nil {
			stageLogger.Error("stage failed",
				logging.Error(err),
				logging.Duration("elapsed", time.Since(stageStarted)))
			return fmt.Errorf("%s stage: %w", stage.Name, err)
		}
		stageLogger.Info("stage finished", logging.Duration("elapsed", time.Since(stageStarted)))
	}

	logger.Info("pipeline run finished", logging.Duration("elapsed", time.Since(started)))
	return nil
}
