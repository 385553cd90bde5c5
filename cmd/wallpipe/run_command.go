package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"wallpipe/internal/aesthetics"
	"wallpipe/internal/config"
	"wallpipe/internal/curator"
	"wallpipe/internal/fetcher"
	"wallpipe/internal/pipeline"
	"wallpipe/internal/preflight"
	"wallpipe/internal/textutil"
)

type stageReport struct {
	Name     string
	Summary  string
	Duration time.Duration
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	fetchOpts := &fetchOptions{}
	curateOpts := &curateOptions{}
	filterOpts := &filterOptions{}
	var skipFetch bool
	var dryRun bool
	var noClearDest bool
	var artists []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run fetch, curate, and filter as one pipeline",
		Long: `Run the full pipeline: download artist galleries, curate the download
pool, and filter the curated set through the aesthetics scorer. A lock file
under the log directory keeps concurrent runs from interleaving, and every
log line of the run carries a shared run ID.

A stage failure aborts the remaining stages; individual file failures
inside a stage do not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := fetchOpts.apply(cmd, cfg); err != nil {
				return err
			}
			if err := curateOpts.apply(cmd, cfg); err != nil {
				return err
			}
			if err := filterOpts.apply(cmd, cfg); err != nil {
				return err
			}
			if noClearDest {
				cfg.Curate.ClearDest = false
				cfg.Filter.ClearDest = false
			}
			if err := restrictArtists(cfg, artists); err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if err := runPreflight(cmd, cfg); err != nil {
				return err
			}

			logger, err := newStageLogger(cfg)
			if err != nil {
				return err
			}

			var reports []stageReport
			record := func(name, summary string, started time.Time) {
				reports = append(reports, stageReport{Name: name, Summary: summary, Duration: time.Since(started)})
			}

			stages := make([]pipeline.Stage, 0, 3)
			if !skipFetch {
				stages = append(stages, pipeline.Stage{Name: "fetch", Run: func(stageCtx context.Context) error {
					started := time.Now()
					progress := newStageProgress(stdout, "Fetching galleries", "galleries")
					result, err := fetcher.New(cfg, logger, fetcher.WithProgress(progress)).Fetch(stageCtx)
					if err != nil {
						record("fetch", err.Error(), started)
						return err
					}
					record("fetch", fmt.Sprintf("%d of %d galleries downloaded", result.Downloaded, result.TotalURLs), started)
					return nil
				}})
			}
			stages = append(stages, pipeline.Stage{Name: "curate", Run: func(stageCtx context.Context) error {
				started := time.Now()
				progress := newStageProgress(stdout, "Curating images", "images")
				result, err := curator.New(cfg, logger, curator.WithProgress(progress)).Curate(stageCtx)
				if err != nil {
					record("curate", err.Error(), started)
					return err
				}
				record("curate", fmt.Sprintf("%d of %d images curated", result.Curated, result.Scanned), started)
				return nil
			}})
			stages = append(stages, pipeline.Stage{Name: "filter", Run: func(stageCtx context.Context) error {
				started := time.Now()
				progress := newStageProgress(stdout, "Scoring images", "images")
				result, err := aesthetics.New(cfg, logger, aesthetics.WithProgress(progress)).Run(stageCtx, dryRun)
				if err != nil {
					record("filter", err.Error(), started)
					return err
				}
				record("filter", fmt.Sprintf("%d of %d images kept (blocked %d, skipped %d)", result.Kept, result.Scanned, result.Blocked, result.Skipped), started)
				return nil
			}})

			runErr := pipeline.New(cfg, logger).Run(cmd.Context(), stages)
			printStageReports(stdout, reports)
			if runErr != nil {
				return runErr
			}
			if dryRun {
				fmt.Fprintln(stdout, "Dry run: the filter stage copied nothing")
			} else {
				fmt.Fprintf(stdout, "Pipeline complete; filtered wallpapers in %s\n", cfg.Paths.FilteredDir)
			}
			return nil
		},
	}

	fetchOpts.bind(cmd)
	curateOpts.bind(cmd)
	filterOpts.bind(cmd)
	cmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "Skip the download stage and curate the existing pool")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the filter stage without clearing or copying files")
	cmd.Flags().BoolVar(&noClearDest, "no-clear-dest", false, "Do not wipe the curated and filtered directories first")
	cmd.Flags().StringArrayVar(&artists, "artist", nil, "Restrict the run to this artist (repeatable)")
	return cmd
}

// runPreflight prints every check and aborts the run when one fails.
func runPreflight(cmd *cobra.Command, cfg *config.Config) error {
	stdout := cmd.OutOrStdout()
	colorize := shouldColorize(stdout)
	failed := 0
	for _, result := range preflight.RunAll(cmd.Context(), cfg) {
		fmt.Fprintln(stdout, checkStatusLine(result, colorize))
		if !result.Passed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d preflight %s failed", failed, textutil.Ternary(failed == 1, "check", "checks"))
	}
	return nil
}

func printStageReports(out io.Writer, reports []stageReport) {
	if len(reports) == 0 {
		return
	}
	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, []string{
			report.Name,
			report.Duration.Round(time.Millisecond).String(),
			report.Summary,
		})
	}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft}
	fmt.Fprintln(out, renderTable([]string{"Stage", "Duration", "Summary"}, rows, aligns))
}
