package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"wallpipe/internal/aesthetics"
	"wallpipe/internal/config"
)

type filterOptions struct {
	minScore              float64
	blockKeywords         []string
	blockKeywordsGeneral  []string
	blockKeywordsNSFW     []string
	blockThreshold        float64
	blockThresholdGeneral float64
	blockThresholdNSFW    float64
	scorerURL             string
}

func (o *filterOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&o.minScore, "min-score", 0, "Minimum aesthetics score to keep an image (overrides filter.min_score)")
	flags.StringArrayVar(&o.blockKeywords, "block-keyword", nil, "Keyword to avoid, repeatable (overrides filter.block_keywords)")
	flags.StringArrayVar(&o.blockKeywordsGeneral, "block-keyword-general", nil, "General keyword to avoid, repeatable; --block-keyword wins when both are set")
	flags.StringArrayVar(&o.blockKeywordsNSFW, "block-keyword-nsfw", nil, "NSFW keyword to avoid, repeatable (overrides filter.nsfw_keywords)")
	flags.Float64Var(&o.blockThreshold, "block-threshold", 0, "Match probability above which an image is blocked; applies to both keyword buckets")
	flags.Float64Var(&o.blockThresholdGeneral, "block-threshold-general", 0, "Match threshold for general keywords (overrides filter.block_threshold)")
	flags.Float64Var(&o.blockThresholdNSFW, "block-threshold-nsfw", 0, "Match threshold for NSFW keywords (overrides filter.nsfw_threshold)")
	flags.StringVar(&o.scorerURL, "scorer-url", "", "Base URL of the scorer sidecar (overrides filter.scorer_url)")
}

// apply copies explicitly set flags onto the config and revalidates. The
// legacy --block-keyword and --block-threshold flags win over their
// per-bucket equivalents when both are given.
func (o *filterOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("min-score") {
		cfg.Filter.MinScore = o.minScore
	}
	switch {
	case flags.Changed("block-keyword"):
		cfg.Filter.BlockKeywords = o.blockKeywords
	case flags.Changed("block-keyword-general"):
		cfg.Filter.BlockKeywords = o.blockKeywordsGeneral
	}
	if flags.Changed("block-keyword-nsfw") {
		cfg.Filter.NSFWKeywords = o.blockKeywordsNSFW
	}
	if flags.Changed("block-threshold") {
		cfg.Filter.BlockThreshold = o.blockThreshold
		cfg.Filter.NSFWThreshold = o.blockThreshold
	} else {
		if flags.Changed("block-threshold-general") {
			cfg.Filter.BlockThreshold = o.blockThresholdGeneral
		}
		if flags.Changed("block-threshold-nsfw") {
			cfg.Filter.NSFWThreshold = o.blockThresholdNSFW
		}
	}
	if flags.Changed("scorer-url") {
		cfg.Filter.ScorerURL = o.scorerURL
	}
	return cfg.Validate()
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	opts := &filterOptions{}
	var dryRun bool
	var noClearDest bool

	cmd := &cobra.Command{
		Use:   "filter [curated_dir] [filtered_dir]",
		Short: "Keep curated images the aesthetics scorer rates highly",
		Long: `Score every curated image with the CLIP aesthetics sidecar and copy the
ones at or above the cutoff into the filtered directory. Images matching a
blocked keyword are dropped before scoring; images the scorer cannot rate
are skipped without blocking the batch.

Positional arguments override the configured curated and filtered
directories.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				if err := overridePath(&cfg.Paths.CuratedDir, args[0]); err != nil {
					return err
				}
			}
			if len(args) > 1 {
				if err := overridePath(&cfg.Paths.FilteredDir, args[1]); err != nil {
					return err
				}
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			if noClearDest {
				cfg.Filter.ClearDest = false
			}

			logger, err := newStageLogger(cfg)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			progress := newStageProgress(stdout, "Scoring images", "images")
			result, err := aesthetics.New(cfg, logger, aesthetics.WithProgress(progress)).Run(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			if dryRun {
				printFilterDecisions(stdout, result)
			}
			printFilterSummary(stdout, cfg, result)
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only report scores; do not clear or copy any files")
	cmd.Flags().BoolVar(&noClearDest, "no-clear-dest", false, "Do not wipe the filtered directory before copying")
	return cmd
}

func printFilterDecisions(out io.Writer, result *aesthetics.Result) {
	if len(result.Decisions) == 0 {
		return
	}
	rows := make([][]string, 0, len(result.Decisions))
	for _, decision := range result.Decisions {
		rows = append(rows, []string{
			filepath.Base(decision.File),
			decisionOutcome(decision),
			decisionScore(decision),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
	fmt.Fprintln(out, renderTable([]string{"File", "Outcome", "Score"}, rows, aligns))
}

func decisionOutcome(decision aesthetics.Decision) string {
	switch {
	case decision.BlockedBy != "":
		return "blocked (" + decision.BlockedBy + ")"
	case !decision.Scored:
		return "skipped (scoring failed)"
	case decision.Kept:
		return "keep"
	default:
		return "below cutoff"
	}
}

func decisionScore(decision aesthetics.Decision) string {
	if !decision.Scored {
		return "-"
	}
	return strconv.FormatFloat(decision.Score, 'f', 2, 64)
}

func printFilterSummary(out io.Writer, cfg *config.Config, result *aesthetics.Result) {
	fmt.Fprintf(out, "Kept %d of %d images (blocked %d, skipped %d)\n", result.Kept, result.Scanned, result.Blocked, result.Skipped)
	if result.DryRun {
		fmt.Fprintln(out, "Dry run: no files were cleared or copied")
		return
	}
	if result.Cleared > 0 {
		fmt.Fprintf(out, "Cleared %d stale images from %s\n", result.Cleared, cfg.Paths.FilteredDir)
	}
	fmt.Fprintf(out, "Output directory: %s\n", cfg.Paths.FilteredDir)
}
