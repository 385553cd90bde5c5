package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wallpipe/internal/config"
	"wallpipe/internal/curator"
)

type curateOptions struct {
	minWidth      int
	minHeight     int
	maxPerArtist  int
	minSaturation float64
	skipBW        bool
	dedupHamming  int
	hashAlgorithm string
}

func (o *curateOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&o.minWidth, "min-width", 0, "Minimum image width in pixels (overrides curate.min_width)")
	flags.IntVar(&o.minHeight, "min-height", 0, "Minimum image height in pixels (overrides curate.min_height)")
	flags.IntVar(&o.maxPerArtist, "max-per-artist", 0, "Keep at most N images per artist (overrides curate.max_per_artist)")
	flags.Float64Var(&o.minSaturation, "min-saturation", 0, "Minimum median saturation 0-1 to keep an image (overrides curate.min_saturation)")
	flags.BoolVar(&o.skipBW, "skip-bw", false, fmt.Sprintf("Shorthand for --min-saturation %v to drop black-and-white images", config.SkipBWMinSaturation))
	flags.IntVar(&o.dedupHamming, "dedup-hamming", 0, "Per-artist perceptual dedup distance, e.g. 5-10 (overrides curate.dedup_hamming)")
	flags.StringVar(&o.hashAlgorithm, "hash", "", "Perceptual hash algorithm: average, difference, or perception (overrides curate.hash_algorithm)")
}

// apply copies explicitly set flags onto the config and revalidates. An
// explicit --min-saturation wins over the --skip-bw shorthand.
func (o *curateOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("min-width") {
		cfg.Curate.MinWidth = o.minWidth
	}
	if flags.Changed("min-height") {
		cfg.Curate.MinHeight = o.minHeight
	}
	if flags.Changed("max-per-artist") {
		cfg.Curate.MaxPerArtist = o.maxPerArtist
	}
	switch {
	case flags.Changed("min-saturation"):
		cfg.Curate.MinSaturation = o.minSaturation
	case o.skipBW:
		cfg.Curate.MinSaturation = config.SkipBWMinSaturation
	}
	if flags.Changed("dedup-hamming") {
		cfg.Curate.DedupHamming = o.dedupHamming
	}
	if flags.Changed("hash") {
		cfg.Curate.HashAlgorithm = o.hashAlgorithm
	}
	return cfg.Validate()
}

func newCurateCommand(ctx *commandContext) *cobra.Command {
	opts := &curateOptions{}
	var artists []string
	var noClearDest bool

	cmd := &cobra.Command{
		Use:   "curate [download_dir] [curated_dir]",
		Short: "Promote downloads that pass the curation gates",
		Long: `Scan each artist's download directory and promote images that decode,
are landscape, meet the minimum resolution, and optionally pass saturation
and duplicate gates. Survivors are shuffled, capped per artist, and copied
into a flat curated directory named <artist>__<filename>.

Positional arguments override the configured download root and curated
directory.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				if err := overridePath(&cfg.Paths.DownloadRoot, args[0]); err != nil {
					return err
				}
			}
			if len(args) > 1 {
				if err := overridePath(&cfg.Paths.CuratedDir, args[1]); err != nil {
					return err
				}
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			if noClearDest {
				cfg.Curate.ClearDest = false
			}
			if err := restrictArtists(cfg, artists); err != nil {
				return err
			}

			logger, err := newStageLogger(cfg)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			progress := newStageProgress(stdout, "Curating images", "images")
			result, err := curator.New(cfg, logger, curator.WithProgress(progress)).Curate(cmd.Context())
			if err != nil {
				return err
			}
			printCurateSummary(stdout, cfg, result)
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().BoolVar(&noClearDest, "no-clear-dest", false, "Do not wipe the curated directory before curating")
	cmd.Flags().StringArrayVar(&artists, "artist", nil, "Restrict the run to this artist (repeatable)")
	return cmd
}

func printCurateSummary(out io.Writer, cfg *config.Config, result *curator.Result) {
	if len(result.Artists) > 0 {
		rows := make([][]string, 0, len(result.Artists))
		for _, artist := range result.Artists {
			rows = append(rows, []string{
				artist.Artist,
				strconv.Itoa(artist.Scanned),
				strconv.Itoa(artist.Kept),
				formatRejections(artist),
			})
		}
		aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignLeft}
		fmt.Fprintln(out, renderTable([]string{"Artist", "Scanned", "Kept", "Rejected"}, rows, aligns))
	}
	if result.Cleared > 0 {
		fmt.Fprintf(out, "Cleared %d stale images from %s\n", result.Cleared, cfg.Paths.CuratedDir)
	}
	fmt.Fprintf(out, "Curated %d of %d images into %s\n", result.Curated, result.Scanned, cfg.Paths.CuratedDir)
}

func formatRejections(artist curator.ArtistResult) string {
	reasons := make([]string, 0, len(artist.Rejected))
	for reason := range artist.Rejected {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	parts := make([]string, 0, len(reasons)+1)
	for _, reason := range reasons {
		count := artist.Rejected[curator.RejectReason(reason)]
		parts = append(parts, fmt.Sprintf("%d %s", count, strings.ReplaceAll(reason, "_", " ")))
	}
	if artist.Overflow > 0 {
		parts = append(parts, fmt.Sprintf("%d over cap", artist.Overflow))
	}
	return strings.Join(parts, ", ")
}
