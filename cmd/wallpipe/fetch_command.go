package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wallpipe/internal/config"
	"wallpipe/internal/fetcher"
	"wallpipe/internal/textutil"
)

type fetchOptions struct {
	abortAfter int
}

func (o *fetchOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.abortAfter, "abort-after", 0, "Stop gallery-dl after N consecutive skipped files, 0 disables early abort (overrides fetch.abort_after)")
}

// apply copies explicitly set flags onto the config and revalidates. Unset
// flags leave the configured values alone.
func (o *fetchOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("abort-after") {
		cfg.Fetch.AbortAfter = o.abortAfter
	}
	return cfg.Validate()
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	opts := &fetchOptions{}
	var artists []string

	cmd := &cobra.Command{
		Use:   "fetch [download_dir]",
		Short: "Download artist galleries with gallery-dl",
		Long: `Download or update the raw image pool, one subdirectory per artist. An
existing pool is updated incrementally: gallery-dl skips files it already
downloaded and aborts a gallery after a run of consecutive skips.

The positional argument overrides the configured download root.`,
		Args: cobra.MaximumNArgs(1),
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
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			if err := restrictArtists(cfg, artists); err != nil {
				return err
			}

			logger, err := newStageLogger(cfg)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			progress := newStageProgress(stdout, "Fetching galleries", "galleries")
			result, err := fetcher.New(cfg, logger, fetcher.WithProgress(progress)).Fetch(cmd.Context())
			if err != nil {
				return err
			}
			printFetchSummary(stdout, result)
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringArrayVar(&artists, "artist", nil, "Restrict the run to this artist (repeatable)")
	return cmd
}

func printFetchSummary(out io.Writer, result *fetcher.Result) {
	fmt.Fprintf(out, "Fetched %d of %d galleries across %d %s\n",
		result.Downloaded, result.TotalURLs, len(result.Artists), textutil.Ternary(len(result.Artists) == 1, "artist", "artists"))
	for _, artist := range result.Artists {
		for _, url := range artist.FailedURLs {
			fmt.Fprintf(out, "  failed: %s (%s)\n", url, artist.Artist)
		}
	}
	if result.Failed > 0 {
		fmt.Fprintf(out, "%d %s failed; see the log for gallery-dl output\n",
			result.Failed, textutil.Ternary(result.Failed == 1, "gallery", "galleries"))
	}
}
