package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newArtistsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List the configured artist roster",
		Long: `List the artists the fetch and curate stages operate on, with their
gallery source URLs. The roster comes from the [artists] config section, or
the built-in roster when the section is absent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sources := cfg.ArtistSources()
			rows := make([][]string, 0, len(sources))
			for _, slug := range sortedArtistSlugs(sources) {
				urls := sources[slug]
				rows = append(rows, []string{slug, strconv.Itoa(len(urls)), strings.Join(urls, "\n")})
			}
			aligns := []columnAlignment{alignLeft, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Artist", "Galleries", "Sources"}, rows, aligns))
			fmt.Fprintf(cmd.OutOrStdout(), "%d artists configured\n", len(rows))
			return nil
		},
	}
}
