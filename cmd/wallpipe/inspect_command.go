package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"wallpipe/internal/config"
	"wallpipe/internal/imaging"
	"wallpipe/internal/textutil"
)

type inspectReport struct {
	Path       string  `json:"path"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Format     string  `json:"format,omitempty"`
	Saturation float64 `json:"median_saturation"`
	Hash       string  `json:"hash,omitempty"`
	Artist     string  `json:"artist,omitempty"`
	Copyright  string  `json:"copyright,omitempty"`
	Software   string  `json:"software,omitempty"`
	Created    string  `json:"created,omitempty"`
	Error      string  `json:"error,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <image>...",
		Short: "Show dimensions, saturation, hash, and metadata for images",
		Long: `Report the properties the curate stage gates on: pixel dimensions,
decoded format, median saturation, and the configured perceptual hash. EXIF
and IPTC authorship tags are included when the image carries them.

Useful for answering why a particular image was or was not curated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			hasher, err := imaging.HasherFor(cfg.Curate.HashAlgorithm)
			if err != nil {
				return err
			}

			reports := make([]inspectReport, 0, len(args))
			failed := 0
			for _, arg := range args {
				report := inspectImage(arg, hasher)
				if report.Error != "" {
					failed++
				}
				reports = append(reports, report)
			}

			if jsonOutput {
				if err := writeJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				printInspectReports(cmd.OutOrStdout(), reports, cfg.Curate.HashAlgorithm)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d %s could not be inspected", failed, len(args), textutil.Ternary(len(args) == 1, "image", "images"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	return cmd
}

func inspectImage(path string, hasher imaging.Hasher) inspectReport {
	report := inspectReport{Path: path}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Path = expanded

	info, err := imaging.Probe(expanded)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Width = info.Width
	report.Height = info.Height
	report.Format = info.Format

	img, err := imaging.Load(expanded)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Saturation = imaging.MedianSaturation(img)
	if hash, err := hasher(img); err == nil {
		report.Hash = hash.ToString()
	}

	if meta, err := imaging.ReadMetadata(expanded); err == nil {
		report.Artist = meta.Artist
		report.Copyright = meta.Copyright
		report.Software = meta.Software
		report.Created = meta.Created
	}

	return report
}

func printInspectReports(out io.Writer, reports []inspectReport, algorithm string) {
	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, report.Path)
		if report.Error != "" {
			fmt.Fprintf(out, "  error: %s\n", report.Error)
			continue
		}
		fmt.Fprintf(out, "  resolution: %dx%d (%s)\n", report.Width, report.Height, report.Format)
		fmt.Fprintf(out, "  median saturation: %s\n", strconv.FormatFloat(report.Saturation, 'f', 3, 64))
		if report.Hash != "" {
			fmt.Fprintf(out, "  %s hash: %s\n", algorithm, report.Hash)
		}
		if report.Artist != "" {
			fmt.Fprintf(out, "  artist: %s\n", report.Artist)
		}
		if report.Copyright != "" {
			fmt.Fprintf(out, "  copyright: %s\n", report.Copyright)
		}
		if report.Software != "" {
			fmt.Fprintf(out, "  software: %s\n", report.Software)
		}
		if report.Created != "" {
			fmt.Fprintf(out, "  created: %s\n", report.Created)
		}
	}
}
