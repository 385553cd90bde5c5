package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wallpipe/internal/config"
	"wallpipe/internal/imaging"
	"wallpipe/internal/preflight"
)

type statusCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type statusDependency struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Available bool   `json:"available"`
	Optional  bool   `json:"optional"`
	Detail    string `json:"detail,omitempty"`
}

type statusReport struct {
	ConfigPath   string             `json:"config_path"`
	ConfigExists bool               `json:"config_exists"`
	Directories  []statusCheck      `json:"directories"`
	Dependencies []statusDependency `json:"dependencies"`
	Scorer       statusCheck        `json:"scorer"`
	Artists      int                `json:"artists"`
	Downloaded   int                `json:"downloaded_images"`
	Curated      int                `json:"curated_images"`
	Filtered     int                `json:"filtered_images"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show pipeline configuration and health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report := buildStatusReport(ctx, cfg)
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			renderStatusReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	return cmd
}

func buildStatusReport(ctx *commandContext, cfg *config.Config) statusReport {
	report := statusReport{
		ConfigPath:   ctx.configPath,
		ConfigExists: ctx.configExists,
		Artists:      len(cfg.ArtistSources()),
		Downloaded:   countImageTree(cfg.Paths.DownloadRoot),
		Curated:      countImageDir(cfg.Paths.CuratedDir),
		Filtered:     countImageDir(cfg.Paths.FilteredDir),
	}

	for _, check := range []preflight.Result{
		preflight.CheckDirectoryAccess("Download root", cfg.Paths.DownloadRoot),
		preflight.CheckDirectoryAccess("Curated directory", cfg.Paths.CuratedDir),
		preflight.CheckDirectoryAccess("Filtered directory", cfg.Paths.FilteredDir),
		preflight.CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	} {
		report.Directories = append(report.Directories, statusCheck{Name: check.Name, Passed: check.Passed, Detail: check.Detail})
	}

	for _, dep := range preflight.CheckSystemDeps(cfg) {
		report.Dependencies = append(report.Dependencies, statusDependency{
			Name:      dep.Name,
			Command:   dep.Command,
			Available: dep.Available,
			Optional:  dep.Optional,
			Detail:    dep.Detail,
		})
	}

	scorerCheck := preflight.CheckScorerFromConfig(cfg)
	report.Scorer = statusCheck{Name: scorerCheck.Name, Passed: scorerCheck.Passed, Detail: scorerCheck.Detail}

	return report
}

func renderStatusReport(out io.Writer, report statusReport) {
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("Configuration", colorize) {
		fmt.Fprintln(out, line)
	}
	configKind := statusOK
	configDetail := report.ConfigPath
	if !report.ConfigExists {
		configKind = statusWarn
		configDetail = fmt.Sprintf("%s (not found, defaults in use)", report.ConfigPath)
	}
	fmt.Fprintln(out, renderStatusLine("Config file", configKind, configDetail, colorize))
	fmt.Fprintln(out, renderStatusLine("Artists", statusInfo, fmt.Sprintf("%d configured", report.Artists), colorize))
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Directories", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, check := range report.Directories {
		kind := statusOK
		if !check.Passed {
			kind = statusError
		}
		fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
	}
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Dependencies", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, dep := range report.Dependencies {
		fmt.Fprintln(out, dependencyStatusLine(dep, colorize))
	}
	fmt.Fprintln(out, scorerStatusLine(report.Scorer, colorize))
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Library", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Downloaded", statusInfo, fmt.Sprintf("%d images", report.Downloaded), colorize))
	fmt.Fprintln(out, renderStatusLine("Curated", statusInfo, fmt.Sprintf("%d images", report.Curated), colorize))
	fmt.Fprintln(out, renderStatusLine("Filtered", statusInfo, fmt.Sprintf("%d images", report.Filtered), colorize))
	fmt.Fprintln(out)

	problems := 0
	for _, check := range report.Directories {
		if !check.Passed {
			problems++
		}
	}
	for _, dep := range report.Dependencies {
		if !dep.Available && !dep.Optional {
			problems++
		}
	}
	summary := fmt.Sprintf("%d checks need attention", problems)
	if problems == 1 {
		summary = "1 check needs attention"
	}
	switch {
	case problems == 0 && colorize:
		fmt.Fprintln(out, "✅ Ready to run")
	case problems == 0:
		fmt.Fprintln(out, "Ready to run")
	case colorize:
		fmt.Fprintln(out, "⚠️  "+summary)
	default:
		fmt.Fprintln(out, summary)
	}
}

// dependencyStatusLine maps an external binary check onto a rendered status
// line. Missing optional dependencies warn instead of erroring.
func dependencyStatusLine(dep statusDependency, colorize bool) string {
	if dep.Available {
		message := "Ready"
		if dep.Command != "" {
			message = fmt.Sprintf("Ready (command: %s)", dep.Command)
		}
		return renderStatusLine(dep.Name, statusOK, message, colorize)
	}
	detail := strings.TrimSpace(dep.Detail)
	if detail == "" {
		detail = "not available"
	}
	kind := statusError
	if dep.Optional {
		kind = statusWarn
	}
	return renderStatusLine(dep.Name, kind, detail, colorize)
}

// scorerStatusLine renders the sidecar check. The sidecar is only needed by
// the filter stage, so an unreachable scorer warns rather than errors.
func scorerStatusLine(check statusCheck, colorize bool) string {
	kind := statusOK
	if !check.Passed {
		kind = statusWarn
	}
	return renderStatusLine(check.Name, kind, check.Detail, colorize)
}

// countImageTree counts images under root, descending into gallery-dl's
// per-site subdirectories.
func countImageTree(root string) int {
	count := 0
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() && imaging.IsImagePath(path) {
			count++
		}
		return nil
	})
	return count
}

// countImageDir counts images directly inside dir; curated and filtered
// trees are flat.
func countImageDir(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && imaging.IsImagePath(entry.Name()) {
			count++
		}
	}
	return count
}
