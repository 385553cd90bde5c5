package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// DownloaderRequirement describes the gallery downloader for the configured
// command. The fetch stage cannot run without it; curation and filtering do
// not need it.
func DownloaderRequirement(command string) Requirement {
	return Requirement{
		Name:        "gallery-dl",
		Command:     command,
		Description: "Downloads artist galleries during the fetch stage",
	}
}

// ResolveBinary resolves a configured command to the absolute path the shell
// would execute. A missing binary is reported with the command name so the
// caller can surface an actionable message.
func ResolveBinary(command string) (string, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return "", fmt.Errorf("no command configured")
	}
	resolved, err := exec.LookPath(trimmed)
	if err != nil {
		return "", fmt.Errorf("binary %q not found: %w", trimmed, err)
	}
	return resolved, nil
}
