package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CredentialsPath resolves the location of the google-ads.yaml file.
// Precedence: explicit path, then GOOGLE_ADS_CONFIGURATION_FILE_PATH, then the home directory.
func CredentialsPath(explicit string) (string, error) {
	source := "flag"
	path := explicit
	if path == "" {
		source = "env"
		path = os.Getenv(CredentialsPathEnv)
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		source = "home"
		path = filepath.Join(home, DefaultCredentialsFile)
	}

	resolved, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	slog.Debug("Resolved credentials path",
		slog.String("path", resolved),
		slog.String("source", source))

	return resolved, nil
}

// ExpandHome replaces a leading "~" with the current user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
