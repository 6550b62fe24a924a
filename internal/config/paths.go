package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = ".keepnotes"
	homeEnvVar = "KEEPNOTES_HOME"
)

// DataDir returns the base data directory. KEEPNOTES_HOME overrides the
// default of ~/.keepnotes.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(homeEnvVar)); dir != "" {
		return filepath.Abs(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to config.toml inside dataDir, or inside the
// default data directory when dataDir is empty.
func ConfigPath(dataDir string) (string, error) {
	dir, err := dataDirOrDefault(dataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func dataDirOrDefault(dataDir string) (string, error) {
	dataDir = strings.TrimSpace(dataDir)
	if dataDir == "" {
		return DataDir()
	}
	return expandHome(dataDir)
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
	}
	return path, nil
}
