package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/errors"
)

// GlobalConfigDir returns the path to the buildwatch home directory.
// BUILDWATCH_HOME takes precedence; otherwise it is ~/.buildwatch.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.BuildwatchHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
func ProjectConfigDir() string {
	return constants.BuildwatchHome
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.GlobalConfigName)
}

// HistoryDir returns the directory of the file history backend: the configured
// directory, or ~/.buildwatch/history.
func HistoryDir(cfg *HistoryConfig) (string, error) {
	if cfg != nil && cfg.Dir != "" {
		return cfg.Dir, nil
	}
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get history dir: %w", err)
	}
	return filepath.Join(dir, constants.HistoryDir), nil
}

// LogsDir returns the directory holding the rotating CLI log file.
func LogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get logs dir: %w", err)
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
