package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/colex/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed filters.yaml
var FiltersYAML string

// EnsureDirs creates the config, cache, data and log directories if
// they do not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded default config.yaml to the
// config directory unless a config file already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureFiltersFile writes the embedded default filters.yaml to the
// config directory unless a filters file already exists.
func EnsureFiltersFile(homeDir string) error {
	filtersPath := config.FiltersFilePath(homeDir)

	// Check if filters file already exists
	if _, err := os.Stat(filtersPath); err == nil {
		return nil
	}

	if err := os.WriteFile(filtersPath, []byte(FiltersYAML), 0644); err != nil {
		return CopyFileError(filtersPath, err)
	}

	return nil
}
