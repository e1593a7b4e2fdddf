package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "colex"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/colex by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files (downloaded
// archives, unpacked exports).
// Returns ~/.cache/colex by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/colex/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DataDir returns the directory path for output tables.
// Returns ~/.local/share/colex/data by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/colex/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// FiltersFilePath returns the full path to the filters.yaml file with
// rank allow/deny lists and the language allow-list.
// Returns ~/.config/colex/filters.yaml by default.
func FiltersFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "filters.yaml")
}
