// Package config provides configuration management for colex.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - API: base_url, username, password, dataset_id, page_size, timeout_sec
//   - Extract: bucket_ranks, store
//   - Bulk: archive_url
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use COLEX_ prefix with underscores for nesting:
//
//	COLEX_API_BASE_URL=https://api.checklistbank.org/
//	COLEX_API_DATASET_ID=310463
//	COLEX_LOG_LEVEL=info
//	COLEX_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete colex configuration.
type Config struct {
	// API contains ChecklistBank connection settings.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Extract contains output settings shared by extract and bulk.
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`

	// Bulk contains settings specific to the bulk command.
	Bulk BulkConfig `mapstructure:"bulk" yaml:"bulk"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations (bulk name parsing). The extract traversal itself is
	// strictly sequential.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache, data and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string
}

// APIConfig contains ChecklistBank API connection parameters.
type APIConfig struct {
	// BaseURL is the root of the ChecklistBank REST API, with a
	// trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Username for HTTP basic auth. Empty means anonymous access.
	Username string `mapstructure:"username" yaml:"username"`

	// Password for HTTP basic auth.
	Password string `mapstructure:"password" yaml:"password"`

	// DatasetID is the checklist dataset to traverse, for example the
	// Catalogue of Life annual checklist.
	DatasetID int `mapstructure:"dataset_id" yaml:"dataset_id"`

	// PageSize is the number of children requested per page when
	// fetching species of a genus.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// TimeoutSec is the HTTP timeout for a single API call.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// ExtractConfig contains output settings shared by extract and bulk.
type ExtractConfig struct {
	// BucketRanks lists the lineage ranks that form the output bucket
	// key. A species lands in the table named by the joined values of
	// these ranks, e.g. class+order -> species_Mammalia_Carnivora.
	BucketRanks []string `mapstructure:"bucket_ranks" yaml:"bucket_ranks"`

	// Store selects the output backend: 'csv' or 'sqlite'.
	Store string `mapstructure:"store" yaml:"store"`
}

// BulkConfig contains settings specific to the bulk command.
type BulkConfig struct {
	// ArchiveURL points to the ColDP export archive of the checklist.
	ArchiveURL string `mapstructure:"archive_url" yaml:"archive_url"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		API: APIConfig{
			BaseURL:    "https://api.checklistbank.org/",
			DatasetID:  310463, // Catalogue of Life 2025 annual checklist
			PageSize:   1000,
			TimeoutSec: 30,
		},
		Extract: ExtractConfig{
			BucketRanks: []string{"class", "order"},
			Store:       "csv",
		},
		Bulk: BulkConfig{
			ArchiveURL: "https://api.checklistbank.org/dataset/310958/" +
				"export.zip?extended=true&format=ColDP",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
