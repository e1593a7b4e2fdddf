package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptAPIBaseURL sets the root URL of the ChecklistBank REST API.
// A missing trailing slash is added.
func OptAPIBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API Base URL", s) {
			if !strings.HasSuffix(s, "/") {
				s += "/"
			}
			c.API.BaseURL = s
		}
	}
}

// OptAPIUsername sets the username for HTTP basic auth.
// Empty value is allowed and means anonymous access.
func OptAPIUsername(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.API.Username = s
	}
}

// OptAPIPassword sets the password for HTTP basic auth.
func OptAPIPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.API.Password = s
	}
}

// OptAPIDatasetID sets the checklist dataset to process.
func OptAPIDatasetID(i int) Option {
	return func(c *Config) {
		if isValidInt("Dataset ID", i) {
			c.API.DatasetID = i
		}
	}
}

// OptAPIPageSize sets the page size for chunked species fetching.
func OptAPIPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Page Size", i) {
			c.API.PageSize = i
		}
	}
}

// OptAPITimeoutSec sets the HTTP timeout in seconds for one API call.
func OptAPITimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("API Timeout", i) {
			c.API.TimeoutSec = i
		}
	}
}

// OptExtractBucketRanks sets the lineage ranks that form the output
// bucket key.
func OptExtractBucketRanks(ss []string) Option {
	return func(c *Config) {
		var res []string
		for _, s := range ss {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				res = append(res, s)
			}
		}
		if len(res) > 0 {
			c.Extract.BucketRanks = res
		}
	}
}

// OptExtractStore selects the output backend.
// Valid values: "csv", "sqlite".
func OptExtractStore(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Extract.Store", s) {
			c.Extract.Store = s
		}
	}
}

// OptBulkArchiveURL sets the URL of the ColDP export archive.
func OptBulkArchiveURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive URL", s) {
			c.Bulk.ArchiveURL = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where log entries go.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for bulk name
// parsing.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory used to derive config, cache,
// data and log paths. Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
