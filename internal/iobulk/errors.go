package iobulk

import (
	"fmt"

	"github.com/gnames/colex/pkg/errcode"
	"github.com/gnames/gn"
)

// DownloadError creates an error for when the checklist archive cannot
// be downloaded.
func DownloadError(url string, err error) error {
	msg := `Cannot download checklist archive

<em>URL:</em> %s

<em>Possible causes:</em>
  - Network is unavailable
  - The export URL changed

<em>How to fix:</em>
  1. Check network connectivity
  2. Verify the URL: <em>colex bulk --archive-url ...</em>`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.BulkDownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to download archive %s: %w", url, err),
	}
}

// ArchiveError creates an error for when the downloaded archive cannot
// be unpacked.
func ArchiveError(path string, err error) error {
	msg := `Cannot unpack checklist archive <em>%s</em>

<em>How to fix:</em>
  1. Remove the cached archive and retry (it may be truncated)
  2. Check free disk space`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.BulkArchiveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to unpack archive %s: %w", path, err),
	}
}

// SourceMissingError creates the fatal startup error for a missing
// NameUsage.tsv.
func SourceMissingError(path string, err error) error {
	msg := `Bulk source file is missing: <em>%s</em>

The unpacked export does not contain the expected table.

<em>How to fix:</em>
  1. Remove the cache directory to force a fresh download
  2. Check that the archive URL points at a ColDP export`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.BulkSourceMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bulk source file missing %s: %w", path, err),
	}
}

// VernacularsError creates an error for when VernacularName.tsv cannot
// be read.
func VernacularsError(path string, err error) error {
	msg := "Cannot read vernacular names from <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.BulkVernacularsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read vernaculars %s: %w", path, err),
	}
}

// ReadError creates an error for when NameUsage.tsv cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read species data from <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.BulkReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read name usage %s: %w", path, err),
	}
}

func badStatusError(code int) error {
	return fmt.Errorf("bad HTTP status: %d", code)
}

func pathEscapeError(name string) error {
	return fmt.Errorf("archive entry escapes target directory: %s", name)
}
