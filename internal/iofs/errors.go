package iofs

import (
	"fmt"

	"github.com/gnames/colex/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError creates an error for when a required directory cannot
// be created.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory <em>%s</em>

<em>Possible causes:</em>
  - Permission denied
  - A file with the same name exists

<em>How to fix:</em>
  1. Check permissions of the parent directory
  2. Remove the conflicting file if there is one`

	vars := []any{dir}

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create dir %s: %w", dir, err),
	}
}

// CopyFileError creates an error for when an embedded default file
// cannot be written to the config directory.
func CopyFileError(path string, err error) error {
	msg := "Cannot write default file <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write file %s: %w", path, err),
	}
}

// ReadFileError creates an error for when a configuration file cannot
// be read or parsed.
func ReadFileError(path string, err error) error {
	msg := `Cannot read file <em>%s</em>

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read file %s: %w", path, err),
	}
}
