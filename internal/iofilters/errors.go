package iofilters

import (
	"fmt"

	"github.com/gnames/colex/pkg/errcode"
	"github.com/gnames/gn"
)

// FiltersConfigError creates an error for when filters.yaml cannot be
// loaded.
func FiltersConfigError(path string, err error) error {
	msg := `Cannot load rank filters configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to regenerate the default on the next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.FiltersConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load filters config: %w", err),
	}
}
