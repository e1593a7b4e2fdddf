package iostorage

import (
	"fmt"

	"github.com/gnames/colex/pkg/errcode"
	"github.com/gnames/gn"
)

// StoreOpenError creates an error for when the output store cannot be
// initialized.
func StoreOpenError(path string, err error) error {
	msg := "Cannot open output store at <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open store %s: %w", path, err),
	}
}

// StoreLoadError creates an error for when a bucket table cannot be
// read back.
func StoreLoadError(path string, err error) error {
	msg := "Cannot load output table from <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot load table %s: %w", path, err),
	}
}

// StoreSaveError creates an error for when a bucket table cannot be
// persisted.
func StoreSaveError(path string, err error) error {
	msg := "Cannot save output table to <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save table %s: %w", path, err),
	}
}

// StoreResetError creates an error for when previous output cannot be
// removed at the start of a fresh run.
func StoreResetError(path string, err error) error {
	msg := "Cannot reset output store at <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreResetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot reset store %s: %w", path, err),
	}
}
