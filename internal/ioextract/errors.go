package ioextract

import (
	"fmt"

	"github.com/gnames/colex/pkg/errcode"
	"github.com/gnames/gn"
)

// UnknownRankError creates the fatal error for a rank string outside
// the configured rank ordering. The run aborts rather than silently
// skipping the branch: an unknown rank means the checklist's rank
// vocabulary no longer matches the filter configuration.
func UnknownRankError(rank, name string) error {
	msg := `Unknown taxonomic rank <em>%s</em> for taxon <em>%s</em>

The checklist uses a rank this version of colex does not recognize.
Records would be misclassified if the run continued.

<em>How to fix:</em>
  1. Check filters.yaml against the dataset's rank vocabulary
  2. Update colex if the checklist introduced new ranks`

	vars := []any{rank, name}

	return &gn.Error{
		Code: errcode.ExtractUnknownRankError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown rank %q for taxon %q", rank, name),
	}
}
