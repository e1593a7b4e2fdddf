// Package extract defines the contract for one checklist extraction
// run. The implementation lives in internal/ioextract.
package extract

import (
	"context"
)

// Extractor walks a checklist top-down, prunes branches with the rank
// filter, fetches species of every surviving genus in pages, enriches
// them, and persists them incrementally into output buckets.
type Extractor interface {
	// Extract performs one full run. It returns an error only for
	// fatal conditions: an unrecognized rank in the source tree or a
	// storage failure. Per-node fetch failures are logged and the
	// traversal continues with siblings.
	Extract(ctx context.Context) error
}
