package checklist

import (
	"context"
)

// Page is one page of children returned by a data source.
type Page struct {
	Result []TaxonNode `json:"result"`
	Total  int         `json:"total"`
	Last   bool        `json:"last"`
}

// VernacularName is one localized common name of a taxon.
type VernacularName struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// Area is a named distribution area. Name is preferred for display;
// GlobalID is an opaque gazetteer identifier used when no human name
// exists.
type Area struct {
	Name     string `json:"name"`
	GlobalID string `json:"globalId"`
}

// Distribution is one distribution entry of a taxon.
type Distribution struct {
	Area Area `json:"area"`
}

// TaxonInfo is the extended information block of a taxon.
type TaxonInfo struct {
	VernacularNames []VernacularName `json:"vernacularNames"`
	Distributions   []Distribution   `json:"distributions"`
	Environments    []string         `json:"environments"`
}

// Source is the taxonomy data source consumed by the traversal.
// Implementations must translate transport failures and non-2xx
// responses into empty results, not errors: a failed call means "no
// data" for that node and processing continues with its siblings.
// Errors are reserved for conditions that abort the whole run.
type Source interface {
	// TreeRoots returns the root nodes of a dataset's taxonomic tree.
	TreeRoots(ctx context.Context, datasetID int) ([]TaxonNode, error)

	// Breakdown returns the immediate children of a taxon, descending
	// through skipped intermediate ranks where the source does so.
	// An empty result is a normal leaf.
	Breakdown(ctx context.Context, datasetID int, taxonID string) ([]TaxonNode, error)

	// Children returns one page of tree children of a taxon. Extinct
	// taxa are excluded at the source.
	Children(
		ctx context.Context, datasetID int, taxonID string, limit, offset int,
	) (*Page, error)

	// Vernaculars returns the common names of a taxon in all languages.
	Vernaculars(ctx context.Context, datasetID int, taxonID string) ([]VernacularName, error)

	// Info returns the extended information block of a taxon.
	// A nil result means the source has no data for it.
	Info(ctx context.Context, datasetID int, taxonID string) (*TaxonInfo, error)
}
