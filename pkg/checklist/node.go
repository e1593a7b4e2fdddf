package checklist

// TaxonNode is one node of the checklist tree as returned by a data
// source. Nodes are constructed fresh from each page or row and never
// mutated afterwards; only derived SpeciesRecords are persisted.
type TaxonNode struct {
	// ID is the source-assigned identifier; never reused across taxa.
	ID string `json:"id"`

	// Name is the scientific name.
	Name string `json:"name"`

	// Authorship of the scientific name, when the source provides it.
	Authorship string `json:"authorship"`

	// Rank is the source's rank string. Parse with ParseRank before use.
	Rank string `json:"rank"`

	// SpeciesCount is the source's hint of how many species this node
	// contains. It tells the chunked fetcher when paging is complete.
	SpeciesCount int `json:"species"`

	// Status is the taxonomic status; only 'accepted' nodes are kept.
	Status string `json:"status"`

	// Extinct taxa are excluded from output.
	Extinct bool `json:"extinct"`

	// Environments lists habitats, e.g. 'marine', 'terrestrial'.
	Environments []string `json:"environments"`
}

// Accepted reports whether the node should be retained. Sources that
// do not provide a status at all are treated as accepted.
func (n TaxonNode) Accepted() bool {
	return n.Status == "" || n.Status == "accepted"
}
