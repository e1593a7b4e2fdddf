package checklist

import (
	"slices"
	"strings"

	"github.com/gnames/gnuuid"
)

// SpeciesRecord is the unit of output: one accepted species together
// with its classification lineage and localized vernacular names.
//
// A record is created once per distinct species encountered during a
// run. When the same species surfaces again for the same output bucket
// its fields are merged into the stored row instead of producing a
// duplicate (see the storage package).
type SpeciesRecord struct {
	// ID is the stable join and merge key.
	ID string

	ScientificName string
	Authorship     string
	Extinct        bool
	Environments   []string

	// Lineage is the classification at the point the species was
	// reached: kingdom through genus, possibly subgenus.
	Lineage Lineage

	// Vernaculars maps a 3-letter language code to common names in
	// encounter order.
	Vernaculars map[string][]string

	// Distribution accumulates named areas, joined by ", ".
	Distribution string
}

// NewSpeciesRecord creates a record for a species node reached with the
// given lineage.
func NewSpeciesRecord(n TaxonNode, lineage Lineage) *SpeciesRecord {
	return &SpeciesRecord{
		ID:             n.ID,
		ScientificName: n.Name,
		Authorship:     n.Authorship,
		Extinct:        n.Extinct,
		Environments:   n.Environments,
		Lineage:        lineage,
		Vernaculars:    make(map[string][]string),
	}
}

// AddVernacular appends a common name for a language, ignoring exact
// duplicates. Language codes are expected to be normalized by the
// caller.
func (r *SpeciesRecord) AddVernacular(lang, name string) {
	if lang == "" || name == "" {
		return
	}
	if r.Vernaculars == nil {
		r.Vernaculars = make(map[string][]string)
	}
	if slices.Contains(r.Vernaculars[lang], name) {
		return
	}
	r.Vernaculars[lang] = append(r.Vernaculars[lang], name)
}

// Vernacular returns the accumulated names for a language joined with
// ", " in encounter order.
func (r *SpeciesRecord) Vernacular(lang string) string {
	return strings.Join(r.Vernaculars[lang], ", ")
}

// Languages returns the language codes with at least one vernacular
// name, sorted for deterministic output.
func (r *SpeciesRecord) Languages() []string {
	res := make([]string, 0, len(r.Vernaculars))
	for lang := range r.Vernaculars {
		res = append(res, lang)
	}
	slices.Sort(res)
	return res
}

// EnsureID fills in a deterministic UUID v5 derived from the scientific
// name when the source row carries no identifier of its own. The name
// is the only stable handle such rows have, and hashing it keeps the
// merge key reproducible across runs.
func (r *SpeciesRecord) EnsureID() {
	if r.ID != "" || r.ScientificName == "" {
		return
	}
	r.ID = gnuuid.New(r.ScientificName).String()
}
