// Package checklist provides the domain types for taxonomic checklist
// processing: ranks, taxon nodes, lineages, species records, and the
// rank filter that prunes the traversal.
//
// The package is pure - it performs no I/O. Data access goes through
// the Source interface, implemented in internal/iocol.
package checklist

import (
	"strings"
)

// Rank is a taxonomic rank in the fixed top-down ordering used by the
// traversal. Greater values are deeper in the hierarchy.
type Rank int

const (
	// RankUnknown marks a rank string the traversal does not recognize.
	// Encountering it during a run is fatal: it means the checklist's
	// rank vocabulary drifted from what the filters were configured for.
	RankUnknown Rank = iota
	RankDomain
	RankKingdom
	RankPhylum
	RankClass
	RankOrder
	RankFamily
	RankGenus
	RankSubgenus
	RankSpecies
)

var rankNames = map[Rank]string{
	RankDomain:   "domain",
	RankKingdom:  "kingdom",
	RankPhylum:   "phylum",
	RankClass:    "class",
	RankOrder:    "order",
	RankFamily:   "family",
	RankGenus:    "genus",
	RankSubgenus: "subgenus",
	RankSpecies:  "species",
}

var ranksByName = func() map[string]Rank {
	res := make(map[string]Rank)
	for k, v := range rankNames {
		res[v] = k
	}
	return res
}()

// ParseRank converts a rank string from a data source into a Rank.
// Matching is case-insensitive. Unrecognized strings map to RankUnknown.
func ParseRank(s string) Rank {
	if r, ok := ranksByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r
	}
	return RankUnknown
}

// String implements fmt.Stringer.
func (r Rank) String() string {
	if s, ok := rankNames[r]; ok {
		return s
	}
	return "unknown"
}

// LineageRanks returns the ranks that can appear in a Lineage, in
// hierarchical order from domain down to subgenus. Species is excluded:
// it is the record itself, not part of its lineage.
func LineageRanks() []Rank {
	return []Rank{
		RankDomain, RankKingdom, RankPhylum, RankClass,
		RankOrder, RankFamily, RankGenus, RankSubgenus,
	}
}
