// Package iofilters loads the rank filter and language allow-list
// configuration from filters.yaml.
package iofilters

import (
	"os"

	"github.com/gnames/colex/pkg/checklist"
	"gopkg.in/yaml.v3"
)

// filtersFile mirrors the layout of filters.yaml.
type filtersFile struct {
	DomainIncluded  []string `yaml:"domain_included"`
	KingdomIncluded []string `yaml:"kingdom_included"`
	PhylumIncluded  []string `yaml:"phylum_included"`
	ClassExcluded   []string `yaml:"class_excluded"`
	OrderExcluded   []string `yaml:"order_excluded"`
	FamilyExcluded  []string `yaml:"family_excluded"`
	GenusExcluded   []string `yaml:"genus_excluded"`
	Languages       []string `yaml:"languages_included"`
}

// Filters is the parsed content of filters.yaml.
type Filters struct {
	// Ranks configures the traversal's rank filter.
	Ranks checklist.RankFilterConfig

	// Languages is the allow-list of 3-letter language codes for
	// vernacular names.
	Languages []string
}

// Load reads and parses filters.yaml from the given path.
// Language codes are normalized to lowercase ISO 639-3.
func Load(path string) (*Filters, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, FiltersConfigError(path, err)
	}

	var ff filtersFile
	if err = yaml.Unmarshal(bs, &ff); err != nil {
		return nil, FiltersConfigError(path, err)
	}

	res := &Filters{
		Ranks: checklist.RankFilterConfig{
			Allow: map[checklist.Rank][]string{
				checklist.RankDomain:  ff.DomainIncluded,
				checklist.RankKingdom: ff.KingdomIncluded,
				checklist.RankPhylum:  ff.PhylumIncluded,
			},
			Deny: map[checklist.Rank][]string{
				checklist.RankClass:  ff.ClassExcluded,
				checklist.RankOrder:  ff.OrderExcluded,
				checklist.RankFamily: ff.FamilyExcluded,
				checklist.RankGenus:  ff.GenusExcluded,
			},
		},
		Languages: normalizeLanguages(ff.Languages),
	}

	// Ranks without a configured list keep everything, so drop empty
	// lists instead of configuring them as "allow nothing".
	for rank, names := range res.Ranks.Allow {
		if len(names) == 0 {
			delete(res.Ranks.Allow, rank)
		}
	}
	for rank, names := range res.Ranks.Deny {
		if len(names) == 0 {
			delete(res.Ranks.Deny, rank)
		}
	}

	return res, nil
}

// normalizeLanguages converts language entries to lowercase 3-letter
// ISO 639-3 codes, dropping empty entries and duplicates.
func normalizeLanguages(langs []string) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, l := range langs {
		code := checklist.NormalizeLang(l)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		res = append(res, code)
	}
	return res
}
