package ioextract

import (
	"context"
	"log/slog"

	"github.com/gnames/colex/pkg/checklist"
)

// speciesLeaf pairs a species node with the lineage it was reached
// through. The lineage differs per subgenus when a genus expands into
// subgenera first.
type speciesLeaf struct {
	node    checklist.TaxonNode
	lineage checklist.Lineage
}

// fetchSpecies retrieves all species of a genus in fixed-size pages and
// persists each one before requesting the next page, so an interrupted
// run keeps every completed species.
//
// Paging stops when the number of retrieved species reaches the genus'
// hinted species count, or when a page comes back empty - the hint is
// not always accurate and an empty page must not loop forever.
func (e *extractor) fetchSpecies(
	ctx context.Context, genus checklist.TaxonNode, lineage checklist.Lineage,
) error {
	expected := genus.SpeciesCount
	if expected == 0 {
		return nil
	}

	datasetID := e.cfg.API.DatasetID
	limit := e.cfg.API.PageSize
	retrieved := 0
	offset := 0

	for retrieved < expected {
		page, err := e.src.Children(ctx, datasetID, genus.ID, limit, offset)
		if err != nil {
			return err
		}
		if page == nil || len(page.Result) == 0 {
			break
		}

		leaves := e.expandPage(ctx, page.Result, lineage)

		// Count species after subgenus expansion: a page of subgenera
		// stands in for the species below them, and the stop hint counts
		// species.
		retrieved += len(leaves)
		offset += limit

		slog.Info("Retrieved species page",
			"genus", genus.Name,
			"retrieved", retrieved,
			"expected", expected,
		)

		for _, leaf := range leaves {
			if !leaf.node.Accepted() || leaf.node.Extinct {
				continue
			}
			rec := e.enrich(ctx, leaf.node, leaf.lineage)
			if err = e.merger.Persist(rec); err != nil {
				return err
			}
			e.speciesCount++
		}
	}

	return nil
}

// expandPage resolves the subgenus indirection. Pages are
// rank-homogeneous, so the first element decides: a page of species is
// used as is, a page of subgenera needs one more children-fetch per
// subgenus before any species can be produced.
func (e *extractor) expandPage(
	ctx context.Context,
	nodes []checklist.TaxonNode,
	lineage checklist.Lineage,
) []speciesLeaf {
	if checklist.ParseRank(nodes[0].Rank) != checklist.RankSubgenus {
		res := make([]speciesLeaf, len(nodes))
		for i, n := range nodes {
			res[i] = speciesLeaf{node: n, lineage: lineage}
		}
		return res
	}

	var res []speciesLeaf
	for _, sub := range nodes {
		subLineage := lineage.Extend(checklist.RankSubgenus, sub.Name)
		page, err := e.src.Children(
			ctx, e.cfg.API.DatasetID, sub.ID, e.cfg.API.PageSize, 0,
		)
		if err != nil || page == nil {
			continue
		}
		for _, n := range page.Result {
			res = append(res, speciesLeaf{node: n, lineage: subLineage})
		}
	}
	return res
}
