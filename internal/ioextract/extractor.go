// Package ioextract implements the checklist extraction run: the
// depth-first traversal of the taxonomic tree, the chunked fetching of
// species per genus, and the enrichment of species records.
package ioextract

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/colex/pkg/checklist"
	"github.com/gnames/colex/pkg/config"
	"github.com/gnames/colex/pkg/extract"
	"github.com/gnames/colex/pkg/storage"
	"github.com/gnames/gn"
)

type extractor struct {
	cfg    *config.Config
	src    checklist.Source
	filter *checklist.RankFilter
	merger *storage.Merger
	langs  map[string]struct{}

	speciesCount int
}

// New creates an Extractor walking the configured dataset through the
// given source, pruning with the rank filter, and persisting through
// the merger.
func New(
	cfg *config.Config,
	src checklist.Source,
	filter *checklist.RankFilter,
	merger *storage.Merger,
	languages []string,
) extract.Extractor {
	langs := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		langs[l] = struct{}{}
	}
	res := extractor{
		cfg:    cfg,
		src:    src,
		filter: filter,
		merger: merger,
		langs:  langs,
	}
	return &res
}

// Extract performs one full traversal run.
func (e *extractor) Extract(ctx context.Context) error {
	datasetID := e.cfg.API.DatasetID
	gn.Info("Extracting species from dataset <em>%d</em>", datasetID)

	roots, err := e.src.TreeRoots(ctx, datasetID)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		slog.Warn("Dataset tree has no roots", "dataset_id", datasetID)
		return nil
	}

	for _, root := range roots {
		rank := checklist.ParseRank(root.Rank)
		if rank == checklist.RankUnknown {
			return UnknownRankError(root.Rank, root.Name)
		}
		if !e.filter.IsIncluded(rank, root.Name) {
			continue
		}
		if err = e.traverse(ctx, root, checklist.Lineage{}); err != nil {
			return err
		}
	}

	gn.Message(
		"<em>Saved %s species</em>",
		humanize.Comma(int64(e.speciesCount)),
	)
	return nil
}

// traverse walks one branch depth-first. The node's rank is already
// known to be recognized and included; lineage covers the ancestors of
// the node and is extended here, producing a fresh copy so sibling
// branches never share state.
func (e *extractor) traverse(
	ctx context.Context, node checklist.TaxonNode, lineage checklist.Lineage,
) error {
	rank := checklist.ParseRank(node.Rank)
	lineage = lineage.Extend(rank, node.Name)

	slog.Debug("Traversing taxon",
		"rank", rank.String(), "name", node.Name, "id", node.ID)

	// Genus is terminal for the traversal; species are reached through
	// the chunked fetcher.
	if rank == checklist.RankGenus {
		return e.fetchSpecies(ctx, node, lineage)
	}

	children, err := e.src.Breakdown(ctx, e.cfg.API.DatasetID, node.ID)
	if err != nil {
		return err
	}
	// An empty breakdown is a normal leaf: sources legitimately skip
	// intermediate ranks and some branches end early.
	if len(children) == 0 {
		return nil
	}

	for _, child := range children {
		childRank := checklist.ParseRank(child.Rank)
		if childRank == checklist.RankUnknown {
			// A rank outside the configured ordering means the source's
			// rank vocabulary drifted from the filter configuration.
			// Continuing would silently misclassify records.
			return UnknownRankError(child.Rank, child.Name)
		}
		if !e.filter.IsIncluded(childRank, child.Name) {
			continue
		}
		if err = e.traverse(ctx, child, lineage); err != nil {
			return err
		}
	}
	return nil
}
